package sqldb

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"campaignetl/internal/ddl"
)

// testDialect quotes with angle brackets and numbers placeholders so the
// generated SQL makes the dialect hooks visible.
type testDialect struct{}

func (testDialect) Name() string { return "test" }

func (testDialect) QuoteIdent(name string) string { return "<" + name + ">" }

func (testDialect) Placeholder(i int) string { return fmt.Sprintf("$%d", i) }

func (testDialect) ColumnType(kind string) string {
	switch kind {
	case "int":
		return "INT8"
	case "float":
		return "FLOAT8"
	default:
		return "STR"
	}
}

func (d testDialect) CreateTableSQL(def ddl.TableDef) string {
	return "CREATE TABLE " + d.QuoteIdent(def.Name) + " (" + strings.Join(ColumnClauses(d, def), ", ") + ")"
}

func (d testDialect) DropTableSQL(name string) string {
	return "DROP TABLE " + d.QuoteIdent(name)
}

func TestColumnClauses(t *testing.T) {
	def := ddl.TableDef{Name: "t", Columns: []ddl.ColumnDef{
		{Name: "id", Kind: "int", NotNull: true},
		{Name: "c_date", Kind: "date"},
		{Name: "revenue", Kind: "float"},
	}}

	assert.Equal(t,
		[]string{"<id> INT8 NOT NULL", "<c_date> STR", "<revenue> FLOAT8"},
		ColumnClauses(testDialect{}, def))
}

func TestPrimaryKeyClause(t *testing.T) {
	def := ddl.TableDef{Name: "t", Columns: []ddl.ColumnDef{
		{Name: "id", Kind: "int", PrimaryKey: true},
		{Name: "c_date", Kind: "date", PrimaryKey: true},
		{Name: "revenue", Kind: "float"},
	}}

	assert.Equal(t, "PRIMARY KEY (<id>, <c_date>)", PrimaryKeyClause(testDialect{}, def))
	assert.Equal(t, "", PrimaryKeyClause(testDialect{}, ddl.TableDef{}))
}

func TestInsertSQL(t *testing.T) {
	r := &Repository{d: testDialect{}}
	def := ddl.TableDef{Name: "fact", Columns: []ddl.ColumnDef{
		{Name: "id", Kind: "int"},
		{Name: "revenue", Kind: "float"},
	}}

	assert.Equal(t,
		"INSERT INTO <fact> (<id>, <revenue>) VALUES ($1, $2)",
		r.insertSQL(def))
}
