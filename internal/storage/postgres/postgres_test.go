package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"campaignetl/internal/ddl"
)

func TestCreateTableSQL(t *testing.T) {
	def := ddl.TableDef{Name: "fact", Columns: []ddl.ColumnDef{
		{Name: "id", Kind: "int", NotNull: true},
		{Name: "c_date", Kind: "date"},
		{Name: "revenue", Kind: "float"},
		{Name: "Weekday", Kind: "text"},
	}}

	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS \"fact\" (\n  \"id\" BIGINT NOT NULL,\n  \"c_date\" TEXT,\n  \"revenue\" DOUBLE PRECISION,\n  \"Weekday\" TEXT\n);",
		createTableSQL(def))
}

func TestPgIdent(t *testing.T) {
	assert.Equal(t, `"fact"`, pgIdent("fact"))
	assert.Equal(t, `"a""b"`, pgIdent(`a"b`))
}
