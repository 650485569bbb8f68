package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"campaignetl/internal/ddl"
)

func TestDialectSQL(t *testing.T) {
	d := Dialect{}
	def := ddl.TableDef{Name: "stg", Columns: []ddl.ColumnDef{
		{Name: "id", Kind: "int"},
		{Name: "c_date", Kind: "date"},
		{Name: "revenue", Kind: "float"},
	}}

	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS `stg` (\n  `id` BIGINT,\n  `c_date` TEXT,\n  `revenue` DOUBLE\n);",
		d.CreateTableSQL(def))
	assert.Equal(t, "DROP TABLE IF EXISTS `stg`;", d.DropTableSQL("stg"))
	assert.Equal(t, "`a``b`", d.QuoteIdent("a`b"))
	assert.Equal(t, "?", d.Placeholder(3))
}
