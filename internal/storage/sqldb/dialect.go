package sqldb

import (
	"strings"

	"campaignetl/internal/ddl"
)

// Dialect captures the SQL differences between database/sql backends: how
// identifiers are quoted, how positional parameters are written, how logical
// column kinds map onto column types, and the conditional CREATE/DROP forms.
type Dialect interface {
	Name() string

	QuoteIdent(name string) string

	// Placeholder renders the i-th (1-based) statement parameter.
	Placeholder(i int) string

	// ColumnType maps a logical kind ("int", "float", "text", "date") onto a
	// column type. Dates map onto a text type: tables store canonical
	// YYYY-MM-DD strings, and the staging table must hold unvalidated date
	// junk verbatim.
	ColumnType(kind string) string

	// CreateTableSQL renders a conditional CREATE TABLE for def: the
	// statement is a no-op when the table already exists.
	CreateTableSQL(def ddl.TableDef) string

	// DropTableSQL renders a conditional DROP TABLE.
	DropTableSQL(name string) string
}

// ColumnClauses renders def's columns as "name TYPE [NOT NULL]" clauses
// using the dialect's quoting and type mapping. Shared by dialect
// CreateTableSQL implementations.
func ColumnClauses(d Dialect, def ddl.TableDef) []string {
	out := make([]string, 0, len(def.Columns))
	for _, c := range def.Columns {
		var sb strings.Builder
		sb.WriteString(d.QuoteIdent(c.Name))
		sb.WriteByte(' ')
		sb.WriteString(d.ColumnType(c.Kind))
		if c.NotNull {
			sb.WriteString(" NOT NULL")
		}
		out = append(out, sb.String())
	}
	return out
}

// PrimaryKeyClause renders a PRIMARY KEY table constraint for def, or ""
// when no column is marked as key.
func PrimaryKeyClause(d Dialect, def ddl.TableDef) string {
	var pks []string
	for _, c := range def.Columns {
		if c.PrimaryKey {
			pks = append(pks, d.QuoteIdent(c.Name))
		}
	}
	if len(pks) == 0 {
		return ""
	}
	return "PRIMARY KEY (" + strings.Join(pks, ", ") + ")"
}
