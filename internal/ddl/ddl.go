// Package ddl defines the backend-agnostic table definition model. A
// TableDef carries logical column kinds ("int", "float", "text", "date");
// each storage backend maps kinds onto its own SQL types and renders the
// dialect-specific CREATE TABLE statement.
package ddl

// ColumnDef describes a single column of a destination table.
type ColumnDef struct {
	// Name is the canonical column name, already normalized (lowercase,
	// ASCII, underscores).
	Name string

	// Kind is the logical type: "int", "float", "text", or "date".
	Kind string

	// NotNull marks the column NOT NULL. Staging tables leave this false so
	// dirty uploads can land verbatim.
	NotNull bool

	// PrimaryKey marks the column as part of the primary key.
	PrimaryKey bool
}

// TableDef describes a destination table.
type TableDef struct {
	Name    string
	Columns []ColumnDef
}

// ColumnNames returns the column names in definition order.
func (t TableDef) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}
