// Package sqlite wires the SQLite backend into the storage factory. SQLite
// is the default store: a single local file matches the one-upload-at-a-time
// batch model, and an in-memory DSN gives tests full isolation.
package sqlite

import (
	"context"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"campaignetl/internal/ddl"
	"campaignetl/internal/storage"
	"campaignetl/internal/storage/sqldb"
)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return sqldb.Open(ctx, "sqlite", cfg.DSN, Dialect{})
	})
}

// Dialect implements sqldb.Dialect for SQLite.
type Dialect struct{}

func (Dialect) Name() string { return "sqlite" }

func (Dialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (Dialect) Placeholder(int) string { return "?" }

// ColumnType prefers canonical SQLite affinities; dates are TEXT holding
// ISO-8601 strings.
func (Dialect) ColumnType(kind string) string {
	switch kind {
	case "int":
		return "INTEGER"
	case "float":
		return "REAL"
	default:
		return "TEXT"
	}
}

func (d Dialect) CreateTableSQL(def ddl.TableDef) string {
	clauses := sqldb.ColumnClauses(d, def)
	if pk := sqldb.PrimaryKeyClause(d, def); pk != "" {
		clauses = append(clauses, pk)
	}
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		d.QuoteIdent(def.Name),
		strings.Join(clauses, ",\n  "),
	)
}

func (d Dialect) DropTableSQL(name string) string {
	return "DROP TABLE IF EXISTS " + d.QuoteIdent(name) + ";"
}
