// Package mysql wires the MySQL backend into the storage factory.
package mysql

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"campaignetl/internal/ddl"
	"campaignetl/internal/storage"
	"campaignetl/internal/storage/sqldb"
)

func init() {
	storage.Register("mysql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return sqldb.Open(ctx, "mysql", cfg.DSN, Dialect{})
	})
}

// Dialect implements sqldb.Dialect for MySQL.
type Dialect struct{}

func (Dialect) Name() string { return "mysql" }

func (Dialect) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (Dialect) Placeholder(int) string { return "?" }

func (Dialect) ColumnType(kind string) string {
	switch kind {
	case "int":
		return "BIGINT"
	case "float":
		return "DOUBLE"
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
