// Package mssql wires the SQL Server backend into the storage factory.
package mssql

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"campaignetl/internal/ddl"
	"campaignetl/internal/storage"
	"campaignetl/internal/storage/sqldb"
)

func init() {
	storage.Register("mssql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		// Validate the DSN early to fail fast on obvious mistakes.
		if _, err := msdsn.Parse(cfg.DSN); err != nil {
			return nil, fmt.Errorf("mssql dsn: %w", err)
		}
		return sqldb.Open(ctx, "sqlserver", cfg.DSN, Dialect{})
	})
}

// Dialect implements sqldb.Dialect for SQL Server.
type Dialect struct{}

func (Dialect) Name() string { return "mssql" }

func (Dialect) QuoteIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (Dialect) Placeholder(i int) string { return fmt.Sprintf("@p%d", i) }

func (Dialect) ColumnType(kind string) string {
	switch kind {
	case "int":
		return "BIGINT"
	case "float":
		return "FLOAT"
	default:
		return "NVARCHAR(MAX)"
	}
}

// CreateTableSQL guards the create with OBJECT_ID; SQL Server has no
// CREATE TABLE IF NOT EXISTS.
func (d Dialect) CreateTableSQL(def ddl.TableDef) string {
	clauses := sqldb.ColumnClauses(d, def)
	if pk := sqldb.PrimaryKeyClause(d, def); pk != "" {
		clauses = append(clauses, pk)
	}
	return fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NULL CREATE TABLE %s (\n  %s\n);",
		def.Name,
		d.QuoteIdent(def.Name),
		strings.Join(clauses, ",\n  "),
	)
}

func (d Dialect) DropTableSQL(name string) string {
	return "DROP TABLE IF EXISTS " + d.QuoteIdent(name) + ";"
}
