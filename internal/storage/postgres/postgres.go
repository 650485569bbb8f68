// Package postgres implements the storage repository on pgx v5. Replaced
// tables are rebuilt inside one transaction and bulk-loaded with COPY, so a
// failed run never leaves a half-written table behind.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaignetl/internal/ddl"
	"campaignetl/internal/storage"
	"campaignetl/internal/table"
	"campaignetl/pkg/records"
)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		pool, err := pgxpool.New(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("pgxpool: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres: ping: %w", err)
		}
		return &Repository{pool: pool}, nil
	})
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
}

var _ storage.Repository = (*Repository)(nil)

// Close releases the connection pool.
func (r *Repository) Close() { r.pool.Close() }

// EnsureTable creates the table if it does not exist yet.
func (r *Repository) EnsureTable(ctx context.Context, def ddl.TableDef) error {
	if _, err := r.pool.Exec(ctx, createTableSQL(def)); err != nil {
		return fmt.Errorf("postgres: ensure table %s: %w", def.Name, err)
	}
	return nil
}

// LoadTable reads the entire named table, preserving column order.
func (r *Repository) LoadTable(ctx context.Context, name string) (*table.Table, error) {
	rows, err := r.pool.Query(ctx, "SELECT * FROM "+pgIdent(name))
	if err != nil {
		return nil, fmt.Errorf("postgres: select %s: %w", name, err)
	}
	defer rows.Close()

	fds := rows.FieldDescriptions()
	cols := make([]string, len(fds))
	for i, fd := range fds {
		cols[i] = fd.Name
	}

	t := table.New(cols...)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("postgres: scan %s: %w", name, err)
		}
		rec := make(records.Record, len(cols))
		for i, c := range cols {
			rec[c] = vals[i]
		}
		t.Append(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: read %s: %w", name, err)
	}
	return t, nil
}

// ReplaceTable drops, recreates, and COPY-loads the table in a single
// transaction.
func (r *Repository) ReplaceTable(ctx context.Context, def ddl.TableDef, t *table.Table) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+pgIdent(def.Name)); err != nil {
		return fmt.Errorf("postgres: drop %s: %w", def.Name, err)
	}
	if _, err := tx.Exec(ctx, createTableSQL(def)); err != nil {
		return fmt.Errorf("postgres: create %s: %w", def.Name, err)
	}

	if _, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{def.Name},
		def.ColumnNames(),
		pgx.CopyFromRows(storage.BuildRows(def, t)),
	); err != nil {
		return fmt.Errorf("postgres: copy into %s: %w", def.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit %s: %w", def.Name, err)
	}
	return nil
}

func pgIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func columnType(kind string) string {
	switch kind {
	case "int":
		return "BIGINT"
	case "float":
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

func createTableSQL(def ddl.TableDef) string {
	clauses := make([]string, 0, len(def.Columns))
	for _, c := range def.Columns {
		clause := pgIdent(c.Name) + " " + columnType(c.Kind)
		if c.NotNull {
			clause += " NOT NULL"
		}
		clauses = append(clauses, clause)
	}
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		pgIdent(def.Name),
		strings.Join(clauses, ",\n  "),
	)
}
