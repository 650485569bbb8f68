// Package sqldb implements storage.Repository on top of database/sql for
// backends without a native bulk-load API (SQLite, MySQL, MSSQL). Inserts
// run as a prepared statement inside a transaction, which keeps performance
// acceptable for the moderate volumes a campaign upload produces.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"campaignetl/internal/ddl"
	"campaignetl/internal/storage"
	"campaignetl/internal/table"
	"campaignetl/pkg/records"
)

// insertBatchSize bounds how many rows are executed between progress checks.
const insertBatchSize = 500

// Repository is a database/sql-backed implementation of storage.Repository,
// parameterized by a Dialect.
type Repository struct {
	db *sql.DB
	d  Dialect
}

// Open opens driverName with dsn, verifies the connection with a short ping,
// and wraps it in a Repository speaking the given dialect.
func Open(ctx context.Context, driverName, dsn string, d Dialect) (*Repository, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%s: DSN must not be empty", d.Name())
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", d.Name(), err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping: %w", d.Name(), err)
	}
	return &Repository{db: db, d: d}, nil
}

var _ storage.Repository = (*Repository)(nil)

// Close closes the underlying connection pool.
func (r *Repository) Close() { _ = r.db.Close() }

// EnsureTable creates the table if it does not exist yet.
func (r *Repository) EnsureTable(ctx context.Context, def ddl.TableDef) error {
	if _, err := r.db.ExecContext(ctx, r.d.CreateTableSQL(def)); err != nil {
		return fmt.Errorf("%s: ensure table %s: %w", r.d.Name(), def.Name, err)
	}
	return nil
}

// LoadTable reads the entire named table, preserving the column order the
// database reports. Driver []byte values are converted to strings so records
// stay comparable across backends.
func (r *Repository) LoadTable(ctx context.Context, name string) (*table.Table, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+r.d.QuoteIdent(name))
	if err != nil {
		return nil, fmt.Errorf("%s: select %s: %w", r.d.Name(), name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%s: columns of %s: %w", r.d.Name(), name, err)
	}

	t := table.New(cols...)
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%s: scan %s: %w", r.d.Name(), name, err)
		}
		rec := make(records.Record, len(cols))
		for i, c := range cols {
			switch v := vals[i].(type) {
			case []byte:
				rec[c] = string(v)
			default:
				rec[c] = v
			}
		}
		t.Append(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: read %s: %w", r.d.Name(), name, err)
	}
	return t, nil
}

// ReplaceTable drops any existing table, recreates it from def, and inserts
// all rows of t within one transaction. On backends whose DDL auto-commits
// (MySQL), the replace is not atomic; the pipeline's single-writer model
// tolerates that.
func (r *Repository) ReplaceTable(ctx context.Context, def ddl.TableDef, t *table.Table) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", r.d.Name(), err)
	}
	if _, err := tx.ExecContext(ctx, r.d.DropTableSQL(def.Name)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%s: drop %s: %w", r.d.Name(), def.Name, err)
	}
	if _, err := tx.ExecContext(ctx, r.d.CreateTableSQL(def)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%s: create %s: %w", r.d.Name(), def.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx, r.insertSQL(def))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%s: prepare insert: %w", r.d.Name(), err)
	}
	defer stmt.Close()

	for i, row := range storage.BuildRows(def, t) {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%s: insert row %d into %s: %w", r.d.Name(), i+1, def.Name, err)
		}
		if (i+1)%insertBatchSize == 0 {
			if err := ctx.Err(); err != nil {
				_ = tx.Rollback()
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit %s: %w", r.d.Name(), def.Name, err)
	}
	return nil
}

// insertSQL builds the positional single-row INSERT for def.
func (r *Repository) insertSQL(def ddl.TableDef) string {
	cols := make([]string, len(def.Columns))
	params := make([]string, len(def.Columns))
	for i, c := range def.Columns {
		cols[i] = r.d.QuoteIdent(c.Name)
		params[i] = r.d.Placeholder(i + 1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		r.d.QuoteIdent(def.Name),
		strings.Join(cols, ", "),
		strings.Join(params, ", "),
	)
}
