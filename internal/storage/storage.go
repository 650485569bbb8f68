// Package storage contains the storage-agnostic contracts for persisting
// campaign tables. Concrete backends (SQLite, Postgres, MySQL, MSSQL)
// register themselves with the factory at init time; callers select one by
// kind and never import backend packages directly.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"campaignetl/internal/ddl"
	"campaignetl/internal/table"
)

// Config selects and configures a storage backend.
type Config struct {
	// Kind names the backend: "sqlite", "postgres", "mysql", or "mssql".
	Kind string

	// DSN is the backend connection string. It is always injected by the
	// caller; backends never assume a default location.
	DSN string
}

// Repository is the persistence contract the pipeline depends on. All
// methods are synchronous; ReplaceTable has wholesale REPLACE semantics:
// prior contents (and the prior table shape) are gone after it returns.
type Repository interface {
	// LoadTable reads the entire named table, preserving column order.
	LoadTable(ctx context.Context, name string) (*table.Table, error)

	// ReplaceTable drops any existing table of that name, recreates it from
	// def, and inserts all rows of t.
	ReplaceTable(ctx context.Context, def ddl.TableDef, t *table.Table) error

	// EnsureTable creates the table from def if it does not exist yet, so a
	// pipeline can run before any upload.
	EnsureTable(ctx context.Context, def ddl.TableDef) error

	// Close releases the underlying connections.
	Close()
}

// Factory builds a Repository for a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for a storage kind. It is
// called from backend packages' init functions.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository for cfg.Kind. Unknown kinds report the registered
// alternatives to keep misconfiguration errors actionable.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (registered: %v)", cfg.Kind, Kinds())
	}
	return f(ctx, cfg)
}

// Kinds returns the registered backend names, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
