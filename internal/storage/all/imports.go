// Package all wires every built-in storage backend into the storage factory.
//
// The package exists purely for side effects: importing it (typically as a
// blank import in a main package) runs the init functions of each concrete
// backend, which register their factories with the storage package. Binaries
// that only need a subset can import the individual backend packages
// instead.
package all

import (
	_ "campaignetl/internal/storage/mssql"
	_ "campaignetl/internal/storage/mysql"
	_ "campaignetl/internal/storage/postgres"
	_ "campaignetl/internal/storage/sqlite"
)
