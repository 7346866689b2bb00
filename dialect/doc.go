// Package dialect provides the database abstraction consumed by the enum
// generator.
//
// # Supported Dialects
//
// Each supported source database is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Driver Interface
//
// The Driver interface is the read-only contract the generator runs its
// lookup queries through:
//
//	type Driver interface {
//	    Query(ctx context.Context, query string, args, v any) error
//	    Close() error
//	    Dialect() string
//	}
//
// Generation only ever reads from the source database; there is no Exec or
// transaction surface.
//
// # Usage
//
// Opening a connection:
//
//	import (
//	    "github.com/syssam/enumgen/dialect"
//	    "github.com/syssam/enumgen/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// The dialect/sql sub-package backs the interface with database/sql.
package dialect
