package dialect

import "context"

// Dialect names of the supported source databases.
const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// Querier wraps the Query method used to stream lookup rows out of a source
// database. Implementations fill v, which is expected to be a *sql.Rows
// wrapper owned by the caller.
type Querier interface {
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the read-only connection the generator consumes. Enum generation
// never writes to the source database, so the contract carries no Exec or
// transaction surface.
type Driver interface {
	Querier
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}
