// Package sql backs the dialect.Driver contract with database/sql.
//
// The generator hands every lookup query to a Driver and scans the result
// through the Rows wrapper:
//
//	drv, err := sql.Open(dialect.MySQL, dsn)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
//	rows := &sql.Rows{}
//	if err := drv.Query(ctx, "SELECT LookupVal,LookupDescLong FROM tbl", []any{}, rows); err != nil {
//	    // the caller turns query failures into inline diagnostics
//	}
//	defer rows.Close()
//
// OpenDB wraps an already opened *sql.DB instead, which is how the CLI
// shares one connection pool between schema inspection and generation.
//
// StatsDriver and DebugDriver decorate any Driver with query timing
// counters and per-query logging. They embed the interface, so they stack:
//
//	drv := sql.NewDebugDriver(sql.NewStatsDriver(base, sql.WithSlowQueryLog()))
package sql
