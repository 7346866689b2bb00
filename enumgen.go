// Package enumgen generates Go enum declarations from database lookup
// tables. It glues the three layers together: compiler/load inspects the
// schema, compiler/gen applies the configured rules and renders code, and
// dialect/sql carries the row queries. Most callers want Generate; the CLI
// and tests that already hold table metadata use GenerateTables.
package enumgen

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/syssam/enumgen/compiler/gen"
	"github.com/syssam/enumgen/compiler/load"
	"github.com/syssam/enumgen/dialect"
	"github.com/syssam/enumgen/dialect/sql"
	"github.com/syssam/enumgen/schema"
)

// Generate inspects the connected database and writes one enum file per
// table matched by a configured rule. The returned results carry the
// written paths and per-file diagnostic counts; rule-level failures land in
// the generated files as comments, not here.
func Generate(ctx context.Context, db *sqlx.DB, drvDialect string, opts ...gen.Option) ([]gen.Result, error) {
	tables, err := load.Tables(ctx, db, drvDialect)
	if err != nil {
		return nil, err
	}
	return GenerateTables(ctx, sql.OpenDB(drvDialect, db.DB), tables, opts...)
}

// GenerateTables runs generation over an already-inspected table set, so
// metadata may come from a load.Snapshot instead of a live inspection.
func GenerateTables(ctx context.Context, drv dialect.Driver, tables []*schema.Table, opts ...gen.Option) ([]gen.Result, error) {
	g, err := gen.New(drv, opts...)
	if err != nil {
		return nil, err
	}
	return gen.NewWriter(g).WriteAll(ctx, tables)
}
