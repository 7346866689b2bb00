package load

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"github.com/jmoiron/sqlx"

	"github.com/syssam/enumgen/dialect"
	"github.com/syssam/enumgen/schema"
)

// InspectOption configures a Tables call.
type InspectOption func(*inspectConfig)

type inspectConfig struct {
	schema  string
	exclude []string
}

// WithSchema selects the database (MySQL) or schema (Postgres) to inspect.
// The default is the connection's current database, or "public" on Postgres.
func WithSchema(name string) InspectOption {
	return func(c *inspectConfig) {
		c.schema = name
	}
}

// WithExclude drops tables whose name matches any of the given patterns,
// case-insensitively. Migration bookkeeping tables are the usual targets.
func WithExclude(patterns ...string) InspectOption {
	return func(c *inspectConfig) {
		c.exclude = append(c.exclude, patterns...)
	}
}

// Tables inspects the connected database and returns its base tables with
// columns in declared order, flagged for primary key, foreign key and
// string-typedness. Column order is preserved exactly as the database
// reports it; resolution depends on it.
func Tables(ctx context.Context, db *sqlx.DB, drvDialect string, opts ...InspectOption) ([]*schema.Table, error) {
	cfg := &inspectConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	exclude, err := compileExclude(cfg.exclude)
	if err != nil {
		return nil, err
	}
	var tables []*schema.Table
	switch drvDialect {
	case dialect.MySQL:
		tables, err = mysqlTables(ctx, db, cfg)
	case dialect.Postgres:
		tables, err = postgresTables(ctx, db, cfg)
	case dialect.SQLite:
		tables, err = sqliteTables(ctx, db)
	default:
		return nil, fmt.Errorf("load: unsupported dialect %q", drvDialect)
	}
	if err != nil {
		return nil, err
	}
	return filterTables(tables, exclude), nil
}

// Filter returns the tables whose names match none of the given patterns,
// compiled case-insensitively. Tables applies it automatically; callers that
// source tables from a Snapshot use it directly.
func Filter(tables []*schema.Table, patterns []string) ([]*schema.Table, error) {
	exclude, err := compileExclude(patterns)
	if err != nil {
		return nil, err
	}
	return filterTables(tables, exclude), nil
}

func mysqlTables(ctx context.Context, db *sqlx.DB, cfg *inspectConfig) ([]*schema.Table, error) {
	schemaExpr, args := "DATABASE()", []any{}
	if cfg.schema != "" {
		schemaExpr, args = "?", []any{cfg.schema}
	}
	var names []string
	query := db.Rebind(`SELECT TABLE_NAME
		FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = ` + schemaExpr + `
		AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME`)
	if err := db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("inspect mysql tables: %w", err)
	}

	type column struct {
		TableName  string `db:"TABLE_NAME"`
		ColumnName string `db:"COLUMN_NAME"`
		DataType   string `db:"DATA_TYPE"`
		ColumnKey  string `db:"COLUMN_KEY"`
	}
	var cols []column
	query = db.Rebind(`SELECT TABLE_NAME, COLUMN_NAME, DATA_TYPE, COLUMN_KEY
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ` + schemaExpr + `
		ORDER BY TABLE_NAME, ORDINAL_POSITION`)
	if err := db.SelectContext(ctx, &cols, query, args...); err != nil {
		return nil, fmt.Errorf("inspect mysql columns: %w", err)
	}

	type fkColumn struct {
		TableName  string `db:"TABLE_NAME"`
		ColumnName string `db:"COLUMN_NAME"`
	}
	var fks []fkColumn
	query = db.Rebind(`SELECT TABLE_NAME, COLUMN_NAME
		FROM information_schema.KEY_COLUMN_USAGE
		WHERE TABLE_SCHEMA = ` + schemaExpr + `
		AND REFERENCED_TABLE_NAME IS NOT NULL`)
	if err := db.SelectContext(ctx, &fks, query, args...); err != nil {
		return nil, fmt.Errorf("inspect mysql foreign keys: %w", err)
	}
	foreign := make(map[string]map[string]bool)
	for _, fk := range fks {
		if foreign[fk.TableName] == nil {
			foreign[fk.TableName] = make(map[string]bool)
		}
		foreign[fk.TableName][fk.ColumnName] = true
	}

	tables, index := newTables(cfg.schema, names)
	for _, c := range cols {
		t, ok := index[c.TableName]
		if !ok {
			continue // views are listed in COLUMNS but not in the table set
		}
		t.Columns = append(t.Columns, &schema.Column{
			Name:       c.ColumnName,
			Type:       c.DataType,
			IsString:   mysqlStringType(c.DataType),
			PrimaryKey: c.ColumnKey == "PRI",
			ForeignKey: foreign[c.TableName][c.ColumnName],
		})
	}
	return tables, nil
}

func postgresTables(ctx context.Context, db *sqlx.DB, cfg *inspectConfig) ([]*schema.Table, error) {
	pgSchema := cfg.schema
	if pgSchema == "" {
		pgSchema = "public"
	}
	var names []string
	query := db.Rebind(`SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ?
		AND table_type = 'BASE TABLE'
		ORDER BY table_name`)
	if err := db.SelectContext(ctx, &names, query, pgSchema); err != nil {
		return nil, fmt.Errorf("inspect postgres tables: %w", err)
	}

	type column struct {
		TableName  string `db:"table_name"`
		ColumnName string `db:"column_name"`
		DataType   string `db:"data_type"`
	}
	var cols []column
	query = db.Rebind(`SELECT table_name, column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = ?
		ORDER BY table_name, ordinal_position`)
	if err := db.SelectContext(ctx, &cols, query, pgSchema); err != nil {
		return nil, fmt.Errorf("inspect postgres columns: %w", err)
	}

	type keyColumn struct {
		TableName      string `db:"table_name"`
		ColumnName     string `db:"column_name"`
		ConstraintType string `db:"constraint_type"`
	}
	var keys []keyColumn
	query = db.Rebind(`SELECT tc.table_name, kcu.column_name, tc.constraint_type
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		ON tc.constraint_name = kcu.constraint_name
		AND tc.table_schema = kcu.table_schema
		WHERE tc.table_schema = ?
		AND tc.constraint_type IN ('PRIMARY KEY', 'FOREIGN KEY')`)
	if err := db.SelectContext(ctx, &keys, query, pgSchema); err != nil {
		return nil, fmt.Errorf("inspect postgres constraints: %w", err)
	}
	primary := make(map[string]map[string]bool)
	foreign := make(map[string]map[string]bool)
	for _, k := range keys {
		set := primary
		if k.ConstraintType == "FOREIGN KEY" {
			set = foreign
		}
		if set[k.TableName] == nil {
			set[k.TableName] = make(map[string]bool)
		}
		set[k.TableName][k.ColumnName] = true
	}

	tables, index := newTables(pgSchema, names)
	for _, c := range cols {
		t, ok := index[c.TableName]
		if !ok {
			continue
		}
		t.Columns = append(t.Columns, &schema.Column{
			Name:       c.ColumnName,
			Type:       c.DataType,
			IsString:   postgresStringType(c.DataType),
			PrimaryKey: primary[c.TableName][c.ColumnName],
			ForeignKey: foreign[c.TableName][c.ColumnName],
		})
	}
	return tables, nil
}

func sqliteTables(ctx context.Context, db *sqlx.DB) ([]*schema.Table, error) {
	var names []string
	err := db.SelectContext(ctx, &names, `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("inspect sqlite tables: %w", err)
	}

	type column struct {
		CID       int            `db:"cid"`
		Name      string         `db:"name"`
		Type      string         `db:"type"`
		NotNull   int            `db:"notnull"`
		DfltValue sql.NullString `db:"dflt_value"`
		PK        int            `db:"pk"`
	}
	type fk struct {
		ID       int            `db:"id"`
		Seq      int            `db:"seq"`
		Table    string         `db:"table"`
		From     string         `db:"from"`
		To       sql.NullString `db:"to"`
		OnUpdate string         `db:"on_update"`
		OnDelete string         `db:"on_delete"`
		Match    string         `db:"match"`
	}

	tables, _ := newTables("", names)
	for _, t := range tables {
		var cols []column
		if err := db.SelectContext(ctx, &cols, fmt.Sprintf("PRAGMA table_info(%q)", t.Name)); err != nil {
			return nil, fmt.Errorf("inspect sqlite table %s: %w", t.Name, err)
		}
		var fks []fk
		if err := db.SelectContext(ctx, &fks, fmt.Sprintf("PRAGMA foreign_key_list(%q)", t.Name)); err != nil {
			return nil, fmt.Errorf("inspect sqlite foreign keys of %s: %w", t.Name, err)
		}
		foreign := make(map[string]bool, len(fks))
		for _, f := range fks {
			foreign[f.From] = true
		}
		for _, c := range cols {
			t.Columns = append(t.Columns, &schema.Column{
				Name:       c.Name,
				Type:       c.Type,
				IsString:   sqliteStringType(c.Type),
				PrimaryKey: c.PK > 0,
				ForeignKey: foreign[c.Name],
			})
		}
	}
	return tables, nil
}

// newTables builds empty table shells in listing order with a name index.
func newTables(schemaName string, names []string) ([]*schema.Table, map[string]*schema.Table) {
	tables := make([]*schema.Table, 0, len(names))
	index := make(map[string]*schema.Table, len(names))
	for _, name := range names {
		t := &schema.Table{
			Schema:    schemaName,
			Name:      name,
			CleanName: schema.CleanName(name),
		}
		tables = append(tables, t)
		index[name] = t
	}
	return tables, index
}

func mysqlStringType(dataType string) bool {
	switch strings.ToLower(dataType) {
	case mysql.TypeVarchar, mysql.TypeChar, mysql.TypeText,
		mysql.TypeTinyText, mysql.TypeMediumText, mysql.TypeLongText,
		mysql.TypeEnum, mysql.TypeSet:
		return true
	}
	return false
}

func postgresStringType(dataType string) bool {
	switch strings.ToLower(dataType) {
	case postgres.TypeVarChar, postgres.TypeCharVar, postgres.TypeChar,
		postgres.TypeCharacter, postgres.TypeText:
		return true
	}
	return false
}

// sqliteStringType follows the TEXT affinity rules: any declared type
// containing CHAR, CLOB or TEXT stores text.
func sqliteStringType(declType string) bool {
	u := strings.ToUpper(declType)
	return strings.Contains(u, "CHAR") || strings.Contains(u, "CLOB") || strings.Contains(u, "TEXT")
}

func compileExclude(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("load: invalid exclude pattern %q: %w", p, err)
		}
		res = append(res, re)
	}
	return res, nil
}

func filterTables(tables []*schema.Table, exclude []*regexp.Regexp) []*schema.Table {
	if len(exclude) == 0 {
		return tables
	}
	out := make([]*schema.Table, 0, len(tables))
	for _, t := range tables {
		if matchAny(t.Name, exclude) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchAny(name string, res []*regexp.Regexp) bool {
	for _, re := range res {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
