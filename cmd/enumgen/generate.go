package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/enumgen"
	"github.com/syssam/enumgen/compiler/gen"
	"github.com/syssam/enumgen/compiler/load"
	"github.com/syssam/enumgen/dialect"
	"github.com/syssam/enumgen/dialect/sql"
	"github.com/syssam/enumgen/schema"
)

// driverNames maps a dialect to the database/sql driver registered for it.
var driverNames = map[string]string{
	dialect.MySQL:    "mysql",
	dialect.Postgres: "postgres",
	dialect.SQLite:   "sqlite",
}

type generateOptions struct {
	dsn          string
	dialect      string
	dbSchema     string
	out          string
	pkg          string
	header       string
	multiPrefix  string
	workers      int
	rules        []string
	exclude      []string
	configPath   string
	snapshotPath string
	watch        bool
	verbose      bool
}

// GenerateCmd returns the generate command.
func GenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate enum files for every table matched by a rule",
		Example: `  enumgen generate --dsn "user:pass@tcp(localhost:3306)/northwind" -r Categories
  enumgen generate -c enumgen.yml --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loadEnv()

			run := func(ctx context.Context) error {
				o := opts
				if err := o.resolve(cmd); err != nil {
					return err
				}
				return o.generate(ctx)
			}

			if opts.watch {
				if opts.configPath == "" {
					return errors.New("--watch requires --config")
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				return watchFiles(ctx, []string{opts.configPath}, run)
			}
			return run(cmd.Context())
		},
	}

	bindGenerateFlags(cmd, &opts)
	return cmd
}

func bindGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "database connection string (defaults to $ENUMGEN_DSN)")
	cmd.Flags().StringVarP(&opts.dialect, "dialect", "d", "mysql", "source database dialect: mysql, postgres or sqlite")
	cmd.Flags().StringVar(&opts.dbSchema, "db-schema", "", "database schema to inspect (defaults to the connection's)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory for generated files")
	cmd.Flags().StringVar(&opts.pkg, "pkg", "", "package name for generated files")
	cmd.Flags().StringArrayVarP(&opts.rules, "rules", "r", nil, "table rule, repeatable (pattern:name:id:desc:where)")
	cmd.Flags().StringVar(&opts.multiPrefix, "multi-prefix", "", "directive prefix marking grouped-enum rules")
	cmd.Flags().StringArrayVar(&opts.exclude, "exclude", nil, "table name pattern to skip, repeatable")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "tables generated in parallel (defaults to GOMAXPROCS)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "yaml config file; flags override its values")
	cmd.Flags().StringVar(&opts.snapshotPath, "snapshot", "", "read table metadata from this snapshot instead of inspecting")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-run generation when the config file changes")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every lookup query as it runs")
}

// resolve folds the config file under the flags and validates the result.
// Called per run so that watch mode picks up config edits.
func (o *generateOptions) resolve(cmd *cobra.Command) error {
	if o.configPath != "" {
		fc, err := readFileConfig(o.configPath)
		if err != nil {
			return err
		}
		o.mergeFile(cmd, fc)
	}
	if o.dsn == "" {
		o.dsn = os.Getenv("ENUMGEN_DSN")
	}
	if o.dsn == "" {
		return errors.New("no DSN configured (use --dsn, the config file or ENUMGEN_DSN)")
	}
	if len(o.rules) == 0 {
		return errors.New("no rules configured (use --rules or the config file)")
	}
	return nil
}

func (o *generateOptions) mergeFile(cmd *cobra.Command, fc *fileConfig) {
	flags := cmd.Flags()
	if !flags.Changed("dsn") && fc.DSN != "" {
		o.dsn = fc.DSN
	}
	if !flags.Changed("dialect") && fc.Dialect != "" {
		o.dialect = fc.Dialect
	}
	if !flags.Changed("db-schema") && fc.Schema != "" {
		o.dbSchema = fc.Schema
	}
	if !flags.Changed("out") && fc.Out != "" {
		o.out = fc.Out
	}
	if !flags.Changed("pkg") && fc.Package != "" {
		o.pkg = fc.Package
	}
	if !flags.Changed("multi-prefix") && fc.MultiPrefix != "" {
		o.multiPrefix = fc.MultiPrefix
	}
	if !flags.Changed("workers") && fc.Workers > 0 {
		o.workers = fc.Workers
	}
	if !flags.Changed("rules") && len(fc.Rules) > 0 {
		o.rules = fc.Rules
	}
	if !flags.Changed("exclude") && len(fc.Exclude) > 0 {
		o.exclude = fc.Exclude
	}
	o.header = fc.Header
}

func (o *generateOptions) generate(ctx context.Context) error {
	db, err := openDB(ctx, o.dialect, o.dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	var tables []*schema.Table
	if o.snapshotPath != "" {
		snap, err := load.ReadSnapshot(o.snapshotPath)
		if err != nil {
			return err
		}
		if snap.Dialect != o.dialect {
			fmt.Fprintln(os.Stderr, color.New(color.FgYellow).Sprintf(
				"snapshot was inspected as %s but generating against %s", snap.Dialect, o.dialect))
		}
		tables, err = load.Filter(snap.Tables, o.exclude)
		if err != nil {
			return err
		}
	} else {
		var iopts []load.InspectOption
		if o.dbSchema != "" {
			iopts = append(iopts, load.WithSchema(o.dbSchema))
		}
		if len(o.exclude) > 0 {
			iopts = append(iopts, load.WithExclude(o.exclude...))
		}
		tables, err = load.Tables(ctx, db, o.dialect, iopts...)
		if err != nil {
			return err
		}
	}

	sdrv := sql.NewStatsDriver(sql.OpenDB(o.dialect, db.DB), sql.WithSlowQueryLog())
	var drv dialect.Driver = sdrv
	if o.verbose {
		drv = sql.NewDebugDriver(sdrv)
	}

	results, err := enumgen.GenerateTables(ctx, drv, tables, o.genOptions()...)
	if err != nil {
		return err
	}
	printSummary(results, sdrv.QueryStats().Stats())
	return nil
}

func (o *generateOptions) genOptions() []gen.Option {
	opts := []gen.Option{gen.WithRules(o.rules...)}
	if o.out != "" {
		opts = append(opts, gen.WithTarget(o.out))
	}
	if o.pkg != "" {
		opts = append(opts, gen.WithPackage(o.pkg))
	}
	if o.header != "" {
		opts = append(opts, gen.WithHeader(o.header))
	}
	if o.multiPrefix != "" {
		opts = append(opts, gen.WithMultiPrefix(o.multiPrefix))
	}
	if o.workers > 0 {
		opts = append(opts, gen.WithWorkers(o.workers))
	}
	return opts
}

func openDB(ctx context.Context, dialectName, dsn string) (*sqlx.DB, error) {
	driver, ok := driverNames[dialectName]
	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q (want mysql, postgres or sqlite)", dialectName)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", dialectName, err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("connect to %s: %w", dialectName, err), db.Close())
	}
	return db, nil
}

func printSummary(results []gen.Result, stats sql.StatsSnapshot) {
	if len(results) == 0 {
		fmt.Println("no tables matched the configured rules")
		return
	}
	diagnostics := 0
	for _, r := range results {
		line := fmt.Sprintf("  %s -> %s", r.Table, r.Path)
		if r.Diagnostics > 0 {
			diagnostics += r.Diagnostics
			line += " " + color.New(color.FgYellow).Sprintf("(%d diagnostics)", r.Diagnostics)
		}
		fmt.Println(line)
	}
	summary := fmt.Sprintf("generated %d file(s) (%d queries in %s)",
		len(results), stats.TotalQueries, stats.TotalDuration)
	if diagnostics > 0 {
		summary += ", " + color.New(color.FgYellow).Sprintf("%d diagnostics", diagnostics)
	}
	fmt.Println(summary)
}

// loadEnv loads the first .env file it finds so DSNs can stay out of shell
// history. Missing files are fine.
func loadEnv() {
	for _, p := range []string{".env", "../.env"} {
		if err := godotenv.Load(p); err == nil {
			return
		}
	}
}

type fileConfig struct {
	DSN         string     `yaml:"dsn"`
	Dialect     string     `yaml:"dialect"`
	Schema      string     `yaml:"schema"`
	Out         string     `yaml:"out"`
	Package     string     `yaml:"pkg"`
	Header      string     `yaml:"header"`
	MultiPrefix string     `yaml:"multi_prefix"`
	Workers     int        `yaml:"workers"`
	Rules       StringList `yaml:"rules"`
	Exclude     StringList `yaml:"exclude"`
}

// StringList is a YAML value that can be either a string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler for StringList.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("expected string or list, got %v", node.Kind)
	}
}

func readFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}
