package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/enumgen/compiler/load"
	"github.com/syssam/enumgen/schema"
)

type inspectOptions struct {
	dsn          string
	dialect      string
	dbSchema     string
	exclude      []string
	configPath   string
	snapshotPath string
}

// InspectCmd returns the inspect command.
func InspectCmd() *cobra.Command {
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List table metadata as the generator resolves it",
		Long: `inspect connects to the source database and prints every table with its
columns, marking primary keys, foreign keys and string-typed columns. The
markers show which columns the rule defaults would pick. With --snapshot
the metadata is also written to a file that generate can read back, so
repeated runs against a slow or remote schema skip the inspection queries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loadEnv()
			if err := opts.resolve(cmd); err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := openDB(ctx, opts.dialect, opts.dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			var iopts []load.InspectOption
			if opts.dbSchema != "" {
				iopts = append(iopts, load.WithSchema(opts.dbSchema))
			}
			if len(opts.exclude) > 0 {
				iopts = append(iopts, load.WithExclude(opts.exclude...))
			}
			tables, err := load.Tables(ctx, db, opts.dialect, iopts...)
			if err != nil {
				return err
			}

			printTables(tables)

			if opts.snapshotPath != "" {
				snap := load.NewSnapshot(opts.dialect, opts.dbSchema, tables)
				if err := load.WriteSnapshot(opts.snapshotPath, snap); err != nil {
					return err
				}
				fmt.Printf("snapshot written to %s\n", opts.snapshotPath)
			}
			return nil
		},
	}

	bindInspectFlags(cmd, &opts)
	return cmd
}

func bindInspectFlags(cmd *cobra.Command, opts *inspectOptions) {
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "database connection string (defaults to $ENUMGEN_DSN)")
	cmd.Flags().StringVarP(&opts.dialect, "dialect", "d", "mysql", "source database dialect: mysql, postgres or sqlite")
	cmd.Flags().StringVar(&opts.dbSchema, "db-schema", "", "database schema to inspect (defaults to the connection's)")
	cmd.Flags().StringArrayVar(&opts.exclude, "exclude", nil, "table name pattern to skip, repeatable")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "yaml config file; flags override its values")
	cmd.Flags().StringVar(&opts.snapshotPath, "snapshot", "", "write inspected metadata to this file")
}

func (o *inspectOptions) resolve(cmd *cobra.Command) error {
	if o.configPath != "" {
		fc, err := readFileConfig(o.configPath)
		if err != nil {
			return err
		}
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
		if !flags.Changed("exclude") && len(fc.Exclude) > 0 {
			o.exclude = fc.Exclude
		}
	}
	if o.dsn == "" {
		o.dsn = os.Getenv("ENUMGEN_DSN")
	}
	if o.dsn == "" {
		return errors.New("no DSN configured (use --dsn, the config file or ENUMGEN_DSN)")
	}
	return nil
}

func printTables(tables []*schema.Table) {
	if len(tables) == 0 {
		fmt.Println("no tables found")
		return
	}
	green := color.New(color.FgGreen)
	for _, t := range tables {
		if ident := t.Ident(); ident != t.Name {
			fmt.Printf("%s (as %s)\n", green.Sprint(t.Name), ident)
		} else {
			fmt.Println(green.Sprint(t.Name))
		}
		for _, c := range t.Columns {
			fmt.Printf("  %-30s %-14s%s\n", c.Name, c.Type, columnMarkers(c))
		}
	}
	fmt.Printf("%d table(s)\n", len(tables))
}

func columnMarkers(c *schema.Column) string {
	var m []string
	if c.PrimaryKey {
		m = append(m, "PK")
	}
	if c.ForeignKey {
		m = append(m, "FK")
	}
	if c.IsString {
		m = append(m, "string")
	}
	return strings.Join(m, ",")
}
