package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Drivers for the supported source databases.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "enumgen",
		Short:   "Generate Go enums from database lookup tables",
		Version: version(),
		Long: `enumgen turns relational lookup tables into Go enum declarations.

Tables are matched against configurable rules; each matched table becomes
one generated file of typed constants. Failures inside a rule never abort
the run: they are written into the output as comments so a single broken
rule cannot block the rest of the schema.`,
	}

	rootCmd.AddCommand(GenerateCmd())
	rootCmd.AddCommand(InspectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
