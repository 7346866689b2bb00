// Package gen turns database lookup tables into Go enum declarations.
//
// The package is driven by rules. A rule names a set of tables by regular
// expression and, optionally, pins the columns and output name to use:
//
//	TablePattern:EnumName:IdColumn:DescColumn:WhereClause
//
// Empty fields fall back to convention: the primary key column provides the
// enum value, the first string column that is neither primary nor foreign
// key provides the member name, and the enum type is named after the table.
// An EnumName field of the form "MULTI=KeyColumn" switches the rule into
// grouped mode, where each distinct value of KeyColumn starts its own enum
// block named after that value.
//
// # Pipeline
//
// Generation for one table runs in four stages:
//
//	Rule (parsed once per run)
//	        ↓
//	   ResolvedSpec (rule applied to table metadata)
//	        ↓
//	   Block building (single pass over the query rows)
//	        ↓
//	   Emitted Go text (Jennifer-rendered declarations)
//
// Generate never aborts a run for a single bad rule. Pattern errors,
// unresolvable columns, failed queries and empty result sets all degrade to
// inline diagnostic comments marked with DiagnosticPrefix, so a broken rule
// shows up in code review instead of halting the batch.
//
// # Error Handling
//
// Errors that do stop a run (bad options, unformattable output) use
// structured types with matching predicates:
//
//	if gen.IsConfigError(err) {
//	    // bad option value
//	}
//
// # Configuration
//
// Configuration uses the functional options pattern:
//
//	g, err := gen.New(drv,
//	    gen.WithRules("Categories", "^muck_lookup$:MULTI=LookupKey:LookupVal:LookupDescLong"),
//	    gen.WithTarget("./enums"),
//	    gen.WithPackage("enums"),
//	)
//
// # Output
//
// Emitted blocks come in two shapes, selected by the resolved id column
// type. Integer-keyed tables become typed int constant sets:
//
//	type CategoriesEnum int
//
//	const (
//	    CategoriesEnumBeverages  CategoriesEnum = 1
//	    CategoriesEnumCondiments CategoriesEnum = 2
//	)
//
// String-keyed tables become typed string constant sets with a String
// accessor, and their type name carries a "Str" suffix.
//
// Writer wires Generate to the filesystem: one file per table under
// Config.Target, generated in parallel with errgroup, formatted through
// goimports before writing.
package gen
