// Package schema carries the table metadata model the generator consumes.
//
// A provider (the compiler/load inspectors, a snapshot, or hand-built test
// fixtures) produces a slice of [Table] values whose columns preserve their
// declared order. Column order matters: when a rule leaves the id or
// description column blank, the generator defaults to the primary key and to
// the first non-key string column respectively, in declaration order.
//
// The package also owns identifier hygiene for generated code. [CleanIdent]
// turns arbitrary row text into a safe identifier fragment and [CleanName]
// produces the PascalCase type-name form of a table name.
package schema
