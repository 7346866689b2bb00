package schema

import "strings"

// Column describes one column of a source table as reported by the database.
type Column struct {
	Name       string // column name as declared
	Type       string // database type name, lowercased
	IsString   bool   // character-like type; values are emitted as quoted literals
	PrimaryKey bool
	ForeignKey bool
}

// Table describes one source table. Columns keep their declared order, which
// drives the default id and description column resolution.
type Table struct {
	Schema    string // owning database schema, may be empty
	Name      string // table name as declared
	CleanName string // identifier-safe PascalCase form of Name
	Columns   []*Column
}

// Column returns the column with the given name, matched case-insensitively
// the way database identifiers resolve, or nil if no column matches.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// Ident returns the identifier-safe name of the table: CleanName when the
// provider filled it, a sanitized fallback otherwise.
func (t *Table) Ident() string {
	if t.CleanName != "" {
		return t.CleanName
	}
	return CleanIdent(t.Name)
}
