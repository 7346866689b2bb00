package gen

import (
	"strings"

	"github.com/syssam/enumgen/schema"
)

// ResolvedSpec is one rule bound to one table's concrete column choices.
type ResolvedSpec struct {
	Table      *schema.Table
	Rule       Rule
	IDColumn   string
	DescColumn string
	KeyColumn  string // empty unless MULTI
	Multi      bool
	IDIsString bool
	// EnumName is the effective enum type name. Empty for MULTI rules,
	// whose block names derive from each run's key value.
	EnumName string
}

// Resolve binds a rule to a table in one pass over the columns in their
// declared order. Blank rule columns adopt defaults during the pass: the
// primary key becomes the id column and the first string column that is
// neither primary nor foreign key becomes the description column. Explicit
// rule values are never overridden, even when no column matches them; the
// returned *ResolveError then names exactly which choices went unfound.
func Resolve(t *schema.Table, r Rule) (ResolvedSpec, error) {
	spec := ResolvedSpec{
		Table:      t,
		Rule:       r,
		IDColumn:   r.IDColumn,
		DescColumn: r.DescColumn,
		KeyColumn:  r.KeyColumn,
		Multi:      r.Multi,
		EnumName:   r.EnumName,
	}
	var idFound, descFound, keyFound bool
	for _, col := range t.Columns {
		if spec.IDColumn == "" && col.PrimaryKey {
			spec.IDColumn = col.Name
		}
		if spec.DescColumn == "" && !col.PrimaryKey && !col.ForeignKey && col.IsString {
			spec.DescColumn = col.Name
		}
		if spec.IDColumn != "" && strings.EqualFold(col.Name, spec.IDColumn) {
			idFound = true
			spec.IDIsString = col.IsString
		}
		if spec.DescColumn != "" && strings.EqualFold(col.Name, spec.DescColumn) {
			descFound = true
		}
		if spec.Multi && spec.KeyColumn != "" && strings.EqualFold(col.Name, spec.KeyColumn) {
			keyFound = true
		}
	}
	var missing []string
	if !idFound {
		missing = append(missing, "id")
	}
	if !descFound {
		missing = append(missing, "description")
	}
	if spec.Multi && !keyFound {
		missing = append(missing, "key")
	}
	if len(missing) > 0 {
		return ResolvedSpec{}, NewResolveError(r.Raw, t.Name, missing...)
	}
	if spec.EnumName == "" && !spec.Multi {
		spec.EnumName = t.Ident() + "Enum"
		if spec.IDIsString {
			spec.EnumName += "Str"
		}
	}
	return spec, nil
}

// Query builds the row-fetch SQL for the resolved columns. The key column
// is selected only for MULTI rules, and the where clause is appended
// verbatim. No ORDER BY is added: grouping relies on the order the database
// delivers rows, so MULTI sources are expected to keep equal keys contiguous.
func (s ResolvedSpec) Query() string {
	cols := s.IDColumn + "," + s.DescColumn
	if s.Multi {
		cols += "," + s.KeyColumn
	}
	q := "SELECT " + cols + " FROM " + s.Table.Name
	if w := s.Rule.Where; w != "" {
		q += " " + w
	}
	return q
}

// BlockName returns the enum type name for a block flushed under the given
// sanitized key value. Non-MULTI specs always use the resolved enum name.
func (s ResolvedSpec) BlockName(key string) string {
	if !s.Multi {
		return s.EnumName
	}
	name := key + "Enum"
	if s.IDIsString {
		name += "Str"
	}
	return name
}
