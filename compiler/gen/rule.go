package gen

import (
	"regexp"
	"strings"
)

// ruleFields is the maximum number of ':' separated fields in a rule line.
// The final field keeps any embedded separators, so a where clause may
// contain ':' freely.
const ruleFields = 5

// Rule is one parsed configuration line. Only the table pattern is required;
// missing trailing fields default to empty and are resolved against the
// table's columns later. A Rule is immutable once parsed.
type Rule struct {
	// Raw is the original rule line, kept for diagnostics.
	Raw string
	// TablePattern is a regular expression matched case-insensitively
	// against table names.
	TablePattern string
	// EnumName overrides the derived enum type name. Empty when defaulted
	// or when the rule is MULTI.
	EnumName string
	// Multi reports whether the table's rows split into one enum per
	// contiguous run of equal KeyColumn values.
	Multi bool
	// KeyColumn is the discriminator column of a MULTI rule.
	KeyColumn string
	// IDColumn supplies member values. Empty means the primary key.
	IDColumn string
	// DescColumn supplies member names. Empty means the first column that
	// is string-typed and neither primary nor foreign key.
	DescColumn string
	// Where is appended verbatim to the lookup query and includes the
	// WHERE keyword itself.
	Where string

	pattern    *regexp.Regexp
	patternErr error
}

// ParseRule parses a single rule line. Parsing is total: short lines default
// the missing fields, each present field is trimmed, and an invalid table
// pattern is carried inside the Rule and reported when the rule is matched.
func ParseRule(line, multiPrefix string) Rule {
	r := Rule{Raw: line}
	fields := strings.SplitN(line, ":", ruleFields)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	r.TablePattern = fieldAt(fields, 0)
	if name := fieldAt(fields, 1); isMultiDirective(name, multiPrefix) {
		r.Multi = true
		r.KeyColumn = name[len(multiPrefix):]
	} else {
		r.EnumName = name
	}
	r.IDColumn = fieldAt(fields, 2)
	r.DescColumn = fieldAt(fields, 3)
	r.Where = fieldAt(fields, 4)
	r.pattern, r.patternErr = regexp.Compile("(?i)" + r.TablePattern)
	return r
}

// Match reports whether the rule's table pattern matches the given table
// name, case-insensitively. An invalid pattern returns its compile error.
func (r Rule) Match(name string) (bool, error) {
	if r.patternErr != nil {
		return false, r.patternErr
	}
	return r.pattern.MatchString(name), nil
}

func isMultiDirective(field, prefix string) bool {
	return prefix != "" && len(field) >= len(prefix) && strings.EqualFold(field[:len(prefix)], prefix)
}

func fieldAt(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
