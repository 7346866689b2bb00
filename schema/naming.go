package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
)

// CleanIdent normalizes an arbitrary label (a row description, a MULTI key
// value, a table name) into a safe source identifier fragment. Surrounding
// whitespace is dropped, every maximal run of characters that are not
// letters, digits or underscores collapses to a single underscore, and an
// empty result becomes "_". A leading digit gets an underscore prefix so the
// result always starts a legal identifier.
func CleanIdent(raw string) string {
	s := strings.TrimSpace(raw)
	var b strings.Builder
	b.Grow(len(s) + 1)
	inRun := false
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteByte('_')
			inRun = true
		}
	}
	out := b.String()
	if out == "" {
		return "_"
	}
	if r, _ := utf8.DecodeRuneInString(out); unicode.IsDigit(r) {
		out = "_" + out
	}
	return out
}

// CleanName converts a raw table name to the PascalCase form used for
// generated type names: "order details" and "order_details" both become
// "OrderDetails". Names that are already PascalCase pass through unchanged.
func CleanName(raw string) string {
	ident := strings.Trim(CleanIdent(raw), "_")
	if ident == "" {
		return "_"
	}
	return inflect.Camelize(ident)
}
