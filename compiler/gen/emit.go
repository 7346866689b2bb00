package gen

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
)

// emitter renders one block into source text. Two fixed strategies exist,
// selected by the resolved IDIsString flag.
type emitter interface {
	emit(spec ResolvedSpec, b Block) string
}

// Emit renders a block under the given spec. It is purely a formatter:
// member order is reproduced exactly and nothing is validated or deduped.
// Member constants carry the enum type name as prefix so that any number of
// enums coexist in one generated package.
func Emit(spec ResolvedSpec, b Block) string {
	var e emitter = intEmitter{}
	if spec.IDIsString {
		e = stringEmitter{}
	}
	return e.emit(spec, b)
}

// intEmitter renders integer-keyed blocks as a typed int enumeration.
// Values are written as raw text standing in for integer literals; the
// source column's textual representation is trusted.
type intEmitter struct{}

func (intEmitter) emit(spec ResolvedSpec, b Block) string {
	return render(
		blockComment(spec, b),
		jen.Type().Id(b.EnumName).Int(),
		jen.Const().DefsFunc(func(defs *jen.Group) {
			for _, m := range b.Members {
				defs.Id(b.EnumName + m.Name).Id(b.EnumName).Op("=").Id(m.Value)
			}
		}),
	)
}

// stringEmitter renders string-keyed blocks as a typed string holding one
// quoted constant per member, plus a String accessor for the underlying
// lookup value.
type stringEmitter struct{}

func (stringEmitter) emit(spec ResolvedSpec, b Block) string {
	return render(
		blockComment(spec, b),
		jen.Type().Id(b.EnumName).String(),
		jen.Const().DefsFunc(func(defs *jen.Group) {
			for _, m := range b.Members {
				defs.Id(b.EnumName + m.Name).Id(b.EnumName).Op("=").Lit(m.Value)
			}
		}),
		jen.Func().Params(jen.Id("e").Id(b.EnumName)).Id("String").Params().String().Block(
			jen.Return(jen.String().Call(jen.Id("e"))),
		),
	)
}

func blockComment(spec ResolvedSpec, b Block) *jen.Statement {
	return jen.Commentf("%s enumerates rows of table %s (%s / %s).",
		b.EnumName, spec.Table.Name, spec.IDColumn, spec.DescColumn)
}

func render(decls ...*jen.Statement) string {
	var sb strings.Builder
	for i, d := range decls {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%#v", d)
	}
	sb.WriteString("\n")
	return sb.String()
}
