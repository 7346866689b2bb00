package gen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/enumgen/dialect"
	"github.com/syssam/enumgen/dialect/sql"
	"github.com/syssam/enumgen/schema"
)

// DiagnosticPrefix starts every inline diagnostic comment, keeping generated
// output greppable for soft failures.
const DiagnosticPrefix = "// enumgen:"

// Generator applies the configured rules to tables and renders enum text.
// Every per-rule failure (unresolvable columns, empty result, query error)
// degrades to an inline diagnostic comment; one bad rule never aborts a run.
//
// A Generator holds no per-run state and is safe for concurrent use across
// tables.
type Generator struct {
	drv   dialect.Driver
	cfg   *Config
	rules []Rule
}

// New creates a Generator over the given row source. Options are applied on
// top of DefaultConfig and rules are parsed once, in configured order.
func New(drv dialect.Driver, opts ...Option) (*Generator, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return NewGenerator(drv, cfg), nil
}

// NewGenerator creates a Generator from an existing Config.
func NewGenerator(drv dialect.Driver, cfg *Config) *Generator {
	return &Generator{drv: drv, cfg: cfg, rules: cfg.ParseRules()}
}

// Config returns the generator's configuration.
func (g *Generator) Config() *Config { return g.cfg }

// Generate renders the enum text for one table by walking every configured
// rule in order. Rules whose pattern does not match are skipped silently;
// matched rules contribute either their emitted blocks or a diagnostic.
// The result is the concatenation in rule-then-block order, or the empty
// string when no rule matched the table at all. Given identical metadata,
// rules and row streams the output is byte-identical across runs.
func (g *Generator) Generate(ctx context.Context, t *schema.Table) string {
	var out strings.Builder
	for _, r := range g.rules {
		ok, err := r.Match(t.Name)
		if err != nil {
			diagf(&out, "invalid table pattern in rule %q: %v", r.Raw, err)
			continue
		}
		if !ok {
			continue
		}
		spec, err := Resolve(t, r)
		if err != nil {
			diag(&out, err.Error())
			continue
		}
		query := spec.Query()
		blocks, found, err := g.fetch(ctx, spec, query)
		if err != nil {
			diagf(&out, "query failed: %s: %v", query, err)
			continue
		}
		if !found {
			diagf(&out, "no records found for table %s (rule %q)", t.Name, r.Raw)
			continue
		}
		for _, b := range blocks {
			out.WriteString(Emit(spec, b))
			out.WriteString("\n")
		}
	}
	return out.String()
}

// fetch runs the resolved query and folds the row stream into blocks. The
// rows are fully drained and released before the next rule runs; found is
// false when the query returned no rows.
func (g *Generator) fetch(ctx context.Context, spec ResolvedSpec, query string) (blocks []Block, found bool, err error) {
	rows := &sql.Rows{}
	if err := g.drv.Query(ctx, query, []any{}, rows); err != nil {
		return nil, false, err
	}
	defer func() {
		err = errors.Join(err, rows.Close())
	}()
	b := NewBlockBuilder(spec)
	for rows.Next() {
		var id, desc, key sql.NullString
		dest := []any{&id, &desc}
		if spec.Multi {
			dest = append(dest, &key)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, false, err
		}
		b.Add(Row{ID: id.String, Desc: desc.String, Key: key.String})
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	blocks, found = b.Finish()
	return blocks, found, nil
}

// diag appends one diagnostic comment line followed by a blank line. The
// message is expected to carry the "enumgen: " prefix already.
func diag(out *strings.Builder, msg string) {
	out.WriteString("// ")
	out.WriteString(msg)
	out.WriteString("\n\n")
}

func diagf(out *strings.Builder, format string, args ...any) {
	diag(out, "enumgen: "+fmt.Sprintf(format, args...))
}
