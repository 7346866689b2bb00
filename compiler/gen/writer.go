package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/enumgen/schema"
)

// Result describes one generated file.
type Result struct {
	// Table is the source table name as it appears in the database.
	Table string
	// Path is the location of the written file.
	Path string
	// Diagnostics counts the inline diagnostic comments in the file.
	Diagnostics int
}

// Writer renders one file per table through a Generator, formats the output
// with goimports and writes it under the configured target directory.
type Writer struct {
	gen *Generator
}

// NewWriter creates a Writer over the given generator.
func NewWriter(g *Generator) *Writer {
	return &Writer{gen: g}
}

// WriteAll generates all tables in parallel, bounded by Config.Workers, and
// writes one file per table that produced text. Tables no rule matches
// produce no file and no result. Results come back in table order.
func (w *Writer) WriteAll(ctx context.Context, tables []*schema.Table) ([]Result, error) {
	cfg := w.gen.Config()
	if err := os.MkdirAll(cfg.Target, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	results := make([]*Result, len(tables))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)
	for i, t := range tables {
		i, t := i, t
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			res, err := w.writeTable(ctx, t)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(tables))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// writeTable renders one table and writes its formatted file. A nil result
// with a nil error means no rule matched the table.
func (w *Writer) writeTable(ctx context.Context, t *schema.Table) (*Result, error) {
	text := w.gen.Generate(ctx, t)
	if text == "" {
		return nil, nil
	}
	cfg := w.gen.Config()
	var buf bytes.Buffer
	if cfg.Header != "" {
		fmt.Fprintf(&buf, "// %s\n\n", cfg.Header)
	}
	fmt.Fprintf(&buf, "package %s\n\n", cfg.Package)
	buf.WriteString(text)

	name := inflect.Underscore(t.Ident()) + ".go"
	path := filepath.Join(cfg.Target, name)
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		// Keep the unformatted output around for debugging.
		debug := path + ".error"
		_ = os.WriteFile(debug, buf.Bytes(), 0o644)
		return nil, NewFormatError(name, fmt.Errorf("%w (unformatted written to %s)", err, debug))
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", name, err)
	}
	return &Result{
		Table:       t.Name,
		Path:        path,
		Diagnostics: strings.Count(text, DiagnosticPrefix),
	}, nil
}
