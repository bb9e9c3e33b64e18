// Package format is the top-level entry point of the formatter core:
// it wires the lexer, parser, format-tree builder, and layout engine
// together and normalizes the result.
package format

import (
	"strings"

	"github.com/efmtlang/elfmt/pkg/layout"
	"github.com/efmtlang/elfmt/pkg/lexer"
	"github.com/efmtlang/elfmt/pkg/parser"
	"github.com/efmtlang/elfmt/pkg/token"
)

// Options controls the core formatting pass. Both fields are part of
// the stable external contract: a caller that never sets them gets the
// documented defaults.
type Options struct {
	MaxLineWidth int
	IndentUnit   int
}

// DefaultOptions returns the default formatting options: a 100-column
// width and a 4-space indent unit.
func DefaultOptions() Options {
	return Options{MaxLineWidth: 100, IndentUnit: 4}
}

func (o Options) withDefaults() Options {
	if o.MaxLineWidth <= 0 {
		o.MaxLineWidth = 100
	}
	if o.IndentUnit <= 0 {
		o.IndentUnit = 4
	}
	return o
}

// Format parses source and re-renders it through the layout engine,
// returning the formatted bytes. It never returns a partial result: on
// any error the returned slice is nil.
func Format(source []byte, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	toks, lexErr := lexer.Tokenize(source)
	if lexErr != nil {
		return nil, wrapError(lexErr)
	}

	tree, parseErr := parser.Parse(toks)
	if parseErr != nil {
		return nil, wrapError(parseErr)
	}

	stream := token.New(source, toks)
	b := newBuilder(stream)
	doc := b.build(tree)

	rendered := layout.Render(doc, layout.Options{
		MaxLineWidth: opts.MaxLineWidth,
		IndentUnit:   opts.IndentUnit,
	})
	return normalize(rendered), nil
}

// normalize strips trailing whitespace from every line and ensures the
// output ends in exactly one newline, matching the newline-
// normalization testable property.
func normalize(rendered string) []byte {
	if rendered == "" {
		return []byte("")
	}
	lines := strings.Split(rendered, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	out := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	return []byte(out + "\n")
}
