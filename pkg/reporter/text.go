package reporter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/efmtlang/elfmt/internal/ui/pretty"
	"github.com/efmtlang/elfmt/pkg/format"
	"github.com/efmtlang/elfmt/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var reported int
	for _, file := range result.Files {
		if file.Err == nil && !file.Changed {
			continue
		}

		var sourceLine string
		if r.opts.ShowContext && file.Err != nil {
			if line, _, ok := errorLocation(file.Err); ok {
				sourceLine = sourceLineAt(file.Original, line)
			}
		}

		fmt.Fprint(r.bw, r.styles.FormatOutcome(file, r.opts.ShowContext, sourceLine))
		reported++
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return reported, nil
}

// errorLocation extracts a line/column from a formatter core error, if
// it carries one.
func errorLocation(err error) (line, col int, ok bool) {
	var fErr *format.Error
	if errors.As(err, &fErr) {
		return fErr.Location()
	}
	return 0, 0, false
}

// sourceLineAt returns the 1-indexed lineNum-th line of source, or ""
// if the file has fewer lines.
func sourceLineAt(source []byte, lineNum int) string {
	if lineNum <= 0 {
		return ""
	}
	lines := strings.Split(string(source), "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
