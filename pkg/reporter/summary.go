package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/efmtlang/elfmt/internal/ui/pretty"
	"github.com/efmtlang/elfmt/pkg/analysis"
)

// Table layout constants for summary output.
const (
	tableWidth        = 90
	kindColWidth      = 30
	fileColWidth      = 60
	numColWidth       = 7
	maxKindNameLength = 28
	maxFilePathLength = 58
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats a run's outcome as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if !report.Totals.HasChanges() && !report.Totals.HasErrors() {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return nil
	}

	r.renderErrorKindTable(report.ByErrorKind)
	fmt.Fprintln(r.out)
	r.renderFileTable(report.Files)

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) renderErrorKindTable(kinds []analysis.ErrorKindAnalysis) {
	if len(kinds) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Errors Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.out, "%s %s\n",
		r.styles.TableHeader.Render(padRight("Kind", kindColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, kind := range kinds {
		name := kind.Kind
		if len(name) > maxKindNameLength {
			name = name[:maxKindNameLength] + "…"
		}

		styledName := r.styles.TableErrorRow.Render(padRight(name, kindColWidth))

		fmt.Fprintf(r.out, "%s %s\n",
			styledName,
			padLeft(strconv.Itoa(kind.Count), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileEntry) {
	var interesting []analysis.FileEntry
	for _, f := range files {
		if f.Errored || f.Changed {
			interesting = append(interesting, f)
		}
	}
	if len(interesting) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.out, "%s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Status", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, file := range interesting {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		paddedPath := padRight(path, fileColWidth)
		var styledPath, status string
		switch {
		case file.Errored:
			styledPath = r.styles.TableErrorRow.Render(paddedPath)
			status = "error"
		case file.Written:
			styledPath = paddedPath
			status = "written"
		default:
			styledPath = r.styles.TableWarnRow.Render(paddedPath)
			status = "changed"
		}

		fmt.Fprintf(r.out, "%s %s\n", styledPath, padLeft(status, numColWidth))
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	parts := []string{fmt.Sprintf("%d files checked", totals.Files)}

	if totals.Changed > 0 {
		parts = append(parts, r.styles.Warning.Render(fmt.Sprintf("%d changed", totals.Changed)))
	}
	if totals.Written > 0 {
		parts = append(parts, r.styles.Success.Render(fmt.Sprintf("%d written", totals.Written)))
	}
	if totals.Errored > 0 {
		parts = append(parts, r.styles.Error.Render(fmt.Sprintf("%d errored", totals.Errored)))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+strings.Join(parts, ", "))
}
