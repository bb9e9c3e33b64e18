package pretty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/efmtlang/elfmt/pkg/format"
	"github.com/efmtlang/elfmt/pkg/runner"
)

// statusLabel classifies a file outcome into a short status word used
// across text and table output.
func statusLabel(o runner.FileOutcome) string {
	switch {
	case o.Err != nil:
		return "error"
	case o.Written:
		return "reformatted"
	case o.Changed:
		return "would reformat"
	default:
		return "unchanged"
	}
}

// FormatOutcome formats a single file outcome for terminal output. When
// showContext is true and the underlying error carries a source line, a
// caret-annotated excerpt is appended below the summary line.
func (s *Styles) FormatOutcome(o runner.FileOutcome, showContext bool, sourceLine string) string {
	var builder strings.Builder

	label := statusLabel(o)

	var styledLabel string
	switch label {
	case "error":
		styledLabel = s.Error.Render(label)
	case "would reformat":
		styledLabel = s.Warning.Render(label)
	case "reformatted":
		styledLabel = s.Success.Render(label)
	default:
		styledLabel = s.Info.Render(label)
	}

	location := s.FilePath.Render(o.Path)
	if o.Err != nil {
		var fErr *format.Error
		if errors.As(o.Err, &fErr) {
			if line, col, ok := fErr.Location(); ok {
				location = fmt.Sprintf("%s:%d:%d", s.FilePath.Render(o.Path), line, col)
			}
		}
	}

	builder.WriteString(fmt.Sprintf("  %s  %s\n", location, styledLabel))

	if o.Err != nil {
		builder.WriteString("    " + s.Message.Render(o.Err.Error()) + "\n")
		if showContext && sourceLine != "" {
			var fErr *format.Error
			col := 0
			if errors.As(o.Err, &fErr) {
				if _, c, ok := fErr.Location(); ok {
					col = c
				}
			}
			builder.WriteString(s.FormatSourceContext(sourceLine, col))
		}
	} else if o.BackedUp {
		builder.WriteString("    " + s.Dim.Render("backup written") + "\n")
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with outcome output
	const indent = "        "

	// Source line
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	// Caret marker
	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, label string) string {
	header := s.FilePath.Render(path)
	if label != "" {
		header += s.Dim.Render(" (" + label + ")")
	}
	return header
}
