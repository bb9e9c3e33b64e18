package pretty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/efmtlang/elfmt/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files reformatted, 1 file errored, 12 unchanged".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesErrored == 0 && stats.FilesChanged == 0 {
		return s.Success.Render("No changes needed") +
			s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed)) + "\n"
	}

	var parts []string

	if stats.FilesChanged > 0 {
		word := "files"
		if stats.FilesChanged == 1 {
			word = "file"
		}
		if stats.FilesWritten > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s reformatted", stats.FilesWritten, word)))
		} else {
			parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s would be reformatted", stats.FilesChanged, word)))
		}
	}

	if stats.FilesErrored > 0 {
		word := "files"
		if stats.FilesErrored == 1 {
			word = "file"
		}
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s errored", stats.FilesErrored, word)))
	}

	unchanged := stats.FilesProcessed - stats.FilesChanged - stats.FilesErrored
	if unchanged > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", unchanged))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a multi-line summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files changed:     " +
			s.Warning.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}
	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files errored:     " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	if len(stats.ErrorsByKind) > 0 {
		builder.WriteString("\n")
		kinds := make([]string, 0, len(stats.ErrorsByKind))
		for kind := range stats.ErrorsByKind {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			builder.WriteString("    " + kind + ":" +
				strings.Repeat(" ", max(1, 20-len(kind))) +
				s.Error.Render(strconv.Itoa(stats.ErrorsByKind[kind])) + "\n")
		}
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Format failed"))
	case stats.FilesChanged > 0:
		builder.WriteString(s.Warning.Render("Format found files that need reformatting"))
	default:
		builder.WriteString(s.Success.Render("Format passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
