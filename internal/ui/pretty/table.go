package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/efmtlang/elfmt/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding      = 2
	tableColumnCount  = 4 // FILE, STATUS, KIND, MESSAGE
	minFileWidth      = 20
	minStatusWidth    = 14
	minKindWidth      = 12
	minMessageWidth   = 35
	heavySeparator    = "="
	lightSeparator    = "-"
	defaultTermWidth  = 100
)

// TableRow represents a single row in the file outcome table.
type TableRow struct {
	File    string
	Status  string
	Kind    string
	Message string
}

// TableFormatter formats runner results as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FileOutcomeToTableRow converts a file outcome to a table row.
func FileOutcomeToTableRow(o runner.FileOutcome) TableRow {
	row := TableRow{
		File:   o.Path,
		Status: statusLabel(o),
	}
	if o.Err != nil {
		row.Kind = o.Kind()
		row.Message = o.Err.Error()
	}
	return row
}

// collectRows collects one row per file outcome that is changed or errored.
func (t *TableFormatter) collectRows(result *runner.Result) []TableRow {
	var rows []TableRow
	for _, file := range result.Files {
		if file.Err == nil && !file.Changed {
			continue
		}
		rows = append(rows, FileOutcomeToTableRow(file))
	}
	return rows
}

// FormatTable formats runner results as a styled table. Only files that
// changed or errored are shown; unchanged files are summarized in the
// legend line instead of cluttering the table.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := t.collectRows(result)
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend(result, len(rows)))
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	file    int
	status  int
	kind    int
	message int
}

// calculateColumnWidths determines optimal column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:    minFileWidth,
		status:  minStatusWidth,
		kind:    minKindWidth,
		message: minMessageWidth,
	}

	for _, row := range rows {
		if len(row.File) > widths.file {
			widths.file = len(row.File)
		}
		if len(row.Status) > widths.status {
			widths.status = len(row.Status)
		}
		if len(row.Kind) > widths.kind {
			widths.kind = len(row.Kind)
		}
		if len(row.Message) > widths.message {
			widths.message = len(row.Message)
		}
	}

	totalWidth := t.calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.message = max(minMessageWidth, widths.message-excess)

		totalWidth = t.calculateTotalWidth(widths)
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.file = max(minFileWidth, widths.file-excess)
		}
	}

	return widths
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.status + widths.kind + widths.message +
		(tablePadding * tableColumnCount)
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s ",
		widths.file, "FILE",
		widths.status, "STATUS",
		widths.kind, "KIND",
		widths.message, "MESSAGE",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	sep := strings.Repeat(char, t.calculateTotalWidth(widths))
	return t.styles.TableSeparator.Render(sep)
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	file := truncateFilePath(row.File, widths.file)
	status := truncateString(row.Status, widths.status)
	kind := truncateString(row.Kind, widths.kind)
	message := truncateString(row.Message, widths.message)

	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s ",
		widths.file, file,
		widths.status, status,
		widths.kind, kind,
		widths.message, message,
	)

	return t.getRowStyle(row.Status).Render(content)
}

// getRowStyle returns the appropriate style for a status label.
func (t *TableFormatter) getRowStyle(status string) lipgloss.Style {
	switch status {
	case "error":
		return t.styles.TableErrorRow
	case "would reformat":
		return t.styles.TableWarnRow
	case "reformatted":
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

// formatLegend formats a trailing line noting how many files were left
// out of the table because they were unchanged.
func (t *TableFormatter) formatLegend(result *runner.Result, shown int) string {
	unchanged := len(result.Files) - shown
	if unchanged <= 0 {
		return t.styles.TableLegend.Render(" All files shown above.")
	}
	word := "files"
	if unchanged == 1 {
		word = "file"
	}
	return t.styles.TableLegend.Render(fmt.Sprintf(" %d unchanged %s not shown.", unchanged, word))
}

// FormatTableSummary formats a one-line summary for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("%d files checked", stats.FilesProcessed))

	if stats.FilesChanged > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d changed", stats.FilesChanged)))
	}
	if stats.FilesWritten > 0 {
		parts = append(parts, t.styles.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errored", stats.FilesErrored)))
	}

	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
