package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/efmtlang/elfmt/pkg/analysis"
	"github.com/efmtlang/elfmt/pkg/runner"
)

// JSONOutput is the top-level JSON structure, mirroring analysis.Report.
type JSONOutput struct {
	Version string             `json:"version"`
	Files   []JSONFileResult   `json:"files"`
	Summary JSONSummary        `json:"summary"`
	Errors  []JSONErrorSummary `json:"byErrorKind,omitempty"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path     string `json:"path"`
	Changed  bool   `json:"changed"`
	Written  bool   `json:"written,omitempty"`
	BackedUp bool   `json:"backedUp,omitempty"`
	Errored  bool   `json:"errored,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Message  string `json:"message,omitempty"`
	Diff     string `json:"diff,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked int `json:"filesChecked"`
	FilesChanged int `json:"filesChanged"`
	FilesWritten int `json:"filesWritten"`
	FilesErrored int `json:"filesErrored"`
}

// JSONErrorSummary groups errored files by their format.Error kind.
type JSONErrorSummary struct {
	Kind  string   `json:"kind"`
	Count int      `json:"count"`
	Files []string `json:"files,omitempty"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	report := analysis.Analyze(result, analysis.Options{
		IncludeFiles:       true,
		IncludeByErrorKind: true,
		SortBy:             analysis.SortByCount,
		SortDesc:           true,
		WorkingDir:         r.opts.WorkingDir,
	})

	output := buildJSONOutput(report)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesChanged + output.Summary.FilesErrored, nil
}

func buildJSONOutput(report *analysis.Report) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0, len(report.Files)),
		Summary: JSONSummary{
			FilesChecked: report.Totals.Files,
			FilesChanged: report.Totals.Changed,
			FilesWritten: report.Totals.Written,
			FilesErrored: report.Totals.Errored,
		},
	}

	for _, file := range report.Files {
		output.Files = append(output.Files, JSONFileResult{
			Path:     file.Path,
			Changed:  file.Changed,
			Written:  file.Written,
			BackedUp: file.BackedUp,
			Errored:  file.Errored,
			Kind:     file.Kind,
			Message:  file.Message,
			Diff:     file.Diff,
		})
	}

	for _, byKind := range report.ByErrorKind {
		output.Errors = append(output.Errors, JSONErrorSummary{
			Kind:  byKind.Kind,
			Count: byKind.Count,
			Files: byKind.Files,
		})
	}

	return output
}
