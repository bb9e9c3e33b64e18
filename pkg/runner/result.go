package runner

import (
	"errors"

	"github.com/efmtlang/elfmt/pkg/fix"
	"github.com/efmtlang/elfmt/pkg/format"
)

// FileOutcome is the result of running the formatter core over a
// single discovered file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Original is the file's content before formatting.
	Original []byte

	// Formatted is the formatter's output. Nil if reading or formatting
	// failed, except for a Skipped outcome, where it equals Original.
	Formatted []byte

	// Changed reports whether Formatted differs from Original.
	Changed bool

	// Written reports whether Formatted was written back to Path.
	Written bool

	// BackedUp reports whether a sidecar backup was created before writing.
	BackedUp bool

	// Skipped reports that the formatter core failed to parse this file
	// and AllowPartialFailure let the run continue anyway: Formatted
	// equals Original verbatim and Err still holds the underlying
	// parse/lex error for reporting.
	Skipped bool

	// Diff holds a unified diff between Original and Formatted, computed
	// only when the caller asked for one (check mode, dry-run, diff report).
	Diff *fix.Diff

	// Err holds the error returned by the formatter core or by file I/O,
	// if any.
	Err error
}

// IOError wraps a filesystem failure (read, write, or backup) so
// callers can tell it apart from a formatter core error via errors.As,
// without inspecting error message text.
type IOError struct {
	Op    string
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Cause.Error()
}

func (e *IOError) Unwrap() error {
	return e.Cause
}

// KindIOError is the Kind() value for a FileOutcome whose failure was
// an IOError rather than a formatter core error.
const KindIOError = "io-error"

// Kind returns the error kind for this outcome, or "" if it succeeded.
func (o FileOutcome) Kind() string {
	if o.Err == nil {
		return ""
	}
	var fErr *format.Error
	if errors.As(o.Err, &fErr) {
		return fErr.Kind
	}
	var ioErr *IOError
	if errors.As(o.Err, &ioErr) {
		return KindIOError
	}
	return format.KindInternal
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files the formatter core ran over
	// successfully, whether or not they needed changes, plus the files
	// counted in FilesSkipped.
	FilesProcessed int

	// FilesChanged is the number of files whose formatted output differed
	// from their original content.
	FilesChanged int

	// FilesWritten is the number of files actually rewritten on disk.
	FilesWritten int

	// FilesErrored is the number of files that failed to format.
	FilesErrored int

	// FilesSkipped is the number of files left unformatted because they
	// failed to parse and AllowPartialFailure was set.
	FilesSkipped int

	// ErrorsByKind maps a format.Error Kind to the number of files that
	// failed with that kind.
	ErrorsByKind map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered, such as
	// a discovery failure.
	Errors []error
}

// HasFailures reports whether any file failed to format.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasChanges reports whether any file's formatted output differs from
// its source. Used by "elfmt check" to decide its exit code.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

func newStats() Stats {
	return Stats{ErrorsByKind: make(map[string]int)}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Err != nil && !outcome.Skipped {
		r.Stats.FilesErrored++
		r.Stats.ErrorsByKind[outcome.Kind()]++
		return
	}

	if outcome.Skipped {
		r.Stats.FilesSkipped++
	}

	r.Stats.FilesProcessed++
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
}
