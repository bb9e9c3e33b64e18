package cli

import (
	"github.com/efmtlang/elfmt/pkg/format"
	"github.com/efmtlang/elfmt/pkg/runner"
)

// Exit codes for elfmt.
const (
	// ExitSuccess indicates a successful run: nothing to report, or
	// every file was already formatted.
	ExitSuccess = 0

	// ExitUnformatted indicates "check" found unformatted files, or
	// "format" hit a parse failure on a file with allow_partial_failure
	// disabled.
	ExitUnformatted = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates a configuration error.
	ExitConfigError = 65

	// ExitInternalError indicates a bug in this repository, not a
	// malformed input file.
	ExitInternalError = 70

	// ExitIOError indicates a file I/O error.
	ExitIOError = 74
)

// ExitError carries a specific process exit code through cobra's error
// return path, so main can propagate something more precise than a
// flat success/failure signal.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "exit"
}

// ExitCodeFromResult determines the process exit code for a completed
// run. checkMode distinguishes "elfmt check" (exit 1 on any pending
// change) from "elfmt format" (exit 1 only on an unresolved parse
// failure).
func ExitCodeFromResult(result *runner.Result, checkMode bool) int {
	if result == nil {
		return ExitSuccess
	}

	if hasInternalError(result) {
		return ExitInternalError
	}

	if hasIOError(result) {
		return ExitIOError
	}

	if result.Stats.FilesErrored > 0 {
		return ExitUnformatted
	}

	if checkMode && result.Stats.FilesChanged > 0 {
		return ExitUnformatted
	}

	return ExitSuccess
}

func hasInternalError(result *runner.Result) bool {
	for _, file := range result.Files {
		if file.Err == nil || file.Skipped {
			continue
		}
		if file.Kind() == format.KindCommentUnattachable || file.Kind() == format.KindInternal {
			return true
		}
	}
	return false
}

func hasIOError(result *runner.Result) bool {
	for _, file := range result.Files {
		if file.Err == nil || file.Skipped {
			continue
		}
		if file.Kind() == runner.KindIOError {
			return true
		}
	}
	return false
}
