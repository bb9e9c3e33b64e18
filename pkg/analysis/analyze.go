package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/efmtlang/elfmt/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	kindMap   map[string]*ErrorKindAnalysis
	kindFiles map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		kindMap:   make(map[string]*ErrorKindAnalysis),
		kindFiles: make(map[string]map[string]bool),
	}
}

func (ctx *analysisContext) getOrCreateKindAnalysis(kind string) *ErrorKindAnalysis {
	if _, ok := ctx.kindMap[kind]; !ok {
		ctx.kindMap[kind] = &ErrorKindAnalysis{Kind: kind}
		ctx.kindFiles[kind] = make(map[string]bool)
	}
	return ctx.kindMap[kind]
}

func (ctx *analysisContext) buildByErrorKind(opts Options) []ErrorKindAnalysis {
	result := make([]ErrorKindAnalysis, 0, len(ctx.kindMap))
	for kind, ka := range ctx.kindMap {
		for f := range ctx.kindFiles[kind] {
			ka.Files = append(ka.Files, f)
		}
		slices.Sort(ka.Files)
		result = append(result, *ka)
	}
	sortByErrorKind(result, opts.SortBy, opts.SortDesc)
	return result
}

// Analyze transforms a runner.Result into a Report.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, outcome := range result.Files {
		report.Totals.Files++
		displayPath := makeRelativePath(outcome.Path, opts.WorkingDir)

		entry := FileEntry{
			Path:     displayPath,
			Changed:  outcome.Changed,
			Written:  outcome.Written,
			BackedUp: outcome.BackedUp,
		}

		if outcome.Err != nil && !outcome.Skipped {
			report.Totals.Errored++
			entry.Errored = true
			entry.Kind = outcome.Kind()
			entry.Message = outcome.Err.Error()

			ka := ctx.getOrCreateKindAnalysis(entry.Kind)
			ka.Count++
			ctx.kindFiles[entry.Kind][displayPath] = true
		} else {
			if outcome.Skipped {
				entry.Kind = outcome.Kind()
				entry.Message = outcome.Err.Error()
			}
			if outcome.Changed {
				report.Totals.Changed++
			}
			if outcome.Written {
				report.Totals.Written++
			}
			if outcome.Diff != nil {
				entry.Diff = outcome.Diff.String()
			}
		}

		if opts.IncludeFiles {
			report.Files = append(report.Files, entry)
		}
	}

	if opts.IncludeByErrorKind {
		report.ByErrorKind = ctx.buildByErrorKind(opts)
	}

	return report
}

func sortByErrorKind(kinds []ErrorKindAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(kinds, func(left, right ErrorKindAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(left.Kind, right.Kind)
		}
		result := cmp.Compare(left.Count, right.Count)
		if desc {
			result = -result
		}
		return result
	})
}
