package analysis

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by file count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeFiles includes the flat per-file list.
	IncludeFiles bool

	// IncludeByErrorKind includes the per-error-kind analysis.
	IncludeByErrorKind bool

	// SortBy specifies how to sort ByErrorKind.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeFiles:       true,
		IncludeByErrorKind: true,
		SortBy:             SortByCount,
		SortDesc:           true,
	}
}
