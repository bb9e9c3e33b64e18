// Package config defines the core configuration types for elfmt.
// These types are pure data structures with no dependency on Viper or
// any other config loader.
package config

// OutputFormat specifies how a run's results are rendered.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// IsValid reports whether f is one of the known output formats.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatSARIF, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// BackupsConfig controls backup behavior when a formatted file is
// written back to disk.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure for elfmt. Only four
// fields govern formatting itself; everything else here is either
// discovery/reporting plumbing or a CLI-only run option that never
// gets written to a config file.
type Config struct {
	// MaxLineWidth is the soft line width the layout engine targets.
	MaxLineWidth int `mapstructure:"max_line_width" yaml:"max_line_width"`

	// IndentUnit is the number of columns one indent level adds.
	IndentUnit int `mapstructure:"indent_unit" yaml:"indent_unit"`

	// IncludePaths are directories searched when resolving an -include
	// directive. Existence is checked lazily, only when a directive is
	// actually resolved, so the core stays free of I/O.
	IncludePaths []string `mapstructure:"include_paths" yaml:"include_paths"`

	// AllowPartialFailure, when true, lets a run continue past files
	// that fail to format instead of treating the whole run as failed.
	AllowPartialFailure bool `mapstructure:"allow_partial_failure" yaml:"allow_partial_failure"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Backups configures backup behavior when writing fixed files.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Write enables writing formatted output back to disk.
	Write bool `mapstructure:"-" yaml:"-"`

	// List prints only the paths of files that would change.
	List bool `mapstructure:"-" yaml:"-"`

	// DryRun shows what would change without touching the filesystem.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Format specifies the report output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when writing fixes.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults, matching
// format.DefaultOptions().
func NewConfig() *Config {
	return &Config{
		MaxLineWidth: 100,
		IndentUnit:   4,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use runtime.NumCPU()
	}
}
