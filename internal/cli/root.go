// Package cli provides the Cobra command structure for elfmt.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/efmtlang/elfmt/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root elfmt command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	var width int
	var indent int
	var jobs int

	rootCmd := &cobra.Command{
		Use:   "elfmt",
		Short: "A formatter for Erlang-like source files",
		Long: `elfmt formats source files for an Erlang-like, dynamically-typed
message-passing language.

It re-lexes, re-parses, and re-lays out each file from scratch, producing
a single canonical layout regardless of the input's original formatting.
elfmt can write results back in place, print a unified diff, or just
report which files need reformatting for use in CI.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0, "target line width (0 = use config default)")
	rootCmd.PersistentFlags().IntVar(&indent, "indent", 0, "columns per indent level (0 = use config default)")
	rootCmd.PersistentFlags().IntVar(&jobs, "jobs", 0, "number of parallel workers (0 = auto)")

	// Add subcommands.
	rootCmd.AddCommand(newFormatCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
