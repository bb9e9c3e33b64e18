package cli

import (
	"github.com/spf13/cobra"

	"github.com/efmtlang/elfmt/internal/logging"
	"github.com/efmtlang/elfmt/pkg/config"
)

type formatFlags struct {
	format    string
	list      bool
	dryRun    bool
	noBackups bool
}

func newFormatCommand() *cobra.Command {
	var cfg config.Config
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Format source files in place",
		Long: `Format source files, rewriting each one with its canonical layout.

By default, formats every recognized source file under the current
directory and subdirectories, writing changes back in place. Specify
paths to format specific files or directories.

Examples:
  elfmt format                 Format the current directory in place
  elfmt format src/            Format everything under src/
  elfmt format --list          Print only the paths that would change
  elfmt format --dry-run a.erl Print a diff of the changes instead of writing`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "report format: text, table, json, sarif, diff, summary")
	cmd.Flags().BoolVar(&flags.list, "list", false, "print only the paths of files that would change")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show what would change without writing")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when writing")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string, cfg *config.Config, flags *formatFlags) error {
	cfg.List = flags.list
	cfg.DryRun = flags.dryRun
	cfg.NoBackups = flags.noBackups
	cfg.Write = !flags.list && !flags.dryRun

	run, err := resolveConfig(cmd, cfg)
	if err != nil {
		return err
	}

	result, err := runFormatter(run, args)
	if err != nil {
		return err
	}

	if flags.list {
		for _, file := range result.Files {
			if file.Changed {
				cmd.Println(file.Path)
			}
		}
	} else {
		reportFormat := flags.format
		if flags.dryRun {
			reportFormat = "diff"
		}
		if err := report(cmd, run, result, reportFormat, true); err != nil {
			return err
		}
	}

	logger := logging.Default()
	logger.Debug("format run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesModified, result.Stats.FilesWritten,
	)

	if code := ExitCodeFromResult(result, false); code != ExitSuccess {
		return &ExitError{Code: code}
	}

	return nil
}
