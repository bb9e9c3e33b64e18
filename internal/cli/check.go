package cli

import (
	"github.com/spf13/cobra"

	"github.com/efmtlang/elfmt/internal/logging"
	"github.com/efmtlang/elfmt/pkg/config"
)

type checkFlags struct {
	format string
	list   bool
}

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report files that are not already formatted",
		Long: `Check whether source files are already formatted, without writing
any changes.

Prints a unified diff for every file that would change and exits with a
non-zero status if any are found. This is the entry point for CI.

Examples:
  elfmt check              Check the current directory
  elfmt check src/         Check everything under src/
  elfmt check --list       Print only the paths of files that need formatting`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "diff", "report format: text, table, json, sarif, diff, summary")
	cmd.Flags().BoolVar(&flags.list, "list", false, "print only the paths of files that need formatting")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, cfg *config.Config, flags *checkFlags) error {
	cfg.List = flags.list
	cfg.DryRun = true
	cfg.Write = false

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
			if file.Changed || file.Err != nil {
				cmd.Println(file.Path)
			}
		}
	} else {
		if err := report(cmd, run, result, flags.format, true); err != nil {
			return err
		}
	}

	logger := logging.Default()
	logger.Debug("check run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesModified, result.Stats.FilesChanged,
	)

	if code := ExitCodeFromResult(result, true); code != ExitSuccess {
		return &ExitError{Code: code}
	}

	return nil
}
