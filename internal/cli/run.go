package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/efmtlang/elfmt/internal/configloader"
	"github.com/efmtlang/elfmt/internal/logging"
	"github.com/efmtlang/elfmt/pkg/config"
	"github.com/efmtlang/elfmt/pkg/reporter"
	"github.com/efmtlang/elfmt/pkg/runner"
)

// resolvedRun bundles everything a subcommand needs after configuration
// has been loaded and merged with its CLI flags.
type resolvedRun struct {
	ctx        context.Context
	workDir    string
	colorMode  string
	config     *config.Config
	loadResult *configloader.LoadResult
}

// resolveConfig loads and merges configuration from every precedence
// tier below CLI flags, applying the global --config/--width/
// --indent/--jobs flags shared by every subcommand that runs the
// formatter core.
func resolveConfig(cmd *cobra.Command, cliCfg *config.Config) (*resolvedRun, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	if width, err := cmd.Flags().GetInt("width"); err == nil && cmd.Flags().Changed("width") {
		cliCfg.MaxLineWidth = width
	}
	if indentUnit, err := cmd.Flags().GetInt("indent"); err == nil && cmd.Flags().Changed("indent") {
		cliCfg.IndentUnit = indentUnit
	}
	if jobs, err := cmd.Flags().GetInt("jobs"); err == nil && cmd.Flags().Changed("jobs") {
		cliCfg.Jobs = jobs
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		logging.Default().Error("failed to load configuration", logging.FieldError, err)
		return nil, &ExitError{Code: ExitConfigError}
	}

	logger := logging.Default()
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return &resolvedRun{
		ctx:        ctx,
		workDir:    workDir,
		colorMode:  colorMode,
		config:     loadResult.Config,
		loadResult: loadResult,
	}, nil
}

// runFormatter executes the formatter core over paths using r.config
// and returns the aggregated result.
func runFormatter(r *resolvedRun, paths []string) (*runner.Result, error) {
	logger := logging.Default()

	runOpts := runner.Options{
		Paths:        paths,
		WorkingDir:   r.workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: r.config.Ignore,
		Jobs:         r.config.Jobs,
		Config:       r.config,
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New().Run(r.ctx, runOpts)
	if err != nil {
		logger.Error("run failed", logging.FieldError, err)
		return nil, &ExitError{Code: ExitInternalError}
	}
	return result, nil
}

// report renders result in the requested format to cmd's output streams.
func report(cmd *cobra.Command, r *resolvedRun, result *runner.Result, formatStr string, showSummary bool) error {
	repFormat, err := reporter.ParseFormat(formatStr)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      repFormat,
		Color:       r.colorMode,
		ShowContext: true,
		ShowSummary: showSummary,
		GroupByFile: true,
		WorkingDir:  r.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(r.ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}
