package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/efmtlang/elfmt/pkg/fix"
	"github.com/efmtlang/elfmt/pkg/format"
	"github.com/efmtlang/elfmt/pkg/fsutil"
)

// Runner orchestrates multi-file formatting: discovery, a bounded
// worker pool, and deterministic result aggregation.
type Runner struct{}

// New creates a new Runner.
func New() *Runner {
	return &Runner{}
}

// Run discovers files under opts.Paths and formats them concurrently.
// It returns a deterministic collection of FileOutcome values and
// aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Formats files concurrently using a worker pool, one core pipeline
//     instance per worker
//   - Writes formatted output back to disk when opts.Config.Write is set
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	fmtOpts := formatOptionsFromConfig(opts)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts, fmtOpts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker reads, formats, and (optionally) rewrites files from workCh,
// sending one FileOutcome per path to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	opts Options,
	fmtOpts format.Options,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.formatOne(ctx, path, opts, fmtOpts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// formatOne runs the formatter core over a single file and, depending
// on opts.Config, writes the result back or computes a diff for
// reporting.
func (r *Runner) formatOne(ctx context.Context, path string, opts Options, fmtOpts format.Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	original, err := os.ReadFile(path)
	if err != nil {
		outcome.Err = &IOError{Op: "read", Path: path, Cause: err}
		return outcome
	}
	outcome.Original = original

	formatted, err := format.Format(original, fmtOpts)
	if err != nil {
		cfg := opts.Config
		if cfg != nil && cfg.AllowPartialFailure {
			outcome.Err = err
			outcome.Skipped = true
			outcome.Formatted = original
			outcome.Changed = false
			return outcome
		}
		outcome.Err = err
		return outcome
	}
	outcome.Formatted = formatted
	outcome.Changed = !bytes.Equal(original, formatted)

	cfg := opts.Config
	if outcome.Changed && cfg != nil && (cfg.DryRun || cfg.List || !cfg.Write) {
		outcome.Diff = fix.GenerateDiff(path, original, formatted)
	}

	if outcome.Changed && cfg != nil && cfg.Write && !cfg.DryRun {
		if !cfg.NoBackups && cfg.Backups.Enabled {
			backed, backupErr := fsutil.CreateBackup(ctx, path, fsutil.BackupConfig{
				Enabled: true,
				Mode:    fsutil.BackupMode(cfg.Backups.Mode),
			})
			if backupErr != nil {
				outcome.Err = &IOError{Op: "backup", Path: path, Cause: backupErr}
				return outcome
			}
			outcome.BackedUp = backed
		}

		toWrite, editErr := fix.ReplaceFile(original, string(formatted))
		if editErr != nil {
			outcome.Err = &IOError{Op: "write", Path: path, Cause: editErr}
			return outcome
		}

		if writeErr := fsutil.WriteAtomic(ctx, path, toWrite, 0); writeErr != nil {
			outcome.Err = &IOError{Op: "write", Path: path, Cause: writeErr}
			return outcome
		}
		outcome.Written = true
	}

	return outcome
}

func formatOptionsFromConfig(opts Options) format.Options {
	if opts.Config == nil {
		return format.DefaultOptions()
	}
	return format.Options{
		MaxLineWidth: opts.Config.MaxLineWidth,
		IndentUnit:   opts.Config.IndentUnit,
	}
}
