package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/quickspec/internal/history"
	"github.com/roach88/quickspec/internal/outline"
	"github.com/roach88/quickspec/internal/report"
	"github.com/roach88/quickspec/internal/runner"
	"github.com/roach88/quickspec/internal/spec"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	History string // path to a history database, empty to skip recording
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <outline-file-or-dir>...",
		Short: "Run specification outlines",
		Long: `Run one or more specification outline files.

Outline examples have no bodies, so they are reported as pending; the
command exists to exercise reporters and keep run history. Directories
are walked for .yaml/.yml files.

Exit codes:
  0 - All examples passed or pending
  1 - One or more examples failed or errored
  2 - Command error (invalid paths, malformed outlines, etc.)

Examples:
  quickspec run ./specs
  quickspec run ./specs/stack.yaml --format progress
  quickspec run ./specs --history .quickspec-history.db`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutlines(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.History, "history", "", "record the run summary in a SQLite history database")

	return cmd
}

func runOutlines(opts *RunOptions, paths []string, cmd *cobra.Command) error {
	files, err := findOutlineFiles(paths)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	if len(files) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: no outline files found", ErrCodeNoFiles))
	}

	root := spec.NewRoot()
	for _, file := range files {
		o, err := outline.Load(file)
		if err != nil {
			return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s: %v", ErrCodeLoadFailed, file, err))
		}
		o.AddTo(root)
	}

	reporter, err := report.New(opts.Format, cmd.OutOrStdout())
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}

	r := runner.New(reporter, runner.WithLogger(newLogger(opts.RootOptions, cmd.ErrOrStderr())))

	startedAt := time.Now()
	sum := r.Run(root)
	duration := time.Since(startedAt)

	if opts.History != "" {
		if err := recordHistory(cmd, opts.History, sum, startedAt, duration); err != nil {
			return NewExitError(ExitCommandError, fmt.Sprintf("%s: %v", ErrCodeHistory, err))
		}
	}

	if !sum.OK() {
		return NewExitError(ExitFailure, fmt.Sprintf(
			"%d failed, %d errored, %d hook failure(s)", sum.Failed, sum.Errored, sum.HookFailures))
	}
	return nil
}

// recordHistory appends the run summary to the history database.
func recordHistory(cmd *cobra.Command, path string, sum runner.Summary, startedAt time.Time, duration time.Duration) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordRun(cmd.Context(), sum, startedAt, duration)
}

// newLogger builds the run logger: text to stderr when verbose, discard
// otherwise.
func newLogger(opts *RootOptions, errWriter io.Writer) *slog.Logger {
	if opts.Verbose {
		return slog.New(slog.NewTextHandler(errWriter, nil))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// findOutlineFiles expands the given paths into outline files. Files are
// taken as-is; directories are walked for .yaml and .yml entries.
func findOutlineFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: path not found: %s", ErrCodeNotFound, path)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: error accessing %s: %v", ErrCodeNotFound, path, err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return nil
			}
			ext := filepath.Ext(p)
			if ext == ".yaml" || ext == ".yml" {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%s: error scanning %s: %v", ErrCodeGeneric, path, err)
		}
	}
	return files, nil
}
