package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/quickspec/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	JSON  bool
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history <database>",
		Short: "List recorded runs",
		Long: `List run summaries recorded with "run --history", most recent first.

Examples:
  quickspec history .quickspec-history.db
  quickspec history .quickspec-history.db --limit 5 --json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "emit JSON instead of text")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, path string, cmd *cobra.Command) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: history database not found: %s", ErrCodeNotFound, path))
	}

	store, err := history.Open(path)
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: %v", ErrCodeHistory, err))
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: %v", ErrCodeHistory, err))
	}

	w := cmd.OutOrStdout()
	if opts.JSON {
		return writeJSON(w, CLIResponse{Status: "ok", Data: runs})
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	for _, r := range runs {
		marker := "✓"
		if r.Failed > 0 || r.Errored > 0 || r.HookFailures > 0 {
			marker = "✗"
		}
		fmt.Fprintf(w, "%s %s  %s  %d passed, %d failed, %d pending, %d errored (%s)\n",
			marker,
			r.StartedAt.Local().Format(time.DateTime),
			r.ID,
			r.Passed, r.Failed, r.Pending, r.Errored,
			r.Duration,
		)
	}
	return nil
}
