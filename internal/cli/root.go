// Package cli wires the quickspec commands: run executes outline files,
// validate checks them against the outline schema, history lists recorded
// runs.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/quickspec/internal/report"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "nested" | "progress"
}

// NewRootCommand creates the root command for the quickspec CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "quickspec",
		Short: "quickspec - behavior-driven specs with property testing",
		Long:  "A framework for running behavior-driven specifications and randomized property checks.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, report.ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", report.FormatNested, "reporter format (nested|progress)")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range report.ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
