package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/quickspec/internal/outline"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	JSON bool
}

// FileValidation is the per-file validation outcome.
type FileValidation struct {
	File  string `json:"file"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidationResult holds validation results for all files.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <outline-file-or-dir>...",
		Short: "Validate outline files without running them",
		Long: `Validate specification outline files against the outline schema.

Performs strict YAML decoding, CUE schema validation and duplicate-name
checks without executing anything. Faster feedback than run while editing
outlines.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "emit JSON instead of text")

	return cmd
}

func runValidate(opts *ValidateOptions, paths []string, cmd *cobra.Command) error {
	files, err := findOutlineFiles(paths)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	if len(files) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: no outline files found", ErrCodeNoFiles))
	}

	result := ValidationResult{Valid: true}
	invalid := 0
	for _, file := range files {
		fv := FileValidation{File: file, Valid: true}
		if _, err := outline.Load(file); err != nil {
			fv.Valid = false
			fv.Error = err.Error()
			result.Valid = false
			invalid++
		}
		result.Files = append(result.Files, fv)
	}

	w := cmd.OutOrStdout()
	if opts.JSON {
		resp := CLIResponse{Status: "ok", Data: result}
		if !result.Valid {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    ErrCodeLoadFailed,
				Message: fmt.Sprintf("%d outline(s) invalid", invalid),
			}
		}
		if err := writeJSON(w, resp); err != nil {
			return err
		}
	} else {
		for _, fv := range result.Files {
			if fv.Valid {
				fmt.Fprintf(w, "✓ %s\n", fv.File)
			} else {
				fmt.Fprintf(w, "✗ %s\n", fv.File)
				fmt.Fprintf(w, "  %s\n", fv.Error)
			}
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d outline(s) invalid", invalid))
	}
	return nil
}
