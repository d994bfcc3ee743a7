package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/roach88/rigcheck/internal/catalog"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                      `json:"valid"`
	Errors []catalog.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog-file>",
		Short: "Validate a parts catalog",
		Long: `Validate a parts catalog file (.cue, .yaml, .yml or .json).

Decodes the file, then reports every problem at once: duplicate ids,
invalid component fields, components listed under the wrong category,
unknown categories and empty catalogs.

Exit codes:
  0 - Catalog is valid
  1 - Catalog has validation errors
  2 - Command error (missing file, unreadable or undecodable catalog)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	formatter.VerboseLog("Validating catalog %s", path)

	errs, err := catalog.ValidateFile(path)
	if err != nil {
		return outputValidateError(formatter, err)
	}

	if len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}
	return outputValidateSuccess(formatter)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}

	fmt.Fprintln(formatter.Writer, "✓ Catalog valid")
	return nil
}

// outputValidateError reports a catalog that could not be read or decoded.
func outputValidateError(formatter *OutputFormatter, err error) error {
	code := ErrCodeLoadFailed
	var details any
	var loadErr *catalog.LoadError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = ErrCodeNotFound
	case errors.As(err, &loadErr):
		if loadErr.Pos.IsValid() {
			details = map[string]any{"field": loadErr.Field, "line": loadErr.Pos.Line()}
		} else {
			details = map[string]any{"field": loadErr.Field}
		}
	}

	return formatter.Fail(code, err, details)
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []catalog.ValidationError) error {
	failure := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    ErrCodeCatalogErrors,
				Message: failure.Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return failure
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", e.Code, e.Field, e.Message)
	}
	return failure
}
