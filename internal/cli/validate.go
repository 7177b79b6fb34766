package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/symhash/internal/compiler"
	"github.com/roach88/symhash/internal/ir"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool                       `json:"valid"`
	Module    string                     `json:"module,omitempty"`
	Functions int                        `json:"functions"`
	Errors    []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <module>",
		Short: "Check a module description without renaming",
		Long: `Load a module description and check the function table.

Reports empty names, duplicate function names and unknown attributes.
Nothing is renamed and nothing is written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, modulePath string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	m, err := LoadModule(modulePath)
	if err != nil {
		code, msg := loadErrorParts(err)
		return formatter.Fail(ExitCommandError, code, msg, nil)
	}
	formatter.VerboseLog("Loaded module %s from %s", m.Name, modulePath)

	if errs := compiler.Validate(m); len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}

	return outputValidateSuccess(formatter, m)
}

func outputValidateSuccess(formatter *OutputFormatter, m *ir.Module) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{
			Valid:     true,
			Module:    m.Name,
			Functions: len(m.Functions),
		})
	}

	fmt.Fprintf(formatter.Writer, "✓ Module %s valid (%d function(s))\n", m.Name, len(m.Functions))
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Errors: errs,
			},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
