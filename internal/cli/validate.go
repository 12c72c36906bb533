package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dagforge/dagforge/internal/compiler"
	"github.com/dagforge/dagforge/internal/program"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Strict bool // treat dead-code warnings as failures
}

// FlowDiagnostics is the validation outcome for one flow.
type FlowDiagnostics struct {
	Name     string                     `json:"name"`
	Errors   []compiler.ValidationError `json:"errors"`
	Warnings []compiler.DeadCodeWarning `json:"warnings"`
}

// ValidateResult aggregates diagnostics across all flows.
type ValidateResult struct {
	Flows []FlowDiagnostics `json:"flows"`
}

// ErrorCount returns the total number of validation errors.
func (r *ValidateResult) ErrorCount() int {
	n := 0
	for _, f := range r.Flows {
		n += len(f.Errors)
	}
	return n
}

// WarningCount returns the total number of dead-code warnings.
func (r *ValidateResult) WarningCount() int {
	n := 0
	for _, f := range r.Flows {
		n += len(f.Warnings)
	}
	return n
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <specs-dir>",
		Short: "Validate flow specs and report dead code",
		Long: `Validate CUE flow specs without finalizing them.

Reports structural errors (unknown inputs, empty outputs) and warns
about operations dead-code elimination would remove.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat dead-code warnings as failures")

	return cmd
}

func runValidate(opts *ValidateOptions, specsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loadResult, loadErrors := LoadFlows(specsDir, LoadModeCollectAll)
	if loadResult == nil && len(loadErrors) > 0 {
		return outputLoadError(formatter, loadErrors[0])
	}
	if len(loadErrors) > 0 {
		return outputFlowErrors(formatter, loadErrors)
	}

	result := &ValidateResult{}
	gen := program.UUIDv7Generator{}
	for _, spec := range loadResult.Flows {
		formatter.VerboseLog("Validating flow: %s", spec.Name)
		prog, err := compiler.Materialize(&spec, gen)
		if err != nil {
			return outputBuildError(formatter, spec.Name, err)
		}
		snap := prog.Snapshot()
		diag := FlowDiagnostics{
			Name:     spec.Name,
			Errors:   compiler.Validate(snap),
			Warnings: compiler.AnalyzeDeadCode(snap),
		}
		if diag.Errors == nil {
			diag.Errors = []compiler.ValidationError{}
		}
		result.Flows = append(result.Flows, diag)
	}

	return outputValidateResult(formatter, result, opts.Strict)
}

func outputValidateResult(formatter *OutputFormatter, result *ValidateResult, strict bool) error {
	failed := result.ErrorCount() > 0 || (strict && result.WarningCount() > 0)

	if formatter.Format == "json" {
		if failed {
			_ = formatter.Error(ErrCodeGeneric, "validation failed", result)
			return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s), %d warning(s)",
				result.ErrorCount(), result.WarningCount()))
		}
		return formatter.Success(result)
	}

	for _, flow := range result.Flows {
		if len(flow.Errors) == 0 && len(flow.Warnings) == 0 {
			fmt.Fprintf(formatter.Writer, "✓ %s\n", flow.Name)
			continue
		}
		marker := "✗"
		if len(flow.Errors) == 0 {
			marker = "!"
		}
		fmt.Fprintf(formatter.Writer, "%s %s\n", marker, flow.Name)
		for _, e := range flow.Errors {
			fmt.Fprintf(formatter.Writer, "  error   %s\n", e.Error())
		}
		for _, w := range flow.Warnings {
			fmt.Fprintf(formatter.Writer, "  warning dead code: %s (%s): %s\n", w.Node, w.OpClass, w.Message)
		}
	}
	fmt.Fprintf(formatter.Writer, "\n%d error(s), %d warning(s)\n", result.ErrorCount(), result.WarningCount())

	if failed {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s), %d warning(s)",
			result.ErrorCount(), result.WarningCount()))
	}
	return nil
}
