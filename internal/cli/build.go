package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dagforge/dagforge/internal/compiler"
	"github.com/dagforge/dagforge/internal/graph"
	"github.com/dagforge/dagforge/internal/program"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	Output string // output file path
}

// BuiltFlow is one finalized flow in the build output.
type BuiltFlow struct {
	Name  string       `json:"name"`
	Token string       `json:"token"`
	Graph *graph.Graph `json:"graph"`
}

// BuildResult holds all finalized flows.
type BuildResult struct {
	Flows []BuiltFlow `json:"flows"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build <specs-dir>",
		Short: "Build and optimize dataflow graphs from CUE flow specs",
		Long: `Build dataflow graphs from declarative CUE flow specs.

Each flow is materialized into a program, dead code is eliminated, and
the finalized graph is printed. Nothing is executed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runBuild(opts *BuildOptions, specsDir string, cmd *cobra.Command) error {
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
	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, specsDir)
	if len(loadErrors) > 0 {
		return outputFlowErrors(formatter, loadErrors)
	}

	result := &BuildResult{}
	gen := program.UUIDv7Generator{}
	for _, spec := range loadResult.Flows {
		formatter.VerboseLog("Building flow: %s", spec.Name)
		prog, err := compiler.Materialize(&spec, gen)
		if err != nil {
			return outputBuildError(formatter, spec.Name, err)
		}
		g, err := compiler.Finalize(prog.Snapshot())
		if err != nil {
			return outputBuildError(formatter, spec.Name, err)
		}
		result.Flows = append(result.Flows, BuiltFlow{
			Name:  spec.Name,
			Token: prog.Token(),
			Graph: g,
		})
	}

	if opts.Output != "" {
		if err := writeGraphsToFile(result, opts.Output); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
			return WrapExitError(ExitCommandError, "writing output file", err)
		}
	}

	return outputBuildSuccess(formatter, result, opts.Output)
}

// outputBuildSuccess prints finalized graphs.
func outputBuildSuccess(formatter *OutputFormatter, result *BuildResult, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Built %d flow(s)\n\n", len(result.Flows))
	for _, flow := range result.Flows {
		fp, err := flow.Graph.Fingerprint()
		if err != nil {
			return WrapExitError(ExitCommandError, "computing fingerprint", err)
		}
		fmt.Fprintf(formatter.Writer, "Flow %s: %d node(s), %d placeholder(s)\n",
			flow.Name, flow.Graph.NodeCount(), len(flow.Graph.Placeholders()))
		for _, node := range flow.Graph.Nodes() {
			rendered, _ := flow.Graph.RenderNode(node.Name)
			fmt.Fprintf(formatter.Writer, "  %s\n", rendered)
		}
		fmt.Fprintf(formatter.Writer, "  fingerprint: %s\n\n", fp)
	}

	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "Wrote graphs to %s\n", outputFile)
	}
	return nil
}

// outputBuildError reports a materialization or finalization failure.
func outputBuildError(formatter *OutputFormatter, flowName string, err error) error {
	code := ErrCodeGeneric
	var compileErr *compiler.CompileError
	var buildErr *program.BuildError
	switch {
	case errors.As(err, &compileErr):
		code = MapFieldToErrorCode(compileErr.Field)
	case errors.As(err, &buildErr):
		if buildErr.Code == program.ErrCodeNameConflict {
			code = ErrCodeFlowNameConflict
		}
	}
	_ = formatter.Error(code, fmt.Sprintf("flow %s: %v", flowName, err), nil)
	return WrapExitError(ExitCommandError, fmt.Sprintf("building flow %s", flowName), err)
}

// outputLoadError reports a directory-level load failure.
func outputLoadError(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
		return WrapExitError(ExitCommandError, loadErr.Message, nil)
	}
	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitCommandError, err.Error(), nil)
}

// outputFlowErrors reports per-flow compile errors.
func outputFlowErrors(formatter *OutputFormatter, errs []error) error {
	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			code, message := parseFlowError(err)
			cliErrors[i] = CLIError{Code: code, Message: message}
		}
		response := CLIResponse{
			Status: "error",
			Error:  &cliErrors[0],
			Data:   cliErrors,
		}
		enc := json.NewEncoder(formatter.Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("spec compilation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Spec compilation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		code, message := parseFlowError(err)
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Pos.IsValid() {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n",
				loadErr.Pos.Filename(), loadErr.Pos.Line(), loadErr.Pos.Column())
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", code, message)
	}
	return NewExitError(ExitCommandError, fmt.Sprintf("spec compilation failed with %d error(s)", len(errs)))
}

// parseFlowError extracts error code and message from an error.
func parseFlowError(err error) (string, string) {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return MapFieldToErrorCode(compileErr.Field), compileErr.Message
	}
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	return ErrCodeGeneric, err.Error()
}

// writeGraphsToFile writes the build result as indented JSON.
func writeGraphsToFile(result *BuildResult, filename string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling graphs: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
