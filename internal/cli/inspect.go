package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dagforge/dagforge/internal/compiler"
	"github.com/dagforge/dagforge/internal/program"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Flow string
	Node string
}

// NodeReport is the inspect command's payload for one node.
type NodeReport struct {
	Flow     string   `json:"flow"`
	Node     string   `json:"node"`
	OpClass  string   `json:"op"`
	Inputs   []string `json:"inputs"`
	Outputs  []string `json:"outputs"`
	Rendered string   `json:"rendered"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "inspect <specs-dir>",
		Short:         "Inspect one node of a finalized graph",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Flow, "flow", "", "flow name (required)")
	cmd.Flags().StringVar(&opts.Node, "node", "", "node name, e.g. add:0 (required)")
	_ = cmd.MarkFlagRequired("flow")
	_ = cmd.MarkFlagRequired("node")

	return cmd
}

func runInspect(opts *InspectOptions, specsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loadResult, loadErrors := LoadFlows(specsDir, LoadModeFailFast)
	if loadResult == nil && len(loadErrors) > 0 {
		return outputLoadError(formatter, loadErrors[0])
	}
	if len(loadErrors) > 0 {
		return outputFlowErrors(formatter, loadErrors)
	}

	for _, spec := range loadResult.Flows {
		if spec.Name != opts.Flow {
			continue
		}
		prog, err := compiler.Materialize(&spec, program.UUIDv7Generator{})
		if err != nil {
			return outputBuildError(formatter, spec.Name, err)
		}
		g, err := compiler.Finalize(prog.Snapshot())
		if err != nil {
			return outputBuildError(formatter, spec.Name, err)
		}

		if !g.HasNode(opts.Node) {
			msg := fmt.Sprintf("node %q not found in flow %s (it may have been eliminated as dead code)", opts.Node, opts.Flow)
			_ = formatter.Error(ErrCodeNodeNotFound, msg, nil)
			return NewExitError(ExitCommandError, msg)
		}

		inputs, _ := g.InputsOf(opts.Node)
		outputs, _ := g.OutputsOf(opts.Node)
		rendered, _ := g.RenderNode(opts.Node)
		var opClass string
		for _, n := range g.Nodes() {
			if n.Name == opts.Node {
				opClass = n.OpClass
				break
			}
		}

		report := &NodeReport{
			Flow:     opts.Flow,
			Node:     opts.Node,
			OpClass:  opClass,
			Inputs:   inputs,
			Outputs:  outputs,
			Rendered: rendered,
		}
		if formatter.Format == "json" {
			return formatter.Success(report)
		}
		fmt.Fprintln(formatter.Writer, rendered)
		return nil
	}

	msg := fmt.Sprintf("flow %q not found in %s", opts.Flow, specsDir)
	_ = formatter.Error(ErrCodeFlowNotFound, msg, nil)
	return NewExitError(ExitCommandError, msg)
}
