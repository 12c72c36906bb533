package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dagforge/dagforge/internal/compiler"
	"github.com/dagforge/dagforge/internal/ir"
	"github.com/dagforge/dagforge/internal/program"
)

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if s.Token == "" {
		return nil, fmt.Errorf("scenario %s: token is required (fixed tokens keep runs deterministic)", path)
	}
	return &s, nil
}

// Run materializes the scenario into a program, finalizes it, and
// evaluates all assertions. A Run error means construction or
// finalization itself failed; assertion failures land in the Result.
func Run(s *Scenario) (*Result, error) {
	spec := &ir.FlowSpec{
		Name:         s.Name,
		Placeholders: append([]string(nil), s.Placeholders...),
	}
	for _, step := range s.Steps {
		spec.Ops = append(spec.Ops, ir.OpDecl{
			OpClass: step.Op,
			Inputs:  append([]string(nil), step.In...),
			Outputs: append([]string(nil), step.Bind...),
		})
	}

	prog, err := compiler.Materialize(spec, program.NewFixedGenerator(s.Token))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: materialize: %w", s.Name, err)
	}
	g, err := compiler.Finalize(prog.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("scenario %s: finalize: %w", s.Name, err)
	}

	result := NewResult(g)
	for _, a := range s.Assertions {
		if err := a.Check(g); err != nil {
			result.AddError(err.Error())
		}
	}
	return result, nil
}

// RunFile loads and runs a scenario from a YAML file.
func RunFile(path string) (*Result, error) {
	s, err := LoadScenario(path)
	if err != nil {
		return nil, err
	}
	return Run(s)
}
