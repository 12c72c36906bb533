package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/dagforge/dagforge/internal/ir"
)

// GraphSnapshot is the canonical shape written to golden files: scenario
// name plus the graph's canonical content. Program tokens are excluded —
// they identify a build, not the graph.
func GraphSnapshot(name string, result *Result) map[string]any {
	return map[string]any{
		"name":  name,
		"graph": result.Graph.CanonicalMap(),
	}
}

// RunWithGolden runs a scenario and compares the canonical graph JSON
// against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files:
//
//	go test ./internal/harness -update
//
// Returns an error if the scenario itself fails to run; golden
// mismatches fail the test through goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	snapshot, err := ir.MarshalCanonical(GraphSnapshot(scenario.Name, result))
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snapshot)

	return result, nil
}
