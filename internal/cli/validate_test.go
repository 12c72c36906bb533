package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagforge/dagforge/internal/compiler"
)

func TestValidateCleanFlow(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "pipeline.cue", simpleFlowCUE)

	out, err := runCommand(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ pipeline")
	assert.Contains(t, out, "0 error(s), 0 warning(s)")
}

func TestValidateReportsDeadCode(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "shadow.cue", `
flow: shadow: {
	placeholders: ["x"]
	ops: [
		{op: "f", in: ["x"], out: ["v"]},
		{op: "g", in: ["x"], out: ["v"]},
		{op: "h", in: ["v"], out: ["y"]},
	]
}
`)

	out, err := runCommand(t, "validate", dir)
	// Warnings alone do not fail validation.
	require.NoError(t, err)
	assert.Contains(t, out, "! shadow")
	assert.Contains(t, out, "warning dead code: f:0")
	assert.Contains(t, out, "0 error(s), 1 warning(s)")
}

func TestValidateStrictTreatsWarningsAsFailure(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "shadow.cue", `
flow: shadow: {
	placeholders: ["x"]
	ops: [
		{op: "f", in: ["x"], out: ["v"]},
		{op: "g", in: ["x"], out: ["v"]},
	]
}
`)

	_, err := runCommand(t, "validate", dir, "--strict")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestValidateReportsUnknownInput(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "typo.cue", `
flow: typo: {
	placeholders: ["x"]
	ops: [{op: "relu", in: ["xs"], out: ["y"]}]
}
`)

	out, err := runCommand(t, "validate", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ typo")
	assert.Contains(t, out, "E102")
	assert.Contains(t, out, "xs")
}

func TestValidateJSONEnvelope(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "pipeline.cue", simpleFlowCUE)

	out, err := runCommand(t, "validate", dir, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "ok"`)
	assert.Contains(t, out, `"name": "pipeline"`)
	assert.Contains(t, out, `"errors": []`)
}

func TestValidateResultCounters(t *testing.T) {
	r := &ValidateResult{Flows: []FlowDiagnostics{
		{Name: "a"},
		{
			Name:     "b",
			Errors:   []compiler.ValidationError{{Code: compiler.ErrUnknownInput}},
			Warnings: []compiler.DeadCodeWarning{{Node: "f:0"}, {Node: "g:1"}},
		},
	}}
	assert.Equal(t, 1, r.ErrorCount())
	assert.Equal(t, 2, r.WarningCount())
}
