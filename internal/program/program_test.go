package program

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagforge/dagforge/internal/ir"
)

const testToken = "00000000-0000-7000-8000-000000000001"

func TestBindRecordsOperation(t *testing.T) {
	p := NewWithToken(testToken)
	require.NoError(t, p.Placeholder("x"))
	require.NoError(t, p.Bind("y", "relu", "x"))

	snap := p.Snapshot()
	assert.Equal(t, testToken, snap.Token)
	require.Len(t, snap.Records, 2)

	ph := snap.Records[0]
	assert.True(t, ph.IsPlaceholder())
	assert.Equal(t, []string{"x"}, ph.Outputs)
	assert.Equal(t, 0, ph.Pos)

	op := snap.Records[1]
	assert.Equal(t, "relu:0", op.Name)
	assert.Equal(t, "relu", op.OpClass)
	assert.Equal(t, 1, op.Pos)
	assert.Equal(t, []string{"x"}, op.Inputs)
	assert.Equal(t, []string{"y"}, op.Outputs)
}

func TestBindDuplicateNameConflicts(t *testing.T) {
	p := NewWithToken(testToken)
	require.NoError(t, p.Bind("v", "load"))

	err := p.Bind("v", "load")
	require.Error(t, err)
	assert.True(t, IsNameConflict(err))
	assert.Contains(t, err.Error(), "NAME_CONFLICT")
	assert.Contains(t, err.Error(), testToken)

	// The failed call recorded nothing.
	assert.Equal(t, 1, p.OpCount())
}

func TestBindConflictsWithPlaceholderName(t *testing.T) {
	p := NewWithToken(testToken)
	require.NoError(t, p.Placeholder("x"))
	assert.True(t, IsNameConflict(p.Bind("x", "load")))
	assert.True(t, IsNameConflict(p.Placeholder("x")))
}

func TestBindRejectsEmptyName(t *testing.T) {
	p := NewWithToken(testToken)
	err := p.Bind("", "load")
	require.Error(t, err)
	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, ErrCodeInvalidName, be.Code)
}

func TestBindAllMultiOutput(t *testing.T) {
	p := NewWithToken(testToken)
	require.NoError(t, p.Placeholder("x"))
	require.NoError(t, p.BindAll([]string{"s1", "s2"}, "split", "x"))

	snap := p.Snapshot()
	op := snap.Records[1]
	assert.Equal(t, "split:0", op.Name)
	assert.Equal(t, []string{"s1", "s2"}, op.Outputs)
}

func TestBindAllRejectsEmptyOutputs(t *testing.T) {
	p := NewWithToken(testToken)
	err := p.BindAll(nil, "noop")
	require.Error(t, err)
	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, ErrCodeEmptyOutputs, be.Code)
}

func TestBindAllConflictIsAtomic(t *testing.T) {
	p := NewWithToken(testToken)
	require.NoError(t, p.Bind("b", "load"))

	// "a" is fresh but "b" conflicts; neither may end up registered by
	// the failed call, so "a" stays available.
	err := p.BindAll([]string{"a", "b"}, "split")
	require.True(t, IsNameConflict(err))
	assert.Equal(t, 1, p.OpCount())
	require.NoError(t, p.Bind("a", "load"))
}

func TestBindAllRejectsDuplicateWithinCall(t *testing.T) {
	p := NewWithToken(testToken)
	err := p.BindAll([]string{"d", "d"}, "split")
	assert.True(t, IsNameConflict(err))
	assert.Equal(t, 0, p.OpCount())
}

func TestRebindShadowsEarlierProducer(t *testing.T) {
	p := NewWithToken(testToken)
	require.NoError(t, p.Placeholder("x"))
	require.NoError(t, p.Bind("v", "f", "x"))
	require.NoError(t, p.Rebind("v", "g", "x"))

	snap := p.Snapshot()
	require.Len(t, snap.Records, 3)
	assert.Equal(t, "f:0", snap.Records[1].Name)
	assert.Equal(t, "g:1", snap.Records[2].Name)
	assert.Equal(t, []string{"v"}, snap.Records[2].Outputs)
}

func TestRebindRequiresPriorDeclaration(t *testing.T) {
	p := NewWithToken(testToken)
	err := p.Rebind("ghost", "f")
	require.Error(t, err)
	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, ErrCodeInvalidName, be.Code)
	assert.Equal(t, "ghost", be.Name)
}

func TestApplyGeneratesAnonymousOutputs(t *testing.T) {
	p := NewWithToken(testToken)
	require.NoError(t, p.Placeholder("x"))

	a := p.Apply("square", "x")
	b := p.Apply("square", "x")
	assert.Equal(t, ir.AnonName(0), a)
	assert.Equal(t, ir.AnonName(1), b)
	assert.NotEqual(t, a, b)

	// Anonymous names never hit the registry, so a user may not collide
	// with them and they may not collide with users.
	assert.False(t, IsNameConflict(p.Bind("y", "add", a, b)))
	assert.Equal(t, 3, p.OpCount())
}

func TestAnonymousNamesAreSentinels(t *testing.T) {
	p := NewWithToken(testToken)
	anon := p.Anon()

	// Registering the same generated name twice is not a conflict.
	require.NoError(t, p.Bind(anon, "f"))
	require.NoError(t, p.Bind(anon, "f"))
}

func TestPlaceholderValidation(t *testing.T) {
	p := NewWithToken(testToken)

	for _, bad := range []string{"", ir.AnonName(0), "__tmpfoo"} {
		err := p.Placeholder(bad)
		require.Error(t, err, "placeholder %q", bad)
		var be *BuildError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, ErrCodeInvalidName, be.Code)
	}
}

func TestPlaceholderRecordsTrivialRecord(t *testing.T) {
	p := NewWithToken(testToken)
	require.NoError(t, p.Placeholder("input"))

	snap := p.Snapshot()
	assert.Equal(t, []string{"input"}, snap.Placeholders)
	require.Len(t, snap.Records, 1)
	assert.True(t, snap.Records[0].IsPlaceholder())
	assert.Empty(t, snap.Records[0].Inputs)

	// Placeholder records do not advance the operation counter, so node
	// names depend only on the sequence of operation recordings.
	assert.Equal(t, 0, p.OpCount())
	require.NoError(t, p.Bind("y", "relu", "input"))
	assert.Equal(t, "relu:0", p.Snapshot().Records[1].Name)
}

func TestSnapshotIsolation(t *testing.T) {
	p := NewWithToken(testToken)
	require.NoError(t, p.Placeholder("x"))
	require.NoError(t, p.Bind("y", "relu", "x"))

	snap := p.Snapshot()

	// Mutating the snapshot must not leak back into the program.
	snap.Records[1].Inputs[0] = "mutated"
	snap.Placeholders[0] = "mutated"

	again := p.Snapshot()
	assert.Equal(t, []string{"x"}, again.Records[1].Inputs)
	assert.Equal(t, []string{"x"}, again.Placeholders)
}

func TestSnapshotLeavesProgramUsable(t *testing.T) {
	p := NewWithToken(testToken)
	require.NoError(t, p.Placeholder("x"))
	first := p.Snapshot()
	require.NoError(t, p.Bind("y", "relu", "x"))
	second := p.Snapshot()

	assert.Len(t, first.Records, 1)
	assert.Len(t, second.Records, 2)
}

func TestNodeNamesUseGlobalOperationIndex(t *testing.T) {
	p := NewWithToken(testToken)
	require.NoError(t, p.Placeholder("x"))
	require.NoError(t, p.Bind("a", "add", "x"))
	require.NoError(t, p.Bind("m", "mul", "a"))
	require.NoError(t, p.Bind("s", "add", "m"))

	snap := p.Snapshot()
	var names []string
	for _, r := range snap.Records {
		if !r.IsPlaceholder() {
			names = append(names, r.Name)
		}
	}
	// The index is global across op classes, not per-class.
	assert.Equal(t, []string{"add:0", "mul:1", "add:2"}, names)
}

func TestUUIDv7GeneratorProducesUniqueTokens(t *testing.T) {
	gen := UUIDv7Generator{}
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		tok := gen.Generate()
		_, dup := seen[tok]
		require.False(t, dup, "duplicate token %s", tok)
		seen[tok] = struct{}{}
	}
}

func TestFixedGeneratorReturnsTokensInOrder(t *testing.T) {
	gen := NewFixedGenerator("tok-1", "tok-2")
	assert.Equal(t, "tok-1", gen.Generate())
	assert.Equal(t, "tok-2", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestManyProgramsIndependentNamespaces(t *testing.T) {
	// The same user name is fine across programs; the registry is
	// per-program state.
	for i := 0; i < 3; i++ {
		p := NewWithToken(fmt.Sprintf("token-%d", i))
		require.NoError(t, p.Bind("shared", "load"))
	}
}
