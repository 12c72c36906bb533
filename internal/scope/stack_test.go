package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagforge/dagforge/internal/program"
)

func TestEnterMakesProgramCurrent(t *testing.T) {
	s := NewStack()
	p := program.NewWithToken("tok-a")

	guard, err := s.Enter(p)
	require.NoError(t, err)
	defer guard.Exit()

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Same(t, p, cur)
	assert.Equal(t, 1, s.Depth())
}

func TestEnterRejectsNilProgram(t *testing.T) {
	s := NewStack()
	_, err := s.Enter(nil)
	require.Error(t, err)
	var se *ScopeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrCodeInvalidProgram, se.Code)
	assert.Equal(t, 0, s.Depth())
}

func TestCurrentOnEmptyStack(t *testing.T) {
	s := NewStack()
	_, err := s.Current()
	require.Error(t, err)
	assert.True(t, IsNoActiveProgram(err))
}

func TestExitOnEmptyStack(t *testing.T) {
	s := NewStack()
	err := s.Exit()
	require.Error(t, err)
	var se *ScopeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrCodeEmptyStack, se.Code)
}

func TestNestedScopesRestoreOuterProgram(t *testing.T) {
	s := NewStack()
	outer := program.NewWithToken("tok-outer")
	inner := program.NewWithToken("tok-inner")

	gOuter, err := s.Enter(outer)
	require.NoError(t, err)
	gInner, err := s.Enter(inner)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Depth())

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Same(t, inner, cur)

	require.NoError(t, gInner.Exit())
	cur, err = s.Current()
	require.NoError(t, err)
	assert.Same(t, outer, cur)

	require.NoError(t, gOuter.Exit())
	assert.Equal(t, 0, s.Depth())
}

func TestGuardExitIsIdempotent(t *testing.T) {
	s := NewStack()
	g, err := s.Enter(program.NewWithToken("tok-a"))
	require.NoError(t, err)

	require.NoError(t, g.Exit())
	// Second exit is a no-op, so deferred exits after an explicit one
	// never double-pop.
	require.NoError(t, g.Exit())
	assert.Equal(t, 0, s.Depth())
}

func TestGuardExitOutOfOrderFails(t *testing.T) {
	s := NewStack()
	outer := program.NewWithToken("tok-outer")
	inner := program.NewWithToken("tok-inner")

	gOuter, err := s.Enter(outer)
	require.NoError(t, err)
	_, err = s.Enter(inner)
	require.NoError(t, err)

	// Exiting the outer guard while the inner program is still on top is
	// a strict-policy violation and must not pop anything.
	err = gOuter.Exit()
	require.Error(t, err)
	assert.True(t, IsScopeMismatch(err))
	assert.Equal(t, 2, s.Depth())

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Same(t, inner, cur)
}

func TestGuardExitAfterStackDrained(t *testing.T) {
	s := NewStack()
	g, err := s.Enter(program.NewWithToken("tok-a"))
	require.NoError(t, err)

	// Someone popped behind the guard's back.
	require.NoError(t, s.Exit())

	err = g.Exit()
	require.Error(t, err)
	var se *ScopeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrCodeEmptyStack, se.Code)
}

func TestIndependentStacksDoNotInterfere(t *testing.T) {
	s1 := NewStack()
	s2 := NewStack()
	p1 := program.NewWithToken("tok-1")
	p2 := program.NewWithToken("tok-2")

	g1, err := s1.Enter(p1)
	require.NoError(t, err)
	defer g1.Exit()
	g2, err := s2.Enter(p2)
	require.NoError(t, err)
	defer g2.Exit()

	cur1, err := s1.Current()
	require.NoError(t, err)
	cur2, err := s2.Current()
	require.NoError(t, err)
	assert.Same(t, p1, cur1)
	assert.Same(t, p2, cur2)
}

func TestSameProgramEnteredTwice(t *testing.T) {
	// Re-entering the same program is legal; each Enter needs its own
	// Exit and guards still pair positionally.
	s := NewStack()
	p := program.NewWithToken("tok-a")

	g1, err := s.Enter(p)
	require.NoError(t, err)
	g2, err := s.Enter(p)
	require.NoError(t, err)

	require.NoError(t, g2.Exit())
	require.NoError(t, g1.Exit())
	assert.Equal(t, 0, s.Depth())
}
