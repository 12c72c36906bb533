package scope

import (
	"github.com/dagforge/dagforge/internal/program"
)

// Stack is a stack of active programs. Entries are borrowed references;
// the stack never owns a program. Push/pop must be strictly nested.
//
// Stack has no internal synchronization. Construction is single-threaded
// per program, and each logical thread of control gets its own Stack.
type Stack struct {
	programs []*program.Program
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Enter pushes prog and returns a Guard whose Exit pops it. Fails with
// INVALID_PROGRAM if prog is nil.
func (s *Stack) Enter(prog *program.Program) (*Guard, error) {
	if prog == nil {
		return nil, &ScopeError{
			Code:    ErrCodeInvalidProgram,
			Message: "cannot enter scope with nil program",
		}
	}
	s.programs = append(s.programs, prog)
	return &Guard{stack: s, prog: prog, active: true}, nil
}

// Exit pops the top program without guard verification. Prefer Guard.Exit;
// this exists for callers that manage pairing themselves. Fails with
// EMPTY_STACK if nothing is entered.
func (s *Stack) Exit() error {
	if len(s.programs) == 0 {
		return &ScopeError{
			Code:    ErrCodeEmptyStack,
			Message: "cannot exit scope: stack is empty",
		}
	}
	s.programs = s.programs[:len(s.programs)-1]
	return nil
}

// Current returns the program on top of the stack. Fails with
// NO_ACTIVE_PROGRAM if the stack is empty.
func (s *Stack) Current() (*program.Program, error) {
	if len(s.programs) == 0 {
		return nil, &ScopeError{
			Code:    ErrCodeNoActiveProgram,
			Message: "no active program",
		}
	}
	return s.programs[len(s.programs)-1], nil
}

// Depth returns the number of entered programs.
func (s *Stack) Depth() int {
	return len(s.programs)
}

// Guard ties one Enter to exactly one Exit. It is intended for defer:
// Exit runs the pop on the first call and is a no-op afterwards, so a
// deferred Exit after an explicit early Exit stays safe.
type Guard struct {
	stack  *Stack
	prog   *program.Program
	active bool
}

// Exit pops the guard's program. Enforces the strict policy: if the top
// of the stack is not the program this guard entered, nothing is popped
// and SCOPE_MISMATCH is returned — interleaved enters without matching
// exits are a bug worth surfacing, not papering over.
func (g *Guard) Exit() error {
	if !g.active {
		return nil
	}
	top, err := g.stack.Current()
	if err != nil {
		return &ScopeError{
			Code:    ErrCodeEmptyStack,
			Message: "guard exit on empty stack",
			Token:   g.prog.Token(),
		}
	}
	if top != g.prog {
		return &ScopeError{
			Code:    ErrCodeScopeMismatch,
			Message: "scope exited out of order: top of stack is a different program",
			Token:   g.prog.Token(),
		}
	}
	g.active = false
	return g.stack.Exit()
}
