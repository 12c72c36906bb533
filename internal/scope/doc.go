// Package scope lets operation-binding code that does not carry an
// explicit *program.Program still target "whatever program is current",
// supporting nested construction (sub-graphs built inside helper calls).
//
// The stack is deliberately not a process-wide singleton. A singleton
// is hostile to concurrent builds, so the stack is an explicit
// per-builder value with no internal locking: one Stack per goroutine
// (or external synchronization if a Stack must be shared). Discipline is
// strictly LIFO and enforced — Guard.Exit verifies it is popping the
// program its Enter pushed.
//
// The intended usage is the Go spelling of a scoped acquisition:
//
//	guard, err := stack.Enter(prog)
//	if err != nil {
//		return err
//	}
//	defer guard.Exit()
//
// so exactly one matching exit runs on every exit path, early returns
// and panics included.
package scope
