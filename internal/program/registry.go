package program

import "github.com/dagforge/dagforge/internal/ir"

// nameRegistry tracks user-declared value names within one program and
// rejects duplicates. Names are case-sensitive and never normalized.
//
// There is no removal: once a name is taken it stays taken for the
// program's lifetime, even if the value it named is later overwritten or
// proven dead. A program's namespace only grows.
type nameRegistry struct {
	names map[string]struct{}
}

func newNameRegistry() *nameRegistry {
	return &nameRegistry{names: make(map[string]struct{})}
}

// register claims name for the program identified by token.
//
// Names carrying the reserved anonymous prefix are the anonymous
// sentinel: they are never inserted and never conflict, mirroring how
// auto-generated intermediates bypass user-name bookkeeping entirely.
func (r *nameRegistry) register(name, token string) error {
	if ir.IsAnon(name) {
		return nil
	}
	if _, taken := r.names[name]; taken {
		return newNameConflict(name, token)
	}
	r.names[name] = struct{}{}
	return nil
}

// registered reports whether name has been claimed.
func (r *nameRegistry) registered(name string) bool {
	_, ok := r.names[name]
	return ok
}
