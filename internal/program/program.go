package program

import (
	"github.com/dagforge/dagforge/internal/ir"
)

// Program accumulates pending operations for one dataflow graph.
//
// Lifecycle: created empty, mutated by Bind/BindAll/Apply/Placeholder
// during construction, and consumed by compiler.Finalize through
// Snapshot. Finalizing the same snapshot any number of times yields the
// same graph; the program itself stays usable for further recording
// after a snapshot is taken.
type Program struct {
	token    string
	registry *nameRegistry

	records      []ir.OpRecord
	placeholders []string

	// opCount counts operation records only (not placeholder records);
	// it feeds the node-naming policy.
	opCount   int
	anonCount int
}

// New creates an empty program with a generated UUIDv7 token.
func New() *Program {
	return NewWithToken(UUIDv7Generator{}.Generate())
}

// NewWithToken creates an empty program with a caller-chosen token.
// Fixed tokens keep golden tests deterministic.
func NewWithToken(token string) *Program {
	return &Program{
		token:    token,
		registry: newNameRegistry(),
	}
}

// Token returns the program's identity token.
func (p *Program) Token() string {
	return p.token
}

// Bind records output = opClass(inputs...) as one pending operation.
// The output name is registered; a duplicate user-declared name fails
// with NAME_CONFLICT and records nothing.
func (p *Program) Bind(output, opClass string, inputs ...string) error {
	return p.BindAll([]string{output}, opClass, inputs...)
}

// BindAll records a single operation producing several outputs, e.g.
// s1, s2 = split(x). All output names are validated and registered before
// anything is recorded, so a failed call leaves the program unchanged.
//
// Rebinding a name that already has a producer is NOT a conflict as long
// as the name itself was only registered once: the new record shadows the
// earlier producer (the registry guards name declarations, not
// assignments). Callers that re-assign an existing variable go through
// Rebind.
func (p *Program) BindAll(outputs []string, opClass string, inputs ...string) error {
	if len(outputs) == 0 {
		return &BuildError{
			Code:    ErrCodeEmptyOutputs,
			Message: "operation must produce at least one output",
			Token:   p.token,
		}
	}
	for _, out := range outputs {
		if out == "" {
			return &BuildError{
				Code:    ErrCodeInvalidName,
				Message: "empty output name",
				Token:   p.token,
			}
		}
	}

	// Pre-check before committing: a conflict must not leave a subset of
	// the outputs registered.
	for _, out := range outputs {
		if !ir.IsAnon(out) && p.registry.registered(out) {
			return newNameConflict(out, p.token)
		}
	}
	seen := make(map[string]struct{}, len(outputs))
	for _, out := range outputs {
		if ir.IsAnon(out) {
			continue
		}
		if _, dup := seen[out]; dup {
			return newNameConflict(out, p.token)
		}
		seen[out] = struct{}{}
	}
	for _, out := range outputs {
		if err := p.registry.register(out, p.token); err != nil {
			return err
		}
	}

	p.appendOp(opClass, inputs, outputs)
	return nil
}

// Rebind records a new producer for an already-declared name. The name
// must have been registered earlier by Bind/BindAll/Placeholder; the new
// record shadows the previous producer of that name.
func (p *Program) Rebind(output, opClass string, inputs ...string) error {
	if output == "" {
		return &BuildError{
			Code:    ErrCodeInvalidName,
			Message: "empty output name",
			Token:   p.token,
		}
	}
	if !ir.IsAnon(output) && !p.registry.registered(output) {
		return &BuildError{
			Code:    ErrCodeInvalidName,
			Message: "cannot rebind a name that was never declared",
			Name:    output,
			Token:   p.token,
		}
	}
	p.appendOp(opClass, inputs, []string{output})
	return nil
}

// Apply records an operation producing a single auto-generated
// intermediate value and returns the generated name. Anonymous values are
// not observable roots; an Apply result nothing ever consumes is dead
// code and will be eliminated at finalization.
func (p *Program) Apply(opClass string, inputs ...string) string {
	out := p.Anon()
	p.appendOp(opClass, inputs, []string{out})
	return out
}

// Anon returns the next auto-generated value name. Generated names carry
// the reserved prefix and embed a per-program monotonic counter, so they
// never collide with user names or with each other.
func (p *Program) Anon() string {
	name := ir.AnonName(p.anonCount)
	p.anonCount++
	return name
}

// Placeholder declares name as an external input. The name is registered
// like any user declaration, marked as a placeholder, and recorded once
// as a trivial zero-input record so it participates uniformly in
// liveness propagation. Placeholders are always live and are exempt from
// "every value must be produced by some operation".
func (p *Program) Placeholder(name string) error {
	if name == "" || ir.IsAnon(name) {
		return &BuildError{
			Code:    ErrCodeInvalidName,
			Message: "placeholder name must be non-empty and must not use the reserved anonymous prefix",
			Name:    name,
			Token:   p.token,
		}
	}
	if err := p.registry.register(name, p.token); err != nil {
		return err
	}
	p.placeholders = append(p.placeholders, name)
	p.records = append(p.records, ir.OpRecord{
		OpClass: ir.OpClassPlaceholder,
		Pos:     len(p.records),
		Outputs: []string{name},
	})
	return nil
}

// OpCount returns the number of operation records (placeholder
// declarations excluded).
func (p *Program) OpCount() int {
	return p.opCount
}

// Snapshot returns an immutable deep copy of the pending log, suitable
// for finalization without disturbing further recording.
func (p *Program) Snapshot() ir.Snapshot {
	records := make([]ir.OpRecord, len(p.records))
	for i, r := range p.records {
		records[i] = ir.OpRecord{
			Name:    r.Name,
			OpClass: r.OpClass,
			Pos:     r.Pos,
			Inputs:  append([]string(nil), r.Inputs...),
			Outputs: append([]string(nil), r.Outputs...),
		}
	}
	return ir.Snapshot{
		Token:        p.token,
		Records:      records,
		Placeholders: append([]string(nil), p.placeholders...),
	}
}

func (p *Program) appendOp(opClass string, inputs, outputs []string) {
	p.records = append(p.records, ir.OpRecord{
		Name:    ir.NodeName(opClass, p.opCount),
		OpClass: opClass,
		Pos:     len(p.records),
		Inputs:  append([]string(nil), inputs...),
		Outputs: append([]string(nil), outputs...),
	})
	p.opCount++
}
