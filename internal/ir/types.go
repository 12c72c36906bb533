package ir

// OpRecord is one pending operation in a program's log.
//
// Identity is structural. Name is the stable node identifier assigned at
// insertion time (see NodeName); it survives dead-code elimination
// unchanged, so retained nodes keep the names they were given during
// construction. Inputs and Outputs hold value names, never node names.
//
// Placeholder declarations are recorded as trivial zero-input records
// with OpClass == OpClassPlaceholder and an empty Name. They participate
// in liveness propagation like any other producer but are never emitted
// as graph nodes.
type OpRecord struct {
	Name    string   `json:"name,omitempty"`
	OpClass string   `json:"op"`
	Pos     int      `json:"pos"`
	Inputs  []string `json:"inputs,omitempty"`
	Outputs []string `json:"outputs"`
}

// IsPlaceholder reports whether this record is a placeholder declaration
// rather than a real operation.
func (r OpRecord) IsPlaceholder() bool {
	return r.OpClass == OpClassPlaceholder
}

// Snapshot is an immutable copy of a program's construction state, taken
// with Program.Snapshot. Optimization passes consume snapshots so that
// construction and optimization never alias mutable state.
type Snapshot struct {
	// Token identifies the originating program (diagnostics only; it has
	// no effect on finalization output).
	Token string `json:"token,omitempty"`

	// Records is the pending-operation log in insertion order. Pos fields
	// are dense and strictly increasing.
	Records []OpRecord `json:"records"`

	// Placeholders lists declared external inputs in declaration order.
	Placeholders []string `json:"placeholders,omitempty"`
}

// HasPlaceholder reports whether name was declared as a placeholder.
func (s Snapshot) HasPlaceholder(name string) bool {
	for _, p := range s.Placeholders {
		if p == name {
			return true
		}
	}
	return false
}

// FlowSpec is a declarative description of one program: external inputs
// plus an ordered list of operator applications. Flow specs are what the
// CUE loader produces and what the CLI builds programs from.
type FlowSpec struct {
	Name         string   `json:"name"`
	Placeholders []string `json:"placeholders,omitempty"`
	Ops          []OpDecl `json:"ops"`
}

// OpDecl is one operator application inside a FlowSpec.
type OpDecl struct {
	OpClass string   `json:"op"`
	Inputs  []string `json:"in,omitempty"`
	Outputs []string `json:"out"`
}
