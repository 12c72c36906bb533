// Package compiler contains the passes that run over an IR snapshot:
// finalization (dead-code elimination into a graph.Graph), structural
// validation, dead-code analysis for diagnostics, and compilation of
// declarative CUE flow specs into ir.FlowSpec.
//
// All passes are pure functions of their snapshot: they never mutate it
// and never hold state between calls, which is what makes finalization
// idempotent.
package compiler
