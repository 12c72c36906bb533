// Package harness runs declarative construction scenarios for tests.
//
// A scenario is a YAML file (or in-code struct) naming placeholders,
// bind steps, and assertions over the finalized graph. Scenarios use
// fixed program tokens so their output is deterministic, which makes
// golden comparison of the canonical graph JSON possible.
package harness
