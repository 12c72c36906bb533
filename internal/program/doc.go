// Package program holds the construction-time state of one dataflow
// program: the variable-name registry and the append-only pending
// operation log.
//
// A Program is mutated by Bind/Placeholder calls during construction and
// consumed by compiler.Finalize via Snapshot. Programs have no internal
// synchronization; construction is single-threaded per program. Two
// goroutines building unrelated programs are fine as long as each sticks
// to its own Program (and its own scope.Stack).
package program
