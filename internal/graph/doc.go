// Package graph is the finalized, queryable dataflow representation.
//
// A Graph is produced by compiler.Finalize and is immutable from then
// on: it contains only live nodes, in their original relative order, and
// holds no reference back to the program that built it. Consumers
// (analysis, codegen, test harnesses) query it; nobody mutates it.
package graph
