package compiler

import (
	"fmt"

	"github.com/dagforge/dagforge/internal/graph"
	"github.com/dagforge/dagforge/internal/ir"
)

// Finalize runs dead-code elimination over an IR snapshot and assembles
// the finalized graph: only live operations, in their original relative
// order, with node names exactly as assigned at insertion time.
//
// Multi-output records are kept whole when any one output is live;
// outputs are never pruned independently. Declared placeholders survive
// even when nothing consumes them, but contribute no node.
//
// There is no partial success: either a complete, internally consistent
// graph is returned, or an error and no graph. Finalize is a pure
// function of the snapshot, so re-finalizing yields an identical graph
// (equal fingerprints) every time.
func Finalize(snap ir.Snapshot) (*graph.Graph, error) {
	for _, r := range snap.Records {
		if len(r.Outputs) == 0 {
			return nil, fmt.Errorf("finalize: record %d (%s) has no outputs", r.Pos, r.OpClass)
		}
	}

	live := liveRecords(snap)

	var nodes []graph.Node
	for _, r := range snap.Records {
		if r.IsPlaceholder() || !live[r.Pos] {
			continue
		}
		nodes = append(nodes, graph.Node{
			Name:    r.Name,
			OpClass: r.OpClass,
			Inputs:  append([]string(nil), r.Inputs...),
			Outputs: append([]string(nil), r.Outputs...),
		})
	}

	return graph.New(nodes, snap.Placeholders), nil
}
