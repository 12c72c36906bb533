package harness

import (
	"fmt"

	"github.com/dagforge/dagforge/internal/graph"
)

// Check evaluates one assertion against a finalized graph, returning an
// error describing the failure or nil.
func (a Assertion) Check(g *graph.Graph) error {
	switch a.Type {
	case AssertNodeCount:
		if got := g.NodeCount(); got != a.Count {
			return fmt.Errorf("node_count: expected %d, got %d", a.Count, got)
		}
	case AssertHasNode:
		if !g.HasNode(a.Node) {
			return fmt.Errorf("has_node: node %q not in graph", a.Node)
		}
	case AssertAbsentNode:
		if g.HasNode(a.Node) {
			return fmt.Errorf("absent_node: node %q unexpectedly present", a.Node)
		}
	case AssertPlaceholder:
		if !g.IsPlaceholder(a.Name) {
			return fmt.Errorf("placeholder: %q is not a placeholder", a.Name)
		}
	case AssertProduces:
		if !g.Produces(a.Node, a.Value) {
			return fmt.Errorf("produces: node %q does not produce %q", a.Node, a.Value)
		}
	case AssertConsumes:
		if !g.Consumes(a.Node, a.Value) {
			return fmt.Errorf("consumes: node %q does not consume %q", a.Node, a.Value)
		}
	case AssertRenders:
		rendered, ok := g.RenderNode(a.Node)
		if !ok {
			return fmt.Errorf("renders: node %q not in graph", a.Node)
		}
		if rendered != a.Rendered {
			return fmt.Errorf("renders: node %q rendered as %q, expected %q", a.Node, rendered, a.Rendered)
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
