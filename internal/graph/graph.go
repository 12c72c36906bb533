package graph

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/dagforge/dagforge/internal/ir"
)

// Node is one retained operation: name is the stable node identifier,
// inputs/outputs are value names (edges).
type Node struct {
	Name    string   `json:"name"`
	OpClass string   `json:"op"`
	Inputs  []string `json:"inputs,omitempty"`
	Outputs []string `json:"outputs"`
}

// Graph is an ordered sequence of live nodes plus the declared
// placeholders. Placeholders survive finalization even when nothing
// consumes them; they contribute no node.
type Graph struct {
	nodes        []Node
	byName       map[string]int
	placeholders []string
}

// New assembles a finalized graph. Nodes must already be pruned and in
// original relative order; New is called by the optimizer, not by
// construction code.
func New(nodes []Node, placeholders []string) *Graph {
	byName := make(map[string]int, len(nodes))
	for i, n := range nodes {
		byName[n.Name] = i
	}
	return &Graph{
		nodes:        slices.Clone(nodes),
		byName:       byName,
		placeholders: slices.Clone(placeholders),
	}
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Nodes returns the live nodes in original relative order. The returned
// slice is a copy; the graph stays immutable.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = Node{
			Name:    n.Name,
			OpClass: n.OpClass,
			Inputs:  slices.Clone(n.Inputs),
			Outputs: slices.Clone(n.Outputs),
		}
	}
	return out
}

// HasNode reports whether a live node with the given name exists.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.byName[name]
	return ok
}

// IsPlaceholder reports whether name was declared as an external input.
func (g *Graph) IsPlaceholder(name string) bool {
	return slices.Contains(g.placeholders, name)
}

// Placeholders returns the declared external inputs in declaration order.
func (g *Graph) Placeholders() []string {
	return slices.Clone(g.placeholders)
}

// Produces reports whether the named node produces the named value.
// False if the node does not exist.
func (g *Graph) Produces(nodeName, valueName string) bool {
	i, ok := g.byName[nodeName]
	if !ok {
		return false
	}
	return slices.Contains(g.nodes[i].Outputs, valueName)
}

// Consumes reports whether the named node consumes the named value.
// False if the node does not exist.
func (g *Graph) Consumes(nodeName, valueName string) bool {
	i, ok := g.byName[nodeName]
	if !ok {
		return false
	}
	return slices.Contains(g.nodes[i].Inputs, valueName)
}

// InputsOf returns the ordered input names of a node.
func (g *Graph) InputsOf(nodeName string) ([]string, bool) {
	i, ok := g.byName[nodeName]
	if !ok {
		return nil, false
	}
	return slices.Clone(g.nodes[i].Inputs), true
}

// OutputsOf returns the ordered output names of a node.
func (g *Graph) OutputsOf(nodeName string) ([]string, bool) {
	i, ok := g.byName[nodeName]
	if !ok {
		return nil, false
	}
	return slices.Clone(g.nodes[i].Outputs), true
}

// RenderNode formats one node as "{inputs} -> name -> {outputs}", e.g.
//
//	{input, t1} -> add:1 -> {t2}
func (g *Graph) RenderNode(nodeName string) (string, bool) {
	i, ok := g.byName[nodeName]
	if !ok {
		return "", false
	}
	n := g.nodes[i]
	return fmt.Sprintf("{%s} -> %s -> {%s}",
		strings.Join(n.Inputs, ", "),
		n.Name,
		strings.Join(n.Outputs, ", ")), true
}

// CanonicalMap returns the graph's content as canonical-JSON-compatible
// values: node list and placeholder list only. Fingerprints and golden
// snapshots are computed over this shape.
func (g *Graph) CanonicalMap() map[string]any {
	nodes := make([]any, len(g.nodes))
	for i, n := range g.nodes {
		nodes[i] = map[string]any{
			"name":    n.Name,
			"op":      n.OpClass,
			"inputs":  n.Inputs,
			"outputs": n.Outputs,
		}
	}
	return map[string]any{
		"nodes":        nodes,
		"placeholders": g.placeholders,
	}
}

// Fingerprint returns the content-addressed identity of the graph:
// SHA-256 over canonical JSON with domain separation. Two finalizations
// of the same IR snapshot produce equal fingerprints.
func (g *Graph) Fingerprint() (string, error) {
	return ir.Fingerprint(ir.DomainGraph, g.CanonicalMap())
}

// graphDoc is the JSON shape of a finalized graph as emitted by the CLI.
type graphDoc struct {
	Nodes        []Node   `json:"nodes"`
	Placeholders []string `json:"placeholders,omitempty"`
	Fingerprint  string   `json:"fingerprint"`
}

// MarshalJSON emits the graph with its fingerprint. This is display
// serialization; identity computation goes through Fingerprint.
func (g *Graph) MarshalJSON() ([]byte, error) {
	fp, err := g.Fingerprint()
	if err != nil {
		return nil, err
	}
	return json.Marshal(graphDoc{
		Nodes:        g.Nodes(),
		Placeholders: g.Placeholders(),
		Fingerprint:  fp,
	})
}
