package harness

import (
	"github.com/dagforge/dagforge/internal/graph"
)

// Scenario describes one construction-then-finalize cycle.
type Scenario struct {
	Name         string      `yaml:"name"`
	Description  string      `yaml:"description,omitempty"`
	Token        string      `yaml:"token"`
	Placeholders []string    `yaml:"placeholders,omitempty"`
	Steps        []Step      `yaml:"steps"`
	Assertions   []Assertion `yaml:"assertions,omitempty"`
}

// Step is one operator application. Binding a name that an earlier step
// already bound is a reassignment and shadows the earlier producer.
type Step struct {
	Bind []string `yaml:"bind"`
	Op   string   `yaml:"op"`
	In   []string `yaml:"in,omitempty"`
}

// Assertion is one check against the finalized graph.
type Assertion struct {
	Type     AssertionType `yaml:"type"`
	Count    int           `yaml:"count,omitempty"`
	Node     string        `yaml:"node,omitempty"`
	Name     string        `yaml:"name,omitempty"`
	Value    string        `yaml:"value,omitempty"`
	Rendered string        `yaml:"rendered,omitempty"`
}

// AssertionType enumerates the supported checks.
type AssertionType string

const (
	AssertNodeCount   AssertionType = "node_count"
	AssertHasNode     AssertionType = "has_node"
	AssertAbsentNode  AssertionType = "absent_node"
	AssertPlaceholder AssertionType = "placeholder"
	AssertProduces    AssertionType = "produces"
	AssertConsumes    AssertionType = "consumes"
	AssertRenders     AssertionType = "renders"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Errors contains assertion failure messages. Empty when Pass.
	Errors []string `json:"errors,omitempty"`

	// Graph is the finalized graph, for further checks and golden
	// comparison.
	Graph *graph.Graph `json:"graph"`
}

// NewResult creates a passing result; assertion failures flip it.
func NewResult(g *graph.Graph) *Result {
	return &Result{Pass: true, Graph: g}
}

// AddError records an assertion failure and marks the result failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}
