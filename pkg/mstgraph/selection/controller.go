// Package selection turns node and canvas taps into graph mutations.
//
// The Controller is a two-state machine:
//
//	Idle        + tap node n    -> SourceArmed(n)
//	SourceArmed + tap node n    -> Idle (deselect)
//	SourceArmed + tap node m    -> Idle, edge(n, m)
//	Idle        + tap canvas p  -> Idle, node at p
//	SourceArmed + tap canvas p  -> Idle, node at p, edge(n, new)
//
// Any failure while creating an edge still returns the machine to Idle.
// The controller never retries.
package selection

import (
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/geometry"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/graph"
)

// State is the controller's current state.
type State int

const (
	// Idle means no node is armed.
	Idle State = iota
	// SourceArmed means a node is waiting to become an edge source.
	SourceArmed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case SourceArmed:
		return "source_armed"
	default:
		return "unknown"
	}
}

// Graph is the subset of the graph store the controller mutates.
type Graph interface {
	HasNode(id string) bool
	AddNode(pos geometry.Position) (graph.Node, error)
	AddEdge(source, target string) (graph.Edge, error)
}

// Outcome describes what a tap changed.
type Outcome struct {
	// CreatedNode is set when the tap created a node.
	CreatedNode *graph.Node

	// CreatedEdge is set when the tap created an edge.
	CreatedEdge *graph.Edge

	// SelectionChanged is true when the armed node changed.
	SelectionChanged bool

	// Selected is the armed node after the tap, empty when Idle.
	Selected string
}

// Controller is the selection state machine. It is not safe for concurrent
// use; the owning coordinator serializes calls.
type Controller struct {
	graph   Graph
	pending string
}

// NewController returns an Idle controller over g.
func NewController(g Graph) *Controller {
	return &Controller{graph: g}
}

// State returns the current state.
func (c *Controller) State() State {
	if c.pending == "" {
		return Idle
	}
	return SourceArmed
}

// Pending returns the armed node id, or "" when Idle.
func (c *Controller) Pending() string {
	return c.pending
}

// Reset drops any armed node. It reports whether the selection changed.
func (c *Controller) Reset() bool {
	changed := c.pending != ""
	c.pending = ""
	return changed
}

// TapNode handles a tap on an existing node. Any failure while a node is
// armed still returns the machine to Idle.
func (c *Controller) TapNode(id string) (Outcome, error) {
	if c.pending == "" {
		if !c.graph.HasNode(id) {
			return Outcome{}, &graph.MutationError{Op: "tap_node", NodeID: id, Err: graph.ErrNodeNotFound}
		}
		c.pending = id
		return Outcome{SelectionChanged: true, Selected: id}, nil
	}

	source := c.pending
	c.pending = ""
	out := Outcome{SelectionChanged: true}

	if !c.graph.HasNode(id) {
		return out, &graph.MutationError{Op: "tap_node", NodeID: source, OtherID: id, Err: graph.ErrNodeNotFound}
	}
	if source == id {
		return out, nil
	}

	edge, err := c.graph.AddEdge(source, id)
	if err != nil {
		return out, err
	}
	out.CreatedEdge = &edge
	return out, nil
}

// TapCanvas handles a tap on empty canvas at pos. If a node is armed, the new
// node is connected to it. A node created before a failed edge stays.
func (c *Controller) TapCanvas(pos geometry.Position) (Outcome, error) {
	source := c.pending
	c.pending = ""
	out := Outcome{SelectionChanged: source != ""}

	node, err := c.graph.AddNode(pos)
	if err != nil {
		return out, err
	}
	out.CreatedNode = &node

	if source == "" {
		return out, nil
	}

	edge, err := c.graph.AddEdge(source, node.ID)
	if err != nil {
		return out, err
	}
	out.CreatedEdge = &edge
	return out, nil
}
