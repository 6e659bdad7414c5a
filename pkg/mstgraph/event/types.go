package event

import (
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/animation"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/graph"
)

// Event types emitted by the editor.
const (
	TypeNodeCreated       = "node.created"
	TypeEdgeCreated       = "edge.created"
	TypeEdgeWeightUpdated = "edge.weight_updated"
	TypeSelectionChanged  = "selection.changed"
	TypeMSTSolved         = "mst.solved"
	TypeEdgeRevealed      = "mst.edge_revealed"
	TypeMSTFinished       = "mst.finished"
	TypeStatusChanged     = "animation.status_changed"
	TypeGraphCleared      = "graph.cleared"
)

// Event sources.
const (
	SourceEditor    = "editor"
	SourceSelection = "selection"
	SourceSolver    = "solver"
	SourceAnimation = "animation"
)

// Types lists every event type in emission-independent order.
func Types() []string {
	return []string{
		TypeNodeCreated,
		TypeEdgeCreated,
		TypeEdgeWeightUpdated,
		TypeSelectionChanged,
		TypeMSTSolved,
		TypeEdgeRevealed,
		TypeMSTFinished,
		TypeStatusChanged,
		TypeGraphCleared,
	}
}

// NodeCreated is the payload of node.created.
type NodeCreated struct {
	Node graph.Node `json:"node"`
}

// EdgeCreated is the payload of edge.created.
type EdgeCreated struct {
	Edge graph.Edge `json:"edge"`
}

// EdgeWeightUpdated is the payload of edge.weight_updated.
type EdgeWeightUpdated struct {
	EdgeID   string `json:"edge_id"`
	Weight   int64  `json:"weight"`
	Previous int64  `json:"previous"`
}

// SelectionChanged is the payload of selection.changed.
// NodeID is empty when the selection was cleared.
type SelectionChanged struct {
	NodeID string `json:"node_id,omitempty"`
}

// MSTSolved is the payload of mst.solved.
type MSTSolved struct {
	TotalWeight int64    `json:"total_weight"`
	EdgeIDs     []string `json:"edge_ids"`
	Components  int      `json:"components"`
}

// EdgeRevealed is the payload of mst.edge_revealed.
type EdgeRevealed struct {
	EdgeID string `json:"edge_id"`
	Index  int    `json:"index"`
}

// MSTFinished is the payload of mst.finished.
type MSTFinished struct {
	Sequence []string `json:"sequence"`
}

// StatusChanged is the payload of animation.status_changed.
type StatusChanged struct {
	Status animation.Status `json:"status"`
}

// GraphCleared is the payload of graph.cleared.
type GraphCleared struct {
	Nodes []graph.Node `json:"nodes"`
}
