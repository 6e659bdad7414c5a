package graph

import (
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/geometry"
)

// Node is a vertex placed on the canvas.
type Node struct {
	ID       string            `json:"id"`
	Position geometry.Position `json:"position"`
}

// Edge is an undirected, weighted connection stored with the endpoint order it
// was created with.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int64  `json:"weight"`
}

// Touches reports whether nodeID is one of the edge's endpoints.
func (e Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// Seed is a node restored by Reset.
type Seed struct {
	ID       string            `json:"id" yaml:"id"`
	Position geometry.Position `json:"position" yaml:"position"`
}

// DefaultSeeds is the two-node graph the editor starts from.
func DefaultSeeds() []Seed {
	return []Seed{
		{ID: "A", Position: geometry.Pos(100, 200)},
		{ID: "B", Position: geometry.Pos(300, 200)},
	}
}

// EdgeID derives the id of the edge from source to target.
func EdgeID(source, target string) string {
	return source + "_" + target
}

// pairKey identifies an unordered endpoint pair.
type pairKey struct {
	lo, hi string
}

func keyOf(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}
