// Package mst computes minimum spanning forests with Kruskal's algorithm.
//
// Solve never fails: an empty edge list yields an empty result and a
// disconnected graph yields a spanning forest, one tree per component.
package mst

import (
	"sort"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/graph"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/unionfind"
)

// Result is the outcome of a solve.
type Result struct {
	// TotalWeight is the sum of the accepted edge weights.
	TotalWeight int64 `json:"total_weight"`

	// Edges are the accepted edges in acceptance order (ascending weight,
	// ties in input order).
	Edges []graph.Edge `json:"edges"`

	// Nodes is the number of distinct nodes seen (edge endpoints plus any
	// nodes passed with WithNodes).
	Nodes int `json:"nodes"`

	// Components is the number of trees in the forest.
	Components int `json:"components"`
}

// EdgeIDs returns the accepted edge ids in acceptance order.
func (r Result) EdgeIDs() []string {
	ids := make([]string, len(r.Edges))
	for i, e := range r.Edges {
		ids[i] = e.ID
	}
	return ids
}

// Spanning reports whether the result is a single tree over all nodes seen.
func (r Result) Spanning() bool {
	return r.Components <= 1
}

type solveConfig struct {
	nodes []string
}

// Option configures Solve.
type Option func(*solveConfig)

// WithNodes registers node ids up front so isolated nodes count as their own
// component.
func WithNodes(ids ...string) Option {
	return func(c *solveConfig) {
		c.nodes = append(c.nodes, ids...)
	}
}

// Solve runs Kruskal's algorithm over edges.
//
// Steps:
//  1. Copy and stable-sort edges by ascending weight so equal weights keep
//     their input order.
//  2. For each edge, accept it when its endpoints are in different sets and
//     union them; otherwise it would close a cycle and is skipped.
//  3. Self-loops are skipped outright.
//
// Complexity: O(E log E + E·α(V)).
func Solve(edges []graph.Edge, opts ...Option) Result {
	var cfg solveConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	uf := unionfind.New()
	for _, id := range cfg.nodes {
		uf.Add(id)
	}

	sorted := make([]graph.Edge, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight < sorted[j].Weight
	})

	result := Result{Edges: []graph.Edge{}}
	for _, e := range sorted {
		if e.Source == e.Target {
			uf.Add(e.Source)
			continue
		}
		if uf.Find(e.Source) == uf.Find(e.Target) {
			continue
		}
		uf.Union(e.Source, e.Target)
		result.Edges = append(result.Edges, e)
		result.TotalWeight += e.Weight
	}

	result.Nodes = uf.Len()
	result.Components = uf.Sets()
	return result
}
