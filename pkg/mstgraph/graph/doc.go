// Package graph owns the editor's nodes and edges.
//
// Store is the single authority over the graph: nodes are unique by id,
// edges are unique by id and by unordered endpoint pair, every edge references
// existing nodes, and every edge weight equals the weight rule applied to the
// current endpoint positions. Weights are never set directly; they are derived
// on AddEdge and recomputed for incident edges on MoveNode.
//
// Store is not safe for concurrent use. The editor serializes all access.
package graph
