package graph

import (
	"fmt"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/geometry"
)

// storeConfig holds construction options for a Store.
type storeConfig struct {
	scale float64
	seeds []Seed
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

// WithScale sets the distance units per weight unit.
// Default: geometry.DefaultScale
func WithScale(scale float64) StoreOption {
	return func(c *storeConfig) {
		c.scale = scale
	}
}

// WithSeeds replaces the seed nodes restored by Reset.
// Default: DefaultSeeds()
func WithSeeds(seeds []Seed) StoreOption {
	return func(c *storeConfig) {
		c.seeds = append([]Seed(nil), seeds...)
	}
}

// Store is the authoritative set of nodes and edges.
type Store struct {
	rule  geometry.WeightRule
	seeds []Seed

	nodes     []Node
	nodeIndex map[string]int

	edges     []Edge
	edgeIndex map[string]int
	pairs     map[pairKey]string

	lastID string
}

// NewStore creates a store holding only the seed nodes.
func NewStore(opts ...StoreOption) (*Store, error) {
	cfg := storeConfig{
		scale: geometry.DefaultScale,
		seeds: DefaultSeeds(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validateSeeds(cfg.seeds); err != nil {
		return nil, err
	}

	s := &Store{
		rule:  geometry.NewWeightRule(cfg.scale),
		seeds: cfg.seeds,
	}
	s.Reset()
	return s, nil
}

func validateSeeds(seeds []Seed) error {
	seen := make(map[string]bool, len(seeds))
	for _, seed := range seeds {
		if !ValidID(seed.ID) {
			return fmt.Errorf("%w: id %q must be uppercase letters", ErrInvalidSeed, seed.ID)
		}
		if seen[seed.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidSeed, seed.ID)
		}
		if !seed.Position.Finite() {
			return fmt.Errorf("%w: %s at %v: %w", ErrInvalidSeed, seed.ID, seed.Position, ErrInvalidPosition)
		}
		seen[seed.ID] = true
	}
	return nil
}

// Scale returns the weight rule's scale.
func (s *Store) Scale() float64 {
	return s.rule.Scale
}

// AddNode places a node at pos under the next free id.
func (s *Store) AddNode(pos geometry.Position) (Node, error) {
	if !pos.Finite() {
		return Node{}, &MutationError{Op: "add_node", Err: ErrInvalidPosition}
	}

	id := NextID(s.lastID)
	for s.HasNode(id) {
		id = NextID(id)
	}

	node := Node{ID: id, Position: pos}
	s.nodeIndex[id] = len(s.nodes)
	s.nodes = append(s.nodes, node)
	s.lastID = id
	return node, nil
}

// AddEdge connects source and target. The weight is derived from the current
// endpoint positions. Either the edge is fully recorded or nothing changes.
func (s *Store) AddEdge(source, target string) (Edge, error) {
	src, ok := s.node(source)
	if !ok {
		return Edge{}, &MutationError{Op: "add_edge", NodeID: source, OtherID: target, Err: ErrNodeNotFound}
	}
	dst, ok := s.node(target)
	if !ok {
		return Edge{}, &MutationError{Op: "add_edge", NodeID: source, OtherID: target, Err: ErrNodeNotFound}
	}
	if source == target {
		return Edge{}, &MutationError{Op: "add_edge", NodeID: source, OtherID: target, Err: ErrSelfLoop}
	}
	key := keyOf(source, target)
	if _, exists := s.pairs[key]; exists {
		return Edge{}, &MutationError{Op: "add_edge", NodeID: source, OtherID: target, Err: ErrDuplicateEdge}
	}

	edge := Edge{
		ID:     EdgeID(source, target),
		Source: source,
		Target: target,
		Weight: s.rule.Weight(src.Position, dst.Position),
	}
	s.edgeIndex[edge.ID] = len(s.edges)
	s.edges = append(s.edges, edge)
	s.pairs[key] = edge.ID
	return edge, nil
}

// MoveNode updates a node's position and recomputes the weight of every edge
// incident to it. The incident edges are returned with their new weights.
func (s *Store) MoveNode(id string, pos geometry.Position) ([]Edge, error) {
	i, ok := s.nodeIndex[id]
	if !ok {
		return nil, &MutationError{Op: "move_node", NodeID: id, Err: ErrNodeNotFound}
	}
	if !pos.Finite() {
		return nil, &MutationError{Op: "move_node", NodeID: id, Err: ErrInvalidPosition}
	}

	s.nodes[i].Position = pos

	var touched []Edge
	for j := range s.edges {
		e := &s.edges[j]
		if !e.Touches(id) {
			continue
		}
		src, _ := s.node(e.Source)
		dst, _ := s.node(e.Target)
		e.Weight = s.rule.Weight(src.Position, dst.Position)
		touched = append(touched, *e)
	}
	return touched, nil
}

// Reset drops every edge and restores the seed nodes.
func (s *Store) Reset() {
	s.nodes = make([]Node, 0, len(s.seeds))
	s.nodeIndex = make(map[string]int, len(s.seeds))
	s.edges = nil
	s.edgeIndex = make(map[string]int)
	s.pairs = make(map[pairKey]string)
	s.lastID = ""

	for _, seed := range s.seeds {
		s.nodeIndex[seed.ID] = len(s.nodes)
		s.nodes = append(s.nodes, Node{ID: seed.ID, Position: seed.Position})
		s.lastID = seed.ID
	}
}

// Seeds returns a copy of the seed nodes.
func (s *Store) Seeds() []Seed {
	return append([]Seed(nil), s.seeds...)
}

// Nodes returns a snapshot of all nodes in insertion order.
func (s *Store) Nodes() []Node {
	return append([]Node(nil), s.nodes...)
}

// Edges returns a snapshot of all edges in insertion order.
func (s *Store) Edges() []Edge {
	return append([]Edge(nil), s.edges...)
}

// Node returns the node with the given id.
func (s *Store) Node(id string) (Node, bool) {
	return s.node(id)
}

// Edge returns the edge with the given id.
func (s *Store) Edge(id string) (Edge, bool) {
	i, ok := s.edgeIndex[id]
	if !ok {
		return Edge{}, false
	}
	return s.edges[i], true
}

// EdgeBetween returns the edge connecting a and b in either direction.
func (s *Store) EdgeBetween(a, b string) (Edge, bool) {
	id, ok := s.pairs[keyOf(a, b)]
	if !ok {
		return Edge{}, false
	}
	return s.Edge(id)
}

// HasNode reports whether id exists.
func (s *Store) HasNode(id string) bool {
	_, ok := s.nodeIndex[id]
	return ok
}

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int {
	return len(s.nodes)
}

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int {
	return len(s.edges)
}

// LastID returns the most recently issued node id.
func (s *Store) LastID() string {
	return s.lastID
}

func (s *Store) node(id string) (Node, bool) {
	i, ok := s.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return s.nodes[i], true
}
