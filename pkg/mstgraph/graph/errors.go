package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph mutations.
var (
	// ErrNodeNotFound indicates an operation referenced a node that does not exist.
	ErrNodeNotFound = errors.New("node not found")

	// ErrSelfLoop indicates an edge whose source and target are the same node.
	ErrSelfLoop = errors.New("self-loop not allowed")

	// ErrDuplicateEdge indicates an edge already connects the unordered pair.
	ErrDuplicateEdge = errors.New("edge already connects these nodes")

	// ErrInvalidPosition indicates a non-finite coordinate.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidSeed indicates a malformed or repeated seed node.
	ErrInvalidSeed = errors.New("invalid seed")
)

// MutationError wraps a failed store mutation with the ids involved.
type MutationError struct {
	// Op is the operation that failed ("add_node", "add_edge", "move_node").
	Op string
	// NodeID is the primary node involved, if any.
	NodeID string
	// OtherID is the second endpoint for edge operations.
	OtherID string
	// Err is the underlying sentinel.
	Err error
}

// Error implements the error interface.
func (e *MutationError) Error() string {
	switch {
	case e.OtherID != "":
		return fmt.Sprintf("%s %s-%s: %v", e.Op, e.NodeID, e.OtherID, e.Err)
	case e.NodeID != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.NodeID, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *MutationError) Unwrap() error {
	return e.Err
}
