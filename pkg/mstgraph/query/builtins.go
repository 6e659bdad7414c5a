package query

import (
	"context"
	"fmt"
)

// Built-in query names.
const (
	QueryStatus    = "status"    // Animation status name
	QueryProgress  = "progress"  // Revealed fraction
	QueryNodes     = "nodes"     // All nodes, or one node when args is its ID
	QueryEdges     = "edges"     // All edges, or one edge when args is its ID
	QuerySelection = "selection" // Armed node ID, empty when none
	QueryMST       = "mst"       // Last solve summary
	QueryState     = "state"     // Full State
)

// RegisterBuiltins registers the standard handlers backed by loader.
func RegisterBuiltins(registry *Registry, loader StateLoader) error {
	load := func(ctx context.Context, targetID string) (*State, error) {
		state, err := loader(ctx, targetID)
		if err != nil {
			return nil, err
		}
		if state == nil {
			return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, targetID)
		}
		return state, nil
	}

	view := func(fn func(s *State, args any) (any, error)) Handler {
		return func(ctx context.Context, targetID string, args any) (any, error) {
			state, err := load(ctx, targetID)
			if err != nil {
				return nil, err
			}
			return fn(state, args)
		}
	}

	builtins := map[string]Handler{
		QueryStatus: view(func(s *State, _ any) (any, error) {
			return s.Status, nil
		}),
		QueryProgress: view(func(s *State, _ any) (any, error) {
			return s.Progress(), nil
		}),
		QueryNodes: view(func(s *State, args any) (any, error) {
			id, ok := args.(string)
			if !ok || id == "" {
				return s.Nodes, nil
			}
			for _, n := range s.Nodes {
				if n.ID == id {
					return n, nil
				}
			}
			return nil, fmt.Errorf("node %q not found", id)
		}),
		QueryEdges: view(func(s *State, args any) (any, error) {
			id, ok := args.(string)
			if !ok || id == "" {
				return s.Edges, nil
			}
			for _, e := range s.Edges {
				if e.ID == id {
					return e, nil
				}
			}
			return nil, fmt.Errorf("edge %q not found", id)
		}),
		QuerySelection: view(func(s *State, _ any) (any, error) {
			return s.Selection, nil
		}),
		QueryMST: view(func(s *State, _ any) (any, error) {
			return s.MST, nil
		}),
		QueryState: view(func(s *State, _ any) (any, error) {
			return s, nil
		}),
	}

	for name, h := range builtins {
		if err := registry.Register(name, h); err != nil {
			return fmt.Errorf("register builtin query %q: %w", name, err)
		}
	}
	return nil
}
