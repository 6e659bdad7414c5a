// Package query provides read-only inspection of a running editor.
//
// Queries are synchronous, never mutate state, and are resolved by name
// through a Registry. The built-in handlers read a State snapshot produced by
// a StateLoader, which the editor supplies.
package query

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/graph"
)

// Handler executes a query. Handlers must not modify editor state.
type Handler func(ctx context.Context, targetID string, args any) (any, error)

// Registry maps query names to handlers.
type Registry struct {
	handlers map[string]Handler
	mu       sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler for a query name.
func (r *Registry) Register(queryName string, handler Handler) error {
	if queryName == "" {
		return errors.New("query name is required")
	}
	if handler == nil {
		return errors.New("handler is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[queryName]; exists {
		return fmt.Errorf("handler for query %q already registered", queryName)
	}
	r.handlers[queryName] = handler
	return nil
}

// MustRegister registers a handler, panicking on error.
func (r *Registry) MustRegister(queryName string, handler Handler) {
	if err := r.Register(queryName, handler); err != nil {
		panic(err)
	}
}

// Get returns the handler for a query name.
func (r *Registry) Get(queryName string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[queryName]
	return h, ok
}

// List returns all registered query names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unregister removes a handler.
func (r *Registry) Unregister(queryName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, queryName)
}

var (
	// ErrQueryNotFound is returned when no handler is registered for a name.
	ErrQueryNotFound = errors.New("query not found")

	// ErrTargetNotFound is returned when the queried session doesn't exist.
	ErrTargetNotFound = errors.New("target not found")
)

// StateLoader returns the current state of a session, or nil if unknown.
type StateLoader func(ctx context.Context, targetID string) (*State, error)

// State is the queryable view of an editor session.
type State struct {
	SessionID string `json:"session_id"`

	// Status is the animation status name.
	Status   string `json:"status"`
	Revealed int    `json:"revealed"`
	Total    int    `json:"total"`

	// Selection is the armed node, empty when none.
	Selection string `json:"selection,omitempty"`

	Nodes []graph.Node `json:"nodes"`
	Edges []graph.Edge `json:"edges"`

	// MST is the most recent solve, nil before the first one.
	MST *MSTSummary `json:"mst,omitempty"`
}

// Progress returns the revealed fraction in [0, 1]. A finished empty
// sequence counts as complete.
func (s *State) Progress() float64 {
	if s.Total == 0 {
		if s.Status == "finished" {
			return 1
		}
		return 0
	}
	return float64(s.Revealed) / float64(s.Total)
}

// MSTSummary describes a solve result.
type MSTSummary struct {
	TotalWeight int64    `json:"total_weight"`
	EdgeIDs     []string `json:"edge_ids"`
	Components  int      `json:"components"`
}

// Executor runs queries against targets.
type Executor struct {
	registry *Registry
}

// NewExecutor creates an executor over registry.
func NewExecutor(registry *Registry) *Executor {
	return &Executor{registry: registry}
}

// Execute runs a query against a target.
func (e *Executor) Execute(ctx context.Context, targetID, queryName string, args any) (any, error) {
	if targetID == "" {
		return nil, errors.New("target ID is required")
	}
	if queryName == "" {
		return nil, errors.New("query name is required")
	}

	handler, ok := e.registry.Get(queryName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQueryNotFound, queryName)
	}
	return handler(ctx, targetID, args)
}

// Result wraps a query result.
type Result struct {
	QueryName string `json:"query_name"`
	TargetID  string `json:"target_id"`
	Value     any    `json:"value"`
	Error     string `json:"error,omitempty"`
}

// ExecuteMultiple runs several queries against a target and returns one
// Result per query, sorted by name. Failures are reported in Result.Error.
func (e *Executor) ExecuteMultiple(ctx context.Context, targetID string, queries map[string]any) []Result {
	names := make([]string, 0, len(queries))
	for name := range queries {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]Result, 0, len(names))
	for _, name := range names {
		r := Result{QueryName: name, TargetID: targetID}
		value, err := e.Execute(ctx, targetID, name, queries[name])
		if err != nil {
			r.Error = err.Error()
		} else {
			r.Value = value
		}
		results = append(results, r)
	}
	return results
}
