package mstgraph

import (
	"context"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/query"
)

// Query runs a read-only query against this session. See the query package
// for the built-in names.
func (e *Editor) Query(ctx context.Context, name string, args any) (any, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	return e.queries.Execute(ctx, e.sessionID, name, args)
}

// QueryMany runs several queries and reports each result separately.
func (e *Editor) QueryMany(ctx context.Context, queries map[string]any) []query.Result {
	return e.queries.ExecuteMultiple(ctx, e.sessionID, queries)
}

// RegisterQuery adds a custom query handler for this editor.
func (e *Editor) RegisterQuery(name string, handler query.Handler) error {
	return e.registry.Register(name, handler)
}

// StateLoader returns a loader resolving this editor's session id. Use it to
// serve several editors from one query.Registry.
func (e *Editor) StateLoader() query.StateLoader {
	return e.loadState
}

func (e *Editor) loadState(_ context.Context, targetID string) (*query.State, error) {
	if targetID != e.sessionID {
		return nil, nil
	}
	return e.Snapshot(), nil
}
