package query_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/geometry"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/graph"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/query"
)

func ok(context.Context, string, any) (any, error) { return "ok", nil }

func TestRegistry_Register(t *testing.T) {
	r := query.NewRegistry()
	require.NoError(t, r.Register("q", ok))

	err := r.Register("q", ok)
	assert.ErrorContains(t, err, "already registered")
	assert.ErrorContains(t, r.Register("", ok), "name is required")
	assert.ErrorContains(t, r.Register("x", nil), "handler is required")
}

func TestRegistry_MustRegister(t *testing.T) {
	r := query.NewRegistry()
	r.MustRegister("q", ok)
	assert.Panics(t, func() { r.MustRegister("q", ok) })
}

func TestRegistry_ListGetUnregister(t *testing.T) {
	r := query.NewRegistry()
	r.MustRegister("b", ok)
	r.MustRegister("a", ok)

	assert.Equal(t, []string{"a", "b"}, r.List())

	h, found := r.Get("a")
	require.True(t, found)
	v, err := h(context.Background(), "t", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	r.Unregister("a")
	_, found = r.Get("a")
	assert.False(t, found)
}

func fixedState() *query.State {
	return &query.State{
		SessionID: "sess-1",
		Status:    "running",
		Revealed:  1,
		Total:     4,
		Selection: "A",
		Nodes: []graph.Node{
			{ID: "A", Position: geometry.Pos(0, 0)},
			{ID: "B", Position: geometry.Pos(100, 0)},
		},
		Edges: []graph.Edge{{ID: "A_B", Source: "A", Target: "B", Weight: 2}},
		MST:   &query.MSTSummary{TotalWeight: 2, EdgeIDs: []string{"A_B"}, Components: 1},
	}
}

func newExecutor(t *testing.T) *query.Executor {
	t.Helper()
	r := query.NewRegistry()
	require.NoError(t, query.RegisterBuiltins(r, func(_ context.Context, id string) (*query.State, error) {
		switch id {
		case "sess-1":
			return fixedState(), nil
		case "broken":
			return nil, errors.New("loader failed")
		}
		return nil, nil
	}))
	return query.NewExecutor(r)
}

func TestBuiltins(t *testing.T) {
	exec := newExecutor(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		args  any
		want  any
	}{
		{"status", query.QueryStatus, nil, "running"},
		{"progress", query.QueryProgress, nil, 0.25},
		{"selection", query.QuerySelection, nil, "A"},
		{"one node", query.QueryNodes, "B", graph.Node{ID: "B", Position: geometry.Pos(100, 0)}},
		{"one edge", query.QueryEdges, "A_B", graph.Edge{ID: "A_B", Source: "A", Target: "B", Weight: 2}},
		{"mst", query.QueryMST, nil, &query.MSTSummary{TotalWeight: 2, EdgeIDs: []string{"A_B"}, Components: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := exec.Execute(ctx, "sess-1", tt.query, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	all, err := exec.Execute(ctx, "sess-1", query.QueryNodes, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	state, err := exec.Execute(ctx, "sess-1", query.QueryState, nil)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", state.(*query.State).SessionID)

	_, err = exec.Execute(ctx, "sess-1", query.QueryNodes, "Z")
	assert.ErrorContains(t, err, `node "Z" not found`)
	_, err = exec.Execute(ctx, "sess-1", query.QueryEdges, "Z_A")
	assert.ErrorContains(t, err, `edge "Z_A" not found`)
}

func TestExecute_Errors(t *testing.T) {
	exec := newExecutor(t)
	ctx := context.Background()

	_, err := exec.Execute(ctx, "", query.QueryStatus, nil)
	assert.ErrorContains(t, err, "target ID is required")

	_, err = exec.Execute(ctx, "sess-1", "", nil)
	assert.ErrorContains(t, err, "query name is required")

	_, err = exec.Execute(ctx, "sess-1", "bogus", nil)
	assert.ErrorIs(t, err, query.ErrQueryNotFound)

	_, err = exec.Execute(ctx, "other", query.QueryStatus, nil)
	assert.ErrorIs(t, err, query.ErrTargetNotFound)

	_, err = exec.Execute(ctx, "broken", query.QueryStatus, nil)
	assert.ErrorContains(t, err, "loader failed")
}

func TestExecuteMultiple(t *testing.T) {
	exec := newExecutor(t)

	results := exec.ExecuteMultiple(context.Background(), "sess-1", map[string]any{
		query.QueryStatus:    nil,
		query.QuerySelection: nil,
		"bogus":              nil,
	})

	require.Len(t, results, 3)
	assert.Equal(t, "bogus", results[0].QueryName)
	assert.NotEmpty(t, results[0].Error)
	assert.Equal(t, query.QuerySelection, results[1].QueryName)
	assert.Equal(t, "A", results[1].Value)
	assert.Equal(t, query.QueryStatus, results[2].QueryName)
	assert.Equal(t, "running", results[2].Value)
}

func TestState_Progress(t *testing.T) {
	assert.Equal(t, 0.0, (&query.State{Status: "idle"}).Progress())
	assert.Equal(t, 1.0, (&query.State{Status: "finished"}).Progress())
	assert.Equal(t, 0.5, (&query.State{Revealed: 1, Total: 2}).Progress())
}

func TestRegisterBuiltins_Twice(t *testing.T) {
	r := query.NewRegistry()
	loader := func(context.Context, string) (*query.State, error) { return nil, nil }
	require.NoError(t, query.RegisterBuiltins(r, loader))
	assert.ErrorContains(t, query.RegisterBuiltins(r, loader), "already registered")
	assert.Len(t, r.List(), 7)
}
