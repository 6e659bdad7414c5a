package event_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/animation"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/event"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/graph"
)

func TestNew_Defaults(t *testing.T) {
	evt := event.New(event.TypeEdgeRevealed, event.SourceAnimation, event.EdgeRevealed{EdgeID: "A_B", Index: 0})

	assert.NotEmpty(t, evt.ID())
	assert.Equal(t, event.TypeEdgeRevealed, evt.Type())
	assert.Equal(t, event.SourceAnimation, evt.Source())
	assert.Equal(t, evt.ID(), evt.CorrelationID(), "root event starts its own chain")
	assert.Empty(t, evt.CausationID())
	assert.Equal(t, 1, evt.Version())
	assert.False(t, evt.Timestamp().IsZero())
	assert.Equal(t, "A_B", evt.TypedData().EdgeID)
}

func TestNew_Options(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	evt := event.New(event.TypeGraphCleared, event.SourceEditor, event.GraphCleared{},
		event.WithEventID("evt-1"),
		event.WithCorrelationID("session-1"),
		event.WithCausationID("cause-1"),
		event.WithTimestamp(ts),
		event.WithSchemaVersion(3),
	)

	assert.Equal(t, "evt-1", evt.ID())
	assert.Equal(t, "session-1", evt.CorrelationID())
	assert.Equal(t, "cause-1", evt.CausationID())
	assert.True(t, evt.Timestamp().Equal(ts))
	assert.Equal(t, 3, evt.Version())
}

func TestNewFromParent(t *testing.T) {
	parent := event.New(event.TypeMSTSolved, event.SourceSolver, event.MSTSolved{}, event.WithCorrelationID("session-1"))
	child := event.NewFromParent(parent, event.TypeStatusChanged, event.SourceAnimation,
		event.StatusChanged{Status: animation.Running})

	assert.Equal(t, "session-1", child.CorrelationID())
	assert.Equal(t, parent.ID(), child.CausationID())
}

func TestBaseEvent_JSON(t *testing.T) {
	evt := event.New(event.TypeEdgeCreated, event.SourceSelection,
		event.EdgeCreated{Edge: graph.Edge{ID: "A_B", Source: "A", Target: "B", Weight: 4}})

	var payload map[string]any
	require.NoError(t, json.Unmarshal(evt.DataBytes(), &payload))
	edge := payload["edge"].(map[string]any)
	assert.Equal(t, "A_B", edge["id"])

	raw, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded event.BaseEvent[event.EdgeCreated]
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, evt.ID(), decoded.ID())
	assert.Equal(t, int64(4), decoded.TypedData().Edge.Weight)
}

func TestStatusChanged_JSONUsesName(t *testing.T) {
	evt := event.New(event.TypeStatusChanged, event.SourceAnimation, event.StatusChanged{Status: animation.Paused})
	assert.JSONEq(t, `{"status":"paused"}`, string(evt.DataBytes()))
}

func TestTypedHandler(t *testing.T) {
	var got event.EdgeRevealed
	h := event.TypedHandler(func(_ context.Context, p event.EdgeRevealed, meta event.Metadata) error {
		got = p
		assert.Equal(t, event.TypeEdgeRevealed, meta.EventType)
		return nil
	})

	require.NoError(t, h.Handle(context.Background(),
		event.New(event.TypeEdgeRevealed, event.SourceAnimation, event.EdgeRevealed{EdgeID: "B_C", Index: 1})))
	assert.Equal(t, "B_C", got.EdgeID)

	err := h.Handle(context.Background(), event.New(event.TypeMSTFinished, event.SourceAnimation, event.MSTFinished{}))
	var evtErr *event.EventError
	require.True(t, errors.As(err, &evtErr))
	assert.Contains(t, err.Error(), "unexpected payload type")
}

func TestRecorder(t *testing.T) {
	r := event.NewRecorder()
	ctx := context.Background()

	require.NoError(t, r.Publish(ctx, event.New(event.TypeNodeCreated, event.SourceSelection, event.NodeCreated{Node: graph.Node{ID: "C"}})))
	require.NoError(t, r.Publish(ctx, event.New(event.TypeSelectionChanged, event.SourceSelection, event.SelectionChanged{NodeID: "C"})))

	assert.Equal(t, []string{event.TypeNodeCreated, event.TypeSelectionChanged}, r.Types())
	assert.Len(t, r.OfType(event.TypeNodeCreated), 1)

	nodes := event.Payloads[event.NodeCreated](r)
	require.Len(t, nodes, 1)
	assert.Equal(t, "C", nodes[0].Node.ID)

	r.Reset()
	assert.Empty(t, r.Events())
}

func TestTypes_Unique(t *testing.T) {
	seen := map[string]bool{}
	for _, typ := range event.Types() {
		assert.False(t, seen[typ], typ)
		seen[typ] = true
	}
	assert.Len(t, seen, 9)
}
