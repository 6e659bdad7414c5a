package mstgraph

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/animation"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/event"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/geometry"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/graph"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/journal"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/mst"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/observability"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/query"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/selection"
)

// Editor coordinates the graph store, the selection state machine and the
// animation scheduler for one session. All commands are serialized; it is
// safe to call from multiple goroutines.
type Editor struct {
	mu sync.Mutex

	sessionID string
	scale     float64

	store     *graph.Store
	selection *selection.Controller
	scheduler *animation.Scheduler
	listener  *playbackListener

	publisher event.Publisher
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
	journal   *journal.Writer

	registry *query.Registry
	queries  *query.Executor

	last *mst.Result
}

// New creates an editor holding only the seed nodes.
func New(opts ...Option) (*Editor, error) {
	cfg := defaultEditorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sessionID == "" {
		cfg.sessionID = uuid.NewString()
	}

	store, err := graph.NewStore(graph.WithScale(cfg.scale), graph.WithSeeds(cfg.seeds))
	if err != nil {
		return nil, err
	}

	e := &Editor{
		sessionID: cfg.sessionID,
		scale:     store.Scale(),
		store:     store,
		selection: selection.NewController(store),
		publisher: cfg.publisher,
		logger:    observability.EnrichLogger(cfg.logger, cfg.sessionID),
		metrics:   cfg.metrics,
		spans:     cfg.spans,
	}
	if cfg.journal != nil {
		e.journal = journal.NewWriter(cfg.journal, cfg.sessionID)
	}

	e.listener = &playbackListener{editor: e}
	e.scheduler = animation.New(
		animation.WithClock(cfg.clock),
		animation.WithInterval(cfg.interval),
		animation.WithListener(e.listener),
	)

	e.registry = query.NewRegistry()
	if err := query.RegisterBuiltins(e.registry, e.loadState); err != nil {
		return nil, err
	}
	e.queries = query.NewExecutor(e.registry)

	return e, nil
}

// SessionID returns the session id.
func (e *Editor) SessionID() string {
	return e.sessionID
}

// Scale returns the distance per weight unit.
func (e *Editor) Scale() float64 {
	return e.scale
}

// Close stops any playback. It does not close the journal store.
func (e *Editor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scheduler.Cancel()
	return nil
}

// command runs fn under the editor lock with a span, a log line and a
// metric. Failures are logged at warn.
func (e *Editor) command(ctx context.Context, name string, attrs []slog.Attr, fn func(ctx context.Context) error) error {
	if ctx == nil {
		return ErrNilContext
	}

	ctx, span := e.spans.StartCommandSpan(ctx, name, e.sessionID)
	observability.LogCommand(e.logger, name, attrs...)

	err := func() error {
		e.mu.Lock()
		defer e.mu.Unlock()
		return fn(ctx)
	}()

	e.metrics.RecordCommand(ctx, name, err)
	e.spans.EndSpanWithError(span, err)
	if err != nil {
		observability.LogMutationError(e.logger, name, err)
	}
	return err
}

// gateLocked rejects graph edits during playback.
func (e *Editor) gateLocked() error {
	if e.scheduler.Status().Active() {
		return ErrPlaybackActive
	}
	return nil
}

// TapNode feeds a tap on node id to the selection state machine.
func (e *Editor) TapNode(ctx context.Context, id string) error {
	return e.command(ctx, "tap_node", []slog.Attr{slog.String("node_id", id)}, func(ctx context.Context) error {
		if err := e.gateLocked(); err != nil {
			return err
		}
		out, err := e.selection.TapNode(id)
		e.emitOutcome(ctx, out)
		return err
	})
}

// TapCanvas feeds a tap on empty canvas at pos to the selection state
// machine.
func (e *Editor) TapCanvas(ctx context.Context, pos geometry.Position) error {
	attrs := []slog.Attr{slog.Float64("x", pos.X), slog.Float64("y", pos.Y)}
	return e.command(ctx, "tap_canvas", attrs, func(ctx context.Context) error {
		if err := e.gateLocked(); err != nil {
			return err
		}
		out, err := e.selection.TapCanvas(pos)
		e.emitOutcome(ctx, out)
		return err
	})
}

func (e *Editor) emitOutcome(ctx context.Context, out selection.Outcome) {
	if out.CreatedNode != nil {
		e.emit(ctx, event.New(event.TypeNodeCreated, event.SourceSelection,
			event.NodeCreated{Node: *out.CreatedNode}, e.correlate()))
	}
	if out.CreatedEdge != nil {
		e.emit(ctx, event.New(event.TypeEdgeCreated, event.SourceSelection,
			event.EdgeCreated{Edge: *out.CreatedEdge}, e.correlate()))
	}
	if out.SelectionChanged {
		e.emitSelection(ctx, out.Selected)
	}
}

func (e *Editor) emitSelection(ctx context.Context, nodeID string) {
	e.emit(ctx, event.New(event.TypeSelectionChanged, event.SourceSelection,
		event.SelectionChanged{NodeID: nodeID}, e.correlate()))
}

// MoveNode repositions a node and re-weights its incident edges. It is
// allowed during playback; the playing sequence is not re-solved.
func (e *Editor) MoveNode(ctx context.Context, id string, pos geometry.Position) error {
	attrs := []slog.Attr{slog.String("node_id", id), slog.Float64("x", pos.X), slog.Float64("y", pos.Y)}
	return e.command(ctx, "move_node", attrs, func(ctx context.Context) error {
		previous := make(map[string]int64)
		for _, edge := range e.store.Edges() {
			if edge.Touches(id) {
				previous[edge.ID] = edge.Weight
			}
		}

		touched, err := e.store.MoveNode(id, pos)
		if err != nil {
			return err
		}
		for _, edge := range touched {
			if edge.Weight == previous[edge.ID] {
				continue
			}
			e.emit(ctx, event.New(event.TypeEdgeWeightUpdated, event.SourceEditor,
				event.EdgeWeightUpdated{EdgeID: edge.ID, Weight: edge.Weight, Previous: previous[edge.ID]},
				e.correlate()))
		}
		return nil
	})
}

// StartMST solves the current graph and starts revealing the result. Any
// playback in progress is discarded and an armed selection is cleared.
// A disconnected graph yields a spanning forest.
func (e *Editor) StartMST(ctx context.Context) (mst.Result, error) {
	var result mst.Result
	err := e.command(ctx, "start_mst", nil, func(ctx context.Context) error {
		if e.selection.Reset() {
			e.emitSelection(ctx, "")
		}

		result = e.solveLocked(ctx)
		e.last = &result

		e.emit(ctx, event.New(event.TypeMSTSolved, event.SourceSolver, event.MSTSolved{
			TotalWeight: result.TotalWeight,
			EdgeIDs:     result.EdgeIDs(),
			Components:  result.Components,
		}, e.correlate()))

		e.record(ctx, result)

		sequence := result.EdgeIDs()
		e.listener.total.Store(int64(len(sequence)))
		e.scheduler.Start(sequence)
		return nil
	})
	return result, err
}

func (e *Editor) solveLocked(ctx context.Context) mst.Result {
	nodes := e.store.Nodes()
	edges := e.store.Edges()

	ctx, span := e.spans.StartSolveSpan(ctx, len(nodes), len(edges))
	defer e.spans.EndSpanWithError(span, nil)

	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}

	start := time.Now()
	result := mst.Solve(edges, mst.WithNodes(ids...))
	duration := time.Since(start)

	e.spans.AddSpanEvent(ctx, "mst.solved",
		attribute.Int64("mst.total_weight", result.TotalWeight),
		attribute.Int("mst.edges", len(result.Edges)),
		attribute.Int("mst.components", result.Components),
	)
	observability.LogSolve(e.logger, result.TotalWeight, len(result.Edges), result.Components,
		float64(duration.Microseconds())/1000)
	e.metrics.RecordSolve(ctx, len(result.Edges), result.TotalWeight, result.Components, duration)
	return result
}

// record appends the solve to the journal. Failures are logged, not returned.
func (e *Editor) record(ctx context.Context, result mst.Result) {
	if e.journal == nil {
		return
	}
	key, size, err := e.journal.Append(ctx, journal.Snapshot{
		Scale:       e.scale,
		Nodes:       e.store.Nodes(),
		Edges:       e.store.Edges(),
		TotalWeight: result.TotalWeight,
		Components:  result.Components,
		Sequence:    result.EdgeIDs(),
	})
	e.metrics.RecordJournal(ctx, int64(size), err)
	if err != nil {
		observability.LogJournalError(e.logger, "save", key, err)
		return
	}
	observability.LogJournalSaved(e.logger, key, size)
}

// Pause suspends revealing. It reports false when nothing was running.
func (e *Editor) Pause(ctx context.Context) bool {
	var changed bool
	_ = e.command(ctx, "pause", nil, func(context.Context) error {
		changed = e.scheduler.Pause()
		return nil
	})
	return changed
}

// Resume continues a paused playback. It reports false when nothing was
// paused.
func (e *Editor) Resume(ctx context.Context) bool {
	var changed bool
	_ = e.command(ctx, "resume", nil, func(context.Context) error {
		changed = e.scheduler.Resume()
		return nil
	})
	return changed
}

// Cancel discards playback and returns the animation to idle. It reports
// false when the animation was already idle.
func (e *Editor) Cancel(ctx context.Context) bool {
	var changed bool
	_ = e.command(ctx, "cancel", nil, func(context.Context) error {
		changed = e.scheduler.Cancel()
		return nil
	})
	return changed
}

// ClearGraph cancels playback, drops the selection and restores the seed
// graph.
func (e *Editor) ClearGraph(ctx context.Context) error {
	return e.command(ctx, "clear_graph", nil, func(ctx context.Context) error {
		e.scheduler.Cancel()
		if e.selection.Reset() {
			e.emitSelection(ctx, "")
		}
		e.store.Reset()
		e.last = nil

		e.emit(ctx, event.New(event.TypeGraphCleared, event.SourceEditor,
			event.GraphCleared{Nodes: e.store.Nodes()}, e.correlate()))
		return nil
	})
}

// Nodes returns all nodes in insertion order.
func (e *Editor) Nodes() []graph.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Nodes()
}

// Edges returns all edges in insertion order.
func (e *Editor) Edges() []graph.Edge {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Edges()
}

// Selection returns the armed node id, or "" when none.
func (e *Editor) Selection() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection.Pending()
}

// Animation returns the playback state.
func (e *Editor) Animation() animation.State {
	return e.scheduler.State()
}

// LastResult returns the most recent solve since the last clear.
func (e *Editor) LastResult() (mst.Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return mst.Result{}, false
	}
	return *e.last, true
}

// Snapshot returns a consistent read-only view of the session.
func (e *Editor) Snapshot() *query.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	anim := e.scheduler.State()
	state := &query.State{
		SessionID: e.sessionID,
		Status:    anim.Status.String(),
		Revealed:  anim.Revealed,
		Total:     len(anim.Sequence),
		Selection: e.selection.Pending(),
		Nodes:     e.store.Nodes(),
		Edges:     e.store.Edges(),
	}
	if e.last != nil {
		state.MST = &query.MSTSummary{
			TotalWeight: e.last.TotalWeight,
			EdgeIDs:     e.last.EdgeIDs(),
			Components:  e.last.Components,
		}
	}
	return state
}

func (e *Editor) correlate() event.Option {
	return event.WithCorrelationID(e.sessionID)
}

// emit publishes evt. Publish failures are logged and otherwise ignored.
func (e *Editor) emit(ctx context.Context, evt event.Event) {
	if err := e.publisher.Publish(ctx, evt); err != nil {
		e.logger.Warn("publish failed",
			slog.String("event_type", evt.Type()),
			slog.String("error", err.Error()),
		)
	}
}

// playbackListener turns scheduler callbacks into output signals. It runs
// under the scheduler lock and never touches the editor lock.
type playbackListener struct {
	editor *Editor
	total  atomic.Int64
}

func (l *playbackListener) EdgeRevealed(edgeID string, index int) {
	e := l.editor
	ctx := context.Background()
	observability.LogReveal(e.logger, edgeID, index, int(l.total.Load()))
	e.metrics.RecordReveal(ctx)
	e.emit(ctx, event.New(event.TypeEdgeRevealed, event.SourceAnimation,
		event.EdgeRevealed{EdgeID: edgeID, Index: index}, e.correlate()))
}

func (l *playbackListener) Finished(sequence []string) {
	e := l.editor
	e.emit(context.Background(), event.New(event.TypeMSTFinished, event.SourceAnimation,
		event.MSTFinished{Sequence: sequence}, e.correlate()))
}

func (l *playbackListener) StatusChanged(status animation.Status) {
	e := l.editor
	ctx := context.Background()
	observability.LogAnimationStatus(e.logger, status.String())
	e.metrics.RecordAnimation(ctx, status.String())
	e.emit(ctx, event.New(event.TypeStatusChanged, event.SourceAnimation,
		event.StatusChanged{Status: status}, e.correlate()))
}
