/*
Package mstgraph is an interactive minimum-spanning-tree editor core.

A user places nodes on a canvas, connects them with edges weighted by their
on-screen distance, and asks for the MST, which is then revealed one edge at
a time with pause, resume and cancel controls. Rendering is out of scope:
the Editor consumes input commands and emits output signals through an
event.Publisher for a renderer to observe.

# Basic Usage

	rec := event.NewRecorder()
	ed, err := mstgraph.New(mstgraph.WithPublisher(rec))
	if err != nil {
	    log.Fatal(err)
	}
	defer ed.Close()

	ctx := context.Background()
	_ = ed.TapCanvas(ctx, geometry.Pos(100, 300)) // creates C
	_ = ed.TapNode(ctx, "A")                      // arms A
	_ = ed.TapNode(ctx, "C")                      // creates edge A_C

	result, err := ed.StartMST(ctx)
	fmt.Println(result.TotalWeight, result.EdgeIDs())

# Components

  - graph: node and edge store with the distance-derived weight rule
  - selection: the tap-driven edge creation state machine
  - mst: Kruskal's algorithm over unionfind
  - animation: the timed reveal scheduler
  - event: typed output signals and an in-process bus
  - query: read-only inspection of a session
  - journal: optional history of solves in memory or SQLite

# Playback Gating

While the animation is running or paused, TapNode and TapCanvas fail with
ErrPlaybackActive. Dragging with MoveNode remains allowed and re-weights
incident edges; the sequence already playing is not re-solved.

# Observability

Logging uses log/slog; metrics and traces use OpenTelemetry:

	ed, err := mstgraph.New(
	    mstgraph.WithLogger(logger),
	    mstgraph.WithMetrics(observability.NewMetricsRecorder()),
	    mstgraph.WithSpanManager(observability.NewSpanManager()),
	)
*/
package mstgraph
