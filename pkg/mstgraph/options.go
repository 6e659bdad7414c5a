package mstgraph

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/animation"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/config"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/event"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/geometry"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/graph"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/journal"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/observability"
)

// editorConfig holds construction options for an Editor.
type editorConfig struct {
	sessionID string
	logger    *slog.Logger
	publisher event.Publisher
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
	journal   journal.Store
	clock     animation.Clock
	interval  time.Duration
	scale     float64
	seeds     []graph.Seed
}

func defaultEditorConfig() editorConfig {
	return editorConfig{
		logger:    slog.Default(),
		publisher: event.Discard,
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
		clock:     animation.RealClock{},
		interval:  animation.DefaultInterval,
		scale:     geometry.DefaultScale,
		seeds:     graph.DefaultSeeds(),
	}
}

// Option configures an Editor.
type Option func(*editorConfig)

// WithSessionID sets the session id used as the event correlation id and
// journal session.
// Default: a random UUID
func WithSessionID(id string) Option {
	return func(c *editorConfig) {
		c.sessionID = id
	}
}

// WithLogger sets the structured logger.
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(c *editorConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPublisher sets where output signals are delivered.
// Default: event.Discard
//
// The publisher is called while the editor holds internal locks and must
// not call back into the editor.
func WithPublisher(p event.Publisher) Option {
	return func(c *editorConfig) {
		if p != nil {
			c.publisher = p
		}
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *editorConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager sets the tracer used for command and solve spans.
// Default: observability.NoopSpanManager{}
func WithSpanManager(s observability.SpanManager) Option {
	return func(c *editorConfig) {
		if s != nil {
			c.spans = s
		}
	}
}

// WithJournal records every solve to store. The editor does not close it.
// Default: no journal
func WithJournal(store journal.Store) Option {
	return func(c *editorConfig) {
		c.journal = store
	}
}

// WithClock sets the animation tick source.
// Default: animation.RealClock{}
func WithClock(clock animation.Clock) Option {
	return func(c *editorConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithInterval sets the time between revealed MST edges.
// Default: 2s
func WithInterval(d time.Duration) Option {
	return func(c *editorConfig) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithScale sets the distance per weight unit.
// Default: 50
func WithScale(scale float64) Option {
	return func(c *editorConfig) {
		c.scale = scale
	}
}

// WithSeeds sets the nodes the editor starts with and restores on clear.
// Default: A(100,200) and B(300,200)
func WithSeeds(seeds []graph.Seed) Option {
	return func(c *editorConfig) {
		c.seeds = append([]graph.Seed(nil), seeds...)
	}
}

// OptionsFromSettings maps validated settings onto editor options. The
// journal store is opened separately since the caller owns its lifetime.
func OptionsFromSettings(s config.Settings) []Option {
	return []Option{
		WithScale(s.WeightScale),
		WithInterval(s.TickInterval),
		WithSeeds(s.GraphSeeds()),
	}
}
