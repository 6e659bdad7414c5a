package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records editor metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCommand records an input command and whether it failed.
	RecordCommand(ctx context.Context, command string, err error)

	// RecordSolve records an MST solve.
	RecordSolve(ctx context.Context, edges int, totalWeight int64, components int, duration time.Duration)

	// RecordReveal records one revealed edge.
	RecordReveal(ctx context.Context)

	// RecordAnimation records an animation status transition.
	RecordAnimation(ctx context.Context, status string)

	// RecordJournal records a journal write.
	RecordJournal(ctx context.Context, sizeBytes int64, err error)
}

type otelMetrics struct {
	commands      metric.Int64Counter
	commandErrors metric.Int64Counter
	solves        metric.Int64Counter
	solveLatency  metric.Float64Histogram
	mstWeight     metric.Int64Histogram
	reveals       metric.Int64Counter
	transitions   metric.Int64Counter
	journalSize   metric.Int64Histogram
	journalErrors metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("mstgraph")
	m := &otelMetrics{}
	var err error

	if m.commands, err = meter.Int64Counter("mstgraph.commands",
		metric.WithDescription("Number of editor commands"),
	); err != nil {
		return nil, err
	}
	if m.commandErrors, err = meter.Int64Counter("mstgraph.command.errors",
		metric.WithDescription("Number of rejected editor commands"),
	); err != nil {
		return nil, err
	}
	if m.solves, err = meter.Int64Counter("mstgraph.mst.solves",
		metric.WithDescription("Number of MST solves"),
	); err != nil {
		return nil, err
	}
	if m.solveLatency, err = meter.Float64Histogram("mstgraph.mst.latency_ms",
		metric.WithDescription("MST solve latency in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	if m.mstWeight, err = meter.Int64Histogram("mstgraph.mst.total_weight",
		metric.WithDescription("Total weight of solved spanning forests"),
	); err != nil {
		return nil, err
	}
	if m.reveals, err = meter.Int64Counter("mstgraph.animation.reveals",
		metric.WithDescription("Number of revealed MST edges"),
	); err != nil {
		return nil, err
	}
	if m.transitions, err = meter.Int64Counter("mstgraph.animation.transitions",
		metric.WithDescription("Number of animation status transitions"),
	); err != nil {
		return nil, err
	}
	if m.journalSize, err = meter.Int64Histogram("mstgraph.journal.size_bytes",
		metric.WithDescription("Journal snapshot size in bytes"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}
	if m.journalErrors, err = meter.Int64Counter("mstgraph.journal.errors",
		metric.WithDescription("Number of failed journal writes"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global OTel
// meter provider. If instrument creation fails it returns NoopMetrics{}.
//
// Configure the provider first:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

func (m *otelMetrics) RecordCommand(ctx context.Context, command string, err error) {
	attrs := metric.WithAttributes(attribute.String("command", command))
	m.commands.Add(ctx, 1, attrs)
	if err != nil {
		m.commandErrors.Add(ctx, 1, attrs)
	}
}

func (m *otelMetrics) RecordSolve(ctx context.Context, edges int, totalWeight int64, components int, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.Bool("spanning", components <= 1))
	m.solves.Add(ctx, 1, attrs)
	m.solveLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	m.mstWeight.Record(ctx, totalWeight, attrs,
		metric.WithAttributes(attribute.Int("edges", edges)))
}

func (m *otelMetrics) RecordReveal(ctx context.Context) {
	m.reveals.Add(ctx, 1)
}

func (m *otelMetrics) RecordAnimation(ctx context.Context, status string) {
	m.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

func (m *otelMetrics) RecordJournal(ctx context.Context, sizeBytes int64, err error) {
	if err != nil {
		m.journalErrors.Add(ctx, 1)
		return
	}
	m.journalSize.Record(ctx, sizeBytes)
}
