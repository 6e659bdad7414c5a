package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func setupMetricsTest(t *testing.T) *sdkmetric.ManualReader {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	original := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	t.Cleanup(func() {
		otel.SetMeterProvider(original)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("meter provider shutdown: %v", err)
		}
	})
	return reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return &rm
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func sumFor(t *testing.T, rm *metricdata.ResourceMetrics, name, key, value string) int64 {
	t.Helper()
	m := findMetric(rm, name)
	require.NotNil(t, m, name)

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected Sum[int64] for %s", name)

	var total int64
	for _, dp := range sum.DataPoints {
		if key == "" {
			total += dp.Value
			continue
		}
		if v, ok := dp.Attributes.Value(attributeKey(key)); ok && v.AsString() == value {
			total += dp.Value
		}
	}
	return total
}

func TestNewMetricsRecorder(t *testing.T) {
	setupMetricsTest(t)

	rec := NewMetricsRecorder()
	require.NotNil(t, rec)
	_, isNoop := rec.(NoopMetrics)
	assert.False(t, isNoop)
}

func TestRecordCommand(t *testing.T) {
	reader := setupMetricsTest(t)
	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordCommand(ctx, "tap_node", nil)
	m.RecordCommand(ctx, "tap_node", errors.New("duplicate"))
	m.RecordCommand(ctx, "start_mst", nil)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(2), sumFor(t, rm, "mstgraph.commands", "command", "tap_node"))
	assert.Equal(t, int64(1), sumFor(t, rm, "mstgraph.command.errors", "command", "tap_node"))
	assert.Equal(t, int64(3), sumFor(t, rm, "mstgraph.commands", "", ""))
}

func TestRecordSolve(t *testing.T) {
	reader := setupMetricsTest(t)
	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordSolve(context.Background(), 2, 4, 1, 3*time.Millisecond)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(1), sumFor(t, rm, "mstgraph.mst.solves", "", ""))

	latency := findMetric(rm, "mstgraph.mst.latency_ms")
	require.NotNil(t, latency)
	hist, ok := latency.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.NotEmpty(t, hist.DataPoints)

	weight := findMetric(rm, "mstgraph.mst.total_weight")
	require.NotNil(t, weight)
	wh, ok := weight.Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, wh.DataPoints, 1)
	assert.Equal(t, int64(4), wh.DataPoints[0].Sum)
}

func TestRecordRevealAndAnimation(t *testing.T) {
	reader := setupMetricsTest(t)
	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordReveal(ctx)
	m.RecordReveal(ctx)
	m.RecordAnimation(ctx, "running")
	m.RecordAnimation(ctx, "finished")

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(2), sumFor(t, rm, "mstgraph.animation.reveals", "", ""))
	assert.Equal(t, int64(1), sumFor(t, rm, "mstgraph.animation.transitions", "status", "finished"))
}

func TestRecordJournal(t *testing.T) {
	reader := setupMetricsTest(t)
	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordJournal(ctx, 2048, nil)
	m.RecordJournal(ctx, 0, errors.New("closed"))

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(1), sumFor(t, rm, "mstgraph.journal.errors", "", ""))

	size := findMetric(rm, "mstgraph.journal.size_bytes")
	require.NotNil(t, size)
	hist, ok := size.Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
}
