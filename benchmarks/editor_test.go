package benchmarks

import (
	"context"
	"testing"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/animation"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/event"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/geometry"
)

// BenchmarkEditor_TapCanvas measures a canvas tap with no armed node.
func BenchmarkEditor_TapCanvas(b *testing.B) {
	ctx := context.Background()
	ed, err := mstgraph.New(mstgraph.WithClock(animation.NewManualClock()))
	if err != nil {
		b.Fatal(err)
	}
	defer ed.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%500 == 0 {
			_ = ed.ClearGraph(ctx)
		}
		_ = ed.TapCanvas(ctx, geometry.Pos(float64(i%800), float64(i%600)))
	}
}

// BenchmarkEditor_StartMST measures solve plus playback of a 20-node ring.
func BenchmarkEditor_StartMST(b *testing.B) {
	ctx := context.Background()
	clock := animation.NewManualClock()
	ed, err := mstgraph.New(
		mstgraph.WithClock(clock),
		mstgraph.WithPublisher(event.Discard),
	)
	if err != nil {
		b.Fatal(err)
	}
	defer ed.Close()

	prev := "B"
	for i := 0; i < 18; i++ {
		_ = ed.TapNode(ctx, prev)
		_ = ed.TapCanvas(ctx, geometry.Pos(float64(i*40), float64((i%3)*60)))
		nodes := ed.Nodes()
		prev = nodes[len(nodes)-1].ID
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ed.StartMST(ctx)
		for clock.Tick() {
		}
	}
}
