package event_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/event"
)

func reveal(id string) event.Event {
	return event.New(event.TypeEdgeRevealed, event.SourceAnimation, event.EdgeRevealed{EdgeID: id})
}

func counting(n *atomic.Int32) event.Handler {
	return event.HandlerFunc(func(context.Context, event.Event) error {
		n.Add(1)
		return nil
	})
}

func TestBus_SubscribeByType(t *testing.T) {
	bus := event.NewBus(event.BusConfig{BufferSize: 10})

	var received atomic.Int32
	sub := bus.Subscribe([]string{event.TypeEdgeRevealed}, counting(&received))
	require.NotNil(t, sub)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, reveal("A_B")))
	require.NoError(t, bus.Publish(ctx, event.New(event.TypeMSTFinished, event.SourceAnimation, event.MSTFinished{})))

	require.NoError(t, bus.Close())
	assert.Equal(t, int32(1), received.Load())
}

func TestBus_SubscribeAllFIFO(t *testing.T) {
	bus := event.NewBus(event.BusConfig{BufferSize: 10})

	var mu sync.Mutex
	var order []string
	bus.SubscribeAll(event.TypedHandler(func(_ context.Context, p event.EdgeRevealed, _ event.Metadata) error {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, p.EdgeID)
		return nil
	}))

	for _, id := range []string{"e1", "e2", "e3"} {
		require.NoError(t, bus.Publish(context.Background(), reveal(id)))
	}
	require.NoError(t, bus.Close())

	assert.Equal(t, []string{"e1", "e2", "e3"}, order)
}

func TestBus_FanOut(t *testing.T) {
	bus := event.NewBus(event.DefaultBusConfig)

	var a, b, c atomic.Int32
	bus.Subscribe([]string{event.TypeEdgeRevealed}, counting(&a))
	bus.Subscribe([]string{event.TypeEdgeRevealed}, counting(&b))
	bus.SubscribeAll(counting(&c))

	require.NoError(t, bus.Publish(context.Background(), reveal("A_B")))
	require.NoError(t, bus.Close())

	assert.Equal(t, int32(1), a.Load())
	assert.Equal(t, int32(1), b.Load())
	assert.Equal(t, int32(1), c.Load())
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := event.NewBus(event.BusConfig{BufferSize: 10})
	defer bus.Close()

	var received atomic.Int32
	sub := bus.SubscribeAll(counting(&received))

	require.NoError(t, bus.Publish(context.Background(), reveal("e1")))
	require.Eventually(t, func() bool { return received.Load() == 1 }, time.Second, time.Millisecond)

	sub.Unsubscribe()
	require.NoError(t, bus.Publish(context.Background(), reveal("e2")))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), received.Load())
}

func TestBus_OnError(t *testing.T) {
	var failures atomic.Int32
	bus := event.NewBus(event.BusConfig{
		OnError: func(evt event.Event, subscriberID string, err error) {
			assert.NotEmpty(t, subscriberID)
			failures.Add(1)
		},
	})

	bus.SubscribeAll(event.HandlerFunc(func(context.Context, event.Event) error {
		return errors.New("boom")
	}))
	require.NoError(t, bus.Publish(context.Background(), reveal("e1")))
	require.NoError(t, bus.Close())

	assert.Equal(t, int32(1), failures.Load())
}

func TestBus_NonBlockingDrops(t *testing.T) {
	var dropped atomic.Int32
	release := make(chan struct{})

	bus := event.NewBus(event.BusConfig{
		BufferSize:  1,
		NonBlocking: true,
		OnDrop: func(event.Event, string) {
			dropped.Add(1)
		},
	})

	bus.SubscribeAll(event.HandlerFunc(func(context.Context, event.Event) error {
		<-release
		return nil
	}))

	for i := 0; i < 10; i++ {
		require.NoError(t, bus.Publish(context.Background(), reveal("e")))
	}
	close(release)
	require.NoError(t, bus.Close())

	assert.Positive(t, dropped.Load())
}

func TestBus_Closed(t *testing.T) {
	bus := event.NewBus(event.BusConfig{})
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close(), "close is idempotent")

	err := bus.Publish(context.Background(), reveal("e1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, event.ErrBusClosed))
	assert.Nil(t, bus.SubscribeAll(event.HandlerFunc(func(context.Context, event.Event) error { return nil })))
}
