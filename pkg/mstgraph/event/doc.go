// Package event carries the editor's output signals.
//
// Every signal is a BaseEvent[T] with a typed payload, a UUID, and a
// correlation ID equal to the editor session ID, so all signals of one
// session can be grouped:
//
//	evt := event.New(event.TypeEdgeCreated, event.SourceSelection,
//	    event.EdgeCreated{Edge: e},
//	    event.WithCorrelationID(sessionID))
//
// Signals leave the editor through a Publisher. LocalBus is the in-process
// pub/sub implementation: each subscription has its own buffered channel and
// goroutine, so delivery is FIFO per subscriber.
//
//	bus := event.NewBus(event.BusConfig{BufferSize: 64})
//	defer bus.Close()
//
//	bus.Subscribe([]string{event.TypeEdgeRevealed}, event.HandlerFunc(
//	    func(ctx context.Context, evt event.Event) error {
//	        fmt.Println(evt.Data())
//	        return nil
//	    }))
//
// Recorder is a synchronous Publisher that keeps every event in memory.
// It is useful in tests and for replaying a session.
package event
