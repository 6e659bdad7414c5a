package event

import (
	"context"
	"sync"
)

// Recorder is a synchronous Publisher that keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Publish records evt.
func (r *Recorder) Publish(_ context.Context, evt Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

// Events returns every recorded event in publish order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// OfType returns recorded events of the given type.
func (r *Recorder) OfType(eventType string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Event
	for _, evt := range r.events {
		if evt.Type() == eventType {
			out = append(out, evt)
		}
	}
	return out
}

// Types returns the type of every recorded event in publish order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]string, len(r.events))
	for i, evt := range r.events {
		types[i] = evt.Type()
	}
	return types
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Payloads returns the typed payloads of recorded events with payload type T.
func Payloads[T any](r *Recorder) []T {
	var out []T
	for _, evt := range r.Events() {
		if p, ok := evt.Data().(T); ok {
			out = append(out, p)
		}
	}
	return out
}
