// Package eventtest provides an event.Publisher that records what it is given.
package eventtest

import (
	"context"
	"sync"

	"github.com/osse101/LootVault_Go/internal/event"
)

// Recorder is a thread-safe event.Publisher for tests
type Recorder struct {
	mu     sync.Mutex
	events []event.Event
}

// Publish records the event
func (r *Recorder) Publish(_ context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

// Events returns a copy of everything published so far
func (r *Recorder) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the published event types in order
func (r *Recorder) Types() []event.Type {
	events := r.Events()
	out := make([]event.Type, 0, len(events))
	for _, evt := range events {
		out = append(out, evt.Type)
	}
	return out
}

// Reset forgets recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
