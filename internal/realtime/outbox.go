package realtime

import "sync"

// Outbox buffers the latest message per kind for one connection. Offer never
// blocks; a newer message replaces an unsent one of the same kind, so a slow
// writer only ever sends the most recent state.
type Outbox[T any] struct {
	mu      sync.Mutex
	pending map[string]T
	order   []string
	ready   chan struct{}
}

// NewOutbox creates an empty outbox
func NewOutbox[T any]() *Outbox[T] {
	return &Outbox[T]{
		pending: make(map[string]T),
		ready:   make(chan struct{}, 1),
	}
}

// Offer stores msg as the latest message of kind and signals Ready
func (o *Outbox[T]) Offer(kind string, msg T) {
	o.mu.Lock()
	if _, queued := o.pending[kind]; !queued {
		o.order = append(o.order, kind)
	}
	o.pending[kind] = msg
	o.mu.Unlock()

	select {
	case o.ready <- struct{}{}:
	default:
	}
}

// Ready receives a value whenever messages are waiting
func (o *Outbox[T]) Ready() <-chan struct{} {
	return o.ready
}

// Drain returns waiting messages in first-offered order and empties the outbox
func (o *Outbox[T]) Drain() []T {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]T, 0, len(o.order))
	for _, kind := range o.order {
		out = append(out, o.pending[kind])
	}
	o.order = o.order[:0]
	clear(o.pending)
	return out
}
