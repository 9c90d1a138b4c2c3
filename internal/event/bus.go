package event

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/osse101/LootVault_Go/internal/logger"
)

// Handler reacts to one event
type Handler func(ctx context.Context, evt Event) error

// Publisher is the write side of a Bus
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Bus fans events out to the handlers subscribed to their Type
type Bus interface {
	Publisher
	Subscribe(t Type, h Handler)
}

// PublishAll publishes events in order. A failure is logged and the rest
// still go out, since the change they describe is already committed.
func PublishAll(ctx context.Context, pub Publisher, events ...Event) {
	if pub == nil {
		return
	}
	for _, evt := range events {
		if err := pub.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
		}
	}
}

// MemoryBus delivers events synchronously on the publishing goroutine.
// Handlers that block should hand work off to their own goroutine.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewMemoryBus returns an empty bus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[Type][]Handler)}
}

// Publish runs every handler for evt.Type, even after one fails
func (b *MemoryBus) Publish(ctx context.Context, evt Event) error {
	b.mu.RLock()
	hs := b.handlers[evt.Type]
	b.mu.RUnlock()

	var errs []error
	for _, h := range hs {
		if err := h(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf(ErrFmtHandlerErrors, len(errs), evt.Type, errors.Join(errs...))
}

// Subscribe adds h for t. The slice is copied so in-flight publishes keep
// the handler set they started with.
func (b *MemoryBus) Subscribe(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	hs := make([]Handler, len(b.handlers[t]), len(b.handlers[t])+1)
	copy(hs, b.handlers[t])
	b.handlers[t] = append(hs, h)
}
