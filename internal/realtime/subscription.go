package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/logger"
)

// Subscription is a live snapshot stream for one campaign topic.
// It owns one goroutine; its callback is never invoked concurrently with itself.
type Subscription struct {
	ID         string
	CampaignID string
	Topic      Topic

	hub      *Hub
	signal   chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	exited   chan struct{}
	deliver  func(context.Context) error
}

// Unsubscribe stops further callbacks and waits for the subscription goroutine
// to exit. It must not be called from inside the subscription's own callback.
func (s *Subscription) Unsubscribe() {
	s.signalStop()
	<-s.exited
}

// Done is closed once the subscription has stopped for any reason
func (s *Subscription) Done() <-chan struct{} {
	return s.exited
}

func (s *Subscription) signalStop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// wake never blocks; one pending signal is enough to load the latest state.
func (s *Subscription) wake() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *Subscription) run(ctx context.Context, cancelled <-chan struct{}) {
	defer s.hub.wg.Done()
	defer close(s.exited)
	defer s.hub.remove(s)

	log := logger.FromContext(ctx).With("campaign_id", s.CampaignID, "topic", s.Topic.String(), "subscription_id", s.ID)
	defer log.Debug(LogMsgUnsubscribed)

	for {
		select {
		case <-s.stop:
			return
		case <-cancelled:
			return
		case <-s.signal:
		}

		// a stop that raced with the signal wins
		select {
		case <-s.stop:
			return
		default:
		}

		if err := s.deliver(ctx); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				log.Info(LogMsgCampaignGone)
				return
			}
			log.Warn(LogMsgSnapshotFailed, "error", err)
			time.AfterFunc(SnapshotRetryDelay, s.wake)
		}
	}
}
