// Package realtime pushes campaign and inventory snapshots to subscribers
// whenever the underlying records change.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/event"
	"github.com/osse101/LootVault_Go/internal/logger"
)

// ErrHubClosed is returned when subscribing to a stopped hub
var ErrHubClosed = errors.New("realtime hub closed")

// SnapshotSource loads the current state of a campaign
type SnapshotSource interface {
	GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error)
	ListInventories(ctx context.Context, campaignID string) ([]domain.Inventory, error)
}

// Topic selects which snapshot a subscription receives
type Topic int

const (
	TopicCampaign Topic = iota
	TopicInventories
)

func (t Topic) String() string {
	if t == TopicInventories {
		return "inventories"
	}
	return "campaign"
}

// Hub tracks subscriptions per campaign. A change notice wakes every matching
// subscription; each one reloads the latest snapshot and hands it to its callback.
// Notices coalesce, so a slow subscriber skips intermediate states but always
// ends on the latest one.
type Hub struct {
	source SnapshotSource

	mu     sync.Mutex
	subs   map[string]map[string]*Subscription
	gen    map[string]uint64
	closed bool

	loads singleflight.Group
	wg    sync.WaitGroup
}

// NewHub creates a hub reading snapshots from source
func NewHub(source SnapshotSource) *Hub {
	return &Hub{
		source: source,
		subs:   make(map[string]map[string]*Subscription),
		gen:    make(map[string]uint64),
	}
}

// Attach routes change events from bus into the hub
func (h *Hub) Attach(bus event.Bus) {
	bus.Subscribe(event.CampaignUpdated, h.handleChange(TopicCampaign))
	bus.Subscribe(event.InventoriesUpdated, h.handleChange(TopicInventories))
	bus.Subscribe(event.CampaignDeleted, h.handleDeleted)
}

func (h *Hub) handleChange(topic Topic) event.Handler {
	return func(_ context.Context, evt event.Event) error {
		payload, err := event.DecodePayload[event.ChangePayloadV1](evt.Payload)
		if err != nil {
			return fmt.Errorf("decode change payload: %w", err)
		}
		h.Notify(payload.CampaignID, topic)
		return nil
	}
}

func (h *Hub) handleDeleted(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.CampaignLifecyclePayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("decode lifecycle payload: %w", err)
	}
	h.Notify(payload.CampaignID, TopicCampaign)
	h.Notify(payload.CampaignID, TopicInventories)
	return nil
}

// SubscribeCampaign calls onChange with the campaign snapshot now and after every change.
// The subscription ends on Unsubscribe, when ctx is done, or when the campaign is deleted.
func (h *Hub) SubscribeCampaign(ctx context.Context, campaignID string, onChange func(domain.Campaign)) (*Subscription, error) {
	return h.subscribe(ctx, campaignID, TopicCampaign, func(ctx context.Context) error {
		c, err := h.loadCampaign(ctx, campaignID)
		if err != nil {
			return err
		}
		onChange(c)
		return nil
	})
}

// SubscribeInventories calls onChange with the campaign's inventories now and after every change.
func (h *Hub) SubscribeInventories(ctx context.Context, campaignID string, onChange func([]domain.Inventory)) (*Subscription, error) {
	return h.subscribe(ctx, campaignID, TopicInventories, func(ctx context.Context) error {
		invs, err := h.loadInventories(ctx, campaignID)
		if err != nil {
			return err
		}
		onChange(invs)
		return nil
	})
}

func (h *Hub) subscribe(ctx context.Context, campaignID string, topic Topic, deliver func(context.Context) error) (*Subscription, error) {
	sub := &Subscription{
		ID:         uuid.NewString(),
		CampaignID: campaignID,
		Topic:      topic,
		hub:        h,
		signal:     make(chan struct{}, 1),
		stop:       make(chan struct{}),
		exited:     make(chan struct{}),
		deliver:    deliver,
	}
	// initial snapshot
	sub.signal <- struct{}{}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHubClosed
	}
	if h.subs[campaignID] == nil {
		h.subs[campaignID] = make(map[string]*Subscription)
	}
	h.subs[campaignID][sub.ID] = sub
	h.wg.Add(1)
	h.mu.Unlock()

	go sub.run(context.WithoutCancel(ctx), ctx.Done())

	logger.FromContext(ctx).Debug(LogMsgSubscribed,
		"campaign_id", campaignID, "topic", topic.String(), "subscription_id", sub.ID)
	return sub, nil
}

// Notify wakes every subscription of campaignID on topic
func (h *Hub) Notify(campaignID string, topic Topic) {
	h.mu.Lock()
	h.gen[genKey(campaignID, topic)]++
	targets := make([]*Subscription, 0, len(h.subs[campaignID]))
	for _, sub := range h.subs[campaignID] {
		if sub.Topic == topic {
			targets = append(targets, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range targets {
		sub.wake()
	}
}

// SubscriptionCount returns the number of live subscriptions
func (h *Hub) SubscriptionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for _, subs := range h.subs {
		n += len(subs)
	}
	return n
}

// Close ends every subscription and waits for their goroutines
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	all := make([]*Subscription, 0)
	for _, subs := range h.subs {
		for _, sub := range subs {
			all = append(all, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range all {
		sub.signalStop()
	}
	h.wg.Wait()
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.subs[sub.CampaignID]
	delete(subs, sub.ID)
	if len(subs) == 0 {
		delete(h.subs, sub.CampaignID)
		delete(h.gen, genKey(sub.CampaignID, TopicCampaign))
		delete(h.gen, genKey(sub.CampaignID, TopicInventories))
	}
}

func genKey(campaignID string, topic Topic) string {
	return topic.String() + "/" + campaignID
}

// flightKey includes the change generation so a load that started before a
// notice is never shared with a subscriber woken by that notice.
func (h *Hub) flightKey(campaignID string, topic Topic) string {
	h.mu.Lock()
	gen := h.gen[genKey(campaignID, topic)]
	h.mu.Unlock()
	return fmt.Sprintf("%s/%d", genKey(campaignID, topic), gen)
}

func (h *Hub) loadCampaign(ctx context.Context, campaignID string) (domain.Campaign, error) {
	v, err, _ := h.loads.Do(h.flightKey(campaignID, TopicCampaign), func() (interface{}, error) {
		return h.source.GetCampaign(ctx, campaignID)
	})
	if err != nil {
		return domain.Campaign{}, err
	}
	c := v.(*domain.Campaign).Clone()
	c.PasswordHash = ""
	return c, nil
}

func (h *Hub) loadInventories(ctx context.Context, campaignID string) ([]domain.Inventory, error) {
	v, err, _ := h.loads.Do(h.flightKey(campaignID, TopicInventories), func() (interface{}, error) {
		return h.source.ListInventories(ctx, campaignID)
	})
	if err != nil {
		return nil, err
	}
	shared := v.([]domain.Inventory)
	out := make([]domain.Inventory, len(shared))
	for i, inv := range shared {
		out[i] = inv.Clone()
	}
	return out, nil
}
