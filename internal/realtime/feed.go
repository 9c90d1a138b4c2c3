package realtime

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/LootVault_Go/internal/domain"
)

// Message kinds sent to connected clients
const (
	MessageConnected   = "connected"
	MessageCampaign    = "campaign"
	MessageInventories = "inventories"
	MessageKeepalive   = "keepalive"
	MessageClosed      = "closed"
)

// Message is one full snapshot, or a control notice, for a client connection
type Message struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewMessage stamps payload with a fresh id and the current time
func NewMessage(kind string, payload interface{}) Message {
	return Message{
		ID:        uuid.NewString(),
		Type:      kind,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}
}

// Feed joins a campaign subscription and an inventories subscription into
// one outbox for a single client connection.
type Feed struct {
	CampaignID string

	outbox      *Outbox[Message]
	campaign    *Subscription
	inventories *Subscription
}

// OpenFeed subscribes to both topics of campaignID. The feed ends when ctx
// is done, on Close, or when the campaign is deleted.
func (h *Hub) OpenFeed(ctx context.Context, campaignID string) (*Feed, error) {
	f := &Feed{CampaignID: campaignID, outbox: NewOutbox[Message]()}

	var err error
	f.campaign, err = h.SubscribeCampaign(ctx, campaignID, func(c domain.Campaign) {
		f.outbox.Offer(MessageCampaign, NewMessage(MessageCampaign, c))
	})
	if err != nil {
		return nil, err
	}

	f.inventories, err = h.SubscribeInventories(ctx, campaignID, func(invs []domain.Inventory) {
		f.outbox.Offer(MessageInventories, NewMessage(MessageInventories, invs))
	})
	if err != nil {
		f.campaign.Unsubscribe()
		return nil, err
	}
	return f, nil
}

// Ready receives a value whenever Drain has messages
func (f *Feed) Ready() <-chan struct{} {
	return f.outbox.Ready()
}

// Drain returns the latest undelivered snapshot of each kind
func (f *Feed) Drain() []Message {
	return f.outbox.Drain()
}

// Ended is closed once the campaign subscription stops
func (f *Feed) Ended() <-chan struct{} {
	return f.campaign.Done()
}

// Close stops both subscriptions and waits for them
func (f *Feed) Close() {
	f.campaign.Unsubscribe()
	f.inventories.Unsubscribe()
}
