package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/osse101/LootVault_Go/internal/event"
	"github.com/osse101/LootVault_Go/internal/logger"
)

// changeNotice is the message carried on a campaign's redis channel
type changeNotice struct {
	Origin     string     `json:"origin"`
	Type       event.Type `json:"type"`
	CampaignID string     `json:"campaign_id"`
	Version    int64      `json:"version"`
	Cause      string     `json:"cause"`
}

// RedisBridge shares change events between processes serving the same store.
// Local changes are published to the campaign's channel; notices from other
// nodes are republished on the local bus tagged with their origin.
type RedisBridge struct {
	client *redis.Client
	bus    event.Bus
	nodeID string
}

// NewRedisBridge creates a bridge for the node identified by nodeID
func NewRedisBridge(client *redis.Client, bus event.Bus, nodeID string) *RedisBridge {
	return &RedisBridge{
		client: client,
		bus:    bus,
		nodeID: nodeID,
	}
}

// Attach forwards local change events to redis
func (b *RedisBridge) Attach() {
	b.bus.Subscribe(event.CampaignUpdated, b.forward)
	b.bus.Subscribe(event.InventoriesUpdated, b.forward)
	b.bus.Subscribe(event.CampaignDeleted, b.forward)
}

func (b *RedisBridge) forward(ctx context.Context, evt event.Event) error {
	// remote notices are already on every other node
	if origin := evt.Origin(); origin != "" && origin != b.nodeID {
		return nil
	}

	notice, err := noticeFromEvent(b.nodeID, evt)
	if err != nil {
		return err
	}

	data, err := json.Marshal(notice)
	if err != nil {
		return err
	}

	// logged only: an error here would replay the event to every local handler
	if err := b.client.Publish(ctx, ChannelPrefix+notice.CampaignID, data).Err(); err != nil {
		logger.FromContext(ctx).Warn(LogMsgBridgeForward, "campaign_id", notice.CampaignID, "error", err)
	}
	return nil
}

// Run receives notices from other nodes until ctx is done
func (b *RedisBridge) Run(ctx context.Context) error {
	pubsub := b.client.PSubscribe(ctx, ChannelPattern)
	defer pubsub.Close()

	// wait for the subscription to be confirmed
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("redis psubscribe: %w", err)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.receive(ctx, msg)
		}
	}
}

func (b *RedisBridge) receive(ctx context.Context, msg *redis.Message) {
	log := logger.FromContext(ctx)

	var notice changeNotice
	if err := json.Unmarshal([]byte(msg.Payload), &notice); err != nil {
		log.Warn(LogMsgBridgeDecode, "channel", msg.Channel, "error", err)
		return
	}
	if notice.Origin == b.nodeID {
		return
	}
	if notice.CampaignID == "" {
		notice.CampaignID = strings.TrimPrefix(msg.Channel, ChannelPrefix)
	}

	evt, err := notice.toEvent()
	if err != nil {
		log.Warn(LogMsgBridgeDecode, "channel", msg.Channel, "error", err)
		return
	}
	if err := b.bus.Publish(ctx, evt); err != nil {
		log.Warn(LogMsgBridgeRepublish, "campaign_id", notice.CampaignID, "error", err)
	}
}

func noticeFromEvent(nodeID string, evt event.Event) (changeNotice, error) {
	notice := changeNotice{Origin: nodeID, Type: evt.Type}

	switch evt.Type {
	case event.CampaignUpdated, event.InventoriesUpdated:
		payload, err := event.DecodePayload[event.ChangePayloadV1](evt.Payload)
		if err != nil {
			return notice, err
		}
		notice.CampaignID = payload.CampaignID
		notice.Version = payload.Version
		notice.Cause = payload.Cause
	case event.CampaignDeleted:
		payload, err := event.DecodePayload[event.CampaignLifecyclePayloadV1](evt.Payload)
		if err != nil {
			return notice, err
		}
		notice.CampaignID = payload.CampaignID
	default:
		return notice, fmt.Errorf("unsupported event type %q", evt.Type)
	}
	return notice, nil
}

var errUnknownNotice = errors.New("unknown notice type")

func (n changeNotice) toEvent() (event.Event, error) {
	var evt event.Event
	switch n.Type {
	case event.CampaignUpdated:
		evt = event.NewCampaignUpdatedEvent(n.CampaignID, n.Version, n.Cause)
	case event.InventoriesUpdated:
		evt = event.NewInventoriesUpdatedEvent(n.CampaignID, n.Version, n.Cause)
	case event.CampaignDeleted:
		evt = event.NewCampaignLifecycleEvent(event.CampaignDeleted, n.CampaignID, "")
	default:
		return evt, fmt.Errorf("%w: %q", errUnknownNotice, n.Type)
	}
	return evt.WithOrigin(n.Origin), nil
}
