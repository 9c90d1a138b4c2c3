package event

import (
	"time"

	"github.com/osse101/LootVault_Go/internal/domain"
)

// Type names what happened, e.g. "item.moved"
type Type string

type Metadata map[string]interface{}

// Event is the envelope carried by a Bus. Payload holds one of the *PayloadV1 types.
type Event struct {
	Version  string      `json:"version"`
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// Origin is the node that first published e, or "" for local events
func (e Event) Origin() string {
	origin, _ := e.Metadata[MetadataKeyOrigin].(string)
	return origin
}

// WithOrigin returns a copy of e stamped with node as its origin
func (e Event) WithOrigin(node string) Event {
	md := make(Metadata, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		md[k] = v
	}
	md[MetadataKeyOrigin] = node
	e.Metadata = md
	return e
}

const (
	CampaignCreated    Type = domain.EventTypeCampaignCreated
	CampaignJoined     Type = domain.EventTypeCampaignJoined
	CampaignUpdated    Type = domain.EventTypeCampaignUpdated
	CampaignDeleted    Type = domain.EventTypeCampaignDeleted
	InventoriesUpdated Type = domain.EventTypeInventoriesUpdated
	ItemMoved          Type = domain.EventTypeItemMoved
	MoveRejected       Type = domain.EventTypeMoveRejected
)

// MetadataKeyOrigin names the node that produced an event
const MetadataKeyOrigin = "origin"

// ChangePayloadV1 says a campaign's records changed. Version is the campaign
// record version for campaign events and the changed inventory's version for
// inventory events.
type ChangePayloadV1 struct {
	CampaignID string `json:"campaign_id"`
	Version    int64  `json:"version"`
	Cause      string `json:"cause"`
	Timestamp  int64  `json:"timestamp"`
}

// CampaignLifecyclePayloadV1 is the typed payload for create, join and delete events
type CampaignLifecyclePayloadV1 struct {
	CampaignID string `json:"campaign_id"`
	UserID     string `json:"user_id"`
	Timestamp  int64  `json:"timestamp"`
}

// ItemMovedPayloadV1 is the typed payload for successful moves
type ItemMovedPayloadV1 struct {
	CampaignID  string `json:"campaign_id"`
	ItemID      string `json:"item_id"`
	From        string `json:"from"`
	To          string `json:"to"`
	RequesterID string `json:"requester_id"`
	Merged      bool   `json:"merged"`
	Attempts    int    `json:"attempts"`
	Timestamp   int64  `json:"timestamp"`
}

// MoveRejectedPayloadV1 is the typed payload for moves that failed with a typed error
type MoveRejectedPayloadV1 struct {
	CampaignID  string `json:"campaign_id"`
	ItemID      string `json:"item_id"`
	RequesterID string `json:"requester_id"`
	Reason      string `json:"reason"`
	Timestamp   int64  `json:"timestamp"`
}

// NewCampaignUpdatedEvent creates a change event for the campaign record
func NewCampaignUpdatedEvent(campaignID string, version int64, cause string) Event {
	return newChangeEvent(CampaignUpdated, campaignID, version, cause)
}

// NewInventoriesUpdatedEvent creates a change event for the campaign's inventories
func NewInventoriesUpdatedEvent(campaignID string, version int64, cause string) Event {
	return newChangeEvent(InventoriesUpdated, campaignID, version, cause)
}

func newChangeEvent(t Type, campaignID string, version int64, cause string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: ChangePayloadV1{
			CampaignID: campaignID,
			Version:    version,
			Cause:      cause,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewCampaignLifecycleEvent creates a campaign created, joined or deleted event
func NewCampaignLifecycleEvent(t Type, campaignID, userID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: CampaignLifecyclePayloadV1{
			CampaignID: campaignID,
			UserID:     userID,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewItemMovedEvent creates a new item moved event
func NewItemMovedEvent(campaignID, itemID string, from, to domain.Owner, requesterID string, merged bool, attempts int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemMoved,
		Payload: ItemMovedPayloadV1{
			CampaignID:  campaignID,
			ItemID:      itemID,
			From:        from.String(),
			To:          to.String(),
			RequesterID: requesterID,
			Merged:      merged,
			Attempts:    attempts,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewMoveRejectedEvent creates a new move rejected event
func NewMoveRejectedEvent(campaignID, itemID, requesterID, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MoveRejected,
		Payload: MoveRejectedPayloadV1{
			CampaignID:  campaignID,
			ItemID:      itemID,
			RequesterID: requesterID,
			Reason:      reason,
			Timestamp:   time.Now().Unix(),
		},
	}
}
