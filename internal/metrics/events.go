package metrics

import (
	"context"

	"github.com/osse101/LootVault_Go/internal/event"
	"github.com/osse101/LootVault_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.CampaignCreated,
		event.CampaignJoined,
		event.CampaignUpdated,
		event.CampaignDeleted,
		event.InventoriesUpdated,
		event.ItemMoved,
		event.MoveRejected,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.CampaignCreated:
		CampaignsCreated.Inc()

	case event.CampaignJoined:
		CampaignJoins.WithLabelValues(OutcomeJoined).Inc()

	case event.ItemMoved:
		payload, ok := evt.Payload.(event.ItemMovedPayloadV1)
		if !ok {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
			return nil
		}
		outcome := OutcomeMoved
		if payload.Merged {
			outcome = OutcomeMerged
		}
		ItemMoves.WithLabelValues(outcome).Inc()

	case event.MoveRejected:
		payload, ok := evt.Payload.(event.MoveRejectedPayloadV1)
		if !ok {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
			return nil
		}
		ItemMoves.WithLabelValues(payload.Reason).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
