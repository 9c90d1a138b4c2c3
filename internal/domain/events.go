package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "item.moved")
const (
	// EventTypeCampaignCreated is published when a DM creates a campaign
	EventTypeCampaignCreated = "campaign.created"

	// EventTypeCampaignJoined is published when a player joins a campaign
	EventTypeCampaignJoined = "campaign.joined"

	// EventTypeCampaignUpdated is published whenever a campaign record changes
	EventTypeCampaignUpdated = "campaign.updated"

	// EventTypeCampaignDeleted is published when a campaign and its inventories are destroyed
	EventTypeCampaignDeleted = "campaign.deleted"

	// EventTypeInventoriesUpdated is published whenever any inventory of a campaign changes
	EventTypeInventoriesUpdated = "inventories.updated"

	// EventTypeItemMoved is published after a successful move
	EventTypeItemMoved = "item.moved"

	// EventTypeMoveRejected is published when a move fails with a typed error
	EventTypeMoveRejected = "item.move_rejected"
)
