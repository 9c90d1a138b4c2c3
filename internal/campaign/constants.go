package campaign

import "golang.org/x/crypto/bcrypt"

// Limits
const (
	// MaxIDAttempts bounds campaign id generation when ids collide
	MaxIDAttempts = 10

	MaxNameLength        = 120
	MaxDescriptionLength = 2000
	MaxPasswordLength    = 72 // bcrypt ignores anything longer
)

// PasswordHashCost is the bcrypt work factor for join passwords
const PasswordHashCost = bcrypt.DefaultCost

// Event causes
const (
	CauseCreated        = "created"
	CauseJoined         = "joined"
	CauseLeft           = "left"
	CauseDetailsUpdated = "details_updated"
	CauseLootReplaced   = "shared_loot_replaced"
)

// Log messages
const (
	LogMsgCampaignCreated    = "Campaign created"
	LogMsgCampaignJoined     = "Player joined campaign"
	LogMsgJoinRejected       = "Join rejected"
	LogMsgCampaignUpdated    = "Campaign details updated"
	LogMsgSharedLootReplaced = "Shared loot replaced"
	LogMsgCampaignDeleted    = "Campaign deleted"
	LogMsgCampaignLeft       = "Player left campaign"
	LogMsgIDCollision        = "Campaign id collision, regenerating"
)
