package transfer

import "github.com/osse101/LootVault_Go/internal/repository"

// MaxMoveAttempts bounds re-validation when a move loses a version race
const MaxMoveAttempts = repository.DefaultMaxAttempts

// Event causes
const (
	CauseItemMoved = "item_moved"
)

// Log messages
const (
	LogMsgItemMoved    = "Item moved"
	LogMsgMoveRejected = "Move rejected"
	LogMsgMoveFailed   = "Move failed"
)
