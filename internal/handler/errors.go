package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingIdentity       = "Missing X-User-ID header"
	ErrMsgIdentityFailed        = "Failed to resolve identity"
	ErrMsgInvalidOwner          = "Invalid owner"
)

// User-facing error messages derived from domain errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgNotFoundError      = "Not found"
	ErrMsgUnauthorizedError  = "Wrong campaign password"
	ErrMsgForbiddenError     = "You are not allowed to do that"
	ErrMsgConflictError      = "That item was changed by someone else. Refresh and try again."
	ErrMsgValidationError    = "Invalid input"
)

// Success messages for API responses
const (
	MsgCampaignDeleted = "Campaign deleted"
	MsgCampaignLeft    = "Left campaign"
	MsgItemDeleted     = "Item deleted"
	MsgRoleUpdated     = "Role updated"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgValidationFailed = "Request validation failed"
	LogMsgServiceRejected  = "Request rejected"
	LogMsgServiceFailed    = "Request failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgWSUpgradeFailed  = "Websocket upgrade failed"
	LogMsgWSWriteFailed    = "Websocket write failed"
	LogMsgWSFeedFailed     = "Failed to open campaign feed"
	LogMsgWSConnected      = "Websocket client connected"
	LogMsgWSDisconnected   = "Websocket client disconnected"
)
