package realtime

import "time"

// SnapshotRetryDelay is how long a subscription waits before reloading after a failed load
const SnapshotRetryDelay = 500 * time.Millisecond

// Redis channel naming
const (
	// ChannelPrefix is followed by the campaign id
	ChannelPrefix = "lootvault:campaign:"
	// ChannelPattern matches every campaign channel
	ChannelPattern = ChannelPrefix + "*"
)

// Log messages
const (
	LogMsgSubscribed      = "Realtime subscription started"
	LogMsgUnsubscribed    = "Realtime subscription stopped"
	LogMsgSnapshotFailed  = "Failed to load realtime snapshot"
	LogMsgCampaignGone    = "Campaign deleted, ending subscription"
	LogMsgBridgeForward   = "Failed to forward change to redis"
	LogMsgBridgeDecode    = "Dropping malformed redis change notice"
	LogMsgBridgeRepublish = "Failed to publish remote change locally"
)
