package sse

import "time"

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgFeedFailed         = "Failed to open SSE feed"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgFormatError        = "Failed to format SSE event"
)

// ErrMsgStreamingUnsupported is returned when the response cannot be flushed
const ErrMsgStreamingUnsupported = "SSE not supported"
