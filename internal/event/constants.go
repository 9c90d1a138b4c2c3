package event

import "time"

// EventSchemaVersion is stamped on every event this package builds
const EventSchemaVersion = "1.0"

const (
	// RetryQueueBufferSize bounds pending retries; overflow is dead-lettered
	RetryQueueBufferSize = 1000

	DeadLetterFileMode = 0o644
)

const (
	LogMsgPublishFailed         = "event publish failed"
	LogMsgEventPublishFailed    = "event publish failed, retry queued"
	LogMsgRetryQueueFull        = "retry queue full, event dead-lettered"
	LogMsgEventRetryFailed      = "event retry failed"
	LogMsgEventRetrySucceeded   = "event retry succeeded"
	LogMsgEventRetryExhausted   = "event retries exhausted"
	LogMsgEventDroppedShutdown  = "event dead-lettered during shutdown"
	LogMsgEventDeadLettered     = "event dead-lettered"
	LogMsgDeadLetterWriteFailed = "dead-letter write failed"
	LogMsgQueueDrainedShutdown  = "retry queue drained on shutdown"
	LogMsgShutdownTimeout       = "publisher shutdown timed out"

	ErrFmtHandlerErrors = "%d handler(s) failed for %s: %w"
)

// CalculateRetryDelay doubles base for every attempt after the first
func CalculateRetryDelay(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return base << (attempt - 1)
}
