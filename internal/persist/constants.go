package persist

import "time"

// Debouncer defaults
const (
	DefaultDelay = 500 * time.Millisecond

	// MaxSaveAttempts bounds how often a failed write is retried before it is dropped
	MaxSaveAttempts = 3
)

// Log messages
const (
	LogMsgSaveFailed      = "Failed to save character"
	LogMsgSaveRetrying    = "Retrying character save"
	LogMsgSaveDropped     = "Dropping character save after repeated failures"
	LogMsgSaveEnqueueFail = "Failed to enqueue character save"
	LogMsgFlushing        = "Flushing pending character saves"
)
