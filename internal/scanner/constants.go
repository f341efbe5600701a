package scanner

import "time"

// AttemptBuffer is how many undelivered attempts a session holds before
// dropping failed ones.
const AttemptBuffer = 16

// WebSocket tuning
const (
	MaxFrameBytes  = 4 << 20
	WriteWait      = 5 * time.Second
	ReadBufferSize = 64 << 10
)

// Status values sent back to the scanning client
const (
	StatusScanning = "scanning"
	StatusRetry    = "retry"
	StatusReceived = "received"
	StatusStopped  = "stopped"
	StatusError    = "error"
)

// StopCommand is the text message a client sends to cancel scanning
const StopCommand = "stop"

// Log messages
const (
	LogMsgSessionStarted  = "Scan session started"
	LogMsgSessionEnded    = "Scan session ended"
	LogMsgFrameRejected   = "Scan frame rejected"
	LogMsgSourceCloseFail = "Failed to close frame source"
	LogMsgWeaponDiscarded = "Scanned weapon discarded, session stopped first"
)
