package worker

import "time"

// Pool defaults
const (
	// DefaultJobTimeout bounds a single job's Process call
	DefaultJobTimeout = 10 * time.Second
)

// Error messages
const (
	ErrMsgPoolStopped = "worker pool stopped"
)

// Log Messages - Worker Pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgPoolStarted     = "Worker pool started"
	LogMsgPoolStopped     = "Worker pool stopped"
)
