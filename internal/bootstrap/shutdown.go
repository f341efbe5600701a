package bootstrap

import (
	"context"
	"log/slog"
)

// Stopper is implemented by the HTTP server
type Stopper interface {
	Stop(ctx context.Context) error
}

// ScanStopper ends every live camera scan session
type ScanStopper interface {
	StopAll()
}

// SaveFlusher drains debounced character saves
type SaveFlusher interface {
	Close(ctx context.Context) error
}

// WorkerPool is the background job pool the saves run on
type WorkerPool interface {
	Stop()
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server    Stopper
	Scans     ScanStopper
	Debouncer SaveFlusher
	Pool      WorkerPool
	Storage   *Storage
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scan sessions (no more received weapons)
// 3. Debounced saves (flush every pending character to storage)
// 4. Worker pool (the flush has drained it)
// 5. Storage connection
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scans != nil {
		slog.Info(LogMsgStoppingScans)
		components.Scans.StopAll()
	}

	if components.Debouncer != nil {
		slog.Info(LogMsgFlushingSaves)
		if err := components.Debouncer.Close(ctx); err != nil {
			slog.Error(LogMsgFlushFailed, "error", err)
		}
	}

	if components.Pool != nil {
		slog.Info(LogMsgStoppingWorkers)
		components.Pool.Stop()
	}

	if err := components.Storage.Close(); err != nil {
		slog.Error(LogMsgStorageCloseFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
