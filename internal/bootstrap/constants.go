package bootstrap

// DirPermission is used when creating the sqlite data directory
const DirPermission = 0755

// Storage log messages
const (
	LogMsgOpeningStorage       = "Opening character storage"
	LogMsgStorageReady         = "Character storage ready"
	LogMsgStorageClosed        = "Character storage closed"
	LogMsgMemoryStorageWarning = "Using in-memory storage; characters will not survive a restart"

	ErrMsgUnknownStorageDriver   = "unknown storage driver"
	ErrMsgFailedCreateDataDir    = "failed to create data directory"
	ErrMsgFailedOpenStorage      = "failed to open storage"
	ErrMsgFailedMigrateStorage   = "failed to migrate storage"
	ErrMsgFailedCloseStorage     = "failed to close storage"
	ErrMsgFailedConnectRedisRepo = "failed to connect to redis"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgStoppingScans        = "Stopping scan sessions..."
	LogMsgFlushingSaves        = "Flushing pending character saves..."
	LogMsgStoppingWorkers      = "Stopping worker pool..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgFlushFailed          = "Pending saves could not be flushed"
	LogMsgStorageCloseFailed   = "Storage close failed"
)
