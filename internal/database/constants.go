package database

import "time"

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2

	// SQLiteBusyTimeout is how long a sqlite writer waits on a locked database
	SQLiteBusyTimeout = 5 * time.Second

	// RedisDialTimeout bounds the initial redis connection attempt
	RedisDialTimeout = 5 * time.Second
)

// Migration dialect directories under migrations/
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString  = "failed to parse connection string"
	ErrMsgFailedToCreatePool       = "failed to create connection pool"
	ErrMsgFailedToPingDatabase     = "failed to ping database"
	ErrMsgFailedToOpenSQLite       = "failed to open sqlite database"
	ErrMsgSQLitePathRequired       = "sqlite path is required"
	ErrMsgFailedToConnectRedis     = "failed to connect to redis"
	ErrMsgFailedToLoadMigrations   = "failed to load migrations"
	ErrMsgFailedToApplyMigrations  = "failed to apply migrations"
	ErrMsgUnsupportedMigrationType = "unsupported migration dialect"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgOpenedSQLite                    = "Opened sqlite database"
	LogMsgConnectedToRedis                = "Connected to redis"
	LogMsgMigrationApplied                = "Applied migration"
	LogMsgMigrationsUpToDate              = "Database schema is up to date"
)
