package config

import "time"

// Content file paths
const (
	ConfigPathWeaponClasses = "configs/catalog/weapon_classes.json"
	ConfigPathRarities      = "configs/catalog/rarities.json"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Defaults
const (
	DefaultPort              = 8080
	DefaultServiceName       = "armory"
	DefaultSQLitePath        = "data/armory.db"
	DefaultRedisAddr         = "localhost:6379"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultSaveDebounce      = 500 * time.Millisecond
	DefaultCacheSize         = 1000
	DefaultCacheTTL          = 5 * time.Minute
	DefaultWorkerCount       = 4
	DefaultWorkerQueueSize   = 256
	DefaultScanRateLimit     = 10.0 // frames per second per session
	DefaultReceiveRateLimit  = 5.0  // requests per second per client
	DefaultReceiveBurst      = 10
	DefaultQRSize            = 256
	DefaultMaxUploadBytes    = 4 << 20
	DefaultShutdownTimeout   = 15 * time.Second
)
