package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:                8080,
		LogLevel:            "info",
		LogFormat:           "text",
		Environment:         "dev",
		CatalogClassesPath:  ConfigPathWeaponClasses,
		CatalogRaritiesPath: ConfigPathRarities,
		StorageDriver:       StorageSQLite,
		SQLitePath:          DefaultSQLitePath,
		RedisAddr:           DefaultRedisAddr,
		DBMaxConns:          DefaultDBMaxConns,
		SaveDebounce:        DefaultSaveDebounce,
		CacheSize:           DefaultCacheSize,
		WorkerCount:         DefaultWorkerCount,
		ScanRateLimit:       DefaultScanRateLimit,
		ReceiveRateLimit:    DefaultReceiveRateLimit,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		modify func(c *Config)
		want   string
	}{
		{"unknown driver", func(c *Config) { c.StorageDriver = "mongo" }, "STORAGE_DRIVER"},
		{"sqlite without path", func(c *Config) { c.SQLitePath = " " }, "SQLITE_PATH"},
		{"redis without addr", func(c *Config) { c.StorageDriver = StorageRedis; c.RedisAddr = "" }, "REDIS_ADDR"},
		{"postgres without pool", func(c *Config) { c.StorageDriver = StoragePostgres; c.DBMaxConns = 0 }, "DB_MAX_CONNS"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
		{"port out of range", func(c *Config) { c.Port = 70000 }, "PORT"},
		{"zero debounce", func(c *Config) { c.SaveDebounce = 0 }, "SAVE_DEBOUNCE"},
		{"no workers", func(c *Config) { c.WorkerCount = 0 }, "WORKER_COUNT"},
		{"no scan rate", func(c *Config) { c.ScanRateLimit = 0 }, "SCAN_RATE_LIMIT"},
		{"no catalog", func(c *Config) { c.CatalogClassesPath = "" }, "CATALOG_CLASSES_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "loud"
	cfg.WorkerCount = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "WORKER_COUNT")
}

func TestWarnings(t *testing.T) {
	cfg := validConfig()
	assert.Empty(t, cfg.Warnings())

	cfg.Environment = "production"
	cfg.StorageDriver = StorageMemory
	warnings := cfg.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "memory")

	cfg = validConfig()
	cfg.StorageDriver = StoragePostgres
	cfg.DBPassword = "postgres"
	assert.Len(t, cfg.Warnings(), 1)
}
