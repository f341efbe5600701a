package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// StorageDrivers lists the accepted STORAGE_DRIVER values
var StorageDrivers = []string{StorageMemory, StorageSQLite, StoragePostgres, StorageRedis}

var (
	logLevels  = []string{"debug", "info", "warn", "warning", "error"}
	logFormats = []string{"text", "json"}
)

// Validate checks that the configuration is usable, reporting every problem at once
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 0 and 65535, got %d", c.Port))
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of %s", c.LogLevel, strings.Join(logLevels, ", ")))
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		problems = append(problems, fmt.Sprintf("LOG_FORMAT %q is not one of %s", c.LogFormat, strings.Join(logFormats, ", ")))
	}

	switch c.StorageDriver {
	case StorageMemory:
	case StorageSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			problems = append(problems, "SQLITE_PATH must be set for the sqlite driver")
		}
	case StoragePostgres:
		if c.DBMaxConns < 1 {
			problems = append(problems, "DB_MAX_CONNS must be positive")
		}
	case StorageRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			problems = append(problems, "REDIS_ADDR must be set for the redis driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORAGE_DRIVER %q is not one of %s", c.StorageDriver, strings.Join(StorageDrivers, ", ")))
	}

	if c.CatalogClassesPath == "" || c.CatalogRaritiesPath == "" {
		problems = append(problems, "CATALOG_CLASSES_PATH and CATALOG_RARITIES_PATH must be set")
	}
	if c.SaveDebounce <= 0 {
		problems = append(problems, "SAVE_DEBOUNCE must be positive")
	}
	if c.WorkerCount < 1 {
		problems = append(problems, "WORKER_COUNT must be positive")
	}
	if c.ScanRateLimit <= 0 || c.ReceiveRateLimit <= 0 {
		problems = append(problems, "SCAN_RATE_LIMIT and RECEIVE_RATE_LIMIT must be positive")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// Warnings returns non-fatal configuration issues worth logging at startup
func (c *Config) Warnings() []string {
	var warnings []string

	if c.IsProduction() && c.StorageDriver == StorageMemory {
		warnings = append(warnings, "STORAGE_DRIVER=memory loses all characters on restart")
	}
	if c.StorageDriver == StoragePostgres && c.DatabaseURL == "" && c.DBPassword == "postgres" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the default value - please use a secure password")
	}
	if c.CacheSize < 1 {
		warnings = append(warnings, "CACHE_SIZE is not positive, the default will be used")
	}

	return warnings
}
