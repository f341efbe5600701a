package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	CatalogClassesPath  string
	CatalogRaritiesPath string

	StorageDriver string

	// Postgres
	DatabaseURL       string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	SQLitePath string
	RedisAddr  string

	SaveDebounce    time.Duration
	CacheSize       int
	CacheTTL        time.Duration
	WorkerCount     int
	WorkerQueueSize int

	TrustedProxies   []string
	ScanRateLimit    float64
	ReceiveRateLimit float64
	ReceiveBurst     int
	QRSize           int
	MaxUploadBytes   int64
	ShutdownTimeout  time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", "dev"),

		CatalogClassesPath:  getEnv("CATALOG_CLASSES_PATH", ConfigPathWeaponClasses),
		CatalogRaritiesPath: getEnv("CATALOG_RARITIES_PATH", ConfigPathRarities),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageSQLite)),

		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "armory"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		SQLitePath: getEnv("SQLITE_PATH", DefaultSQLitePath),
		RedisAddr:  getEnv("REDIS_ADDR", DefaultRedisAddr),

		SaveDebounce:    getEnvAsDuration("SAVE_DEBOUNCE", DefaultSaveDebounce),
		CacheSize:       getEnvAsInt("CACHE_SIZE", DefaultCacheSize),
		CacheTTL:        getEnvAsDuration("CACHE_TTL", DefaultCacheTTL),
		WorkerCount:     getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize: getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),

		TrustedProxies:   getEnvAsList("TRUSTED_PROXIES"),
		ScanRateLimit:    getEnvAsFloat("SCAN_RATE_LIMIT", DefaultScanRateLimit),
		ReceiveRateLimit: getEnvAsFloat("RECEIVE_RATE_LIMIT", DefaultReceiveRateLimit),
		ReceiveBurst:     getEnvAsInt("RECEIVE_BURST", DefaultReceiveBurst),
		QRSize:           getEnvAsInt("QR_SIZE", DefaultQRSize),
		MaxUploadBytes:   int64(getEnvAsInt("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)),
		ShutdownTimeout:  getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}

	portStr := getEnv("PORT", strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat parses a float variable, falling back to the default when unset or invalid
func getEnvAsFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsDuration parses a duration such as "500ms" or "5m", falling back to the default when unset or invalid
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string.
// DATABASE_URL wins over the individual DB_* variables.
func (c *Config) GetDBConnString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// IsProduction reports whether the service runs in a production environment
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == "prod" || env == "production"
}
