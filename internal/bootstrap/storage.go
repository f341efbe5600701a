package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/osse101/armory/internal/config"
	"github.com/osse101/armory/internal/database"
	"github.com/osse101/armory/internal/database/memory"
	"github.com/osse101/armory/internal/database/postgres"
	redisrepo "github.com/osse101/armory/internal/database/redis"
	"github.com/osse101/armory/internal/database/sqlite"
	"github.com/osse101/armory/internal/repository"
)

// Store is a character repository that can report its availability
type Store interface {
	repository.Character
	repository.Pinger
}

// Storage pairs the selected Store with whatever connection backs it
type Storage struct {
	Store  Store
	Driver string
	close  func() error
}

// Close releases the backing connection. Safe to call on a nil Storage.
func (s *Storage) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	if err := s.close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedCloseStorage, err)
	}
	slog.Info(LogMsgStorageClosed, "driver", s.Driver)
	return nil
}

// OpenStorage connects the backend named by cfg.StorageDriver and runs its migrations
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	slog.Info(LogMsgOpeningStorage, "driver", cfg.StorageDriver)

	var (
		storage *Storage
		err     error
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		slog.Warn(LogMsgMemoryStorageWarning)
		storage = &Storage{Store: memory.NewCharacterRepository()}
	case config.StorageSQLite:
		storage, err = openSQLite(ctx, cfg.SQLitePath)
	case config.StoragePostgres:
		storage, err = openPostgres(ctx, cfg)
	case config.StorageRedis:
		storage, err = openRedis(ctx, cfg.RedisAddr)
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorageDriver, cfg.StorageDriver)
	}
	if err != nil {
		return nil, err
	}

	storage.Driver = cfg.StorageDriver
	slog.Info(LogMsgStorageReady, "driver", storage.Driver)
	return storage, nil
}

func openSQLite(ctx context.Context, path string) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDataDir, err)
		}
	}

	db, err := database.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStorage, err)
	}
	if err := database.Migrate(ctx, db, database.DialectSQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateStorage, err)
	}

	return &Storage{
		Store: sqlite.NewCharacterRepository(db),
		close: closeSQL(db),
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*Storage, error) {
	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStorage, err)
	}
	if err := database.MigratePool(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateStorage, err)
	}

	return &Storage{
		Store: postgres.NewCharacterRepository(pool),
		close: closePool(pool),
	}, nil
}

func openRedis(ctx context.Context, addr string) (*Storage, error) {
	client, err := database.NewRedisClient(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedisRepo, err)
	}

	return &Storage{
		Store: redisrepo.NewCharacterRepository(client),
		close: closeRedis(client),
	}, nil
}

func closeSQL(db *sql.DB) func() error { return db.Close }

func closePool(pool *pgxpool.Pool) func() error {
	return func() error {
		pool.Close()
		return nil
	}
}

func closeRedis(client *goredis.Client) func() error { return client.Close }
