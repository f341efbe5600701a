package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/armory/internal/config"
	"github.com/osse101/armory/internal/database"
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for the configured storage backend to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Waiting for %s storage...", cfg.StorageDriver))

	maxRetries := 30
	retryInterval := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		err = pingStorage(cfg)
		if err == nil {
			PrintSuccess("Storage is ready")
			return nil
		}

		fmt.Printf("Storage not ready (%d/%d): %v\n", i+1, maxRetries, err)
		time.Sleep(retryInterval)
	}

	return fmt.Errorf("storage failed to become ready after %d attempts", maxRetries)
}

func pingStorage(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), 1, time.Minute, time.Minute)
		if err != nil {
			return err
		}
		pool.Close()
		return nil
	case config.StorageSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return err
		}
		return db.Close()
	case config.StorageRedis:
		client, err := database.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		return client.Close()
	default:
		return nil
	}
}
