package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/osse101/armory/internal/config"
	"github.com/osse101/armory/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply or inspect storage migrations (up, status)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, status")
	}
	subcmd := args[0]
	if subcmd != "up" && subcmd != "status" {
		return fmt.Errorf("unknown subcommand %q: want up or status", subcmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, dialect, closeFn, err := openMigrationDB(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx := context.Background()
	PrintHeader(fmt.Sprintf("Migrations (%s)", dialect))

	if subcmd == "up" {
		if err := database.Migrate(ctx, db, dialect); err != nil {
			return err
		}
		PrintSuccess("Migrations applied")
		return nil
	}

	statuses, err := database.MigrationStatus(ctx, db, dialect)
	if err != nil {
		return err
	}
	for _, st := range statuses {
		PrintInfo("%05d  %-8s  %s", st.Source.Version, st.State, st.Source.Path)
	}
	return nil
}

// openMigrationDB opens a database/sql handle for the configured driver.
// Memory and redis storage have no schema.
func openMigrationDB(cfg *config.Config) (*sql.DB, string, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, "", nil, err
		}
		return db, database.DialectSQLite, func() { _ = db.Close() }, nil
	case config.StoragePostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, "", nil, err
		}
		return stdlib.OpenDBFromPool(pool), database.DialectPostgres, pool.Close, nil
	default:
		return nil, "", nil, fmt.Errorf("storage driver %q has no migrations", cfg.StorageDriver)
	}
}
