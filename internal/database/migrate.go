package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrations returns the embedded migration files for a dialect
func Migrations(dialect string) (fs.FS, error) {
	switch dialect {
	case DialectPostgres, DialectSQLite:
		return fs.Sub(migrationsFS, "migrations/"+dialect)
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnsupportedMigrationType, dialect)
	}
}

// Migrate applies all pending migrations for the dialect to db
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	provider, err := newProvider(db, dialect)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToApplyMigrations, err)
	}

	log := slog.Default()
	if len(results) == 0 {
		log.Info(LogMsgMigrationsUpToDate, "dialect", dialect)
	}
	for _, r := range results {
		log.Info(LogMsgMigrationApplied, "dialect", dialect, "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

// MigrationStatus reports every known migration and whether it has been applied
func MigrationStatus(ctx context.Context, db *sql.DB, dialect string) ([]*goose.MigrationStatus, error) {
	provider, err := newProvider(db, dialect)
	if err != nil {
		return nil, err
	}
	return provider.Status(ctx)
}

func newProvider(db *sql.DB, dialect string) (*goose.Provider, error) {
	fsys, err := Migrations(dialect)
	if err != nil {
		return nil, err
	}

	gooseDialect := goose.DialectPostgres
	if dialect == DialectSQLite {
		gooseDialect = goose.DialectSQLite3
	}

	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadMigrations, err)
	}
	return provider, nil
}

// MigratePool applies the postgres migrations through a database/sql view of the pool
func MigratePool(ctx context.Context, pool *pgxpool.Pool) error {
	// The pool owns the connections; the sql.DB wrapper holds no idle ones.
	db := stdlib.OpenDBFromPool(pool)
	return Migrate(ctx, db, DialectPostgres)
}
