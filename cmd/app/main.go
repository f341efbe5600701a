// @title Armory API
// @version 1.0
// @description Character sheets, loot generation and QR weapon sharing.
// @BasePath /
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/armory/internal/bootstrap"
	"github.com/osse101/armory/internal/catalog"
	"github.com/osse101/armory/internal/character"
	"github.com/osse101/armory/internal/config"
	"github.com/osse101/armory/internal/loot"
	"github.com/osse101/armory/internal/persist"
	"github.com/osse101/armory/internal/scanner"
	"github.com/osse101/armory/internal/server"
	"github.com/osse101/armory/internal/share"
	"github.com/osse101/armory/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	slog.Info("Starting Armory", "version", cfg.Version, "environment", cfg.Environment, "storage", cfg.StorageDriver)
	for _, warning := range cfg.Warnings() {
		slog.Warn("Configuration warning", "warning", warning)
	}

	if err := run(cfg); err != nil {
		slog.Error("Armory stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	cat, err := catalog.Load(ctx, cfg.CatalogClassesPath, cfg.CatalogRaritiesPath)
	if err != nil {
		return err
	}
	codec, err := share.NewCodec(cat)
	if err != nil {
		return err
	}
	gen := loot.NewGenerator(cat, loot.NewRandom())

	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()
	debouncer := persist.NewDebouncer(storage.Store, pool, cfg.SaveDebounce)

	characters := character.NewService(storage.Store, debouncer, gen, codec, cat, character.Config{
		Cache:  character.CacheConfig{Size: cfg.CacheSize, TTL: cfg.CacheTTL},
		QRSize: cfg.QRSize,
	})
	scans := scanner.NewManager(codec, cfg.ScanRateLimit)

	srv := server.NewServer(server.Config{
		Port:             cfg.Port,
		Version:          cfg.Version,
		TrustedProxies:   cfg.TrustedProxies,
		MaxUploadBytes:   cfg.MaxUploadBytes,
		QRSize:           cfg.QRSize,
		ReceiveRateLimit: cfg.ReceiveRateLimit,
		ReceiveBurst:     cfg.ReceiveBurst,
	}, server.Dependencies{
		Characters: characters,
		Catalog:    cat,
		Payloads:   codec,
		Scans:      scans,
		Store:      storage.Store,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:    srv,
		Scans:     scans,
		Debouncer: debouncer,
		Pool:      pool,
		Storage:   storage,
	})

	return runErr
}
