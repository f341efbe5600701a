package main

import (
	"github.com/osse101/armory/internal/config"
	"github.com/osse101/armory/internal/logger"
)

// initLogger installs the default slog logger; source locations are added in development
func initLogger(cfg *config.Config) {
	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		logger.IsDevelopment(cfg.Environment),
	))
}
