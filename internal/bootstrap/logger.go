package bootstrap

import (
	"log/slog"

	"github.com/osse101/LootVault_Go/internal/config"
	"github.com/osse101/LootVault_Go/internal/logger"
)

// SetupLogger installs the default slog logger for cfg and logs the startup
// banner along with any configuration warnings.
func SetupLogger(cfg *config.Config) {
	lc := logger.ForEnvironment(cfg.Environment)
	lc.Level = cfg.LogLevel
	lc.Format = cfg.LogFormat
	if cfg.ServiceName != "" {
		lc.ServiceName = cfg.ServiceName
	}
	if cfg.Version != "" {
		lc.Version = cfg.Version
	}
	logger.InitLogger(lc)

	slog.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"store", cfg.StoreBackend,
		"version", cfg.Version)

	for _, warning := range config.Warnings() {
		slog.Warn(warning)
	}

	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"redis", cfg.RedisURL != "",
		"catalog_path", cfg.CatalogPath)
}
