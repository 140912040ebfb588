package main

import (
	"fmt"

	"go.uber.org/zap"

	"hbnb/internal/config"
	"hbnb/internal/logging"
	"hbnb/internal/store"
)

// loadConfig applies flags on top of file and environment settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if storeFile != "" {
		cfg.Storage.Path = storeFile
	}
	if backendName != "" {
		cfg.Storage.Backend = backendName
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logging.Initialize(cfg.LoggingOptions()); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	// File logging is live only after Initialize.
	if logging.IsDebugMode() {
		logger.Debug("file logging enabled", zap.String("dir", cfg.Logging.Dir))
	}
	logging.BootDebug("config file %q", configPath)
	logging.ConfigInfo("storage backend=%s path=%s document=%s", cfg.Storage.Backend, cfg.Storage.Path, cfg.Storage.DocumentName())
	logging.ConfigDebug("flag overrides: file=%q backend=%q", storeFile, backendName)
	return cfg, nil
}

// openEngine opens the configured backend and loads its document.
func openEngine(cfg *config.Config) (*store.Engine, error) {
	backend, err := store.Open(cfg.Storage)
	if err != nil {
		logging.BootError("open backend: %v", err)
		return nil, err
	}
	engine := store.New(backend)
	if err := engine.Reload(); err != nil {
		logging.BootError("reload %s: %v", backend.Name(), err)
		engine.Close()
		return nil, err
	}
	logger.Debug("storage ready",
		zap.String("backend", backend.Name()),
		zap.Int("records", engine.All().Len()))
	return engine, nil
}
