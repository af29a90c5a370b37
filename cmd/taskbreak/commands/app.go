package commands

import (
	"fmt"

	"github.com/taskbreak/taskbreak/internal/config"
	"github.com/taskbreak/taskbreak/internal/decompose"
	"github.com/taskbreak/taskbreak/internal/logger"
	"github.com/taskbreak/taskbreak/internal/storage"
	"go.uber.org/zap"
)

// app bundles the pieces every command needs: resolved configuration, the
// logger, and the goal store rooted at the configured data directory.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *storage.Store
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	zapLogger, err := logger.New(cfg.DebugMode)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := storage.New(cfg.DataDir, zapLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}

	return &app{cfg: cfg, logger: zapLogger, store: store}, nil
}

func (a *app) close() {
	_ = logger.Sync(a.logger)
}

func (a *app) provider() (decompose.Provider, error) {
	return decompose.NewProvider(a.cfg, a.logger, a.cfg.DebugMode)
}
