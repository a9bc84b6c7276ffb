package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"legalteam/internal/config"
	"legalteam/internal/pkg/logger"
	"legalteam/internal/session"
)

type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Sessions *session.Store

	StartedAt time.Time
}

func New(_ context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("build logger failed: %w", err)
	}

	return &App{
		Config:    cfg,
		Logger:    log,
		Sessions:  session.NewStore(cfg.SessionTTL()),
		StartedAt: time.Now(),
	}, nil
}

func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return nil
}
