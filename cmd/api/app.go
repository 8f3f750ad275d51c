package main

import (
	"fmt"

	"brand-insights-go/internal/backend"
	"brand-insights-go/internal/config"
	"brand-insights-go/internal/logger"
	"brand-insights-go/internal/session"
)

type app struct {
	cfg     *config.Config
	log     *logger.Logger
	session *session.Session
}

// newApp loads configuration and wires the backend client into a session.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log := logger.New(cfg.App.Environment, cfg.App.LogLevel)

	client, err := backend.NewClient(cfg.Backend, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	return &app{
		cfg:     cfg,
		log:     log,
		session: session.New(client, cfg.Chart.TopK, log),
	}, nil
}
