// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ink-keeper/internal/adapter"
	"github.com/MKhiriev/go-ink-keeper/internal/config"
	"github.com/MKhiriev/go-ink-keeper/internal/handler"
	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/internal/server"
	"github.com/MKhiriev/go-ink-keeper/internal/service"
	"github.com/MKhiriev/go-ink-keeper/internal/store"
	"github.com/MKhiriev/go-ink-keeper/internal/workers"
	"github.com/MKhiriev/go-ink-keeper/models"
)

type App struct {
	storages *store.Storages
	services *service.Services
	server   server.Server
	workers  *workers.Workers
	logger   *logger.Logger
}

// NewApp opens the storages and wires everything on top of them. On error
// nothing is left open.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	storages, err := store.NewStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating storages: %w", err)
	}

	a, err := wire(storages, cfg, build, logger)
	if err != nil {
		_ = storages.Close()
		return nil, err
	}
	return a, nil
}

func wire(storages *store.Storages, cfg *config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	gateway, err := newGateway(cfg.Adapter, logger)
	if err != nil {
		return nil, err
	}

	services, err := service.NewServices(storages, gateway, *cfg, build, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating server: %w", err)
	}

	return &App{
		storages: storages,
		services: services,
		server:   srv,
		workers: workers.NewWorkers(
			workers.NewStudyResumeWorker(services.Data, services.StudyTimer, logger.GetChildLogger()),
		),
		logger: logger,
	}, nil
}

// newGateway returns a nil adapter when no generation URL is configured;
// generation requests then fail with service.ErrNoGenerationAdapter.
func newGateway(cfg config.Adapter, logger *logger.Logger) (adapter.GenerationAdapter, error) {
	gateway, err := adapter.NewHTTPGenerationAdapter(cfg, logger)
	if errors.Is(err, adapter.ErrNoGenerationURL) {
		logger.Warn().Msg("no generation service configured")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error creating generation adapter: %w", err)
	}
	return gateway, nil
}

// Run starts the workers and serves until ctx is cancelled or a termination
// signal arrives, then stops the study timer and closes the storages.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Str("mode", string(a.storages.Mode)).Msg("starting go-ink-keeper")

	a.workers.Run(ctx)

	runErr := a.server.RunServer(ctx)

	a.services.StudyTimer.Stop()
	closeErr := a.storages.Close()
	if closeErr != nil {
		a.logger.Error().Err(closeErr).Msg("error closing storages")
	}

	return errors.Join(runErr, closeErr)
}
