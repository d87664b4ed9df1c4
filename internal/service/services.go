// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-ink-keeper/internal/adapter"
	"github.com/MKhiriev/go-ink-keeper/internal/config"
	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/internal/store"
	"github.com/MKhiriev/go-ink-keeper/models"
)

type Services struct {
	Data           DataService
	Sessions       SessionService
	Generation     GenerationService
	StudyTimer     StudyTimer
	AppInfoService AppInfoService
}

// NewServices wires every service to storages. gateway may be nil when no
// generation service is configured.
func NewServices(storages *store.Storages, gateway adapter.GenerationAdapter, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, storages.Mode)
	if err != nil {
		return nil, err
	}

	sessions := NewSessionService(storages, cfg.App, SystemClock, logger)
	quota := NewQuotaService(storages.Activity, sessions, cfg.Quota, SystemClock, logger)

	data := NewDataService(DataServiceDeps{
		Storages:       storages,
		Sessions:       sessions,
		Quota:          quota,
		Community:      NewCommunityService(storages.Community, SystemClock, logger),
		Backup:         NewBackupService(storages.Local, storages.Mode, logger),
		Clock:          SystemClock,
		RequestTimeout: cfg.Storage.Cloud.RequestTimeout,
	}, logger)

	return &Services{
		Data:           data,
		Sessions:       sessions,
		Generation:     NewGenerationService(quota, gateway, logger),
		StudyTimer:     NewStudyTimer(data, cfg.Workers.StudyTimerInterval, logger),
		AppInfoService: appInfo,
	}, nil
}
