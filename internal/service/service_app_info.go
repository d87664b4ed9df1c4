// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-ink-keeper/internal/config"
	"github.com/MKhiriev/go-ink-keeper/models"
)

type appInfoService struct {
	info models.AppInfo
}

// NewAppInfoService describes the running binary. The configured version
// wins over the one linked into the build.
func NewAppInfoService(cfg config.App, build models.AppBuildInfo, mode models.StorageMode) (AppInfoService, error) {
	version := cfg.Version
	if version == "" {
		version = build.BuildVersion()
	}
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		info: models.AppInfo{
			Version: version,
			Date:    build.BuildDate(),
			Commit:  build.BuildCommit(),
			Mode:    mode,
		},
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.info.Version
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.AppInfo {
	return s.info
}
