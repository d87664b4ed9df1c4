// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ink-keeper/internal/config"
	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/internal/service"
	"github.com/MKhiriev/go-ink-keeper/models"
)

func testConfig(t *testing.T) *config.StructuredConfig {
	t.Helper()
	return &config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "app-test-key",
			TokenIssuer:   "go-ink-keeper-test",
			TokenDuration: time.Hour,
			Version:       "0.0.1",
		},
		Storage: config.Storage{
			Local: config.LocalStorage{DSN: filepath.Join(t.TempDir(), "ink.db")},
			Cloud: config.CloudStorage{RequestTimeout: time.Second},
		},
		Server:  config.Server{HTTPAddress: "127.0.0.1:0", RequestTimeout: time.Second},
		Quota:   config.Quota{StandardLimit: 1, UpgradedLimit: 2},
		Workers: config.Workers{StudyTimerInterval: time.Hour},
	}
}

func TestNewApp_LocalModeWithoutGateway(t *testing.T) {
	a, err := NewApp(context.Background(), testConfig(t), models.NewAppBuildInfo("v1", "", ""), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.storages.Close() })

	assert.Equal(t, models.ModeLocal, a.storages.Mode)
	assert.NotNil(t, a.server)
	assert.NotNil(t, a.workers)

	_, err = a.services.Generation.Generate(context.Background(), "u1", "hello")
	assert.ErrorIs(t, err, service.ErrNoGenerationAdapter)
}

func TestNewApp_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *config.StructuredConfig)
	}{
		{
			name:   "no HTTP address",
			modify: func(cfg *config.StructuredConfig) { cfg.Server.HTTPAddress = "" },
		},
		{
			name:   "malformed generation URL",
			modify: func(cfg *config.StructuredConfig) { cfg.Adapter.GenerationURL = "http://%zz" },
		},
		{
			name: "unopenable local store",
			modify: func(cfg *config.StructuredConfig) {
				cfg.Storage.Local.DSN = filepath.Join(t.TempDir(), "missing", "dir", "ink.db")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.modify(cfg)

			a, err := NewApp(context.Background(), cfg, models.AppBuildInfo{}, logger.Nop())

			assert.Error(t, err)
			assert.Nil(t, a)
		})
	}
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	a, err := NewApp(context.Background(), cfg, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)

	_, err = a.services.Sessions.Register(context.Background(), models.Profile{ID: "u1", Name: "Ann"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()
	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("app did not stop")
	}

	// the session outlives the process
	again, err := NewApp(context.Background(), cfg, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = again.storages.Close() })

	profile, err := again.services.Data.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.ID)
}
