// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	_, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestBuild_DefaultsOnly(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, DefaultLocalDSN, cfg.Storage.Local.DSN)
	assert.Empty(t, cfg.Storage.Cloud.DSN)
	assert.Equal(t, 5*time.Second, cfg.Storage.Cloud.RequestTimeout)
	assert.EqualValues(t, 20, cfg.Quota.StandardLimit)
	assert.EqualValues(t, 200, cfg.Quota.UpgradedLimit)
	assert.Equal(t, time.Minute, cfg.Workers.StudyTimerInterval)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// Первый источник побеждает: флаги перекрывают JSON, JSON перекрывает defaults.
func TestBuild_SourcePriority(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"storage": map[string]any{"local": map[string]any{"dsn": "from-json.db"}},
		"quota":   map[string]any{"standard_limit": 10, "upgraded_limit": 100},
		"app":     map[string]any{"version": "1.2.3"},
	})

	cfg, err := newConfigBuilder().
		withArgs([]string{"-l", "from-flags.db", "-c", path}).
		withJSON().
		withDefaults().
		build()
	require.NoError(t, err)

	assert.Equal(t, "from-flags.db", cfg.Storage.Local.DSN)
	assert.EqualValues(t, 10, cfg.Quota.StandardLimit)
	assert.EqualValues(t, 100, cfg.Quota.UpgradedLimit)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
}

func TestBuild_InvertedQuotaLimits(t *testing.T) {
	cfg, err := newConfigBuilder().
		withArgs([]string{"-standard-limit", "50", "-upgraded-limit", "5"}).
		withDefaults().
		build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuotaConfigs)
	assert.NotNil(t, cfg)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder().withArgs(nil).withJSON()
	require.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder().withArgs([]string{"-config", "/does/not/exist.json"}).withJSON()
	require.Error(t, b.err)
	assert.Contains(t, b.err.Error(), "error reading a json file")
}

func TestWithArgs_UnknownFlag(t *testing.T) {
	b := newConfigBuilder().withArgs([]string{"-unknown"})
	require.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── ValidateServer ────────────────────────────────────────────────────────────

func TestValidateServer(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "ok", mutate: func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "secret" }},
		{name: "missing sign key", mutate: func(cfg *StructuredConfig) {}, wantErr: ErrInvalidAppConfigs},
		{
			name: "missing address",
			mutate: func(cfg *StructuredConfig) {
				cfg.App.TokenSignKey = "secret"
				cfg.Server.HTTPAddress = ""
			},
			wantErr: ErrInvalidServerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			err := cfg.ValidateServer()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
