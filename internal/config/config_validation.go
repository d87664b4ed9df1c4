// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants shared by every binary.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.Local.DSN == "" || cfg.Storage.Cloud.RequestTimeout <= 0 {
		return ErrInvalidStorageConfigs
	}

	if cfg.Quota.StandardLimit <= 0 || cfg.Quota.UpgradedLimit < cfg.Quota.StandardLimit {
		return fmt.Errorf("%w: standard=%d upgraded=%d", ErrInvalidQuotaConfigs,
			cfg.Quota.StandardLimit, cfg.Quota.UpgradedLimit)
	}

	if cfg.Workers.StudyTimerInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// ValidateServer checks the settings only the HTTP daemon needs.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
