// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ink-keeper/internal/adapter"
	"github.com/MKhiriev/go-ink-keeper/internal/logger"
)

type generationService struct {
	quota   QuotaService
	gateway adapter.GenerationAdapter

	logger *logger.Logger
}

// NewGenerationService guards gateway with quota. A nil gateway makes every
// call fail with [ErrNoGenerationAdapter].
func NewGenerationService(quota QuotaService, gateway adapter.GenerationAdapter, logger *logger.Logger) GenerationService {
	return &generationService{quota: quota, gateway: gateway, logger: logger}
}

func (g *generationService) Generate(ctx context.Context, userID, prompt string) (string, error) {
	if g.gateway == nil {
		return "", ErrNoGenerationAdapter
	}

	allowed, err := g.quota.CheckQuota(ctx, userID)
	if err != nil {
		g.logger.Warn().Err(err).Str("func", "generationService.Generate").Str("user_id", userID).Msg("quota check degraded")
	}
	if !allowed {
		return "", ErrQuotaExceeded
	}

	text, err := g.gateway.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	if _, err = g.quota.IncrementUsage(ctx, userID); err != nil {
		// the text is returned even when the count is lost
		g.logger.Err(err).Str("func", "generationService.Generate").Str("user_id", userID).Msg("failed to count generation call")
	}

	return text, nil
}
