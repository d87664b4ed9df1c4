// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ink-keeper/internal/config"
	"github.com/MKhiriev/go-ink-keeper/internal/identity"
	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/internal/store"
	"github.com/MKhiriev/go-ink-keeper/models"
)

// quotaService counts generation calls in the aiCalls field of today's
// activity record. A day without a record has made no calls yet, so the
// counter resets implicitly when the calendar date changes.
type quotaService struct {
	activity store.ActivityRepository
	identity identity.Provider

	standardLimit int64
	upgradedLimit int64

	clock  Clock
	logger *logger.Logger
}

func NewQuotaService(activity store.ActivityRepository, provider identity.Provider, cfg config.Quota, clock Clock, logger *logger.Logger) QuotaService {
	return &quotaService{
		activity:      activity,
		identity:      provider,
		standardLimit: cfg.StandardLimit,
		upgradedLimit: cfg.UpgradedLimit,
		clock:         clock,
		logger:        logger,
	}
}

// CheckQuota compares today's counter with the ceiling of the user's tier.
// The tier is looked up on every call. When the counter cannot be read the
// call is allowed and the error is returned alongside.
func (q *quotaService) CheckQuota(ctx context.Context, userID string) (bool, error) {
	limit := q.limitFor(ctx, userID)

	activity, err := q.activity.GetActivity(ctx, userID, today(q.clock))
	if err != nil {
		return true, fmt.Errorf("error reading today's activity: %w", err)
	}

	return activity.AICalls < limit, nil
}

func (q *quotaService) limitFor(ctx context.Context, userID string) int64 {
	upgraded, err := q.identity.IsUpgraded(ctx, userID)
	if err != nil {
		q.logger.Warn().Err(err).Str("func", "quotaService.limitFor").Str("user_id", userID).Msg("tier lookup failed, using standard limit")
		return q.standardLimit
	}
	if upgraded {
		return q.upgradedLimit
	}
	return q.standardLimit
}

func (q *quotaService) IncrementUsage(ctx context.Context, userID string) (models.Activity, error) {
	activity, err := q.activity.IncrementActivity(ctx, userID, today(q.clock), models.CounterAICalls, 1)
	if err != nil {
		return models.Activity{}, fmt.Errorf("error incrementing generation usage: %w", err)
	}
	return activity, nil
}
