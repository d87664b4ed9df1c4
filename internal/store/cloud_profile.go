// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/models"
)

// profileRepository is the PostgreSQL-backed implementation of
// [ProfileRepository] over the "profiles" table.
type profileRepository struct {
	*DB
	logger *logger.Logger
}

func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{DB: db, logger: logger}
}

func (r *profileRepository) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	log := logger.FromContext(ctx)

	var p models.Profile
	err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, getProfile, userID).
			Scan(&p.ID, &p.Name, &p.StyleName, &p.AvatarColor, &p.IsPro, &p.JoinedDate)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "profileRepository.GetProfile").Str("user_id", userID).Msg("failed to read profile")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return p, nil
}

func (r *profileRepository) SaveProfile(ctx context.Context, p models.Profile) error {
	err := r.withRetry(ctx, func(ctx context.Context) error {
		_, err := r.DB.ExecContext(ctx, saveProfile, p.ID, p.Name, p.StyleName, p.AvatarColor, p.IsPro, p.JoinedDate)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "profileRepository.SaveProfile").Str("user_id", p.ID).Msg("failed to save profile")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *profileRepository) SetPro(ctx context.Context, userID string, isPro bool) error {
	log := logger.FromContext(ctx)

	var res sql.Result
	err := r.withRetry(ctx, func(ctx context.Context) (err error) {
		res, err = r.DB.ExecContext(ctx, setProfilePro, userID, isPro)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "profileRepository.SetPro").Str("user_id", userID).Msg("failed to update tier")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrProfileNotFound
	}
	return nil
}
