// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/models"
)

// activityRepository keeps one row per (user_id, date). Counter updates are
// single upsert statements, so concurrent increments never lose each other.
type activityRepository struct {
	*DB
	logger *logger.Logger
}

func NewActivityRepository(db *DB, logger *logger.Logger) ActivityRepository {
	logger.Debug().Msg("creating activity repository")
	return &activityRepository{DB: db, logger: logger}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (models.Activity, error) {
	var a models.Activity
	err := row.Scan(&a.Date, &a.Minutes, &a.WordsWritten, &a.LettersSent, &a.LoginCount, &a.AICalls)
	return a, err
}

func (r *activityRepository) GetActivity(ctx context.Context, userID, date string) (models.Activity, error) {
	var a models.Activity
	err := r.withRetry(ctx, func(ctx context.Context) (err error) {
		a, err = scanActivity(r.DB.QueryRowContext(ctx, getActivity, userID, date))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewActivity(date), nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "activityRepository.GetActivity").
			Str("user_id", userID).
			Str("date", date).
			Msg("failed to read activity")
		return models.NewActivity(date), fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return a, nil
}

func (r *activityRepository) ListActivity(ctx context.Context, userID, from, to string) ([]models.Activity, error) {
	log := logger.FromContext(ctx)

	builder := psql.Select(activityColumns).
		From("user_activity").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date")
	if from != "" {
		builder = builder.Where(sq.GtOrEq{"date": from})
	}
	if to != "" {
		builder = builder.Where(sq.LtOrEq{"date": to})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "activityRepository.ListActivity").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "activityRepository.ListActivity").Str("user_id", userID).Msg("failed to list activity")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]models.Activity, 0, 31)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return out, nil
}

func (r *activityRepository) UpdateActivity(ctx context.Context, userID, date string, u models.ActivityUpdate) (models.Activity, error) {
	a, err := scanActivity(r.DB.QueryRowContext(ctx, mergeActivity, userID, date,
		u.Minutes, u.WordsWritten, u.LettersSent, u.LoginCount, u.AICalls))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "activityRepository.UpdateActivity").
			Str("user_id", userID).
			Str("date", date).
			Msg("failed to merge activity")
		return models.Activity{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return a, nil
}

func (r *activityRepository) IncrementActivity(ctx context.Context, userID, date string, counter models.ActivityCounter, n int64) (models.Activity, error) {
	if !counter.Valid() {
		return models.Activity{}, fmt.Errorf("%w: unknown activity counter %q", ErrBuildingSQLQuery, counter)
	}

	// value of the column on a day that has no row yet
	initial := models.NewActivity(date).Add(counter, n)
	var initialValue int64
	switch counter {
	case models.CounterLoginCount:
		initialValue = initial.LoginCount
	default:
		initialValue = n
	}

	query := fmt.Sprintf(incrementActivity, string(counter))
	a, err := scanActivity(r.DB.QueryRowContext(ctx, query, userID, date, n, initialValue))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "activityRepository.IncrementActivity").
			Str("user_id", userID).
			Str("counter", string(counter)).
			Msg("failed to increment activity")
		return models.Activity{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return a, nil
}

func (r *activityRepository) Totals(ctx context.Context, userID string) (models.UserStats, error) {
	var stats models.UserStats
	err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, activityTotals, userID).Scan(&stats.Minutes, &stats.Words, &stats.Days)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "activityRepository.Totals").Str("user_id", userID).Msg("failed to sum activity")
		return models.UserStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return stats, nil
}
