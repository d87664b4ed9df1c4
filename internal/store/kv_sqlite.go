// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/sethvargo/go-retry"
)

// kvStore is the SQLite implementation of [KeyValueStore]. Every row carries
// a version that is bumped on each write, which is what CompareAndSwap and
// Update rely on.
type kvStore struct {
	*DB
	logger *logger.Logger

	// maxAttempts bounds Update under contention.
	maxAttempts uint64
}

// NewKeyValueStore wraps an already migrated SQLite connection.
func NewKeyValueStore(db *DB, log *logger.Logger) KeyValueStore {
	log.Debug().Msg("creating key-value store")
	return &kvStore{
		DB:          db,
		logger:      log,
		maxAttempts: 100,
	}
}

func (s *kvStore) Get(ctx context.Context, key string) (Entry, error) {
	log := logger.FromContext(ctx)

	var e Entry
	err := s.DB.QueryRowContext(ctx, kvGet, key).Scan(&e.Key, &e.Value, &e.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrKeyNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "kvStore.Get").Str("key", key).Msg("failed to read key")
		return Entry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return e, nil
}

func (s *kvStore) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	if err := s.DB.QueryRowContext(ctx, kvExists, key).Scan(&exists); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "kvStore.Exists").Str("key", key).Msg("failed to check key")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return exists, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.DB.ExecContext(ctx, kvSet, key, value); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "kvStore.Set").Str("key", key).Msg("failed to write key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *kvStore) CompareAndSwap(ctx context.Context, key, value string, version int64) error {
	log := logger.FromContext(ctx)

	var (
		res sql.Result
		err error
	)
	if version == 0 {
		res, err = s.DB.ExecContext(ctx, kvInsertIfAbsent, key, value)
	} else {
		res, err = s.DB.ExecContext(ctx, kvUpdateIfVersion, value, key, version)
	}
	if err != nil {
		log.Err(err).Str("func", "kvStore.CompareAndSwap").Str("key", key).Msg("failed to swap key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrVersionConflict
	}

	return nil
}

func (s *kvStore) Update(ctx context.Context, key string, fn func(current string, exists bool) (string, error)) error {
	backoff := retry.WithMaxRetries(s.maxAttempts,
		retry.WithCappedDuration(20*time.Millisecond,
			retry.WithJitter(time.Millisecond, retry.NewExponential(time.Millisecond))))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		current, err := s.Get(ctx, key)
		exists := err == nil
		if err != nil && !errors.Is(err, ErrKeyNotFound) {
			return err
		}

		next, err := fn(current.Value, exists)
		if err != nil {
			return err
		}

		err = s.CompareAndSwap(ctx, key, next, current.Version)
		if errors.Is(err, ErrVersionConflict) {
			logger.FromContext(ctx).Debug().Str("key", key).Msg("concurrent write, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, kvDelete, key); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "kvStore.Delete").Str("key", key).Msg("failed to delete key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *kvStore) Scan(ctx context.Context, prefix string) ([]Entry, error) {
	log := logger.FromContext(ctx)

	rows, err := s.DB.QueryContext(ctx, kvScan, prefix)
	if err != nil {
		log.Err(err).Str("func", "kvStore.Scan").Str("prefix", prefix).Msg("failed to scan prefix")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, 16)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value, &e.Version); err != nil {
			log.Err(err).Str("func", "kvStore.Scan").Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "kvStore.Scan").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// SetMany writes all values or none of them.
func (s *kvStore) SetMany(ctx context.Context, values map[string]string) error {
	log := logger.FromContext(ctx)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "kvStore.SetMany").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, kvSet)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	defer stmt.Close()

	for key, value := range values {
		if _, err := stmt.ExecContext(ctx, key, value); err != nil {
			log.Err(err).Str("func", "kvStore.SetMany").Str("key", key).Msg("failed to write key")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "kvStore.SetMany").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *kvStore) Close() error {
	return s.DB.Close()
}
