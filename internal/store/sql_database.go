// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/migrations"
	"github.com/sethvargo/go-retry"
)

// DB wraps a *sql.DB with the classifier used to decide which failures are
// worth another attempt.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	dialect            string
}

const (
	dialectSQLite   = "sqlite3"
	dialectPostgres = "pgx"
)

// Migrate applies the schema that matches the database dialect.
func (db *DB) Migrate() error {
	if db.dialect == dialectPostgres {
		return migrations.MigrateCloud(db.DB)
	}
	return migrations.MigrateLocal(db.DB)
}

// withRetry runs fn again while it fails with an error the classifier marks
// as [Retryable]. Other errors are returned at once.
func (db *DB) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	if db.errorClassificator == nil {
		return fn(ctx)
	}

	backoff := retry.WithMaxRetries(3, retry.NewExponential(50*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && db.errorClassificator.Classify(err) == Retryable {
			logger.FromContext(ctx).Warn().Err(err).Msg("retrying database call")
			return retry.RetryableError(err)
		}
		return err
	})
}
