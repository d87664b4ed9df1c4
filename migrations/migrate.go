// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the schema of both storage backends and applies
// it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed local/*.sql cloud/*.sql
var embedMigrations embed.FS

// goose keeps base FS and dialect in package globals.
var mu sync.Mutex

// MigrateLocal applies the embedded key-value schema to an SQLite database.
func MigrateLocal(db *sql.DB) error {
	return migrate(db, "sqlite3", "local")
}

// MigrateCloud applies the relational schema to a PostgreSQL database.
func MigrateCloud(db *sql.DB) error {
	return migrate(db, "pgx", "cloud")
}

func migrate(db *sql.DB, dialect, dir string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
