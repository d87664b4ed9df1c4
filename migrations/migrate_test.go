// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCloud_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // no expectations: goose's first query must fail

	err = MigrateCloud(db)
	if err == nil {
		t.Fatal("expected error from MigrateCloud, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	for name, fn := range map[string]func(*sql.DB) error{"local": MigrateLocal, "cloud": MigrateCloud} {
		err := fn(db)
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "db is nil", name)
	}
}

func TestMigrateLocal_CreatesKVTable(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	require.NoError(t, MigrateLocal(db))
	// second run is a no-op
	require.NoError(t, MigrateLocal(db))

	_, err = db.Exec(`INSERT INTO kv (key, value) VALUES ('k', 'v')`)
	require.NoError(t, err)

	var version int
	require.NoError(t, db.QueryRow(`SELECT version FROM kv WHERE key = 'k'`).Scan(&version))
	assert.Equal(t, 1, version)
}
