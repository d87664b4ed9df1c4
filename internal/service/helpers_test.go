// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-ink-keeper/internal/config"
	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/internal/store"
	"github.com/stretchr/testify/require"
)

var testAppConfig = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "go-ink-keeper-test",
	TokenDuration: time.Hour,
	Version:       "test",
}

// testClock is a settable Clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// newTestStorages opens local-mode storages on an in-memory database.
func newTestStorages(t *testing.T) *store.Storages {
	t.Helper()

	db, err := store.NewConnectSQLite(context.Background(), config.LocalStorage{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	storages := store.NewLocalStorages(store.NewKeyValueStore(db, logger.Nop()))
	t.Cleanup(func() { _ = storages.Close() })
	return storages
}

type testEnv struct {
	storages *store.Storages
	clock    *testClock
	sessions SessionService
	quota    QuotaService
	data     DataService
}

func newTestEnv(t *testing.T, limits config.Quota) *testEnv {
	t.Helper()

	storages := newTestStorages(t)
	clock := newTestClock()
	log := logger.Nop()

	sessions := NewSessionService(storages, testAppConfig, clock.Now, log)
	quota := NewQuotaService(storages.Activity, sessions, limits, clock.Now, log)
	data := NewDataService(DataServiceDeps{
		Storages:       storages,
		Sessions:       sessions,
		Quota:          quota,
		Community:      NewCommunityService(storages.Community, clock.Now, log),
		Backup:         NewBackupService(storages.Local, storages.Mode, log),
		Clock:          clock.Now,
		RequestTimeout: 5 * time.Second,
	}, log)

	return &testEnv{storages: storages, clock: clock, sessions: sessions, quota: quota, data: data}
}

func ptr[T any](v T) *T { return &v }
