// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ink-keeper/internal/config"
	"github.com/MKhiriev/go-ink-keeper/internal/logger"
)

func newTestKV(t *testing.T) KeyValueStore {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.LocalStorage{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	kv := NewKeyValueStore(db, logger.Nop())
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestKV_GetMissing(t *testing.T) {
	kv := newTestKV(t)

	_, err := kv.Get(context.Background(), "ink_chat_u1_ai")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	exists, err := kv.Exists(context.Background(), "ink_chat_u1_ai")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestKV_SetBumpsVersion(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	require.NoError(t, kv.Set(ctx, "k", "v1"))
	e, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, Entry{Key: "k", Value: "v1", Version: 1}, e)

	require.NoError(t, kv.Set(ctx, "k", "v2"))
	e, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", e.Value)
	assert.EqualValues(t, 2, e.Version)
}

func TestKV_CompareAndSwap(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	require.NoError(t, kv.CompareAndSwap(ctx, "k", "first", 0))
	// key exists now, so "must not exist" fails
	assert.ErrorIs(t, kv.CompareAndSwap(ctx, "k", "again", 0), ErrVersionConflict)

	require.NoError(t, kv.CompareAndSwap(ctx, "k", "second", 1))
	// stale version
	assert.ErrorIs(t, kv.CompareAndSwap(ctx, "k", "third", 1), ErrVersionConflict)

	e, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "second", e.Value)
}

func TestKV_ScanIsPrefixAndCaseSensitive(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	for _, k := range []string{"ink_chat_u1_ai", "ink_chat_u1_li", "ink_chat_U1_ai", "ink_chat_u10_ai", "ink_seals_u1"} {
		require.NoError(t, kv.Set(ctx, k, k))
	}

	entries, err := kv.Scan(ctx, UserSubKeyPrefix(PrefixChat, "u1"))
	require.NoError(t, err)

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"ink_chat_u1_ai", "ink_chat_u1_li"}, keys)
}

func TestKV_SetManyAndDelete(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	require.NoError(t, kv.SetMany(ctx, map[string]string{"a": "1", "b": "2"}))

	entries, err := kv.Scan(ctx, "")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, kv.Delete(ctx, "a"))
	_, err = kv.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestKV_UpdateUnderContention(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	const writers = 25
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := kv.Update(ctx, "counter", func(current string, exists bool) (string, error) {
				n := 0
				if exists {
					n, _ = strconv.Atoi(current)
				}
				return strconv.Itoa(n + 1), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	e, err := kv.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(writers), e.Value)
}

func TestKV_UpdateStopsOnCallbackError(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	err := kv.Update(ctx, "k", func(string, bool) (string, error) { return "", ErrPostNotFound })
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
