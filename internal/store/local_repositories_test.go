// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ink-keeper/models"
)

func ptr[T any](v T) *T { return &v }

func TestLocalActivity_MergeAndIncrement(t *testing.T) {
	ctx := context.Background()
	repo := NewLocalActivityRepository(newTestKV(t))

	// missing day reads as a fresh record
	a, err := repo.GetActivity(ctx, "u1", "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, models.NewActivity("2026-10-19"), a)

	a, err = repo.UpdateActivity(ctx, "u1", "2026-10-19", models.ActivityUpdate{Minutes: ptr(int64(30))})
	require.NoError(t, err)
	assert.EqualValues(t, 30, a.Minutes)
	assert.EqualValues(t, 1, a.LoginCount)

	a, err = repo.UpdateActivity(ctx, "u1", "2026-10-19", models.ActivityUpdate{WordsWritten: ptr(int64(120))})
	require.NoError(t, err)
	assert.EqualValues(t, 30, a.Minutes, "unrelated fields survive a partial update")
	assert.EqualValues(t, 120, a.WordsWritten)

	a, err = repo.IncrementActivity(ctx, "u1", "2026-10-19", models.CounterAICalls, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, a.AICalls)

	_, err = repo.IncrementActivity(ctx, "u1", "2026-10-19", models.ActivityCounter("bogus"), 1)
	assert.Error(t, err)
}

func TestLocalActivity_ListAndTotals(t *testing.T) {
	ctx := context.Background()
	repo := NewLocalActivityRepository(newTestKV(t))

	for i, date := range []string{"2026-10-17", "2026-10-15", "2026-10-19"} {
		_, err := repo.IncrementActivity(ctx, "u1", date, models.CounterMinutes, int64(10*(i+1)))
		require.NoError(t, err)
		_, err = repo.IncrementActivity(ctx, "u1", date, models.CounterWords, 100)
		require.NoError(t, err)
	}
	_, err := repo.IncrementActivity(ctx, "u2", "2026-10-19", models.CounterMinutes, 999)
	require.NoError(t, err)

	list, err := repo.ListActivity(ctx, "u1", "2026-10-16", "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-10-17", list[0].Date)
	assert.Equal(t, "2026-10-19", list[1].Date)

	stats, err := repo.Totals(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.UserStats{Minutes: 60, Words: 300, Days: 3}, stats)
}

func TestLocalActivity_ConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	repo := NewLocalActivityRepository(newTestKV(t))

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementActivity(ctx, "u1", "2026-10-19", models.CounterAICalls, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	a, err := repo.GetActivity(ctx, "u1", "2026-10-19")
	require.NoError(t, err)
	assert.EqualValues(t, 20, a.AICalls)
}

func TestLocalDrafts(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	repo := NewLocalDraftRepository(kv)

	draft, err := repo.GetCurrentDraft(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, draft)

	require.NoError(t, repo.SaveCurrentDraft(ctx, "u1", "见字如面"))
	draft, err = repo.GetCurrentDraft(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "见字如面", draft)

	// stored raw, not JSON-quoted
	e, err := kv.Get(ctx, "ink_draft_current_u1")
	require.NoError(t, err)
	assert.Equal(t, "见字如面", e.Value)

	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AppendSnapshot(ctx, "u1", models.DraftSnapshot{ID: "s1", CreatedAt: base}))
	require.NoError(t, repo.AppendSnapshot(ctx, "u1", models.DraftSnapshot{ID: "s2", CreatedAt: base.Add(time.Minute)}))

	snaps, err := repo.ListSnapshots(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "s2", snaps[0].ID)
}

func TestLocalChat_AppendKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewLocalChatRepository(newTestKV(t))

	msgs, err := repo.GetThread(ctx, "u1", "ai")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	require.NoError(t, repo.AppendMessage(ctx, "u1", "ai", models.ChatMessage{ID: "m1", Sender: models.SenderUser}))
	require.NoError(t, repo.AppendMessage(ctx, "u1", "ai", models.ChatMessage{ID: "m2", Sender: models.SenderAI}))

	msgs, err = repo.GetThread(ctx, "u1", "ai")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m1", msgs[0].ID)

	// threads are independent
	other, err := repo.GetThread(ctx, "u1", "li_bai")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestLocalBootcamp_CompleteDay(t *testing.T) {
	ctx := context.Background()
	repo := NewLocalBootcampRepository(newTestKV(t))

	p, err := repo.GetProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, p.CompletedDays)
	assert.NotNil(t, p.Submissions)

	_, err = repo.CompleteDay(ctx, "u1", 3, models.BootcampSubmission{Input: "a"})
	require.NoError(t, err)
	_, err = repo.CompleteDay(ctx, "u1", 1, models.BootcampSubmission{Input: "b"})
	require.NoError(t, err)
	p, err = repo.CompleteDay(ctx, "u1", 3, models.BootcampSubmission{Input: "c", Feedback: "good"})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, p.CompletedDays)
	assert.Equal(t, "c", p.Submissions[3].Input)

	stored, err := repo.GetProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, p, stored)
}

func TestLocalBootcamp_SaveProgressKeepsCompletedDays(t *testing.T) {
	ctx := context.Background()
	repo := NewLocalBootcampRepository(newTestKV(t))

	_, err := repo.CompleteDay(ctx, "u1", 1, models.BootcampSubmission{Input: "a"})
	require.NoError(t, err)
	_, err = repo.CompleteDay(ctx, "u1", 2, models.BootcampSubmission{Input: "b"})
	require.NoError(t, err)

	err = repo.SaveProgress(ctx, "u1", models.BootcampProgress{
		CompletedDays: []int{1, 1, 4},
		Submissions:   map[int]models.BootcampSubmission{1: {Input: "a2"}, 4: {Input: "d"}},
	})
	require.NoError(t, err)

	p, err := repo.GetProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4}, p.CompletedDays)
	assert.Equal(t, "a2", p.Submissions[1].Input)
	assert.Equal(t, "b", p.Submissions[2].Input)
	assert.Equal(t, "d", p.Submissions[4].Input)
}

func TestLocalSeals_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewLocalSealRepository(newTestKV(t))

	require.NoError(t, repo.AppendSeal(ctx, "u1", models.Seal{ID: "s1", Text: "墨"}))
	require.NoError(t, repo.AppendSeal(ctx, "u1", models.Seal{ID: "s2", Text: "香"}))

	require.NoError(t, repo.DeleteSeal(ctx, "u1", "s1"))
	assert.ErrorIs(t, repo.DeleteSeal(ctx, "u1", "s1"), ErrSealNotFound)

	seals, err := repo.ListSeals(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, seals, 1)
	assert.Equal(t, "s2", seals[0].ID)
}

func TestLocalFavorites_SetSemantics(t *testing.T) {
	ctx := context.Background()
	repo := NewLocalFavoriteRepository(newTestKV(t))

	require.NoError(t, repo.AddFavorite(ctx, "u1", 7))
	require.NoError(t, repo.AddFavorite(ctx, "u1", 3))
	require.NoError(t, repo.AddFavorite(ctx, "u1", 7))

	favs, err := repo.GetFavorites(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7}, favs)

	require.NoError(t, repo.RemoveFavorite(ctx, "u1", 3))
	require.NoError(t, repo.RemoveFavorite(ctx, "u1", 42))
	require.NoError(t, repo.SaveFavorites(ctx, "u1", []int{5, 5, 1}))

	favs, err = repo.GetFavorites(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5}, favs)
}

func TestLocalFlyingFlower_HighScore(t *testing.T) {
	ctx := context.Background()
	repo := NewLocalFlyingFlowerRepository(newTestKV(t))

	best, err := repo.HighScore(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, best)

	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	for i, score := range []int{4, 9, 2} {
		require.NoError(t, repo.AppendGame(ctx, "u1", models.FlyingFlowerGame{
			ID: fmt.Sprintf("g%d", i), Keyword: "花", Score: score, Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	best, err = repo.HighScore(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 9, best)

	games, err := repo.ListGames(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, "g2", games[0].ID)
}

func TestLocalProfileAndSession(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	profiles := NewLocalProfileRepository(kv)
	sessions := NewSessionRepository(kv)

	_, err := profiles.GetProfile(ctx, "u1")
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.ErrorIs(t, profiles.SetPro(ctx, "u1", true), ErrProfileNotFound)

	p := models.Profile{ID: "u1", Name: "Su Shi"}
	require.NoError(t, profiles.SaveProfile(ctx, p))
	require.NoError(t, profiles.SetPro(ctx, "u1", true))

	got, err := profiles.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, got.IsPro)

	_, err = sessions.GetCurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, sessions.SetCurrentUser(ctx, got))
	current, err := sessions.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", current.ID)

	require.NoError(t, sessions.ClearCurrentUser(ctx))
	_, err = sessions.GetCurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestKeyedRecord_UnreadableValueFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	require.NoError(t, kv.Set(ctx, "ink_quiz_history_u1", "{not json"))

	results, err := NewLocalQuizRepository(kv).ListResults(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestKeyedRecord_UpdateKeepsUnreadableValue(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	require.NoError(t, kv.Set(ctx, "ink_chat_u1_ai", "{not json"))

	err := NewLocalChatRepository(kv).AppendMessage(ctx, "u1", "ai", models.ChatMessage{ID: "m1", Content: "hi"})
	assert.ErrorIs(t, err, ErrEncodingValue)

	entry, err := kv.Get(ctx, "ink_chat_u1_ai")
	require.NoError(t, err)
	assert.Equal(t, "{not json", entry.Value, "the stored thread is not replaced")
}
