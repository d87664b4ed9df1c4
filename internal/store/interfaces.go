// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-ink-keeper/models"
)

// Repositories in this package return the empty value of their entity when
// nothing is stored. An error always means the backend failed.

// Entry is a stored value together with its optimistic-locking version.
type Entry struct {
	Key     string
	Value   string
	Version int64
}

// KeyValueStore is the embedded string-keyed store of local mode. It also
// holds the cached session in cloud mode.
type KeyValueStore interface {
	// Get returns [ErrKeyNotFound] when the key is absent.
	Get(ctx context.Context, key string) (Entry, error)
	Exists(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key, value string) error
	// CompareAndSwap writes value only if the stored version equals version.
	// Version 0 means the key must not exist yet. It returns
	// [ErrVersionConflict] when another writer got there first.
	CompareAndSwap(ctx context.Context, key, value string, version int64) error
	// Update runs a read-modify-write of one key, retrying fn on conflict.
	Update(ctx context.Context, key string, fn func(current string, exists bool) (string, error)) error
	Delete(ctx context.Context, key string) error
	// Scan lists every entry whose key starts with prefix, ordered by key.
	Scan(ctx context.Context, prefix string) ([]Entry, error)
	// SetMany writes every pair in one transaction.
	SetMany(ctx context.Context, values map[string]string) error
	Close() error
}

type ProfileRepository interface {
	// GetProfile returns [ErrProfileNotFound] for an unknown id.
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
	SaveProfile(ctx context.Context, profile models.Profile) error
	SetPro(ctx context.Context, userID string, isPro bool) error
}

// SessionRepository caches the signed-in profile on this device.
type SessionRepository interface {
	// GetCurrentUser returns [ErrNoSession] when nobody is signed in.
	GetCurrentUser(ctx context.Context) (models.Profile, error)
	SetCurrentUser(ctx context.Context, profile models.Profile) error
	ClearCurrentUser(ctx context.Context) error
}

type ActivityRepository interface {
	GetActivity(ctx context.Context, userID, date string) (models.Activity, error)
	// ListActivity returns the records with from <= date <= to in ascending
	// date order. Empty bounds are open.
	ListActivity(ctx context.Context, userID, from, to string) ([]models.Activity, error)
	// UpdateActivity merges update into the stored record of the day, creating
	// it from [models.NewActivity] first.
	UpdateActivity(ctx context.Context, userID, date string, update models.ActivityUpdate) (models.Activity, error)
	// IncrementActivity adds n to one counter without losing concurrent
	// increments.
	IncrementActivity(ctx context.Context, userID, date string, counter models.ActivityCounter, n int64) (models.Activity, error)
	Totals(ctx context.Context, userID string) (models.UserStats, error)
}

type DraftRepository interface {
	GetCurrentDraft(ctx context.Context, userID string) (string, error)
	SaveCurrentDraft(ctx context.Context, userID, content string) error
	// ListSnapshots returns the history newest first.
	ListSnapshots(ctx context.Context, userID string) ([]models.DraftSnapshot, error)
	AppendSnapshot(ctx context.Context, userID string, snapshot models.DraftSnapshot) error
}

type ChatRepository interface {
	GetThread(ctx context.Context, userID, threadID string) ([]models.ChatMessage, error)
	SaveThread(ctx context.Context, userID, threadID string, messages []models.ChatMessage) error
	AppendMessage(ctx context.Context, userID, threadID string, message models.ChatMessage) error
}

type QuizRepository interface {
	// ListResults returns the answers in the order they were recorded.
	ListResults(ctx context.Context, userID string) ([]models.QuizResult, error)
	AppendResult(ctx context.Context, userID string, result models.QuizResult) error
}

type BootcampRepository interface {
	GetProgress(ctx context.Context, userID string) (models.BootcampProgress, error)
	// SaveProgress merges progress into the stored record. Completed days are
	// never removed.
	SaveProgress(ctx context.Context, userID string, progress models.BootcampProgress) error
	// CompleteDay records a submission and marks the day completed in one
	// atomic step.
	CompleteDay(ctx context.Context, userID string, day int, submission models.BootcampSubmission) (models.BootcampProgress, error)
}

type StoryRepository interface {
	GetSteps(ctx context.Context, userID, scenarioID string) ([]models.StoryStep, error)
	SaveSteps(ctx context.Context, userID, scenarioID string, steps []models.StoryStep) error
}

// CommunityRepository holds the feed shared by every user.
type CommunityRepository interface {
	// ListPosts returns posts newest first with their comments oldest first.
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, post models.Post) error
	// ToggleLike flips userID's like atomically and returns the post
	// without comments. It returns [ErrPostNotFound] for an unknown post.
	ToggleLike(ctx context.Context, postID, userID string) (models.Post, error)
	// AddComment returns [ErrPostNotFound] for an unknown post.
	AddComment(ctx context.Context, comment models.Comment) error
}

type SealRepository interface {
	ListSeals(ctx context.Context, userID string) ([]models.Seal, error)
	AppendSeal(ctx context.Context, userID string, seal models.Seal) error
	// DeleteSeal returns [ErrSealNotFound] when the user has no such seal.
	DeleteSeal(ctx context.Context, userID, sealID string) error
}

// FavoriteRepository stores a set of phrase ids per user.
type FavoriteRepository interface {
	GetFavorites(ctx context.Context, userID string) ([]int, error)
	SaveFavorites(ctx context.Context, userID string, phraseIDs []int) error
	AddFavorite(ctx context.Context, userID string, phraseID int) error
	RemoveFavorite(ctx context.Context, userID string, phraseID int) error
}

type FlyingFlowerRepository interface {
	// ListGames returns games newest first.
	ListGames(ctx context.Context, userID string) ([]models.FlyingFlowerGame, error)
	AppendGame(ctx context.Context, userID string, game models.FlyingFlowerGame) error
	HighScore(ctx context.Context, userID string) (int, error)
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
