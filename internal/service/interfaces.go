// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-ink-keeper/internal/identity"
	"github.com/MKhiriev/go-ink-keeper/models"
)

// DataService is the single entry point of the UI. Every call is bounded by
// the storage request timeout and behaves the same in local and cloud mode.
//
// Read methods never fail: an unreachable backend yields the empty value of
// the entity. Write methods report every failure.
type DataService interface {
	Mode() models.StorageMode

	Register(ctx context.Context, profile models.Profile) (models.Session, error)
	Login(ctx context.Context, userID string) (models.Session, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.Profile, error)
	Upgrade(ctx context.Context, userID string) (models.Profile, error)

	GetActivity(ctx context.Context, userID, date string) models.Activity
	UpdateActivity(ctx context.Context, userID string, update models.ActivityUpdate) (models.Activity, error)
	GetRecentActivity(ctx context.Context, userID string, days int) []models.Activity
	GetUserStats(ctx context.Context, userID string) models.UserStats
	AddStudyMinutes(ctx context.Context, userID string, minutes int64) error

	CheckQuota(ctx context.Context, userID string) bool
	IncrementUsage(ctx context.Context, userID string) error

	GetCurrentDraft(ctx context.Context, userID string) string
	SaveCurrentDraft(ctx context.Context, userID, content string) error
	GetDraftHistory(ctx context.Context, userID string) []models.DraftSnapshot
	SaveDraftSnapshot(ctx context.Context, userID, content string) (models.DraftSnapshot, error)

	GetChat(ctx context.Context, userID, threadID string) []models.ChatMessage
	SaveChat(ctx context.Context, userID, threadID string, messages []models.ChatMessage) error
	AppendChatMessage(ctx context.Context, userID, threadID string, message models.ChatMessage) (models.ChatMessage, error)

	GetQuizHistory(ctx context.Context, userID string) []models.QuizResult
	SaveQuizResult(ctx context.Context, userID string, result models.QuizResult) error

	GetBootcampProgress(ctx context.Context, userID string) models.BootcampProgress
	// SaveBootcampProgress merges progress into what is stored; see [models.BootcampProgress.Merge].
	SaveBootcampProgress(ctx context.Context, userID string, progress models.BootcampProgress) error
	SubmitBootcampDay(ctx context.Context, userID string, day int, submission models.BootcampSubmission) (models.BootcampProgress, error)

	GetStoryProgress(ctx context.Context, userID, scenarioID string) []models.StoryStep
	SaveStoryProgress(ctx context.Context, userID, scenarioID string, steps []models.StoryStep) error

	ListPosts(ctx context.Context) []models.Post
	CreatePost(ctx context.Context, userID, content string, author models.Author) (models.Post, error)
	ToggleLike(ctx context.Context, userID, postID string) (models.Post, error)
	AddComment(ctx context.Context, userID, postID, content, authorName string) (models.Comment, error)

	GetSeals(ctx context.Context, userID string) []models.Seal
	SaveSeal(ctx context.Context, userID string, seal models.Seal) (models.Seal, error)
	DeleteSeal(ctx context.Context, userID, sealID string) error

	GetFavorites(ctx context.Context, userID string) []int
	SaveFavorites(ctx context.Context, userID string, phraseIDs []int) error
	AddFavorite(ctx context.Context, userID string, phraseID int) error
	RemoveFavorite(ctx context.Context, userID string, phraseID int) error

	SaveFlyingFlowerGame(ctx context.Context, userID string, game models.FlyingFlowerGame) (models.FlyingFlowerGame, error)
	GetFlyingFlowerGames(ctx context.Context, userID string) []models.FlyingFlowerGame
	GetFlyingFlowerHighscore(ctx context.Context, userID string) int

	ExportAll(ctx context.Context, userID string) (models.BackupDocument, error)
	ImportAll(ctx context.Context, document []byte) bool
}

// SessionService keeps the signed-in profile of this device and issues the
// tokens of the HTTP API. It is the [identity.Provider] of the application.
type SessionService interface {
	identity.Provider

	Register(ctx context.Context, profile models.Profile) (models.Session, error)
	Login(ctx context.Context, userID string) (models.Session, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.Profile, error)
	Upgrade(ctx context.Context, userID string) (models.Profile, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// QuotaService caps generation calls per user and calendar day.
type QuotaService interface {
	// CheckQuota reports whether one more call is allowed today.
	CheckQuota(ctx context.Context, userID string) (bool, error)
	// IncrementUsage counts one successful call.
	IncrementUsage(ctx context.Context, userID string) (models.Activity, error)
}

type CommunityService interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, userID, content string, author models.Author) (models.Post, error)
	ToggleLike(ctx context.Context, userID, postID string) (models.Post, error)
	AddComment(ctx context.Context, userID, postID, content, authorName string) (models.Comment, error)
}

// BackupService moves the embedded-store records of one user in and out of
// a portable document.
type BackupService interface {
	ExportAll(ctx context.Context, userID string) (models.BackupDocument, error)
	// ImportAll reports false and changes nothing when document is malformed.
	ImportAll(ctx context.Context, document []byte) bool
}

// GenerationService calls the generation gateway behind the quota guard.
type GenerationService interface {
	// Generate returns [ErrQuotaExceeded] without calling the gateway when the
	// user is out of quota. A failed call is not counted.
	Generate(ctx context.Context, userID, prompt string) (string, error)
}

// StudyTimer credits study minutes while a session is open.
type StudyTimer interface {
	Start(ctx context.Context, userID string)
	Stop()
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetAppInfo(ctx context.Context) models.AppInfo
}
