// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-ink-keeper/internal/identity"
	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/internal/store"
	"github.com/MKhiriev/go-ink-keeper/internal/utils"
	"github.com/MKhiriev/go-ink-keeper/internal/validators"
	"github.com/MKhiriev/go-ink-keeper/models"
)

// maxRecentDays bounds GetRecentActivity.
const maxRecentDays = 366

// dataService routes every call to the repositories of the backend chosen at
// startup and applies the failure policy of [DataService].
type dataService struct {
	storages *store.Storages

	sessions  SessionService
	quota     QuotaService
	community CommunityService
	backup    BackupService

	validator validators.Validator
	ids       *utils.UUIDGenerator
	clock     Clock

	requestTimeout time.Duration

	logger *logger.Logger
}

// DataServiceDeps are the collaborators of the façade.
type DataServiceDeps struct {
	Storages  *store.Storages
	Sessions  SessionService
	Quota     QuotaService
	Community CommunityService
	Backup    BackupService
	Clock     Clock

	// RequestTimeout bounds every call. Zero disables the bound.
	RequestTimeout time.Duration
}

func NewDataService(deps DataServiceDeps, logger *logger.Logger) DataService {
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock
	}
	return &dataService{
		storages:       deps.Storages,
		sessions:       deps.Sessions,
		quota:          deps.Quota,
		community:      deps.Community,
		backup:         deps.Backup,
		validator:      validators.NewInkDataValidator(),
		ids:            utils.NewUUIDGenerator(),
		clock:          clock,
		requestTimeout: deps.RequestTimeout,
		logger:         logger,
	}
}

func (s *dataService) Mode() models.StorageMode {
	return s.storages.Mode
}

// ── call helpers ────────────────────────────────────────────────────────────

func (s *dataService) bound(ctx context.Context, userID string) (context.Context, context.CancelFunc) {
	if userID != "" {
		ctx = identity.WithUserID(ctx, userID)
	}
	if s.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.requestTimeout)
}

// read runs call and swaps any failure for empty.
func read[T any](s *dataService, ctx context.Context, fn, userID string, empty T, call func(ctx context.Context) (T, error)) T {
	if userID != "" {
		if err := validators.ValidateUserID(userID); err != nil {
			s.logger.Warn().Err(err).Str("func", fn).Msg("read with invalid user id")
			return empty
		}
	}

	ctx, cancel := s.bound(ctx, userID)
	defer cancel()

	v, err := call(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("func", fn).Str("user_id", userID).Msg("read failed, returning empty value")
		return empty
	}
	return v
}

// write runs call and reports every failure. A timeout is reported as
// [store.ErrBackendUnavailable].
func write[T any](s *dataService, ctx context.Context, fn, userID string, call func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if userID != "" {
		if err := validators.ValidateUserID(userID); err != nil {
			return zero, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
	}

	ctx, cancel := s.bound(ctx, userID)
	defer cancel()

	v, err := call(ctx)
	if err == nil {
		return v, nil
	}

	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, store.ErrBackendUnavailable) {
		err = fmt.Errorf("%w: %w", store.ErrBackendUnavailable, err)
	}
	if !errors.Is(err, ErrInvalidDataProvided) {
		s.logger.Err(err).Str("func", fn).Str("user_id", userID).Msg("write failed")
	}
	return zero, err
}

func exec(call func(ctx context.Context) error) func(ctx context.Context) (struct{}, error) {
	return func(ctx context.Context) (struct{}, error) {
		return struct{}{}, call(ctx)
	}
}

func (s *dataService) validate(ctx context.Context, obj any, fields ...string) error {
	if err := s.validator.Validate(ctx, obj, fields...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}

func (s *dataService) now() time.Time {
	return s.clock().UTC()
}

// ── profile & session ───────────────────────────────────────────────────────

func (s *dataService) Register(ctx context.Context, profile models.Profile) (models.Session, error) {
	return write(s, ctx, "dataService.Register", "", func(ctx context.Context) (models.Session, error) {
		return s.sessions.Register(ctx, profile)
	})
}

func (s *dataService) Login(ctx context.Context, userID string) (models.Session, error) {
	return write(s, ctx, "dataService.Login", userID, func(ctx context.Context) (models.Session, error) {
		return s.sessions.Login(ctx, userID)
	})
}

func (s *dataService) Logout(ctx context.Context) error {
	_, err := write(s, ctx, "dataService.Logout", "", exec(s.sessions.Logout))
	return err
}

func (s *dataService) CurrentUser(ctx context.Context) (models.Profile, error) {
	ctx, cancel := s.bound(ctx, "")
	defer cancel()
	return s.sessions.CurrentUser(ctx)
}

func (s *dataService) Upgrade(ctx context.Context, userID string) (models.Profile, error) {
	return write(s, ctx, "dataService.Upgrade", userID, func(ctx context.Context) (models.Profile, error) {
		return s.sessions.Upgrade(ctx, userID)
	})
}

// ── activity ────────────────────────────────────────────────────────────────

// GetActivity returns the record of date, today when date is empty. A
// malformed date yields a fresh record stamped with that date.
func (s *dataService) GetActivity(ctx context.Context, userID, date string) models.Activity {
	if date == "" {
		date = today(s.clock)
	}
	if err := validators.ValidateDate(date); err != nil {
		s.logger.Warn().Err(err).Str("func", "dataService.GetActivity").Str("date", date).Msg("malformed activity date")
		return models.NewActivity(date)
	}
	return read(s, ctx, "dataService.GetActivity", userID, models.NewActivity(date), func(ctx context.Context) (models.Activity, error) {
		return s.storages.Activity.GetActivity(ctx, userID, date)
	})
}

// UpdateActivity merges update into today's record.
func (s *dataService) UpdateActivity(ctx context.Context, userID string, update models.ActivityUpdate) (models.Activity, error) {
	if err := s.validate(ctx, update); err != nil {
		return models.Activity{}, err
	}
	return write(s, ctx, "dataService.UpdateActivity", userID, func(ctx context.Context) (models.Activity, error) {
		return s.storages.Activity.UpdateActivity(ctx, userID, today(s.clock), update)
	})
}

// GetRecentActivity returns the stored records of the last days calendar
// days, oldest first. Days without a record are skipped except today, which
// is always present.
func (s *dataService) GetRecentActivity(ctx context.Context, userID string, days int) []models.Activity {
	days = min(max(days, 1), maxRecentDays)
	now := s.clock()
	todayDate := now.Format(models.DateLayout)
	from := now.AddDate(0, 0, -(days - 1)).Format(models.DateLayout)

	records := read(s, ctx, "dataService.GetRecentActivity", userID, []models.Activity{}, func(ctx context.Context) ([]models.Activity, error) {
		return s.storages.Activity.ListActivity(ctx, userID, from, todayDate)
	})

	if len(records) == 0 || records[len(records)-1].Date != todayDate {
		records = append(records, models.NewActivity(todayDate))
	}
	return records
}

func (s *dataService) GetUserStats(ctx context.Context, userID string) models.UserStats {
	return read(s, ctx, "dataService.GetUserStats", userID, models.UserStats{}, func(ctx context.Context) (models.UserStats, error) {
		return s.storages.Activity.Totals(ctx, userID)
	})
}

func (s *dataService) AddStudyMinutes(ctx context.Context, userID string, minutes int64) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrNegativeCounter)
	}
	_, err := write(s, ctx, "dataService.AddStudyMinutes", userID, func(ctx context.Context) (models.Activity, error) {
		return s.storages.Activity.IncrementActivity(ctx, userID, today(s.clock), models.CounterMinutes, minutes)
	})
	return err
}

// ── quota ───────────────────────────────────────────────────────────────────

// CheckQuota reports whether userID may make one more generation call today.
// An unreadable counter allows the call.
func (s *dataService) CheckQuota(ctx context.Context, userID string) bool {
	if err := validators.ValidateUserID(userID); err != nil {
		return false
	}

	ctx, cancel := s.bound(ctx, userID)
	defer cancel()

	allowed, err := s.quota.CheckQuota(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "dataService.CheckQuota").Str("user_id", userID).Msg("quota check degraded")
	}
	return allowed
}

func (s *dataService) IncrementUsage(ctx context.Context, userID string) error {
	_, err := write(s, ctx, "dataService.IncrementUsage", userID, func(ctx context.Context) (models.Activity, error) {
		return s.quota.IncrementUsage(ctx, userID)
	})
	return err
}

// ── drafts ──────────────────────────────────────────────────────────────────

func (s *dataService) GetCurrentDraft(ctx context.Context, userID string) string {
	return read(s, ctx, "dataService.GetCurrentDraft", userID, "", func(ctx context.Context) (string, error) {
		return s.storages.Drafts.GetCurrentDraft(ctx, userID)
	})
}

func (s *dataService) SaveCurrentDraft(ctx context.Context, userID, content string) error {
	_, err := write(s, ctx, "dataService.SaveCurrentDraft", userID, exec(func(ctx context.Context) error {
		return s.storages.Drafts.SaveCurrentDraft(ctx, userID, content)
	}))
	return err
}

func (s *dataService) GetDraftHistory(ctx context.Context, userID string) []models.DraftSnapshot {
	return read(s, ctx, "dataService.GetDraftHistory", userID, []models.DraftSnapshot{}, func(ctx context.Context) ([]models.DraftSnapshot, error) {
		return s.storages.Drafts.ListSnapshots(ctx, userID)
	})
}

// SaveDraftSnapshot stores an immutable copy of content.
func (s *dataService) SaveDraftSnapshot(ctx context.Context, userID, content string) (models.DraftSnapshot, error) {
	snapshot := models.DraftSnapshot{
		ID:        s.ids.Generate(),
		Content:   content,
		Summary:   models.Summarize(content),
		CreatedAt: s.now(),
	}
	return write(s, ctx, "dataService.SaveDraftSnapshot", userID, func(ctx context.Context) (models.DraftSnapshot, error) {
		return snapshot, s.storages.Drafts.AppendSnapshot(ctx, userID, snapshot)
	})
}

// ── chat ────────────────────────────────────────────────────────────────────

func (s *dataService) GetChat(ctx context.Context, userID, threadID string) []models.ChatMessage {
	if strings.TrimSpace(threadID) == "" {
		return []models.ChatMessage{}
	}
	return read(s, ctx, "dataService.GetChat", userID, []models.ChatMessage{}, func(ctx context.Context) ([]models.ChatMessage, error) {
		return s.storages.Chats.GetThread(ctx, userID, threadID)
	})
}

// SaveChat replaces the whole thread. An empty slice resets it.
func (s *dataService) SaveChat(ctx context.Context, userID, threadID string, messages []models.ChatMessage) error {
	if strings.TrimSpace(threadID) == "" {
		return fmt.Errorf("%w: empty thread id", ErrInvalidDataProvided)
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	for _, m := range messages {
		if err := s.validate(ctx, m); err != nil {
			return err
		}
	}

	_, err := write(s, ctx, "dataService.SaveChat", userID, exec(func(ctx context.Context) error {
		return s.storages.Chats.SaveThread(ctx, userID, threadID, messages)
	}))
	return err
}

func (s *dataService) AppendChatMessage(ctx context.Context, userID, threadID string, message models.ChatMessage) (models.ChatMessage, error) {
	if strings.TrimSpace(threadID) == "" {
		return models.ChatMessage{}, fmt.Errorf("%w: empty thread id", ErrInvalidDataProvided)
	}
	if message.ID == "" {
		message.ID = s.ids.Generate()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = s.now()
	}
	if err := s.validate(ctx, message); err != nil {
		return models.ChatMessage{}, err
	}

	return write(s, ctx, "dataService.AppendChatMessage", userID, func(ctx context.Context) (models.ChatMessage, error) {
		return message, s.storages.Chats.AppendMessage(ctx, userID, threadID, message)
	})
}

// ── quiz ────────────────────────────────────────────────────────────────────

func (s *dataService) GetQuizHistory(ctx context.Context, userID string) []models.QuizResult {
	return read(s, ctx, "dataService.GetQuizHistory", userID, []models.QuizResult{}, func(ctx context.Context) ([]models.QuizResult, error) {
		return s.storages.Quiz.ListResults(ctx, userID)
	})
}

func (s *dataService) SaveQuizResult(ctx context.Context, userID string, result models.QuizResult) error {
	if result.Timestamp.IsZero() {
		result.Timestamp = s.now()
	}
	if err := s.validate(ctx, result); err != nil {
		return err
	}

	_, err := write(s, ctx, "dataService.SaveQuizResult", userID, exec(func(ctx context.Context) error {
		return s.storages.Quiz.AppendResult(ctx, userID, result)
	}))
	return err
}

// ── bootcamp ────────────────────────────────────────────────────────────────

func (s *dataService) GetBootcampProgress(ctx context.Context, userID string) models.BootcampProgress {
	return read(s, ctx, "dataService.GetBootcampProgress", userID, models.NewBootcampProgress(), func(ctx context.Context) (models.BootcampProgress, error) {
		return s.storages.Bootcamp.GetProgress(ctx, userID)
	})
}

func (s *dataService) SaveBootcampProgress(ctx context.Context, userID string, progress models.BootcampProgress) error {
	for _, day := range progress.CompletedDays {
		if day <= 0 {
			return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidBootcampDay)
		}
	}

	_, err := write(s, ctx, "dataService.SaveBootcampProgress", userID, exec(func(ctx context.Context) error {
		return s.storages.Bootcamp.SaveProgress(ctx, userID, progress)
	}))
	return err
}

// SubmitBootcampDay completes day with submission, replacing an earlier
// submission of the same day.
func (s *dataService) SubmitBootcampDay(ctx context.Context, userID string, day int, submission models.BootcampSubmission) (models.BootcampProgress, error) {
	if day <= 0 {
		return models.BootcampProgress{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidBootcampDay)
	}
	return write(s, ctx, "dataService.SubmitBootcampDay", userID, func(ctx context.Context) (models.BootcampProgress, error) {
		return s.storages.Bootcamp.CompleteDay(ctx, userID, day, submission)
	})
}

// ── story ───────────────────────────────────────────────────────────────────

func (s *dataService) GetStoryProgress(ctx context.Context, userID, scenarioID string) []models.StoryStep {
	if strings.TrimSpace(scenarioID) == "" {
		return []models.StoryStep{}
	}
	return read(s, ctx, "dataService.GetStoryProgress", userID, []models.StoryStep{}, func(ctx context.Context) ([]models.StoryStep, error) {
		return s.storages.Stories.GetSteps(ctx, userID, scenarioID)
	})
}

func (s *dataService) SaveStoryProgress(ctx context.Context, userID, scenarioID string, steps []models.StoryStep) error {
	if strings.TrimSpace(scenarioID) == "" {
		return fmt.Errorf("%w: empty scenario id", ErrInvalidDataProvided)
	}
	if steps == nil {
		steps = []models.StoryStep{}
	}

	_, err := write(s, ctx, "dataService.SaveStoryProgress", userID, exec(func(ctx context.Context) error {
		return s.storages.Stories.SaveSteps(ctx, userID, scenarioID, steps)
	}))
	return err
}

// ── community ───────────────────────────────────────────────────────────────

func (s *dataService) ListPosts(ctx context.Context) []models.Post {
	return read(s, ctx, "dataService.ListPosts", "", []models.Post{}, s.community.ListPosts)
}

func (s *dataService) CreatePost(ctx context.Context, userID, content string, author models.Author) (models.Post, error) {
	return write(s, ctx, "dataService.CreatePost", userID, func(ctx context.Context) (models.Post, error) {
		return s.community.CreatePost(ctx, userID, content, author)
	})
}

func (s *dataService) ToggleLike(ctx context.Context, userID, postID string) (models.Post, error) {
	return write(s, ctx, "dataService.ToggleLike", userID, func(ctx context.Context) (models.Post, error) {
		return s.community.ToggleLike(ctx, userID, postID)
	})
}

func (s *dataService) AddComment(ctx context.Context, userID, postID, content, authorName string) (models.Comment, error) {
	return write(s, ctx, "dataService.AddComment", userID, func(ctx context.Context) (models.Comment, error) {
		return s.community.AddComment(ctx, userID, postID, content, authorName)
	})
}

// ── seals ───────────────────────────────────────────────────────────────────

func (s *dataService) GetSeals(ctx context.Context, userID string) []models.Seal {
	return read(s, ctx, "dataService.GetSeals", userID, []models.Seal{}, func(ctx context.Context) ([]models.Seal, error) {
		return s.storages.Seals.ListSeals(ctx, userID)
	})
}

// SaveSeal stores a new seal design and returns it with its ID.
func (s *dataService) SaveSeal(ctx context.Context, userID string, seal models.Seal) (models.Seal, error) {
	seal.ID = s.ids.Generate()
	seal.CreatedAt = s.now()
	if err := s.validate(ctx, seal); err != nil {
		return models.Seal{}, err
	}

	return write(s, ctx, "dataService.SaveSeal", userID, func(ctx context.Context) (models.Seal, error) {
		return seal, s.storages.Seals.AppendSeal(ctx, userID, seal)
	})
}

func (s *dataService) DeleteSeal(ctx context.Context, userID, sealID string) error {
	_, err := write(s, ctx, "dataService.DeleteSeal", userID, exec(func(ctx context.Context) error {
		return s.storages.Seals.DeleteSeal(ctx, userID, sealID)
	}))
	return err
}

// ── favorites ───────────────────────────────────────────────────────────────

func (s *dataService) GetFavorites(ctx context.Context, userID string) []int {
	return read(s, ctx, "dataService.GetFavorites", userID, []int{}, func(ctx context.Context) ([]int, error) {
		return s.storages.Favorites.GetFavorites(ctx, userID)
	})
}

func (s *dataService) SaveFavorites(ctx context.Context, userID string, phraseIDs []int) error {
	_, err := write(s, ctx, "dataService.SaveFavorites", userID, exec(func(ctx context.Context) error {
		return s.storages.Favorites.SaveFavorites(ctx, userID, phraseIDs)
	}))
	return err
}

func (s *dataService) AddFavorite(ctx context.Context, userID string, phraseID int) error {
	_, err := write(s, ctx, "dataService.AddFavorite", userID, exec(func(ctx context.Context) error {
		return s.storages.Favorites.AddFavorite(ctx, userID, phraseID)
	}))
	return err
}

func (s *dataService) RemoveFavorite(ctx context.Context, userID string, phraseID int) error {
	_, err := write(s, ctx, "dataService.RemoveFavorite", userID, exec(func(ctx context.Context) error {
		return s.storages.Favorites.RemoveFavorite(ctx, userID, phraseID)
	}))
	return err
}

// ── flying flower ───────────────────────────────────────────────────────────

func (s *dataService) SaveFlyingFlowerGame(ctx context.Context, userID string, game models.FlyingFlowerGame) (models.FlyingFlowerGame, error) {
	game.ID = s.ids.Generate()
	if game.Timestamp.IsZero() {
		game.Timestamp = s.now()
	}
	if game.Turns == nil {
		game.Turns = []models.FlyingFlowerTurn{}
	}
	if err := s.validate(ctx, game); err != nil {
		return models.FlyingFlowerGame{}, err
	}

	return write(s, ctx, "dataService.SaveFlyingFlowerGame", userID, func(ctx context.Context) (models.FlyingFlowerGame, error) {
		return game, s.storages.FlyingFlower.AppendGame(ctx, userID, game)
	})
}

func (s *dataService) GetFlyingFlowerGames(ctx context.Context, userID string) []models.FlyingFlowerGame {
	return read(s, ctx, "dataService.GetFlyingFlowerGames", userID, []models.FlyingFlowerGame{}, func(ctx context.Context) ([]models.FlyingFlowerGame, error) {
		return s.storages.FlyingFlower.ListGames(ctx, userID)
	})
}

func (s *dataService) GetFlyingFlowerHighscore(ctx context.Context, userID string) int {
	return read(s, ctx, "dataService.GetFlyingFlowerHighscore", userID, 0, func(ctx context.Context) (int, error) {
		return s.storages.FlyingFlower.HighScore(ctx, userID)
	})
}

// ── backup ──────────────────────────────────────────────────────────────────

func (s *dataService) ExportAll(ctx context.Context, userID string) (models.BackupDocument, error) {
	return write(s, ctx, "dataService.ExportAll", userID, func(ctx context.Context) (models.BackupDocument, error) {
		return s.backup.ExportAll(ctx, userID)
	})
}

func (s *dataService) ImportAll(ctx context.Context, document []byte) bool {
	ctx, cancel := s.bound(ctx, "")
	defer cancel()
	return s.backup.ImportAll(ctx, document)
}
