// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/models"
)

// draftRepository stores the working draft and its snapshot history.
type draftRepository struct {
	*DB
	logger *logger.Logger
}

func NewDraftRepository(db *DB, logger *logger.Logger) DraftRepository {
	return &draftRepository{DB: db, logger: logger}
}

func (r *draftRepository) GetCurrentDraft(ctx context.Context, userID string) (string, error) {
	var content string
	err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, getCurrentDraft, userID).Scan(&content)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "draftRepository.GetCurrentDraft").Str("user_id", userID).Msg("failed to read draft")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return content, nil
}

func (r *draftRepository) SaveCurrentDraft(ctx context.Context, userID, content string) error {
	return r.exec(ctx, "draftRepository.SaveCurrentDraft", userID, saveCurrentDraft, userID, content)
}

func (r *draftRepository) ListSnapshots(ctx context.Context, userID string) ([]models.DraftSnapshot, error) {
	rows, err := r.DB.QueryContext(ctx, listDraftSnapshots, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "draftRepository.ListSnapshots").Str("user_id", userID).Msg("failed to list snapshots")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]models.DraftSnapshot, 0, 16)
	for rows.Next() {
		var s models.DraftSnapshot
		if err := rows.Scan(&s.ID, &s.Content, &s.Summary, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func (r *draftRepository) AppendSnapshot(ctx context.Context, userID string, s models.DraftSnapshot) error {
	return r.exec(ctx, "draftRepository.AppendSnapshot", userID, saveDraftSnapshot, s.ID, userID, s.Content, s.Summary, s.CreatedAt)
}

// chatRepository keeps one JSONB array per (user_id, target_id).
type chatRepository struct {
	*DB
	logger *logger.Logger
}

func NewChatRepository(db *DB, logger *logger.Logger) ChatRepository {
	return &chatRepository{DB: db, logger: logger}
}

func (r *chatRepository) GetThread(ctx context.Context, userID, threadID string) ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{}
	err := r.queryJSON(ctx, "chatRepository.GetThread", userID, &messages, getChatThread, userID, threadID)
	return messages, err
}

func (r *chatRepository) SaveThread(ctx context.Context, userID, threadID string, messages []models.ChatMessage) error {
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	raw, err := toJSONText(messages)
	if err != nil {
		return err
	}
	return r.exec(ctx, "chatRepository.SaveThread", userID, saveChatThread, userID, threadID, raw)
}

// AppendMessage concatenates in SQL, so two concurrent appends both land.
func (r *chatRepository) AppendMessage(ctx context.Context, userID, threadID string, message models.ChatMessage) error {
	raw, err := toJSONText([]models.ChatMessage{message})
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, appendChatMessage, userID, threadID, raw)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "chatRepository.AppendMessage").Str("user_id", userID).Msg("failed to append message")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

type quizRepository struct {
	*DB
	logger *logger.Logger
}

func NewQuizRepository(db *DB, logger *logger.Logger) QuizRepository {
	return &quizRepository{DB: db, logger: logger}
}

func (r *quizRepository) ListResults(ctx context.Context, userID string) ([]models.QuizResult, error) {
	rows, err := r.DB.QueryContext(ctx, listQuizResults, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "quizRepository.ListResults").Str("user_id", userID).Msg("failed to list quiz history")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]models.QuizResult, 0, 32)
	for rows.Next() {
		var (
			q    models.QuizResult
			tags []byte
		)
		if err := rows.Scan(&q.QuestionID, &q.IsCorrect, &tags, &q.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if err := fromJSONText(tags, &q.Tags); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func (r *quizRepository) AppendResult(ctx context.Context, userID string, q models.QuizResult) error {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}
	raw, err := toJSONText(tags)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, saveQuizResult, userID, q.QuestionID, q.IsCorrect, raw, q.Timestamp)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "quizRepository.AppendResult").Str("user_id", userID).Msg("failed to save quiz result")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

type bootcampRepository struct {
	*DB
	logger *logger.Logger
}

func NewBootcampRepository(db *DB, logger *logger.Logger) BootcampRepository {
	return &bootcampRepository{DB: db, logger: logger}
}

func scanBootcamp(row rowScanner) (models.BootcampProgress, error) {
	var days, submissions []byte
	if err := row.Scan(&days, &submissions); err != nil {
		return models.NewBootcampProgress(), err
	}

	p := models.NewBootcampProgress()
	if err := fromJSONText(days, &p.CompletedDays); err != nil {
		return models.NewBootcampProgress(), err
	}
	if err := fromJSONText(submissions, &p.Submissions); err != nil {
		return models.NewBootcampProgress(), err
	}
	return p, nil
}

func (r *bootcampRepository) GetProgress(ctx context.Context, userID string) (models.BootcampProgress, error) {
	p, err := scanBootcamp(r.DB.QueryRowContext(ctx, getBootcampProgress, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewBootcampProgress(), nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "bootcampRepository.GetProgress").Str("user_id", userID).Msg("failed to read progress")
		return models.NewBootcampProgress(), fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return p, nil
}

// SaveProgress merges p into the locked progress row.
func (r *bootcampRepository) SaveProgress(ctx context.Context, userID string, p models.BootcampProgress) error {
	_, err := r.modify(ctx, "bootcampRepository.SaveProgress", userID, func(current models.BootcampProgress) models.BootcampProgress {
		return current.Merge(p)
	})
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *bootcampRepository) save(ctx context.Context, db execer, userID string, p models.BootcampProgress) error {
	if p.CompletedDays == nil {
		p.CompletedDays = []int{}
	}
	if p.Submissions == nil {
		p.Submissions = map[int]models.BootcampSubmission{}
	}
	days, err := toJSONText(p.CompletedDays)
	if err != nil {
		return err
	}
	submissions, err := toJSONText(p.Submissions)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, saveBootcampProgress, userID, days, submissions); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "bootcampRepository.save").Str("user_id", userID).Msg("failed to save progress")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *bootcampRepository) CompleteDay(ctx context.Context, userID string, day int, submission models.BootcampSubmission) (models.BootcampProgress, error) {
	return r.modify(ctx, "bootcampRepository.CompleteDay", userID, func(current models.BootcampProgress) models.BootcampProgress {
		return current.Complete(day, submission)
	})
}

// modify locks the progress row for the read-modify-write.
func (r *bootcampRepository) modify(ctx context.Context, fn, userID string, change func(models.BootcampProgress) models.BootcampProgress) (models.BootcampProgress, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to begin transaction")
		return models.BootcampProgress{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, ensureBootcampProgress, userID); err != nil {
		log.Err(err).Str("func", fn).Str("user_id", userID).Msg("failed to create progress row")
		return models.BootcampProgress{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	current, err := scanBootcamp(tx.QueryRowContext(ctx, lockBootcampProgress, userID))
	if err != nil {
		log.Err(err).Str("func", fn).Str("user_id", userID).Msg("failed to lock progress row")
		return models.BootcampProgress{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	next := change(current)
	if err := r.save(ctx, tx, userID, next); err != nil {
		return models.BootcampProgress{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", fn).Msg("failed to commit transaction")
		return models.BootcampProgress{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return next, nil
}

type storyRepository struct {
	*DB
	logger *logger.Logger
}

func NewStoryRepository(db *DB, logger *logger.Logger) StoryRepository {
	return &storyRepository{DB: db, logger: logger}
}

func (r *storyRepository) GetSteps(ctx context.Context, userID, scenarioID string) ([]models.StoryStep, error) {
	steps := []models.StoryStep{}
	err := r.queryJSON(ctx, "storyRepository.GetSteps", userID, &steps, getStoryProgress, userID, scenarioID)
	return steps, err
}

func (r *storyRepository) SaveSteps(ctx context.Context, userID, scenarioID string, steps []models.StoryStep) error {
	if steps == nil {
		steps = []models.StoryStep{}
	}
	raw, err := toJSONText(steps)
	if err != nil {
		return err
	}
	return r.exec(ctx, "storyRepository.SaveSteps", userID, saveStoryProgress, userID, scenarioID, raw)
}

type sealRepository struct {
	*DB
	logger *logger.Logger
}

func NewSealRepository(db *DB, logger *logger.Logger) SealRepository {
	return &sealRepository{DB: db, logger: logger}
}

func (r *sealRepository) ListSeals(ctx context.Context, userID string) ([]models.Seal, error) {
	rows, err := r.DB.QueryContext(ctx, listSeals, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sealRepository.ListSeals").Str("user_id", userID).Msg("failed to list seals")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]models.Seal, 0, 8)
	for rows.Next() {
		var s models.Seal
		if err := rows.Scan(&s.ID, &s.Text, &s.Style, &s.Shape, &s.Font, &s.WearLevel, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func (r *sealRepository) AppendSeal(ctx context.Context, userID string, s models.Seal) error {
	_, err := r.DB.ExecContext(ctx, saveSeal, s.ID, userID, s.Text, s.Style, s.Shape, s.Font, s.WearLevel, s.CreatedAt)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sealRepository.AppendSeal").Str("user_id", userID).Msg("failed to save seal")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *sealRepository) DeleteSeal(ctx context.Context, userID, sealID string) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.Delete("user_seals").
		Where(sq.Eq{"id": sealID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sealRepository.DeleteSeal").Str("user_id", userID).Str("seal_id", sealID).Msg("failed to delete seal")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSealNotFound
	}
	return nil
}

// favoriteRepository relies on the (user_id, phrase_id) key for set
// semantics.
type favoriteRepository struct {
	*DB
	logger *logger.Logger
}

func NewFavoriteRepository(db *DB, logger *logger.Logger) FavoriteRepository {
	return &favoriteRepository{DB: db, logger: logger}
}

func (r *favoriteRepository) GetFavorites(ctx context.Context, userID string) ([]int, error) {
	rows, err := r.DB.QueryContext(ctx, listFavorites, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "favoriteRepository.GetFavorites").Str("user_id", userID).Msg("failed to list favorites")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]int, 0, 16)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

// SaveFavorites replaces the whole set in one transaction.
func (r *favoriteRepository) SaveFavorites(ctx context.Context, userID string, phraseIDs []int) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "favoriteRepository.SaveFavorites").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, clearFavorites, userID); err != nil {
		log.Err(err).Str("func", "favoriteRepository.SaveFavorites").Str("user_id", userID).Msg("failed to clear favorites")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(phraseIDs) > 0 {
		builder := psql.Insert("user_favorites").Columns("user_id", "phrase_id")
		for _, id := range phraseIDs {
			builder = builder.Values(userID, id)
		}
		query, args, err := builder.Suffix("ON CONFLICT DO NOTHING").ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "favoriteRepository.SaveFavorites").Str("user_id", userID).Msg("failed to insert favorites")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "favoriteRepository.SaveFavorites").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func (r *favoriteRepository) AddFavorite(ctx context.Context, userID string, phraseID int) error {
	return r.exec(ctx, "favoriteRepository.AddFavorite", userID, addFavorite, userID, phraseID)
}

func (r *favoriteRepository) RemoveFavorite(ctx context.Context, userID string, phraseID int) error {
	return r.exec(ctx, "favoriteRepository.RemoveFavorite", userID, removeFavorite, userID, phraseID)
}

type flyingFlowerRepository struct {
	*DB
	logger *logger.Logger
}

func NewFlyingFlowerRepository(db *DB, logger *logger.Logger) FlyingFlowerRepository {
	return &flyingFlowerRepository{DB: db, logger: logger}
}

func (r *flyingFlowerRepository) ListGames(ctx context.Context, userID string) ([]models.FlyingFlowerGame, error) {
	rows, err := r.DB.QueryContext(ctx, listFlyingFlowerGames, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "flyingFlowerRepository.ListGames").Str("user_id", userID).Msg("failed to list games")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]models.FlyingFlowerGame, 0, 16)
	for rows.Next() {
		var (
			g     models.FlyingFlowerGame
			turns []byte
		)
		if err := rows.Scan(&g.ID, &g.Keyword, &g.Score, &turns, &g.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if err := fromJSONText(turns, &g.Turns); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func (r *flyingFlowerRepository) AppendGame(ctx context.Context, userID string, g models.FlyingFlowerGame) error {
	turns := g.Turns
	if turns == nil {
		turns = []models.FlyingFlowerTurn{}
	}
	raw, err := toJSONText(turns)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, saveFlyingFlowerGame, g.ID, userID, g.Keyword, g.Score, raw, g.Timestamp)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "flyingFlowerRepository.AppendGame").Str("user_id", userID).Msg("failed to save game")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *flyingFlowerRepository) HighScore(ctx context.Context, userID string) (int, error) {
	var best int
	err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, flyingFlowerHighScore, userID).Scan(&best)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "flyingFlowerRepository.HighScore").Str("user_id", userID).Msg("failed to read high score")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return best, nil
}

// exec runs an idempotent statement with retries.
func (db *DB) exec(ctx context.Context, fn, userID, query string, args ...any) error {
	err := db.withRetry(ctx, func(ctx context.Context) error {
		_, err := db.DB.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Str("user_id", userID).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// queryJSON scans one JSON column into dst. A missing row leaves dst as is.
func (db *DB) queryJSON(ctx context.Context, fn, userID string, dst any, query string, args ...any) error {
	var raw []byte
	err := db.withRetry(ctx, func(ctx context.Context) error {
		return db.DB.QueryRowContext(ctx, query, args...).Scan(&raw)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Str("user_id", userID).Msg("failed to execute query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return fromJSONText(raw, dst)
}
