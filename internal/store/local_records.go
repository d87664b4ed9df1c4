// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"cmp"
	"context"
	"slices"

	"github.com/MKhiriev/go-ink-keeper/models"
)

type localDraftRepository struct {
	current KeyedRecord[string]
	history KeyedList[models.DraftSnapshot]
}

func NewLocalDraftRepository(kv KeyValueStore) DraftRepository {
	return &localDraftRepository{
		current: NewKeyedRecordWithCodec[string](kv, PrefixCurrentDraft, RawCodec{}, nil),
		history: NewKeyedList[models.DraftSnapshot](kv, PrefixDraftHistory, true),
	}
}

func (r *localDraftRepository) GetCurrentDraft(ctx context.Context, userID string) (string, error) {
	return r.current.Read(ctx, userID, "")
}

func (r *localDraftRepository) SaveCurrentDraft(ctx context.Context, userID, content string) error {
	return r.current.Write(ctx, userID, "", content)
}

func (r *localDraftRepository) ListSnapshots(ctx context.Context, userID string) ([]models.DraftSnapshot, error) {
	snapshots, err := r.history.Read(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(snapshots, func(a, b models.DraftSnapshot) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return snapshots, nil
}

func (r *localDraftRepository) AppendSnapshot(ctx context.Context, userID string, snapshot models.DraftSnapshot) error {
	_, err := r.history.Append(ctx, userID, "", snapshot)
	return err
}

type localChatRepository struct {
	threads KeyedList[models.ChatMessage]
}

func NewLocalChatRepository(kv KeyValueStore) ChatRepository {
	return &localChatRepository{threads: NewKeyedList[models.ChatMessage](kv, PrefixChat, false)}
}

func (r *localChatRepository) GetThread(ctx context.Context, userID, threadID string) ([]models.ChatMessage, error) {
	return r.threads.Read(ctx, userID, threadID)
}

func (r *localChatRepository) SaveThread(ctx context.Context, userID, threadID string, messages []models.ChatMessage) error {
	return r.threads.Write(ctx, userID, threadID, messages)
}

func (r *localChatRepository) AppendMessage(ctx context.Context, userID, threadID string, message models.ChatMessage) error {
	_, err := r.threads.Append(ctx, userID, threadID, message)
	return err
}

type localQuizRepository struct {
	results KeyedList[models.QuizResult]
}

func NewLocalQuizRepository(kv KeyValueStore) QuizRepository {
	return &localQuizRepository{results: NewKeyedList[models.QuizResult](kv, PrefixQuizHistory, false)}
}

func (r *localQuizRepository) ListResults(ctx context.Context, userID string) ([]models.QuizResult, error) {
	return r.results.Read(ctx, userID, "")
}

func (r *localQuizRepository) AppendResult(ctx context.Context, userID string, result models.QuizResult) error {
	_, err := r.results.Append(ctx, userID, "", result)
	return err
}

type localBootcampRepository struct {
	progress KeyedRecord[models.BootcampProgress]
}

func NewLocalBootcampRepository(kv KeyValueStore) BootcampRepository {
	return &localBootcampRepository{
		progress: NewKeyedRecord(kv, PrefixBootcampProgress, models.NewBootcampProgress),
	}
}

func (r *localBootcampRepository) GetProgress(ctx context.Context, userID string) (models.BootcampProgress, error) {
	return r.progress.Read(ctx, userID, "")
}

// SaveProgress merges progress into the stored record.
func (r *localBootcampRepository) SaveProgress(ctx context.Context, userID string, progress models.BootcampProgress) error {
	_, err := r.progress.Update(ctx, userID, "", func(p models.BootcampProgress) (models.BootcampProgress, error) {
		return p.Merge(progress), nil
	})
	return err
}

func (r *localBootcampRepository) CompleteDay(ctx context.Context, userID string, day int, submission models.BootcampSubmission) (models.BootcampProgress, error) {
	return r.progress.Update(ctx, userID, "", func(p models.BootcampProgress) (models.BootcampProgress, error) {
		return p.Complete(day, submission), nil
	})
}

type localStoryRepository struct {
	steps KeyedList[models.StoryStep]
}

func NewLocalStoryRepository(kv KeyValueStore) StoryRepository {
	return &localStoryRepository{steps: NewKeyedList[models.StoryStep](kv, PrefixStory, false)}
}

func (r *localStoryRepository) GetSteps(ctx context.Context, userID, scenarioID string) ([]models.StoryStep, error) {
	return r.steps.Read(ctx, userID, scenarioID)
}

func (r *localStoryRepository) SaveSteps(ctx context.Context, userID, scenarioID string, steps []models.StoryStep) error {
	return r.steps.Write(ctx, userID, scenarioID, steps)
}

type localSealRepository struct {
	seals KeyedList[models.Seal]
}

func NewLocalSealRepository(kv KeyValueStore) SealRepository {
	return &localSealRepository{seals: NewKeyedList[models.Seal](kv, PrefixSeals, false)}
}

func (r *localSealRepository) ListSeals(ctx context.Context, userID string) ([]models.Seal, error) {
	return r.seals.Read(ctx, userID, "")
}

func (r *localSealRepository) AppendSeal(ctx context.Context, userID string, seal models.Seal) error {
	_, err := r.seals.Append(ctx, userID, "", seal)
	return err
}

func (r *localSealRepository) DeleteSeal(ctx context.Context, userID, sealID string) error {
	_, err := r.seals.Update(ctx, userID, "", func(seals []models.Seal) ([]models.Seal, error) {
		idx := slices.IndexFunc(seals, func(s models.Seal) bool { return s.ID == sealID })
		if idx < 0 {
			return nil, ErrSealNotFound
		}
		return slices.Delete(seals, idx, idx+1), nil
	})
	return err
}

// localFavoriteRepository keeps the set as a sorted JSON array.
type localFavoriteRepository struct {
	favorites KeyedList[int]
}

func NewLocalFavoriteRepository(kv KeyValueStore) FavoriteRepository {
	return &localFavoriteRepository{favorites: NewKeyedList[int](kv, PrefixFavorites, false)}
}

func (r *localFavoriteRepository) GetFavorites(ctx context.Context, userID string) ([]int, error) {
	return r.favorites.Read(ctx, userID, "")
}

func (r *localFavoriteRepository) SaveFavorites(ctx context.Context, userID string, phraseIDs []int) error {
	return r.favorites.Write(ctx, userID, "", normalizeFavorites(phraseIDs))
}

func (r *localFavoriteRepository) AddFavorite(ctx context.Context, userID string, phraseID int) error {
	_, err := r.favorites.Update(ctx, userID, "", func(ids []int) ([]int, error) {
		return normalizeFavorites(append(ids, phraseID)), nil
	})
	return err
}

func (r *localFavoriteRepository) RemoveFavorite(ctx context.Context, userID string, phraseID int) error {
	_, err := r.favorites.Update(ctx, userID, "", func(ids []int) ([]int, error) {
		return slices.DeleteFunc(ids, func(id int) bool { return id == phraseID }), nil
	})
	return err
}

func normalizeFavorites(ids []int) []int {
	out := slices.Clone(ids)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []int{}
	}
	return out
}

type localFlyingFlowerRepository struct {
	games KeyedList[models.FlyingFlowerGame]
}

func NewLocalFlyingFlowerRepository(kv KeyValueStore) FlyingFlowerRepository {
	return &localFlyingFlowerRepository{games: NewKeyedList[models.FlyingFlowerGame](kv, PrefixFlyingFlower, true)}
}

func (r *localFlyingFlowerRepository) ListGames(ctx context.Context, userID string) ([]models.FlyingFlowerGame, error) {
	games, err := r.games.Read(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(games, func(a, b models.FlyingFlowerGame) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return games, nil
}

func (r *localFlyingFlowerRepository) AppendGame(ctx context.Context, userID string, game models.FlyingFlowerGame) error {
	_, err := r.games.Append(ctx, userID, "", game)
	return err
}

func (r *localFlyingFlowerRepository) HighScore(ctx context.Context, userID string) (int, error) {
	games, err := r.games.Read(ctx, userID, "")
	if err != nil || len(games) == 0 {
		return 0, err
	}
	best := slices.MaxFunc(games, func(a, b models.FlyingFlowerGame) int { return cmp.Compare(a.Score, b.Score) })
	return max(best.Score, 0), nil
}
