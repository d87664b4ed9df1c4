// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// psql builds dynamic statements with PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	getProfile = `SELECT id, name, style_name, avatar_color, is_pro, joined_date
		FROM profiles
		WHERE id = $1;`

	saveProfile = `INSERT INTO profiles (id, name, style_name, avatar_color, is_pro, joined_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			style_name = EXCLUDED.style_name,
			avatar_color = EXCLUDED.avatar_color,
			is_pro = EXCLUDED.is_pro;`

	setProfilePro = `UPDATE profiles SET is_pro = $2 WHERE id = $1;`
)

const (
	activityColumns = `to_char(date, 'YYYY-MM-DD'), minutes, words_written, letters_sent, login_count, ai_calls`

	getActivity = `SELECT ` + activityColumns + `
		FROM user_activity
		WHERE user_id = $1 AND date = $2::date;`

	// a NULL argument keeps the stored value; a fresh day starts as
	// NewActivity would.
	mergeActivity = `INSERT INTO user_activity AS a (user_id, date, minutes, words_written, letters_sent, login_count, ai_calls)
		VALUES ($1, $2::date,
			COALESCE($3::bigint, 0), COALESCE($4::bigint, 0), COALESCE($5::bigint, 0),
			COALESCE($6::bigint, 1), COALESCE($7::bigint, 0))
		ON CONFLICT (user_id, date) DO UPDATE
		SET minutes = COALESCE($3::bigint, a.minutes),
			words_written = COALESCE($4::bigint, a.words_written),
			letters_sent = COALESCE($5::bigint, a.letters_sent),
			login_count = COALESCE($6::bigint, a.login_count),
			ai_calls = COALESCE($7::bigint, a.ai_calls)
		RETURNING ` + activityColumns + `;`

	// %[1]s is a column name checked by ActivityCounter.Valid.
	incrementActivity = `INSERT INTO user_activity AS a (user_id, date, %[1]s)
		VALUES ($1, $2::date, $4::bigint)
		ON CONFLICT (user_id, date) DO UPDATE
		SET %[1]s = a.%[1]s + $3::bigint
		RETURNING ` + activityColumns + `;`

	activityTotals = `SELECT COALESCE(SUM(minutes), 0), COALESCE(SUM(words_written), 0), COUNT(*)
		FROM user_activity
		WHERE user_id = $1;`
)

const (
	getCurrentDraft = `SELECT content FROM current_drafts WHERE user_id = $1;`

	saveCurrentDraft = `INSERT INTO current_drafts (user_id, content, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET content = EXCLUDED.content, updated_at = NOW();`

	listDraftSnapshots = `SELECT id, content, summary, created_at
		FROM draft_snapshots
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC;`

	saveDraftSnapshot = `INSERT INTO draft_snapshots (id, user_id, content, summary, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING;`

	getChatThread = `SELECT messages FROM chat_histories WHERE user_id = $1 AND target_id = $2;`

	saveChatThread = `INSERT INTO chat_histories (user_id, target_id, messages)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (user_id, target_id) DO UPDATE
		SET messages = EXCLUDED.messages;`

	appendChatMessage = `INSERT INTO chat_histories AS c (user_id, target_id, messages)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (user_id, target_id) DO UPDATE
		SET messages = c.messages || EXCLUDED.messages;`

	listQuizResults = `SELECT question_id, is_correct, tags, timestamp
		FROM quiz_history
		WHERE user_id = $1
		ORDER BY id;`

	saveQuizResult = `INSERT INTO quiz_history (user_id, question_id, is_correct, tags, timestamp)
		VALUES ($1, $2, $3, $4::jsonb, $5);`

	getBootcampProgress = `SELECT completed_days, submissions FROM bootcamp_progress WHERE user_id = $1;`

	lockBootcampProgress = `SELECT completed_days, submissions FROM bootcamp_progress WHERE user_id = $1 FOR UPDATE;`

	ensureBootcampProgress = `INSERT INTO bootcamp_progress (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING;`

	saveBootcampProgress = `INSERT INTO bootcamp_progress (user_id, completed_days, submissions)
		VALUES ($1, $2::jsonb, $3::jsonb)
		ON CONFLICT (user_id) DO UPDATE
		SET completed_days = EXCLUDED.completed_days, submissions = EXCLUDED.submissions;`

	getStoryProgress = `SELECT history FROM story_progress WHERE user_id = $1 AND scenario_id = $2;`

	saveStoryProgress = `INSERT INTO story_progress (user_id, scenario_id, history)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (user_id, scenario_id) DO UPDATE
		SET history = EXCLUDED.history;`

	listSeals = `SELECT id, text, style, shape, font, wear_level, created_at
		FROM user_seals
		WHERE user_id = $1
		ORDER BY created_at, id;`

	saveSeal = `INSERT INTO user_seals (id, user_id, text, style, shape, font, wear_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	listFavorites = `SELECT phrase_id FROM user_favorites WHERE user_id = $1 ORDER BY phrase_id;`

	addFavorite = `INSERT INTO user_favorites (user_id, phrase_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;`

	removeFavorite = `DELETE FROM user_favorites WHERE user_id = $1 AND phrase_id = $2;`

	clearFavorites = `DELETE FROM user_favorites WHERE user_id = $1;`

	listFlyingFlowerGames = `SELECT id, keyword, score, turns, created_at
		FROM flying_flower_games
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC;`

	saveFlyingFlowerGame = `INSERT INTO flying_flower_games (id, user_id, keyword, score, turns, created_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6);`

	flyingFlowerHighScore = `SELECT COALESCE(MAX(score), 0) FROM flying_flower_games WHERE user_id = $1;`
)

const (
	postColumns = `id, user_id, author_name, author_avatar, content, likes,
		COALESCE(array_to_json(liked_by)::text, '[]'), created_at`

	listPosts = `SELECT ` + postColumns + `
		FROM community_posts
		ORDER BY created_at DESC, id DESC;`

	listComments = `SELECT id, post_id, user_id, author_name, content, created_at
		FROM community_comments
		ORDER BY created_at, id;`

	createPost = `INSERT INTO community_posts (id, user_id, author_name, author_avatar, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);`

	// One statement: the row lock serializes concurrent toggles and a waiting
	// toggle re-evaluates against the committed liked_by.
	toggleLike = `UPDATE community_posts
		SET liked_by = CASE WHEN $2::text = ANY(liked_by)
				THEN array_remove(liked_by, $2::text)
				ELSE array_append(liked_by, $2::text) END,
			likes = cardinality(CASE WHEN $2::text = ANY(liked_by)
				THEN array_remove(liked_by, $2::text)
				ELSE array_append(liked_by, $2::text) END)
		WHERE id = $1
		RETURNING ` + postColumns + `;`

	addComment = `INSERT INTO community_comments (id, post_id, user_id, author_name, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING;`
)

func toJSONText(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingValue, err)
	}
	return string(b), nil
}

func fromJSONText(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingValue, err)
	}
	return nil
}
