// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/models"
)

// communityRepository keeps posts and comments in separate tables. liked_by
// is a text array so a like toggle is one UPDATE.
type communityRepository struct {
	*DB
	logger *logger.Logger
}

func NewCommunityRepository(db *DB, logger *logger.Logger) CommunityRepository {
	logger.Debug().Msg("creating community repository")
	return &communityRepository{DB: db, logger: logger}
}

func scanPost(row rowScanner) (models.Post, error) {
	var (
		p       models.Post
		likedBy []byte
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.AuthorName, &p.AuthorAvatar, &p.Content, &p.Likes, &likedBy, &p.CreatedAt); err != nil {
		return models.Post{}, err
	}
	p.LikedBy = []string{}
	if err := fromJSONText(likedBy, &p.LikedBy); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

func (r *communityRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listPosts)
	if err != nil {
		log.Err(err).Str("func", "communityRepository.ListPosts").Msg("failed to list posts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0, 32)
	index := make(map[string]int)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			log.Err(err).Str("func", "communityRepository.ListPosts").Msg("failed to scan post row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		p.Comments = []models.Comment{}
		index[p.ID] = len(posts)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	commentRows, err := r.DB.QueryContext(ctx, listComments)
	if err != nil {
		log.Err(err).Str("func", "communityRepository.ListPosts").Msg("failed to list comments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer commentRows.Close()

	for commentRows.Next() {
		var c models.Comment
		if err := commentRows.Scan(&c.ID, &c.PostID, &c.UserID, &c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if i, ok := index[c.PostID]; ok {
			posts[i].Comments = append(posts[i].Comments, c)
		}
	}
	if err := commentRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return posts, nil
}

func (r *communityRepository) CreatePost(ctx context.Context, p models.Post) error {
	_, err := r.DB.ExecContext(ctx, createPost, p.ID, p.UserID, p.AuthorName, p.AuthorAvatar, p.Content, p.CreatedAt)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "communityRepository.CreatePost").Str("user_id", p.UserID).Msg("failed to create post")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *communityRepository) ToggleLike(ctx context.Context, postID, userID string) (models.Post, error) {
	p, err := scanPost(r.DB.QueryRowContext(ctx, toggleLike, postID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "communityRepository.ToggleLike").
			Str("user_id", userID).
			Str("post_id", postID).
			Msg("failed to toggle like")
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return p, nil
}

func (r *communityRepository) AddComment(ctx context.Context, c models.Comment) error {
	_, err := r.DB.ExecContext(ctx, addComment, c.ID, c.PostID, c.UserID, c.AuthorName, c.Content, c.CreatedAt)
	if isForeignKeyViolation(err) {
		return ErrPostNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "communityRepository.AddComment").
			Str("user_id", c.UserID).
			Str("post_id", c.PostID).
			Msg("failed to add comment")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
