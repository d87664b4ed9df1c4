// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/models"
)

// localCommunityRepository gives every post its own key so a like only
// rewrites that post, and every comment its own key so commenting never
// rewrites the post at all.
type localCommunityRepository struct {
	kv    KeyValueStore
	codec JSONCodec[models.Post]
}

func NewLocalCommunityRepository(kv KeyValueStore) CommunityRepository {
	return &localCommunityRepository{kv: kv}
}

func (r *localCommunityRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	postEntries, err := r.kv.Scan(ctx, PrefixPost)
	if err != nil {
		return nil, err
	}
	commentEntries, err := r.kv.Scan(ctx, PrefixComment)
	if err != nil {
		return nil, err
	}

	comments := make(map[string][]models.Comment)
	for _, e := range commentEntries {
		c, err := JSONCodec[models.Comment]{}.Decode(e.Value)
		if err != nil {
			log.Warn().Err(err).Str("key", e.Key).Msg("skipping unreadable comment")
			continue
		}
		comments[c.PostID] = append(comments[c.PostID], c)
	}

	posts := make([]models.Post, 0, len(postEntries))
	for _, e := range postEntries {
		p, err := r.codec.Decode(e.Value)
		if err != nil {
			log.Warn().Err(err).Str("key", e.Key).Msg("skipping unreadable post")
			continue
		}

		p.Comments = comments[p.ID]
		slices.SortStableFunc(p.Comments, func(a, b models.Comment) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
		if p.Comments == nil {
			p.Comments = []models.Comment{}
		}
		posts = append(posts, p)
	}

	slices.SortStableFunc(posts, func(a, b models.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	return posts, nil
}

func (r *localCommunityRepository) CreatePost(ctx context.Context, post models.Post) error {
	post.Comments = nil
	post.LikedBy = []string{}
	post.Likes = 0

	encoded, err := r.codec.Encode(post)
	if err != nil {
		return err
	}
	return r.kv.CompareAndSwap(ctx, PostKey(post.ID), encoded, 0)
}

func (r *localCommunityRepository) ToggleLike(ctx context.Context, postID, userID string) (models.Post, error) {
	var result models.Post

	err := r.kv.Update(ctx, PostKey(postID), func(current string, exists bool) (string, error) {
		if !exists {
			return "", ErrPostNotFound
		}

		p, err := r.codec.Decode(current)
		if err != nil {
			return "", err
		}

		result = p.ToggleLike(userID)
		return r.codec.Encode(result)
	})
	if err != nil {
		return models.Post{}, err
	}

	return result, nil
}

func (r *localCommunityRepository) AddComment(ctx context.Context, comment models.Comment) error {
	exists, err := r.kv.Exists(ctx, PostKey(comment.PostID))
	if err != nil {
		return err
	}
	if !exists {
		return ErrPostNotFound
	}

	encoded, err := JSONCodec[models.Comment]{}.Encode(comment)
	if err != nil {
		return err
	}

	err = r.kv.CompareAndSwap(ctx, CommentKey(comment.PostID, comment.ID), encoded, 0)
	if errors.Is(err, ErrVersionConflict) {
		// same comment id written twice
		return nil
	}
	return err
}
