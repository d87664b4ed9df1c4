// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/internal/store"
	"github.com/MKhiriev/go-ink-keeper/internal/utils"
	"github.com/MKhiriev/go-ink-keeper/internal/validators"
	"github.com/MKhiriev/go-ink-keeper/models"
)

type communityService struct {
	posts store.CommunityRepository

	validator validators.Validator
	ids       *utils.UUIDGenerator
	clock     Clock

	logger *logger.Logger
}

func NewCommunityService(posts store.CommunityRepository, clock Clock, logger *logger.Logger) CommunityService {
	return &communityService{
		posts:     posts,
		validator: validators.NewInkDataValidator(),
		ids:       utils.NewUUIDGenerator(),
		clock:     clock,
		logger:    logger,
	}
}

func (c *communityService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return c.posts.ListPosts(ctx)
}

// CreatePost publishes content under author. The new post has no likes and
// no comments.
func (c *communityService) CreatePost(ctx context.Context, userID, content string, author models.Author) (models.Post, error) {
	post := models.Post{
		ID:           c.ids.Generate(),
		UserID:       userID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Content:      content,
		LikedBy:      []string{},
		Comments:     []models.Comment{},
		CreatedAt:    c.clock().UTC(),
	}
	if err := c.validator.Validate(ctx, post); err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := c.posts.CreatePost(ctx, post); err != nil {
		c.logger.Err(err).Str("func", "communityService.CreatePost").Str("user_id", userID).Msg("error creating post")
		return models.Post{}, fmt.Errorf("error creating post: %w", err)
	}
	return post, nil
}

// ToggleLike adds or removes userID's like. Concurrent toggles of different
// users on one post never lose a membership change.
func (c *communityService) ToggleLike(ctx context.Context, userID, postID string) (models.Post, error) {
	if err := validators.ValidateUserID(userID); err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if strings.TrimSpace(postID) == "" {
		return models.Post{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrEmptyPostID)
	}

	post, err := c.posts.ToggleLike(ctx, postID, userID)
	if err != nil {
		return models.Post{}, fmt.Errorf("error toggling like: %w", err)
	}
	return post, nil
}

// AddComment appends a comment to postID and returns it with its assigned ID
// and timestamp.
func (c *communityService) AddComment(ctx context.Context, userID, postID, content, authorName string) (models.Comment, error) {
	comment := models.Comment{
		ID:         c.ids.Generate(),
		PostID:     postID,
		UserID:     userID,
		AuthorName: authorName,
		Content:    content,
		CreatedAt:  c.clock().UTC(),
	}
	if err := c.validator.Validate(ctx, comment); err != nil {
		return models.Comment{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := c.posts.AddComment(ctx, comment); err != nil {
		return models.Comment{}, fmt.Errorf("error adding comment: %w", err)
	}
	return comment, nil
}
