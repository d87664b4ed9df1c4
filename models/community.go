// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"time"
)

// Author is the public attribution attached to a new post.
type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Post is a globally visible community post.
// Likes always equals len(LikedBy) and LikedBy holds unique user IDs.
type Post struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar"`
	Content      string    `json:"content"`
	Likes        int       `json:"likes"`
	LikedBy      []string  `json:"likedBy"`
	Comments     []Comment `json:"comments"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsLikedBy reports whether userID is in the LikedBy set.
func (p Post) IsLikedBy(userID string) bool {
	return slices.Contains(p.LikedBy, userID)
}

// ToggleLike flips userID's membership in LikedBy and recomputes Likes.
func (p Post) ToggleLike(userID string) Post {
	if p.IsLikedBy(userID) {
		p.LikedBy = slices.DeleteFunc(slices.Clone(p.LikedBy), func(id string) bool { return id == userID })
	} else {
		p.LikedBy = append(slices.Clone(p.LikedBy), userID)
	}
	p.Likes = len(p.LikedBy)
	return p
}

// Comment belongs to exactly one post.
type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"postId"`
	UserID     string    `json:"userId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}
