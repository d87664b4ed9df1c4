// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "strings"

// Key prefixes of the embedded store. Per-user records live under
// prefix+userID, sub-keyed records under prefix+userID+"_"+subKey.
const (
	PrefixActivity         = "ink_activity_"
	PrefixCurrentDraft     = "ink_draft_current_"
	PrefixDraftHistory     = "ink_draft_history_"
	PrefixChat             = "ink_chat_"
	PrefixQuizHistory      = "ink_quiz_history_"
	PrefixBootcampProgress = "ink_bootcamp_progress_"
	PrefixStory            = "ink_story_"
	PrefixSeals            = "ink_seals_"
	PrefixFavorites        = "ink_favs_"
	PrefixFlyingFlower     = "ink_ff_games_"
	PrefixProfile          = "ink_profile_"

	// Shared community records are not scoped to a user.
	PrefixPost    = "ink_post_"
	PrefixComment = "ink_comment_"

	// KeyCurrentUser caches the signed-in profile on this device.
	KeyCurrentUser = "ink_currentUser"
)

// UserKeySpace describes how a per-user entity is laid out in the embedded
// store. Sub-keyed spaces hold one entry per sub key.
type UserKeySpace struct {
	Prefix string
	SubKey bool
}

// BackupKeySpaces lists every per-user entity that a backup document carries.
// The profile space is exported separately.
var BackupKeySpaces = []UserKeySpace{
	{Prefix: PrefixActivity, SubKey: true},
	{Prefix: PrefixCurrentDraft},
	{Prefix: PrefixDraftHistory},
	{Prefix: PrefixChat, SubKey: true},
	{Prefix: PrefixQuizHistory},
	{Prefix: PrefixBootcampProgress},
	{Prefix: PrefixStory, SubKey: true},
	{Prefix: PrefixSeals},
	{Prefix: PrefixFavorites},
	{Prefix: PrefixFlyingFlower},
}

// UserKey builds the key of a per-user record. An empty subKey addresses the
// single record of the user.
func UserKey(prefix, userID, subKey string) string {
	var b strings.Builder
	b.Grow(len(prefix) + len(userID) + len(subKey) + 1)
	b.WriteString(prefix)
	b.WriteString(userID)
	if subKey != "" {
		b.WriteByte('_')
		b.WriteString(subKey)
	}
	return b.String()
}

// UserSubKeyPrefix is the scan prefix that matches every sub-keyed record of
// a user and nothing of another user whose id merely starts with userID.
func UserSubKeyPrefix(prefix, userID string) string {
	return prefix + userID + "_"
}

// PostKey addresses a shared community post.
func PostKey(postID string) string {
	return PrefixPost + postID
}

// CommentKey addresses a comment of a post.
func CommentKey(postID, commentID string) string {
	return PrefixComment + postID + "_" + commentID
}

// CommentPrefix matches every comment of a post.
func CommentPrefix(postID string) string {
	return PrefixComment + postID + "_"
}
