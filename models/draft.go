// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"
	"unicode/utf8"
)

// summaryLength is the number of runes of content kept in a snapshot summary.
const summaryLength = 50

// DraftSnapshot is an immutable copy of the editor content.
type DraftSnapshot struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"timestamp"`
}

// Summarize derives the snapshot summary: the first 50 runes followed by "...".
func Summarize(content string) string {
	if utf8.RuneCountInString(content) <= summaryLength {
		return content + "..."
	}
	return string([]rune(content)[:summaryLength]) + "..."
}
