// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// QuizResult is one answered question. Results form an append-only log.
type QuizResult struct {
	QuestionID string    `json:"questionId"`
	IsCorrect  bool      `json:"isCorrect"`
	Tags       []string  `json:"tags,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
