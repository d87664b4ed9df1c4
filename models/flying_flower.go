// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// FlyingFlowerTurn is one verse exchanged during a game.
type FlyingFlowerTurn struct {
	Sender    string `json:"sender"`
	Verse     string `json:"verse"`
	IsCorrect *bool  `json:"isCorrect,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// FlyingFlowerGame is the immutable record of a finished verse-capping game.
type FlyingFlowerGame struct {
	ID        string             `json:"id"`
	Keyword   string             `json:"keyword"`
	Score     int                `json:"score"`
	Turns     []FlyingFlowerTurn `json:"turns"`
	Timestamp time.Time          `json:"timestamp"`
}
