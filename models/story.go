// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Story step kinds.
const (
	StepNarrative = "narrative"
	StepLetter    = "letter"
)

// StoryStep is one entry of a story scenario history.
type StoryStep struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Sender  string `json:"sender,omitempty"`
}
