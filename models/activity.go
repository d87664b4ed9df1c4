// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DateLayout is the calendar date format used as the activity sub-key.
const DateLayout = "2006-01-02"

// Activity holds the per-day counters of one user. There is at most one
// Activity per (user, date).
type Activity struct {
	Date         string `json:"date"`
	Minutes      int64  `json:"minutes"`
	WordsWritten int64  `json:"wordsWritten"`
	LettersSent  int64  `json:"lettersSent"`
	LoginCount   int64  `json:"loginCount"`
	AICalls      int64  `json:"aiCalls"`
}

// NewActivity returns the zero record of a day that has no stored data yet.
// A fresh day counts as one login.
func NewActivity(date string) Activity {
	return Activity{Date: date, LoginCount: 1}
}

// ActivityUpdate is a partial update of an [Activity]. Nil fields keep the
// stored value.
type ActivityUpdate struct {
	Minutes      *int64 `json:"minutes,omitempty"`
	WordsWritten *int64 `json:"wordsWritten,omitempty"`
	LettersSent  *int64 `json:"lettersSent,omitempty"`
	LoginCount   *int64 `json:"loginCount,omitempty"`
	AICalls      *int64 `json:"aiCalls,omitempty"`
}

// Apply merges u on top of a and returns the result.
func (u ActivityUpdate) Apply(a Activity) Activity {
	if u.Minutes != nil {
		a.Minutes = *u.Minutes
	}
	if u.WordsWritten != nil {
		a.WordsWritten = *u.WordsWritten
	}
	if u.LettersSent != nil {
		a.LettersSent = *u.LettersSent
	}
	if u.LoginCount != nil {
		a.LoginCount = *u.LoginCount
	}
	if u.AICalls != nil {
		a.AICalls = *u.AICalls
	}
	return a
}

// IsEmpty reports whether the update carries no field at all.
func (u ActivityUpdate) IsEmpty() bool {
	return u.Minutes == nil && u.WordsWritten == nil && u.LettersSent == nil &&
		u.LoginCount == nil && u.AICalls == nil
}

// UserStats aggregates every activity record of a user.
type UserStats struct {
	Minutes int64 `json:"minutes"`
	Words   int64 `json:"words"`
	Days    int   `json:"days"`
}

// ActivityCounter names an additive counter of [Activity].
type ActivityCounter string

const (
	CounterMinutes    ActivityCounter = "minutes"
	CounterWords      ActivityCounter = "words_written"
	CounterLetters    ActivityCounter = "letters_sent"
	CounterAICalls    ActivityCounter = "ai_calls"
	CounterLoginCount ActivityCounter = "login_count"
)

// Add increments counter c of a by n.
func (a Activity) Add(c ActivityCounter, n int64) Activity {
	switch c {
	case CounterMinutes:
		a.Minutes += n
	case CounterWords:
		a.WordsWritten += n
	case CounterLetters:
		a.LettersSent += n
	case CounterAICalls:
		a.AICalls += n
	case CounterLoginCount:
		a.LoginCount += n
	}
	return a
}

// Valid reports whether c is a known counter.
func (c ActivityCounter) Valid() bool {
	switch c {
	case CounterMinutes, CounterWords, CounterLetters, CounterAICalls, CounterLoginCount:
		return true
	}
	return false
}
