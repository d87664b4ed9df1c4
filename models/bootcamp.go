// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"maps"
	"slices"
)

// BootcampSubmission is what the user handed in for one bootcamp day and the
// feedback received for it.
type BootcampSubmission struct {
	Input    string `json:"input"`
	Feedback string `json:"feedback"`
}

// BootcampProgress is the single progress record of a user.
// CompletedDays only grows; a submission can be overwritten by resubmitting.
type BootcampProgress struct {
	CompletedDays []int                      `json:"completedDays"`
	Submissions   map[int]BootcampSubmission `json:"submissions"`
}

// NewBootcampProgress returns the empty progress record.
func NewBootcampProgress() BootcampProgress {
	return BootcampProgress{
		CompletedDays: []int{},
		Submissions:   map[int]BootcampSubmission{},
	}
}

// Complete marks day as completed and stores its submission.
func (p BootcampProgress) Complete(day int, submission BootcampSubmission) BootcampProgress {
	p.Submissions = maps.Clone(p.Submissions)
	if p.Submissions == nil {
		p.Submissions = map[int]BootcampSubmission{}
	}
	if !slices.Contains(p.CompletedDays, day) {
		p.CompletedDays = append(slices.Clone(p.CompletedDays), day)
		slices.Sort(p.CompletedDays)
	}
	p.Submissions[day] = submission
	return p
}

// Merge folds incoming into p. Completed days are the sorted union of both,
// so no day is ever dropped; incoming submissions replace stored ones.
func (p BootcampProgress) Merge(incoming BootcampProgress) BootcampProgress {
	merged := NewBootcampProgress()
	maps.Copy(merged.Submissions, p.Submissions)
	maps.Copy(merged.Submissions, incoming.Submissions)

	days := append(slices.Clone(p.CompletedDays), incoming.CompletedDays...)
	slices.Sort(days)
	merged.CompletedDays = append(merged.CompletedDays, slices.Compact(days)...)
	return merged
}
