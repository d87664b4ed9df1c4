// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBootcampProgress_Merge(t *testing.T) {
	stored := NewBootcampProgress().
		Complete(2, BootcampSubmission{Input: "two"}).
		Complete(5, BootcampSubmission{Input: "five"})

	tests := []struct {
		name     string
		incoming BootcampProgress
		days     []int
		inputs   map[int]string
	}{
		{
			name:     "empty incoming keeps everything",
			incoming: BootcampProgress{},
			days:     []int{2, 5},
			inputs:   map[int]string{2: "two", 5: "five"},
		},
		{
			name:     "fewer days cannot shrink the record",
			incoming: BootcampProgress{CompletedDays: []int{2}},
			days:     []int{2, 5},
			inputs:   map[int]string{2: "two", 5: "five"},
		},
		{
			name: "duplicates collapse and submissions overwrite",
			incoming: BootcampProgress{
				CompletedDays: []int{3, 3, 2},
				Submissions:   map[int]BootcampSubmission{2: {Input: "again"}, 3: {Input: "three"}},
			},
			days:   []int{2, 3, 5},
			inputs: map[int]string{2: "again", 3: "three", 5: "five"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := stored.Merge(tt.incoming)

			assert.Equal(t, tt.days, merged.CompletedDays)
			assert.Len(t, merged.Submissions, len(tt.inputs))
			for day, input := range tt.inputs {
				assert.Equal(t, input, merged.Submissions[day].Input)
			}
		})
	}

	// the receiver is untouched
	assert.Equal(t, []int{2, 5}, stored.CompletedDays)
	assert.Equal(t, "two", stored.Submissions[2].Input)
}
