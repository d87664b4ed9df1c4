// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-ink-keeper/internal/logger"
)

// studyRecorder is the part of DataService the timer needs.
type studyRecorder interface {
	AddStudyMinutes(ctx context.Context, userID string, minutes int64) error
}

type studyTimer struct {
	recorder studyRecorder
	interval time.Duration

	logger *logger.Logger

	// mu guards the current run; done is closed when its goroutine exits.
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewStudyTimer creates a timer that credits one study minute to the user
// on every tick. If interval is zero or negative it defaults to one minute.
// The timer is idle until Start is called.
func NewStudyTimer(recorder studyRecorder, interval time.Duration, logger *logger.Logger) StudyTimer {
	if interval <= 0 {
		interval = time.Minute
	}
	return &studyTimer{recorder: recorder, interval: interval, logger: logger}
}

// Start implements StudyTimer. It stops any previously running timer, then
// launches a goroutine that exits when ctx is cancelled or Stop is called.
// Concurrent calls leave exactly one timer running.
func (j *studyTimer) Start(ctx context.Context, userID string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.stopLocked()

	jobCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	j.cancel, j.done = cancel, done

	go func() {
		defer close(done)
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.recorder.AddStudyMinutes(jobCtx, userID, 1); err != nil {
					j.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to record study minute")
				}
			}
		}
	}()
}

// Stop implements StudyTimer. It blocks until the goroutine has exited and
// is a no-op when the timer is not running.
func (j *studyTimer) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.stopLocked()
}

func (j *studyTimer) stopLocked() {
	if j.cancel == nil {
		return
	}
	j.cancel()
	<-j.done
	j.cancel, j.done = nil, nil
}
