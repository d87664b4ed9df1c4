// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
)

type spyRecorder struct {
	minutes  atomic.Int64
	lastUser atomic.Value
}

func (s *spyRecorder) AddStudyMinutes(_ context.Context, userID string, minutes int64) error {
	s.lastUser.Store(userID)
	s.minutes.Add(minutes)
	return nil
}

func TestStudyTimer_RecordsUntilStopped(t *testing.T) {
	spy := &spyRecorder{}
	timer := NewStudyTimer(spy, 5*time.Millisecond, logger.Nop())

	timer.Start(context.Background(), "u1")
	assert.Eventually(t, func() bool { return spy.minutes.Load() >= 3 }, time.Second, time.Millisecond)
	timer.Stop()

	stopped := spy.minutes.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, spy.minutes.Load(), "no ticks after Stop")
	assert.Equal(t, "u1", spy.lastUser.Load())
}

func TestStudyTimer_RestartSwitchesUser(t *testing.T) {
	spy := &spyRecorder{}
	timer := NewStudyTimer(spy, 5*time.Millisecond, logger.Nop())
	defer timer.Stop()

	timer.Start(context.Background(), "u1")
	timer.Start(context.Background(), "u2")

	assert.Eventually(t, func() bool { return spy.lastUser.Load() == "u2" }, time.Second, time.Millisecond)
}

// userTicks counts ticks per user.
type userTicks struct {
	mu    sync.Mutex
	ticks map[string]int
}

func (u *userTicks) AddStudyMinutes(_ context.Context, userID string, minutes int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.ticks[userID] += int(minutes)
	return nil
}

func (u *userTicks) reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.ticks = map[string]int{}
}

func (u *userTicks) snapshot() map[string]int {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make(map[string]int, len(u.ticks))
	for k, v := range u.ticks {
		out[k] = v
	}
	return out
}

func TestStudyTimer_ConcurrentStartKeepsOneTimer(t *testing.T) {
	spy := &userTicks{ticks: map[string]int{}}
	timer := NewStudyTimer(spy, 2*time.Millisecond, logger.Nop())

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			timer.Start(context.WithoutCancel(context.Background()), fmt.Sprintf("u%d", i))
		}()
	}
	close(start)
	wg.Wait()

	spy.reset()
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, spy.snapshot(), 1, "only the last started timer ticks")

	stopped := make(chan struct{})
	go func() {
		timer.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}

	spy.reset()
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, spy.snapshot(), "no ticks after Stop")
}

func TestStudyTimer_StopWithoutStart(t *testing.T) {
	timer := NewStudyTimer(&spyRecorder{}, time.Minute, logger.Nop())
	timer.Stop()
}

func TestStudyTimer_WritesActivity(t *testing.T) {
	env := newTestEnv(t, testLimits)
	timer := NewStudyTimer(env.data, 5*time.Millisecond, logger.Nop())

	timer.Start(context.Background(), "u1")
	assert.Eventually(t, func() bool {
		return env.data.GetActivity(context.Background(), "u1", "").Minutes >= 2
	}, time.Second, 5*time.Millisecond)
	timer.Stop()
}
