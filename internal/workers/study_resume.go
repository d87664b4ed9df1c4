// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/internal/service"
	"github.com/MKhiriev/go-ink-keeper/models"
)

type currentUserReader interface {
	CurrentUser(ctx context.Context) (models.Profile, error)
}

// studyResumeWorker restarts the study timer for the session cached on this
// device, so minutes keep counting across restarts of the daemon.
type studyResumeWorker struct {
	users  currentUserReader
	timer  service.StudyTimer
	logger *logger.Logger
}

func NewStudyResumeWorker(users currentUserReader, timer service.StudyTimer, logger *logger.Logger) Worker {
	return &studyResumeWorker{users: users, timer: timer, logger: logger}
}

func (w *studyResumeWorker) Run(ctx context.Context) {
	profile, err := w.users.CurrentUser(ctx)
	if errors.Is(err, service.ErrNoActiveSession) {
		w.logger.Debug().Msg("no cached session, study timer stays idle")
		return
	}
	if err != nil {
		w.logger.Warn().Err(err).Msg("cannot read cached session")
		return
	}

	w.timer.Start(ctx, profile.ID)
	w.logger.Info().Str("user_id", profile.ID).Msg("study timer resumed")
}
