// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/models"
)

type loginRequest struct {
	UserID string `json:"userId"`
}

// register creates a profile and returns the signed-in session.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if !decode(w, r, &profile) {
		return
	}

	session, err := h.services.Data.Register(r.Context(), profile)
	if err != nil {
		writeServiceError(w, r, "*Handler.register", err)
		return
	}

	h.services.StudyTimer.Start(context.WithoutCancel(r.Context()), session.Profile.ID)
	logger.FromRequest(r).Info().Str("user_id", session.Profile.ID).Msg("user registered")
	writeCreated(w, session)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	session, err := h.services.Data.Login(r.Context(), req.UserID)
	if err != nil {
		writeServiceError(w, r, "*Handler.login", err)
		return
	}

	h.services.StudyTimer.Start(context.WithoutCancel(r.Context()), session.Profile.ID)
	writeOK(w, session)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Data.Logout(r.Context()); err != nil {
		writeServiceError(w, r, "*Handler.logout", err)
		return
	}

	h.services.StudyTimer.Stop()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	profile, err := h.services.Data.CurrentUser(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.currentUser", err)
		return
	}
	writeOK(w, profile)
}

func (h *Handler) upgrade(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	profile, err := h.services.Data.Upgrade(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "*Handler.upgrade", err)
		return
	}
	writeOK(w, profile)
}
