// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ink-keeper/models"
	"github.com/go-chi/chi/v5"
)

// ── quiz ─────────────────────────────────────────────────────────────────────

func (h *Handler) getQuizHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	writeOK(w, h.services.Data.GetQuizHistory(r.Context(), id))
}

func (h *Handler) saveQuizResult(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var result models.QuizResult
	if !decode(w, r, &result) {
		return
	}

	if err := h.services.Data.SaveQuizResult(r.Context(), id, result); err != nil {
		writeServiceError(w, r, "*Handler.saveQuizResult", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// ── bootcamp ─────────────────────────────────────────────────────────────────

func (h *Handler) getBootcampProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	writeOK(w, h.services.Data.GetBootcampProgress(r.Context(), id))
}

func (h *Handler) saveBootcampProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var progress models.BootcampProgress
	if !decode(w, r, &progress) {
		return
	}

	if err := h.services.Data.SaveBootcampProgress(r.Context(), id, progress); err != nil {
		writeServiceError(w, r, "*Handler.saveBootcampProgress", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) submitBootcampDay(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	day, err := intURLParam(r, "day")
	if err != nil {
		writeServiceError(w, r, "*Handler.submitBootcampDay", err)
		return
	}

	var submission models.BootcampSubmission
	if !decode(w, r, &submission) {
		return
	}

	progress, err := h.services.Data.SubmitBootcampDay(r.Context(), id, day, submission)
	if err != nil {
		writeServiceError(w, r, "*Handler.submitBootcampDay", err)
		return
	}
	writeOK(w, progress)
}

// ── story ────────────────────────────────────────────────────────────────────

func (h *Handler) getStoryProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	writeOK(w, h.services.Data.GetStoryProgress(r.Context(), id, chi.URLParam(r, "scenarioID")))
}

func (h *Handler) saveStoryProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var steps []models.StoryStep
	if !decode(w, r, &steps) {
		return
	}

	if err := h.services.Data.SaveStoryProgress(r.Context(), id, chi.URLParam(r, "scenarioID"), steps); err != nil {
		writeServiceError(w, r, "*Handler.saveStoryProgress", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
