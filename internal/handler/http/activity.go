// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ink-keeper/models"
)

const defaultRecentDays = 7

type quotaResponse struct {
	Allowed bool `json:"allowed"`
}

func (h *Handler) getTodayActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	writeOK(w, h.services.Data.GetActivity(r.Context(), id, r.URL.Query().Get("date")))
}

func (h *Handler) updateTodayActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var update models.ActivityUpdate
	if !decode(w, r, &update) {
		return
	}

	activity, err := h.services.Data.UpdateActivity(r.Context(), id, update)
	if err != nil {
		writeServiceError(w, r, "*Handler.updateTodayActivity", err)
		return
	}
	writeOK(w, activity)
}

func (h *Handler) getRecentActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	days, err := intQueryParam(r, "days", defaultRecentDays)
	if err != nil {
		writeServiceError(w, r, "*Handler.getRecentActivity", err)
		return
	}
	writeOK(w, h.services.Data.GetRecentActivity(r.Context(), id, days))
}

func (h *Handler) getUserStats(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	writeOK(w, h.services.Data.GetUserStats(r.Context(), id))
}

func (h *Handler) checkQuota(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	writeOK(w, quotaResponse{Allowed: h.services.Data.CheckQuota(r.Context(), id)})
}

func (h *Handler) incrementUsage(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.services.Data.IncrementUsage(r.Context(), id); err != nil {
		writeServiceError(w, r, "*Handler.incrementUsage", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
