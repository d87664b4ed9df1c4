// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

type draftRequest struct {
	Content string `json:"content"`
}

func (h *Handler) getCurrentDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	writeOK(w, draftRequest{Content: h.services.Data.GetCurrentDraft(r.Context(), id)})
}

func (h *Handler) saveCurrentDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req draftRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.services.Data.SaveCurrentDraft(r.Context(), id, req.Content); err != nil {
		writeServiceError(w, r, "*Handler.saveCurrentDraft", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getDraftHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	writeOK(w, h.services.Data.GetDraftHistory(r.Context(), id))
}

func (h *Handler) saveDraftSnapshot(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req draftRequest
	if !decode(w, r, &req) {
		return
	}

	snapshot, err := h.services.Data.SaveDraftSnapshot(r.Context(), id, req.Content)
	if err != nil {
		writeServiceError(w, r, "*Handler.saveDraftSnapshot", err)
		return
	}
	writeCreated(w, snapshot)
}
