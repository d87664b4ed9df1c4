// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ink-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getChat(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	writeOK(w, h.services.Data.GetChat(r.Context(), id, chi.URLParam(r, "threadID")))
}

// saveChat replaces the whole thread; an empty array resets it.
func (h *Handler) saveChat(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var messages []models.ChatMessage
	if !decode(w, r, &messages) {
		return
	}

	if err := h.services.Data.SaveChat(r.Context(), id, chi.URLParam(r, "threadID"), messages); err != nil {
		writeServiceError(w, r, "*Handler.saveChat", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) appendChatMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var message models.ChatMessage
	if !decode(w, r, &message) {
		return
	}

	saved, err := h.services.Data.AppendChatMessage(r.Context(), id, chi.URLParam(r, "threadID"), message)
	if err != nil {
		writeServiceError(w, r, "*Handler.appendChatMessage", err)
		return
	}
	writeCreated(w, saved)
}
