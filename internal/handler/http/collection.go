// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-ink-keeper/models"
	"github.com/go-chi/chi/v5"
)

type highscoreResponse struct {
	Highscore int `json:"highscore"`
}

// ── seals ────────────────────────────────────────────────────────────────────

func (h *Handler) getSeals(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	writeOK(w, h.services.Data.GetSeals(r.Context(), id))
}

func (h *Handler) saveSeal(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var seal models.Seal
	if !decode(w, r, &seal) {
		return
	}

	saved, err := h.services.Data.SaveSeal(r.Context(), id, seal)
	if err != nil {
		writeServiceError(w, r, "*Handler.saveSeal", err)
		return
	}
	writeCreated(w, saved)
}

func (h *Handler) deleteSeal(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.services.Data.DeleteSeal(r.Context(), id, chi.URLParam(r, "sealID")); err != nil {
		writeServiceError(w, r, "*Handler.deleteSeal", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── favorites ────────────────────────────────────────────────────────────────

func (h *Handler) getFavorites(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	writeOK(w, h.services.Data.GetFavorites(r.Context(), id))
}

func (h *Handler) saveFavorites(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var phraseIDs []int
	if !decode(w, r, &phraseIDs) {
		return
	}

	if err := h.services.Data.SaveFavorites(r.Context(), id, phraseIDs); err != nil {
		writeServiceError(w, r, "*Handler.saveFavorites", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	h.changeFavorite(w, r, "*Handler.addFavorite", h.services.Data.AddFavorite)
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	h.changeFavorite(w, r, "*Handler.removeFavorite", h.services.Data.RemoveFavorite)
}

func (h *Handler) changeFavorite(w http.ResponseWriter, r *http.Request, fn string, change func(ctx context.Context, userID string, phraseID int) error) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	phraseID, err := intURLParam(r, "phraseID")
	if err != nil {
		writeServiceError(w, r, fn, err)
		return
	}

	if err = change(r.Context(), id, phraseID); err != nil {
		writeServiceError(w, r, fn, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── flying flower ────────────────────────────────────────────────────────────

func (h *Handler) getFlyingFlowerGames(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	writeOK(w, h.services.Data.GetFlyingFlowerGames(r.Context(), id))
}

func (h *Handler) saveFlyingFlowerGame(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var game models.FlyingFlowerGame
	if !decode(w, r, &game) {
		return
	}

	saved, err := h.services.Data.SaveFlyingFlowerGame(r.Context(), id, game)
	if err != nil {
		writeServiceError(w, r, "*Handler.saveFlyingFlowerGame", err)
		return
	}
	writeCreated(w, saved)
}

func (h *Handler) getFlyingFlowerHighscore(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	writeOK(w, highscoreResponse{Highscore: h.services.Data.GetFlyingFlowerHighscore(r.Context(), id)})
}
