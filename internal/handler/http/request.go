// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-ink-keeper/internal/identity"
	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/internal/utils"
	"github.com/go-chi/chi/v5"
)

// userID returns the user set by auth. When it is missing the response is
// already written and ok is false.
func userID(w http.ResponseWriter, r *http.Request) (id string, ok bool) {
	id, ok = identity.UserIDFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, "userID", ErrNoUserInContext)
	}
	return id, ok
}

// decode reads the JSON body into dst. On failure it answers 400 and returns
// false.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := utils.DecodeJSON(r, dst); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return false
	}
	return true
}

func intURLParam(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidPathParam, name, err)
	}
	return v, nil
}

// intQueryParam returns the query value of name, or def when it is absent.
func intQueryParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidPathParam, name, err)
	}
	return v, nil
}

func writeOK(w http.ResponseWriter, data any) {
	_, _ = utils.WriteJSON(w, data, http.StatusOK)
}

func writeCreated(w http.ResponseWriter, data any) {
	_, _ = utils.WriteJSON(w, data, http.StatusCreated)
}
