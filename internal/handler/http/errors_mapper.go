// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-ink-keeper/internal/adapter"
	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/internal/service"
	"github.com/MKhiriev/go-ink-keeper/internal/store"
	"github.com/MKhiriev/go-ink-keeper/internal/utils"
	"github.com/MKhiriev/go-ink-keeper/internal/validators"
)

type errorStatus struct {
	target error
	status int
}

// errorStatuses is checked in order; the first match wins.
var errorStatuses = []errorStatus{
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{validators.ErrInvalidData, http.StatusBadRequest},
	{ErrInvalidPathParam, http.StatusBadRequest},
	{adapter.ErrEmptyPrompt, http.StatusBadRequest},

	{service.ErrInvalidToken, http.StatusUnauthorized},
	{service.ErrNoActiveSession, http.StatusUnauthorized},
	{ErrNoUserInContext, http.StatusUnauthorized},

	{store.ErrProfileNotFound, http.StatusNotFound},
	{store.ErrPostNotFound, http.StatusNotFound},
	{store.ErrSealNotFound, http.StatusNotFound},

	{store.ErrVersionConflict, http.StatusConflict},

	{service.ErrQuotaExceeded, http.StatusTooManyRequests},
	{adapter.ErrRateLimited, http.StatusTooManyRequests},

	{service.ErrNoGenerationAdapter, http.StatusBadGateway},
	{adapter.ErrBadGateway, http.StatusBadGateway},
	{adapter.ErrUnauthorized, http.StatusBadGateway},
	{adapter.ErrBadRequest, http.StatusBadGateway},
	{adapter.ErrUnexpectedStatus, http.StatusBadGateway},
	{adapter.ErrMalformedResponse, http.StatusBadGateway},
	{store.ErrBackendUnavailable, http.StatusBadGateway},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError logs err and answers with its mapped status. Internal
// errors are not echoed to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Int("status", status).Send()
	} else {
		log.Warn().Err(err).Str("func", fn).Int("status", status).Send()
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	utils.WriteError(w, message, status)
}
