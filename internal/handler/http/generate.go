// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-ink-keeper/internal/adapter"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// generate forwards a prompt to the generation gateway under the caller's
// daily quota.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req generateRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeServiceError(w, r, "*Handler.generate", adapter.ErrEmptyPrompt)
		return
	}

	text, err := h.services.Generation.Generate(r.Context(), id, req.Prompt)
	if err != nil {
		writeServiceError(w, r, "*Handler.generate", err)
		return
	}
	writeOK(w, generateResponse{Text: text})
}
