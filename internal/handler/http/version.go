// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ink-keeper/internal/utils"
)

// getServerVersion reports the running version, build metadata and the
// storage mode chosen at startup.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	writeOK(w, h.services.AppInfoService.GetAppInfo(r.Context()))
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	utils.WriteError(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
