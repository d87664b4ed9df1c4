// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/internal/utils"
)

const errMalformedBackup = "malformed backup document"

// exportBackup downloads every embedded-store record of the caller as one
// JSON object.
func (h *Handler) exportBackup(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	doc, err := h.services.Data.ExportAll(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "*Handler.exportBackup", err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "ink-backup-"+id+".json"))
	writeOK(w, doc)
}

// importBackup restores a document produced by exportBackup. Nothing is
// written when the document is malformed.
func (h *Handler) importBackup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	document, err := io.ReadAll(io.LimitReader(r.Body, utils.MaxJSONBodyBytes))
	if err != nil {
		log.Err(err).Str("func", "*Handler.importBackup").Msg("error reading backup body")
		utils.WriteError(w, errMalformedBackup, http.StatusBadRequest)
		return
	}

	if !h.services.Data.ImportAll(r.Context(), document) {
		utils.WriteError(w, errMalformedBackup, http.StatusBadRequest)
		return
	}

	log.Info().Int("bytes", len(document)).Msg("backup restored")
	w.WriteHeader(http.StatusNoContent)
}
