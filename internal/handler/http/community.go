// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ink-keeper/models"
	"github.com/go-chi/chi/v5"
)

type createPostRequest struct {
	Content string        `json:"content"`
	Author  models.Author `json:"author"`
}

type addCommentRequest struct {
	Content    string `json:"content"`
	AuthorName string `json:"authorName"`
}

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	writeOK(w, h.services.Data.ListPosts(r.Context()))
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req createPostRequest
	if !decode(w, r, &req) {
		return
	}

	post, err := h.services.Data.CreatePost(r.Context(), id, req.Content, req.Author)
	if err != nil {
		writeServiceError(w, r, "*Handler.createPost", err)
		return
	}
	writeCreated(w, post)
}

func (h *Handler) toggleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	post, err := h.services.Data.ToggleLike(r.Context(), id, chi.URLParam(r, "postID"))
	if err != nil {
		writeServiceError(w, r, "*Handler.toggleLike", err)
		return
	}
	writeOK(w, post)
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req addCommentRequest
	if !decode(w, r, &req) {
		return
	}

	comment, err := h.services.Data.AddComment(r.Context(), id, chi.URLParam(r, "postID"), req.Content, req.AuthorName)
	if err != nil {
		writeServiceError(w, r, "*Handler.addComment", err)
		return
	}
	writeCreated(w, comment)
}
