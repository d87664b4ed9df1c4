// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/session/register", h.register)
		r.Post("/api/session/login", h.login)
		r.Get("/api/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/session", h.currentUser)
		r.Delete("/api/session", h.logout)
		r.Post("/api/profile/upgrade", h.upgrade)

		r.Route("/api/activity", func(r chi.Router) {
			r.Get("/today", h.getTodayActivity)
			r.Put("/today", h.updateTodayActivity)
			r.Get("/recent", h.getRecentActivity)
		})
		r.Get("/api/stats", h.getUserStats)

		r.Route("/api/quota", func(r chi.Router) {
			r.Get("/", h.checkQuota)
			r.Post("/increment", h.incrementUsage)
		})
		r.Post("/api/generate", h.generate)

		r.Route("/api/drafts", func(r chi.Router) {
			r.Get("/current", h.getCurrentDraft)
			r.Put("/current", h.saveCurrentDraft)
			r.Get("/history", h.getDraftHistory)
			r.Post("/history", h.saveDraftSnapshot)
		})

		r.Route("/api/chats/{threadID}", func(r chi.Router) {
			r.Get("/", h.getChat)
			r.Put("/", h.saveChat)
			r.Post("/messages", h.appendChatMessage)
		})

		r.Get("/api/quiz", h.getQuizHistory)
		r.Post("/api/quiz", h.saveQuizResult)

		r.Route("/api/bootcamp", func(r chi.Router) {
			r.Get("/", h.getBootcampProgress)
			r.Put("/", h.saveBootcampProgress)
			r.Post("/days/{day}", h.submitBootcampDay)
		})

		r.Get("/api/stories/{scenarioID}", h.getStoryProgress)
		r.Put("/api/stories/{scenarioID}", h.saveStoryProgress)

		r.Route("/api/community/posts", func(r chi.Router) {
			r.Get("/", h.listPosts)
			r.Post("/", h.createPost)
			r.Post("/{postID}/like", h.toggleLike)
			r.Post("/{postID}/comments", h.addComment)
		})

		r.Route("/api/seals", func(r chi.Router) {
			r.Get("/", h.getSeals)
			r.Post("/", h.saveSeal)
			r.Delete("/{sealID}", h.deleteSeal)
		})

		r.Route("/api/favorites", func(r chi.Router) {
			r.Get("/", h.getFavorites)
			r.Put("/", h.saveFavorites)
			r.Put("/{phraseID}", h.addFavorite)
			r.Delete("/{phraseID}", h.removeFavorite)
		})

		r.Route("/api/flying-flower", func(r chi.Router) {
			r.Get("/games", h.getFlyingFlowerGames)
			r.Post("/games", h.saveFlyingFlowerGame)
			r.Get("/highscore", h.getFlyingFlowerHighscore)
		})

		r.Get("/api/backup", h.exportBackup)
		r.Post("/api/backup", h.importBackup)
	})

	return router
}
