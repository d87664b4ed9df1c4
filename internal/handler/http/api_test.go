// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-ink-keeper/internal/adapter"
	"github.com/MKhiriev/go-ink-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAPI_Session(t *testing.T) {
	api := newTestAPI(t)
	session := api.register(t, "u1", "Li Bai")

	assert.Equal(t, "u1", session.Profile.ID)
	assert.Equal(t, models.ModeLocal, session.Mode)

	rr := api.do(t, http.MethodGet, "/api/session", session.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Li Bai", decodeBody[models.Profile](t, rr).Name)

	rr = api.do(t, http.MethodPost, "/api/profile/upgrade", session.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decodeBody[models.Profile](t, rr).IsPro)

	rr = api.do(t, http.MethodDelete, "/api/session", session.Token, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = api.do(t, http.MethodGet, "/api/session", session.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = api.do(t, http.MethodPost, "/api/session/login", "", loginRequest{UserID: "u1"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decodeBody[models.Session](t, rr).Profile.IsPro)
}

func TestAPI_BadToken(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no scheme", header: "abc"},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "garbage token", header: "Bearer abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/api/stats", nil)
			require.NoError(t, err)
			req.Header.Set("Authorization", tt.header)

			rr := httptest.NewRecorder()
			api.router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestAPI_Activity(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "u1", "Li Bai").Token

	rr := api.do(t, http.MethodPut, "/api/activity/today", token, map[string]int{"minutes": 5})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = api.do(t, http.MethodPut, "/api/activity/today", token, map[string]int{"wordsWritten": 40})
	require.Equal(t, http.StatusOK, rr.Code)

	today := decodeBody[models.Activity](t, rr)
	assert.Equal(t, int64(5), today.Minutes)
	assert.Equal(t, int64(40), today.WordsWritten)

	rr = api.do(t, http.MethodPut, "/api/activity/today", token, map[string]int{"unknown": 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = api.do(t, http.MethodPut, "/api/activity/today", token, map[string]int{"minutes": -1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.do(t, http.MethodGet, "/api/activity/recent?days=3", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[[]models.Activity](t, rr), 1)

	rr = api.do(t, http.MethodGet, "/api/activity/recent?days=x", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.do(t, http.MethodGet, "/api/stats", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.UserStats{Minutes: 5, Words: 40, Days: 1}, decodeBody[models.UserStats](t, rr))
}

func TestAPI_QuotaAndGenerate(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "u1", "Li Bai").Token

	api.gateway.EXPECT().Generate(gomock.Any(), "a poem").Return("moonlight", nil).Times(2)

	for range 2 {
		rr := api.do(t, http.MethodPost, "/api/generate", token, generateRequest{Prompt: "a poem"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "moonlight", decodeBody[generateResponse](t, rr).Text)
	}

	rr := api.do(t, http.MethodGet, "/api/quota", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, decodeBody[quotaResponse](t, rr).Allowed)

	rr = api.do(t, http.MethodPost, "/api/generate", token, generateRequest{Prompt: "a poem"})
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	rr = api.do(t, http.MethodPost, "/api/profile/upgrade", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = api.do(t, http.MethodGet, "/api/quota", token, nil)
	assert.True(t, decodeBody[quotaResponse](t, rr).Allowed)

	rr = api.do(t, http.MethodPost, "/api/quota/increment", token, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = api.do(t, http.MethodPost, "/api/generate", token, generateRequest{Prompt: "  "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPI_GenerateGatewayErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "rate limited", err: adapter.ErrRateLimited, wantStatus: http.StatusTooManyRequests},
		{name: "bad gateway", err: adapter.ErrBadGateway, wantStatus: http.StatusBadGateway},
		{name: "unauthorized upstream", err: adapter.ErrUnauthorized, wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			token := api.register(t, "u1", "Li Bai").Token
			api.gateway.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", tt.err)

			rr := api.do(t, http.MethodPost, "/api/generate", token, generateRequest{Prompt: "x"})
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestAPI_DraftsAndChat(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "u1", "Li Bai").Token

	rr := api.do(t, http.MethodPut, "/api/drafts/current", token, draftRequest{Content: "Dear Du Fu,"})
	require.Equal(t, http.StatusNoContent, rr.Code)
	rr = api.do(t, http.MethodGet, "/api/drafts/current", token, nil)
	assert.Equal(t, "Dear Du Fu,", decodeBody[draftRequest](t, rr).Content)

	rr = api.do(t, http.MethodPost, "/api/drafts/history", token, draftRequest{Content: "v1"})
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = api.do(t, http.MethodGet, "/api/drafts/history", token, nil)
	assert.Len(t, decodeBody[[]models.DraftSnapshot](t, rr), 1)

	rr = api.do(t, http.MethodPost, "/api/chats/dufu/messages", token, models.ChatMessage{Sender: models.SenderUser, Content: "hello"})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotEmpty(t, decodeBody[models.ChatMessage](t, rr).ID)

	rr = api.do(t, http.MethodGet, "/api/chats/dufu", token, nil)
	assert.Len(t, decodeBody[[]models.ChatMessage](t, rr), 1)

	rr = api.do(t, http.MethodPut, "/api/chats/dufu", token, []models.ChatMessage{})
	require.Equal(t, http.StatusNoContent, rr.Code)
	rr = api.do(t, http.MethodGet, "/api/chats/dufu", token, nil)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestAPI_Community(t *testing.T) {
	api := newTestAPI(t)
	author := api.register(t, "u1", "Li Bai").Token

	rr := api.do(t, http.MethodPost, "/api/community/posts", author, createPostRequest{Content: "Quiet night", Author: models.Author{Name: "Li Bai"}})
	require.Equal(t, http.StatusCreated, rr.Code)
	post := decodeBody[models.Post](t, rr)

	reader := api.register(t, "u2", "Du Fu").Token

	rr = api.do(t, http.MethodPost, "/api/community/posts/"+post.ID+"/like", reader, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decodeBody[models.Post](t, rr).Likes)

	rr = api.do(t, http.MethodPost, "/api/community/posts/"+post.ID+"/comments", reader, addCommentRequest{Content: "Beautiful", AuthorName: "Du Fu"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = api.do(t, http.MethodGet, "/api/community/posts", author, nil)
	posts := decodeBody[[]models.Post](t, rr)
	require.Len(t, posts, 1)
	assert.Equal(t, []string{"u2"}, posts[0].LikedBy)
	require.Len(t, posts[0].Comments, 1)
	assert.Equal(t, "Beautiful", posts[0].Comments[0].Content)

	rr = api.do(t, http.MethodPost, "/api/community/posts/missing/like", reader, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAPI_Collection(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "u1", "Li Bai").Token

	rr := api.do(t, http.MethodPost, "/api/seals", token, models.Seal{Text: "李", Style: models.SealStyleZhuwen, Shape: models.SealShapeCircle, Font: models.SealFontZhuanshu, WearLevel: 10})
	require.Equal(t, http.StatusCreated, rr.Code)
	seal := decodeBody[models.Seal](t, rr)

	rr = api.do(t, http.MethodDelete, "/api/seals/"+seal.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = api.do(t, http.MethodDelete, "/api/seals/"+seal.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	api.do(t, http.MethodPut, "/api/favorites/8", token, nil)
	api.do(t, http.MethodPut, "/api/favorites/2", token, nil)
	api.do(t, http.MethodPut, "/api/favorites/8", token, nil)
	rr = api.do(t, http.MethodGet, "/api/favorites", token, nil)
	assert.Equal(t, []int{2, 8}, decodeBody[[]int](t, rr))

	rr = api.do(t, http.MethodPut, "/api/favorites/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.do(t, http.MethodPost, "/api/flying-flower/games", token, models.FlyingFlowerGame{Keyword: "花", Score: 6})
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = api.do(t, http.MethodGet, "/api/flying-flower/highscore", token, nil)
	assert.Equal(t, 6, decodeBody[highscoreResponse](t, rr).Highscore)
}

func TestAPI_LearningProgress(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "u1", "Li Bai").Token

	rr := api.do(t, http.MethodPost, "/api/quiz", token, models.QuizResult{QuestionID: "q1", IsCorrect: true})
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = api.do(t, http.MethodGet, "/api/quiz", token, nil)
	assert.Len(t, decodeBody[[]models.QuizResult](t, rr), 1)

	rr = api.do(t, http.MethodPost, "/api/bootcamp/days/3", token, models.BootcampSubmission{Input: "in", Feedback: "fb"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []int{3}, decodeBody[models.BootcampProgress](t, rr).CompletedDays)

	rr = api.do(t, http.MethodPost, "/api/bootcamp/days/0", token, models.BootcampSubmission{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	steps := []models.StoryStep{{Type: models.StepNarrative, Content: "rain"}}
	rr = api.do(t, http.MethodPut, "/api/stories/s1", token, steps)
	require.Equal(t, http.StatusNoContent, rr.Code)
	rr = api.do(t, http.MethodGet, "/api/stories/s1", token, nil)
	assert.Equal(t, steps, decodeBody[[]models.StoryStep](t, rr))
}

func TestAPI_BackupRoundTrip(t *testing.T) {
	source := newTestAPI(t)
	token := source.register(t, "u1", "Li Bai").Token
	source.do(t, http.MethodPut, "/api/favorites", token, []int{4, 1})
	source.do(t, http.MethodPut, "/api/drafts/current", token, draftRequest{Content: "kept"})

	rr := source.do(t, http.MethodGet, "/api/backup", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "ink-backup-u1.json")
	document := rr.Body.String()

	var doc models.BackupDocument
	require.NoError(t, json.Unmarshal([]byte(document), &doc))
	assert.Equal(t, "[1,4]", doc["ink_favs_u1"])

	target := newTestAPI(t)
	other := target.register(t, "u9", "Other").Token

	rr = target.do(t, http.MethodPost, "/api/backup", other, "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = target.do(t, http.MethodPost, "/api/backup", other, document)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = target.do(t, http.MethodPost, "/api/session/login", "", loginRequest{UserID: "u1"})
	require.Equal(t, http.StatusOK, rr.Code)
	restored := decodeBody[models.Session](t, rr).Token

	rr = target.do(t, http.MethodGet, "/api/drafts/current", restored, nil)
	assert.Equal(t, "kept", decodeBody[draftRequest](t, rr).Content)
}

func TestAPI_Version(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodGet, "/api/version", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	info := decodeBody[models.AppInfo](t, rr)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, models.ModeLocal, info.Mode)
}
