// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-ink-keeper/internal/config"
	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/internal/utils"
)

const generatePath = "/generate"

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

type httpGenerationAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPGenerationAdapter constructs an HTTP/REST implementation of
// [GenerationAdapter]. It normalises the base URL from cfg.GenerationURL,
// applies cfg.RequestTimeout and attaches cfg.APIKey as a bearer token.
//
// Returns [ErrNoGenerationURL] if the URL is empty, or an error if it cannot
// be parsed.
func NewHTTPGenerationAdapter(cfg config.Adapter, logger *logger.Logger) (GenerationAdapter, error) {
	if strings.TrimSpace(cfg.GenerationURL) == "" {
		return nil, ErrNoGenerationURL
	}

	baseURL, err := normalizeBaseURL(cfg.GenerationURL)
	if err != nil {
		return nil, fmt.Errorf("invalid generation service url: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout).WithBearer(cfg.APIKey)

	return &httpGenerationAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Generate implements [GenerationAdapter]. It POSTs {"prompt": …} to
// /generate and returns the "text" field of the response.
func (h *httpGenerationAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	var out generateResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(generateRequest{Prompt: prompt}).
		SetResult(&out).
		Post(generatePath)
	if err != nil {
		h.logger.Err(err).Str("func", "httpGenerationAdapter.Generate").Msg("generation request failed")
		return "", fmt.Errorf("%w: %w", ErrBadGateway, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Warn().Err(err).Str("func", "httpGenerationAdapter.Generate").Int("status", resp.StatusCode()).Msg("generation service returned an error")
		return "", err
	}

	if out.Text == "" {
		return "", ErrMalformedResponse
	}

	return out.Text, nil
}
