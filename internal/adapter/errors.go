// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrEmptyPrompt       = errors.New("empty prompt")
	ErrNoGenerationURL   = errors.New("generation service url is not configured")
	ErrBadRequest        = errors.New("bad request")
	ErrUnauthorized      = errors.New("generation service unauthorized")
	ErrRateLimited       = errors.New("generation service rate limited")
	ErrBadGateway        = errors.New("generation service unavailable")
	ErrUnexpectedStatus  = errors.New("unexpected generation service status")
	ErrMalformedResponse = errors.New("malformed generation service response")
)
