// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound client of the external
// text-generation service.
//
// The primary abstraction is [GenerationAdapter], which decouples the service
// layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPGenerationAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrRateLimited] for
// 429, [ErrUnauthorized] for 401).
package adapter

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/generation_adapter_mock.go -package=mock

// GenerationAdapter sends prompts to the text-generation service.
type GenerationAdapter interface {
	// Generate returns the generated text for prompt. It never retries; the
	// caller decides whether a failed call counts against the quota.
	Generate(ctx context.Context, prompt string) (string, error)
}
