// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header.
var (
	// ErrEmptyAuthorizationHeader is returned when the request has no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not of
	// the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrNoUserInContext is returned by handlers mounted behind auth when
	// the request context carries no user.
	ErrNoUserInContext = errors.New("no user in request context")

	// ErrInvalidPathParam is returned when a numeric path or query parameter
	// cannot be parsed.
	ErrInvalidPathParam = errors.New("invalid path parameter")
)
