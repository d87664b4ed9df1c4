// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrNoActiveSession = errors.New("no active session")
	ErrInvalidToken    = errors.New("invalid session token")

	ErrQuotaExceeded = errors.New("daily generation quota exceeded")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrNoGenerationAdapter   = errors.New("generation service is not configured")
)
