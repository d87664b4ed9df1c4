// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package identity carries the signed-in user through a request and defines
// how the rest of the application asks who that user is.
package identity

import (
	"context"
	"errors"
)

// ErrNoIdentity is returned when neither the request nor the device knows a
// signed-in user.
var ErrNoIdentity = errors.New("no signed-in user")

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the user identifier in the context.
var UserIDCtxKey = contextKey("userID")

// WithUserID returns a copy of ctx that carries userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// UserIDFromContext retrieves the user identifier from the context.
//
// ok is false when the value is missing, empty or of an unexpected type.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

//go:generate mockgen -source=identity.go -destination=../mock/identity_provider_mock.go -package=mock

// Provider answers who is signed in and which quota tier they have. The tier
// is read fresh on every call so an upgrade takes effect at once.
type Provider interface {
	// CurrentUserID returns [ErrNoIdentity] when nobody is signed in.
	CurrentUserID(ctx context.Context) (string, error)
	IsUpgraded(ctx context.Context, userID string) (bool, error)
}
