// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Session is returned to the UI after login or registration.
type Session struct {
	Profile Profile     `json:"profile"`
	Token   string      `json:"token"`
	Mode    StorageMode `json:"mode"`
}

// Token wraps a parsed session JWT.
//
// UserID is a cached copy of the "sub" claim.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	SignedString string `json:"-"`

	UserID string `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
