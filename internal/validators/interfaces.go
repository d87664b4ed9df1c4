// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user records before they reach a storage
// backend. Both backends rely on it: the embedded store has no schema of
// its own and PostgreSQL only enforces keys and uniqueness.
//
// Validation failures wrap [ErrInvalidData] so the data service and the HTTP
// layer can map every rule to one 400-class outcome.
package validators

import "context"

// Validator checks one domain value. fields restricts the check to the named
// rules, e.g. only "content" when a post is edited; no fields means all.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
