// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned by [KeyValueStore.Get] when no entry exists
	// under the requested key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrVersionConflict is returned when a compare-and-swap fails because the
	// stored version differs from the one the writer read.
	ErrVersionConflict = errors.New("record version conflict occurred")

	// ErrProfileNotFound is returned when no profile exists for a user id.
	ErrProfileNotFound = errors.New("profile was not found")

	// ErrNoSession is returned when the device has no cached signed-in user.
	ErrNoSession = errors.New("no cached session")

	// ErrPostNotFound is returned when a like or comment targets a post that
	// does not exist.
	ErrPostNotFound = errors.New("post was not found")

	// ErrSealNotFound is returned when deleting a seal the user does not own.
	ErrSealNotFound = errors.New("seal was not found")

	// ErrBackendUnavailable is returned when the cloud backend cannot be
	// reached or refuses the schema.
	ErrBackendUnavailable = errors.New("storage backend unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to executing statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")

	// ErrEncodingValue is returned when a record cannot be serialized to or
	// from its stored text form.
	ErrEncodingValue = errors.New("failed to encode stored value")
)
