// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// StorageMode names the backend chosen at startup.
type StorageMode string

const (
	ModeLocal StorageMode = "local"
	ModeCloud StorageMode = "cloud"
)

// IsCloud reports whether the remote relational backend is active.
func (m StorageMode) IsCloud() bool {
	return m == ModeCloud
}
