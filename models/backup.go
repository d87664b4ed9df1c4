// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ProfileBackupKey is the top-level backup field that carries the cached
// session profile.
const ProfileBackupKey = "user_profile"

// BackupDocument maps every exported storage key to its stored encoding.
// It serializes as a flat JSON object, one field per key.
type BackupDocument map[string]string
