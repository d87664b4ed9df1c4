// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	kvGet = `SELECT key, value, version FROM kv WHERE key = ?;`

	kvExists = `SELECT EXISTS (SELECT 1 FROM kv WHERE key = ?);`

	kvSet = `INSERT INTO kv (key, value, version, updated_at)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, version = kv.version + 1, updated_at = CURRENT_TIMESTAMP;`

	kvInsertIfAbsent = `INSERT INTO kv (key, value, version, updated_at)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO NOTHING;`

	kvUpdateIfVersion = `UPDATE kv
		SET value = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE key = ? AND version = ?;`

	kvDelete = `DELETE FROM kv WHERE key = ?;`

	// substr/length count characters on both sides, unlike LIKE which is
	// case-insensitive for ASCII.
	kvScan = `SELECT key, value, version FROM kv
		WHERE substr(key, 1, length(?1)) = ?1
		ORDER BY key;`
)
