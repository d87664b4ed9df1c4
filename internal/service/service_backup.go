// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/internal/store"
	"github.com/MKhiriev/go-ink-keeper/internal/validators"
	"github.com/MKhiriev/go-ink-keeper/models"
)

// backupService exports and restores the embedded store. Cloud-resident
// records are not part of a backup.
type backupService struct {
	kv   store.KeyValueStore
	mode models.StorageMode

	logger *logger.Logger
}

func NewBackupService(kv store.KeyValueStore, mode models.StorageMode, logger *logger.Logger) BackupService {
	return &backupService{kv: kv, mode: mode, logger: logger}
}

// ExportAll collects every embedded-store key of userID, values verbatim,
// plus the profile under [models.ProfileBackupKey].
func (b *backupService) ExportAll(ctx context.Context, userID string) (models.BackupDocument, error) {
	if err := validators.ValidateUserID(userID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	doc := models.BackupDocument{}
	for _, space := range store.BackupKeySpaces {
		if space.SubKey {
			entries, err := b.kv.Scan(ctx, store.UserSubKeyPrefix(space.Prefix, userID))
			if err != nil {
				return nil, fmt.Errorf("error exporting %s: %w", space.Prefix, err)
			}
			for _, e := range entries {
				doc[e.Key] = e.Value
			}
			continue
		}

		key := store.UserKey(space.Prefix, userID, "")
		entry, err := b.kv.Get(ctx, key)
		if errors.Is(err, store.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error exporting %s: %w", key, err)
		}
		doc[key] = entry.Value
	}

	profile, err := b.exportProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != "" {
		doc[models.ProfileBackupKey] = profile
	}

	b.logger.Info().Str("user_id", userID).Int("keys", len(doc)).Msg("backup exported")
	return doc, nil
}

// exportProfile prefers the session cache and falls back to the registered
// profile of this device.
func (b *backupService) exportProfile(ctx context.Context, userID string) (string, error) {
	entry, err := b.kv.Get(ctx, store.KeyCurrentUser)
	switch {
	case err == nil:
		if p, decodeErr := (store.JSONCodec[models.Profile]{}).Decode(entry.Value); decodeErr == nil && p.ID == userID {
			return entry.Value, nil
		}
	case !errors.Is(err, store.ErrKeyNotFound):
		return "", fmt.Errorf("error exporting profile: %w", err)
	}

	entry, err = b.kv.Get(ctx, store.UserKey(store.PrefixProfile, userID, ""))
	if errors.Is(err, store.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error exporting profile: %w", err)
	}
	return entry.Value, nil
}

// ImportAll writes every field of document to the embedded store in one
// transaction, overwriting existing keys. It never panics and reports
// failure as false.
func (b *backupService) ImportAll(ctx context.Context, document []byte) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().Any("panic", r).Msg("backup import panicked")
			ok = false
		}
	}()

	values, err := b.decode(document)
	if err != nil {
		b.logger.Warn().Err(err).Msg("rejected malformed backup document")
		return false
	}

	if err = b.kv.SetMany(ctx, values); err != nil {
		b.logger.Err(err).Msg("error writing backup document")
		return false
	}

	b.logger.Info().Int("keys", len(values)).Msg("backup imported")
	return true
}

// decode parses the whole document before anything is written. String
// fields are stored as they are; any other JSON value as its compact text.
func (b *backupService) decode(document []byte) (map[string]string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(document, &fields); err != nil {
		return nil, fmt.Errorf("document is not a JSON object: %w", err)
	}
	if fields == nil {
		return nil, errors.New("document is null")
	}

	values := make(map[string]string, len(fields))
	for key, raw := range fields {
		if key == "" {
			return nil, errors.New("document has an empty key")
		}

		value, err := storedValue(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}

		if key == models.ProfileBackupKey {
			// a document exported without a signed-in user carries no profile
			if isAbsentProfile(raw, value) {
				continue
			}
			if err = b.restoreProfile(values, value); err != nil {
				return nil, err
			}
			continue
		}
		values[key] = value
	}
	return values, nil
}

func (b *backupService) restoreProfile(values map[string]string, encoded string) error {
	profile, err := (store.JSONCodec[models.Profile]{}).Decode(encoded)
	if err != nil {
		return fmt.Errorf("field %q: %w", models.ProfileBackupKey, err)
	}
	if b.mode.IsCloud() {
		return nil
	}
	if err = validators.ValidateUserID(profile.ID); err != nil {
		return fmt.Errorf("field %q: %w", models.ProfileBackupKey, err)
	}

	values[store.UserKey(store.PrefixProfile, profile.ID, "")] = encoded
	values[store.KeyCurrentUser] = encoded
	return nil
}

func isAbsentProfile(raw json.RawMessage, value string) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null")) || strings.TrimSpace(value) == "" || value == "null"
}

func storedValue(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return buf.String(), nil
}
