// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-ink-keeper/models"
)

// localProfileRepository keeps the profiles registered on this device under
// ink_profile_<id>.
type localProfileRepository struct {
	profiles KeyedRecord[models.Profile]
}

func NewLocalProfileRepository(kv KeyValueStore) ProfileRepository {
	return &localProfileRepository{profiles: NewKeyedRecord[models.Profile](kv, PrefixProfile, nil)}
}

func (r *localProfileRepository) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	p, err := r.profiles.Read(ctx, userID, "")
	if err != nil {
		return models.Profile{}, err
	}
	if p.IsEmpty() {
		return models.Profile{}, ErrProfileNotFound
	}
	return p, nil
}

func (r *localProfileRepository) SaveProfile(ctx context.Context, profile models.Profile) error {
	return r.profiles.Write(ctx, profile.ID, "", profile)
}

func (r *localProfileRepository) SetPro(ctx context.Context, userID string, isPro bool) error {
	_, err := r.profiles.Update(ctx, userID, "", func(p models.Profile) (models.Profile, error) {
		if p.IsEmpty() {
			return p, ErrProfileNotFound
		}
		p.IsPro = isPro
		return p, nil
	})
	return err
}

// sessionRepository caches the signed-in profile under a single device key.
type sessionRepository struct {
	kv KeyValueStore
}

func NewSessionRepository(kv KeyValueStore) SessionRepository {
	return &sessionRepository{kv: kv}
}

func (r *sessionRepository) GetCurrentUser(ctx context.Context) (models.Profile, error) {
	entry, err := r.kv.Get(ctx, KeyCurrentUser)
	if errors.Is(err, ErrKeyNotFound) {
		return models.Profile{}, ErrNoSession
	}
	if err != nil {
		return models.Profile{}, err
	}

	p, err := JSONCodec[models.Profile]{}.Decode(entry.Value)
	if err != nil || p.IsEmpty() {
		return models.Profile{}, ErrNoSession
	}
	return p, nil
}

func (r *sessionRepository) SetCurrentUser(ctx context.Context, profile models.Profile) error {
	encoded, err := JSONCodec[models.Profile]{}.Encode(profile)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, KeyCurrentUser, encoded)
}

func (r *sessionRepository) ClearCurrentUser(ctx context.Context) error {
	return r.kv.Delete(ctx, KeyCurrentUser)
}
