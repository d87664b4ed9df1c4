// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ink-keeper/internal/config"
	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/models"
)

// Storages is the set of repositories of the backend chosen at startup.
// Local always points at the embedded store: it holds the session cache and
// is the source of backup documents in either mode.
type Storages struct {
	Mode models.StorageMode

	Local    KeyValueStore
	Sessions SessionRepository

	Profiles     ProfileRepository
	Activity     ActivityRepository
	Drafts       DraftRepository
	Chats        ChatRepository
	Quiz         QuizRepository
	Bootcamp     BootcampRepository
	Stories      StoryRepository
	Community    CommunityRepository
	Seals        SealRepository
	Favorites    FavoriteRepository
	FlyingFlower FlyingFlowerRepository

	closers []func() error
}

// NewStorages opens the embedded store and, when a cloud DSN is configured,
// the cloud database. A cloud database that cannot be reached or migrated is
// logged and local mode is used instead.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	localDB, err := NewConnectSQLite(ctx, cfg.Local, log)
	if err != nil {
		return nil, fmt.Errorf("error opening local store: %w", err)
	}
	if err := localDB.Migrate(); err != nil {
		_ = localDB.Close()
		return nil, fmt.Errorf("error migrating local store: %w", err)
	}
	kv := NewKeyValueStore(localDB, log)

	if cfg.Cloud.DSN == "" {
		log.Info().Str("mode", string(models.ModeLocal)).Msg("no cloud database configured")
		return NewLocalStorages(kv), nil
	}

	cloudDB, err := openCloud(ctx, cfg.Cloud, log)
	if err != nil {
		log.Warn().Err(err).Str("mode", string(models.ModeLocal)).Msg("cloud database unavailable, falling back to local store")
		return NewLocalStorages(kv), nil
	}

	log.Info().Str("mode", string(models.ModeCloud)).Msg("using cloud database")
	return NewCloudStorages(cloudDB, kv, log), nil
}

func openCloud(ctx context.Context, cfg config.CloudStorage, log *logger.Logger) (*DB, error) {
	db, err := NewConnectPostgres(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return db, nil
}

// NewLocalStorages wires every repository to the embedded store.
func NewLocalStorages(kv KeyValueStore) *Storages {
	return &Storages{
		Mode:         models.ModeLocal,
		Local:        kv,
		Sessions:     NewSessionRepository(kv),
		Profiles:     NewLocalProfileRepository(kv),
		Activity:     NewLocalActivityRepository(kv),
		Drafts:       NewLocalDraftRepository(kv),
		Chats:        NewLocalChatRepository(kv),
		Quiz:         NewLocalQuizRepository(kv),
		Bootcamp:     NewLocalBootcampRepository(kv),
		Stories:      NewLocalStoryRepository(kv),
		Community:    NewLocalCommunityRepository(kv),
		Seals:        NewLocalSealRepository(kv),
		Favorites:    NewLocalFavoriteRepository(kv),
		FlyingFlower: NewLocalFlyingFlowerRepository(kv),
		closers:      []func() error{kv.Close},
	}
}

// NewCloudStorages wires user data to the cloud database and keeps the
// session cache in the embedded store.
func NewCloudStorages(db *DB, kv KeyValueStore, log *logger.Logger) *Storages {
	return &Storages{
		Mode:         models.ModeCloud,
		Local:        kv,
		Sessions:     NewSessionRepository(kv),
		Profiles:     NewProfileRepository(db, log),
		Activity:     NewActivityRepository(db, log),
		Drafts:       NewDraftRepository(db, log),
		Chats:        NewChatRepository(db, log),
		Quiz:         NewQuizRepository(db, log),
		Bootcamp:     NewBootcampRepository(db, log),
		Stories:      NewStoryRepository(db, log),
		Community:    NewCommunityRepository(db, log),
		Seals:        NewSealRepository(db, log),
		Favorites:    NewFavoriteRepository(db, log),
		FlyingFlower: NewFlyingFlowerRepository(db, log),
		closers:      []func() error{db.Close, kv.Close},
	}
}

// Close releases every open database.
func (s *Storages) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
