// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ink-keeper/internal/config"
	"github.com/MKhiriev/go-ink-keeper/internal/identity"
	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/internal/store"
	"github.com/MKhiriev/go-ink-keeper/internal/utils"
	"github.com/MKhiriev/go-ink-keeper/internal/validators"
	"github.com/MKhiriev/go-ink-keeper/models"
)

// sessionService is the concrete implementation of SessionService.
// Profiles live in the active backend; the signed-in profile is also cached
// in the embedded store so a session survives restarts.
type sessionService struct {
	profiles store.ProfileRepository
	sessions store.SessionRepository
	mode     models.StorageMode

	validator validators.Validator
	ids       *utils.UUIDGenerator
	clock     Clock

	// tokenSignKey is the HMAC secret used to sign and verify session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewSessionService constructs a SessionService over the repositories of
// storages, populated with token parameters from cfg.
func NewSessionService(storages *store.Storages, cfg config.App, clock Clock, logger *logger.Logger) SessionService {
	return &sessionService{
		profiles:      storages.Profiles,
		sessions:      storages.Sessions,
		mode:          storages.Mode,
		validator:     validators.NewInkDataValidator(),
		ids:           utils.NewUUIDGenerator(),
		clock:         clock,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Register stores a new profile and signs it in. An empty ID is assigned a
// fresh one. New accounts always start on the standard tier.
func (s *sessionService) Register(ctx context.Context, profile models.Profile) (models.Session, error) {
	log := logger.FromContext(ctx)

	if profile.ID == "" {
		profile.ID = s.ids.Generate()
	}
	if profile.JoinedDate.IsZero() {
		profile.JoinedDate = s.clock().UTC()
	}
	profile.IsPro = false

	if err := s.validator.Validate(ctx, profile); err != nil {
		log.Error().Err(err).Str("user_id", profile.ID).Msg("invalid profile provided")
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.profiles.SaveProfile(ctx, profile); err != nil {
		log.Err(err).Str("user_id", profile.ID).Msg("profile creation ended with error")
		return models.Session{}, fmt.Errorf("profile creation ended with error: %w", err)
	}

	return s.signIn(ctx, profile)
}

// Login signs in a registered profile.
func (s *sessionService) Login(ctx context.Context, userID string) (models.Session, error) {
	if err := validators.ValidateUserID(userID); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if errors.Is(err, store.ErrProfileNotFound) {
		// a device restored from an old backup may only know the cached profile
		cached, cacheErr := s.sessions.GetCurrentUser(ctx)
		if cacheErr != nil || cached.ID != userID {
			return models.Session{}, err
		}
		profile = cached
	} else if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("error getting profile")
		return models.Session{}, fmt.Errorf("error getting profile: %w", err)
	}

	return s.signIn(ctx, profile)
}

func (s *sessionService) signIn(ctx context.Context, profile models.Profile) (models.Session, error) {
	if err := s.sessions.SetCurrentUser(ctx, profile); err != nil {
		return models.Session{}, fmt.Errorf("error caching session: %w", err)
	}

	token, err := utils.GenerateJWTToken(s.tokenIssuer, profile.ID, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		return models.Session{}, fmt.Errorf("error creating session token: %w", err)
	}

	logger.FromContext(ctx).Info().Str("user_id", profile.ID).Str("mode", string(s.mode)).Msg("user signed in")
	return models.Session{Profile: profile, Token: token.SignedString, Mode: s.mode}, nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	if err := s.sessions.ClearCurrentUser(ctx); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	return nil
}

func (s *sessionService) CurrentUser(ctx context.Context) (models.Profile, error) {
	profile, err := s.sessions.GetCurrentUser(ctx)
	if errors.Is(err, store.ErrNoSession) {
		return models.Profile{}, ErrNoActiveSession
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("error reading session: %w", err)
	}
	return profile, nil
}

// Upgrade moves userID to the upgraded tier in the active backend and in the
// session cache.
func (s *sessionService) Upgrade(ctx context.Context, userID string) (models.Profile, error) {
	if err := validators.ValidateUserID(userID); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	cached, cacheErr := s.sessions.GetCurrentUser(ctx)
	cachedMatches := cacheErr == nil && cached.ID == userID

	err := s.profiles.SetPro(ctx, userID, true)
	switch {
	case errors.Is(err, store.ErrProfileNotFound) && cachedMatches:
		// profile only known from the cache; persist it so the tier sticks
		cached.IsPro = true
		if err = s.profiles.SaveProfile(ctx, cached); err != nil {
			return models.Profile{}, fmt.Errorf("error saving upgraded profile: %w", err)
		}
	case err != nil:
		return models.Profile{}, fmt.Errorf("error upgrading profile: %w", err)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("error reading upgraded profile: %w", err)
	}

	if cachedMatches {
		if err = s.sessions.SetCurrentUser(ctx, profile); err != nil {
			return models.Profile{}, fmt.Errorf("error caching session: %w", err)
		}
	}

	return profile, nil
}

// CurrentUserID implements identity.Provider. A user carried by ctx wins
// over the device session.
func (s *sessionService) CurrentUserID(ctx context.Context) (string, error) {
	if userID, ok := identity.UserIDFromContext(ctx); ok {
		return userID, nil
	}

	profile, err := s.sessions.GetCurrentUser(ctx)
	if errors.Is(err, store.ErrNoSession) {
		return "", identity.ErrNoIdentity
	}
	if err != nil {
		return "", fmt.Errorf("error reading session: %w", err)
	}
	return profile.ID, nil
}

// IsUpgraded implements identity.Provider. The tier is read from the backend
// on every call.
func (s *sessionService) IsUpgraded(ctx context.Context, userID string) (bool, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if errors.Is(err, store.ErrProfileNotFound) {
		cached, cacheErr := s.sessions.GetCurrentUser(ctx)
		if cacheErr == nil && cached.ID == userID {
			return cached.IsPro, nil
		}
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return profile.IsPro, nil
}

// ParseToken validates a session token issued by this service.
func (s *sessionService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("rejected session token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return token, nil
}
