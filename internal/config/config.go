// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-ink-keeper application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file and finally the built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the embedded store path and the optional cloud DSN.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP API.
	Server Server `envPrefix:"SERVER_"`

	// Quota holds the daily generation limits per account tier.
	Quota Quota `envPrefix:"QUOTA_"`

	// Adapter holds the outbound generation gateway settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// Args holds the positional command-line arguments left after the flags,
	// such as the subcommand of inkctl.
	Args []string `json:"-"`
}

// App holds application-level configuration values that control the session
// token lifecycle and versioning.
type App struct {
	// TokenSignKey is the secret key used to sign and verify session tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the settings of both persistence backends.
type Storage struct {
	Local LocalStorage `envPrefix:"LOCAL_"`
	Cloud CloudStorage `envPrefix:"CLOUD_"`
}

// LocalStorage configures the embedded SQLite key-value store. It is always
// opened, because it caches the session even in cloud mode.
type LocalStorage struct {
	// DSN is the SQLite file path (e.g. "ink.db").
	// Env: STORAGE_LOCAL_DSN
	DSN string `env:"DSN"`
}

// CloudStorage configures the optional PostgreSQL backend. Leaving DSN empty
// selects local mode.
type CloudStorage struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_CLOUD_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// RequestTimeout bounds every storage call made by the data service.
	// Env: STORAGE_CLOUD_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxOpenConns caps the connection pool.
	// Env: STORAGE_CLOUD_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Quota holds the daily generation call limits.
type Quota struct {
	// Env: QUOTA_STANDARD_LIMIT
	StandardLimit int64 `env:"STANDARD_LIMIT"`

	// Env: QUOTA_UPGRADED_LIMIT
	UpgradedLimit int64 `env:"UPGRADED_LIMIT"`
}

// Adapter configures the external text-generation gateway.
type Adapter struct {
	// GenerationURL is the base URL of the gateway.
	// Env: ADAPTER_GENERATION_URL
	GenerationURL string `env:"GENERATION_URL"`

	// APIKey is sent as a bearer token. Never logged.
	// Env: ADAPTER_API_KEY
	APIKey string `env:"API_KEY"`

	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// StudyTimerInterval is how often an active study session is credited
	// one minute per elapsed minute.
	// Env: WORKERS_STUDY_TIMER_INTERVAL
	StudyTimerInterval time.Duration `env:"STUDY_TIMER_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
