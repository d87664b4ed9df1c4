// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	DefaultLocalDSN              = "ink.db"
	DefaultCloudRequestTimeout   = 5 * time.Second
	DefaultCloudMaxOpenConns     = 10
	DefaultHTTPAddress           = "localhost:8080"
	DefaultServerRequestTimeout  = 30 * time.Second
	DefaultTokenIssuer           = "go-ink-keeper"
	DefaultTokenDuration         = 24 * time.Hour
	DefaultStandardLimit         = 20
	DefaultUpgradedLimit         = 200
	DefaultAdapterRequestTimeout = 60 * time.Second
	DefaultStudyTimerInterval    = time.Minute
)

// defaults returns the values used for every field no other source set.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
		},
		Storage: Storage{
			Local: LocalStorage{DSN: DefaultLocalDSN},
			Cloud: CloudStorage{
				RequestTimeout: DefaultCloudRequestTimeout,
				MaxOpenConns:   DefaultCloudMaxOpenConns,
			},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultServerRequestTimeout,
		},
		Quota: Quota{
			StandardLimit: DefaultStandardLimit,
			UpgradedLimit: DefaultUpgradedLimit,
		},
		Adapter: Adapter{
			RequestTimeout: DefaultAdapterRequestTimeout,
		},
		Workers: Workers{
			StudyTimerInterval: DefaultStudyTimerInterval,
		},
	}
}
