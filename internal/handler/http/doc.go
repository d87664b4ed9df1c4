// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the local HTTP API consumed by the ink UI.
//
// Every route except session creation and the version endpoint requires a
// session token. Request tracing, access logging and response compression
// are handled here before requests reach the service layer.
package http
