// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles the go-ink-keeper daemon from its configuration:
// storages, the optional generation gateway, services, the HTTP server and
// background workers. It owns their lifecycle from start to shutdown.
package app
