// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/MKhiriev/go-ink-keeper/models"
)

// Clock returns the current device time. Services take a Clock so tests can
// move across day boundaries.
type Clock func() time.Time

// SystemClock reads the local wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// today is the device-local calendar date of c.
func today(c Clock) string {
	return c().Format(models.DateLayout)
}
