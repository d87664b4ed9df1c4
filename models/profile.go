// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Profile is the user account record shared by every other entity through
// its ID. The ID is assigned once at registration and never changes.
type Profile struct {
	// ID is the stable user identifier used as the owner key of every record.
	ID string `json:"id"`

	// Name is the display name shown next to community posts.
	Name string `json:"name"`

	// StyleName is the courtesy name the user signs letters with.
	StyleName string `json:"styleName"`

	// AvatarColor is an opaque UI token (e.g. "bg-amber-700").
	AvatarColor string `json:"avatarColor"`

	// IsPro marks upgraded accounts, which get the higher generation quota.
	IsPro bool `json:"isPro"`

	// JoinedDate is the registration timestamp.
	JoinedDate time.Time `json:"joinedDate"`
}

// IsEmpty reports whether p is the zero profile returned for unknown users.
func (p Profile) IsEmpty() bool {
	return p.ID == ""
}
