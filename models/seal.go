// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SealStyle is the carving style of a seal.
type SealStyle string

// SealShape is the outline of a seal.
type SealShape string

// SealFont is the script a seal is carved in.
type SealFont string

const (
	SealStyleZhuwen SealStyle = "zhuwen"
	SealStyleBaiwen SealStyle = "baiwen"

	SealShapeSquare SealShape = "square"
	SealShapeCircle SealShape = "circle"
	SealShapeOval   SealShape = "oval"

	SealFontZhuanshu SealFont = "zhuanshu"
	SealFontLishu    SealFont = "lishu"
	SealFontKaishu   SealFont = "kaishu"
)

// Wear level bounds.
const (
	MinWearLevel = 0
	MaxWearLevel = 100
)

// Seal is a custom stamp design. Seals are immutable; they can only be deleted.
type Seal struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Style     SealStyle `json:"style"`
	Shape     SealShape `json:"shape"`
	Font      SealFont  `json:"font"`
	WearLevel int       `json:"wearLevel"`
	CreatedAt time.Time `json:"createdAt"`
}
