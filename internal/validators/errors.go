// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"fmt"
)

// ErrInvalidData is wrapped by every validation error of this package.
var ErrInvalidData = errors.New("invalid data")

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID      = fmt.Errorf("%w: invalid user ID", ErrInvalidData)
	ErrInvalidDate        = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidData)
	ErrEmptyContent       = fmt.Errorf("%w: content is required", ErrInvalidData)
	ErrEmptyPostID        = fmt.Errorf("%w: post id is required", ErrInvalidData)
	ErrEmptySealText      = fmt.Errorf("%w: seal text is required", ErrInvalidData)
	ErrInvalidSealStyle   = fmt.Errorf("%w: invalid seal style", ErrInvalidData)
	ErrInvalidSealShape   = fmt.Errorf("%w: invalid seal shape", ErrInvalidData)
	ErrInvalidSealFont    = fmt.Errorf("%w: invalid seal font", ErrInvalidData)
	ErrInvalidWearLevel   = fmt.Errorf("%w: wear level must be within [0, 100]", ErrInvalidData)
	ErrInvalidSender      = fmt.Errorf("%w: invalid message sender", ErrInvalidData)
	ErrNegativeCounter    = fmt.Errorf("%w: activity counters cannot be negative", ErrInvalidData)
	ErrNoFieldsToUpdate   = fmt.Errorf("%w: at least one field must be provided for update", ErrInvalidData)
	ErrEmptyQuestionID    = fmt.Errorf("%w: question id is required", ErrInvalidData)
	ErrEmptyKeyword       = fmt.Errorf("%w: keyword is required", ErrInvalidData)
	ErrNegativeScore      = fmt.Errorf("%w: score cannot be negative", ErrInvalidData)
	ErrInvalidBootcampDay = fmt.Errorf("%w: bootcamp day must be positive", ErrInvalidData)
	ErrEmptyProfileName   = fmt.Errorf("%w: profile name is required", ErrInvalidData)
)
