// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-ink-keeper/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUserID     = "user_id"
	FieldPostID     = "post_id"
	FieldContent    = "content"
	FieldName       = "name"
	FieldText       = "text"
	FieldStyle      = "style"
	FieldShape      = "shape"
	FieldFont       = "font"
	FieldWearLevel  = "wear_level"
	FieldSender     = "sender"
	FieldCounters   = "counters"
	FieldQuestionID = "question_id"
	FieldKeyword    = "keyword"
	FieldScore      = "score"
)

var (
	allowedSealStyles = []models.SealStyle{models.SealStyleZhuwen, models.SealStyleBaiwen}
	allowedSealShapes = []models.SealShape{models.SealShapeSquare, models.SealShapeCircle, models.SealShapeOval}
	allowedSealFonts  = []models.SealFont{models.SealFontZhuanshu, models.SealFontLishu, models.SealFontKaishu}
	allowedSenders    = []string{models.SenderUser, models.SenderAI}
)

// InkDataValidator implements [Validator] for every user record written
// through the data service. Value and pointer forms are both accepted.
type InkDataValidator struct {
}

// NewInkDataValidator constructs a new InkDataValidator and returns it as
// the Validator interface.
func NewInkDataValidator() Validator {
	return &InkDataValidator{}
}

func (v *InkDataValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Profile:
		return v.validateProfile(value, fields...)
	case *models.Profile:
		return v.validateProfile(*value, fields...)

	case models.Post:
		return v.validatePost(value, fields...)
	case *models.Post:
		return v.validatePost(*value, fields...)

	case models.Comment:
		return v.validateComment(value, fields...)
	case *models.Comment:
		return v.validateComment(*value, fields...)

	case models.Seal:
		return v.validateSeal(value, fields...)
	case *models.Seal:
		return v.validateSeal(*value, fields...)

	case models.ChatMessage:
		return v.validateChatMessage(value, fields...)
	case *models.ChatMessage:
		return v.validateChatMessage(*value, fields...)

	case models.ActivityUpdate:
		return v.validateActivityUpdate(value, fields...)
	case *models.ActivityUpdate:
		return v.validateActivityUpdate(*value, fields...)

	case models.QuizResult:
		return v.validateQuizResult(value, fields...)
	case *models.QuizResult:
		return v.validateQuizResult(*value, fields...)

	case models.FlyingFlowerGame:
		return v.validateFlyingFlowerGame(value, fields...)
	case *models.FlyingFlowerGame:
		return v.validateFlyingFlowerGame(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// ValidateUserID rejects blank ids and ids containing the key separator.
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" || strings.Contains(userID, "_") {
		return ErrInvalidUserID
	}
	return nil
}

// ValidateDate accepts calendar dates in the YYYY-MM-DD layout only.
func ValidateDate(date string) error {
	parsed, err := time.Parse(models.DateLayout, date)
	if err != nil || parsed.Format(models.DateLayout) != date {
		return ErrInvalidDate
	}
	return nil
}

func (v *InkDataValidator) validateProfile(p models.Profile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldName}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if err := ValidateUserID(p.ID); err != nil {
				return err
			}
		case FieldName:
			if strings.TrimSpace(p.Name) == "" {
				return ErrEmptyProfileName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *InkDataValidator) validatePost(p models.Post, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldContent}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if err := ValidateUserID(p.UserID); err != nil {
				return err
			}
		case FieldContent:
			if strings.TrimSpace(p.Content) == "" {
				return ErrEmptyContent
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *InkDataValidator) validateComment(c models.Comment, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldPostID, FieldContent}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if err := ValidateUserID(c.UserID); err != nil {
				return err
			}
		case FieldPostID:
			if strings.TrimSpace(c.PostID) == "" {
				return ErrEmptyPostID
			}
		case FieldContent:
			if strings.TrimSpace(c.Content) == "" {
				return ErrEmptyContent
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *InkDataValidator) validateSeal(s models.Seal, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldText, FieldStyle, FieldShape, FieldFont, FieldWearLevel}
	}

	for _, f := range fields {
		switch f {
		case FieldText:
			if strings.TrimSpace(s.Text) == "" {
				return ErrEmptySealText
			}
		case FieldStyle:
			if !slices.Contains(allowedSealStyles, s.Style) {
				return ErrInvalidSealStyle
			}
		case FieldShape:
			if !slices.Contains(allowedSealShapes, s.Shape) {
				return ErrInvalidSealShape
			}
		case FieldFont:
			if !slices.Contains(allowedSealFonts, s.Font) {
				return ErrInvalidSealFont
			}
		case FieldWearLevel:
			if s.WearLevel < models.MinWearLevel || s.WearLevel > models.MaxWearLevel {
				return ErrInvalidWearLevel
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *InkDataValidator) validateChatMessage(m models.ChatMessage, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSender}
	}

	for _, f := range fields {
		switch f {
		case FieldSender:
			if !slices.Contains(allowedSenders, m.Sender) {
				return ErrInvalidSender
			}
		case FieldContent:
			if strings.TrimSpace(m.Content) == "" {
				return ErrEmptyContent
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *InkDataValidator) validateActivityUpdate(u models.ActivityUpdate, fields ...string) error {
	if u.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if len(fields) == 0 {
		fields = []string{FieldCounters}
	}

	for _, f := range fields {
		switch f {
		case FieldCounters:
			for _, c := range []*int64{u.Minutes, u.WordsWritten, u.LettersSent, u.LoginCount, u.AICalls} {
				if c != nil && *c < 0 {
					return ErrNegativeCounter
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *InkDataValidator) validateQuizResult(r models.QuizResult, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldQuestionID}
	}

	for _, f := range fields {
		switch f {
		case FieldQuestionID:
			if strings.TrimSpace(r.QuestionID) == "" {
				return ErrEmptyQuestionID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *InkDataValidator) validateFlyingFlowerGame(g models.FlyingFlowerGame, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKeyword, FieldScore}
	}

	for _, f := range fields {
		switch f {
		case FieldKeyword:
			if strings.TrimSpace(g.Keyword) == "" {
				return ErrEmptyKeyword
			}
		case FieldScore:
			if g.Score < 0 {
				return ErrNegativeScore
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
