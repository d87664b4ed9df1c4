// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-ink-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validSeal() models.Seal {
	return models.Seal{
		Text:      "墨客",
		Style:     models.SealStyleZhuwen,
		Shape:     models.SealShapeSquare,
		Font:      models.SealFontZhuanshu,
		WearLevel: 30,
	}
}

func TestNewInkDataValidator(t *testing.T) {
	v := NewInkDataValidator()
	require.NotNil(t, v)
	assert.IsType(t, &InkDataValidator{}, v)
}

func TestInkDataValidator_UnsupportedType(t *testing.T) {
	err := NewInkDataValidator().Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestInkDataValidator_Seal(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *models.Seal)
		want   error
	}{
		{name: "valid", modify: func(s *models.Seal) {}},
		{name: "wear level lower bound", modify: func(s *models.Seal) { s.WearLevel = 0 }},
		{name: "wear level upper bound", modify: func(s *models.Seal) { s.WearLevel = 100 }},
		{name: "empty text", modify: func(s *models.Seal) { s.Text = " " }, want: ErrEmptySealText},
		{name: "bad style", modify: func(s *models.Seal) { s.Style = "red" }, want: ErrInvalidSealStyle},
		{name: "bad shape", modify: func(s *models.Seal) { s.Shape = "hexagon" }, want: ErrInvalidSealShape},
		{name: "bad font", modify: func(s *models.Seal) { s.Font = "comic" }, want: ErrInvalidSealFont},
		{name: "wear level negative", modify: func(s *models.Seal) { s.WearLevel = -1 }, want: ErrInvalidWearLevel},
		{name: "wear level too high", modify: func(s *models.Seal) { s.WearLevel = 101 }, want: ErrInvalidWearLevel},
	}

	v := NewInkDataValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seal := validSeal()
			tt.modify(&seal)

			err := v.Validate(context.Background(), &seal)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidData)
		})
	}
}

func TestInkDataValidator_PostAndComment(t *testing.T) {
	v := NewInkDataValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.Post{UserID: "u1", Content: "hello"}))
	assert.ErrorIs(t, v.Validate(ctx, models.Post{UserID: "u1", Content: "  "}), ErrEmptyContent)
	assert.ErrorIs(t, v.Validate(ctx, models.Post{Content: "hello"}), ErrInvalidUserID)

	assert.NoError(t, v.Validate(ctx, models.Comment{UserID: "u1", PostID: "p1", Content: "nice"}))
	assert.ErrorIs(t, v.Validate(ctx, models.Comment{UserID: "u1", PostID: "p1"}), ErrEmptyContent)
	assert.ErrorIs(t, v.Validate(ctx, models.Comment{UserID: "u1", Content: "nice"}), ErrEmptyPostID)
	assert.NoError(t, v.Validate(ctx, models.Comment{UserID: "u1", Content: "nice"}, FieldContent))
}

func TestInkDataValidator_Profile(t *testing.T) {
	v := NewInkDataValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, &models.Profile{ID: "u1", Name: "Li Bai"}))
	assert.ErrorIs(t, v.Validate(ctx, models.Profile{ID: "u1"}), ErrEmptyProfileName)
	assert.ErrorIs(t, v.Validate(ctx, models.Profile{ID: "u_1", Name: "x"}), ErrInvalidUserID)
	assert.ErrorIs(t, v.Validate(ctx, models.Profile{}, "unknown"), ErrUnknownField)
}

func TestInkDataValidator_ActivityUpdate(t *testing.T) {
	v := NewInkDataValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ActivityUpdate{Minutes: ptr(int64(5))}))
	assert.ErrorIs(t, v.Validate(ctx, models.ActivityUpdate{}), ErrNoFieldsToUpdate)
	assert.ErrorIs(t, v.Validate(ctx, models.ActivityUpdate{AICalls: ptr(int64(-1))}), ErrNegativeCounter)
}

func TestInkDataValidator_Records(t *testing.T) {
	v := NewInkDataValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ChatMessage{Sender: models.SenderAI, Content: "hi"}))
	assert.ErrorIs(t, v.Validate(ctx, models.ChatMessage{Sender: "bot"}), ErrInvalidSender)

	assert.NoError(t, v.Validate(ctx, models.QuizResult{QuestionID: "q1"}))
	assert.ErrorIs(t, v.Validate(ctx, &models.QuizResult{}), ErrEmptyQuestionID)

	assert.NoError(t, v.Validate(ctx, models.FlyingFlowerGame{Keyword: "花", Score: 3}))
	assert.ErrorIs(t, v.Validate(ctx, models.FlyingFlowerGame{Score: 3}), ErrEmptyKeyword)
	assert.ErrorIs(t, v.Validate(ctx, models.FlyingFlowerGame{Keyword: "花", Score: -1}), ErrNegativeScore)
}

func TestValidateDate(t *testing.T) {
	for _, ok := range []string{"2024-01-31", "2024-02-29"} {
		assert.NoError(t, ValidateDate(ok), ok)
	}
	for _, bad := range []string{"", "2024-1-31", "2023-02-29", "31-01-2024", "2024-01-31T00:00:00Z"} {
		assert.ErrorIs(t, ValidateDate(bad), ErrInvalidDate, bad)
	}
}

func TestValidateUserID(t *testing.T) {
	assert.NoError(t, ValidateUserID("0192f3a4-1b2c-7d3e-8f40-123456789abc"))
	assert.ErrorIs(t, ValidateUserID(""), ErrInvalidUserID)
	assert.ErrorIs(t, ValidateUserID("   "), ErrInvalidUserID)
	assert.ErrorIs(t, ValidateUserID("a_b"), ErrInvalidUserID)
}
