package formengine

import (
	"testing"

	"Backend-Parsamooz/src/models"

	"github.com/stretchr/testify/assert"
)

func twoStepForm() *models.FormSchema {
	return &models.FormSchema{
		Title:       "ثبت‌نام",
		IsMultiStep: true,
		Fields: []models.FormField{
			{Type: "text", Name: "fullName", Label: "Full name", Required: true, StepID: "s1"},
			{Type: "email", Name: "email", Label: "Email", Required: true, StepID: "s2"},
			{Type: "text", Name: "note", Label: "Note", StepID: "s2"},
		},
		Steps: []models.FormStep{
			{ID: "s1", Title: "هویت", FieldIds: []string{"fullName"}},
			{ID: "s2", Title: "تماس", FieldIds: []string{"email", "note"}},
		},
	}
}

func TestStepSession(t *testing.T) {
	t.Run("SingleStepFormGetsSyntheticStep", func(t *testing.T) {
		form := &models.FormSchema{
			Title:  "ساده",
			Fields: []models.FormField{{Type: "text", Name: "a", Label: "A", Required: true}},
		}
		s, err := NewStepSession(form, nil)
		assert.NoError(t, err)
		assert.Equal(t, 1, s.StepCount())

		result := s.Advance(AnswerRecord{"a": "x"})
		assert.True(t, result.Valid)
		assert.True(t, s.Complete())
	})

	t.Run("AdvanceGatedOnCurrentStepOnly", func(t *testing.T) {
		s, err := NewStepSession(twoStepForm(), nil)
		assert.NoError(t, err)

		// Step 0 does not care that step 1's required email is missing.
		result := s.Advance(AnswerRecord{"fullName": "علی رضایی"})
		assert.True(t, result.Valid)
		assert.Equal(t, 1, s.CurrentStep())
		assert.False(t, s.Complete())
	})

	t.Run("FailedAdvanceMutatesNothing", func(t *testing.T) {
		s, _ := NewStepSession(twoStepForm(), nil)
		s.Advance(AnswerRecord{"fullName": "علی"})

		result := s.Advance(AnswerRecord{"email": "bad", "note": "stale?"})
		assert.False(t, result.Valid)
		assert.Equal(t, 1, s.CurrentStep(), "step unchanged on failure")

		_, ok := s.Answers()["note"]
		assert.False(t, ok, "failed step's answers are discarded")
		assert.Equal(t, "علی", s.Answers()["fullName"])
	})

	t.Run("AdvanceThenRetreatKeepsAnswers", func(t *testing.T) {
		s, _ := NewStepSession(twoStepForm(), nil)
		s.Advance(AnswerRecord{"fullName": "علی"})

		assert.True(t, s.Retreat())
		assert.Equal(t, 0, s.CurrentStep())
		assert.Equal(t, "علی", s.Answers()["fullName"], "retreat never drops answers")

		// Advancing again revalidates against the already-present answer.
		result := s.Advance(AnswerRecord{})
		assert.True(t, result.Valid)
		assert.Equal(t, 1, s.CurrentStep())
	})

	t.Run("RetreatAtFirstStepRefused", func(t *testing.T) {
		s, _ := NewStepSession(twoStepForm(), nil)
		assert.False(t, s.Retreat())
	})

	t.Run("CompletionOnLastStep", func(t *testing.T) {
		s, _ := NewStepSession(twoStepForm(), nil)
		s.Advance(AnswerRecord{"fullName": "علی"})
		result := s.Advance(AnswerRecord{"email": "ali@example.com"})
		assert.True(t, result.Valid)
		assert.True(t, s.Complete())
		assert.Equal(t, "ali@example.com", s.Answers()["email"])
	})

	t.Run("RetreatAfterCompletionReopens", func(t *testing.T) {
		s, _ := NewStepSession(twoStepForm(), nil)
		s.Advance(AnswerRecord{"fullName": "علی"})
		s.Advance(AnswerRecord{"email": "ali@example.com"})
		assert.True(t, s.Complete())

		assert.True(t, s.Retreat())
		assert.False(t, s.Complete())
	})

	t.Run("InvalidSchemaRefused", func(t *testing.T) {
		form := &models.FormSchema{Title: "", Fields: nil}
		_, err := NewStepSession(form, nil)
		assert.Error(t, err)
		assert.IsType(t, &SchemaError{}, err)
	})
}
