package formengine

import (
	"Backend-Parsamooz/src/models"
)

// StepSession collects a submitter's answers across a form's steps. A form
// without steps runs as a session with exactly one synthetic step, so callers
// never branch on multi-step-ness.
//
// Advance is gated on the current step's visible fields validating; Retreat
// is always free and never revalidates. Validation failure leaves both the
// current step and the accumulated answers untouched.
type StepSession struct {
	form     *models.FormSchema
	steps    []models.FormStep
	current  int
	answers  AnswerRecord
	reg      *Registry
	complete bool

	ruleCache map[int]*RuleSet
}

// NewStepSession validates the schema and opens a session at step 0.
func NewStepSession(form *models.FormSchema, reg *Registry) (*StepSession, error) {
	if reg == nil {
		reg = DefaultRegistry
	}
	if err := ValidateSchema(form, reg); err != nil {
		return nil, err
	}

	steps := form.Steps
	if !form.IsMultiStep || len(steps) == 0 {
		fieldIds := make([]string, len(form.Fields))
		for i, f := range form.Fields {
			fieldIds[i] = f.Name
		}
		steps = []models.FormStep{{ID: "single-step", Title: form.Title, FieldIds: fieldIds}}
	}

	return &StepSession{
		form:      form,
		steps:     steps,
		answers:   AnswerRecord{},
		reg:       reg,
		ruleCache: map[int]*RuleSet{},
	}, nil
}

// CurrentStep is the 0-based step index.
func (s *StepSession) CurrentStep() int { return s.current }

// StepCount reports the number of steps (always at least one).
func (s *StepSession) StepCount() int { return len(s.steps) }

// Step returns the step descriptor for the given index.
func (s *StepSession) Step(i int) *models.FormStep {
	if i < 0 || i >= len(s.steps) {
		return nil
	}
	return &s.steps[i]
}

// Complete reports whether the final step has validated.
func (s *StepSession) Complete() bool { return s.complete }

// Answers exposes the accumulated record. The assembler reads this once the
// session completes.
func (s *StepSession) Answers() AnswerRecord { return s.answers }

// StepFields returns the form fields belonging to step i, in form order.
func (s *StepSession) StepFields(i int) []models.FormField {
	step := s.Step(i)
	if step == nil {
		return nil
	}
	member := map[string]bool{}
	for _, name := range step.FieldIds {
		member[name] = true
	}

	var fields []models.FormField
	for _, f := range s.form.Fields {
		if member[f.Name] {
			fields = append(fields, f)
		}
	}
	return fields
}

func (s *StepSession) stepRules(i int) *RuleSet {
	if rs, ok := s.ruleCache[i]; ok {
		return rs
	}
	rs := Compile(s.StepFields(i), s.reg)
	s.ruleCache[i] = rs
	return rs
}

// Advance validates the current step against the accumulated answers merged
// with stepAnswers. On success the merge is kept and the session moves to the
// next step (or completes on the last one). On failure nothing is mutated and
// the result lists every violated path.
func (s *StepSession) Advance(stepAnswers AnswerRecord) *ValidationResult {
	merged := cloneAnswers(s.answers)
	mergeAnswers(merged, stepAnswers)

	result := s.stepRules(s.current).Validate(merged)
	if !result.Valid {
		return result
	}

	s.answers = merged
	if s.current < len(s.steps)-1 {
		s.current++
	} else {
		s.complete = true
	}
	return result
}

// Retreat steps back without revalidating. Accumulated answers are kept.
// Reports whether the session actually moved.
func (s *StepSession) Retreat() bool {
	if s.current == 0 {
		return false
	}
	s.current--
	s.complete = false
	return true
}
