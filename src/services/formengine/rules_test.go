package formengine

import (
	"testing"

	"Backend-Parsamooz/src/models"

	"github.com/stretchr/testify/assert"
)

func textField(name string, required bool) models.FormField {
	return models.FormField{Type: "text", Name: name, Label: name, Required: required}
}

func TestRequiredFields(t *testing.T) {
	t.Run("RequiredWithoutConditionAlwaysChecked", func(t *testing.T) {
		rules := Compile([]models.FormField{textField("fullName", true)}, nil)

		result := rules.Validate(AnswerRecord{})
		assert.False(t, result.Valid)
		assert.Equal(t, "این فیلد الزامی است", result.Errors["fullName"])

		result = rules.Validate(AnswerRecord{"fullName": "   "})
		assert.False(t, result.Valid, "whitespace-only input counts as absent")

		result = rules.Validate(AnswerRecord{"fullName": "علی رضایی"})
		assert.True(t, result.Valid)
	})

	t.Run("OptionalFieldNeverErrorsWhenAbsent", func(t *testing.T) {
		rules := Compile([]models.FormField{textField("nickname", false)}, nil)
		result := rules.Validate(AnswerRecord{})
		assert.True(t, result.Valid)
	})

	t.Run("InactiveConditionalFieldSkipped", func(t *testing.T) {
		// Scenario: required B is only active while A == "yes".
		fields := []models.FormField{
			{Type: "select", Name: "a", Label: "A", Options: []models.FieldOption{
				{Label: "Yes", Value: "yes"}, {Label: "No", Value: "no"},
			}},
			{Type: "text", Name: "b", Label: "B", Required: true,
				Condition: &models.FieldCondition{Field: "a", Equals: "yes"}},
		}
		rules := Compile(fields, nil)

		result := rules.Validate(AnswerRecord{"a": "no"})
		assert.True(t, result.Valid, "inactive required field must not error")

		result = rules.Validate(AnswerRecord{"a": "yes"})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, "b")

		result = rules.Validate(AnswerRecord{"a": "yes", "b": "hello"})
		assert.True(t, result.Valid)
	})
}

func TestEmailRule(t *testing.T) {
	rules := Compile([]models.FormField{{Type: "email", Name: "email", Label: "Email", Required: true}}, nil)

	t.Run("MalformedEmailRejected", func(t *testing.T) {
		result := rules.Validate(AnswerRecord{"email": "not-an-email"})
		assert.False(t, result.Valid)
		assert.Equal(t, "ایمیل نامعتبر است", result.Errors["email"])
	})

	t.Run("ValidEmailAccepted", func(t *testing.T) {
		result := rules.Validate(AnswerRecord{"email": "ali@example.com"})
		assert.True(t, result.Valid)
	})
}

func TestDateRule(t *testing.T) {
	rules := Compile([]models.FormField{{Type: "date", Name: "birthDate", Label: "Birth date", Required: true}}, nil)

	t.Run("CanonicalShapeAccepted", func(t *testing.T) {
		result := rules.Validate(AnswerRecord{"birthDate": "1403/07/15"})
		assert.True(t, result.Valid)
	})

	t.Run("PersianDigitsNormalized", func(t *testing.T) {
		result := rules.Validate(AnswerRecord{"birthDate": "۱۴۰۳/۰۷/۱۵"})
		assert.True(t, result.Valid)
	})

	t.Run("WrongShapeRejected", func(t *testing.T) {
		result := rules.Validate(AnswerRecord{"birthDate": "1403-07-15"})
		assert.False(t, result.Valid)
		assert.Equal(t, "تاریخ باید در قالب YYYY/MM/DD باشد", result.Errors["birthDate"])
	})
}

func TestNumberRule(t *testing.T) {
	rules := Compile([]models.FormField{{Type: "number", Name: "score", Label: "Score", Required: true}}, nil)

	t.Run("EmptyStringIsAbsentNeverZero", func(t *testing.T) {
		result := rules.Validate(AnswerRecord{"score": ""})
		assert.False(t, result.Valid)
		assert.Equal(t, "این فیلد الزامی است", result.Errors["score"])
	})

	t.Run("NumericStringAndFloatBothPass", func(t *testing.T) {
		assert.True(t, rules.Validate(AnswerRecord{"score": "17.5"}).Valid)
		assert.True(t, rules.Validate(AnswerRecord{"score": 17.5}).Valid)
		assert.True(t, rules.Validate(AnswerRecord{"score": "۱۷"}).Valid, "persian digits")
	})

	t.Run("NonNumericRejected", func(t *testing.T) {
		result := rules.Validate(AnswerRecord{"score": "abc"})
		assert.False(t, result.Valid)
		assert.Equal(t, "مقدار عددی نامعتبر است", result.Errors["score"])
	})
}

func TestChoiceRules(t *testing.T) {
	options := []models.FieldOption{{Label: "One", Value: "one"}, {Label: "Two", Value: "two"}}

	t.Run("RequiredSelectChecksMembership", func(t *testing.T) {
		rules := Compile([]models.FormField{{Type: "select", Name: "pick", Label: "Pick", Required: true, Options: options}}, nil)
		assert.False(t, rules.Validate(AnswerRecord{"pick": "three"}).Valid)
		assert.True(t, rules.Validate(AnswerRecord{"pick": "two"}).Valid)
	})

	t.Run("CheckboxWithOptionsIsMultiSelect", func(t *testing.T) {
		rules := Compile([]models.FormField{{Type: "checkbox", Name: "days", Label: "Days", Required: true, Options: options}}, nil)
		assert.False(t, rules.Validate(AnswerRecord{}).Valid)
		assert.False(t, rules.Validate(AnswerRecord{"days": []interface{}{}}).Valid)
		assert.False(t, rules.Validate(AnswerRecord{"days": []interface{}{"nope"}}).Valid)
		assert.True(t, rules.Validate(AnswerRecord{"days": []interface{}{"one", "two"}}).Valid)
	})

	t.Run("CheckboxWithoutOptionsIsBool", func(t *testing.T) {
		rules := Compile([]models.FormField{{Type: "checkbox", Name: "agree", Label: "Agree", Required: true}}, nil)
		assert.False(t, rules.Validate(AnswerRecord{"agree": false}).Valid)
		assert.True(t, rules.Validate(AnswerRecord{"agree": true}).Valid)
	})
}

func TestFileRule(t *testing.T) {
	required := Compile([]models.FormField{{Type: "file", Name: "doc", Label: "Doc", Required: true}}, nil)
	optional := Compile([]models.FormField{{Type: "file", Name: "doc", Label: "Doc"}}, nil)

	t.Run("RequiredDemandsAValue", func(t *testing.T) {
		result := required.Validate(AnswerRecord{})
		assert.False(t, result.Valid)
		assert.Equal(t, "این فیلد الزامی است", result.Errors["doc"])

		result = required.Validate(AnswerRecord{"doc": nil})
		assert.False(t, result.Valid, "explicit nil counts as absent")
	})

	t.Run("OptionalAbsentPasses", func(t *testing.T) {
		assert.True(t, optional.Validate(AnswerRecord{}).Valid)
		assert.True(t, optional.Validate(AnswerRecord{"doc": nil}).Valid)
	})

	t.Run("PendingUploadAccepted", func(t *testing.T) {
		assert.True(t, required.Validate(AnswerRecord{"doc": &PendingUpload{Filename: "a.pdf"}}).Valid)
		assert.True(t, required.Validate(AnswerRecord{"doc": PendingUpload{Filename: "a.pdf"}}).Valid)
	})

	t.Run("StoredReferenceAccepted", func(t *testing.T) {
		ref := models.StoredFileReference{Filename: "x.pdf", Path: "formfiles/forms/1/x.pdf"}
		assert.True(t, required.Validate(AnswerRecord{"doc": ref}).Valid)
		assert.True(t, required.Validate(AnswerRecord{"doc": &ref}).Valid)
		// Decoded submissions carry references as plain maps.
		assert.True(t, required.Validate(AnswerRecord{"doc": map[string]interface{}{
			"filename": "x.pdf", "path": "formfiles/forms/1/x.pdf",
		}}).Valid)
	})

	t.Run("NonFileValueRejected", func(t *testing.T) {
		result := required.Validate(AnswerRecord{"doc": "a.pdf"})
		assert.False(t, result.Valid)
		assert.Equal(t, "فایل نامعتبر است", result.Errors["doc"])

		result = optional.Validate(AnswerRecord{"doc": map[string]interface{}{"size": 12}})
		assert.False(t, result.Valid, "optional field still rejects a malformed value")
		assert.Equal(t, "فایل نامعتبر است", result.Errors["doc"])
	})
}

func TestSignatureRule(t *testing.T) {
	required := Compile([]models.FormField{{Type: "signature", Name: "sig", Label: "Sig", Required: true}}, nil)
	optional := Compile([]models.FormField{{Type: "signature", Name: "sig", Label: "Sig"}}, nil)

	t.Run("RequiredDemandsAValue", func(t *testing.T) {
		result := required.Validate(AnswerRecord{})
		assert.False(t, result.Valid)
		assert.Equal(t, "این فیلد الزامی است", result.Errors["sig"])
	})

	t.Run("OptionalAbsentPasses", func(t *testing.T) {
		assert.True(t, optional.Validate(AnswerRecord{}).Valid)
	})

	t.Run("PayloadWithTimestampAccepted", func(t *testing.T) {
		assert.True(t, required.Validate(AnswerRecord{"sig": SignatureValue{
			SignatureDataURL: "data:image/png;base64,iVBOR", Timestamp: "2026-08-30T09:00:00Z",
		}}).Valid)
		assert.True(t, required.Validate(AnswerRecord{"sig": map[string]interface{}{
			"signatureDataUrl": "data:image/png;base64,iVBOR", "timestamp": "2026-08-30T09:00:00Z",
		}}).Valid)
	})

	t.Run("MissingTimestampRejected", func(t *testing.T) {
		result := required.Validate(AnswerRecord{"sig": map[string]interface{}{
			"signatureDataUrl": "data:image/png;base64,iVBOR",
		}})
		assert.False(t, result.Valid)
		assert.Equal(t, "امضا نامعتبر است", result.Errors["sig"])

		result = optional.Validate(AnswerRecord{"sig": SignatureValue{SignatureDataURL: "data:..."}})
		assert.False(t, result.Valid, "optional field still rejects a timestamp-less signature")
	})

	t.Run("EmptyPayloadOnRequiredField", func(t *testing.T) {
		result := required.Validate(AnswerRecord{"sig": map[string]interface{}{
			"signatureDataUrl": "  ", "timestamp": "2026-08-30T09:00:00Z",
		}})
		assert.False(t, result.Valid)
		assert.Equal(t, "این فیلد الزامی است", result.Errors["sig"])

		assert.True(t, optional.Validate(AnswerRecord{"sig": map[string]interface{}{
			"signatureDataUrl": "", "timestamp": "2026-08-30T09:00:00Z",
		}}).Valid, "empty payload is fine when the field is optional")
	})

	t.Run("NonObjectValueRejected", func(t *testing.T) {
		result := required.Validate(AnswerRecord{"sig": "data:image/png;base64,iVBOR"})
		assert.False(t, result.Valid)
		assert.Equal(t, "امضا نامعتبر است", result.Errors["sig"])
	})
}

func TestCustomRegex(t *testing.T) {
	t.Run("CustomPatternAndMessage", func(t *testing.T) {
		rules := Compile([]models.FormField{{
			Type: "text", Name: "phone", Label: "Phone", Required: true,
			Validation: &models.FieldValidation{Regex: `^09\d{9}$`, ValidationMessage: "شماره موبایل نامعتبر است"},
		}}, nil)

		result := rules.Validate(AnswerRecord{"phone": "12345"})
		assert.False(t, result.Valid)
		assert.Equal(t, "شماره موبایل نامعتبر است", result.Errors["phone"])

		assert.True(t, rules.Validate(AnswerRecord{"phone": "09123456789"}).Valid)
	})

	t.Run("InvalidPatternIgnored", func(t *testing.T) {
		rules := Compile([]models.FormField{{
			Type: "text", Name: "code", Label: "Code", Required: true,
			Validation: &models.FieldValidation{Regex: `([`},
		}}, nil)
		assert.True(t, rules.Validate(AnswerRecord{"code": "anything"}).Valid)
	})
}

func TestNestedGroupRules(t *testing.T) {
	t.Run("NonRepeatableGroupFlattens", func(t *testing.T) {
		fields := []models.FormField{{
			Type: "group", Name: "address", Label: "Address",
			Fields: []models.FormField{
				textField("city", true),
				{Type: "text", Name: "plate", Label: "Plate", Required: true,
					Condition: &models.FieldCondition{Field: "hasPlate", Equals: true}},
				{Type: "switch", Name: "hasPlate", Label: "Has plate"},
			},
		}}
		rules := Compile(fields, nil)

		result := rules.Validate(AnswerRecord{"address.city": "تهران", "address.hasPlate": false})
		assert.True(t, result.Valid, "condition target resolves inside the group")

		result = rules.Validate(AnswerRecord{"address.hasPlate": true})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, "address.city")
		assert.Contains(t, result.Errors, "address.plate")
	})

	t.Run("RepeatableGroupErrorsCarryInstanceIndex", func(t *testing.T) {
		// Scenario: contacts has two instances, only the second is missing a phone.
		fields := []models.FormField{{
			Type: "group", Name: "contacts", Label: "Contacts", Repeatable: true, Required: true,
			Fields: []models.FormField{
				textField("name", true),
				textField("phone", true),
			},
		}}
		rules := Compile(fields, nil)

		rec := AnswerRecord{"contacts": []interface{}{
			map[string]interface{}{"name": "رضا", "phone": "09120000000"},
			map[string]interface{}{"name": "سارا"},
		}}
		result := rules.Validate(rec)
		assert.False(t, result.Valid)
		assert.Len(t, result.Errors, 1)
		assert.Equal(t, "این فیلد الزامی است", result.Errors["contacts.1.phone"])
	})

	t.Run("RequiredRepeatableGroupNeedsOneInstance", func(t *testing.T) {
		fields := []models.FormField{{
			Type: "group", Name: "contacts", Label: "Contacts", Repeatable: true, Required: true,
			Fields: []models.FormField{textField("name", false)},
		}}
		rules := Compile(fields, nil)

		result := rules.Validate(AnswerRecord{})
		assert.False(t, result.Valid)
		assert.Equal(t, "حداقل یک مورد لازم است", result.Errors["contacts"])
	})

	t.Run("InstanceConditionResolvesLocally", func(t *testing.T) {
		fields := []models.FormField{{
			Type: "group", Name: "guardians", Label: "Guardians", Repeatable: true,
			Fields: []models.FormField{
				{Type: "switch", Name: "employed", Label: "Employed"},
				{Type: "text", Name: "job", Label: "Job", Required: true,
					Condition: &models.FieldCondition{Field: "employed", Equals: true}},
			},
		}}
		rules := Compile(fields, nil)

		rec := AnswerRecord{"guardians": []interface{}{
			map[string]interface{}{"employed": true},
			map[string]interface{}{"employed": false},
		}}
		result := rules.Validate(rec)
		assert.False(t, result.Valid)
		assert.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors, "guardians.0.job")
	})
}

func TestUnknownFieldType(t *testing.T) {
	rules := Compile([]models.FormField{{Type: "hologram", Name: "h", Label: "H", Required: true}}, nil)

	assert.False(t, rules.Validate(AnswerRecord{}).Valid, "required unknown type still demands presence")
	assert.True(t, rules.Validate(AnswerRecord{"h": map[string]interface{}{"x": 1}}).Valid, "any value shape passes")
}

func TestValidationReportsAllErrors(t *testing.T) {
	rules := Compile([]models.FormField{
		textField("a", true),
		textField("b", true),
		{Type: "email", Name: "c", Label: "C", Required: true},
	}, nil)

	result := rules.Validate(AnswerRecord{"c": "bad"})
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 3, "never short-circuits after the first failure")
}
