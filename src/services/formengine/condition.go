package formengine

import (
	"encoding/json"
	"reflect"

	"Backend-Parsamooz/src/models"
)

// IsActive decides whether a field is currently visible and validated. A
// field with no condition is always active. The condition's target path must
// already be resolved to the field's own scope (Compile and the expander do
// that for nested fields). Evaluation is pure: the same record always gives
// the same answer.
func IsActive(field *models.FormField, rec AnswerRecord) bool {
	if field.Condition == nil {
		return true
	}
	return conditionMet(field.Condition, rec)
}

func conditionMet(cond *models.FieldCondition, rec AnswerRecord) bool {
	current, _ := ValueAt(rec, cond.Field)
	return strictEquals(current, cond.Equals)
}

// strictEquals compares an answer value with a declared condition value.
// Numbers are normalized first: JSON decoding yields float64 while BSON can
// yield int32/int64, and 2 must equal 2.0.
func strictEquals(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
		return false
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}

	return reflect.DeepEqual(a, b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
