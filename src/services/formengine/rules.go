package formengine

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"Backend-Parsamooz/src/models"
	"Backend-Parsamooz/src/utils"
)

const (
	msgRequired      = "این فیلد الزامی است"
	msgInvalidText   = "مقدار متنی نامعتبر است"
	msgInvalidFormat = "فرمت نامعتبر"
	msgInvalidEmail  = "ایمیل نامعتبر است"
	msgInvalidNumber = "مقدار عددی نامعتبر است"
	msgInvalidDate   = "تاریخ باید در قالب YYYY/MM/DD باشد"
	msgInvalidOption = "گزینه انتخاب‌شده نامعتبر است"
	msgPickOne       = "حداقل یک گزینه را انتخاب کنید"
	msgInvalidFile   = "فایل نامعتبر است"
	msgInvalidSign   = "امضا نامعتبر است"
	msgMinOneEntry   = "حداقل یک مورد لازم است"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	dateRegex  = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)
)

// SignatureValue is the answer shape of a signature field.
type SignatureValue struct {
	SignatureDataURL string `bson:"signatureDataUrl" json:"signatureDataUrl"`
	Timestamp        string `bson:"timestamp" json:"timestamp"`
}

// checkFunc validates one field value. Empty return means the value passes.
type checkFunc func(value interface{}, present bool) string

type nestedRule struct {
	name      string
	condition *models.FieldCondition // relative to the enclosing instance
	check     checkFunc
}

type groupRule struct {
	name     string
	required bool
	nested   []nestedRule
}

type compiledRule struct {
	path      string
	condition *models.FieldCondition // resolved to an absolute path
	check     checkFunc
	group     *groupRule
}

// RuleSet is a form's (or one step's) compiled validation rules. Compile once
// per active-field-set change; Validate is then cheap and side-effect free.
type RuleSet struct {
	rules []compiledRule
}

// ValidationResult reports every violated path at once, never only the first.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"` // field path -> message
}

// Err converts a failed result to a *ValidationError, nil otherwise.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Errors: r.Errors}
}

// Compile builds a rule set for the given fields. Nested non-repeatable
// groups flatten into "parent.child" rules; repeatable groups become array
// rules validated per instance.
func Compile(fields []models.FormField, reg *Registry) *RuleSet {
	if reg == nil {
		reg = DefaultRegistry
	}

	rs := &RuleSet{}
	for i := range fields {
		f := &fields[i]

		if reg.Describe(f.Type).SupportsNesting {
			if f.Repeatable {
				g := &groupRule{name: f.Name, required: f.Required}
				for j := range f.Fields {
					child := &f.Fields[j]
					g.nested = append(g.nested, nestedRule{
						name:      child.Name,
						condition: child.Condition,
						check:     buildCheck(child, reg),
					})
				}
				rs.rules = append(rs.rules, compiledRule{path: f.Name, condition: f.Condition, group: g})
				continue
			}

			for j := range f.Fields {
				child := &f.Fields[j]
				var cond *models.FieldCondition
				if child.Condition != nil {
					cond = &models.FieldCondition{
						Field:  resolveGroupTarget(f.Name, child.Condition.Field),
						Equals: child.Condition.Equals,
					}
				}
				rs.rules = append(rs.rules, compiledRule{
					path:      ChildPath(f.Name, child.Name),
					condition: cond,
					check:     buildCheck(child, reg),
				})
			}
			continue
		}

		rs.rules = append(rs.rules, compiledRule{
			path:      f.Name,
			condition: f.Condition,
			check:     buildCheck(f, reg),
		})
	}
	return rs
}

// Validate checks an answer record against the rule set. Inactive fields are
// skipped entirely: their absence or stale value is never an error, and
// required-ness is scoped to activity.
func (rs *RuleSet) Validate(rec AnswerRecord) *ValidationResult {
	errs := map[string]string{}

	for i := range rs.rules {
		rule := &rs.rules[i]

		if rule.condition != nil && !conditionMet(rule.condition, rec) {
			continue
		}

		if rule.group != nil {
			validateGroup(rule.group, rec, errs)
			continue
		}

		value, present := ValueAt(rec, rule.path)
		if msg := rule.check(value, present); msg != "" {
			errs[rule.path] = msg
		}
	}

	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func validateGroup(g *groupRule, rec AnswerRecord, errs map[string]string) {
	instances := instancesAt(rec, g.name)
	if len(instances) == 0 {
		if g.required {
			errs[g.name] = msgMinOneEntry
		}
		return
	}

	for idx, inst := range instances {
		for i := range g.nested {
			nr := &g.nested[i]

			if nr.condition != nil {
				// Conditions inside an instance resolve within that instance.
				target := nr.condition.Field
				if dot := strings.LastIndex(target, "."); dot >= 0 {
					target = target[dot+1:]
				}
				if !strictEquals(inst[target], nr.condition.Equals) {
					continue
				}
			}

			value, present := inst[nr.name]
			if msg := nr.check(value, present); msg != "" {
				errs[InstancePath(g.name, idx, nr.name)] = msg
			}
		}
	}
}

// buildCheck compiles the base rule for one field plus the required override.
// The required override runs after the base rule: string kinds must be
// non-empty after trimming, bool kinds must be strictly true.
func buildCheck(f *models.FormField, reg *Registry) checkFunc {
	switch f.Type {
	case "text", "textarea":
		pattern := compilePattern(f)
		msg := msgInvalidFormat
		if f.Validation != nil && f.Validation.ValidationMessage != "" {
			msg = f.Validation.ValidationMessage
		}
		return func(value interface{}, present bool) string {
			s, absent, bad := asString(value, present)
			if bad {
				return msgInvalidText
			}
			if absent {
				return requiredMsg(f)
			}
			if pattern != nil && !pattern.MatchString(s) {
				return msg
			}
			return ""
		}

	case "email":
		return func(value interface{}, present bool) string {
			s, absent, bad := asString(value, present)
			if bad {
				return msgInvalidText
			}
			if absent {
				return requiredMsg(f)
			}
			if !emailRegex.MatchString(s) {
				return msgInvalidEmail
			}
			return ""
		}

	case "date":
		return func(value interface{}, present bool) string {
			s, absent, bad := asString(value, present)
			if bad {
				return msgInvalidText
			}
			if absent {
				return requiredMsg(f)
			}
			if !dateRegex.MatchString(utils.ToLatinDigits(s)) {
				return msgInvalidDate
			}
			return ""
		}

	case "number", "rating":
		return func(value interface{}, present bool) string {
			if !present || value == nil {
				return requiredMsg(f)
			}
			if s, ok := value.(string); ok {
				// Empty input is "absent", never zero.
				if strings.TrimSpace(s) == "" {
					return requiredMsg(f)
				}
				if _, err := parseNumber(s); err != nil {
					return msgInvalidNumber
				}
				return ""
			}
			if _, ok := toFloat(value); !ok {
				return msgInvalidNumber
			}
			return ""
		}

	case "select", "radio":
		return func(value interface{}, present bool) string {
			s, absent, bad := asString(value, present)
			if bad {
				return msgInvalidText
			}
			if absent {
				return requiredMsg(f)
			}
			if f.Required && !hasOption(f.Options, s) {
				return msgInvalidOption
			}
			return ""
		}

	case "checkbox":
		if len(f.Options) > 0 {
			return func(value interface{}, present bool) string {
				if !present || value == nil {
					if f.Required {
						return msgPickOne
					}
					return ""
				}
				selected, ok := asStringSlice(value)
				if !ok {
					return msgInvalidOption
				}
				if f.Required && len(selected) == 0 {
					return msgPickOne
				}
				for _, s := range selected {
					if !hasOption(f.Options, s) {
						return msgInvalidOption
					}
				}
				return ""
			}
		}
		fallthrough

	case "switch":
		return func(value interface{}, present bool) string {
			b, _ := value.(bool)
			// Required bool means strictly true, not merely "not false".
			if f.Required && !b {
				return msgRequired
			}
			return ""
		}

	case "file":
		return func(value interface{}, present bool) string {
			if !present || value == nil {
				if f.Required {
					return msgRequired
				}
				return ""
			}
			if !isFileValue(value) {
				return msgInvalidFile
			}
			return ""
		}

	case "signature":
		return func(value interface{}, present bool) string {
			if !present || value == nil {
				if f.Required {
					return msgRequired
				}
				return ""
			}
			payload, stamp, ok := signaturePayload(value)
			if !ok || strings.TrimSpace(stamp) == "" {
				return msgInvalidSign
			}
			if f.Required && strings.TrimSpace(payload) == "" {
				return msgRequired
			}
			return ""
		}
	}

	// Unknown types accept any value; required only demands presence.
	return func(value interface{}, present bool) string {
		if f.Required && (!present || value == nil) {
			return msgRequired
		}
		return ""
	}
}

func requiredMsg(f *models.FormField) string {
	if f.Required {
		return msgRequired
	}
	return ""
}

// compilePattern compiles a custom regex once. Invalid patterns are logged
// and ignored, falling back to "any string".
func compilePattern(f *models.FormField) *regexp.Regexp {
	if f.Validation == nil || f.Validation.Regex == "" {
		return nil
	}
	re, err := regexp.Compile(f.Validation.Regex)
	if err != nil {
		log.Printf("⚠️ invalid regex pattern for field %s: %v", f.Name, err)
		return nil
	}
	return re
}

// asString pulls a string value out of the record. bad means "present but not
// a string"; absent means missing, nil, or blank after trimming.
func asString(value interface{}, present bool) (s string, absent, bad bool) {
	if !present || value == nil {
		return "", true, false
	}
	s, ok := value.(string)
	if !ok {
		return "", false, true
	}
	if strings.TrimSpace(s) == "" {
		return "", true, false
	}
	return s, false, false
}

func asStringSlice(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func hasOption(options []models.FieldOption, value string) bool {
	for _, opt := range options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(utils.ToLatinDigits(strings.TrimSpace(s)), 64)
}

func isFileValue(value interface{}) bool {
	switch v := value.(type) {
	case *PendingUpload:
		return v != nil
	case PendingUpload:
		return true
	case models.StoredFileReference, *models.StoredFileReference:
		return true
	case map[string]interface{}:
		_, hasName := v["filename"]
		_, hasPath := v["path"]
		return hasName || hasPath
	}
	return false
}

// signaturePayload extracts the image payload and capture timestamp of a
// signature value. A signature without a timestamp is malformed.
func signaturePayload(value interface{}) (payload, timestamp string, ok bool) {
	switch v := value.(type) {
	case SignatureValue:
		return v.SignatureDataURL, v.Timestamp, true
	case *SignatureValue:
		if v == nil {
			return "", "", false
		}
		return v.SignatureDataURL, v.Timestamp, true
	case map[string]interface{}:
		p, okP := v["signatureDataUrl"].(string)
		ts, _ := v["timestamp"].(string)
		return p, ts, okP
	}
	return "", "", false
}
