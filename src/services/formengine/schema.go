package formengine

import (
	"fmt"
	"strings"

	"Backend-Parsamooz/src/models"
)

// ValidateSchema checks the structural invariants of a form schema and
// returns a *SchemaError on the first violation:
//
//   - a non-empty title
//   - unique field names among siblings at every nesting scope
//   - non-empty options on choice fields (select/radio/checkbox-as-group)
//   - in multi-step mode, every field's stepId references an existing step
//     and every step's fieldIds name declared fields
//
// Unknown field types pass: the registry degrades them to an accept-anything
// rule instead of rejecting the schema.
func ValidateSchema(form *models.FormSchema, reg *Registry) error {
	if reg == nil {
		reg = DefaultRegistry
	}

	if strings.TrimSpace(form.Title) == "" {
		return &SchemaError{Message: "form title is required"}
	}

	if err := validateFieldScope(form.Fields, "", reg); err != nil {
		return err
	}

	if form.IsMultiStep {
		if len(form.Steps) == 0 {
			return &SchemaError{Message: "multi-step form has no steps"}
		}

		stepIDs := map[string]bool{}
		for _, step := range form.Steps {
			stepIDs[step.ID] = true
		}
		fieldNames := map[string]bool{}
		for _, f := range form.Fields {
			fieldNames[f.Name] = true
		}

		for _, f := range form.Fields {
			if f.StepID != "" && !stepIDs[f.StepID] {
				return &SchemaError{Message: fmt.Sprintf("field %q references unknown step %q", f.Name, f.StepID)}
			}
		}
		for _, step := range form.Steps {
			for _, name := range step.FieldIds {
				if !fieldNames[name] {
					return &SchemaError{Message: fmt.Sprintf("step %q references unknown field %q", step.ID, name)}
				}
			}
		}
	}

	return nil
}

func validateFieldScope(fields []models.FormField, scope string, reg *Registry) error {
	seen := map[string]bool{}
	for i := range fields {
		f := &fields[i]

		if strings.TrimSpace(f.Name) == "" {
			return &SchemaError{Message: "field with empty name in scope " + scopeLabel(scope)}
		}
		if seen[f.Name] {
			return &SchemaError{Message: fmt.Sprintf("duplicate field name %q in scope %s", f.Name, scopeLabel(scope))}
		}
		seen[f.Name] = true

		info := reg.Describe(f.Type)
		if info.SupportsOptions && len(f.Options) == 0 && requiresOptions(f) {
			return &SchemaError{Message: fmt.Sprintf("field %q needs at least one option", f.Name)}
		}

		if info.SupportsNesting {
			childScope := f.Name
			if scope != "" {
				childScope = scope + "." + f.Name
			}
			if err := validateFieldScope(f.Fields, childScope, reg); err != nil {
				return err
			}
		}
	}
	return nil
}

// requiresOptions: select and radio always render from options; a checkbox
// without options is a plain boolean, so only option-bearing checkboxes are
// choice fields.
func requiresOptions(f *models.FormField) bool {
	switch f.Type {
	case "select", "radio":
		return true
	}
	return false
}

func scopeLabel(scope string) string {
	if scope == "" {
		return "top level"
	}
	return scope
}
