package formengine

import (
	"fmt"

	"Backend-Parsamooz/src/models"
)

// GroupExpander manages the ordered instance list of a repeatable group
// inside an answer record. Instances live at the group's key as a slice of
// sub-records and are addressed as "group.<index>.child".
//
// Removal is index-shifting: removing instance i splices the slice and later
// instances renumber, the same way the form renderer's field array behaves.
// Paths are recomputed from the slice on every read, so sparse indices are
// never observable.
type GroupExpander struct {
	field models.FormField
	rec   AnswerRecord
}

// NewGroupExpander binds an expander to a repeatable group field. The record
// is normalized to hold at least one (possibly empty) instance.
func NewGroupExpander(field models.FormField, rec AnswerRecord) (*GroupExpander, error) {
	if field.Type != "group" || !field.Repeatable {
		return nil, &SchemaError{Message: fmt.Sprintf("field %q is not a repeatable group", field.Name)}
	}

	g := &GroupExpander{field: field, rec: rec}
	if len(g.instances()) == 0 {
		rec[field.Name] = []interface{}{map[string]interface{}{}}
	}
	return g, nil
}

func (g *GroupExpander) instances() []interface{} {
	switch v := g.rec[g.field.Name].(type) {
	case []interface{}:
		return v
	case []map[string]interface{}:
		out := make([]interface{}, len(v))
		for i, m := range v {
			out[i] = m
		}
		g.rec[g.field.Name] = out
		return out
	}
	return nil
}

// Count returns the current number of instances.
func (g *GroupExpander) Count() int {
	return len(g.instances())
}

// Add appends an empty instance and returns its index. Existing instances
// keep their positions.
func (g *GroupExpander) Add() int {
	list := append(g.instances(), map[string]interface{}{})
	g.rec[g.field.Name] = list
	return len(list) - 1
}

// Remove deletes the instance at index i and renumbers later instances.
// Removing the last remaining instance is a no-op, preserving the
// at-least-one invariant; out-of-range indices are also no-ops. Reports
// whether anything was removed.
func (g *GroupExpander) Remove(i int) bool {
	list := g.instances()
	if len(list) <= 1 || i < 0 || i >= len(list) {
		return false
	}
	g.rec[g.field.Name] = append(list[:i:i], list[i+1:]...)
	return true
}

// Instance returns the sub-record at index i, or nil if out of range. Writes
// to the returned map are visible in the answer record.
func (g *GroupExpander) Instance(i int) map[string]interface{} {
	list := g.instances()
	if i < 0 || i >= len(list) {
		return nil
	}
	if m, ok := list[i].(map[string]interface{}); ok {
		return m
	}
	return nil
}

// Set writes a value for a child field inside instance i and returns the
// field path it now lives at.
func (g *GroupExpander) Set(i int, child string, value interface{}) (string, bool) {
	inst := g.Instance(i)
	if inst == nil {
		return "", false
	}
	inst[child] = value
	return InstancePath(g.field.Name, i, child), true
}

// IsChildActive evaluates a nested field's condition within instance i.
// Targets resolve inside the same instance, never globally.
func (g *GroupExpander) IsChildActive(i int, child *models.FormField) bool {
	if child.Condition == nil {
		return true
	}
	inst := g.Instance(i)
	if inst == nil {
		return false
	}
	cond := &models.FieldCondition{
		Field:  resolveInstanceTarget(g.field.Name, i, child.Condition.Field),
		Equals: child.Condition.Equals,
	}
	return conditionMet(cond, g.rec)
}
