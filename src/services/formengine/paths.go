package formengine

import (
	"strconv"
	"strings"
)

// AnswerRecord holds user-provided values keyed by field path:
//
//	"field"            top-level field
//	"parent.child"     non-repeatable nested field
//	"group.<i>.child"  field inside repeatable instance i
//
// Repeatable group instances live at the group's own key as a slice of
// sub-records. Condition resolution and submission merging both depend on
// this convention, so it must not change.
type AnswerRecord = map[string]interface{}

// ChildPath builds the path of a nested field inside a non-repeatable group.
func ChildPath(parent, name string) string {
	return parent + "." + name
}

// InstancePath builds the path of a field inside repeatable instance index.
func InstancePath(group string, index int, name string) string {
	return group + "." + strconv.Itoa(index) + "." + name
}

// resolveGroupTarget rewrites a condition target declared on a field nested in
// a non-repeatable group: bare names resolve inside the group, dotted names
// are already absolute.
func resolveGroupTarget(parent, target string) string {
	if strings.Contains(target, ".") {
		return target
	}
	return parent + "." + target
}

// resolveInstanceTarget rewrites a condition target for a field inside a
// repeatable instance. Targets always resolve within the same instance, so a
// dotted name collapses to its last segment before being re-anchored.
func resolveInstanceTarget(group string, index int, target string) string {
	if i := strings.LastIndex(target, "."); i >= 0 {
		target = target[i+1:]
	}
	return InstancePath(group, index, target)
}

// ValueAt resolves a path against an answer record. The flat key is tried
// first; otherwise the path is walked segment by segment through nested
// sub-records and instance slices.
func ValueAt(rec AnswerRecord, path string) (interface{}, bool) {
	if v, ok := rec[path]; ok {
		return v, true
	}

	segments := strings.Split(path, ".")
	var cur interface{} = map[string]interface{}(rec)
	for _, seg := range segments {
		switch node := cur.(type) {
		case map[string]interface{}:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []interface{}:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// instancesAt returns the instance slice of a repeatable group, looking at
// both the nested representation (a slice at the group key) and flat
// "group.<i>.child" keys.
func instancesAt(rec AnswerRecord, group string) []map[string]interface{} {
	if raw, ok := rec[group]; ok {
		switch v := raw.(type) {
		case []map[string]interface{}:
			return v
		case []interface{}:
			out := make([]map[string]interface{}, 0, len(v))
			for _, item := range v {
				if m, ok := item.(map[string]interface{}); ok {
					out = append(out, m)
				} else {
					out = append(out, map[string]interface{}{})
				}
			}
			return out
		}
	}

	// Flat form: count distinct indices under "group.<i>."
	prefix := group + "."
	max := -1
	for key := range rec {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := key[len(prefix):]
		dot := strings.Index(rest, ".")
		if dot <= 0 {
			continue
		}
		if idx, err := strconv.Atoi(rest[:dot]); err == nil && idx > max {
			max = idx
		}
	}
	if max < 0 {
		return nil
	}

	out := make([]map[string]interface{}, max+1)
	for i := range out {
		out[i] = map[string]interface{}{}
	}
	for key, val := range rec {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := key[len(prefix):]
		dot := strings.Index(rest, ".")
		if dot <= 0 {
			continue
		}
		if idx, err := strconv.Atoi(rest[:dot]); err == nil {
			out[idx][rest[dot+1:]] = val
		}
	}
	return out
}

// mergeAnswers copies src into dst, overwriting existing paths. Step
// advancement accumulates answers this way.
func mergeAnswers(dst, src AnswerRecord) {
	for k, v := range src {
		dst[k] = v
	}
}

// cloneAnswers copies a record deeply through nested sub-records and instance
// slices, so validation and assembly never mutate the caller's record — not
// even maps inside repeatable instances. Leaf values are shared.
func cloneAnswers(rec AnswerRecord) AnswerRecord {
	out := make(AnswerRecord, len(rec))
	for k, v := range rec {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, item := range t {
			m[k] = cloneValue(item)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, item := range t {
			s[i] = cloneValue(item)
		}
		return s
	}
	return v
}
