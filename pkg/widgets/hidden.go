package widgets

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenValue is a hidden input emitted by a Form next to its children.
type HiddenValue struct {
	Name  string
	Value string
}

// Hidden returns a HiddenValue for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenValue {
	return HiddenValue{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden value carrying the provided token. Callers
// supply the input name expected by their backend ("_csrf", "csrf_token").
func CSRFToken(name, token string) HiddenValue {
	return Hidden(name, token)
}

// VersionField constructs a hidden value used for optimistic locking.
func VersionField(name string, version any) HiddenValue {
	return Hidden(name, version)
}

// MergeHiddenValues returns a copy of base with values applied. Empty names
// are ignored; later values win on name collisions.
func MergeHiddenValues(base map[string]string, values ...HiddenValue) map[string]string {
	if len(base) == 0 && len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(values))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, value := range values {
		if value.Name == "" {
			continue
		}
		out[value.Name] = value.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenValues orders hidden values by name for deterministic output.
func SortedHiddenValues(values map[string]string) []HiddenValue {
	if len(values) == 0 {
		return nil
	}
	names := make([]string, 0, len(values))
	for name := range values {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([]HiddenValue, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenValue{Name: strings.TrimSpace(name), Value: values[name]})
	}
	return out
}
