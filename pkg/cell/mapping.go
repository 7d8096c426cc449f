package cell

import "strings"

// NegationPrefix marks a mapping field whose logical negation is assigned.
const NegationPrefix = "!"

// Mapping binds a row field to a renderer property. Array mappings collect
// several fields into one *Array property, appended in registration order or
// assigned under ArrayKey.
type Mapping struct {
	Property string `json:"property" yaml:"property"`
	Field    string `json:"field" yaml:"field"`
	IsArray  bool   `json:"array,omitempty" yaml:"array,omitempty"`
	ArrayKey string `json:"key,omitempty" yaml:"key,omitempty"`
}

// NewMapping constructs a scalar mapping. Prefix field with "!" to assign the
// negated field value.
func NewMapping(property, field string) *Mapping {
	return &Mapping{
		Property: strings.TrimSpace(property),
		Field:    strings.TrimSpace(field),
	}
}

// NewArrayMapping constructs an array mapping. An empty key appends.
func NewArrayMapping(property, field, key string) *Mapping {
	return &Mapping{
		Property: strings.TrimSpace(property),
		Field:    strings.TrimSpace(field),
		IsArray:  true,
		ArrayKey: strings.TrimSpace(key),
	}
}

// ParseMapping reads the compact "property:field" notation. A "property[]"
// target makes an array mapping and "property[key]" a keyed one.
func ParseMapping(spec string) (*Mapping, bool) {
	property, field, ok := strings.Cut(spec, ":")
	if !ok {
		property, field, ok = strings.Cut(spec, "=")
	}
	property, field = strings.TrimSpace(property), strings.TrimSpace(field)
	if !ok || property == "" || field == "" {
		return nil, false
	}
	if open := strings.Index(property, "["); open > 0 && strings.HasSuffix(property, "]") {
		key := property[open+1 : len(property)-1]
		return NewArrayMapping(property[:open], field, key), true
	}
	return NewMapping(property, field), true
}

// Negated reports whether the field carries the negation prefix.
func (m *Mapping) Negated() bool {
	return !m.IsArray && strings.HasPrefix(m.Field, NegationPrefix)
}

// FieldName returns the row field read by the mapping.
func (m *Mapping) FieldName() string {
	if m.Negated() {
		return strings.TrimPrefix(m.Field, NegationPrefix)
	}
	return m.Field
}

// Clone returns an independent copy.
func (m *Mapping) Clone() *Mapping {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}
