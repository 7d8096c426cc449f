package ui

import (
	"net/url"
	"strings"
)

// FormData is the decoded submission a widget reads during Process. Widgets
// key their slice by their own id or a derived sub-key (id+"_value",
// id+"[]" for multiple values).
type FormData interface {
	Submitted() bool
	Value(name string) (string, bool)
	Values(name string) []string
	Has(name string) bool
}

// MapFormData is a FormData backed by url.Values.
type MapFormData struct {
	values    url.Values
	submitted bool
}

// NewFormData wraps already-parsed form values.
func NewFormData(values url.Values, submitted bool) *MapFormData {
	if values == nil {
		values = url.Values{}
	}
	return &MapFormData{values: values, submitted: submitted}
}

// FormDataFromMap builds submitted form data from single-valued fields.
func FormDataFromMap(fields map[string]string) *MapFormData {
	values := make(url.Values, len(fields))
	for name, value := range fields {
		values.Set(name, value)
	}
	return NewFormData(values, true)
}

// EmptyFormData returns a form data source for requests without a submission.
func EmptyFormData() FormData {
	return NewFormData(nil, false)
}

// Submitted reports whether the form was posted.
func (d *MapFormData) Submitted() bool { return d != nil && d.submitted }

// SetSubmitted overrides the submission flag.
func (d *MapFormData) SetSubmitted(submitted bool) { d.submitted = submitted }

// Value returns the first value submitted under name.
func (d *MapFormData) Value(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	values, ok := d.values[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Values returns every value submitted under name+"[]" or name. Blank entries
// are kept; callers decide whether they are meaningful.
func (d *MapFormData) Values(name string) []string {
	if d == nil {
		return nil
	}
	if !strings.HasSuffix(name, "[]") {
		if values, ok := d.values[name+"[]"]; ok {
			return append([]string(nil), values...)
		}
	}
	if values, ok := d.values[name]; ok {
		return append([]string(nil), values...)
	}
	return nil
}

// Has reports whether name (or name+"[]") was submitted.
func (d *MapFormData) Has(name string) bool {
	if d == nil {
		return false
	}
	if _, ok := d.values[name]; ok {
		return true
	}
	_, ok := d.values[name+"[]"]
	return ok
}

// Set replaces the values stored for name.
func (d *MapFormData) Set(name string, values ...string) {
	d.values[name] = append([]string(nil), values...)
}

// Encode returns the values in URL-encoded form.
func (d *MapFormData) Encode() string {
	if d == nil {
		return ""
	}
	return d.values.Encode()
}
