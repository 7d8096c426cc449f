package cell

import (
	"reflect"
	"strings"

	"github.com/goliatone/go-formkit/pkg/ui"
)

// Row is implemented by data rows exposing named fields directly.
type Row interface {
	FieldValue(name string) (any, bool)
}

// FieldValue reads field name from row. Rows may implement Row, be maps keyed
// by string, or be structs (or pointers to structs) whose fields are matched
// by formkit tag, json tag or name. Dotted names walk nested values. A missing
// field is a NotFound error.
func FieldValue(row any, name string) (any, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ui.NotFound("field", name)
	}
	if value, ok := lookupField(row, name); ok {
		return value, nil
	}
	current := row
	for _, part := range strings.Split(name, ".") {
		value, ok := lookupField(current, part)
		if !ok {
			return nil, ui.NotFound("field", name)
		}
		current = value
	}
	return current, nil
}

func lookupField(row any, name string) (any, bool) {
	switch v := row.(type) {
	case nil:
		return nil, false
	case Row:
		return v.FieldValue(name)
	case map[string]any:
		value, ok := v[name]
		return value, ok
	case map[string]string:
		value, ok := v[name]
		return value, ok
	}

	rv := reflect.ValueOf(row)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		value := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !value.IsValid() {
			return nil, false
		}
		return value.Interface(), true
	case reflect.Struct:
		return structField(rv, name)
	default:
		return nil, false
	}
}

func structField(rv reflect.Value, name string) (any, bool) {
	rt := rv.Type()
	var fallback = -1
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		if tagName(field, "formkit") == name || tagName(field, "json") == name {
			return rv.Field(i).Interface(), true
		}
		if field.Name == name {
			return rv.Field(i).Interface(), true
		}
		if fallback < 0 && strings.EqualFold(field.Name, name) {
			fallback = i
		}
	}
	if fallback >= 0 {
		return rv.Field(fallback).Interface(), true
	}
	return nil, false
}

func tagName(field reflect.StructField, key string) string {
	tag := field.Tag.Get(key)
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}
