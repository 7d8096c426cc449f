package cell

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Properties is the named property bag of a cell renderer. Declared names
// carry defaults; static names are fixed by the renderer author and may not
// be targeted by data mappings. Undeclared names can still be set, which
// keeps the bag open for arbitrary HTML attributes.
type Properties struct {
	values   map[string]any
	declared []string
	static   map[string]struct{}
}

// Declare registers a mappable property with its default value.
func (p *Properties) Declare(name string, value any) {
	p.declare(name, value, false)
}

// DeclareStatic registers a property that data mappings may never target.
func (p *Properties) DeclareStatic(name string, value any) {
	p.declare(name, value, true)
}

func (p *Properties) declare(name string, value any, static bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if !p.IsDeclared(name) {
		p.declared = append(p.declared, name)
	}
	p.values[name] = value
	if static {
		if p.static == nil {
			p.static = make(map[string]struct{})
		}
		p.static[name] = struct{}{}
	}
}

// IsDeclared reports whether name was declared.
func (p *Properties) IsDeclared(name string) bool {
	for _, declared := range p.declared {
		if declared == name {
			return true
		}
	}
	return false
}

// IsStatic reports whether name was declared static.
func (p *Properties) IsStatic(name string) bool {
	_, ok := p.static[name]
	return ok
}

// Names returns declared names followed by extension names, sorted within the
// second group for stable output.
func (p *Properties) Names() []string {
	out := append([]string(nil), p.declared...)
	var extra []string
	for name := range p.values {
		if !p.IsDeclared(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// Get returns the raw value of name.
func (p *Properties) Get(name string) (any, bool) {
	value, ok := p.values[name]
	return value, ok
}

// Set assigns a value.
func (p *Properties) Set(name string, value any) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if p.values == nil {
		p.values = make(map[string]any)
	}
	p.values[name] = value
}

// String returns name formatted as a string. Nil becomes "".
func (p *Properties) String(name string) string {
	value, _ := p.Get(name)
	return ToString(value)
}

// Bool returns the truthiness of name.
func (p *Properties) Bool(name string) bool {
	value, _ := p.Get(name)
	return Truthy(value)
}

// Int returns name converted to an int; unconvertible values yield 0.
func (p *Properties) Int(name string) int {
	value, _ := p.Get(name)
	f, ok := ToFloat(value)
	if !ok {
		return 0
	}
	return int(f)
}

// Float returns name converted to a float64 and whether conversion succeeded.
func (p *Properties) Float(name string) (float64, bool) {
	value, _ := p.Get(name)
	return ToFloat(value)
}

// IsNil reports whether name is unset or nil.
func (p *Properties) IsNil(name string) bool {
	value, ok := p.Get(name)
	return !ok || value == nil
}

// Array returns name as an *Array. Slices and maps are converted; scalars
// become one-element arrays.
func (p *Properties) Array(name string) *Array {
	value, ok := p.Get(name)
	if !ok || value == nil {
		return NewArray()
	}
	return ToArray(value)
}

// Clone returns a deep copy of the bag. *Array values are cloned.
func (p *Properties) Clone() Properties {
	clone := Properties{
		declared: append([]string(nil), p.declared...),
	}
	if p.values != nil {
		clone.values = make(map[string]any, len(p.values))
		for name, value := range p.values {
			if arr, ok := value.(*Array); ok {
				value = arr.Clone()
			}
			clone.values[name] = value
		}
	}
	if p.static != nil {
		clone.static = make(map[string]struct{}, len(p.static))
		for name := range p.static {
			clone.static[name] = struct{}{}
		}
	}
	return clone
}

// Truthy applies loose truthiness: nil, false, zero numbers, "", "0" and
// empty collections are false.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "0"
	case *Array:
		return v != nil && v.Len() > 0
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// ToString formats a property value for markup.
func ToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case bool:
		if v {
			return "1"
		}
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// ToFloat converts numeric values and numeric strings.
func ToFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
