package cell

import (
	"reflect"
	"sort"
	"strings"
)

// ArrayEntry is one element of an Array. Keyed entries carry their key.
type ArrayEntry struct {
	Key   string
	Keyed bool
	Value any
}

// Array is an ordered collection mixing appended and keyed entries. Array
// mappings build one per renderer property while a row is applied.
type Array struct {
	entries []ArrayEntry
}

// NewArray constructs an empty array.
func NewArray() *Array { return &Array{} }

// Append adds a keyless entry.
func (a *Array) Append(value any) {
	a.entries = append(a.entries, ArrayEntry{Value: value})
}

// Set assigns value under key, replacing an existing keyed entry in place.
func (a *Array) Set(key string, value any) {
	for idx := range a.entries {
		if a.entries[idx].Keyed && a.entries[idx].Key == key {
			a.entries[idx].Value = value
			return
		}
	}
	a.entries = append(a.entries, ArrayEntry{Key: key, Keyed: true, Value: value})
}

// Get returns the value stored under key.
func (a *Array) Get(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	for _, entry := range a.entries {
		if entry.Keyed && entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Len returns the number of entries.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.entries)
}

// Entries returns a copy of the entries in order.
func (a *Array) Entries() []ArrayEntry {
	if a == nil {
		return nil
	}
	return append([]ArrayEntry(nil), a.entries...)
}

// Values returns the entry values in order.
func (a *Array) Values() []any {
	if a == nil {
		return nil
	}
	out := make([]any, 0, len(a.entries))
	for _, entry := range a.entries {
		out = append(out, entry.Value)
	}
	return out
}

// Keys returns the keys of keyed entries in order.
func (a *Array) Keys() []string {
	if a == nil {
		return nil
	}
	var out []string
	for _, entry := range a.entries {
		if entry.Keyed {
			out = append(out, entry.Key)
		}
	}
	return out
}

// Strings returns the entry values formatted as strings.
func (a *Array) Strings() []string {
	if a == nil {
		return nil
	}
	out := make([]string, 0, len(a.entries))
	for _, entry := range a.entries {
		out = append(out, ToString(entry.Value))
	}
	return out
}

// String joins the values with ", ".
func (a *Array) String() string {
	return strings.Join(a.Strings(), ", ")
}

// Clone returns a shallow copy of the entries.
func (a *Array) Clone() *Array {
	if a == nil {
		return nil
	}
	return &Array{entries: append([]ArrayEntry(nil), a.entries...)}
}

// ToArray converts slices, maps and scalars into an Array. Map keys are
// sorted since Go maps carry no order.
func ToArray(value any) *Array {
	switch v := value.(type) {
	case nil:
		return NewArray()
	case *Array:
		return v
	case []any:
		arr := NewArray()
		for _, item := range v {
			arr.Append(item)
		}
		return arr
	case []string:
		arr := NewArray()
		for _, item := range v {
			arr.Append(item)
		}
		return arr
	}

	rv := reflect.ValueOf(value)
	arr := NewArray()
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			arr.Append(rv.Index(i).Interface())
		}
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		values := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := ToString(iter.Key().Interface())
			keys = append(keys, key)
			values[key] = iter.Value().Interface()
		}
		sort.Strings(keys)
		for _, key := range keys {
			arr.Set(key, values[key])
		}
	default:
		arr.Append(value)
	}
	return arr
}
