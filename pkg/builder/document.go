package builder

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/cell"
)

// Spec describes one widget node of a tree document.
type Spec struct {
	ID       string         `yaml:"id" json:"id"`
	Kind     string         `yaml:"kind" json:"kind"`
	Title    string         `yaml:"title,omitempty" json:"title,omitempty"`
	Classes  []string       `yaml:"classes,omitempty" json:"classes,omitempty"`
	Hidden   bool           `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	Props    map[string]any `yaml:"props,omitempty" json:"props,omitempty"`
	Options  []OptionSpec   `yaml:"options,omitempty" json:"options,omitempty"`
	Columns  []ColumnSpec   `yaml:"columns,omitempty" json:"columns,omitempty"`
	Children []Spec         `yaml:"children,omitempty" json:"children,omitempty"`
}

// OptionSpec describes an option of a list widget. Children are only used by
// hierarchical widgets.
type OptionSpec struct {
	Value       any          `yaml:"value" json:"value"`
	Title       string       `yaml:"title" json:"title"`
	ContentType string       `yaml:"content_type,omitempty" json:"content_type,omitempty"`
	Divider     bool         `yaml:"divider,omitempty" json:"divider,omitempty"`
	Classes     []string     `yaml:"classes,omitempty" json:"classes,omitempty"`
	Children    []OptionSpec `yaml:"children,omitempty" json:"children,omitempty"`
}

// ColumnSpec describes a table column or a details field.
type ColumnSpec struct {
	ID        string         `yaml:"id" json:"id"`
	Title     string         `yaml:"title,omitempty" json:"title,omitempty"`
	Renderers []RendererSpec `yaml:"renderers" json:"renderers"`
}

// RendererSpec describes a cell renderer and its mappings. Mappings use the
// compact "property:field" notation.
type RendererSpec struct {
	ID       string         `yaml:"id" json:"id"`
	Kind     string         `yaml:"kind" json:"kind"`
	Props    map[string]any `yaml:"props,omitempty" json:"props,omitempty"`
	Mappings []string       `yaml:"mappings,omitempty" json:"mappings,omitempty"`
}

// Decode parses a YAML or JSON tree document.
func Decode(data []byte) (Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, fmt.Errorf("builder: decode document: %w", err)
	}
	return spec, nil
}

// Encode writes spec as YAML.
func Encode(spec Spec) ([]byte, error) {
	out, err := yaml.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("builder: encode document: %w", err)
	}
	return out, nil
}

// String returns a property as a string.
func (s Spec) String(key string) string {
	return cell.ToString(s.Props[key])
}

// StringOr returns a property or fallback when absent.
func (s Spec) StringOr(key, fallback string) string {
	if _, ok := s.Props[key]; !ok {
		return fallback
	}
	return s.String(key)
}

// Bool returns a property as a boolean.
func (s Spec) Bool(key string) bool {
	return cell.Truthy(s.Props[key])
}

// BoolOr returns a property or fallback when absent.
func (s Spec) BoolOr(key string, fallback bool) bool {
	if _, ok := s.Props[key]; !ok {
		return fallback
	}
	return s.Bool(key)
}

// Int returns a property as an int, 0 when absent or not numeric.
func (s Spec) Int(key string) int {
	value, ok := cell.ToFloat(s.Props[key])
	if !ok {
		return 0
	}
	return int(math.Trunc(value))
}

// Float returns a numeric property, nil when absent.
func (s Spec) Float(key string) *float64 {
	value, ok := cell.ToFloat(s.Props[key])
	if !ok {
		return nil
	}
	return &value
}

// Strings returns a list property.
func (s Spec) Strings(key string) []string {
	switch v := s.Props[key].(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, cell.ToString(item))
		}
		return out
	default:
		return []string{cell.ToString(v)}
	}
}
