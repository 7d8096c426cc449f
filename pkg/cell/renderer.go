// Package cell implements row-agnostic cell renderers and the mapping engine
// binding data-row fields to renderer properties. Renderers are created once
// per column or field and reused for every row: a Set applies the registered
// mappings against a row immediately before each Render call.
package cell

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/ui"
)

// Built-in property names.
const (
	PropVisible   = "visible"
	PropSensitive = "sensitive"
	PropClasses   = "classes"
)

// Renderer renders one cell for the row most recently applied to it.
type Renderer interface {
	ui.Object
	Render(rc *ui.RenderContext) error
	Properties() *Properties
	Property(name string) (any, bool)
	SetProperty(name string, value any) error
	IsStaticProperty(name string) bool
	Sensitive() bool
}

// DataClasses is implemented by renderers whose CSS classes depend on the
// current row.
type DataClasses interface {
	DataSpecificClasses() []string
}

// BaseClasses is implemented by renderers with fixed type classes.
type BaseClasses interface {
	BaseCSSClasses() []string
}

// InlineScripter is implemented by renderers emitting inline JavaScript once
// per view.
type InlineScripter interface {
	InlineJavaScript() string
}

// Base is embedded by concrete renderers. It declares the visible, sensitive
// and classes properties; visible is backed by the UIObject flag.
type Base struct {
	ui.UIObject

	props Properties
}

// Bind records self and declares the built-in properties once.
func (b *Base) Bind(self Renderer) {
	b.UIObject.Bind(self)
	if !b.props.IsDeclared(PropSensitive) {
		b.props.Declare(PropSensitive, true)
		b.props.Declare(PropClasses, nil)
	}
}

// Properties exposes the property bag.
func (b *Base) Properties() *Properties { return &b.props }

// Property returns a property value. visible reflects the object flag.
func (b *Base) Property(name string) (any, bool) {
	if name == PropVisible {
		return b.Visible(), true
	}
	return b.props.Get(name)
}

// SetProperty assigns a property. visible is routed to the object flag.
func (b *Base) SetProperty(name string, value any) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ui.Configurationf("property", "property name is required")
	}
	if name == PropVisible {
		b.SetVisible(Truthy(value))
		return nil
	}
	b.props.Set(name, value)
	return nil
}

// IsStaticProperty reports whether name was declared static.
func (b *Base) IsStaticProperty(name string) bool {
	return b.props.IsStatic(name)
}

// Sensitive reports whether the renderer accepts interaction.
func (b *Base) Sensitive() bool {
	return b.props.Bool(PropSensitive)
}

// SetSensitive toggles the sensitive property.
func (b *Base) SetSensitive(sensitive bool) {
	b.props.Set(PropSensitive, sensitive)
}

// CopyRenderer returns a detached copy of the identity and properties.
func (b *Base) CopyRenderer(idSuffix string) Base {
	return Base{
		UIObject: b.UIObject.CopyObject(idSuffix),
		props:    b.props.Clone(),
	}
}

// CSSClassNames returns the classes for the current row: type classes, the
// object's classes, the mapped classes property and, when mappings were
// applied, the data-specific classes.
func CSSClassNames(r Renderer, mappingsApplied bool) []string {
	var classes []string
	if base, ok := r.(BaseClasses); ok {
		classes = append(classes, base.BaseCSSClasses()...)
	}
	classes = append(classes, r.Object().ClassNames()...)
	if value, ok := r.Property(PropClasses); ok && value != nil {
		classes = append(classes, ToArray(splitClasses(value)).Strings()...)
	}
	if !r.Sensitive() {
		classes = append(classes, "formkit-insensitive")
	}
	if mappingsApplied {
		if data, ok := r.(DataClasses); ok {
			classes = append(classes, data.DataSpecificClasses()...)
		}
	}
	return dedupe(classes)
}

func splitClasses(value any) any {
	if s, ok := value.(string); ok {
		return strings.Fields(s)
	}
	return value
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
