package builder

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/cell"
	"github.com/goliatone/go-formkit/pkg/option"
	"github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// WidgetFactory constructs the widget described by spec. Children, classes
// and visibility are applied by the Builder afterwards.
type WidgetFactory func(b *Builder, spec Spec) (ui.Widget, error)

// RendererFactory constructs the cell renderer described by spec. Props and
// mappings are applied by the Builder afterwards.
type RendererFactory func(b *Builder, spec RendererSpec) (cell.Renderer, error)

// Builder turns documents into widget trees.
type Builder struct {
	Widgets   *Registry[WidgetFactory]
	Renderers *Registry[RendererFactory]
	// Stock supplies button presets; nil uses widgets.DefaultStock.
	Stock *widgets.StockRegistry
	// Engine renders template blocks and template cells; nil gives each one
	// an inline engine of its own.
	Engine template.TemplateRenderer
}

// Option customises a Builder.
type Option func(*Builder)

// WithStock sets the button preset registry.
func WithStock(stock *widgets.StockRegistry) Option {
	return func(b *Builder) {
		b.Stock = stock
	}
}

// WithEngine shares a template engine across template widgets.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(b *Builder) {
		b.Engine = engine
	}
}

// WithWidget registers an extra widget kind.
func WithWidget(kind string, factory WidgetFactory) Option {
	return func(b *Builder) {
		b.Widgets.MustRegister(kind, factory)
	}
}

// WithRenderer registers an extra cell renderer kind.
func WithRenderer(kind string, factory RendererFactory) Option {
	return func(b *Builder) {
		b.Renderers.MustRegister(kind, factory)
	}
}

// New returns a builder with the built-in kinds registered.
func New(opts ...Option) *Builder {
	b := &Builder{
		Widgets:   NewRegistry[WidgetFactory](),
		Renderers: NewRegistry[RendererFactory](),
	}
	registerWidgets(b.Widgets)
	registerRenderers(b.Renderers)
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// BuildDocument decodes data and builds the tree it describes.
func (b *Builder) BuildDocument(data []byte) (ui.Widget, error) {
	spec, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return b.Build(spec)
}

// Build constructs the widget described by spec and its children.
func (b *Builder) Build(spec Spec) (ui.Widget, error) {
	factory, err := b.Widgets.Get(spec.Kind)
	if err != nil {
		return nil, fmt.Errorf("builder: node %q: %w", spec.ID, err)
	}
	w, err := factory(b, spec)
	if err != nil {
		return nil, fmt.Errorf("builder: node %q: %w", spec.ID, err)
	}
	w.Object().AddClass(spec.Classes...)
	if spec.Hidden {
		w.Object().SetVisible(false)
	}
	if len(spec.Children) == 0 {
		return w, nil
	}
	parent, ok := w.(interface{ Add(ui.Widget) error })
	if !ok {
		return nil, ui.Configurationf("build", "%s %q cannot have children", spec.Kind, spec.ID)
	}
	for _, childSpec := range spec.Children {
		child, err := b.Build(childSpec)
		if err != nil {
			return nil, err
		}
		if err := parent.Add(child); err != nil {
			return nil, fmt.Errorf("builder: node %q: %w", spec.ID, err)
		}
	}
	return w, nil
}

// BuildRenderer constructs a cell renderer and parses its mappings.
func (b *Builder) BuildRenderer(spec RendererSpec) (cell.Renderer, []*cell.Mapping, error) {
	factory, err := b.Renderers.Get(spec.Kind)
	if err != nil {
		return nil, nil, fmt.Errorf("builder: renderer %q: %w", spec.ID, err)
	}
	r, err := factory(b, spec)
	if err != nil {
		return nil, nil, fmt.Errorf("builder: renderer %q: %w", spec.ID, err)
	}
	for name, value := range spec.Props {
		if r.IsStaticProperty(name) {
			continue
		}
		if err := r.SetProperty(name, value); err != nil {
			return nil, nil, err
		}
	}
	mappings := make([]*cell.Mapping, 0, len(spec.Mappings))
	for _, raw := range spec.Mappings {
		mapping, ok := cell.ParseMapping(raw)
		if !ok {
			return nil, nil, ui.Configurationf("mapping", "renderer %q: invalid mapping %q", spec.ID, raw)
		}
		mappings = append(mappings, mapping)
	}
	return r, mappings, nil
}

func (b *Builder) fillContainer(container *cell.Container, specs []RendererSpec) error {
	for _, spec := range specs {
		r, mappings, err := b.BuildRenderer(spec)
		if err != nil {
			return err
		}
		if err := container.AddRendererWithMappings(r, mappings...); err != nil {
			return err
		}
	}
	return nil
}

func addOptions(control *option.Control, specs []OptionSpec) {
	for _, spec := range specs {
		if spec.Divider {
			control.AddDivider(spec.Title)
			continue
		}
		var metadata option.Metadata
		if len(spec.Classes) > 0 {
			metadata = option.Metadata{option.MetaClasses: spec.Classes}
		}
		control.AddOptionObject(option.New(spec.Value, spec.Title, spec.ContentType), metadata)
	}
}

func addTreeOptions(node *option.TreeNode, specs []OptionSpec) {
	for _, spec := range specs {
		opt := option.New(spec.Value, spec.Title, spec.ContentType)
		if spec.Divider {
			opt = option.NewDivider(spec.Title)
		}
		addTreeOptions(node.Add(opt), spec.Children)
	}
}
