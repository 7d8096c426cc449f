package renderers

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/cell"
	"github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// Template renders an inline pongo2 template. Every property other than the
// static template source is exposed to the template by name, so mappings can
// target arbitrary names.
type Template struct {
	cell.Base

	// Engine renders the template source. An inline-only engine is created
	// on first use when nil.
	Engine template.TemplateRenderer
}

// NewTemplate constructs a template renderer for source.
func NewTemplate(id, source string, engine template.TemplateRenderer) *Template {
	r := &Template{Engine: engine}
	r.ID = id
	r.Bind(r)
	r.Properties().DeclareStatic("template", source)
	return r
}

// Init prepares the default engine.
func (r *Template) Init() error {
	if r.Engine != nil {
		return nil
	}
	engine, err := gotemplate.New(gotemplate.WithString())
	if err != nil {
		return fmt.Errorf("renderers: template engine: %w", err)
	}
	r.Engine = engine
	return nil
}

// Context returns the data handed to the template for the current row.
func (r *Template) Context() map[string]any {
	ctx := map[string]any{"id": r.ID}
	for _, name := range r.Properties().Names() {
		if name == "template" {
			continue
		}
		value, _ := r.Properties().Get(name)
		if arr, ok := value.(*cell.Array); ok {
			value = arr.Values()
		}
		ctx[name] = value
	}
	return ctx
}

// Render executes the template against Context.
func (r *Template) Render(rc *ui.RenderContext) error {
	if err := r.Init(); err != nil {
		return err
	}
	source := r.Properties().String("template")
	if source == "" {
		return nil
	}
	if _, err := r.Engine.RenderString(source, r.Context(), rc.Writer); err != nil {
		return fmt.Errorf("renderers: template %q: %w", r.ID, err)
	}
	return nil
}

// Copy returns a detached copy sharing the engine.
func (r *Template) Copy(idSuffix string) ui.Object {
	clone := &Template{Base: r.CopyRenderer(idSuffix), Engine: r.Engine}
	clone.Bind(clone)
	return clone
}
