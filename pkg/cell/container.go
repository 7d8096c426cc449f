package cell

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/assets"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// Container is embedded by view columns and fields owning cell renderers.
// The owner is recorded by BindContainer and becomes the parent of every
// added renderer.
type Container struct {
	set   Set
	owner ui.Object
}

// BindContainer records owner and re-parents the renderers. Attaching fails
// when owner is one of the renderers or one of their descendants.
func (c *Container) BindContainer(owner ui.Object) error {
	c.owner = owner
	for _, r := range c.set.renderers {
		ui.Detach(r)
		if owner == nil {
			continue
		}
		if err := ui.Attach(owner, r); err != nil {
			return fmt.Errorf("cell: bind renderer %q: %w", r.Object().ID, err)
		}
	}
	return nil
}

// AddRenderer appends r and parents it to the owner.
func (c *Container) AddRenderer(r Renderer) error {
	return c.AddRendererWithMappings(r)
}

// AddRendererWithMappings appends r with mappings.
func (c *Container) AddRendererWithMappings(r Renderer, mappings ...*Mapping) error {
	if r == nil {
		return ui.Configurationf("renderer", "renderer is nil")
	}
	if r.Object().Parent() != nil {
		return ui.Configurationf("renderer", "renderer %q already has a parent", r.Object().ID)
	}
	if err := c.set.AddWithMappings(r, mappings...); err != nil {
		return err
	}
	if c.owner != nil {
		if err := ui.Attach(c.owner, r); err != nil {
			_ = c.set.Remove(r)
			return err
		}
	}
	return nil
}

// AddMappingToRenderer registers additional mappings for an owned renderer.
func (c *Container) AddMappingToRenderer(r Renderer, mappings ...*Mapping) error {
	return c.set.AddMappings(r, mappings...)
}

// Renderer returns the renderer with the given id.
func (c *Container) Renderer(id string) (Renderer, error) { return c.set.ByID(id) }

// RendererAt returns the renderer at position i.
func (c *Container) RendererAt(i int) (Renderer, error) { return c.set.At(i) }

// FirstRenderer returns the first renderer.
func (c *Container) FirstRenderer() (Renderer, error) { return c.set.First() }

// Renderers returns the renderers in render order.
func (c *Container) Renderers() []Renderer { return c.set.Renderers() }

// RendererSet exposes the underlying set.
func (c *Container) RendererSet() *Set { return &c.set }

// RemoveRenderer detaches r and drops its mappings.
func (c *Container) RemoveRenderer(r Renderer) error {
	if err := c.set.Remove(r); err != nil {
		return err
	}
	ui.Detach(r)
	return nil
}

// ApplyMappings applies row to every renderer in order.
func (c *Container) ApplyMappings(row any) error {
	for _, r := range c.set.renderers {
		if err := c.set.ApplyMappingsToRenderer(r, row); err != nil {
			return err
		}
	}
	return nil
}

// ApplyMappingsToRenderer applies row to a single renderer.
func (c *Container) ApplyMappingsToRenderer(r Renderer, row any) error {
	return c.set.ApplyMappingsToRenderer(r, row)
}

// MappingsApplied reports whether a row was applied.
func (c *Container) MappingsApplied() bool { return c.set.MappingsApplied() }

// RendererObjects returns the renderers as tree objects.
func (c *Container) RendererObjects() []ui.Object {
	out := make([]ui.Object, 0, len(c.set.renderers))
	for _, r := range c.set.renderers {
		out = append(out, r)
	}
	return out
}

// InitRenderers runs the optional Init hook of each renderer.
func (c *Container) InitRenderers() error {
	for _, r := range c.set.renderers {
		if initializer, ok := r.(ui.Initializer); ok {
			if err := initializer.Init(); err != nil {
				return fmt.Errorf("cell: init renderer %q: %w", r.Object().ID, err)
			}
		}
	}
	return nil
}

// ProcessRenderers runs the optional Process hook of each renderer.
func (c *Container) ProcessRenderers(data ui.FormData) error {
	for _, r := range c.set.renderers {
		if processor, ok := r.(ui.Processor); ok {
			if err := processor.Process(data); err != nil {
				return err
			}
		}
	}
	return nil
}

// RendererHeadEntries merges the head entries of renderers.
func (c *Container) RendererHeadEntries() *assets.Set {
	set := assets.NewSet()
	for _, r := range c.set.renderers {
		if provider, ok := r.(ui.HeadEntryProvider); ok {
			set.Merge(provider.HeadEntries())
		}
	}
	return set
}

// DescendantStates captures the state of stateful renderers by id.
func (c *Container) DescendantStates() map[string]any {
	states := make(map[string]any)
	for _, r := range c.set.renderers {
		for id, state := range ui.CaptureState(r) {
			states[id] = state
		}
	}
	return states
}

// SetDescendantStates restores renderer states captured by DescendantStates.
func (c *Container) SetDescendantStates(states map[string]any) error {
	for _, r := range c.set.renderers {
		if err := ui.RestoreState(r, states); err != nil {
			return err
		}
	}
	return nil
}

// CopyContainer deep-copies the renderers and their mappings. The copy is
// unowned until BindContainer is called on it.
func (c *Container) CopyContainer(idSuffix string) (Container, error) {
	set, err := c.set.Copy(idSuffix)
	if err != nil {
		return Container{}, err
	}
	return Container{set: *set}, nil
}
