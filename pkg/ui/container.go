package ui

// ChildValidator lets typed containers reject incompatible children.
type ChildValidator interface {
	ValidateChild(child Widget) error
}

// ContainerBase is embedded by widgets that own application-added children.
// Children are initialised, processed and displayed in insertion order.
type ContainerBase struct {
	Base

	children []Widget
}

// Bind records self as the outer widget and re-parents owned children.
func (c *ContainerBase) Bind(self Widget) {
	c.Base.Bind(self)
	for _, child := range c.children {
		adopt(self, child)
	}
}

// Add appends child. The child must be detached; the outer widget may reject
// it by implementing ChildValidator.
func (c *ContainerBase) Add(child Widget) error {
	if child == nil {
		return Configurationf("add", "child widget is nil")
	}
	owner := c.widget()
	if owner == nil {
		return Configurationf("add", "container %q is not bound", c.ID)
	}
	if validator, ok := owner.(ChildValidator); ok {
		if err := validator.ValidateChild(child); err != nil {
			return err
		}
	}
	if err := Attach(owner, child); err != nil {
		return err
	}
	c.children = append(c.children, child)
	return nil
}

// MustAdd adds children and panics on configuration errors.
func (c *ContainerBase) MustAdd(children ...Widget) {
	for _, child := range children {
		if err := c.Add(child); err != nil {
			panic(err)
		}
	}
}

// Remove detaches child.
func (c *ContainerBase) Remove(child Widget) error {
	for idx, existing := range c.children {
		if Same(existing, child) {
			c.children = append(c.children[:idx], c.children[idx+1:]...)
			Detach(child)
			return nil
		}
	}
	id := ""
	if child != nil {
		id = child.Object().ID
	}
	return NotFound("child widget", id)
}

// Children returns the direct children in insertion order.
func (c *ContainerBase) Children() []Widget {
	if len(c.children) == 0 {
		return nil
	}
	return append([]Widget(nil), c.children...)
}

// Child returns the direct child with the given id.
func (c *ContainerBase) Child(id string) (Widget, error) {
	for _, child := range c.children {
		if child.Object().ID == id {
			return child, nil
		}
	}
	return nil, NotFound("child widget", id)
}

// FirstChild returns the first child.
func (c *ContainerBase) FirstChild() (Widget, error) {
	if len(c.children) == 0 {
		return nil, NotFound("child widget", "#0")
	}
	return c.children[0], nil
}

// Init initialises composites, then children top-down.
func (c *ContainerBase) Init() error {
	if err := c.Base.Init(); err != nil {
		return err
	}
	for _, child := range c.children {
		if isInitialized(child) {
			continue
		}
		if err := child.Init(); err != nil {
			return err
		}
	}
	return nil
}

// Process processes composites, then children top-down.
func (c *ContainerBase) Process(data FormData) error {
	if err := c.Base.Process(data); err != nil {
		return err
	}
	for _, child := range c.children {
		if isProcessed(child) {
			continue
		}
		if err := child.Process(data); err != nil {
			return err
		}
	}
	return nil
}

// Display renders the children without wrapping markup.
func (c *ContainerBase) Display(rc *RenderContext) error {
	if !c.IsVisible() {
		return nil
	}
	if err := c.Base.Display(rc); err != nil {
		return err
	}
	return c.DisplayChildren(rc)
}

// DisplayChildren displays every child in order.
func (c *ContainerBase) DisplayChildren(rc *RenderContext) error {
	for _, child := range c.children {
		if err := child.Display(rc); err != nil {
			return err
		}
	}
	return nil
}

// ChildObjects returns children followed by composite widgets.
func (c *ContainerBase) ChildObjects() []Object {
	composites := c.Base.ChildObjects()
	out := make([]Object, 0, len(c.children)+len(composites))
	for _, child := range c.children {
		out = append(out, child)
	}
	return append(out, composites...)
}

// DescendantStates captures the state of every stateful descendant by id.
func (c *ContainerBase) DescendantStates() map[string]any {
	if self := c.widget(); self != nil {
		return CaptureState(self)
	}
	return nil
}

// SetDescendantStates restores states captured by DescendantStates.
func (c *ContainerBase) SetDescendantStates(states map[string]any) error {
	if self := c.widget(); self != nil {
		return RestoreState(self, states)
	}
	return nil
}

// CopyContainer returns a detached deep copy of the container state. Children
// are re-parented when the copy is bound.
func (c *ContainerBase) CopyContainer(idSuffix string) ContainerBase {
	clone := ContainerBase{Base: c.Base.CopyBase(idSuffix)}
	for _, child := range c.children {
		if copied, ok := child.Copy(idSuffix).(Widget); ok {
			clone.children = append(clone.children, copied)
		}
	}
	return clone
}
