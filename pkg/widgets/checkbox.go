package widgets

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// Checkbox is a boolean input. A submission without the checkbox's id means
// unchecked.
type Checkbox struct {
	ui.Base

	Value bool
	// TitleText labels the box inline when set.
	TitleText string
}

// NewCheckbox constructs a checkbox.
func NewCheckbox(id string) *Checkbox {
	c := &Checkbox{}
	c.ID = id
	c.RequiresID = true
	c.Bind(c)
	return c
}

func (c *Checkbox) focusable() {}

// Title implements ui.Titleable.
func (c *Checkbox) Title() string { return c.TitleText }

// Process reads the checked state.
func (c *Checkbox) Process(data ui.FormData) error {
	if err := c.Base.Process(data); err != nil {
		return err
	}
	c.Value = data.Has(c.ID)
	return nil
}

// State implements ui.Stateful.
func (c *Checkbox) State() any { return c.Value }

// SetState implements ui.Stateful.
func (c *Checkbox) SetState(state any) error {
	value, ok := state.(bool)
	if !ok {
		return fmt.Errorf("widgets: checkbox %q: unsupported state %T", c.ID, state)
	}
	c.Value = value
	return nil
}

// Display writes the input and its inline label.
func (c *Checkbox) Display(rc *ui.RenderContext) error {
	if !c.IsVisible() {
		return nil
	}
	if err := c.Base.Display(rc); err != nil {
		return err
	}
	input := htmltag.New("input").
		Set("type", "checkbox").
		Set("name", c.ID).
		SetID(c.ID).
		Set("value", "1").
		Set("checked", c.Value)
	input.AddClass("formkit-checkbox")
	input.AddClass(c.ClassNames()...)
	if err := input.Display(rc.Writer); err != nil {
		return err
	}
	if c.TitleText == "" {
		return nil
	}
	label := htmltag.New("label").Set("for", c.ID).SetContent(rc.T(c.TitleText, c.TitleText))
	return label.Display(rc.Writer)
}

// Copy returns a detached copy.
func (c *Checkbox) Copy(idSuffix string) ui.Object {
	clone := &Checkbox{Base: c.CopyBase(idSuffix), Value: c.Value, TitleText: c.TitleText}
	clone.Bind(clone)
	return clone
}
