package renderers

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/cell"
	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/view"
)

// Checkbox is a selector rendering one checkbox per row. Submitted values
// under id[] (or id) replace the owning view's selection for this selector;
// a row is checked when its mapped value is selected.
type Checkbox struct {
	cell.Base
}

var _ view.Selector = (*Checkbox)(nil)

// NewCheckbox constructs a checkbox selector.
func NewCheckbox(id string) *Checkbox {
	r := &Checkbox{}
	r.ID = id
	r.Bind(r)
	r.Properties().Declare(PropValue, nil)
	r.Properties().Declare(PropTitle, "")
	r.Properties().Declare(PropContentType, htmltag.ContentTypeText)
	return r
}

func (r *Checkbox) SelectorID() string { return r.ID }

// Process replaces the view selection with the submitted identifiers.
func (r *Checkbox) Process(data ui.FormData) error {
	owner, err := view.OwnerOf(r)
	if err != nil {
		return err
	}
	return owner.SetSelection(view.NewSelectionFromStrings(data.Values(r.ID)), r)
}

// Checked reports whether the current row is selected.
func (r *Checkbox) Checked() (bool, error) {
	return selected(r, r.Properties())
}

// Render writes the checkbox input and its optional label.
func (r *Checkbox) Render(rc *ui.RenderContext) error {
	checked, err := r.Checked()
	if err != nil {
		return err
	}
	value := r.Properties().String(PropValue)
	input := htmltag.New("input").
		Set("type", "checkbox").
		Set("name", r.ID+"[]").
		SetID(inputID(r.ID, value)).
		Set("value", value).
		Set("checked", checked).
		Set("disabled", !r.Sensitive())
	input.AddClass("formkit-checkbox-cell-renderer-checkbox")
	return writeChoice(rc, input, inputID(r.ID, value), r.Properties())
}

func (r *Checkbox) BaseCSSClasses() []string {
	return []string{"formkit-checkbox-cell-renderer"}
}

// Copy returns a detached copy.
func (r *Checkbox) Copy(idSuffix string) ui.Object {
	clone := &Checkbox{Base: r.CopyRenderer(idSuffix)}
	clone.Bind(clone)
	return clone
}

// Radio is a single-choice selector: the submitted id value becomes the only
// selected identifier of the owning view.
type Radio struct {
	cell.Base
}

var _ view.Selector = (*Radio)(nil)

// NewRadio constructs a radio selector.
func NewRadio(id string) *Radio {
	r := &Radio{}
	r.ID = id
	r.Bind(r)
	r.Properties().Declare(PropValue, nil)
	r.Properties().Declare(PropTitle, "")
	r.Properties().Declare(PropContentType, htmltag.ContentTypeText)
	return r
}

func (r *Radio) SelectorID() string { return r.ID }

// Process replaces the view selection with the submitted identifier.
func (r *Radio) Process(data ui.FormData) error {
	owner, err := view.OwnerOf(r)
	if err != nil {
		return err
	}
	selection := view.NewSelection()
	if value, ok := data.Value(r.ID); ok && strings.TrimSpace(value) != "" {
		selection = view.NewSelection(value)
	}
	return owner.SetSelection(selection, r)
}

// Checked reports whether the current row is the selected one.
func (r *Radio) Checked() (bool, error) {
	return selected(r, r.Properties())
}

// Render writes the radio input and its optional label.
func (r *Radio) Render(rc *ui.RenderContext) error {
	checked, err := r.Checked()
	if err != nil {
		return err
	}
	value := r.Properties().String(PropValue)
	input := htmltag.New("input").
		Set("type", "radio").
		Set("name", r.ID).
		SetID(inputID(r.ID, value)).
		Set("value", value).
		Set("checked", checked).
		Set("disabled", !r.Sensitive())
	input.AddClass("formkit-radio-cell-renderer-radio")
	return writeChoice(rc, input, inputID(r.ID, value), r.Properties())
}

func (r *Radio) BaseCSSClasses() []string {
	return []string{"formkit-radio-cell-renderer"}
}

// Copy returns a detached copy.
func (r *Radio) Copy(idSuffix string) ui.Object {
	clone := &Radio{Base: r.CopyRenderer(idSuffix)}
	clone.Bind(clone)
	return clone
}

func selected(selector view.Selector, props *cell.Properties) (bool, error) {
	owner, err := view.OwnerOf(selector)
	if err != nil {
		return false, err
	}
	selection, err := owner.Selection(selector)
	if err != nil {
		return false, err
	}
	value, _ := props.Get(PropValue)
	return selection.Contains(value), nil
}

func inputID(id, value string) string {
	if value == "" {
		return id
	}
	return id + "_" + value
}

func writeChoice(rc *ui.RenderContext, input *htmltag.Tag, id string, props *cell.Properties) error {
	if err := input.Display(rc.Writer); err != nil {
		return err
	}
	title := props.String(PropTitle)
	if title == "" {
		return nil
	}
	label := htmltag.New("label").Set("for", id)
	label.SetContent(rc.T(title, title), props.String(PropContentType))
	return label.Display(rc.Writer)
}
