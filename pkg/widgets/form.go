package widgets

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// ProcessFieldPrefix prefixes the hidden input a Form uses to recognise its
// own submissions.
const ProcessFieldPrefix = "_formkit_process_"

// ProcessFieldName returns the name of the hidden input marking a submission
// of the form with the given id.
func ProcessFieldName(formID string) string {
	return ProcessFieldPrefix + formID
}

// Form is the root container of an editable tree. Children are processed only
// when the submitted data carries the form's process field, so several forms
// can share a page.
type Form struct {
	ui.ContainerBase

	Action   string
	Method   string
	Encoding string
	// Autocomplete=false renders autocomplete="off".
	Autocomplete bool

	hidden    map[string]string
	submitted bool
}

// NewForm constructs a form. Forms require an id.
func NewForm(id string, children ...ui.Widget) *Form {
	f := &Form{Method: "post", Autocomplete: true}
	f.ID = id
	f.RequiresID = true
	f.Bind(f)
	f.MustAdd(children...)
	return f
}

// ValidateChild rejects nested forms.
func (f *Form) ValidateChild(child ui.Widget) error {
	for o := range ui.All(child) {
		if _, ok := o.(*Form); ok {
			return ui.Configurationf("add", "form %q cannot contain form %q", f.ID, o.Object().ID)
		}
	}
	return nil
}

// AddHiddenValue adds a hidden input rendered with the form.
func (f *Form) AddHiddenValue(name string, value any) {
	f.AddHiddenValues(Hidden(name, value))
}

// AddHiddenValues adds several hidden inputs; later names win.
func (f *Form) AddHiddenValues(values ...HiddenValue) {
	f.hidden = MergeHiddenValues(f.hidden, values...)
}

// HiddenValues returns the hidden inputs sorted by name, excluding the
// process field.
func (f *Form) HiddenValues() []HiddenValue {
	return SortedHiddenValues(f.hidden)
}

// Process processes the children when data is a submission of this form.
func (f *Form) Process(data ui.FormData) error {
	f.submitted = data != nil && data.Submitted() && data.Has(ProcessFieldName(f.ID))
	if !f.submitted {
		if !f.IsInitialized() {
			return f.Init()
		}
		return nil
	}
	return f.ContainerBase.Process(data)
}

// IsSubmitted reports whether the last processed data was a submission of
// this form.
func (f *Form) IsSubmitted() bool { return f.submitted }

// IsValid reports whether the form was submitted without error messages.
func (f *Form) IsValid() bool {
	return f.submitted && !ui.HasErrors(f)
}

// ClickedButton returns the button used to submit the form, if any.
func (f *Form) ClickedButton() (*Button, bool) {
	for _, button := range ui.DescendantsOf[*Button](f) {
		if button.Clicked() {
			return button, true
		}
	}
	return nil, false
}

// Display writes the form element, its children and the hidden inputs.
func (f *Form) Display(rc *ui.RenderContext) error {
	if !f.IsVisible() {
		return nil
	}
	if err := f.Base.Display(rc); err != nil {
		return err
	}
	if err := displayThemeVars(rc); err != nil {
		return err
	}

	form := htmltag.New("form").
		SetID(f.ID).
		Set("method", strings.ToLower(strings.TrimSpace(f.Method))).
		Set("action", f.Action).
		Set("accept-charset", "utf-8")
	if f.Encoding != "" {
		form.Set("enctype", f.Encoding)
	}
	if !f.Autocomplete {
		form.Set("autocomplete", "off")
	}
	if rc.Theme != nil {
		if rc.Theme.Theme != "" {
			form.Set("data-theme", rc.Theme.Theme)
		}
		if rc.Theme.Variant != "" {
			form.Set("data-theme-variant", rc.Theme.Variant)
		}
	}
	form.AddClass("formkit-form")
	form.AddClass(f.ClassNames()...)
	if err := form.Open(rc.Writer); err != nil {
		return err
	}
	if err := f.DisplayChildren(rc); err != nil {
		return err
	}
	if err := f.displayHiddenValues(rc); err != nil {
		return err
	}
	return form.Close(rc.Writer)
}

func (f *Form) displayHiddenValues(rc *ui.RenderContext) error {
	values := append(f.HiddenValues(), HiddenValue{Name: ProcessFieldName(f.ID), Value: f.ID})
	if err := rc.WriteString(`<div class="formkit-hidden-fields">`); err != nil {
		return err
	}
	for _, value := range values {
		input := htmltag.New("input").
			Set("type", "hidden").
			Set("name", value.Name).
			Set("value", value.Value)
		if err := input.Display(rc.Writer); err != nil {
			return err
		}
	}
	return rc.WriteString("</div>")
}

// Copy deep-copies the form and its children.
func (f *Form) Copy(idSuffix string) ui.Object {
	clone := &Form{
		ContainerBase: f.CopyContainer(idSuffix),
		Action:        f.Action,
		Method:        f.Method,
		Encoding:      f.Encoding,
		Autocomplete:  f.Autocomplete,
		hidden:        MergeHiddenValues(f.hidden),
	}
	clone.Bind(clone)
	return clone
}

// displayThemeVars emits the theme's CSS variables once per render pass.
func displayThemeVars(rc *ui.RenderContext) error {
	if rc.Theme == nil || len(rc.Theme.CSSVars) == 0 || !rc.Once("formkit-theme-vars") {
		return nil
	}
	keys := make([]string, 0, len(rc.Theme.CSSVars))
	for key := range rc.Theme.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(rc.Theme.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	style := htmltag.New("style").SetContent(b.String(), htmltag.ContentTypeXML)
	return style.Display(rc.Writer)
}
