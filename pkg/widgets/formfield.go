package widgets

import (
	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// FormField wraps input widgets with a label, their validation messages and
// notes. Messages of the wrapped widgets are displayed here with %s replaced
// by the field title.
type FormField struct {
	ui.ContainerBase

	TitleText string
	// Notes are rendered after the messages.
	Notes []*ui.Message
	// ShowRequired marks the label with a required marker.
	ShowRequired bool
}

// NewFormField constructs a form field around children.
func NewFormField(id, title string, children ...ui.Widget) *FormField {
	f := &FormField{TitleText: title}
	f.ID = id
	f.Bind(f)
	f.MustAdd(children...)
	return f
}

// Title implements ui.Titleable.
func (f *FormField) Title() string { return f.TitleText }

// AddNote appends a note rendered below the field.
func (f *FormField) AddNote(text string) {
	f.Notes = append(f.Notes, ui.NewMessage(text, ui.SeverityInfo))
}

// FieldMessages returns the messages of the field and its descendants with
// the title substituted.
func (f *FormField) FieldMessages() []*ui.Message {
	messages := ui.CollectMessages(f)
	out := make([]*ui.Message, 0, len(messages))
	for _, msg := range messages {
		out = append(out, msg.WithTitle(f.TitleText))
	}
	return out
}

// Display writes the header, the children, the messages and the notes in
// that order.
func (f *FormField) Display(rc *ui.RenderContext) error {
	if !f.IsVisible() {
		return nil
	}
	if err := f.Base.Display(rc); err != nil {
		return err
	}

	messages := ui.CollectMessages(f)
	div := htmltag.New("div").SetID(f.ID)
	div.AddClass("formkit-form-field")
	if len(messages) > 0 {
		div.AddClass("formkit-form-field-with-messages")
	}
	if f.ShowRequired || f.hasRequiredChild() {
		div.AddClass("formkit-required")
	}
	div.AddClass(f.ClassNames()...)
	if err := div.Open(rc.Writer); err != nil {
		return err
	}

	if err := f.displayHeader(rc); err != nil {
		return err
	}
	if err := rc.WriteString(`<div class="formkit-form-field-contents">`); err != nil {
		return err
	}
	if err := f.DisplayChildren(rc); err != nil {
		return err
	}
	if err := rc.WriteString("</div>"); err != nil {
		return err
	}
	if err := f.displayMessages(rc, messages); err != nil {
		return err
	}
	if err := f.displayNotes(rc); err != nil {
		return err
	}
	return div.Close(rc.Writer)
}

func (f *FormField) displayHeader(rc *ui.RenderContext) error {
	if f.TitleText == "" {
		return nil
	}
	label := htmltag.New("label")
	if id := firstInputID(f); id != "" {
		label.Set("for", id)
	}
	if err := label.Open(rc.Writer); err != nil {
		return err
	}
	if err := rc.WriteString(escape(rc.T(f.TitleText, f.TitleText))); err != nil {
		return err
	}
	if f.ShowRequired || f.hasRequiredChild() {
		marker := htmltag.New("span").SetContent("*")
		marker.AddClass("formkit-required-marker")
		if err := marker.Display(rc.Writer); err != nil {
			return err
		}
	}
	return label.Close(rc.Writer)
}

func (f *FormField) displayMessages(rc *ui.RenderContext, messages []*ui.Message) error {
	if len(messages) == 0 {
		return nil
	}
	title := rc.T(f.TitleText, f.TitleText)
	if err := rc.WriteString(`<div class="formkit-form-field-messages">`); err != nil {
		return err
	}
	for _, msg := range messages {
		if err := writeMessage(rc, translated(rc, msg).WithTitle(title)); err != nil {
			return err
		}
	}
	return rc.WriteString("</div>")
}

func (f *FormField) displayNotes(rc *ui.RenderContext) error {
	for _, note := range f.Notes {
		div := htmltag.New("div").SetContent(rc.T(note.Primary, note.Primary), note.ContentType)
		div.AddClass("formkit-note")
		if err := div.Display(rc.Writer); err != nil {
			return err
		}
	}
	return nil
}

func (f *FormField) hasRequiredChild() bool {
	for _, o := range ui.Descendants(f) {
		if r, ok := o.(requirable); ok && r.IsRequired() {
			return true
		}
	}
	return false
}

// requirable is implemented by inputs with a required flag.
type requirable interface {
	IsRequired() bool
}

// Copy deep-copies the field and its children.
func (f *FormField) Copy(idSuffix string) ui.Object {
	clone := &FormField{
		ContainerBase: f.CopyContainer(idSuffix),
		TitleText:     f.TitleText,
		ShowRequired:  f.ShowRequired,
	}
	for _, note := range f.Notes {
		clone.Notes = append(clone.Notes, note.Clone())
	}
	clone.Bind(clone)
	return clone
}
