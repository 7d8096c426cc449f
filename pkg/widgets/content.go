package widgets

import (
	"fmt"
	"html"

	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// ContentBlock writes a block of text or markup without wrapping element.
type ContentBlock struct {
	ui.Base

	Content     string
	ContentType string
	// Sanitize filters XML content through the markup policy.
	Sanitize bool
}

// NewContentBlock constructs a plain text content block.
func NewContentBlock(id, content string) *ContentBlock {
	c := &ContentBlock{Content: content, ContentType: ui.ContentTypeText}
	c.ID = id
	c.Bind(c)
	return c
}

// Display writes the content.
func (c *ContentBlock) Display(rc *ui.RenderContext) error {
	if !c.IsVisible() {
		return nil
	}
	if err := c.Base.Display(rc); err != nil {
		return err
	}
	if c.ContentType != ui.ContentTypeXML {
		return rc.WriteString(html.EscapeString(c.Content))
	}
	if c.Sanitize {
		return rc.WriteString(htmltag.Sanitize(c.Content))
	}
	return rc.WriteString(c.Content)
}

// Copy returns a detached copy.
func (c *ContentBlock) Copy(idSuffix string) ui.Object {
	clone := &ContentBlock{Base: c.CopyBase(idSuffix), Content: c.Content, ContentType: c.ContentType, Sanitize: c.Sanitize}
	clone.Bind(clone)
	return clone
}

// TemplateBlock renders a named template, or an inline template source,
// against Data.
type TemplateBlock struct {
	ui.Base

	// Template is a template name or inline template source.
	Template string
	Data     any
	Engine   template.TemplateRenderer
}

// NewTemplateBlock constructs a template block.
func NewTemplateBlock(id, tmpl string, engine template.TemplateRenderer) *TemplateBlock {
	t := &TemplateBlock{Template: tmpl, Engine: engine}
	t.ID = id
	t.Bind(t)
	return t
}

// Init creates an inline-only engine when none was supplied.
func (t *TemplateBlock) Init() error {
	if err := t.Base.Init(); err != nil {
		return err
	}
	if t.Engine != nil {
		return nil
	}
	engine, err := gotemplate.New(gotemplate.WithString())
	if err != nil {
		return fmt.Errorf("widgets: template engine: %w", err)
	}
	t.Engine = engine
	return nil
}

// Display renders the template.
func (t *TemplateBlock) Display(rc *ui.RenderContext) error {
	if !t.IsVisible() {
		return nil
	}
	if err := t.Base.Display(rc); err != nil {
		return err
	}
	if t.Engine == nil {
		if err := t.Init(); err != nil {
			return err
		}
	}
	if _, err := t.Engine.Render(t.Template, t.Data, rc.Writer); err != nil {
		return fmt.Errorf("widgets: template block %q: %w", t.ID, err)
	}
	return nil
}

// Copy returns a detached copy sharing the engine.
func (t *TemplateBlock) Copy(idSuffix string) ui.Object {
	clone := &TemplateBlock{Base: t.CopyBase(idSuffix), Template: t.Template, Data: t.Data, Engine: t.Engine}
	clone.Bind(clone)
	return clone
}

// MessageDisplay shows queued user notices such as "Record saved". These are
// distinct from the validation messages attached to inputs.
type MessageDisplay struct {
	ui.Base

	queue []*ui.Message
}

// NewMessageDisplay constructs an empty message display.
func NewMessageDisplay(id string) *MessageDisplay {
	m := &MessageDisplay{}
	m.ID = id
	m.Bind(m)
	return m
}

// Add queues a message for display.
func (m *MessageDisplay) Add(msg *ui.Message) {
	if msg != nil {
		m.queue = append(m.queue, msg)
	}
}

// AddText queues a plain message with severity.
func (m *MessageDisplay) AddText(primary string, severity ui.Severity) {
	m.Add(ui.NewMessage(primary, severity))
}

// Queued returns the queued messages.
func (m *MessageDisplay) Queued() []*ui.Message {
	return append([]*ui.Message(nil), m.queue...)
}

// Display writes the queued messages. Nothing is written when empty.
func (m *MessageDisplay) Display(rc *ui.RenderContext) error {
	if !m.IsVisible() {
		return nil
	}
	if err := m.Base.Display(rc); err != nil {
		return err
	}
	if len(m.queue) == 0 {
		return nil
	}
	div := htmltag.New("div").SetID(m.ID)
	div.AddClass("formkit-message-display")
	div.AddClass(m.ClassNames()...)
	if err := div.Open(rc.Writer); err != nil {
		return err
	}
	for _, msg := range m.queue {
		if err := writeMessage(rc, translated(rc, msg)); err != nil {
			return err
		}
	}
	return div.Close(rc.Writer)
}

// Copy returns a detached copy.
func (m *MessageDisplay) Copy(idSuffix string) ui.Object {
	clone := &MessageDisplay{Base: m.CopyBase(idSuffix)}
	for _, msg := range m.queue {
		clone.queue = append(clone.queue, msg.Clone())
	}
	clone.Bind(clone)
	return clone
}

// HiddenField is a hidden input round-tripping a string value.
type HiddenField struct {
	ui.Base

	Value string
}

// NewHiddenField constructs a hidden field.
func NewHiddenField(id, value string) *HiddenField {
	h := &HiddenField{Value: value}
	h.ID = id
	h.RequiresID = true
	h.Bind(h)
	return h
}

// Process reads the submitted value when present.
func (h *HiddenField) Process(data ui.FormData) error {
	if err := h.Base.Process(data); err != nil {
		return err
	}
	if value, ok := data.Value(h.ID); ok {
		h.Value = value
	}
	return nil
}

// State implements ui.Stateful.
func (h *HiddenField) State() any { return h.Value }

// SetState implements ui.Stateful.
func (h *HiddenField) SetState(state any) error {
	value, ok := state.(string)
	if !ok {
		return fmt.Errorf("widgets: hidden field %q: unsupported state %T", h.ID, state)
	}
	h.Value = value
	return nil
}

// Display writes the hidden input.
func (h *HiddenField) Display(rc *ui.RenderContext) error {
	if !h.IsVisible() {
		return nil
	}
	if err := h.Base.Display(rc); err != nil {
		return err
	}
	return htmltag.New("input").
		Set("type", "hidden").
		Set("name", h.ID).
		SetID(h.ID).
		Set("value", h.Value).
		Display(rc.Writer)
}

// Copy returns a detached copy.
func (h *HiddenField) Copy(idSuffix string) ui.Object {
	clone := &HiddenField{Base: h.CopyBase(idSuffix), Value: h.Value}
	clone.Bind(clone)
	return clone
}
