package widgets

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// Validation message texts. %s is replaced by the field title when shown.
const (
	MessageRequired  = "The %s field is required."
	MessageTooLong   = "The %%s field can be at most %d characters long."
	MessageTooShort  = "The %%s field must be at least %d characters long."
	MessageBadFormat = "The %s field is not in the expected format."
)

// Entry is a single line text input. An empty submission leaves Value nil.
type Entry struct {
	ui.Base

	Value       *string
	Required    bool
	MinLength   int
	MaxLength   int
	Pattern     string
	Size        int
	Placeholder string
	ReadOnly    bool
	// AutoComplete=false renders autocomplete="off".
	AutoComplete bool

	inputType string
	pattern   *regexp.Regexp
}

// NewEntry constructs a text entry.
func NewEntry(id string) *Entry {
	e := &Entry{}
	e.init(id, "text")
	e.Bind(e)
	return e
}

func (e *Entry) init(id, inputType string) {
	e.ID = id
	e.RequiresID = true
	e.AutoComplete = true
	e.inputType = inputType
}

func (e *Entry) focusable() {}

// IsRequired reports whether a value must be submitted.
func (e *Entry) IsRequired() bool { return e.Required }

// SetValue assigns the current value.
func (e *Entry) SetValue(value string) { e.Value = &value }

// Text returns the current value or "".
func (e *Entry) Text() string {
	if e.Value == nil {
		return ""
	}
	return *e.Value
}

// Init compiles the pattern.
func (e *Entry) Init() error {
	if err := e.Base.Init(); err != nil {
		return err
	}
	return e.compilePattern()
}

func (e *Entry) compilePattern() error {
	if e.Pattern == "" || e.pattern != nil {
		return nil
	}
	re, err := regexp.Compile(e.Pattern)
	if err != nil {
		return &ui.ConfigurationError{Op: "init", Message: fmt.Sprintf("entry %q pattern", e.ID), Err: err}
	}
	e.pattern = re
	return nil
}

// Process reads the submitted value and validates it.
func (e *Entry) Process(data ui.FormData) error {
	if err := e.Base.Process(data); err != nil {
		return err
	}
	if err := e.compilePattern(); err != nil {
		return err
	}
	e.processText(data)
	return nil
}

// processText stores the trimmed submission and reports whether a non-empty
// value passed the text checks.
func (e *Entry) processText(data ui.FormData) bool {
	raw, _ := data.Value(e.ID)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		e.Value = nil
		if e.Required {
			e.AddMessage(ui.ErrorMessage(MessageRequired))
		}
		return false
	}
	e.Value = &raw

	valid := true
	length := utf8.RuneCountInString(raw)
	if e.MaxLength > 0 && length > e.MaxLength {
		e.AddMessage(ui.ErrorMessage(fmt.Sprintf(MessageTooLong, e.MaxLength)))
		valid = false
	}
	if e.MinLength > 0 && length < e.MinLength {
		e.AddMessage(ui.ErrorMessage(fmt.Sprintf(MessageTooShort, e.MinLength)))
		valid = false
	}
	if e.pattern != nil && !e.pattern.MatchString(raw) {
		e.AddMessage(ui.ErrorMessage(MessageBadFormat))
		valid = false
	}
	return valid
}

// State implements ui.Stateful.
func (e *Entry) State() any {
	if e.Value == nil {
		return nil
	}
	return *e.Value
}

// SetState implements ui.Stateful.
func (e *Entry) SetState(state any) error {
	switch v := state.(type) {
	case nil:
		e.Value = nil
	case string:
		e.SetValue(v)
	default:
		return fmt.Errorf("widgets: entry %q: unsupported state %T", e.ID, state)
	}
	return nil
}

// Display writes the input element.
func (e *Entry) Display(rc *ui.RenderContext) error {
	if !e.IsVisible() {
		return nil
	}
	if err := e.Base.Display(rc); err != nil {
		return err
	}
	return e.inputTag(e.Text()).Display(rc.Writer)
}

func (e *Entry) inputTag(value string) *htmltag.Tag {
	input := htmltag.New("input").
		Set("type", e.inputType).
		Set("name", e.ID).
		SetID(e.ID)
	if value != "" {
		input.Set("value", value)
	}
	if e.Size > 0 {
		input.Set("size", e.Size)
	}
	if e.MaxLength > 0 {
		input.Set("maxlength", e.MaxLength)
	}
	if e.Placeholder != "" {
		input.Set("placeholder", e.Placeholder)
	}
	input.Set("readonly", e.ReadOnly)
	input.Set("required", e.Required)
	if !e.AutoComplete {
		input.Set("autocomplete", "off")
	}
	input.AddClass("formkit-entry")
	input.AddClass(e.ClassNames()...)
	return input
}

func (e *Entry) copyEntry(idSuffix string) Entry {
	clone := *e
	clone.Base = e.CopyBase(idSuffix)
	if e.Value != nil {
		value := *e.Value
		clone.Value = &value
	}
	return clone
}

// Copy returns a detached copy.
func (e *Entry) Copy(idSuffix string) ui.Object {
	clone := e.copyEntry(idSuffix)
	clone.Bind(&clone)
	return &clone
}

// PasswordEntry is an Entry whose value is never written back to the page.
type PasswordEntry struct {
	Entry
}

// NewPasswordEntry constructs a password entry.
func NewPasswordEntry(id string) *PasswordEntry {
	e := &PasswordEntry{}
	e.init(id, "password")
	e.AutoComplete = false
	e.Bind(e)
	return e
}

// Display writes the input without its value.
func (e *PasswordEntry) Display(rc *ui.RenderContext) error {
	if !e.IsVisible() {
		return nil
	}
	if err := e.Base.Display(rc); err != nil {
		return err
	}
	input := e.inputTag("")
	input.AddClass("formkit-password-entry")
	return input.Display(rc.Writer)
}

// Copy returns a detached copy.
func (e *PasswordEntry) Copy(idSuffix string) ui.Object {
	clone := &PasswordEntry{Entry: e.copyEntry(idSuffix)}
	clone.Bind(clone)
	return clone
}
