package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// Numeric validation messages.
const (
	MessageNotNumber  = "The %s field must be a number."
	MessageNotInteger = "The %s field must be an integer."
	MessageTooSmall   = "The %%s field must not be less than %s."
	MessageTooLarge   = "The %%s field must not be more than %s."
)

// NumericEntry accepts a locale formatted number. Submissions are parsed with
// the separators of Locale; the value is redisplayed in the render locale.
type NumericEntry struct {
	Entry

	Number  *float64
	Minimum *float64
	Maximum *float64
	// Locale used to parse submissions; empty means English conventions.
	Locale string
	// ShowThousandsSeparator groups digits when the value is redisplayed.
	ShowThousandsSeparator bool

	integer bool
}

// NewNumericEntry constructs a numeric entry.
func NewNumericEntry(id string) *NumericEntry {
	e := &NumericEntry{ShowThousandsSeparator: true}
	e.init(id, "text")
	e.Bind(e)
	return e
}

// SetNumber assigns the current value.
func (e *NumericEntry) SetNumber(value float64) { e.Number = &value }

// Process parses and range checks the submission.
func (e *NumericEntry) Process(data ui.FormData) error {
	if err := e.Base.Process(data); err != nil {
		return err
	}
	if err := e.compilePattern(); err != nil {
		return err
	}
	e.Number = nil
	if !e.processText(data) {
		return nil
	}

	formatter := i18n.NewNumberFormatter(e.Locale)
	value, err := formatter.Parse(*e.Value)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		e.AddMessage(ui.ErrorMessage(MessageNotNumber))
		return nil
	}
	if e.integer && value != math.Trunc(value) {
		e.AddMessage(ui.ErrorMessage(MessageNotInteger))
		return nil
	}
	if e.Minimum != nil && value < *e.Minimum {
		e.AddMessage(ui.ErrorMessage(fmt.Sprintf(MessageTooSmall, e.formatBound(formatter, *e.Minimum))))
		return nil
	}
	if e.Maximum != nil && value > *e.Maximum {
		e.AddMessage(ui.ErrorMessage(fmt.Sprintf(MessageTooLarge, e.formatBound(formatter, *e.Maximum))))
		return nil
	}
	e.Number = &value
	return nil
}

func (e *NumericEntry) formatBound(formatter *i18n.NumberFormatter, bound float64) string {
	if bound == math.Trunc(bound) {
		return formatter.FormatInt(int64(bound))
	}
	return formatter.FormatFloat(bound, -1)
}

// DisplayValue formats the current number for rc's locale. Invalid
// submissions are shown as typed.
func (e *NumericEntry) DisplayValue(rc *ui.RenderContext) string {
	if e.Number == nil || e.HasOwnMessage() {
		return e.Text()
	}
	formatter := rc.NumberFormatter()
	value := *e.Number
	var text string
	if value == math.Trunc(value) {
		text = formatter.FormatInt(int64(value))
	} else {
		text = formatter.FormatFloat(value, -1)
	}
	if !e.ShowThousandsSeparator {
		text = stripGrouping(formatter, text)
	}
	return text
}

func stripGrouping(formatter *i18n.NumberFormatter, text string) string {
	if group := formatter.GroupSeparator(); group != "" {
		text = strings.ReplaceAll(text, group, "")
	}
	return text
}

// State implements ui.Stateful.
func (e *NumericEntry) State() any {
	if e.Number == nil {
		return nil
	}
	return *e.Number
}

// SetState implements ui.Stateful.
func (e *NumericEntry) SetState(state any) error {
	switch v := state.(type) {
	case nil:
		e.Number = nil
	case float64:
		e.SetNumber(v)
	case int:
		e.SetNumber(float64(v))
	case int64:
		e.SetNumber(float64(v))
	default:
		return fmt.Errorf("widgets: numeric entry %q: unsupported state %T", e.ID, state)
	}
	return nil
}

// Display writes the input with the localized value.
func (e *NumericEntry) Display(rc *ui.RenderContext) error {
	if !e.IsVisible() {
		return nil
	}
	if err := e.Base.Display(rc); err != nil {
		return err
	}
	input := e.inputTag(e.DisplayValue(rc)).Set("inputmode", "decimal")
	input.AddClass("formkit-numeric-entry")
	if e.integer {
		input.Set("inputmode", "numeric")
		input.AddClass("formkit-integer-entry")
	}
	return input.Display(rc.Writer)
}

func (e *NumericEntry) copyNumeric(idSuffix string) NumericEntry {
	clone := *e
	clone.Entry = e.copyEntry(idSuffix)
	clone.Number = copyFloat(e.Number)
	clone.Minimum = copyFloat(e.Minimum)
	clone.Maximum = copyFloat(e.Maximum)
	return clone
}

// Copy returns a detached copy.
func (e *NumericEntry) Copy(idSuffix string) ui.Object {
	clone := e.copyNumeric(idSuffix)
	clone.Bind(&clone)
	return &clone
}

// IntegerEntry is a NumericEntry rejecting fractional values.
type IntegerEntry struct {
	NumericEntry
}

// NewIntegerEntry constructs an integer entry.
func NewIntegerEntry(id string) *IntegerEntry {
	e := &IntegerEntry{}
	e.ShowThousandsSeparator = true
	e.integer = true
	e.init(id, "text")
	e.Bind(e)
	return e
}

// Int returns the current value.
func (e *IntegerEntry) Int() (int64, bool) {
	if e.Number == nil {
		return 0, false
	}
	return int64(*e.Number), true
}

// State implements ui.Stateful.
func (e *IntegerEntry) State() any {
	if value, ok := e.Int(); ok {
		return value
	}
	return nil
}

// Copy returns a detached copy.
func (e *IntegerEntry) Copy(idSuffix string) ui.Object {
	clone := &IntegerEntry{NumericEntry: e.copyNumeric(idSuffix)}
	clone.Bind(clone)
	return clone
}

func copyFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
