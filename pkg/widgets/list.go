package widgets

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/option"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// CheckboxList is a multiple choice list. Option values must be unique.
type CheckboxList struct {
	ui.Base
	option.Control

	// Values holds the values of the checked options in option order.
	Values   []any
	Required bool
	// ShowCheckAll adds a composite "check all" checkbox below the list.
	ShowCheckAll bool
}

// NewCheckboxList constructs a checkbox list.
func NewCheckboxList(id string) *CheckboxList {
	l := &CheckboxList{}
	l.ID = id
	l.RequiresID = true
	l.Bind(l)
	return l
}

// IsRequired reports whether at least one option must be checked.
func (l *CheckboxList) IsRequired() bool { return l.Required }

// CreateCompositeWidgets adds the check-all checkbox when enabled.
func (l *CheckboxList) CreateCompositeWidgets() error {
	if !l.ShowCheckAll {
		return nil
	}
	checkAll := NewCheckbox(l.ID + "_check_all")
	checkAll.TitleText = "Check All"
	checkAll.AddClass("formkit-check-all")
	return l.AddCompositeWidget("check_all", checkAll)
}

// Init rejects option sets with duplicate values.
func (l *CheckboxList) Init() error {
	if err := l.ValidateUniqueValues(); err != nil {
		return err
	}
	return l.Base.Init()
}

// Process collects the checked options.
func (l *CheckboxList) Process(data ui.FormData) error {
	if err := l.Base.Process(data); err != nil {
		return err
	}
	submitted := make(map[string]struct{})
	for _, value := range data.Values(l.ID) {
		submitted[value] = struct{}{}
	}
	l.Values = nil
	for _, opt := range l.Options() {
		if !opt.Selectable() {
			continue
		}
		if _, ok := submitted[opt.ValueString()]; ok {
			l.Values = append(l.Values, opt.Value)
		}
	}
	if l.Required && len(l.Values) == 0 {
		l.AddMessage(ui.ErrorMessage(MessageRequired))
	}
	return nil
}

// IsChecked reports whether value is among the checked values.
func (l *CheckboxList) IsChecked(value any) bool {
	key := option.ValueString(value)
	for _, checked := range l.Values {
		if option.ValueString(checked) == key {
			return true
		}
	}
	return false
}

// State implements ui.Stateful.
func (l *CheckboxList) State() any {
	out := make([]string, 0, len(l.Values))
	for _, value := range l.Values {
		out = append(out, option.ValueString(value))
	}
	return out
}

// SetState implements ui.Stateful.
func (l *CheckboxList) SetState(state any) error {
	values, err := stringSlice(state)
	if err != nil {
		return fmt.Errorf("widgets: checkbox list %q: %w", l.ID, err)
	}
	l.Values = nil
	for _, value := range values {
		for _, opt := range l.OptionsByValue(value) {
			l.Values = append(l.Values, opt.Value)
		}
	}
	return nil
}

// Display writes the list of checkboxes and the optional check-all box.
func (l *CheckboxList) Display(rc *ui.RenderContext) error {
	if !l.IsVisible() {
		return nil
	}
	if err := l.Base.Display(rc); err != nil {
		return err
	}
	div := htmltag.New("div").SetID(l.ID)
	div.AddClass("formkit-checkbox-list")
	div.AddClass(l.ClassNames()...)
	if err := div.Open(rc.Writer); err != nil {
		return err
	}
	if err := displayChoices(rc, l.ID, "checkbox", l.ID+"[]", &l.Control, l.IsChecked); err != nil {
		return err
	}
	for _, w := range l.CompositeWidgets() {
		if err := w.Display(rc); err != nil {
			return err
		}
	}
	return div.Close(rc.Writer)
}

// Copy returns a detached copy.
func (l *CheckboxList) Copy(idSuffix string) ui.Object {
	clone := &CheckboxList{
		Base:         l.CopyBase(idSuffix),
		Control:      l.CopyControl(),
		Values:       append([]any(nil), l.Values...),
		Required:     l.Required,
		ShowCheckAll: l.ShowCheckAll,
	}
	clone.Bind(clone)
	return clone
}

// RadioList is a single choice list rendered as radio buttons.
type RadioList struct {
	ui.Base
	option.Control

	Value    any
	Required bool
}

// NewRadioList constructs a radio list.
func NewRadioList(id string) *RadioList {
	l := &RadioList{}
	l.ID = id
	l.RequiresID = true
	l.Bind(l)
	return l
}

// IsRequired reports whether a choice must be made.
func (l *RadioList) IsRequired() bool { return l.Required }

// Process resolves the submitted value against the options.
func (l *RadioList) Process(data ui.FormData) error {
	if err := l.Base.Process(data); err != nil {
		return err
	}
	raw, _ := data.Value(l.ID)
	l.Value = nil
	if raw == "" {
		if l.Required {
			l.AddMessage(ui.ErrorMessage(MessageRequired))
		}
		return nil
	}
	options := l.OptionsByValue(raw)
	if len(options) == 0 {
		l.AddMessage(ui.ErrorMessage(MessageInvalidOption))
		return nil
	}
	l.Value = options[0].Value
	return nil
}

// State implements ui.Stateful.
func (l *RadioList) State() any { return l.Value }

// SetState implements ui.Stateful.
func (l *RadioList) SetState(state any) error {
	l.Value = nil
	if state == nil {
		return nil
	}
	if options := l.OptionsByValue(state); len(options) > 0 {
		l.Value = options[0].Value
	}
	return nil
}

// Display writes the radio buttons.
func (l *RadioList) Display(rc *ui.RenderContext) error {
	if !l.IsVisible() {
		return nil
	}
	if err := l.Base.Display(rc); err != nil {
		return err
	}
	div := htmltag.New("div").SetID(l.ID)
	div.AddClass("formkit-radio-list")
	div.AddClass(l.ClassNames()...)
	if err := div.Open(rc.Writer); err != nil {
		return err
	}
	selected := func(value any) bool {
		return l.Value != nil && option.ValueString(value) == option.ValueString(l.Value)
	}
	if err := displayChoices(rc, l.ID, "radio", l.ID, &l.Control, selected); err != nil {
		return err
	}
	return div.Close(rc.Writer)
}

// Copy returns a detached copy.
func (l *RadioList) Copy(idSuffix string) ui.Object {
	clone := &RadioList{
		Base:     l.CopyBase(idSuffix),
		Control:  l.CopyControl(),
		Value:    l.Value,
		Required: l.Required,
	}
	clone.Bind(clone)
	return clone
}

func displayChoices(rc *ui.RenderContext, id, inputType, name string, control *option.Control, checked func(any) bool) error {
	if err := rc.WriteString("<ul>"); err != nil {
		return err
	}
	for idx, h := range control.Handles() {
		opt, _ := control.Option(h)
		li := htmltag.New("li")
		li.AddClass(control.OptionClasses(h)...)
		title := rc.T(opt.Title, opt.Title)
		if !opt.Selectable() {
			li.AddClass("formkit-option-divider")
			if err := li.SetContent(title, opt.ContentType).Display(rc.Writer); err != nil {
				return err
			}
			continue
		}
		inputID := id + "_" + strconv.Itoa(idx)
		if err := li.Open(rc.Writer); err != nil {
			return err
		}
		input := htmltag.New("input").
			Set("type", inputType).
			Set("name", name).
			SetID(inputID).
			Set("value", opt.ValueString()).
			Set("checked", checked(opt.Value))
		if err := input.Display(rc.Writer); err != nil {
			return err
		}
		label := htmltag.New("label").Set("for", inputID).SetContent(title, opt.ContentType)
		if err := label.Display(rc.Writer); err != nil {
			return err
		}
		if err := li.Close(rc.Writer); err != nil {
			return err
		}
	}
	return rc.WriteString("</ul>")
}

func stringSlice(state any) ([]string, error) {
	switch v := state.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, option.ValueString(item))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported state %T", state)
	}
}
