// Package prompt fills a widget tree from an interactive terminal session.
// Answers are turned into the same FormData a browser submission produces,
// so the normal processing and validation run unchanged.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/option"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const defaultBlankTitle = "(none)"

type choice struct {
	title string
	value string
}

// Collect asks one question per visible input widget of form, in tree
// order, and returns the answers as a submission of form.
func Collect(ctx context.Context, form *widgets.Form, driver Driver) (*ui.MapFormData, error) {
	if form == nil {
		return nil, ui.Configurationf("prompt", "form is nil")
	}
	if driver == nil {
		return nil, ui.Configurationf("prompt", "driver is nil")
	}
	data := ui.NewFormData(nil, true)
	data.Set(widgets.ProcessFieldName(form.ID), form.ID)

	var buttons []*widgets.Button
	var askErr error
	ui.Walk(form, func(o ui.Object) bool {
		if askErr != nil || !o.Object().IsVisible() {
			return false
		}
		if button, ok := o.(*widgets.Button); ok {
			buttons = append(buttons, button)
			return false
		}
		descend, err := ask(ctx, driver, data, o)
		if err != nil {
			askErr = fmt.Errorf("prompt: %s: %w", o.Object().ID, err)
			return false
		}
		return descend
	})
	if askErr != nil {
		return nil, askErr
	}

	if err := chooseButton(ctx, driver, data, buttons); err != nil {
		return nil, err
	}
	return data, nil
}

// Run collects answers, processes form with them and reports validation
// messages through the driver. It returns whether the form is valid.
func Run(ctx context.Context, form *widgets.Form, driver Driver) (bool, error) {
	if err := ui.InitTree(form); err != nil {
		return false, err
	}
	data, err := Collect(ctx, form, driver)
	if err != nil {
		return false, err
	}
	if err := ui.ProcessTree(form, data); err != nil {
		return false, err
	}
	for _, line := range Messages(form) {
		if err := driver.Info(ctx, line); err != nil {
			return false, err
		}
	}
	return form.IsValid(), nil
}

// Messages returns the validation messages of form as plain lines, with
// field titles substituted.
func Messages(form *widgets.Form) []string {
	var lines []string
	seen := make(map[*ui.Message]struct{})
	for _, field := range ui.DescendantsOf[*widgets.FormField](form) {
		for _, msg := range ui.CollectMessages(field) {
			seen[msg] = struct{}{}
		}
		for _, msg := range field.FieldMessages() {
			lines = append(lines, msg.Primary)
		}
	}
	for _, msg := range ui.CollectMessages(form) {
		if _, ok := seen[msg]; ok {
			continue
		}
		lines = append(lines, msg.WithTitle(defaultTitle(form)).Primary)
	}
	return lines
}

func ask(ctx context.Context, driver Driver, data *ui.MapFormData, o ui.Object) (bool, error) {
	title := titleOf(o)
	help := helpOf(o)

	switch w := o.(type) {
	case *widgets.PasswordEntry:
		answer, err := driver.Password(ctx, InputConfig{Message: title, Help: help, Validator: requiredText(w.Required)})
		if err != nil {
			return false, err
		}
		data.Set(w.ID, answer)
	case *widgets.IntegerEntry:
		formatter := i18n.NewNumberFormatter(w.Locale)
		answer, err := driver.Input(ctx, InputConfig{
			Message: title, Help: help, Default: w.Text(),
			Validator: numberText(w.Required, func(raw string) error {
				_, err := formatter.ParseInt(raw)
				return err
			}),
		})
		if err != nil {
			return false, err
		}
		data.Set(w.ID, answer)
	case *widgets.NumericEntry:
		formatter := i18n.NewNumberFormatter(w.Locale)
		answer, err := driver.Input(ctx, InputConfig{
			Message: title, Help: help, Default: w.Text(),
			Validator: numberText(w.Required, func(raw string) error {
				_, err := formatter.Parse(raw)
				return err
			}),
		})
		if err != nil {
			return false, err
		}
		data.Set(w.ID, answer)
	case *widgets.Entry:
		answer, err := driver.Input(ctx, InputConfig{Message: title, Help: help, Default: w.Text(), Validator: requiredText(w.Required)})
		if err != nil {
			return false, err
		}
		data.Set(w.ID, answer)
	case *widgets.Checkbox:
		if _, inList := ui.AncestorOf[*widgets.CheckboxList](w); inList {
			return false, nil
		}
		checked, err := driver.Confirm(ctx, ConfirmConfig{Message: title, Help: help, Default: w.Value})
		if err != nil {
			return false, err
		}
		if checked {
			data.Set(w.ID, "on")
		}
	case *widgets.Flydown:
		choices := optionChoices(&w.Control)
		if w.ShowBlank && !w.Required {
			blank := w.BlankTitle
			if blank == "" {
				blank = defaultBlankTitle
			}
			choices = append([]choice{{title: blank}}, choices...)
		}
		return false, selectOne(ctx, driver, data, w.ID, title, help, choices, option.ValueString(w.Value), w.Value != nil)
	case *widgets.RadioList:
		return false, selectOne(ctx, driver, data, w.ID, title, help, optionChoices(&w.Control), option.ValueString(w.Value), w.Value != nil)
	case *widgets.TreeFlydown:
		choices := treeChoices(w.Tree)
		if w.ShowBlank && !w.Required {
			choices = append([]choice{{title: defaultBlankTitle}}, choices...)
		}
		return false, selectOne(ctx, driver, data, w.ID, title, help, choices, w.Path, w.Path != "")
	case *widgets.CheckboxList:
		return false, selectMany(ctx, driver, data, w.ID, title, help, optionChoices(&w.Control), func(v string) bool { return w.IsChecked(v) })
	case *widgets.CheckboxTree:
		return false, selectMany(ctx, driver, data, w.ID, title, help, treeChoices(w.Tree), w.IsChecked)
	case *widgets.HiddenField:
		data.Set(w.ID, w.Value)
	}
	return true, nil
}

func selectMany(ctx context.Context, driver Driver, data *ui.MapFormData, id, title, help string, choices []choice, checked func(string) bool) error {
	cfg := SelectConfig{Message: title, Help: help, Options: titles(choices)}
	for idx, c := range choices {
		if checked(c.value) {
			cfg.Defaults = append(cfg.Defaults, idx)
		}
	}
	picked, err := driver.MultiSelect(ctx, cfg)
	if err != nil {
		return err
	}
	var values []string
	for _, idx := range picked {
		if idx < 0 || idx >= len(choices) {
			return ErrNoChoice
		}
		values = append(values, choices[idx].value)
	}
	if len(values) > 0 {
		data.Set(id, values...)
	}
	return nil
}

func selectOne(ctx context.Context, driver Driver, data *ui.MapFormData, id, title, help string, choices []choice, current string, hasCurrent bool) error {
	if len(choices) == 0 {
		return nil
	}
	cfg := SelectConfig{Message: title, Help: help, Options: titles(choices)}
	if hasCurrent {
		for idx, c := range choices {
			if c.value == current {
				cfg.DefaultIndex = idx
				break
			}
		}
	}
	idx, err := driver.Select(ctx, cfg)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(choices) {
		return ErrNoChoice
	}
	if value := choices[idx].value; value != "" {
		data.Set(id, value)
	}
	return nil
}

func chooseButton(ctx context.Context, driver Driver, data *ui.MapFormData, buttons []*widgets.Button) error {
	switch len(buttons) {
	case 0:
		return nil
	case 1:
		data.Set(buttons[0].ID, buttons[0].TitleText)
		return nil
	}
	options := make([]string, len(buttons))
	for idx, button := range buttons {
		options[idx] = button.TitleText
		if options[idx] == "" {
			options[idx] = button.ID
		}
	}
	idx, err := driver.Select(ctx, SelectConfig{Message: "Action", Options: options})
	if err != nil {
		return fmt.Errorf("prompt: action: %w", err)
	}
	if idx < 0 || idx >= len(buttons) {
		return ErrNoChoice
	}
	data.Set(buttons[idx].ID, options[idx])
	return nil
}

func optionChoices(control *option.Control) []choice {
	var out []choice
	for _, opt := range control.Options() {
		if !opt.Selectable() {
			continue
		}
		out = append(out, choice{title: opt.Title, value: opt.ValueString()})
	}
	return out
}

func treeChoices(root *option.TreeNode) []choice {
	if root == nil {
		return nil
	}
	var out []choice
	for node := range root.All() {
		if node.Parent() == nil || !node.Value.Selectable() {
			continue
		}
		indent := strings.Repeat("  ", node.Depth()-1)
		out = append(out, choice{title: indent + node.Value.Title, value: node.PathString()})
	}
	return out
}

func titles(choices []choice) []string {
	out := make([]string, len(choices))
	for idx, c := range choices {
		out[idx] = c.title
	}
	return out
}

func titleOf(o ui.Object) string {
	if t, ok := o.(ui.Titleable); ok && t.Title() != "" {
		return t.Title()
	}
	if field, ok := ui.AncestorOf[*widgets.FormField](o); ok && field.TitleText != "" {
		return field.TitleText
	}
	return o.Object().ID
}

func helpOf(o ui.Object) string {
	field, ok := ui.AncestorOf[*widgets.FormField](o)
	if !ok {
		return ""
	}
	var notes []string
	for _, note := range field.Notes {
		notes = append(notes, note.Primary)
	}
	return strings.Join(notes, " ")
}

func defaultTitle(form *widgets.Form) string {
	return form.ID
}

func requiredText(required bool) func(string) error {
	if !required {
		return nil
	}
	return func(raw string) error {
		if strings.TrimSpace(raw) == "" {
			return errors.New("a value is required")
		}
		return nil
	}
}

func numberText(required bool, parse func(string) error) func(string) error {
	return func(raw string) error {
		if strings.TrimSpace(raw) == "" {
			if required {
				return errors.New("a value is required")
			}
			return nil
		}
		if err := parse(raw); err != nil {
			return errors.New("not a valid number")
		}
		return nil
	}
}
