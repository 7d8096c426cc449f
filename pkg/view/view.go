// Package view implements repeating data views and the selection protocol
// letting selector renderers report which row identifiers were chosen.
package view

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/ui"
)

// Base is embedded by views. It owns the data model and one Selection per
// registered selector, keyed by selector id.
type Base struct {
	ui.Base

	// Model holds the rows rendered by the view.
	Model []any

	selectors  []Selector
	selections map[string]*Selection
	registered bool
}

// Init initialises the widget base and registers selectors.
func (v *Base) Init() error {
	if err := v.Base.Init(); err != nil {
		return err
	}
	v.RegisterSelectors()
	return nil
}

// RegisterSelectors finds the selectors belonging to this view, skipping the
// contents of nested views, and creates an empty selection for each one not
// registered yet.
func (v *Base) RegisterSelectors() {
	self := v.Self()
	if self == nil {
		return
	}
	if v.selections == nil {
		v.selections = make(map[string]*Selection)
	}
	ui.Walk(self, func(o ui.Object) bool {
		if ui.Same(o, self) {
			return true
		}
		if _, nested := o.(SelectionOwner); nested {
			return false
		}
		if selector, ok := o.(Selector); ok {
			id := selector.SelectorID()
			if _, exists := v.selections[id]; !exists {
				v.selectors = append(v.selectors, selector)
				v.selections[id] = NewSelection()
			}
		}
		return true
	})
	v.registered = true
}

// Selectors returns the registered selectors in registration order.
func (v *Base) Selectors() []Selector {
	v.ensureRegistered()
	return append([]Selector(nil), v.selectors...)
}

// Selection returns the selection of selector. A nil selector means the
// first registered one; a view without selectors rejects that lookup.
func (v *Base) Selection(selector Selector) (*Selection, error) {
	v.ensureRegistered()
	if selector == nil {
		if len(v.selectors) == 0 {
			return nil, ui.Configurationf("selection", "view %q has no selectors", v.ID)
		}
		return v.selections[v.selectors[0].SelectorID()], nil
	}
	if !v.owns(selector) {
		return nil, ui.Configurationf("selection", "selector %q does not belong to view %q", selector.SelectorID(), v.ID)
	}
	return v.selections[selector.SelectorID()], nil
}

// SelectionByID returns the selection registered under a selector id. An
// empty id behaves like Selection(nil).
func (v *Base) SelectionByID(id string) (*Selection, error) {
	v.ensureRegistered()
	id = strings.TrimSpace(id)
	if id == "" {
		return v.Selection(nil)
	}
	selection, ok := v.selections[id]
	if !ok {
		return nil, ui.Configurationf("selection", "selector %q does not belong to view %q", id, v.ID)
	}
	return selection, nil
}

// SetSelection replaces the selection of selector. A nil selector targets the
// first registered one.
func (v *Base) SetSelection(selection *Selection, selector Selector) error {
	v.ensureRegistered()
	if selection == nil {
		selection = NewSelection()
	}
	if selector == nil {
		if len(v.selectors) == 0 {
			return ui.Configurationf("selection", "view %q has no selectors", v.ID)
		}
		selector = v.selectors[0]
	}
	if !v.owns(selector) {
		return ui.Configurationf("selection", "selector %q does not belong to view %q", selector.SelectorID(), v.ID)
	}
	v.selections[selector.SelectorID()] = selection
	return nil
}

// HasSelection reports whether any selector reported identifiers.
func (v *Base) HasSelection() bool {
	for _, selection := range v.selections {
		if selection.Count() > 0 {
			return true
		}
	}
	return false
}

// Selections returns the current selections keyed by selector id.
func (v *Base) Selections() map[string][]string {
	out := make(map[string][]string, len(v.selections))
	for id, selection := range v.selections {
		out[id] = selection.Items()
	}
	return out
}

// CopyView returns a detached copy of the view state. Selectors are
// re-registered on the copy when it is first queried or initialised.
func (v *Base) CopyView(idSuffix string) Base {
	clone := Base{
		Base:  v.Base.CopyBase(idSuffix),
		Model: append([]any(nil), v.Model...),
	}
	return clone
}

func (v *Base) ensureRegistered() {
	if !v.registered {
		v.RegisterSelectors()
	}
}

func (v *Base) owns(selector Selector) bool {
	for _, registered := range v.selectors {
		if ui.Same(registered, selector) {
			return true
		}
	}
	return false
}
