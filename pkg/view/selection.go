package view

import (
	"fmt"
	"iter"
	"strings"

	"github.com/goliatone/go-formkit/pkg/ui"
)

// Selection is the ordered sequence of row identifiers a selector reported,
// kept exactly as submitted. Items are held in their scalar string form so
// membership is value equality: Contains(7) and Contains("7") agree.
type Selection struct {
	items []string
}

// NewSelection builds a selection from identifiers in the given order.
func NewSelection(items ...any) *Selection {
	s := &Selection{items: make([]string, 0, len(items))}
	for _, item := range items {
		s.items = append(s.items, scalar(item))
	}
	return s
}

// NewSelectionFromStrings builds a selection from submitted identifiers.
func NewSelectionFromStrings(items []string) *Selection {
	values := make([]any, 0, len(items))
	for _, item := range items {
		values = append(values, item)
	}
	return NewSelection(values...)
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id any) bool {
	if s == nil {
		return false
	}
	key := scalar(id)
	for _, item := range s.items {
		if item == key {
			return true
		}
	}
	return false
}

// Items returns the identifiers in selection order.
func (s *Selection) Items() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.items...)
}

// Count returns the number of identifiers.
func (s *Selection) Count() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// All iterates the identifiers in order.
func (s *Selection) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if s == nil {
			return
		}
		for _, item := range s.items {
			if !yield(item) {
				return
			}
		}
	}
}

// String renders the selection for debugging.
func (s *Selection) String() string {
	return "[" + strings.Join(s.Items(), ", ") + "]"
}

func scalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Selector is implemented by objects (typically checkbox or radio cell
// renderers) that report selected row identifiers to their view.
type Selector interface {
	ui.Object
	SelectorID() string
}

// SelectionOwner is implemented by views tracking selections per selector.
type SelectionOwner interface {
	ui.Object
	Selection(selector Selector) (*Selection, error)
	SelectionByID(id string) (*Selection, error)
	SetSelection(selection *Selection, selector Selector) error
}

// OwnerOf returns the view owning selector.
func OwnerOf(selector Selector) (SelectionOwner, error) {
	owner, ok := ui.AncestorOf[SelectionOwner](selector)
	if !ok {
		return nil, ui.Configurationf("selector", "selector %q is not inside a view", selector.SelectorID())
	}
	return owner, nil
}
