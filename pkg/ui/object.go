// Package ui defines the widget tree: object identity and ownership, the
// init/process/display lifecycle, messages, composite widgets, containers and
// the traversal helpers shared by every concrete widget and cell renderer.
package ui

import (
	"strings"
)

// Object is implemented by every element of a widget tree. Concrete types
// embed UIObject (usually through Base) and implement Copy themselves.
type Object interface {
	Object() *UIObject
	Copy(idSuffix string) Object
}

// UIObject carries identity, the parent back-reference, visibility and CSS
// classes. The zero value is visible and detached. Constructors call Bind so
// helpers on embedded types can dispatch to the outer value.
type UIObject struct {
	ID string

	hidden  bool
	classes []string
	parent  Object
	self    Object
}

// Object returns the receiver; it lets embedding types satisfy Object.
func (o *UIObject) Object() *UIObject { return o }

// Bind records the value that embeds this UIObject.
func (o *UIObject) Bind(self Object) { o.self = self }

// Self returns the embedding value registered through Bind, or nil.
func (o *UIObject) Self() Object { return o.self }

// Parent returns the owning object or nil when detached.
func (o *UIObject) Parent() Object { return o.parent }

// Visible returns the object's own visibility flag.
func (o *UIObject) Visible() bool { return !o.hidden }

// SetVisible toggles the object's own visibility flag.
func (o *UIObject) SetVisible(visible bool) { o.hidden = !visible }

// IsVisible reports whether the object and all its ancestors are visible.
// Visibility is not pushed down to children; each Display implementation is
// expected to return early when IsVisible is false.
func (o *UIObject) IsVisible() bool {
	if o.hidden {
		return false
	}
	if o.parent != nil {
		return o.parent.Object().IsVisible()
	}
	return true
}

// AddClass appends CSS classes, ignoring blanks and duplicates.
func (o *UIObject) AddClass(classes ...string) {
	for _, class := range classes {
		for _, name := range strings.Fields(class) {
			if !o.HasClass(name) {
				o.classes = append(o.classes, name)
			}
		}
	}
}

// RemoveClass drops a CSS class.
func (o *UIObject) RemoveClass(class string) {
	class = strings.TrimSpace(class)
	for idx, existing := range o.classes {
		if existing == class {
			o.classes = append(o.classes[:idx], o.classes[idx+1:]...)
			return
		}
	}
}

// HasClass reports whether class was added.
func (o *UIObject) HasClass(class string) bool {
	for _, existing := range o.classes {
		if existing == class {
			return true
		}
	}
	return false
}

// ClassNames returns the user-supplied CSS classes in insertion order.
func (o *UIObject) ClassNames() []string {
	if len(o.classes) == 0 {
		return nil
	}
	out := make([]string, len(o.classes))
	copy(out, o.classes)
	return out
}

// CopyObject returns a detached clone of the identity fields. When the object
// carries an id and idSuffix is non-empty the clone id is ID+idSuffix. The
// clone is unbound; callers Bind it to the new outer value.
func (o *UIObject) CopyObject(idSuffix string) UIObject {
	clone := UIObject{
		ID:     o.ID,
		hidden: o.hidden,
	}
	if clone.ID != "" && idSuffix != "" {
		clone.ID += idSuffix
	}
	if len(o.classes) > 0 {
		clone.classes = append([]string(nil), o.classes...)
	}
	return clone
}

// Attach sets parent as the owner of child. A child that already has a parent
// or that is an ancestor of parent is rejected with a ConfigurationError.
func Attach(parent, child Object) error {
	if parent == nil || child == nil {
		return Configurationf("attach", "parent and child are required")
	}
	node := child.Object()
	if node.parent != nil {
		return Configurationf("attach", "object %q already has a parent", node.ID)
	}
	for ancestor := parent; ancestor != nil; ancestor = ancestor.Object().parent {
		if ancestor.Object() == node {
			return Configurationf("attach", "object %q cannot own one of its ancestors", node.ID)
		}
	}
	node.parent = parent
	return nil
}

// Detach clears the parent link of child.
func Detach(child Object) {
	if child != nil {
		child.Object().parent = nil
	}
}

// adopt re-points the parent link of an owned object. It is used when a copy
// is bound to its new outer value.
func adopt(parent, child Object) {
	if child != nil {
		child.Object().parent = parent
	}
}

// FirstAncestor walks the parent chain of o and returns the first ancestor
// accepted by match.
func FirstAncestor(o Object, match func(Object) bool) (Object, bool) {
	if o == nil || match == nil {
		return nil, false
	}
	for ancestor := o.Object().parent; ancestor != nil; ancestor = ancestor.Object().parent {
		if match(ancestor) {
			return ancestor, true
		}
	}
	return nil, false
}

// AncestorOf returns the nearest ancestor of o implementing T.
func AncestorOf[T any](o Object) (T, bool) {
	var zero T
	if o == nil {
		return zero, false
	}
	for ancestor := o.Object().parent; ancestor != nil; ancestor = ancestor.Object().parent {
		if typed, ok := ancestor.(T); ok {
			return typed, true
		}
	}
	return zero, false
}

// Same reports whether a and b are the same tree element.
func Same(a, b Object) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Object() == b.Object()
}
