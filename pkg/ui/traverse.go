package ui

import (
	"fmt"
	"iter"
	"sort"
	"strings"
)

// Walk visits root and its descendants depth-first. visit returns false to
// skip the children of the visited object.
func Walk(root Object, visit func(Object) bool) {
	if root == nil || visit == nil {
		return
	}
	if !visit(root) {
		return
	}
	node, ok := root.(Node)
	if !ok {
		return
	}
	for _, child := range node.ChildObjects() {
		Walk(child, visit)
	}
}

// All yields root and its descendants in pre-order.
func All(root Object) iter.Seq[Object] {
	return func(yield func(Object) bool) {
		stopped := false
		Walk(root, func(o Object) bool {
			if stopped {
				return false
			}
			if !yield(o) {
				stopped = true
				return false
			}
			return true
		})
	}
}

// Descendants returns every object below root in pre-order.
func Descendants(root Object) []Object {
	var out []Object
	for o := range All(root) {
		if Same(o, root) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// DescendantsOf returns the descendants of root implementing T.
func DescendantsOf[T any](root Object) []T {
	var out []T
	for _, o := range Descendants(root) {
		if typed, ok := o.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

// Find returns the object with the given id within root's subtree.
func Find(root Object, id string) (Object, error) {
	id = strings.TrimSpace(id)
	if id != "" {
		for o := range All(root) {
			if o.Object().ID == id {
				return o, nil
			}
		}
	}
	return nil, NotFound("object", id)
}

// FindWidget returns the widget with the given id within root's subtree.
func FindWidget(root Object, id string) (Widget, error) {
	o, err := Find(root, id)
	if err != nil {
		return nil, err
	}
	w, ok := o.(Widget)
	if !ok {
		return nil, NotFound("widget", id)
	}
	return w, nil
}

// CheckUniqueIDs fails when two objects in the tree share a non-empty id.
func CheckUniqueIDs(root Object) error {
	seen := make(map[string]struct{})
	var duplicates []string
	for o := range All(root) {
		id := o.Object().ID
		if id == "" {
			continue
		}
		if _, exists := seen[id]; exists {
			duplicates = append(duplicates, id)
			continue
		}
		seen[id] = struct{}{}
	}
	if len(duplicates) > 0 {
		return Configurationf("ids", "duplicate id(s) in widget tree: %s", strings.Join(duplicates, ", "))
	}
	return nil
}

// InitTree initialises root and verifies id uniqueness afterwards, since
// composite widgets only exist once Init ran.
func InitTree(root Widget) error {
	if root == nil {
		return Configurationf("init", "root widget is nil")
	}
	if err := root.Init(); err != nil {
		return err
	}
	return CheckUniqueIDs(root)
}

// ProcessTree processes root with data. Data that was not submitted leaves the
// tree untouched.
func ProcessTree(root Widget, data FormData) error {
	if root == nil {
		return Configurationf("process", "root widget is nil")
	}
	if data == nil || !data.Submitted() {
		return nil
	}
	return root.Process(data)
}

// DisplayTree displays root.
func DisplayTree(root Widget, rc *RenderContext) error {
	if root == nil {
		return Configurationf("display", "root widget is nil")
	}
	return root.Display(rc)
}

// CaptureState snapshots every stateful object with an id, keyed by id.
func CaptureState(root Object) map[string]any {
	states := make(map[string]any)
	for o := range All(root) {
		stateful, ok := o.(Stateful)
		if !ok {
			continue
		}
		if id := o.Object().ID; id != "" {
			states[id] = stateful.State()
		}
	}
	return states
}

// RestoreState applies states captured by CaptureState. Ids absent from the
// tree are ignored.
func RestoreState(root Object, states map[string]any) error {
	if len(states) == 0 {
		return nil
	}
	for o := range All(root) {
		stateful, ok := o.(Stateful)
		if !ok {
			continue
		}
		id := o.Object().ID
		state, ok := states[id]
		if id == "" || !ok {
			continue
		}
		if err := stateful.SetState(state); err != nil {
			return fmt.Errorf("ui: restore state for %q: %w", id, err)
		}
	}
	return nil
}

// CollectMessages returns the messages of root and all its descendant widgets
// in tree order.
func CollectMessages(root Object) []*Message {
	var out []*Message
	for o := range All(root) {
		if w, ok := o.(Widget); ok {
			out = append(out, w.Messages()...)
		}
	}
	return out
}

// HasMessage reports whether root or any descendant carries a message.
func HasMessage(root Object) bool {
	for o := range All(root) {
		if w, ok := o.(Widget); ok && len(w.Messages()) > 0 {
			return true
		}
	}
	return false
}

// HasErrors reports whether root or any descendant carries an error message.
func HasErrors(root Object) bool {
	for _, msg := range CollectMessages(root) {
		if msg.IsError() {
			return true
		}
	}
	return false
}

// ApplyErrorPayload attaches server-side validation errors to widgets by id.
// Keys that do not match a widget, or that address the form itself, are
// returned as form-level messages. Messages are trimmed and de-duplicated.
func ApplyErrorPayload(root Object, payload map[string][]string) []string {
	if len(payload) == 0 {
		return nil
	}
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var formLevel []string
	for _, key := range keys {
		messages := normalizeMessages(payload[key])
		if len(messages) == 0 {
			continue
		}
		if isFormLevelKey(key) {
			formLevel = append(formLevel, messages...)
			continue
		}
		w, err := FindWidget(root, errorKeyToID(key))
		if err != nil {
			formLevel = append(formLevel, messages...)
			continue
		}
		for _, message := range messages {
			w.AddMessage(ErrorMessage(message))
		}
	}
	return normalizeMessages(formLevel)
}

func errorKeyToID(key string) string {
	clean := strings.TrimSpace(key)
	clean = strings.TrimPrefix(clean, "#")
	clean = strings.TrimPrefix(clean, "/")
	clean = strings.TrimSuffix(clean, "[]")
	return clean
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
