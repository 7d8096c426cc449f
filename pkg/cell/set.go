package cell

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/ui"
)

// Set owns an ordered list of renderers and their mappings. Renderers and
// mapping lists share an arena index; the id index is rebuilt when the arena
// changes.
type Set struct {
	renderers []Renderer
	mappings  [][]*Mapping
	ids       map[string]int
	applied   bool
}

// NewSet constructs an empty set.
func NewSet() *Set { return &Set{} }

// Add appends a renderer with an empty mapping list.
func (s *Set) Add(r Renderer) error {
	if r == nil {
		return ui.Configurationf("renderer", "renderer is nil")
	}
	if s.indexOf(r) >= 0 {
		return ui.Configurationf("renderer", "renderer %q already added", r.Object().ID)
	}
	if id := r.Object().ID; id != "" {
		if _, exists := s.ids[id]; exists {
			return ui.Configurationf("renderer", "duplicate renderer id %q", id)
		}
	}
	s.renderers = append(s.renderers, r)
	s.mappings = append(s.mappings, nil)
	s.reindex()
	return nil
}

// AddWithMappings appends r and registers mappings for it. Nothing is added
// when a mapping is rejected.
func (s *Set) AddWithMappings(r Renderer, mappings ...*Mapping) error {
	if r == nil {
		return ui.Configurationf("renderer", "renderer is nil")
	}
	if err := checkMappings(r, mappings); err != nil {
		return err
	}
	if err := s.Add(r); err != nil {
		return err
	}
	return s.AddMappings(r, mappings...)
}

// AddMappings registers mappings for an added renderer. A mapping targeting
// a static property is a ConfigurationError and no mapping is registered.
func (s *Set) AddMappings(r Renderer, mappings ...*Mapping) error {
	idx := s.indexOf(r)
	if idx < 0 {
		return notAdded(r)
	}
	if err := checkMappings(r, mappings); err != nil {
		return err
	}
	for _, m := range mappings {
		if m != nil {
			s.mappings[idx] = append(s.mappings[idx], m)
		}
	}
	return nil
}

func checkMappings(r Renderer, mappings []*Mapping) error {
	for _, m := range mappings {
		if m == nil {
			continue
		}
		if strings.TrimSpace(m.Property) == "" || strings.TrimSpace(m.Field) == "" {
			return ui.Configurationf("mapping", "mapping requires a property and a field")
		}
		if r.IsStaticProperty(m.Property) {
			return ui.Configurationf("mapping",
				"property %q of renderer %q is static and cannot be mapped", m.Property, r.Object().ID)
		}
	}
	return nil
}

// Mappings returns the mappings registered for r in registration order.
func (s *Set) Mappings(r Renderer) ([]*Mapping, error) {
	idx := s.indexOf(r)
	if idx < 0 {
		return nil, notAdded(r)
	}
	return append([]*Mapping(nil), s.mappings[idx]...), nil
}

// ApplyMappingsToRenderer assigns r's mapped properties from row. Array
// properties start from a fresh *Array the first time they are seen during
// this call; later mappings to the same property append or assign by key
// into that array.
func (s *Set) ApplyMappingsToRenderer(r Renderer, row any) error {
	idx := s.indexOf(r)
	if idx < 0 {
		return notAdded(r)
	}

	seen := make(map[string]*Array)
	for _, m := range s.mappings[idx] {
		if m.IsArray {
			value, err := FieldValue(row, m.Field)
			if err != nil {
				return fmt.Errorf("cell: apply mapping %s: %w", m.Property, err)
			}
			arr, ok := seen[m.Property]
			if !ok {
				arr = NewArray()
				seen[m.Property] = arr
				if err := r.SetProperty(m.Property, arr); err != nil {
					return err
				}
			}
			if m.ArrayKey != "" {
				arr.Set(m.ArrayKey, value)
			} else {
				arr.Append(value)
			}
			continue
		}

		value, err := FieldValue(row, m.FieldName())
		if err != nil {
			return fmt.Errorf("cell: apply mapping %s: %w", m.Property, err)
		}
		if m.Negated() {
			value = !Truthy(value)
		}
		if err := r.SetProperty(m.Property, value); err != nil {
			return err
		}
	}
	s.applied = true
	return nil
}

// MappingsApplied reports whether a row was applied at least once.
func (s *Set) MappingsApplied() bool { return s.applied }

// Renderers returns the renderers in render order.
func (s *Set) Renderers() []Renderer {
	return append([]Renderer(nil), s.renderers...)
}

// Len returns the number of renderers.
func (s *Set) Len() int { return len(s.renderers) }

// ByID returns the renderer with the given id.
func (s *Set) ByID(id string) (Renderer, error) {
	if idx, ok := s.ids[id]; ok {
		return s.renderers[idx], nil
	}
	return nil, ui.NotFound("renderer", id)
}

// At returns the renderer at position i.
func (s *Set) At(i int) (Renderer, error) {
	if i < 0 || i >= len(s.renderers) {
		return nil, ui.NotFound("renderer", fmt.Sprintf("#%d", i))
	}
	return s.renderers[i], nil
}

// First returns the first renderer.
func (s *Set) First() (Renderer, error) {
	return s.At(0)
}

// Remove deletes r together with its mappings.
func (s *Set) Remove(r Renderer) error {
	idx := s.indexOf(r)
	if idx < 0 {
		return notAdded(r)
	}
	s.renderers = append(s.renderers[:idx], s.renderers[idx+1:]...)
	s.mappings = append(s.mappings[:idx], s.mappings[idx+1:]...)
	s.reindex()
	return nil
}

// Copy deep-copies the set. Renderers are copied with idSuffix and each copy
// receives cloned mappings, so mappings are never shared with the original.
func (s *Set) Copy(idSuffix string) (*Set, error) {
	clone := &Set{applied: s.applied}
	for idx, r := range s.renderers {
		copied, ok := r.Copy(idSuffix).(Renderer)
		if !ok {
			return nil, ui.Configurationf("copy", "renderer %q copy is not a renderer", r.Object().ID)
		}
		mappings := make([]*Mapping, 0, len(s.mappings[idx]))
		for _, m := range s.mappings[idx] {
			mappings = append(mappings, m.Clone())
		}
		clone.renderers = append(clone.renderers, copied)
		clone.mappings = append(clone.mappings, mappings)
	}
	clone.reindex()
	return clone, nil
}

func (s *Set) indexOf(r Renderer) int {
	if r == nil {
		return -1
	}
	for idx, existing := range s.renderers {
		if ui.Same(existing, r) {
			return idx
		}
	}
	return -1
}

func (s *Set) reindex() {
	s.ids = make(map[string]int, len(s.renderers))
	for idx, r := range s.renderers {
		if id := r.Object().ID; id != "" {
			s.ids[id] = idx
		}
	}
}

func notAdded(r Renderer) error {
	id := ""
	if r != nil {
		id = r.Object().ID
	}
	return ui.NotFound("renderer", id)
}
