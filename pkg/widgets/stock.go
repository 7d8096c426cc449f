package widgets

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/ui"
)

// Built-in stock button identifiers.
const (
	StockSubmit = "submit"
	StockCreate = "create"
	StockAdd    = "add"
	StockApply  = "apply"
	StockDelete = "delete"
	StockCancel = "cancel"
)

// StockType is a named button preset.
type StockType struct {
	ID      string   `yaml:"id" json:"id"`
	Title   string   `yaml:"title" json:"title"`
	Classes []string `yaml:"classes,omitempty" json:"classes,omitempty"`
}

// StockRegistry holds button presets. Later registrations replace earlier
// ones with the same id.
type StockRegistry struct {
	mu    sync.RWMutex
	types map[string]StockType
}

// NewStockRegistry returns a registry seeded with the built-in presets.
func NewStockRegistry() *StockRegistry {
	r := &StockRegistry{types: make(map[string]StockType)}
	for _, st := range []StockType{
		{ID: StockSubmit, Title: "Submit", Classes: []string{"formkit-primary"}},
		{ID: StockCreate, Title: "Create", Classes: []string{"formkit-primary"}},
		{ID: StockAdd, Title: "Add", Classes: []string{"formkit-primary"}},
		{ID: StockApply, Title: "Apply"},
		{ID: StockDelete, Title: "Delete", Classes: []string{"formkit-button-delete"}},
		{ID: StockCancel, Title: "Cancel", Classes: []string{"formkit-button-cancel"}},
	} {
		r.Register(st)
	}
	return r
}

// DefaultStock is the registry consulted by buttons without their own.
var DefaultStock = NewStockRegistry()

// Register adds or replaces a preset. Blank ids are ignored.
func (r *StockRegistry) Register(st StockType) {
	st.ID = strings.TrimSpace(st.ID)
	if r == nil || st.ID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[st.ID] = st
}

// Get returns the preset for id. Unknown ids are a configuration error.
func (r *StockRegistry) Get(id string) (StockType, error) {
	if r != nil {
		r.mu.RLock()
		st, ok := r.types[strings.TrimSpace(id)]
		r.mu.RUnlock()
		if ok {
			st.Classes = append([]string(nil), st.Classes...)
			return st, nil
		}
	}
	return StockType{}, ui.Configurationf("stock", "stock id %q is not valid", id)
}

// IDs returns the registered ids sorted.
func (r *StockRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.types))
	for id := range r.types {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// LoadYAML registers the presets listed in a YAML document of the form
//
//	stock:
//	  - id: archive
//	    title: Archive
//	    classes: [formkit-button-archive]
func (r *StockRegistry) LoadYAML(data []byte) error {
	var doc struct {
		Stock []StockType `yaml:"stock"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("widgets: parse stock presets: %w", err)
	}
	for idx, st := range doc.Stock {
		if strings.TrimSpace(st.ID) == "" {
			return ui.Configurationf("stock", "preset %d has no id", idx)
		}
		r.Register(st)
	}
	return nil
}
