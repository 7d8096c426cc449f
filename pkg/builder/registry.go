package builder

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/ui"
)

// Registry stores constructors by kind name, providing discovery and
// duplication safeguards.
type Registry[F any] struct {
	mu      sync.RWMutex
	entries map[string]F
}

// NewRegistry creates an empty registry.
func NewRegistry[F any]() *Registry[F] {
	return &Registry[F]{entries: make(map[string]F)}
}

// Register adds a constructor. Blank and duplicate kinds are configuration
// errors.
func (r *Registry[F]) Register(kind string, factory F) error {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return ui.Configurationf("register", "kind is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[kind]; exists {
		return ui.Configurationf("register", "kind %q already registered", kind)
	}
	r.entries[kind] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry[F]) MustRegister(kind string, factory F) {
	if err := r.Register(kind, factory); err != nil {
		panic(err)
	}
}

// Get retrieves the constructor registered for kind.
func (r *Registry[F]) Get(kind string) (F, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.entries[strings.TrimSpace(kind)]
	if !ok {
		var zero F
		return zero, ui.NotFound("kind", kind)
	}
	return factory, nil
}

// Has reports whether kind is registered.
func (r *Registry[F]) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[strings.TrimSpace(kind)]
	return ok
}

// List returns the registered kinds sorted.
func (r *Registry[F]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.entries))
	for kind := range r.entries {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
