package builder

import (
	"sort"
	"strings"
	"sync"
)

// Field is the schema-level description of an input, used to pick a widget
// kind for it.
type Field struct {
	Name        string
	Title       string
	Description string
	Type        string
	Format      string
	Enum        []any
	ItemType    string
	ItemEnum    []any
	Required    bool
	MinLength   int
	MaxLength   int
	Pattern     string
	Minimum     *float64
	Maximum     *float64
	Default     any
	// Kind is an explicit kind hint and bypasses matcher evaluation.
	Kind string
	// Order sorts fields before their name; zero sorts as unordered.
	Order int
}

// Matcher decides whether a widget kind should handle the supplied field.
type Matcher func(field Field) bool

type rule struct {
	kind     string
	priority int
	match    Matcher
	order    int
}

// KindResolver selects widget kinds for fields based on explicit hints or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty resolver never resolves a kind.
type KindResolver struct {
	mu    sync.RWMutex
	rules []rule
}

// NewKindResolver constructs a resolver with the built-in matchers.
func NewKindResolver() *KindResolver {
	r := &KindResolver{}
	r.registerBuiltins()
	return r
}

// Register adds a matcher for kind. Later registrations with the same
// priority lose to earlier ones.
func (r *KindResolver) Register(kind string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		kind:     kind,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget kind for field.
func (r *KindResolver) Resolve(field Field) (string, bool) {
	if explicit := strings.TrimSpace(field.Kind); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.kind, true
		}
	}
	return "", false
}

func (r *KindResolver) registerBuiltins() {
	r.Register(KindPassword, 95, func(field Field) bool {
		return field.Type == "string" && strings.EqualFold(field.Format, "password")
	})
	r.Register(KindCheckbox, 90, func(field Field) bool {
		return field.Type == "boolean"
	})
	r.Register(KindCheckboxList, 80, func(field Field) bool {
		return field.Type == "array" && len(field.ItemEnum) > 0
	})
	r.Register(KindRadioList, 75, func(field Field) bool {
		return len(field.Enum) > 0 && len(field.Enum) <= 3 && field.Type != "array" && field.Required
	})
	r.Register(KindFlydown, 70, func(field Field) bool {
		return len(field.Enum) > 0 && field.Type != "array" && field.Type != "object"
	})
	r.Register(KindInteger, 60, func(field Field) bool {
		return field.Type == "integer"
	})
	r.Register(KindNumeric, 50, func(field Field) bool {
		return field.Type == "number"
	})
	r.Register(KindEntry, 10, func(field Field) bool {
		return field.Type == "string" || field.Type == ""
	})
}
