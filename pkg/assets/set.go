package assets

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Kind identifies the type of head entry.
type Kind string

const (
	KindScript Kind = "script"
	KindStyle  Kind = "style"
)

// Entry describes a JavaScript or stylesheet dependency a widget needs to emit
// once per page.
type Entry struct {
	Kind    Kind
	URI     string
	Package string
	Inline  string
	Async   bool
	Defer   bool
	Module  bool
	Attrs   map[string]string
}

// Script returns a script entry for the supplied URI.
func Script(uri string) Entry {
	return Entry{Kind: KindScript, URI: strings.TrimSpace(uri)}
}

// Style returns a stylesheet entry for the supplied URI.
func Style(uri string) Entry {
	return Entry{Kind: KindStyle, URI: strings.TrimSpace(uri)}
}

// InlineScript returns an inline script entry.
func InlineScript(source string) Entry {
	return Entry{Kind: KindScript, Inline: source}
}

// Key returns the de-duplication key for the entry.
func (e Entry) Key() string {
	if e.URI != "" {
		return string(e.Kind) + ":src:" + e.URI
	}
	return string(e.Kind) + ":inline:" + e.Inline
}

// Set accumulates head entries in registration order, dropping duplicates.
// The zero value is ready to use.
type Set struct {
	entries []Entry
	index   map[string]int
}

// NewSet constructs a set seeded with entries.
func NewSet(entries ...Entry) *Set {
	set := &Set{}
	for _, entry := range entries {
		set.Add(entry)
	}
	return set
}

// Add registers an entry. Entries without a URI or inline body are ignored.
// The first registration of a key wins.
func (s *Set) Add(entry Entry) {
	if s == nil {
		return
	}
	if entry.URI == "" && strings.TrimSpace(entry.Inline) == "" {
		return
	}
	if entry.Kind == "" {
		entry.Kind = KindScript
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	key := entry.Key()
	if _, exists := s.index[key]; exists {
		return
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, cloneEntry(entry))
}

// AddScript registers a script URI.
func (s *Set) AddScript(uri string) { s.Add(Script(uri)) }

// AddStyle registers a stylesheet URI.
func (s *Set) AddStyle(uri string) { s.Add(Style(uri)) }

// Merge appends the entries of other that are not yet present.
func (s *Set) Merge(other *Set) {
	if s == nil || other == nil {
		return
	}
	for _, entry := range other.entries {
		s.Add(entry)
	}
}

// Has reports whether an entry with the same key was registered.
func (s *Set) Has(entry Entry) bool {
	if s == nil || s.index == nil {
		return false
	}
	_, ok := s.index[entry.Key()]
	return ok
}

// Len returns the number of registered entries.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns a copy of the registered entries in registration order.
func (s *Set) Entries() []Entry {
	if s == nil || len(s.entries) == 0 {
		return nil
	}
	out := make([]Entry, len(s.entries))
	for idx, entry := range s.entries {
		out[idx] = cloneEntry(entry)
	}
	return out
}

// Styles returns the stylesheet entries in registration order.
func (s *Set) Styles() []Entry {
	return s.filter(KindStyle)
}

// Scripts returns the script entries in registration order.
func (s *Set) Scripts() []Entry {
	return s.filter(KindScript)
}

// Packages returns the sorted list of package names referenced by entries.
func (s *Set) Packages() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, entry := range s.entries {
		if entry.Package == "" {
			continue
		}
		seen[entry.Package] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Set) filter(kind Kind) []Entry {
	if s == nil {
		return nil
	}
	var out []Entry
	for _, entry := range s.entries {
		if entry.Kind == kind {
			out = append(out, cloneEntry(entry))
		}
	}
	return out
}

// Display writes stylesheet links followed by script tags. URIs pass through
// resolve when it is non-nil.
func (s *Set) Display(w io.Writer, resolve func(string) string) error {
	if s == nil || len(s.entries) == 0 {
		return nil
	}
	if resolve == nil {
		resolve = func(uri string) string { return uri }
	}

	var builder strings.Builder
	for _, entry := range s.Styles() {
		if entry.URI == "" {
			builder.WriteString("<style>")
			builder.WriteString(entry.Inline)
			builder.WriteString("</style>\n")
			continue
		}
		builder.WriteString(`<link rel="stylesheet" href="`)
		builder.WriteString(html.EscapeString(resolve(entry.URI)))
		builder.WriteString(`"`)
		writeAttrs(&builder, entry.Attrs)
		builder.WriteString(" />\n")
	}
	for _, entry := range s.Scripts() {
		builder.WriteString("<script")
		if entry.Module {
			builder.WriteString(` type="module"`)
		}
		if entry.URI != "" {
			builder.WriteString(` src="`)
			builder.WriteString(html.EscapeString(resolve(entry.URI)))
			builder.WriteString(`"`)
		}
		if entry.Async {
			builder.WriteString(" async")
		}
		if entry.Defer {
			builder.WriteString(" defer")
		}
		writeAttrs(&builder, entry.Attrs)
		builder.WriteString(">")
		if entry.URI == "" {
			builder.WriteString(entry.Inline)
		}
		builder.WriteString("</script>\n")
	}

	if _, err := io.WriteString(w, builder.String()); err != nil {
		return fmt.Errorf("assets: write head entries: %w", err)
	}
	return nil
}

// ThemeResolver returns a URI resolver backed by the theme asset map. Unknown
// keys and nil configurations fall back to the original URI.
func ThemeResolver(cfg *theme.RendererConfig) func(string) string {
	return func(uri string) string {
		if cfg == nil || cfg.AssetURL == nil {
			return uri
		}
		if resolved := strings.TrimSpace(cfg.AssetURL(uri)); resolved != "" {
			return resolved
		}
		return uri
	}
}

func writeAttrs(builder *strings.Builder, attrs map[string]string) {
	if len(attrs) == 0 {
		return
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(name))
		builder.WriteString(`="`)
		builder.WriteString(html.EscapeString(attrs[name]))
		builder.WriteString(`"`)
	}
}

func cloneEntry(src Entry) Entry {
	clone := src
	if len(src.Attrs) > 0 {
		clone.Attrs = make(map[string]string, len(src.Attrs))
		for key, value := range src.Attrs {
			clone.Attrs[key] = value
		}
	}
	return clone
}
