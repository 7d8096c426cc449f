package option

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/ui"
)

// Handle identifies an option slot inside a Control. Handles stay valid until
// the option is removed and are never reused.
type Handle int

// Metadata is the open per-option key/value record. The "classes" key holds
// extra CSS classes applied by renderers.
type Metadata map[string]any

// MetaClasses is the conventional metadata key for extra CSS classes.
const MetaClasses = "classes"

// Pair is an ordered value/title entry used for bulk insertion.
type Pair struct {
	Value any
	Title string
}

type slot struct {
	option   Option
	metadata Metadata
	live     bool
}

// Control is the option arena embedded by list widgets. The zero value is
// ready to use.
type Control struct {
	slots []slot
	order []Handle
}

// AddOption appends a new option and returns its handle.
func (c *Control) AddOption(value any, title string, contentType ...string) Handle {
	return c.AddOptionObject(New(value, title, contentType...), nil)
}

// AddOptionObject appends opt with optional metadata. Metadata is copied.
func (c *Control) AddOptionObject(opt Option, metadata Metadata) Handle {
	if opt.ContentType == "" {
		opt.ContentType = ContentTypeText
	}
	meta := make(Metadata, len(metadata))
	for key, value := range metadata {
		meta[key] = value
	}
	handle := Handle(len(c.slots))
	c.slots = append(c.slots, slot{option: opt, metadata: meta, live: true})
	c.order = append(c.order, handle)
	return handle
}

// AddOptionsByArray appends one option per key in keys order, titled by
// titles[key] (or the key itself when absent).
func (c *Control) AddOptionsByArray(keys []string, titles map[string]string) []Handle {
	handles := make([]Handle, 0, len(keys))
	for _, key := range keys {
		title, ok := titles[key]
		if !ok {
			title = key
		}
		handles = append(handles, c.AddOption(key, title))
	}
	return handles
}

// AddOptionsFromPairs appends options in the given order.
func (c *Control) AddOptionsFromPairs(pairs ...Pair) []Handle {
	handles := make([]Handle, 0, len(pairs))
	for _, pair := range pairs {
		handles = append(handles, c.AddOption(pair.Value, pair.Title))
	}
	return handles
}

// AddDivider appends a divider.
func (c *Control) AddDivider(title string) Handle {
	return c.AddOptionObject(NewDivider(title), nil)
}

// RemoveOption removes the option identified by h together with its metadata.
func (c *Control) RemoveOption(h Handle) (Option, error) {
	if !c.valid(h) {
		return Option{}, ui.NotFound("option", int(h))
	}
	removed := c.slots[h].option
	c.slots[h] = slot{}
	for idx, handle := range c.order {
		if handle == h {
			c.order = append(c.order[:idx], c.order[idx+1:]...)
			break
		}
	}
	return removed, nil
}

// RemoveOptionsByValue removes every option whose value equals value and
// returns the removed options in display order.
func (c *Control) RemoveOptionsByValue(value any) []Option {
	var removed []Option
	for _, h := range c.HandlesByValue(value) {
		opt, err := c.RemoveOption(h)
		if err == nil {
			removed = append(removed, opt)
		}
	}
	return removed
}

// Reset removes every option.
func (c *Control) Reset() {
	c.slots = nil
	c.order = nil
}

// Len returns the number of options.
func (c *Control) Len() int { return len(c.order) }

// Handles returns the handles in display order.
func (c *Control) Handles() []Handle {
	return append([]Handle(nil), c.order...)
}

// Options returns the options in display order.
func (c *Control) Options() []Option {
	out := make([]Option, 0, len(c.order))
	for _, h := range c.order {
		out = append(out, c.slots[h].option)
	}
	return out
}

// Option returns the option for h.
func (c *Control) Option(h Handle) (Option, error) {
	if !c.valid(h) {
		return Option{}, ui.NotFound("option", int(h))
	}
	return c.slots[h].option, nil
}

// HandlesByValue returns the handles of options whose value equals value.
func (c *Control) HandlesByValue(value any) []Handle {
	want := ValueString(value)
	var out []Handle
	for _, h := range c.order {
		if c.slots[h].option.Kind == Divider {
			continue
		}
		if ValueString(c.slots[h].option.Value) == want {
			out = append(out, h)
		}
	}
	return out
}

// OptionsByValue returns the options whose value equals value.
func (c *Control) OptionsByValue(value any) []Option {
	var out []Option
	for _, h := range c.HandlesByValue(value) {
		out = append(out, c.slots[h].option)
	}
	return out
}

// OptionMetadata returns a copy of the metadata record for h. The boolean is
// false when h is not a live option.
func (c *Control) OptionMetadata(h Handle) (Metadata, bool) {
	if !c.valid(h) {
		return nil, false
	}
	out := make(Metadata, len(c.slots[h].metadata))
	for key, value := range c.slots[h].metadata {
		out[key] = value
	}
	return out, true
}

// OptionMetadataValue returns a single metadata entry. Absent options and
// absent keys both report false.
func (c *Control) OptionMetadataValue(h Handle, key string) (any, bool) {
	if !c.valid(h) {
		return nil, false
	}
	value, ok := c.slots[h].metadata[key]
	return value, ok
}

// SetOptionMetadata stores a metadata entry for h.
func (c *Control) SetOptionMetadata(h Handle, key string, value any) error {
	if !c.valid(h) {
		return ui.NotFound("option", int(h))
	}
	c.slots[h].metadata[key] = value
	return nil
}

// OptionClasses returns the extra CSS classes stored in metadata.
func (c *Control) OptionClasses(h Handle) []string {
	value, ok := c.OptionMetadataValue(h, MetaClasses)
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case string:
		return strings.Fields(v)
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, ValueString(item))
		}
		return out
	default:
		return nil
	}
}

// ValidateUniqueValues fails with a ConfigurationError when two selectable
// options share a value.
func (c *Control) ValidateUniqueValues() error {
	seen := make(map[string]struct{}, len(c.order))
	for _, h := range c.order {
		opt := c.slots[h].option
		if opt.Kind == Divider {
			continue
		}
		key := opt.ValueString()
		if _, exists := seen[key]; exists {
			return ui.Configurationf("options", "option values must be unique; duplicate value %q", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// CopyControl returns a deep copy. Handles remain valid in the copy.
func (c *Control) CopyControl() Control {
	clone := Control{
		slots: make([]slot, len(c.slots)),
		order: append([]Handle(nil), c.order...),
	}
	for idx, s := range c.slots {
		clone.slots[idx] = slot{option: s.option, live: s.live}
		if s.metadata != nil {
			clone.slots[idx].metadata = make(Metadata, len(s.metadata))
			for key, value := range s.metadata {
				clone.slots[idx].metadata[key] = value
			}
		}
	}
	return clone
}

func (c *Control) valid(h Handle) bool {
	return h >= 0 && int(h) < len(c.slots) && c.slots[h].live
}
