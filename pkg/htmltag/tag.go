package htmltag

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
)

// Content types understood by Tag.SetContent.
const (
	ContentTypeText = "text/plain"
	ContentTypeXML  = "text/xml"
)

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "link": {}, "meta": {}, "param": {},
	"source": {}, "track": {}, "wbr": {},
}

type attribute struct {
	name  string
	value any
}

// Tag is an HTML element with an ordered attribute bag and optional content.
// Attribute values are stringified when written; true booleans render as bare
// attributes while false and nil values are omitted.
type Tag struct {
	Name string

	attrs       []attribute
	content     string
	contentType string
	hasContent  bool
}

// New constructs a tag with the supplied element name.
func New(name string) *Tag {
	return &Tag{Name: strings.ToLower(strings.TrimSpace(name))}
}

// Set assigns an attribute, replacing an existing value in place.
func (t *Tag) Set(name string, value any) *Tag {
	name = strings.TrimSpace(name)
	if name == "" {
		return t
	}
	for idx := range t.attrs {
		if t.attrs[idx].name == name {
			t.attrs[idx].value = value
			return t
		}
	}
	t.attrs = append(t.attrs, attribute{name: name, value: value})
	return t
}

// SetID assigns the id attribute unless id is blank.
func (t *Tag) SetID(id string) *Tag {
	if strings.TrimSpace(id) == "" {
		return t
	}
	return t.Set("id", id)
}

// SetAll assigns every attribute from attrs, in the supplied key order.
func (t *Tag) SetAll(keys []string, attrs map[string]any) *Tag {
	for _, key := range keys {
		if value, ok := attrs[key]; ok {
			t.Set(key, value)
		}
	}
	return t
}

// Get returns an attribute value.
func (t *Tag) Get(name string) (any, bool) {
	for _, attr := range t.attrs {
		if attr.name == name {
			return attr.value, true
		}
	}
	return nil, false
}

// Remove deletes an attribute.
func (t *Tag) Remove(name string) *Tag {
	for idx, attr := range t.attrs {
		if attr.name == name {
			t.attrs = append(t.attrs[:idx], t.attrs[idx+1:]...)
			break
		}
	}
	return t
}

// AddClass appends CSS classes to the class attribute, skipping duplicates.
func (t *Tag) AddClass(classes ...string) *Tag {
	existing := ""
	if value, ok := t.Get("class"); ok && value != nil {
		existing = fmt.Sprint(value)
	}
	tokens := strings.Fields(existing)
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		seen[token] = struct{}{}
	}
	for _, class := range classes {
		for _, token := range strings.Fields(class) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		return t
	}
	return t.Set("class", strings.Join(tokens, " "))
}

// SetContent assigns the element body. text/plain content is escaped when
// written; text/xml content is written verbatim.
func (t *Tag) SetContent(content string, contentType ...string) *Tag {
	t.content = content
	t.contentType = ContentTypeText
	if len(contentType) > 0 && strings.TrimSpace(contentType[0]) != "" {
		t.contentType = strings.TrimSpace(contentType[0])
	}
	t.hasContent = true
	return t
}

// Content returns the raw content and its type.
func (t *Tag) Content() (string, string) {
	return t.content, t.contentType
}

// Open writes the opening tag.
func (t *Tag) Open(w io.Writer) error {
	var builder strings.Builder
	t.writeOpen(&builder)
	return write(w, builder.String())
}

// Close writes the closing tag. Void elements have no closing tag.
func (t *Tag) Close(w io.Writer) error {
	if t.isVoid() {
		return nil
	}
	return write(w, "</"+t.Name+">")
}

// DisplayContent writes only the element body.
func (t *Tag) DisplayContent(w io.Writer) error {
	var builder strings.Builder
	t.writeContent(&builder)
	return write(w, builder.String())
}

// Display writes the full element.
func (t *Tag) Display(w io.Writer) error {
	return write(w, t.String())
}

// String renders the full element.
func (t *Tag) String() string {
	var builder strings.Builder
	t.writeOpen(&builder)
	if t.isVoid() {
		return builder.String()
	}
	t.writeContent(&builder)
	builder.WriteString("</")
	builder.WriteString(t.Name)
	builder.WriteString(">")
	return builder.String()
}

func (t *Tag) writeOpen(builder *strings.Builder) {
	builder.WriteByte('<')
	builder.WriteString(t.Name)
	for _, attr := range t.attrs {
		value, ok := attributeValue(attr.value)
		if !ok {
			continue
		}
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(attr.name))
		if value == nil {
			continue
		}
		builder.WriteString(`="`)
		builder.WriteString(html.EscapeString(*value))
		builder.WriteString(`"`)
	}
	if t.isVoid() {
		builder.WriteString(" />")
		return
	}
	builder.WriteByte('>')
}

func (t *Tag) writeContent(builder *strings.Builder) {
	if !t.hasContent {
		return
	}
	if t.contentType == ContentTypeText {
		builder.WriteString(html.EscapeString(t.content))
		return
	}
	builder.WriteString(t.content)
}

func (t *Tag) isVoid() bool {
	_, ok := voidElements[t.Name]
	return ok && !t.hasContent
}

// attributeValue returns (nil, true) for bare boolean attributes and
// (_, false) when the attribute must be omitted.
func attributeValue(value any) (*string, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case bool:
		if !v {
			return nil, false
		}
		return nil, true
	case string:
		return &v, true
	case int:
		s := strconv.Itoa(v)
		return &s, true
	case int64:
		s := strconv.FormatInt(v, 10)
		return &s, true
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s, true
	case fmt.Stringer:
		s := v.String()
		return &s, true
	default:
		s := fmt.Sprint(v)
		return &s, true
	}
}

func write(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("htmltag: write: %w", err)
	}
	return nil
}
