package renderers

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formkit/pkg/cell"
	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// Property names shared by the stock renderers.
const (
	PropText        = "text"
	PropValue       = "value"
	PropContentType = "content_type"
	PropTitle       = "title"
)

// Text renders a string. When value is set, text is used as a format string
// receiving value (or each element of an array value) as arguments.
type Text struct {
	cell.Base
}

// NewText constructs a text renderer.
func NewText(id string) *Text {
	r := &Text{}
	r.ID = id
	r.Bind(r)
	r.declare()
	return r
}

func (r *Text) declare() {
	r.Properties().Declare(PropText, "")
	r.Properties().Declare(PropValue, nil)
	r.Properties().Declare(PropContentType, htmltag.ContentTypeText)
}

// Content returns the formatted text for the current row.
func (r *Text) Content() string {
	value, _ := r.Properties().Get(PropValue)
	return FormatText(r.Properties().String(PropText), value)
}

// Render writes the formatted text, escaped unless the content type is XML.
func (r *Text) Render(rc *ui.RenderContext) error {
	return writeContent(rc, r.Content(), r.Properties().String(PropContentType))
}

// Copy returns a detached copy.
func (r *Text) Copy(idSuffix string) ui.Object {
	clone := &Text{Base: r.CopyRenderer(idSuffix)}
	clone.Bind(clone)
	return clone
}

// FormatText substitutes value into format. Without verbs in format the value
// replaces an empty format and is ignored otherwise.
func FormatText(format string, value any) string {
	if value == nil {
		return format
	}
	if !strings.Contains(format, "%") {
		if format == "" {
			return cell.ToString(value)
		}
		return format
	}
	var args []any
	if arr, ok := value.(*cell.Array); ok {
		args = arr.Values()
	} else {
		args = []any{value}
	}
	return fmt.Sprintf(format, args...)
}

func writeContent(rc *ui.RenderContext, content, contentType string) error {
	if contentType == htmltag.ContentTypeXML {
		return rc.WriteString(content)
	}
	return rc.WriteString(html.EscapeString(content))
}

// NullText renders null_text when text and value are both empty.
type NullText struct {
	Text
}

// NewNullText constructs a null-aware text renderer.
func NewNullText(id string) *NullText {
	r := &NullText{}
	r.ID = id
	r.Bind(r)
	r.declare()
	r.Properties().Declare("null_text", "<none>")
	r.Properties().Declare("null_text_content_type", htmltag.ContentTypeText)
	return r
}

// IsNull reports whether the current row has nothing to show.
func (r *NullText) IsNull() bool {
	return r.Properties().IsNil(PropValue) && r.Properties().String(PropText) == ""
}

// Render writes the null text in a marker span, or the regular text.
func (r *NullText) Render(rc *ui.RenderContext) error {
	if !r.IsNull() {
		return r.Text.Render(rc)
	}
	span := htmltag.New("span")
	span.AddClass("formkit-null-text-cell-renderer")
	nullText := rc.T(r.Properties().String("null_text"), r.Properties().String("null_text"))
	span.SetContent(nullText, r.Properties().String("null_text_content_type"))
	return span.Display(rc.Writer)
}

// Copy returns a detached copy.
func (r *NullText) Copy(idSuffix string) ui.Object {
	clone := &NullText{Text: Text{Base: r.CopyRenderer(idSuffix)}}
	clone.Bind(clone)
	return clone
}
