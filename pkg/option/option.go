// Package option manages the ordered option sets used by list and flydown
// widgets. Options live in an arena keyed by stable handles so metadata can be
// attached per option even when values repeat.
package option

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/tree"
)

// Kind distinguishes selectable options from structural ones.
type Kind int

const (
	// Plain is a regular selectable option.
	Plain Kind = iota
	// Divider separates groups of options and is never selectable.
	Divider
	// Blank is the empty placeholder option of a flydown.
	Blank
)

// Content types for option titles.
const (
	ContentTypeText = "text/plain"
	ContentTypeXML  = "text/xml"
)

// Option is a value/title pair.
type Option struct {
	Value       any
	Title       string
	ContentType string
	Kind        Kind
}

// New constructs a plain option. The content type defaults to text/plain.
func New(value any, title string, contentType ...string) Option {
	ct := ContentTypeText
	if len(contentType) > 0 && contentType[0] != "" {
		ct = contentType[0]
	}
	return Option{Value: value, Title: title, ContentType: ct, Kind: Plain}
}

// NewDivider constructs a non-selectable divider.
func NewDivider(title string) Option {
	return Option{Title: title, ContentType: ContentTypeText, Kind: Divider}
}

// NewBlank constructs a placeholder option with an empty value.
func NewBlank(title string) Option {
	return Option{Value: nil, Title: title, ContentType: ContentTypeText, Kind: Blank}
}

// Selectable reports whether the option can be chosen.
func (o Option) Selectable() bool { return o.Kind != Divider }

// ValueString returns the scalar form submitted for the option.
func (o Option) ValueString() string {
	return ValueString(o.Value)
}

// ValueString normalises option values to the string form used in markup and
// form submissions. Nil becomes the empty string.
func ValueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(v)
	}
}

// TreeNode is a node of a hierarchical option set.
type TreeNode = tree.Node[Option]

// NewTree constructs a root node for hierarchical options. The root carries a
// title only.
func NewTree(title string) *TreeNode {
	return tree.New(Option{Title: title, ContentType: ContentTypeText})
}
