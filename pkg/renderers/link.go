package renderers

import (
	"github.com/goliatone/go-formkit/pkg/cell"
	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// Link renders an anchor whose href is link formatted with link_value and
// whose body is text formatted with value. Insensitive links render the text
// in a span.
type Link struct {
	cell.Base
}

// NewLink constructs a link renderer.
func NewLink(id string) *Link {
	r := &Link{}
	r.ID = id
	r.Bind(r)
	r.Properties().Declare("link", "")
	r.Properties().Declare("link_value", nil)
	r.Properties().Declare(PropText, "")
	r.Properties().Declare(PropValue, nil)
	r.Properties().Declare(PropTitle, "")
	r.Properties().Declare(PropContentType, htmltag.ContentTypeText)
	return r
}

// Href returns the formatted link for the current row.
func (r *Link) Href() string {
	value, _ := r.Properties().Get("link_value")
	return FormatText(r.Properties().String("link"), value)
}

// Text returns the formatted body for the current row.
func (r *Link) Text() string {
	value, _ := r.Properties().Get(PropValue)
	return FormatText(r.Properties().String(PropText), value)
}

// Render writes the anchor or the insensitive span.
func (r *Link) Render(rc *ui.RenderContext) error {
	contentType := r.Properties().String(PropContentType)
	href := r.Href()
	if !r.Sensitive() || href == "" {
		span := htmltag.New("span")
		span.AddClass("formkit-link-cell-renderer-insensitive")
		span.SetContent(r.Text(), contentType)
		return span.Display(rc.Writer)
	}
	anchor := htmltag.New("a").Set("href", href)
	if title := r.Properties().String(PropTitle); title != "" {
		anchor.Set("title", rc.T(title, title))
	}
	anchor.SetContent(r.Text(), contentType)
	return anchor.Display(rc.Writer)
}

// Copy returns a detached copy.
func (r *Link) Copy(idSuffix string) ui.Object {
	clone := &Link{Base: r.CopyRenderer(idSuffix)}
	clone.Bind(clone)
	return clone
}

// Image renders an <img>. The source is image formatted with value and
// resolved through the theme's asset URLs.
type Image struct {
	cell.Base
}

// NewImage constructs an image renderer.
func NewImage(id string) *Image {
	r := &Image{}
	r.ID = id
	r.Bind(r)
	r.Properties().Declare("image", "")
	r.Properties().Declare(PropValue, nil)
	r.Properties().Declare("alt", "")
	r.Properties().Declare(PropTitle, "")
	r.Properties().Declare("width", nil)
	r.Properties().Declare("height", nil)
	return r
}

// Render writes the image tag. An empty source renders nothing.
func (r *Image) Render(rc *ui.RenderContext) error {
	value, _ := r.Properties().Get(PropValue)
	src := FormatText(r.Properties().String("image"), value)
	if src == "" {
		return nil
	}
	img := htmltag.New("img").Set("src", rc.AssetURL(src))
	alt := r.Properties().String("alt")
	img.Set("alt", rc.T(alt, alt))
	if title := r.Properties().String(PropTitle); title != "" {
		img.Set("title", rc.T(title, title))
	}
	for _, name := range []string{"width", "height"} {
		if !r.Properties().IsNil(name) {
			img.Set(name, r.Properties().String(name))
		}
	}
	return img.Display(rc.Writer)
}

func (r *Image) BaseCSSClasses() []string {
	return []string{"formkit-image-cell-renderer"}
}

// Copy returns a detached copy.
func (r *Image) Copy(idSuffix string) ui.Object {
	clone := &Image{Base: r.CopyRenderer(idSuffix)}
	clone.Bind(clone)
	return clone
}
