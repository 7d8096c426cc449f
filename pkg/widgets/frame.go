package widgets

import (
	"strconv"

	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// Frame groups children under a heading.
type Frame struct {
	ui.ContainerBase

	TitleText string
	Subtitle  string
	// HeaderLevel selects the heading element, 2 by default.
	HeaderLevel int
}

// NewFrame constructs a frame.
func NewFrame(id, title string, children ...ui.Widget) *Frame {
	f := &Frame{TitleText: title, HeaderLevel: 2}
	f.ID = id
	f.Bind(f)
	f.MustAdd(children...)
	return f
}

// Title implements ui.Titleable.
func (f *Frame) Title() string { return f.TitleText }

// Display writes the heading before the children.
func (f *Frame) Display(rc *ui.RenderContext) error {
	if !f.IsVisible() {
		return nil
	}
	if err := f.Base.Display(rc); err != nil {
		return err
	}
	div := htmltag.New("div").SetID(f.ID)
	div.AddClass("formkit-frame")
	div.AddClass(f.ClassNames()...)
	if err := div.Open(rc.Writer); err != nil {
		return err
	}
	if f.TitleText != "" {
		if err := f.displayTitle(rc); err != nil {
			return err
		}
	}
	if err := rc.WriteString(`<div class="formkit-frame-contents">`); err != nil {
		return err
	}
	if err := f.DisplayChildren(rc); err != nil {
		return err
	}
	if err := rc.WriteString("</div>"); err != nil {
		return err
	}
	return div.Close(rc.Writer)
}

func (f *Frame) displayTitle(rc *ui.RenderContext) error {
	level := f.HeaderLevel
	if level < 1 || level > 6 {
		level = 2
	}
	heading := htmltag.New("h" + strconv.Itoa(level))
	heading.AddClass("formkit-frame-title")
	if err := heading.Open(rc.Writer); err != nil {
		return err
	}
	if err := rc.WriteString(escape(rc.T(f.TitleText, f.TitleText))); err != nil {
		return err
	}
	if f.Subtitle != "" {
		subtitle := htmltag.New("span").SetContent(rc.T(f.Subtitle, f.Subtitle))
		subtitle.AddClass("formkit-frame-subtitle")
		if err := rc.WriteString(" "); err != nil {
			return err
		}
		if err := subtitle.Display(rc.Writer); err != nil {
			return err
		}
	}
	return heading.Close(rc.Writer)
}

// Copy deep-copies the frame and its children.
func (f *Frame) Copy(idSuffix string) ui.Object {
	clone := &Frame{
		ContainerBase: f.CopyContainer(idSuffix),
		TitleText:     f.TitleText,
		Subtitle:      f.Subtitle,
		HeaderLevel:   f.HeaderLevel,
	}
	clone.Bind(clone)
	return clone
}
