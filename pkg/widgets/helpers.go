package widgets

import (
	"html"

	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/ui"
)

func escape(s string) string { return html.EscapeString(s) }

// writeMessage renders one message paragraph. Secondary text follows the
// primary text in its own span.
func writeMessage(rc *ui.RenderContext, msg *ui.Message) error {
	p := htmltag.New("p")
	p.AddClass(msg.CSSClass())
	if err := p.Open(rc.Writer); err != nil {
		return err
	}
	primary := htmltag.New("span").SetContent(msg.Primary, msg.ContentType)
	primary.AddClass("formkit-message-primary")
	if err := primary.Display(rc.Writer); err != nil {
		return err
	}
	if msg.Secondary != "" {
		secondary := htmltag.New("span").SetContent(msg.Secondary, msg.ContentType)
		secondary.AddClass("formkit-message-secondary")
		if err := secondary.Display(rc.Writer); err != nil {
			return err
		}
	}
	return p.Close(rc.Writer)
}

// translated returns a copy of msg with its texts translated.
func translated(rc *ui.RenderContext, msg *ui.Message) *ui.Message {
	clone := msg.Clone()
	clone.Primary = rc.T(clone.Primary, clone.Primary)
	if clone.Secondary != "" {
		clone.Secondary = rc.T(clone.Secondary, clone.Secondary)
	}
	return clone
}

// firstInputID returns the id of the first descendant widget that renders
// a labelable input.
func firstInputID(root ui.Object) string {
	for _, o := range ui.Descendants(root) {
		if _, ok := o.(labelable); ok && o.Object().ID != "" {
			return o.Object().ID
		}
	}
	return ""
}

// labelable marks widgets whose id names a focusable input.
type labelable interface {
	focusable()
}
