package renderers

import (
	"github.com/goliatone/go-formkit/pkg/cell"
	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// Boolean renders true_content or false_content depending on value.
type Boolean struct {
	cell.Base
}

// NewBoolean constructs a boolean renderer.
func NewBoolean(id string) *Boolean {
	r := &Boolean{}
	r.ID = id
	r.Bind(r)
	r.Properties().Declare(PropValue, false)
	r.Properties().Declare("true_content", "Yes")
	r.Properties().Declare("false_content", "No")
	r.Properties().Declare(PropContentType, htmltag.ContentTypeText)
	return r
}

// Value reports the truthiness of the mapped value.
func (r *Boolean) Value() bool {
	return r.Properties().Bool(PropValue)
}

// Render writes the content matching the current value.
func (r *Boolean) Render(rc *ui.RenderContext) error {
	key := "false_content"
	if r.Value() {
		key = "true_content"
	}
	content := r.Properties().String(key)
	return writeContent(rc, rc.T(content, content), r.Properties().String(PropContentType))
}

func (r *Boolean) BaseCSSClasses() []string {
	return []string{"formkit-boolean-cell-renderer"}
}

func (r *Boolean) DataSpecificClasses() []string {
	if r.Value() {
		return []string{"formkit-boolean-true"}
	}
	return []string{"formkit-boolean-false"}
}

// Copy returns a detached copy.
func (r *Boolean) Copy(idSuffix string) ui.Object {
	clone := &Boolean{Base: r.CopyRenderer(idSuffix)}
	clone.Bind(clone)
	return clone
}
