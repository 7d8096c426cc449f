package renderers

import (
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/cell"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// Numeric renders value with the locale's grouping and decimal separators.
// A negative precision keeps integers whole and prints other values with the
// shortest exact representation, capped at six decimals.
type Numeric struct {
	cell.Base
}

// NewNumeric constructs a numeric renderer.
func NewNumeric(id string) *Numeric {
	r := &Numeric{}
	r.ID = id
	r.Bind(r)
	r.Properties().Declare(PropValue, nil)
	r.Properties().Declare("precision", -1)
	r.Properties().Declare("null_display_value", "")
	return r
}

// Display formats the current value for rc's locale.
func (r *Numeric) Display(rc *ui.RenderContext) string {
	value, _ := r.Properties().Get(PropValue)
	number, ok := cell.ToFloat(value)
	if value == nil || !ok {
		return r.Properties().String("null_display_value")
	}
	formatter := rc.NumberFormatter()
	precision := r.Properties().Int("precision")
	if precision < 0 {
		if number == math.Trunc(number) && math.Abs(number) < 1<<53 {
			return formatter.FormatInt(int64(number))
		}
		precision = 0
		if plain := strconv.FormatFloat(number, 'f', -1, 64); strings.Contains(plain, ".") {
			precision = len(plain) - strings.Index(plain, ".") - 1
		}
		if precision > 6 {
			precision = 6
		}
	}
	return formatter.FormatFloat(number, precision)
}

// Render writes the formatted value.
func (r *Numeric) Render(rc *ui.RenderContext) error {
	return rc.WriteString(html.EscapeString(r.Display(rc)))
}

func (r *Numeric) BaseCSSClasses() []string {
	return []string{"formkit-numeric-cell-renderer"}
}

// Copy returns a detached copy.
func (r *Numeric) Copy(idSuffix string) ui.Object {
	clone := &Numeric{Base: r.CopyRenderer(idSuffix)}
	clone.Bind(clone)
	return clone
}
