package view

import (
	"github.com/goliatone/go-formkit/pkg/cell"
	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// Field is one label/value row of a DetailsView.
type Field struct {
	ui.Base
	cell.Container

	Title string
}

// NewField constructs a details field.
func NewField(id, title string, renderers ...cell.Renderer) *Field {
	f := &Field{Title: title}
	f.ID = id
	f.Bind(f)
	if err := f.BindContainer(f); err != nil {
		panic(err)
	}
	for _, r := range renderers {
		if err := f.AddRenderer(r); err != nil {
			panic(err)
		}
	}
	return f
}

// Init initialises the renderers.
func (f *Field) Init() error {
	if err := f.Base.Init(); err != nil {
		return err
	}
	return f.InitRenderers()
}

// Process forwards the submission to processable renderers.
func (f *Field) Process(data ui.FormData) error {
	if err := f.Base.Process(data); err != nil {
		return err
	}
	return f.ProcessRenderers(data)
}

// ChildObjects returns the renderers followed by composites.
func (f *Field) ChildObjects() []ui.Object {
	return append(f.RendererObjects(), f.Base.ChildObjects()...)
}

// CSSClassNames returns the classes of the field row. Data-specific classes
// of the first renderer are only consulted once a row was applied.
func (f *Field) CSSClassNames(odd bool) []string {
	classes := []string{"formkit-details-view-field"}
	if odd {
		classes = append(classes, "odd")
	}
	classes = append(classes, f.ClassNames()...)
	first, err := f.FirstRenderer()
	if err != nil {
		return classes
	}
	if !first.Sensitive() {
		classes = append(classes, "formkit-insensitive")
	}
	if f.MappingsApplied() {
		if data, ok := first.(cell.DataClasses); ok {
			classes = append(classes, data.DataSpecificClasses()...)
		}
	}
	return classes
}

// DisplayRow applies row and writes the <tr> for this field.
func (f *Field) DisplayRow(rc *ui.RenderContext, row any, odd bool) error {
	if err := f.ApplyMappings(row); err != nil {
		return err
	}
	tr := htmltag.New("tr")
	tr.AddClass(f.CSSClassNames(odd)...)
	if err := tr.Open(rc.Writer); err != nil {
		return err
	}
	th := htmltag.New("th").Set("scope", "row")
	th.AddClass("formkit-details-view-field-title")
	th.SetContent(rc.T(f.Title, f.Title))
	if err := th.Display(rc.Writer); err != nil {
		return err
	}
	td := htmltag.New("td")
	if first, err := f.FirstRenderer(); err == nil {
		td.AddClass(cell.CSSClassNames(first, f.MappingsApplied())...)
	}
	if err := td.Open(rc.Writer); err != nil {
		return err
	}
	if err := DisplayRenderers(rc, f.Renderers()); err != nil {
		return err
	}
	if err := td.Close(rc.Writer); err != nil {
		return err
	}
	return tr.Close(rc.Writer)
}

// Copy deep-copies the field, its renderers and their mappings.
func (f *Field) Copy(idSuffix string) ui.Object {
	container, err := f.CopyContainer(idSuffix)
	if err != nil {
		panic(err)
	}
	clone := &Field{Base: f.CopyBase(idSuffix), Container: container, Title: f.Title}
	clone.Bind(clone)
	if err := clone.BindContainer(clone); err != nil {
		panic(err)
	}
	return clone
}

// DetailsView renders a single data row as label/value pairs.
type DetailsView struct {
	Base

	// Data is the row displayed by the view.
	Data any

	fields []*Field
}

// NewDetailsView constructs a details view.
func NewDetailsView(id string, fields ...*Field) *DetailsView {
	v := &DetailsView{}
	v.ID = id
	v.Bind(v)
	for _, field := range fields {
		if err := v.AddField(field); err != nil {
			panic(err)
		}
	}
	return v
}

// AddField appends a field.
func (v *DetailsView) AddField(field *Field) error {
	if field == nil {
		return ui.Configurationf("field", "field is nil")
	}
	if err := ui.Attach(v, field); err != nil {
		return err
	}
	v.fields = append(v.fields, field)
	return nil
}

// Fields returns the fields in order.
func (v *DetailsView) Fields() []*Field {
	return append([]*Field(nil), v.fields...)
}

// Field returns the field with the given id.
func (v *DetailsView) Field(id string) (*Field, error) {
	for _, field := range v.fields {
		if field.ID == id {
			return field, nil
		}
	}
	return nil, ui.NotFound("field", id)
}

// ChildObjects returns the fields followed by composites.
func (v *DetailsView) ChildObjects() []ui.Object {
	out := make([]ui.Object, 0, len(v.fields))
	for _, field := range v.fields {
		out = append(out, field)
	}
	return append(out, v.Base.ChildObjects()...)
}

// Init initialises fields, then registers selectors.
func (v *DetailsView) Init() error {
	for _, field := range v.fields {
		if err := field.Init(); err != nil {
			return err
		}
	}
	return v.Base.Init()
}

// Process forwards the submission to every field.
func (v *DetailsView) Process(data ui.FormData) error {
	if err := v.Base.Process(data); err != nil {
		return err
	}
	for _, field := range v.fields {
		if err := field.Process(data); err != nil {
			return err
		}
	}
	return nil
}

// Display writes the details table. Without data nothing is rendered.
func (v *DetailsView) Display(rc *ui.RenderContext) error {
	if !v.IsVisible() {
		return nil
	}
	if err := v.Base.Display(rc); err != nil {
		return err
	}
	if v.Data == nil {
		return nil
	}

	table := htmltag.New("table").SetID(v.ID)
	table.AddClass("formkit-details-view")
	table.AddClass(v.ClassNames()...)
	if err := table.Open(rc.Writer); err != nil {
		return err
	}
	if err := rc.WriteString("<tbody>"); err != nil {
		return err
	}
	odd := false
	for _, field := range v.fields {
		if !field.IsVisible() {
			continue
		}
		rc.AddHeadEntries(field.RendererHeadEntries())
		if err := field.DisplayRow(rc, v.Data, odd); err != nil {
			return err
		}
		odd = !odd
	}
	if err := rc.WriteString("</tbody>"); err != nil {
		return err
	}
	return table.Close(rc.Writer)
}

// Copy deep-copies the view and its fields.
func (v *DetailsView) Copy(idSuffix string) ui.Object {
	clone := &DetailsView{Base: v.CopyView(idSuffix), Data: v.Data}
	clone.Bind(clone)
	for _, field := range v.fields {
		if err := clone.AddField(field.Copy(idSuffix).(*Field)); err != nil {
			panic(err)
		}
	}
	return clone
}
