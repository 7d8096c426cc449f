package view

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formkit/pkg/cell"
	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// Column is a table column owning the cell renderers of its cells.
type Column struct {
	ui.Base
	cell.Container

	Title       string
	HeaderClass string
}

// NewColumn constructs a column.
func NewColumn(id, title string, renderers ...cell.Renderer) *Column {
	c := &Column{Title: title}
	c.ID = id
	c.Bind(c)
	if err := c.BindContainer(c); err != nil {
		panic(err)
	}
	for _, r := range renderers {
		if err := c.AddRenderer(r); err != nil {
			panic(err)
		}
	}
	return c
}

// Init initialises the renderers.
func (c *Column) Init() error {
	if err := c.Base.Init(); err != nil {
		return err
	}
	return c.InitRenderers()
}

// Process forwards the submission to processable renderers.
func (c *Column) Process(data ui.FormData) error {
	if err := c.Base.Process(data); err != nil {
		return err
	}
	return c.ProcessRenderers(data)
}

// Display is a no-op; columns render through their view.
func (c *Column) Display(rc *ui.RenderContext) error {
	return c.Base.Display(rc)
}

// ChildObjects returns the renderers followed by composites.
func (c *Column) ChildObjects() []ui.Object {
	return append(c.RendererObjects(), c.Base.ChildObjects()...)
}

// Copy deep-copies the column, its renderers and their mappings.
func (c *Column) Copy(idSuffix string) ui.Object {
	container, err := c.CopyContainer(idSuffix)
	if err != nil {
		panic(err)
	}
	clone := &Column{
		Base:        c.CopyBase(idSuffix),
		Container:   container,
		Title:       c.Title,
		HeaderClass: c.HeaderClass,
	}
	clone.Bind(clone)
	if err := clone.BindContainer(clone); err != nil {
		panic(err)
	}
	return clone
}

// DisplayHeader writes the <th> cell.
func (c *Column) DisplayHeader(rc *ui.RenderContext) error {
	th := htmltag.New("th").Set("scope", "col")
	th.AddClass("formkit-table-view-column-header", c.HeaderClass)
	th.SetContent(rc.T(c.Title, c.Title))
	return th.Display(rc.Writer)
}

// DisplayCell applies row to the renderers and writes the <td> cell.
func (c *Column) DisplayCell(rc *ui.RenderContext, row any) error {
	if err := c.ApplyMappings(row); err != nil {
		return err
	}
	td := htmltag.New("td")
	td.AddClass(c.ClassNames()...)
	if first, err := c.FirstRenderer(); err == nil {
		td.AddClass(cell.CSSClassNames(first, c.MappingsApplied())...)
	}
	if err := td.Open(rc.Writer); err != nil {
		return err
	}
	if err := DisplayRenderers(rc, c.Renderers()); err != nil {
		return err
	}
	return td.Close(rc.Writer)
}

// DisplayRenderers renders every visible renderer in order.
func DisplayRenderers(rc *ui.RenderContext, renderers []cell.Renderer) error {
	for _, r := range renderers {
		if !r.Object().IsVisible() {
			continue
		}
		if err := r.Render(rc); err != nil {
			return fmt.Errorf("view: render %q: %w", r.Object().ID, err)
		}
	}
	return nil
}

// TableView renders Model as an HTML table with one row per model entry.
type TableView struct {
	Base

	// RowIDField names the row field written to data-row-id.
	RowIDField string
	// NoRecordsMessage is shown when Model is empty.
	NoRecordsMessage string

	columns []*Column
}

// NewTableView constructs a table view.
func NewTableView(id string, columns ...*Column) *TableView {
	v := &TableView{NoRecordsMessage: "No records"}
	v.ID = id
	v.Bind(v)
	for _, column := range columns {
		if err := v.AddColumn(column); err != nil {
			panic(err)
		}
	}
	return v
}

// AddColumn appends a column.
func (v *TableView) AddColumn(column *Column) error {
	if column == nil {
		return ui.Configurationf("column", "column is nil")
	}
	if err := ui.Attach(v, column); err != nil {
		return err
	}
	v.columns = append(v.columns, column)
	return nil
}

// Columns returns the columns in order.
func (v *TableView) Columns() []*Column {
	return append([]*Column(nil), v.columns...)
}

// Column returns the column with the given id.
func (v *TableView) Column(id string) (*Column, error) {
	for _, column := range v.columns {
		if column.ID == id {
			return column, nil
		}
	}
	return nil, ui.NotFound("column", id)
}

// ChildObjects returns the columns followed by composites.
func (v *TableView) ChildObjects() []ui.Object {
	out := make([]ui.Object, 0, len(v.columns))
	for _, column := range v.columns {
		out = append(out, column)
	}
	return append(out, v.Base.ChildObjects()...)
}

// Init initialises columns, then registers selectors.
func (v *TableView) Init() error {
	for _, column := range v.columns {
		if err := column.Init(); err != nil {
			return err
		}
	}
	return v.Base.Init()
}

// Process forwards the submission to every column.
func (v *TableView) Process(data ui.FormData) error {
	if err := v.Base.Process(data); err != nil {
		return err
	}
	for _, column := range v.columns {
		if err := column.Process(data); err != nil {
			return err
		}
	}
	return nil
}

// Display writes the table.
func (v *TableView) Display(rc *ui.RenderContext) error {
	if !v.IsVisible() {
		return nil
	}
	if err := v.Base.Display(rc); err != nil {
		return err
	}

	visible := v.visibleColumns()
	for _, column := range visible {
		rc.AddHeadEntries(column.RendererHeadEntries())
	}

	table := htmltag.New("table").SetID(v.ID)
	table.AddClass("formkit-table-view")
	table.AddClass(v.ClassNames()...)
	if err := table.Open(rc.Writer); err != nil {
		return err
	}

	if err := rc.WriteString("<thead><tr>"); err != nil {
		return err
	}
	for _, column := range visible {
		if err := column.DisplayHeader(rc); err != nil {
			return err
		}
	}
	if err := rc.WriteString("</tr></thead><tbody>"); err != nil {
		return err
	}

	if len(v.Model) == 0 {
		if err := v.displayNoRecords(rc, len(visible)); err != nil {
			return err
		}
	}
	for idx, row := range v.Model {
		if err := v.displayRow(rc, idx, row, visible); err != nil {
			return err
		}
	}

	if err := rc.WriteString("</tbody>"); err != nil {
		return err
	}
	if err := table.Close(rc.Writer); err != nil {
		return err
	}
	return v.displayInlineScripts(rc, visible)
}

func (v *TableView) displayRow(rc *ui.RenderContext, idx int, row any, columns []*Column) error {
	tr := htmltag.New("tr")
	if idx%2 == 1 {
		tr.AddClass("odd")
	}
	if v.RowIDField != "" {
		if id, err := cell.FieldValue(row, v.RowIDField); err == nil {
			tr.Set("data-row-id", cell.ToString(id))
		}
	}
	if err := tr.Open(rc.Writer); err != nil {
		return err
	}
	for _, column := range columns {
		if err := column.DisplayCell(rc, row); err != nil {
			return err
		}
	}
	return tr.Close(rc.Writer)
}

func (v *TableView) displayNoRecords(rc *ui.RenderContext, span int) error {
	if strings.TrimSpace(v.NoRecordsMessage) == "" {
		return nil
	}
	if span < 1 {
		span = 1
	}
	return rc.WriteString(fmt.Sprintf(`<tr class="formkit-table-view-no-records"><td colspan="%d">%s</td></tr>`,
		span, html.EscapeString(rc.T(v.NoRecordsMessage, v.NoRecordsMessage))))
}

func (v *TableView) displayInlineScripts(rc *ui.RenderContext, columns []*Column) error {
	var scripts []string
	for _, column := range columns {
		for _, r := range column.Renderers() {
			scripter, ok := r.(cell.InlineScripter)
			if !ok {
				continue
			}
			if script := strings.TrimSpace(scripter.InlineJavaScript()); script != "" {
				scripts = append(scripts, script)
			}
		}
	}
	if len(scripts) == 0 {
		return nil
	}
	script := htmltag.New("script")
	script.SetContent(strings.Join(scripts, "\n"), htmltag.ContentTypeXML)
	return script.Display(rc.Writer)
}

func (v *TableView) visibleColumns() []*Column {
	var out []*Column
	for _, column := range v.columns {
		if column.IsVisible() {
			out = append(out, column)
		}
	}
	return out
}

// Copy deep-copies the table and its columns.
func (v *TableView) Copy(idSuffix string) ui.Object {
	clone := &TableView{
		Base:             v.CopyView(idSuffix),
		RowIDField:       v.RowIDField,
		NoRecordsMessage: v.NoRecordsMessage,
	}
	clone.Bind(clone)
	for _, column := range v.columns {
		if err := clone.AddColumn(column.Copy(idSuffix).(*Column)); err != nil {
			panic(err)
		}
	}
	return clone
}
