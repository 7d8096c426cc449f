package builder

import (
	"github.com/goliatone/go-formkit/pkg/cell"
	"github.com/goliatone/go-formkit/pkg/option"
	"github.com/goliatone/go-formkit/pkg/renderers"
	"github.com/goliatone/go-formkit/pkg/ui"
	"github.com/goliatone/go-formkit/pkg/view"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Built-in widget kinds.
const (
	KindForm           = "form"
	KindFrame          = "frame"
	KindField          = "field"
	KindEntry          = "entry"
	KindPassword       = "password"
	KindNumeric        = "numeric"
	KindInteger        = "integer"
	KindCheckbox       = "checkbox"
	KindFlydown        = "flydown"
	KindTreeFlydown    = "tree_flydown"
	KindCheckboxList   = "checkbox_list"
	KindCheckboxTree   = "checkbox_tree"
	KindRadioList      = "radio_list"
	KindButton         = "button"
	KindContent        = "content"
	KindTemplate       = "template"
	KindMessageDisplay = "message_display"
	KindHidden         = "hidden"
	KindTableView      = "table_view"
	KindDetailsView    = "details_view"
)

// Built-in cell renderer kinds.
const (
	RendererText     = "text"
	RendererNullText = "null_text"
	RendererBoolean  = "boolean"
	RendererNumeric  = "numeric"
	RendererLink     = "link"
	RendererImage    = "image"
	RendererTemplate = "template"
	RendererCheckbox = "checkbox"
	RendererRadio    = "radio"
)

func registerWidgets(r *Registry[WidgetFactory]) {
	r.MustRegister(KindForm, func(_ *Builder, s Spec) (ui.Widget, error) {
		f := widgets.NewForm(s.ID)
		f.Action = s.String("action")
		f.Method = s.StringOr("method", f.Method)
		f.Encoding = s.String("encoding")
		f.Autocomplete = s.BoolOr("autocomplete", true)
		return f, nil
	})
	r.MustRegister(KindFrame, func(_ *Builder, s Spec) (ui.Widget, error) {
		f := widgets.NewFrame(s.ID, s.Title)
		f.Subtitle = s.String("subtitle")
		if level := s.Int("header_level"); level > 0 {
			f.HeaderLevel = level
		}
		return f, nil
	})
	r.MustRegister(KindField, func(_ *Builder, s Spec) (ui.Widget, error) {
		f := widgets.NewFormField(s.ID, s.Title)
		f.ShowRequired = s.Bool("show_required")
		for _, note := range s.Strings("notes") {
			f.AddNote(note)
		}
		return f, nil
	})
	r.MustRegister(KindEntry, func(_ *Builder, s Spec) (ui.Widget, error) {
		e := widgets.NewEntry(s.ID)
		configureEntry(e, s)
		return e, nil
	})
	r.MustRegister(KindPassword, func(_ *Builder, s Spec) (ui.Widget, error) {
		e := widgets.NewPasswordEntry(s.ID)
		configureEntry(&e.Entry, s)
		e.AutoComplete = false
		return e, nil
	})
	r.MustRegister(KindNumeric, func(_ *Builder, s Spec) (ui.Widget, error) {
		e := widgets.NewNumericEntry(s.ID)
		configureNumeric(e, s)
		return e, nil
	})
	r.MustRegister(KindInteger, func(_ *Builder, s Spec) (ui.Widget, error) {
		e := widgets.NewIntegerEntry(s.ID)
		configureNumeric(&e.NumericEntry, s)
		return e, nil
	})
	r.MustRegister(KindCheckbox, func(_ *Builder, s Spec) (ui.Widget, error) {
		c := widgets.NewCheckbox(s.ID)
		c.TitleText = s.Title
		c.Value = s.Bool("value")
		return c, nil
	})
	r.MustRegister(KindFlydown, func(_ *Builder, s Spec) (ui.Widget, error) {
		f := widgets.NewFlydown(s.ID)
		f.Required = s.Bool("required")
		f.ShowBlank = s.BoolOr("show_blank", true)
		f.BlankTitle = s.String("blank_title")
		addOptions(&f.Control, s.Options)
		if value, ok := s.Props["value"]; ok {
			_ = f.SetState(value)
		}
		return f, nil
	})
	r.MustRegister(KindTreeFlydown, func(_ *Builder, s Spec) (ui.Widget, error) {
		root := option.NewTree(s.Title)
		addTreeOptions(root, s.Options)
		f := widgets.NewTreeFlydown(s.ID, root)
		f.Required = s.Bool("required")
		f.ShowBlank = s.BoolOr("show_blank", true)
		return f, nil
	})
	r.MustRegister(KindCheckboxTree, func(_ *Builder, s Spec) (ui.Widget, error) {
		root := option.NewTree(s.Title)
		addTreeOptions(root, s.Options)
		c := widgets.NewCheckboxTree(s.ID, root)
		c.Required = s.Bool("required")
		return c, nil
	})
	r.MustRegister(KindCheckboxList, func(_ *Builder, s Spec) (ui.Widget, error) {
		l := widgets.NewCheckboxList(s.ID)
		l.Required = s.Bool("required")
		l.ShowCheckAll = s.Bool("check_all")
		addOptions(&l.Control, s.Options)
		return l, nil
	})
	r.MustRegister(KindRadioList, func(_ *Builder, s Spec) (ui.Widget, error) {
		l := widgets.NewRadioList(s.ID)
		l.Required = s.Bool("required")
		addOptions(&l.Control, s.Options)
		return l, nil
	})
	r.MustRegister(KindButton, func(b *Builder, s Spec) (ui.Widget, error) {
		button := widgets.NewButton(s.ID)
		button.TitleText = s.Title
		button.StockID = s.StringOr("stock", widgets.StockSubmit)
		button.ConfirmationMessage = s.String("confirm")
		button.Stock = b.Stock
		return button, nil
	})
	r.MustRegister(KindContent, func(_ *Builder, s Spec) (ui.Widget, error) {
		c := widgets.NewContentBlock(s.ID, s.String("content"))
		c.ContentType = s.StringOr("content_type", ui.ContentTypeText)
		c.Sanitize = s.Bool("sanitize")
		return c, nil
	})
	r.MustRegister(KindTemplate, func(b *Builder, s Spec) (ui.Widget, error) {
		t := widgets.NewTemplateBlock(s.ID, s.String("template"), b.Engine)
		t.Data = s.Props["data"]
		return t, nil
	})
	r.MustRegister(KindMessageDisplay, func(_ *Builder, s Spec) (ui.Widget, error) {
		return widgets.NewMessageDisplay(s.ID), nil
	})
	r.MustRegister(KindHidden, func(_ *Builder, s Spec) (ui.Widget, error) {
		return widgets.NewHiddenField(s.ID, s.String("value")), nil
	})
	r.MustRegister(KindTableView, func(b *Builder, s Spec) (ui.Widget, error) {
		table := view.NewTableView(s.ID)
		table.RowIDField = s.String("row_id_field")
		table.NoRecordsMessage = s.StringOr("no_records", table.NoRecordsMessage)
		for _, columnSpec := range s.Columns {
			column := view.NewColumn(columnSpec.ID, columnSpec.Title)
			if err := b.fillContainer(&column.Container, columnSpec.Renderers); err != nil {
				return nil, err
			}
			if err := table.AddColumn(column); err != nil {
				return nil, err
			}
		}
		return table, nil
	})
	r.MustRegister(KindDetailsView, func(b *Builder, s Spec) (ui.Widget, error) {
		details := view.NewDetailsView(s.ID)
		for _, fieldSpec := range s.Columns {
			field := view.NewField(fieldSpec.ID, fieldSpec.Title)
			if err := b.fillContainer(&field.Container, fieldSpec.Renderers); err != nil {
				return nil, err
			}
			if err := details.AddField(field); err != nil {
				return nil, err
			}
		}
		return details, nil
	})
}

func configureEntry(e *widgets.Entry, s Spec) {
	e.Required = s.Bool("required")
	e.MinLength = s.Int("min_length")
	e.MaxLength = s.Int("max_length")
	e.Pattern = s.String("pattern")
	e.Size = s.Int("size")
	e.Placeholder = s.String("placeholder")
	e.ReadOnly = s.Bool("read_only")
	if value, ok := s.Props["value"]; ok && value != nil {
		e.SetValue(cell.ToString(value))
	}
}

func configureNumeric(e *widgets.NumericEntry, s Spec) {
	configureEntry(&e.Entry, s)
	e.Value = nil
	e.Minimum = s.Float("minimum")
	e.Maximum = s.Float("maximum")
	e.Locale = s.String("locale")
	e.ShowThousandsSeparator = s.BoolOr("thousands_separator", true)
	if value := s.Float("value"); value != nil {
		e.SetNumber(*value)
	}
}

func registerRenderers(r *Registry[RendererFactory]) {
	r.MustRegister(RendererText, func(_ *Builder, s RendererSpec) (cell.Renderer, error) {
		return renderers.NewText(s.ID), nil
	})
	r.MustRegister(RendererNullText, func(_ *Builder, s RendererSpec) (cell.Renderer, error) {
		return renderers.NewNullText(s.ID), nil
	})
	r.MustRegister(RendererBoolean, func(_ *Builder, s RendererSpec) (cell.Renderer, error) {
		return renderers.NewBoolean(s.ID), nil
	})
	r.MustRegister(RendererNumeric, func(_ *Builder, s RendererSpec) (cell.Renderer, error) {
		return renderers.NewNumeric(s.ID), nil
	})
	r.MustRegister(RendererLink, func(_ *Builder, s RendererSpec) (cell.Renderer, error) {
		return renderers.NewLink(s.ID), nil
	})
	r.MustRegister(RendererImage, func(_ *Builder, s RendererSpec) (cell.Renderer, error) {
		return renderers.NewImage(s.ID), nil
	})
	r.MustRegister(RendererTemplate, func(b *Builder, s RendererSpec) (cell.Renderer, error) {
		return renderers.NewTemplate(s.ID, cell.ToString(s.Props["template"]), b.Engine), nil
	})
	r.MustRegister(RendererCheckbox, func(_ *Builder, s RendererSpec) (cell.Renderer, error) {
		return renderers.NewCheckbox(s.ID), nil
	})
	r.MustRegister(RendererRadio, func(_ *Builder, s RendererSpec) (cell.Renderer, error) {
		return renderers.NewRadio(s.ID), nil
	})
}
