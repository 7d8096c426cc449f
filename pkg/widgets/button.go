package widgets

import (
	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// Button is a submit button. The stock preset named by StockID supplies the
// title and classes when they are not set explicitly.
type Button struct {
	ui.Base

	TitleText string
	StockID   string
	// ConfirmationMessage is rendered as data-confirm for client scripts.
	ConfirmationMessage string
	// Stock overrides DefaultStock.
	Stock *StockRegistry

	stockClasses []string
	clicked      bool
}

// NewButton constructs a button using the submit preset.
func NewButton(id string) *Button {
	b := &Button{StockID: StockSubmit}
	b.ID = id
	b.RequiresID = true
	b.Bind(b)
	return b
}

func (b *Button) focusable() {}

// Title implements ui.Titleable.
func (b *Button) Title() string { return b.TitleText }

// Init resolves the stock preset.
func (b *Button) Init() error {
	if err := b.Base.Init(); err != nil {
		return err
	}
	return b.applyStock()
}

func (b *Button) applyStock() error {
	if b.StockID == "" {
		return nil
	}
	registry := b.Stock
	if registry == nil {
		registry = DefaultStock
	}
	st, err := registry.Get(b.StockID)
	if err != nil {
		return err
	}
	if b.TitleText == "" {
		b.TitleText = st.Title
	}
	b.stockClasses = st.Classes
	return nil
}

// Process records whether this button submitted the form.
func (b *Button) Process(data ui.FormData) error {
	if err := b.Base.Process(data); err != nil {
		return err
	}
	b.clicked = data.Has(b.ID)
	return nil
}

// Clicked reports whether the button submitted the form.
func (b *Button) Clicked() bool { return b.clicked }

// Display writes the submit input.
func (b *Button) Display(rc *ui.RenderContext) error {
	if !b.IsVisible() {
		return nil
	}
	if err := b.Base.Display(rc); err != nil {
		return err
	}
	input := htmltag.New("input").
		Set("type", "submit").
		Set("name", b.ID).
		SetID(b.ID).
		Set("value", rc.T(b.TitleText, b.TitleText))
	if b.ConfirmationMessage != "" {
		input.Set("data-confirm", rc.T(b.ConfirmationMessage, b.ConfirmationMessage))
	}
	input.AddClass("formkit-button")
	input.AddClass(b.stockClasses...)
	input.AddClass(b.ClassNames()...)
	return input.Display(rc.Writer)
}

// Copy returns a detached copy.
func (b *Button) Copy(idSuffix string) ui.Object {
	clone := &Button{
		Base:                b.CopyBase(idSuffix),
		TitleText:           b.TitleText,
		StockID:             b.StockID,
		ConfirmationMessage: b.ConfirmationMessage,
		Stock:               b.Stock,
		stockClasses:        append([]string(nil), b.stockClasses...),
	}
	clone.Bind(clone)
	return clone
}
