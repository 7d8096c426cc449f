package ui

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/assets"
)

// Widget is a tree element taking part in the init/process/display lifecycle.
type Widget interface {
	Object
	Init() error
	Process(data FormData) error
	Display(rc *RenderContext) error
	Messages() []*Message
	AddMessage(msg *Message)
}

// Node is implemented by objects owning other objects (children, composite
// widgets, cell renderers). Traversal helpers use it to reach descendants.
type Node interface {
	ChildObjects() []Object
}

// Stateful exposes a serialisable snapshot of an object's essential value.
type Stateful interface {
	State() any
	SetState(state any) error
}

// Titleable is implemented by widgets carrying a human readable title.
type Titleable interface {
	Title() string
}

// CompositeBuilder creates the composite widgets owned by a widget. Base calls
// it at most once per widget.
type CompositeBuilder interface {
	CreateCompositeWidgets() error
}

// Initializer is the optional init hook of non-widget objects such as cell
// renderers.
type Initializer interface {
	Init() error
}

// Processor is the optional process hook of non-widget objects.
type Processor interface {
	Process(data FormData) error
}

// HeadEntryProvider reports the scripts and styles an object needs.
type HeadEntryProvider interface {
	HeadEntries() *assets.Set
}

// BaseProvider exposes the lifecycle state embedded in a widget.
type BaseProvider interface {
	WidgetBase() *Base
}

type composite struct {
	name   string
	widget Widget
}

// Base holds the lifecycle state shared by all widgets. Concrete widgets embed
// it, call Bind from their constructor and call the Base hooks from their own
// Init/Process/Display.
type Base struct {
	UIObject

	// RequiresID makes Process and Display fail when ID is empty.
	RequiresID bool

	messages []*Message

	composites        []composite
	compositesCreated bool
	compositesErr     error

	initialized bool
	processed   bool
	displayed   bool
}

// Bind records self as the outer widget and re-parents owned composites.
func (b *Base) Bind(self Widget) {
	b.UIObject.Bind(self)
	for _, entry := range b.composites {
		adopt(self, entry.widget)
	}
}

// WidgetBase implements BaseProvider.
func (b *Base) WidgetBase() *Base { return b }

// IsInitialized reports whether Init ran.
func (b *Base) IsInitialized() bool { return b.initialized }

// IsProcessed reports whether Process ran.
func (b *Base) IsProcessed() bool { return b.processed }

// IsDisplayed reports whether Display ran.
func (b *Base) IsDisplayed() bool { return b.displayed }

func (b *Base) widget() Widget {
	if w, ok := b.self.(Widget); ok {
		return w
	}
	return nil
}

// Init creates and initialises composite widgets, then marks the widget
// initialised.
func (b *Base) Init() error {
	if err := b.ConfirmCompositeWidgets(); err != nil {
		return err
	}
	for _, entry := range b.composites {
		if isInitialized(entry.widget) {
			continue
		}
		if err := entry.widget.Init(); err != nil {
			return err
		}
	}
	b.initialized = true
	return nil
}

// Process initialises the widget when needed, checks the required id and
// processes composite widgets that were not processed yet.
func (b *Base) Process(data FormData) error {
	if !b.initialized {
		if w := b.widget(); w != nil {
			if err := w.Init(); err != nil {
				return err
			}
		} else if err := b.Init(); err != nil {
			return err
		}
	}
	if err := b.checkID("process"); err != nil {
		return err
	}
	for _, entry := range b.composites {
		if isProcessed(entry.widget) {
			continue
		}
		if err := entry.widget.Process(data); err != nil {
			return err
		}
	}
	b.processed = true
	return nil
}

// Display checks the required id and marks the widget displayed. Composite
// widgets are displayed by the concrete widget in its own order.
func (b *Base) Display(_ *RenderContext) error {
	if err := b.checkID("display"); err != nil {
		return err
	}
	b.displayed = true
	return nil
}

func (b *Base) checkID(op string) error {
	if b.RequiresID && strings.TrimSpace(b.ID) == "" {
		return &ConfigurationError{
			Op:      op,
			Message: "widget requires an id",
		}
	}
	return nil
}

// Messages returns the widget's own messages.
func (b *Base) Messages() []*Message {
	if len(b.messages) == 0 {
		return nil
	}
	return append([]*Message(nil), b.messages...)
}

// AddMessage attaches a message to the widget.
func (b *Base) AddMessage(msg *Message) {
	if msg != nil {
		b.messages = append(b.messages, msg)
	}
}

// ClearMessages removes the widget's own messages.
func (b *Base) ClearMessages() { b.messages = nil }

// HasOwnMessage reports whether the widget itself carries messages.
func (b *Base) HasOwnMessage() bool { return len(b.messages) > 0 }

// ConfirmCompositeWidgets runs CreateCompositeWidgets on the outer widget the
// first time it is called. Later calls return the first outcome.
func (b *Base) ConfirmCompositeWidgets() error {
	if b.compositesCreated {
		return b.compositesErr
	}
	b.compositesCreated = true
	if builder, ok := b.self.(CompositeBuilder); ok {
		b.compositesErr = builder.CreateCompositeWidgets()
	}
	return b.compositesErr
}

// AddCompositeWidget registers a named sub-widget owned by this widget.
func (b *Base) AddCompositeWidget(name string, w Widget) error {
	name = strings.TrimSpace(name)
	if name == "" || w == nil {
		return Configurationf("composite", "composite widget name and value are required")
	}
	for _, entry := range b.composites {
		if entry.name == name {
			return Configurationf("composite", "composite widget %q already exists", name)
		}
	}
	if b.self != nil {
		if err := Attach(b.self, w); err != nil {
			return err
		}
	}
	b.composites = append(b.composites, composite{name: name, widget: w})
	return nil
}

// CompositeWidget returns the composite registered under name, creating the
// composites first when needed.
func (b *Base) CompositeWidget(name string) (Widget, error) {
	if err := b.ConfirmCompositeWidgets(); err != nil {
		return nil, err
	}
	for _, entry := range b.composites {
		if entry.name == name {
			return entry.widget, nil
		}
	}
	return nil, NotFound("composite widget", name)
}

// CompositeWidgets returns the composites in registration order.
func (b *Base) CompositeWidgets() []Widget {
	_ = b.ConfirmCompositeWidgets()
	if len(b.composites) == 0 {
		return nil
	}
	out := make([]Widget, 0, len(b.composites))
	for _, entry := range b.composites {
		out = append(out, entry.widget)
	}
	return out
}

// ChildObjects implements Node for widgets owning only composites.
func (b *Base) ChildObjects() []Object {
	widgets := b.CompositeWidgets()
	if len(widgets) == 0 {
		return nil
	}
	out := make([]Object, len(widgets))
	for idx, w := range widgets {
		out[idx] = w
	}
	return out
}

// CopyBase returns a detached deep copy of the lifecycle state. Composite
// widgets are copied with the same idSuffix; they are re-parented when the
// copy is bound.
func (b *Base) CopyBase(idSuffix string) Base {
	clone := Base{
		UIObject:          b.UIObject.CopyObject(idSuffix),
		RequiresID:        b.RequiresID,
		compositesCreated: b.compositesCreated,
		compositesErr:     b.compositesErr,
		initialized:       b.initialized,
		processed:         b.processed,
		displayed:         b.displayed,
	}
	for _, msg := range b.messages {
		clone.messages = append(clone.messages, msg.Clone())
	}
	for _, entry := range b.composites {
		copied, ok := entry.widget.Copy(idSuffix).(Widget)
		if !ok {
			continue
		}
		clone.composites = append(clone.composites, composite{name: entry.name, widget: copied})
	}
	return clone
}

func isInitialized(w Widget) bool {
	if provider, ok := w.(BaseProvider); ok {
		return provider.WidgetBase().initialized
	}
	return false
}

func isProcessed(w Widget) bool {
	if provider, ok := w.(BaseProvider); ok {
		return provider.WidgetBase().processed
	}
	return false
}
