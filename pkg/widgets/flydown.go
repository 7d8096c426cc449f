package widgets

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/option"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// MessageInvalidOption is reported when a submitted value matches no option.
const MessageInvalidOption = "The %s field has an invalid selection."

// Flydown is a single choice <select> over an option.Control.
type Flydown struct {
	ui.Base
	option.Control

	// Value is the value of the selected option, nil when nothing is chosen.
	Value    any
	Required bool
	// ShowBlank renders a leading blank option titled BlankTitle.
	ShowBlank  bool
	BlankTitle string
}

// NewFlydown constructs a flydown with a blank option.
func NewFlydown(id string) *Flydown {
	f := &Flydown{ShowBlank: true}
	f.ID = id
	f.RequiresID = true
	f.Bind(f)
	return f
}

func (f *Flydown) focusable() {}

// IsRequired reports whether a choice must be made.
func (f *Flydown) IsRequired() bool { return f.Required }

// Process resolves the submitted value against the options.
func (f *Flydown) Process(data ui.FormData) error {
	if err := f.Base.Process(data); err != nil {
		return err
	}
	raw, _ := data.Value(f.ID)
	f.Value = nil
	if strings.TrimSpace(raw) == "" {
		if f.Required {
			f.AddMessage(ui.ErrorMessage(MessageRequired))
		}
		return nil
	}
	options := f.OptionsByValue(raw)
	if len(options) == 0 {
		f.AddMessage(ui.ErrorMessage(MessageInvalidOption))
		return nil
	}
	f.Value = options[0].Value
	return nil
}

// State implements ui.Stateful.
func (f *Flydown) State() any { return f.Value }

// SetState implements ui.Stateful. The state is resolved against the
// options so decoded scalars regain the option's value type.
func (f *Flydown) SetState(state any) error {
	f.Value = nil
	if state == nil {
		return nil
	}
	if options := f.OptionsByValue(state); len(options) > 0 {
		f.Value = options[0].Value
	}
	return nil
}

// Display writes the select element.
func (f *Flydown) Display(rc *ui.RenderContext) error {
	if !f.IsVisible() {
		return nil
	}
	if err := f.Base.Display(rc); err != nil {
		return err
	}
	sel := htmltag.New("select").Set("name", f.ID).SetID(f.ID).Set("required", f.Required)
	sel.AddClass("formkit-flydown")
	sel.AddClass(f.ClassNames()...)
	if err := sel.Open(rc.Writer); err != nil {
		return err
	}
	if f.ShowBlank {
		blank := htmltag.New("option").Set("value", "").SetContent(rc.T(f.BlankTitle, f.BlankTitle))
		if err := blank.Display(rc.Writer); err != nil {
			return err
		}
	}
	selected := option.ValueString(f.Value)
	for _, h := range f.Handles() {
		opt, _ := f.Option(h)
		tag := optionTag(rc, opt, f.Value != nil && opt.Selectable() && opt.ValueString() == selected)
		tag.AddClass(f.OptionClasses(h)...)
		if err := tag.Display(rc.Writer); err != nil {
			return err
		}
	}
	return sel.Close(rc.Writer)
}

func optionTag(rc *ui.RenderContext, opt option.Option, selected bool) *htmltag.Tag {
	title := rc.T(opt.Title, opt.Title)
	tag := htmltag.New("option")
	if !opt.Selectable() {
		tag.Set("value", "").Set("disabled", true)
		tag.AddClass("formkit-option-divider")
		return tag.SetContent(title, opt.ContentType)
	}
	tag.Set("value", opt.ValueString()).Set("selected", selected)
	return tag.SetContent(title, opt.ContentType)
}

// Copy returns a detached copy.
func (f *Flydown) Copy(idSuffix string) ui.Object {
	clone := &Flydown{
		Base:       f.CopyBase(idSuffix),
		Control:    f.CopyControl(),
		Value:      f.Value,
		Required:   f.Required,
		ShowBlank:  f.ShowBlank,
		BlankTitle: f.BlankTitle,
	}
	clone.Bind(clone)
	return clone
}

// TreeFlydown is a single choice <select> over a hierarchical option tree.
// Options are submitted as the dotted index path of their node, so option
// identifiers do not depend on option values.
type TreeFlydown struct {
	ui.Base

	Tree  *option.TreeNode
	Value any
	// Path is the dotted path of the selected node, empty when nothing is
	// chosen.
	Path     string
	Required bool
	// ShowBlank renders a leading blank option.
	ShowBlank bool
}

// NewTreeFlydown constructs a tree flydown over tree.
func NewTreeFlydown(id string, tree *option.TreeNode) *TreeFlydown {
	f := &TreeFlydown{Tree: tree, ShowBlank: true}
	f.ID = id
	f.RequiresID = true
	f.Bind(f)
	return f
}

func (f *TreeFlydown) focusable() {}

// IsRequired reports whether a choice must be made.
func (f *TreeFlydown) IsRequired() bool { return f.Required }

// Selected returns the chosen node.
func (f *TreeFlydown) Selected() (*option.TreeNode, bool) {
	if f.Path == "" {
		return nil, false
	}
	return f.find(f.Path)
}

// Process resolves the submitted path in the tree.
func (f *TreeFlydown) Process(data ui.FormData) error {
	if err := f.Base.Process(data); err != nil {
		return err
	}
	raw, _ := data.Value(f.ID)
	raw = strings.TrimSpace(raw)
	f.Value, f.Path = nil, ""
	if raw == "" {
		if f.Required {
			f.AddMessage(ui.ErrorMessage(MessageRequired))
		}
		return nil
	}
	node, ok := f.find(raw)
	if !ok {
		f.AddMessage(ui.ErrorMessage(MessageInvalidOption))
		return nil
	}
	f.Value = node.Value.Value
	f.Path = raw
	return nil
}

func (f *TreeFlydown) find(path string) (*option.TreeNode, bool) {
	if f.Tree == nil || path == "" {
		return nil, false
	}
	node, ok := f.Tree.Find(path)
	if !ok || !node.Value.Selectable() {
		return nil, false
	}
	return node, true
}

// State implements ui.Stateful.
func (f *TreeFlydown) State() any { return f.Path }

// SetState implements ui.Stateful. Paths that no longer address a
// selectable node clear the selection.
func (f *TreeFlydown) SetState(state any) error {
	path, ok := state.(string)
	if !ok {
		return fmt.Errorf("widgets: tree flydown %q: unsupported state %T", f.ID, state)
	}
	f.Value, f.Path = nil, ""
	if node, found := f.find(path); found {
		f.Value = node.Value.Value
		f.Path = path
	}
	return nil
}

// Display writes the select with options indented by depth.
func (f *TreeFlydown) Display(rc *ui.RenderContext) error {
	if !f.IsVisible() {
		return nil
	}
	if err := f.Base.Display(rc); err != nil {
		return err
	}
	sel := htmltag.New("select").Set("name", f.ID).SetID(f.ID).Set("required", f.Required)
	sel.AddClass("formkit-flydown", "formkit-tree-flydown")
	sel.AddClass(f.ClassNames()...)
	if err := sel.Open(rc.Writer); err != nil {
		return err
	}
	if f.ShowBlank {
		if err := htmltag.New("option").Set("value", "").SetContent("").Display(rc.Writer); err != nil {
			return err
		}
	}
	if f.Tree != nil {
		for node := range f.Tree.All() {
			if node.Parent() == nil {
				continue
			}
			opt := node.Value
			path := node.PathString()
			tag := optionTag(rc, opt, f.Path != "" && path == f.Path)
			if opt.Selectable() {
				tag.Set("value", path)
			}
			title, contentType := tag.Content()
			tag.SetContent(strings.Repeat("\u00a0\u00a0", node.Depth()-1)+title, contentType)
			if err := tag.Display(rc.Writer); err != nil {
				return err
			}
		}
	}
	return sel.Close(rc.Writer)
}

// Copy returns a detached copy sharing nothing with the original.
func (f *TreeFlydown) Copy(idSuffix string) ui.Object {
	clone := &TreeFlydown{
		Base:      f.CopyBase(idSuffix),
		Value:     f.Value,
		Path:      f.Path,
		Required:  f.Required,
		ShowBlank: f.ShowBlank,
	}
	if f.Tree != nil {
		clone.Tree = f.Tree.Copy()
	}
	clone.Bind(clone)
	return clone
}
