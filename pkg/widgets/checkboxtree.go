package widgets

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/htmltag"
	"github.com/goliatone/go-formkit/pkg/option"
	"github.com/goliatone/go-formkit/pkg/ui"
)

// CheckboxTree is a multiple choice list over a hierarchical option tree.
// Each checkbox submits the dotted index path of its node and is identified
// in markup by the widget id joined to that path, e.g. "topics_1.0".
type CheckboxTree struct {
	ui.Base

	Tree *option.TreeNode
	// Values holds the values of the checked nodes in tree order.
	Values []any
	// Paths holds the dotted paths of the checked nodes, aligned with Values.
	Paths    []string
	Required bool
}

// NewCheckboxTree constructs a checkbox tree over tree.
func NewCheckboxTree(id string, tree *option.TreeNode) *CheckboxTree {
	c := &CheckboxTree{Tree: tree}
	c.ID = id
	c.RequiresID = true
	c.Bind(c)
	return c
}

// IsRequired reports whether at least one node must be checked.
func (c *CheckboxTree) IsRequired() bool { return c.Required }

// InputID returns the markup id of the checkbox for node.
func (c *CheckboxTree) InputID(node *option.TreeNode) string {
	return c.ID + "_" + node.PathString()
}

// Process collects the checked nodes. Paths that address no selectable node
// are ignored.
func (c *CheckboxTree) Process(data ui.FormData) error {
	if err := c.Base.Process(data); err != nil {
		return err
	}
	c.check(data.Values(c.ID))
	if c.Required && len(c.Values) == 0 {
		c.AddMessage(ui.ErrorMessage(MessageRequired))
	}
	return nil
}

func (c *CheckboxTree) check(paths []string) {
	c.Values, c.Paths = nil, nil
	if c.Tree == nil || len(paths) == 0 {
		return
	}
	wanted := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		wanted[path] = struct{}{}
	}
	for node := range c.Tree.All() {
		if node.Parent() == nil || !node.Value.Selectable() {
			continue
		}
		path := node.PathString()
		if _, ok := wanted[path]; ok {
			c.Values = append(c.Values, node.Value.Value)
			c.Paths = append(c.Paths, path)
		}
	}
}

// IsChecked reports whether the node at path is checked.
func (c *CheckboxTree) IsChecked(path string) bool {
	for _, checked := range c.Paths {
		if checked == path {
			return true
		}
	}
	return false
}

// State implements ui.Stateful.
func (c *CheckboxTree) State() any {
	return append([]string{}, c.Paths...)
}

// SetState implements ui.Stateful.
func (c *CheckboxTree) SetState(state any) error {
	paths, err := stringSlice(state)
	if err != nil {
		return fmt.Errorf("widgets: checkbox tree %q: %w", c.ID, err)
	}
	c.check(paths)
	return nil
}

// Display writes nested lists of checkboxes following the tree.
func (c *CheckboxTree) Display(rc *ui.RenderContext) error {
	if !c.IsVisible() {
		return nil
	}
	if err := c.Base.Display(rc); err != nil {
		return err
	}
	div := htmltag.New("div").SetID(c.ID)
	div.AddClass("formkit-checkbox-tree")
	div.AddClass(c.ClassNames()...)
	if err := div.Open(rc.Writer); err != nil {
		return err
	}
	if c.Tree != nil {
		if err := c.displayBranch(rc, c.Tree); err != nil {
			return err
		}
	}
	return div.Close(rc.Writer)
}

func (c *CheckboxTree) displayBranch(rc *ui.RenderContext, parent *option.TreeNode) error {
	if !parent.HasChildren() {
		return nil
	}
	if err := rc.WriteString("<ul>"); err != nil {
		return err
	}
	for _, node := range parent.Children() {
		opt := node.Value
		title := rc.T(opt.Title, opt.Title)
		li := htmltag.New("li")
		if !opt.Selectable() {
			li.AddClass("formkit-option-divider")
		}
		if err := li.Open(rc.Writer); err != nil {
			return err
		}
		if opt.Selectable() {
			path := node.PathString()
			inputID := c.InputID(node)
			input := htmltag.New("input").
				Set("type", "checkbox").
				Set("name", c.ID+"[]").
				SetID(inputID).
				Set("value", path).
				Set("checked", c.IsChecked(path))
			if err := input.Display(rc.Writer); err != nil {
				return err
			}
			label := htmltag.New("label").Set("for", inputID).SetContent(title, opt.ContentType)
			if err := label.Display(rc.Writer); err != nil {
				return err
			}
		} else if err := htmltag.New("span").SetContent(title, opt.ContentType).Display(rc.Writer); err != nil {
			return err
		}
		if err := c.displayBranch(rc, node); err != nil {
			return err
		}
		if err := li.Close(rc.Writer); err != nil {
			return err
		}
	}
	return rc.WriteString("</ul>")
}

// Copy returns a detached copy.
func (c *CheckboxTree) Copy(idSuffix string) ui.Object {
	clone := &CheckboxTree{
		Base:     c.CopyBase(idSuffix),
		Values:   append([]any(nil), c.Values...),
		Paths:    append([]string(nil), c.Paths...),
		Required: c.Required,
	}
	if c.Tree != nil {
		clone.Tree = c.Tree.Copy()
	}
	clone.Bind(clone)
	return clone
}
