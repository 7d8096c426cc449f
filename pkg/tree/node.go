// Package tree provides a generic ordered n-ary tree used for hierarchical
// option sets. Each node records its ordinal position among its siblings when
// it is attached, which gives every node a dotted path that stays stable as
// long as sibling order is unchanged.
package tree

import (
	"errors"
	"iter"
	"strconv"
	"strings"
)

var (
	// ErrHasParent is returned when attaching a node that already has a parent.
	ErrHasParent = errors.New("tree: node already has a parent")
	// ErrCycle is returned when attaching a node under one of its descendants.
	ErrCycle = errors.New("tree: node cannot be attached to its own subtree")
	// ErrNotChild is returned when removing a node that is not a direct child.
	ErrNotChild = errors.New("tree: node is not a child of this node")
)

// Node is a tree node carrying a value. Children are owned; the parent link is
// a lookup path only.
type Node[V any] struct {
	Value V

	parent   *Node[V]
	children []*Node[V]
	index    int
}

// New constructs a detached node.
func New[V any](value V) *Node[V] {
	return &Node[V]{Value: value}
}

// AddChild attaches child as the last child of n and assigns its index.
func (n *Node[V]) AddChild(child *Node[V]) error {
	if child == nil {
		return errors.New("tree: child is nil")
	}
	if child.parent != nil {
		return ErrHasParent
	}
	for ancestor := n; ancestor != nil; ancestor = ancestor.parent {
		if ancestor == child {
			return ErrCycle
		}
	}
	child.parent = n
	child.index = len(n.children)
	n.children = append(n.children, child)
	return nil
}

// Add is a convenience wrapper that creates a child node for value.
func (n *Node[V]) Add(value V) *Node[V] {
	child := New(value)
	// a fresh node can neither have a parent nor be an ancestor
	_ = n.AddChild(child)
	return child
}

// RemoveChild detaches child and re-indexes the following siblings. Paths
// computed before the removal are stale afterwards.
func (n *Node[V]) RemoveChild(child *Node[V]) error {
	if child == nil || child.parent != n {
		return ErrNotChild
	}
	idx := child.index
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	for i := idx; i < len(n.children); i++ {
		n.children[i].index = i
	}
	child.parent = nil
	child.index = 0
	return nil
}

// Children returns the ordered children.
func (n *Node[V]) Children() []*Node[V] {
	out := make([]*Node[V], len(n.children))
	copy(out, n.children)
	return out
}

// Child returns the child at position idx.
func (n *Node[V]) Child(idx int) (*Node[V], bool) {
	if idx < 0 || idx >= len(n.children) {
		return nil, false
	}
	return n.children[idx], true
}

// HasChildren reports whether the node has children.
func (n *Node[V]) HasChildren() bool { return len(n.children) > 0 }

// Parent returns the parent node or nil for a root.
func (n *Node[V]) Parent() *Node[V] { return n.parent }

// Index returns the ordinal position of the node among its siblings.
func (n *Node[V]) Index() int { return n.index }

// Root returns the topmost ancestor.
func (n *Node[V]) Root() *Node[V] {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Depth returns the number of ancestors.
func (n *Node[V]) Depth() int {
	depth := 0
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// Path returns the sibling indices from the root's child down to n. The root
// has an empty path.
func (n *Node[V]) Path() []int {
	depth := n.Depth()
	if depth == 0 {
		return nil
	}
	path := make([]int, depth)
	node := n
	for i := depth - 1; i >= 0; i-- {
		path[i] = node.index
		node = node.parent
	}
	return path
}

// PathString returns the dotted form of Path, e.g. "0.2.1".
func (n *Node[V]) PathString() string {
	path := n.Path()
	if len(path) == 0 {
		return ""
	}
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

// Count returns the size of the subtree including n.
func (n *Node[V]) Count() int {
	count := 1
	for _, child := range n.children {
		count += child.Count()
	}
	return count
}

// All yields n and its descendants in pre-order.
func (n *Node[V]) All() iter.Seq[*Node[V]] {
	return func(yield func(*Node[V]) bool) {
		n.walk(yield)
	}
}

func (n *Node[V]) walk(yield func(*Node[V]) bool) bool {
	if !yield(n) {
		return false
	}
	for _, child := range n.children {
		if !child.walk(yield) {
			return false
		}
	}
	return true
}

// Find returns the node addressed by a dotted path relative to n.
func (n *Node[V]) Find(path string) (*Node[V], bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return n, true
	}
	node := n
	for _, part := range strings.Split(path, ".") {
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, false
		}
		child, ok := node.Child(idx)
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// Copy deep-copies the subtree rooted at n. The copy is detached.
func (n *Node[V]) Copy() *Node[V] {
	clone := &Node[V]{Value: n.Value}
	for _, child := range n.children {
		childCopy := child.Copy()
		childCopy.parent = clone
		childCopy.index = len(clone.children)
		clone.children = append(clone.children, childCopy)
	}
	return clone
}
