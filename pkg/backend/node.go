package backend

import (
	"fmt"
	"sort"
	"strings"
)

// Node is an in-memory Object with linked-list child storage. It is the
// reference backend used by the test harness and the scene runner; real
// embedders supply their own Object implementation.
type Node struct {
	// Kind names the node type (e.g., "box", "label").
	Kind string
	// Attrs carries author-supplied key/value payload.
	Attrs map[string]string

	parent     *Node
	firstChild *Node
	lastChild  *Node
	prev       *Node
	next       *Node
}

// NewNode creates a detached node of the given kind.
func NewNode(kind string) *Node {
	return &Node{Kind: kind}
}

// SetAttr sets an attribute value, allocating the map on first use.
func (n *Node) SetAttr(key, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
}

// Parent returns the current parent, or nil if detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// InsertChild adds child immediately after sibling. A nil after inserts at
// the front. The child must be detached.
func (n *Node) InsertChild(child, after Object) {
	c := child.(*Node)
	if c.parent != nil {
		panic(fmt.Sprintf("backend: InsertChild of attached node %q", c.Kind))
	}
	c.parent = n
	n.link(c, asNode(after))
}

// MoveChild repositions an existing child immediately after sibling.
func (n *Node) MoveChild(child, after Object) {
	c := child.(*Node)
	if c.parent != n {
		panic(fmt.Sprintf("backend: MoveChild of non-child node %q", c.Kind))
	}
	prev := asNode(after)
	if prev == c {
		return
	}
	n.unlink(c)
	n.link(c, prev)
}

// RemoveChild detaches child from this node.
func (n *Node) RemoveChild(child Object) {
	c := child.(*Node)
	if c.parent != n {
		panic(fmt.Sprintf("backend: RemoveChild of non-child node %q", c.Kind))
	}
	n.unlink(c)
	c.parent = nil
}

func asNode(obj Object) *Node {
	if obj == nil {
		return nil
	}
	return obj.(*Node)
}

func (n *Node) link(c, after *Node) {
	if after == nil {
		c.prev = nil
		c.next = n.firstChild
		if n.firstChild != nil {
			n.firstChild.prev = c
		}
		n.firstChild = c
		if n.lastChild == nil {
			n.lastChild = c
		}
		return
	}
	c.prev = after
	c.next = after.next
	if after.next != nil {
		after.next.prev = c
	}
	after.next = c
	if n.lastChild == after {
		n.lastChild = c
	}
}

func (n *Node) unlink(c *Node) {
	if c.prev != nil {
		c.prev.next = c.next
	} else {
		n.firstChild = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	} else {
		n.lastChild = c.prev
	}
	c.prev = nil
	c.next = nil
}

// Children returns the child nodes in order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.firstChild; c != nil; c = c.next {
		count++
	}
	return count
}

// Walk visits n and its descendants depth-first. Returning false from the
// visitor stops the walk.
func (n *Node) Walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.firstChild; c != nil; c = c.next {
		if !c.Walk(visit) {
			return false
		}
	}
	return true
}

// String formats the node with its attributes, e.g. `label(text="hi")`.
func (n *Node) String() string {
	if len(n.Attrs) == 0 {
		return n.Kind
	}
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString(n.Kind)
	sb.WriteString("(")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%q", k, n.Attrs[k])
	}
	sb.WriteString(")")
	return sb.String()
}

// Dump renders the subtree as an indented outline, one node per line.
func (n *Node) Dump() string {
	var sb strings.Builder
	n.dump(&sb, 0)
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.String())
	sb.WriteString("\n")
	for c := n.firstChild; c != nil; c = c.next {
		c.dump(sb, indent+1)
	}
}
