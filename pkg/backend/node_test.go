package backend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func kinds(n *Node) []string {
	var out []string
	for _, c := range n.Children() {
		out = append(out, c.Kind)
	}
	return out
}

func TestInsertChildFront(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")

	root.InsertChild(a, nil)
	root.InsertChild(b, nil)

	require.Equal(t, []string{"b", "a"}, kinds(root))
	require.Same(t, root, a.Parent())
	require.Same(t, root, b.Parent())
}

func TestInsertChildAfterSibling(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")

	root.InsertChild(a, nil)
	root.InsertChild(b, a)
	root.InsertChild(c, a)

	require.Equal(t, []string{"a", "c", "b"}, kinds(root))
}

func TestMoveChild(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	root.InsertChild(a, nil)
	root.InsertChild(b, a)
	root.InsertChild(c, b)

	root.MoveChild(c, nil)
	require.Equal(t, []string{"c", "a", "b"}, kinds(root))

	root.MoveChild(a, b)
	require.Equal(t, []string{"c", "b", "a"}, kinds(root))

	// Moving after itself is a no-op.
	root.MoveChild(b, b)
	require.Equal(t, []string{"c", "b", "a"}, kinds(root))
}

func TestRemoveChild(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	root.InsertChild(a, nil)
	root.InsertChild(b, a)

	root.RemoveChild(a)
	require.Equal(t, []string{"b"}, kinds(root))
	require.Nil(t, a.Parent())

	root.RemoveChild(b)
	require.Empty(t, kinds(root))
	require.Equal(t, 0, root.ChildCount())
}

func TestRemovedChildReinsertable(t *testing.T) {
	root := NewNode("root")
	other := NewNode("other")
	a := NewNode("a")
	root.InsertChild(a, nil)
	root.RemoveChild(a)
	other.InsertChild(a, nil)

	require.Same(t, other, a.Parent())
	require.Equal(t, []string{"a"}, kinds(other))
}

func TestInsertAttachedPanics(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	root.InsertChild(a, nil)

	require.Panics(t, func() { root.InsertChild(a, nil) })
	require.Panics(t, func() { NewNode("x").RemoveChild(a) })
	require.Panics(t, func() { NewNode("x").MoveChild(a, nil) })
}

func TestWalkAndDump(t *testing.T) {
	root := NewNode("root")
	box := NewNode("box")
	label := NewNode("label")
	label.SetAttr("text", "hi")
	root.InsertChild(box, nil)
	box.InsertChild(label, nil)

	var visited []string
	root.Walk(func(n *Node) bool {
		visited = append(visited, n.Kind)
		return true
	})
	require.Equal(t, []string{"root", "box", "label"}, visited)

	require.Equal(t, "root\n  box\n    label(text=\"hi\")\n", root.Dump())
}
