// Package backend defines the hand-off surface between the element tree and
// whatever mirrors it: a render tree, a DOM, a terminal buffer. The
// reconciler drives these calls at the correct lifecycle points; the backend
// never diffs anything itself.
package backend

// Object is a node in the backend tree. Children are addressed by their
// previous sibling so a linked-list implementation can insert and move in
// O(1) per operation.
type Object interface {
	// InsertChild adds child immediately after the given sibling.
	// A nil after means insert at the front.
	InsertChild(child, after Object)
	// MoveChild repositions an existing child immediately after the given
	// sibling. A nil after means move to the front.
	MoveChild(child, after Object)
	// RemoveChild detaches child from this object.
	RemoveChild(child Object)
}
