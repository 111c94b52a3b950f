package core

import (
	"github.com/go-graft/graft/pkg/backend"
)

// updateChild reconciles one child position against a new widget:
//
//	child   newWidget  outcome
//	nil     nil        nothing
//	nil     present    inflate a fresh element
//	present nil        deactivate child
//	present matching   reposition if the slot moved, update unless the widget
//	                   is the identical configuration
//	present clashing   deactivate child, inflate fresh
func (e *elementBase) updateChild(child Element, newWidget Widget, newSlot any) Element {
	if newWidget == nil {
		if child != nil {
			e.deactivateChild(child)
		}
		return nil
	}
	if child != nil {
		cb := child.base()
		if sameWidget(cb.widget, newWidget) {
			if cb.slot != newSlot {
				child.updateSlot(newSlot)
			}
			return child
		}
		if canUpdate(cb.widget, newWidget) {
			if cb.slot != newSlot {
				child.updateSlot(newSlot)
			}
			child.Update(newWidget)
			return child
		}
		e.deactivateChild(child)
	}
	return e.inflateWidget(newWidget, newSlot)
}

// inflateWidget creates and mounts an element for newWidget. A widget
// carrying a global key that is already claimed by a compatible live element
// grafts that element in instead, preserving all of its attached state.
func (e *elementBase) inflateWidget(newWidget Widget, newSlot any) Element {
	if key, ok := newWidget.Key().(*GlobalKey); ok && key != nil {
		if newChild := e.retakeElement(key, newWidget); newChild != nil {
			activateWithParent(newChild, e.self, newSlot)
			return e.updateChild(newChild, newWidget, newSlot)
		}
	}
	newChild := newWidget.CreateElement()
	newChild.base().widget = newWidget
	newChild.Mount(e.self, newSlot)
	return newChild
}

// retakeElement steals the live holder of key for grafting under this
// element. The old parent is told to forget the child and must not touch it
// again; if the element was already detached this pass it is pulled back out
// of the inactive set.
func (e *elementBase) retakeElement(key *GlobalKey, newWidget Widget) Element {
	if e.owner == nil {
		return nil
	}
	element := e.owner.keys.elementFor(key)
	if element == nil {
		return nil
	}
	if !canUpdate(element.Widget(), newWidget) {
		return nil
	}
	if parent := element.base().parent; parent != nil {
		if StrictMode && parent == e.self {
			panic(protocolErr("Element.inflateWidget", e.self,
				"two children of one parent share "+key.String()))
		}
		parent.forgetChild(element)
		parent.base().deactivateChild(element)
	}
	e.owner.inactive.remove(element)
	return element
}

// deactivateChild hands child to the owner's inactive set. The subtree is
// deactivated recursively; it is unmounted at FinalizeTree unless a graft
// reclaims it first.
func (e *elementBase) deactivateChild(child Element) {
	child.base().parent = nil
	if e.owner != nil {
		e.owner.inactive.add(child)
	} else {
		deactivateRecursively(child)
	}
}

// activateWithParent grafts a deactivated element (and its subtree) under a
// new parent. Slots are pushed down first so host elements re-attach their
// backend objects at the right position while activating parent-first.
func activateWithParent(element Element, parent Element, newSlot any) {
	eb := element.base()
	eb.parent = parent
	eb.owner = parent.base().owner
	updateDepth(element, parent.Depth()+1)
	element.updateSlot(newSlot)
	activateRecursively(element)
}

// updateDepth restores depth(child) > depth(parent) after reparenting. Depth
// only ever grows; a monotonic depth is enough for build ordering and keeps
// relocation cheap.
func updateDepth(element Element, expected int) {
	eb := element.base()
	if eb.depth >= expected {
		return
	}
	eb.depth = expected
	element.VisitChildren(func(child Element) bool {
		updateDepth(child, expected+1)
		return true
	})
}

func activateRecursively(element Element) {
	element.Activate()
	element.VisitChildren(func(child Element) bool {
		activateRecursively(child)
		return true
	})
}

func deactivateRecursively(element Element) {
	element.Deactivate()
	element.VisitChildren(func(child Element) bool {
		deactivateRecursively(child)
		return true
	})
}

// previousObject resolves the backend object a sibling should be inserted
// after, from the slot's previous-sibling token.
func previousObject(slot any) backend.Object {
	indexed, ok := slot.(IndexedSlot)
	if !ok || indexed.Previous == nil {
		return nil
	}
	return indexed.Previous.Object()
}
