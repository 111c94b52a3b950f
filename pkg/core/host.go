package core

import (
	"github.com/go-graft/graft/pkg/backend"
)

// HostElement hosts a HostWidget and its backend object, and is the only
// element variant that touches the backend tree. Structural changes flow
// through at fixed lifecycle points: insert on mount and graft, move on slot
// change, remove on deactivation. The backend itself never diffs.
type HostElement struct {
	elementBase
	object     backend.Object
	hostParent *HostElement
	children   []Element
	forgotten  map[Element]struct{}
}

// NewHostElement creates an empty element. The widget is assigned by the
// framework at inflation and the owner is inherited at mount.
func NewHostElement() *HostElement {
	element := &HostElement{}
	element.setSelf(element)
	return element
}

// BackendObject returns the object this element owns.
func (e *HostElement) BackendObject() backend.Object {
	return e.object
}

func (e *HostElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	widget := e.widget.(HostWidget)
	e.object = widget.CreateObject(e)
	e.attachObject()
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *HostElement) Update(newWidget Widget) {
	e.updateBase(newWidget)
	e.MarkNeedsBuild()
}

func (e *HostElement) Deactivate() {
	e.detachObject()
	e.deactivateBase()
}

func (e *HostElement) Activate() {
	e.activateBase()
	e.attachObject()
}

func (e *HostElement) Unmount() {
	for _, child := range e.children {
		child.Unmount()
	}
	e.children = nil
	e.forgotten = nil
	e.unmountBase()
	e.object = nil
}

func (e *HostElement) performRebuild() {
	widget := e.widget.(HostWidget)
	widget.UpdateObject(e, e.object)

	switch typed := e.widget.(type) {
	case interface{ ChildWidgets() []Widget }:
		e.children = e.updateChildren(e.children, typed.ChildWidgets(), e.forgotten)
		e.forgotten = nil

	case interface{ ChildWidget() Widget }:
		var child Element
		if len(e.children) > 0 {
			child = e.children[0]
		}
		if child != nil && e.forgotten != nil {
			if _, gone := e.forgotten[child]; gone {
				child = nil
			}
		}
		e.forgotten = nil
		child = e.updateChild(child, typed.ChildWidget(), nil)
		if child != nil {
			e.children = []Element{child}
		} else {
			e.children = nil
		}
	}
}

func (e *HostElement) VisitChildren(visitor func(Element) bool) {
	for _, child := range e.children {
		if _, gone := e.forgotten[child]; gone {
			continue
		}
		if !visitor(child) {
			return
		}
	}
}

// forgetChild marks a stolen child so the next rebuild reconciles without
// it. The children slice is not edited in place; the forgotten set filters
// it until then.
func (e *HostElement) forgetChild(child Element) {
	if e.forgotten == nil {
		e.forgotten = make(map[Element]struct{})
	}
	e.forgotten[child] = struct{}{}
}

// updateSlot repositions this element's object under its backend parent.
// Child slots are relative to this element and are unaffected.
func (e *HostElement) updateSlot(newSlot any) {
	e.slot = newSlot
	if e.hostParent != nil {
		e.hostParent.object.MoveChild(e.object, previousObject(newSlot))
	}
}

func (e *HostElement) Object() backend.Object {
	return e.object
}

// attachObject inserts this element's object under the nearest ancestor
// host, positioned by the current slot.
func (e *HostElement) attachObject() {
	e.hostParent = e.findHostAncestor()
	if e.hostParent != nil {
		e.hostParent.object.InsertChild(e.object, previousObject(e.slot))
	}
}

// detachObject removes this element's object from the backend tree. The
// object itself is retained for reactivation.
func (e *HostElement) detachObject() {
	if e.hostParent != nil {
		e.hostParent.object.RemoveChild(e.object)
		e.hostParent = nil
	}
}

func (e *HostElement) findHostAncestor() *HostElement {
	for current := e.parent; current != nil; current = current.base().parent {
		if host, ok := current.(*HostElement); ok {
			return host
		}
	}
	return nil
}
