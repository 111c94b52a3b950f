package core

import (
	"github.com/go-graft/graft/pkg/backend"
)

// StatelessElement hosts a StatelessWidget.
type StatelessElement struct {
	elementBase
	child Element
}

// NewStatelessElement creates an empty element. The widget is assigned by
// the framework at inflation and the owner is inherited at mount.
func NewStatelessElement() *StatelessElement {
	element := &StatelessElement{}
	element.setSelf(element)
	return element
}

func (e *StatelessElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatelessElement) Update(newWidget Widget) {
	e.updateBase(newWidget)
	e.MarkNeedsBuild()
}

func (e *StatelessElement) Unmount() {
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	e.unmountBase()
}

func (e *StatelessElement) performRebuild() {
	widget := e.widget.(StatelessWidget)
	built := e.safeBuild(func() Widget {
		return widget.Build(e)
	})
	e.child = e.updateChild(e.child, built, e.slot)
}

func (e *StatelessElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *StatelessElement) forgetChild(child Element) {
	if e.child == child {
		e.child = nil
	}
}

// updateSlot forwards the new position to the child: a stateless element
// occupies no backend position of its own.
func (e *StatelessElement) updateSlot(newSlot any) {
	e.slot = newSlot
	if e.child != nil {
		e.child.updateSlot(newSlot)
	}
}

// Object returns the backend object of the nearest descendant host.
func (e *StatelessElement) Object() backend.Object {
	if e.child == nil {
		return nil
	}
	return e.child.Object()
}
