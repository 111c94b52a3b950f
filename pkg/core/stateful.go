package core

import (
	"github.com/go-graft/graft/pkg/backend"
)

// StatefulElement hosts a StatefulWidget and its State. The state is created
// and initialized during Mount and disposed during Unmount; deactivation and
// relocation leave it untouched, so resources survive a same-pass graft.
type StatefulElement struct {
	elementBase
	child Element
	state State
}

// NewStatefulElement creates an empty element. The widget is assigned by
// the framework at inflation and the owner is inherited at mount.
func NewStatefulElement() *StatefulElement {
	element := &StatefulElement{}
	element.setSelf(element)
	return element
}

// State returns the state object bound to this element.
func (e *StatefulElement) State() State {
	return e.state
}

func (e *StatefulElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	widget := e.widget.(StatefulWidget)
	e.state = widget.CreateState()
	if setter, ok := e.state.(interface{ SetElement(*StatefulElement) }); ok {
		setter.SetElement(e)
	} else if setter, ok := e.state.(interface{ setElement(*StatefulElement) }); ok {
		setter.setElement(e)
	}
	e.state.InitState()
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatefulElement) Update(newWidget Widget) {
	oldWidget := e.widget.(StatefulWidget)
	e.updateBase(newWidget)
	e.state.DidUpdateWidget(oldWidget)
	e.MarkNeedsBuild()
}

func (e *StatefulElement) Deactivate() {
	if hook, ok := e.state.(interface{ Deactivate() }); ok {
		hook.Deactivate()
	}
	e.deactivateBase()
}

func (e *StatefulElement) Activate() {
	e.activateBase()
	if hook, ok := e.state.(interface{ Activate() }); ok {
		hook.Activate()
	}
}

func (e *StatefulElement) Unmount() {
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	e.unmountBase()
	if e.state != nil {
		e.state.Dispose()
		e.state = nil
	}
}

func (e *StatefulElement) performRebuild() {
	built := e.safeBuild(func() Widget {
		return e.state.Build(e)
	})
	e.child = e.updateChild(e.child, built, e.slot)
}

func (e *StatefulElement) didChangeDependencies() {
	if e.state != nil {
		e.state.DidChangeDependencies()
	}
	e.MarkNeedsBuild()
}

func (e *StatefulElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *StatefulElement) forgetChild(child Element) {
	if e.child == child {
		e.child = nil
	}
}

func (e *StatefulElement) updateSlot(newSlot any) {
	e.slot = newSlot
	if e.child != nil {
		e.child.updateSlot(newSlot)
	}
}

// Object returns the backend object of the nearest descendant host.
func (e *StatefulElement) Object() backend.Object {
	if e.child == nil {
		return nil
	}
	return e.child.Object()
}
