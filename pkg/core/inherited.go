package core

import (
	"reflect"

	"github.com/go-graft/graft/pkg/backend"
)

// dependOnAllAspects is a sentinel aspect meaning the dependent cares about
// every change, not just specific aspects.
var dependOnAllAspects = &struct{}{}

// InheritedElement hosts an [InheritedWidget] and tracks which descendants
// depend on it.
//
// Descendants do not walk the tree to find providers. Every element receives
// its parent's {widget type -> provider} snapshot at mount and activation,
// and an InheritedElement overrides its own entry before handing the
// snapshot down; [BuildContext.DependOnInherited] is a map lookup plus a
// registration in this element's dependent set.
//
// # Aspect-Based Tracking
//
// A dependent registering with a non-nil aspect is stored with that aspect.
// On update, after [InheritedWidget.UpdateShouldNotify] passes, a widget
// implementing [AspectAwareInheritedWidget] is consulted per dependent so
// only those whose registered aspects changed are rebuilt.
//
// Aspect sets only grow during an element's lifetime. If a widget stops
// depending on an aspect across rebuilds the old aspect remains registered;
// this can cause extra rebuilds but never a missed one.
type InheritedElement struct {
	elementBase
	child      Element
	dependents map[Element]map[any]struct{}
	scope      map[reflect.Type]*InheritedElement
}

// NewInheritedElement creates an empty element. The widget is assigned by
// the framework at inflation and the owner is inherited at mount.
func NewInheritedElement() *InheritedElement {
	element := &InheritedElement{
		dependents: make(map[Element]map[any]struct{}),
	}
	element.setSelf(element)
	return element
}

func (e *InheritedElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	e.rebuildScope()
	e.dirty = true
	e.RebuildIfNeeded()
}

// rebuildScope extends the inherited snapshot with this provider's own entry.
// The parent's map is shared until a provider needs to override, so a chain
// of non-provider elements costs nothing.
func (e *InheritedElement) rebuildScope() {
	scope := make(map[reflect.Type]*InheritedElement, len(e.inherited)+1)
	for widgetType, provider := range e.inherited {
		scope[widgetType] = provider
	}
	scope[normalizeWidgetType(reflect.TypeOf(e.widget))] = e
	e.scope = scope
}

func (e *InheritedElement) providerScope() map[reflect.Type]*InheritedElement {
	return e.scope
}

func (e *InheritedElement) Update(newWidget Widget) {
	oldWidget := e.widget.(InheritedWidget)
	e.updateBase(newWidget)
	newInherited := newWidget.(InheritedWidget)

	// UpdateShouldNotify is the coarse gate; aspect checks refine it.
	if newInherited.UpdateShouldNotify(oldWidget) {
		e.notifyDependents(oldWidget, newInherited)
	}
	e.MarkNeedsBuild()
}

func (e *InheritedElement) notifyDependents(oldWidget, newWidget InheritedWidget) {
	aspectAware, hasAspects := newWidget.(AspectAwareInheritedWidget)
	for dependent, aspects := range e.dependents {
		if hasAspects {
			if _, dependsOnAll := aspects[dependOnAllAspects]; !dependsOnAll {
				if len(aspects) > 0 && !aspectAware.UpdateShouldNotifyDependent(oldWidget, aspects) {
					continue
				}
			}
		}
		dependent.didChangeDependencies()
	}
}

func (e *InheritedElement) Activate() {
	e.activateBase()
	e.rebuildScope()
}

func (e *InheritedElement) Unmount() {
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	e.unmountBase()
	e.dependents = nil
	e.scope = nil
}

func (e *InheritedElement) performRebuild() {
	inherited := e.widget.(InheritedWidget)
	e.child = e.updateChild(e.child, inherited.ChildWidget(), e.slot)
}

func (e *InheritedElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *InheritedElement) forgetChild(child Element) {
	if e.child == child {
		e.child = nil
	}
}

func (e *InheritedElement) updateSlot(newSlot any) {
	e.slot = newSlot
	if e.child != nil {
		e.child.updateSlot(newSlot)
	}
}

// Object returns the backend object of the nearest descendant host.
func (e *InheritedElement) Object() backend.Object {
	if e.child == nil {
		return nil
	}
	return e.child.Object()
}

// addDependent registers an element as depending on this provider. A nil
// aspect records the depend-on-all sentinel.
func (e *InheritedElement) addDependent(dependent Element, aspect any) {
	if e.dependents == nil {
		e.dependents = make(map[Element]map[any]struct{})
	}
	aspects := e.dependents[dependent]
	if aspects == nil {
		aspects = make(map[any]struct{})
		e.dependents[dependent] = aspects
	}
	if aspect != nil {
		aspects[aspect] = struct{}{}
	} else {
		aspects[dependOnAllAspects] = struct{}{}
	}
}

// removeDependent severs the link, called when the dependent deactivates.
// The per-dependent value is discarded with it.
func (e *InheritedElement) removeDependent(dependent Element) {
	delete(e.dependents, dependent)
}

// InheritedOf finds the nearest provider of widget type T and registers the
// calling element as a dependent. The second result is false when no
// ancestor provides T.
//
//	theme, ok := core.InheritedOf[AppTheme](ctx, nil)
func InheritedOf[T InheritedWidget](ctx BuildContext, aspect any) (T, bool) {
	found := ctx.DependOnInherited(reflect.TypeOf((*T)(nil)).Elem(), aspect)
	if found == nil {
		var zero T
		return zero, false
	}
	return found.(T), true
}
