package core

import (
	"reflect"

	"github.com/go-graft/graft/pkg/backend"
)

// Widget is an immutable description of part of the tree. Two widgets of the
// same dynamic type and equal key are reconciled onto the same element; field
// values play no part in that decision.
type Widget interface {
	// CreateElement creates the element that will host this widget.
	CreateElement() Element
	// Key returns the widget's identity key, or nil.
	Key() Key
}

// StatelessWidget describes a subtree purely as a function of its own fields.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget creates a State object that persists across rebuilds of the
// hosting element.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// State is the mutable logic object bound to a stateful element. It is
// created and initialized during mount and disposed during unmount; it
// survives deactivation and global-key relocation in between.
type State interface {
	// InitState is called once after the state is bound to its element.
	InitState()
	// Build produces the child widget for the current configuration.
	Build(ctx BuildContext) Widget
	// DidUpdateWidget is called when the element's widget is replaced by a
	// compatible one, before the next build.
	DidUpdateWidget(oldWidget StatefulWidget)
	// DidChangeDependencies is called when an inherited value this state's
	// element depends on changes, and after reactivation with prior
	// dependencies.
	DidChangeDependencies()
	// Dispose releases resources. Called exactly once, at unmount.
	Dispose()
}

// InheritedWidget broadcasts an ambient value to its descendants.
type InheritedWidget interface {
	Widget
	// ChildWidget returns the subtree the value is provided to.
	ChildWidget() Widget
	// UpdateShouldNotify reports whether dependents must be notified after
	// this widget replaced oldWidget.
	UpdateShouldNotify(oldWidget InheritedWidget) bool
}

// AspectAwareInheritedWidget refines dependent notification: after
// UpdateShouldNotify passes, each dependent's registered aspects are checked
// individually so unaffected dependents skip their rebuild.
type AspectAwareInheritedWidget interface {
	InheritedWidget
	UpdateShouldNotifyDependent(oldWidget InheritedWidget, aspects map[any]struct{}) bool
}

// HostWidget bears a backend object. The hosting element creates the object
// at mount, keeps it synchronized on update, and attaches, moves, and
// detaches it in the backend tree as the element tree changes shape.
type HostWidget interface {
	Widget
	CreateObject(ctx BuildContext) backend.Object
	UpdateObject(ctx BuildContext, object backend.Object)
}

// BuildContext is the read surface handed to build steps.
type BuildContext interface {
	// Widget returns the widget currently hosted at this location.
	Widget() Widget
	// Owner returns the BuildOwner managing this tree.
	Owner() *BuildOwner
	// DependOnInherited registers a dependency on the nearest inherited
	// widget of the given type and returns it, or nil if no ancestor
	// provides one. A non-nil aspect narrows the dependency for providers
	// implementing AspectAwareInheritedWidget.
	DependOnInherited(widgetType reflect.Type, aspect any) InheritedWidget
	// FindAncestor walks up the tree and returns the first ancestor element
	// satisfying the predicate, or nil.
	FindAncestor(predicate func(Element) bool) Element
}

// Element is a persistent node of the tree, hosting one widget at one
// location. The element set is closed: only the four variants in this
// package (stateless, stateful, inherited, host) implement it.
type Element interface {
	BuildContext

	// Mount makes a freshly created element active under parent at slot.
	Mount(parent Element, slot any)
	// Update replaces the widget with a compatible newer one and schedules
	// a rebuild.
	Update(newWidget Widget)
	// Deactivate detaches the element from its location. It may be
	// reactivated at another location within the same pass, or unmounted at
	// pass end.
	Deactivate()
	// Activate returns a deactivated element to service at a new location.
	Activate()
	// Unmount permanently retires an inactive element.
	Unmount()
	// RebuildIfNeeded rebuilds the element if it is active and dirty, and
	// is a no-op otherwise.
	RebuildIfNeeded()
	// MarkNeedsBuild schedules this element for rebuild in the next pass.
	MarkNeedsBuild()

	// Depth is the distance from the root; every child is deeper than its
	// parent.
	Depth() int
	// Slot is the positional token assigned by the parent.
	Slot() any
	// VisitChildren calls visitor for each child until it returns false.
	VisitChildren(visitor func(Element) bool)
	// Object returns the backend object of this element, or of its nearest
	// descendant host if the element does not bear one itself.
	Object() backend.Object

	base() *elementBase
	performRebuild()
	forgetChild(child Element)
	updateSlot(newSlot any)
	didChangeDependencies()
	providerScope() map[reflect.Type]*InheritedElement
}

// canUpdate reports whether an element hosting oldWidget can be updated in
// place with newWidget: same dynamic type, equal key.
func canUpdate(oldWidget, newWidget Widget) bool {
	if oldWidget == nil || newWidget == nil {
		return false
	}
	if reflect.TypeOf(oldWidget) != reflect.TypeOf(newWidget) {
		return false
	}
	return oldWidget.Key() == newWidget.Key()
}

// sameWidget reports whether two widgets are the identical configuration, in
// which case reconciliation skips the update entirely. Pointer widgets
// compare by identity; comparable value widgets compare by value; widgets
// with uncomparable fields never match.
func sameWidget(a, b Widget) bool {
	if a == nil || b == nil {
		return false
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Kind() != reflect.Pointer {
		// Value widgets may hold interface fields whose dynamic values are
		// uncomparable; Value.Comparable checks the values, not the type.
		if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
			return false
		}
	}
	return a == b
}
