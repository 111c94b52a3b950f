package core

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-graft/graft/pkg/errors"
)

// lifecycleState tracks where an element is in its life.
//
// initial -> active (mount) -> inactive (deactivate) -> active (activate)
//                                                    -> defunct (unmount)
type lifecycleState int

const (
	lifecycleInitial lifecycleState = iota
	lifecycleActive
	lifecycleInactive
	lifecycleDefunct
)

func (s lifecycleState) String() string {
	switch s {
	case lifecycleInitial:
		return "initial"
	case lifecycleActive:
		return "active"
	case lifecycleInactive:
		return "inactive"
	case lifecycleDefunct:
		return "defunct"
	default:
		return "invalid"
	}
}

// elementBase carries the state shared by every element variant. Variants
// embed it and route internal framework calls through the self reference so
// overridden methods dispatch correctly.
type elementBase struct {
	widget Widget
	parent Element
	self   Element
	owner  *BuildOwner
	depth  int
	slot   any
	phase  lifecycleState

	dirty       bool
	inDirtyList bool

	// inherited is the ambient provider snapshot handed down by the parent
	// at mount or activation. dependencies lists the providers this element
	// actually read; it is retained across deactivation so reactivation
	// knows a resync rebuild is due.
	inherited                map[reflect.Type]*InheritedElement
	dependencies             map[*InheritedElement]struct{}
	hadUnsatisfiedDependency bool
}

func (e *elementBase) base() *elementBase { return e }

func (e *elementBase) Widget() Widget     { return e.widget }
func (e *elementBase) Owner() *BuildOwner { return e.owner }
func (e *elementBase) Depth() int         { return e.depth }
func (e *elementBase) Slot() any          { return e.slot }

func (e *elementBase) setSelf(self Element) { e.self = self }

// mountBase performs the variant-independent half of Mount: location
// assignment, owner inheritance, global-key registration, and the ambient
// snapshot.
func (e *elementBase) mountBase(parent Element, slot any) {
	if e.phase != lifecycleInitial {
		panic(protocolErr("Element.Mount", e.self, fmt.Sprintf("mount of %s element", e.phase)))
	}
	if parent != nil {
		pb := parent.base()
		if pb.phase != lifecycleActive {
			panic(protocolErr("Element.Mount", e.self, fmt.Sprintf("parent is %s, not active", pb.phase)))
		}
		e.owner = pb.owner
		e.depth = pb.depth + 1
	}
	e.parent = parent
	e.slot = slot
	e.phase = lifecycleActive
	if key, ok := e.widget.Key().(*GlobalKey); ok && key != nil && e.owner != nil {
		e.owner.keys.register(key, e.self)
	}
	e.updateInheritance()
}

// updateBase performs the variant-independent half of Update.
func (e *elementBase) updateBase(newWidget Widget) {
	if e.phase != lifecycleActive {
		panic(protocolErr("Element.Update", e.self, fmt.Sprintf("update of %s element", e.phase)))
	}
	if StrictMode && !canUpdate(e.widget, newWidget) {
		panic(protocolErr("Element.Update", e.self,
			fmt.Sprintf("incompatible widget %s", describeWidget(newWidget))))
	}
	e.widget = newWidget
}

// deactivateBase severs provider links and marks the element inactive. The
// dependency set is retained so a later Activate can force a resync rebuild.
func (e *elementBase) deactivateBase() {
	if e.phase != lifecycleActive {
		panic(protocolErr("Element.Deactivate", e.self, fmt.Sprintf("deactivate of %s element", e.phase)))
	}
	for provider := range e.dependencies {
		provider.removeDependent(e.self)
	}
	e.inherited = nil
	e.phase = lifecycleInactive
}

// activateBase returns an inactive element to service. Depth, parent, and
// slot have already been fixed up by the graft path; this restores the
// ambient snapshot and forces a rebuild when the element had dependencies
// before deactivation, since those values may have changed while detached.
func (e *elementBase) activateBase() {
	if e.phase != lifecycleInactive {
		panic(protocolErr("Element.Activate", e.self, fmt.Sprintf("activate of %s element", e.phase)))
	}
	hadDependencies := len(e.dependencies) > 0 || e.hadUnsatisfiedDependency
	e.phase = lifecycleActive
	clear(e.dependencies)
	e.hadUnsatisfiedDependency = false
	e.updateInheritance()
	if e.dirty && e.owner != nil && e.self != nil {
		e.owner.ScheduleBuild(e.self)
	}
	if hadDependencies {
		e.self.didChangeDependencies()
	}
}

// unmountBase retires the element permanently and releases its identity.
func (e *elementBase) unmountBase() {
	if e.phase != lifecycleInactive {
		panic(protocolErr("Element.Unmount", e.self, fmt.Sprintf("unmount of %s element", e.phase)))
	}
	e.phase = lifecycleDefunct
	if key, ok := e.widget.Key().(*GlobalKey); ok && key != nil && e.owner != nil {
		e.owner.keys.unregister(key, e.self)
	}
	e.dependencies = nil
	e.inherited = nil
}

// Default variant hooks; stateful and host elements override these.

func (e *elementBase) Deactivate() { e.deactivateBase() }
func (e *elementBase) Activate()   { e.activateBase() }

func (e *elementBase) didChangeDependencies() {
	e.MarkNeedsBuild()
}

func (e *elementBase) updateSlot(newSlot any) {
	e.slot = newSlot
}

func (e *elementBase) forgetChild(child Element) {}

func (e *elementBase) providerScope() map[reflect.Type]*InheritedElement {
	return e.inherited
}

func (e *elementBase) updateInheritance() {
	if e.parent != nil {
		e.inherited = e.parent.providerScope()
	} else {
		e.inherited = nil
	}
}

// MarkNeedsBuild schedules a rebuild. Legal on active elements only, and
// during a pass only from within the subtree currently being built;
// violations are fatal rather than queued.
func (e *elementBase) MarkNeedsBuild() {
	if e.phase == lifecycleDefunct {
		panic(protocolErr("Element.MarkNeedsBuild", e.self, "element is defunct"))
	}
	if e.phase != lifecycleActive {
		return
	}
	if StrictMode && e.owner != nil {
		e.owner.checkMarkNeedsBuild(e.self)
	}
	if e.dirty {
		return
	}
	e.dirty = true
	if e.owner != nil && e.self != nil {
		e.owner.ScheduleBuild(e.self)
	}
}

// RebuildIfNeeded runs the variant's build step if the element is active and
// dirty. A pending rebuild on an element that was deactivated before the
// pass reached it is silently dropped here.
func (e *elementBase) RebuildIfNeeded() {
	if e.phase == lifecycleDefunct {
		panic(protocolErr("Element.RebuildIfNeeded", e.self, "rebuild of defunct element"))
	}
	if e.phase != lifecycleActive || !e.dirty {
		return
	}
	e.dirty = false
	e.self.performRebuild()
}

func (e *elementBase) FindAncestor(predicate func(Element) bool) Element {
	for current := e.parent; current != nil; current = current.base().parent {
		if predicate(current) {
			return current
		}
	}
	return nil
}

// DependOnInherited looks the provider up in the mount-time snapshot and
// registers this element as a dependent.
func (e *elementBase) DependOnInherited(widgetType reflect.Type, aspect any) InheritedWidget {
	provider := e.inherited[normalizeWidgetType(widgetType)]
	if provider == nil {
		e.hadUnsatisfiedDependency = true
		return nil
	}
	if e.dependencies == nil {
		e.dependencies = make(map[*InheritedElement]struct{})
	}
	e.dependencies[provider] = struct{}{}
	provider.addDependent(e.self, aspect)
	return provider.widget.(InheritedWidget)
}

func normalizeWidgetType(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// safeBuild executes a build function with panic recovery. A failing build
// is reported and replaced by an error placeholder so the rest of the pass
// completes; the failure never propagates past the pass boundary.
func (e *elementBase) safeBuild(buildFn func() Widget) Widget {
	var built Widget
	var buildErr *errors.BuildError

	func() {
		defer func() {
			if r := recover(); r != nil {
				buildErr = &errors.BuildError{
					Widget:     describeWidget(e.widget),
					Element:    reflect.TypeOf(e.self).String(),
					Recovered:  r,
					StackTrace: errors.CaptureStack(),
					Timestamp:  time.Now(),
				}
			}
		}()
		built = buildFn()
	}()

	if buildErr != nil {
		errors.ReportBuildError(buildErr)

		if boundary := e.findErrorBoundary(); boundary != nil {
			boundary.CaptureError(buildErr)
			// The boundary handles display; render nothing here.
			return nil
		}

		if builder := GetErrorWidgetBuilder(); builder != nil {
			if errWidget := builder(buildErr); errWidget != nil {
				return errWidget
			}
		}

		return errorPlaceholder{err: buildErr}
	}
	return built
}

// findErrorBoundary searches ancestors for an error boundary, implemented by
// either the hosted widget or a stateful element's state.
func (e *elementBase) findErrorBoundary() ErrorBoundaryCapture {
	for current := e.parent; current != nil; current = current.base().parent {
		if stateful, ok := current.(*StatefulElement); ok {
			if capture, ok := stateful.state.(ErrorBoundaryCapture); ok {
				return capture
			}
		}
		if capture, ok := current.Widget().(ErrorBoundaryCapture); ok {
			return capture
		}
	}
	return nil
}

func protocolErr(op string, element Element, detail string) *errors.ProtocolError {
	return &errors.ProtocolError{
		Op:      op,
		Element: describeElement(element),
		Detail:  detail,
	}
}

func describeElement(element Element) string {
	if element == nil {
		return "<nil>"
	}
	eb := element.base()
	desc := fmt.Sprintf("%s(%s, depth=%d", reflect.TypeOf(element).Elem().Name(), describeWidget(eb.widget), eb.depth)
	if eb.widget != nil {
		if key := eb.widget.Key(); key != nil {
			desc += fmt.Sprintf(", key=%v", key)
		}
	}
	return desc + ")"
}

func describeWidget(widget Widget) string {
	if widget == nil {
		return "<nil>"
	}
	return reflect.TypeOf(widget).String()
}
