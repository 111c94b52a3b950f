package core

import (
	"slices"
	"sync"

	"github.com/go-graft/graft/pkg/errors"
)

// ownerPhase is the pass lock: exactly one build scope or finalize may be in
// flight, and dirty-marking legality depends on which.
type ownerPhase int

const (
	ownerIdle ownerPhase = iota
	ownerBuilding
	ownerFinalizing
)

func (p ownerPhase) String() string {
	switch p {
	case ownerBuilding:
		return "building"
	case ownerFinalizing:
		return "finalizing"
	default:
		return "idle"
	}
}

// BuildOwner schedules rebuild work for one element tree. It owns the dirty
// list, the inactive set, and the global-key registry; independent trees use
// independent owners and never share state.
type BuildOwner struct {
	mu               sync.Mutex
	dirty            []Element
	dirtyNeedsResort bool
	scheduledFlush   bool

	phase              ownerPhase
	currentBuildTarget Element

	keys     globalKeyRegistry
	inactive inactiveElements

	// OnNeedsFrame is called when the dirty list goes from empty to
	// non-empty, signalling the host that a pass should be scheduled. It
	// fires once per idle-to-pending transition, not once per element.
	OnNeedsFrame func()
}

// NewBuildOwner creates a BuildOwner for a fresh tree.
func NewBuildOwner() *BuildOwner {
	return &BuildOwner{}
}

// ScheduleBuild enqueues an element for rebuild. Enqueueing is idempotent;
// re-marking an element already in the list during a pass only requests a
// resort (its depth may have changed by reactivation).
func (o *BuildOwner) ScheduleBuild(element Element) {
	pending := false
	o.mu.Lock()
	eb := element.base()
	if eb.inDirtyList {
		o.dirtyNeedsResort = true
	} else {
		eb.inDirtyList = true
		o.dirty = append(o.dirty, element)
		if !o.scheduledFlush {
			o.scheduledFlush = true
			pending = true
		}
	}
	o.mu.Unlock()

	if pending && o.OnNeedsFrame != nil {
		o.OnNeedsFrame()
	}
}

// NeedsWork reports whether any element is waiting to be rebuilt.
func (o *BuildOwner) NeedsWork() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.dirty) > 0
}

// BuildScope runs one pass over the tree rooted at context. The callback, if
// given, runs first with unrestricted dirty-marking within the scope; the
// dirty list is then rebuilt in depth order until empty. Starting a scope
// while another pass or finalize is in flight is a protocol violation.
func (o *BuildOwner) BuildScope(context Element, callback func()) {
	if o.phase != ownerIdle {
		panic(&errors.ProtocolError{
			Op:      "BuildOwner.BuildScope",
			Element: describeElement(context),
			Detail:  "a pass is already in progress (owner is " + o.phase.String() + ")",
		})
	}
	o.phase = ownerBuilding
	defer func() {
		o.mu.Lock()
		for _, element := range o.dirty {
			element.base().inDirtyList = false
		}
		o.dirty = o.dirty[:0]
		o.dirtyNeedsResort = false
		o.scheduledFlush = false
		o.mu.Unlock()
		o.currentBuildTarget = nil
		o.phase = ownerIdle
	}()

	if callback != nil {
		o.currentBuildTarget = context
		callback()
		o.currentBuildTarget = nil
	}
	o.flushDirty()
}

// flushDirty rebuilds dirty elements depth-ascending, dirty-first on ties.
// A rebuild may enqueue deeper elements, forcing a resort; after one, the
// cursor backs up over any predecessors that became dirty again (a
// reactivated element sorts by its new depth and must still be rebuilt).
func (o *BuildOwner) flushDirty() {
	o.mu.Lock()
	sortDirty(o.dirty)
	o.dirtyNeedsResort = false
	count := len(o.dirty)
	o.mu.Unlock()

	index := 0
	for index < count {
		o.mu.Lock()
		element := o.dirty[index]
		o.mu.Unlock()

		o.currentBuildTarget = element
		element.RebuildIfNeeded()
		o.currentBuildTarget = nil
		index++

		o.mu.Lock()
		if len(o.dirty) > count || o.dirtyNeedsResort {
			sortDirty(o.dirty)
			o.dirtyNeedsResort = false
			count = len(o.dirty)
			for index > 0 && o.dirty[index-1].base().dirty {
				index--
			}
		}
		o.mu.Unlock()
	}
}

func sortDirty(list []Element) {
	slices.SortFunc(list, func(a, b Element) int {
		ab, bb := a.base(), b.base()
		if d := ab.depth - bb.depth; d != 0 {
			return d
		}
		switch {
		case ab.dirty && !bb.dirty:
			return -1
		case bb.dirty && !ab.dirty:
			return 1
		}
		return 0
	})
}

// checkMarkNeedsBuild enforces the dirty-marking rules while a pass is
// locked: during a build, only the current build target and its descendants
// may be marked; during finalize, nothing may be.
func (o *BuildOwner) checkMarkNeedsBuild(element Element) {
	switch o.phase {
	case ownerFinalizing:
		panic(protocolErr("Element.MarkNeedsBuild", element, "marked dirty during finalize"))
	case ownerBuilding:
		target := o.currentBuildTarget
		if target == nil {
			return
		}
		for current := element; current != nil; current = current.base().parent {
			if current == target {
				return
			}
		}
		panic(protocolErr("Element.MarkNeedsBuild", element,
			"marked dirty during the build of non-ancestor "+describeElement(target)))
	}
}

// FinalizeTree completes a pass: every element still in the inactive set is
// unmounted, subtree by subtree, and the global-key registry is checked for
// duplicate claims. Collisions are reported with both claimants; in strict
// mode the first is then raised fatally, otherwise the first-registered
// claimant keeps the key.
func (o *BuildOwner) FinalizeTree() {
	if o.phase != ownerIdle {
		panic(&errors.ProtocolError{
			Op:     "BuildOwner.FinalizeTree",
			Detail: "finalize while owner is " + o.phase.String(),
		})
	}
	o.phase = ownerFinalizing
	defer func() { o.phase = ownerIdle }()

	o.inactive.unmountAll()

	if collisions := o.keys.collisions(); len(collisions) > 0 {
		for _, collision := range collisions {
			errors.Report(&errors.GraftError{
				Op:      "core.BuildOwner.FinalizeTree",
				Kind:    errors.KindIdentity,
				Err:     collision,
				Element: collision.Second,
			})
		}
		if StrictMode {
			panic(collisions[0])
		}
	}
}

// DetachRoot deactivates the tree rooted at element into its owner's
// inactive set; the next FinalizeTree unmounts the whole subtree. This is the
// orderly teardown path for a tree created with AttachRoot.
func DetachRoot(element Element) {
	eb := element.base()
	if eb.owner != nil {
		eb.owner.inactive.add(element)
	} else {
		deactivateRecursively(element)
	}
}

// AttachRoot inflates widget as the root of a new tree owned by owner and
// runs its first pass. The returned element stays valid until unmounted.
func AttachRoot(owner *BuildOwner, widget Widget) Element {
	element := widget.CreateElement()
	element.base().widget = widget
	element.base().owner = owner
	owner.BuildScope(element, func() {
		element.Mount(nil, nil)
	})
	return element
}
