// Package core provides the widget and element framework: a retained-mode
// reconciliation engine that maps immutable widget descriptions onto a
// persistent, mutable element tree.
//
// # Core Types
//
// Widget is an immutable description of part of the tree. Widgets are
// lightweight configuration objects that can be created frequently without
// performance concerns.
//
// Element is the instantiation of a Widget at a particular location in the
// tree. Elements manage lifecycle and identity: an element created for a
// widget is reused for every later widget of the same type and key at the
// same location, so state attached to it persists across value-only updates.
//
// BuildOwner schedules rebuild work. Dirty elements are collected into a
// per-owner list and rebuilt depth-first inside [BuildOwner.BuildScope];
// [BuildOwner.FinalizeTree] then unmounts elements that were removed during
// the pass and verifies global-key uniqueness. Independent trees use
// independent owners.
//
// # Lifecycle
//
// An element moves through four states: it is created, becomes active on
// mount, inactive when its location is removed, and defunct once unmounted.
// An inactive element survives until the end of the pass that removed it; a
// compatible widget carrying the same [GlobalKey] can reclaim it anywhere in
// the tree within that window, keeping its state and backend object.
//
// # Stateful Widgets
//
// For widgets that need mutable state, embed StateBase in your state struct:
//
//	type counterState struct {
//	    core.StateBase
//	    count int
//	}
//
//	func (s *counterState) Build(ctx core.BuildContext) core.Widget {
//	    return scene.Label{Text: fmt.Sprintf("count: %d", s.count)}
//	}
//
// State construction and disposal bracket the element's whole life: the
// state survives deactivation and relocation, and is disposed only when the
// element is unmounted.
//
// # Ambient Values
//
// An [InheritedWidget] broadcasts a value to its descendants. A descendant
// reading it through [BuildContext.DependOnInherited] is rebuilt whenever the
// provider updates and UpdateShouldNotify reports a change.
package core
