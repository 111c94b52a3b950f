package core

// IndexedSlot is the positional token for one child in an ordered list. The
// previous-sibling element lets a backend with linked-list child storage
// reposition in O(1) per move; the index disambiguates repeated widgets.
type IndexedSlot struct {
	Index    int
	Previous Element
}

// updateChildren reconciles an old ordered element list against a new widget
// list in five linear passes:
//
//  1. Sync from the front while widgets match, reconciling in place.
//  2. Scan from the back to bound the unresolved middle, without reconciling
//     yet (trailing slots depend on how the middle resolves).
//  3. Index the unmatched old elements by key; keyless ones cannot be
//     matched across a position change and are deactivated now.
//  4. Walk the unmatched new widgets in order, reconciling against same-key
//     candidates where compatible and inflating fresh otherwise.
//  5. Reconcile the trailing pairs found in pass 2, then deactivate any
//     keyed old elements nothing claimed.
//
// Pure append, prepend, and no-change runs never build the key table.
// Elements in forgotten were stolen by a graft elsewhere and are treated as
// absent; they must not be touched again.
func (e *elementBase) updateChildren(oldChildren []Element, newWidgets []Widget, forgotten map[Element]struct{}) []Element {
	liveChild := func(child Element) Element {
		if child != nil && forgotten != nil {
			if _, gone := forgotten[child]; gone {
				return nil
			}
		}
		return child
	}

	newChildrenTop := 0
	oldChildrenTop := 0
	newChildrenBottom := len(newWidgets) - 1
	oldChildrenBottom := len(oldChildren) - 1

	newChildren := make([]Element, len(newWidgets))
	var previousChild Element

	// Pass 1: sync from the front.
	for oldChildrenTop <= oldChildrenBottom && newChildrenTop <= newChildrenBottom {
		oldChild := liveChild(oldChildren[oldChildrenTop])
		newWidget := newWidgets[newChildrenTop]
		if oldChild == nil || !canUpdate(oldChild.Widget(), newWidget) {
			break
		}
		newChild := e.updateChild(oldChild, newWidget, IndexedSlot{newChildrenTop, previousChild})
		newChildren[newChildrenTop] = newChild
		previousChild = newChild
		newChildrenTop++
		oldChildrenTop++
	}

	// Pass 2: scan from the back.
	for oldChildrenTop <= oldChildrenBottom && newChildrenTop <= newChildrenBottom {
		oldChild := liveChild(oldChildren[oldChildrenBottom])
		newWidget := newWidgets[newChildrenBottom]
		if oldChild == nil || !canUpdate(oldChild.Widget(), newWidget) {
			break
		}
		oldChildrenBottom--
		newChildrenBottom--
	}

	// Pass 3: index the unresolved middle by key.
	haveOldChildren := oldChildrenTop <= oldChildrenBottom
	var oldKeyedChildren map[Key]Element
	if haveOldChildren {
		oldKeyedChildren = make(map[Key]Element)
		for oldChildrenTop <= oldChildrenBottom {
			if oldChild := liveChild(oldChildren[oldChildrenTop]); oldChild != nil {
				if key := oldChild.Widget().Key(); key != nil {
					oldKeyedChildren[key] = oldChild
				} else {
					e.deactivateChild(oldChild)
				}
			}
			oldChildrenTop++
		}
	}

	// Pass 4: resolve the middle left to right.
	for newChildrenTop <= newChildrenBottom {
		var oldChild Element
		newWidget := newWidgets[newChildrenTop]
		if haveOldChildren {
			if key := newWidget.Key(); key != nil {
				if candidate, ok := oldKeyedChildren[key]; ok && canUpdate(candidate.Widget(), newWidget) {
					oldChild = candidate
					delete(oldKeyedChildren, key)
				}
			}
		}
		newChild := e.updateChild(oldChild, newWidget, IndexedSlot{newChildrenTop, previousChild})
		newChildren[newChildrenTop] = newChild
		previousChild = newChild
		newChildrenTop++
	}

	// Pass 5: reconcile the trailing run now that middle slots are settled.
	newChildrenBottom = len(newWidgets) - 1
	oldChildrenBottom = len(oldChildren) - 1
	for oldChildrenTop <= oldChildrenBottom && newChildrenTop <= newChildrenBottom {
		newChild := e.updateChild(oldChildren[oldChildrenTop], newWidgets[newChildrenTop], IndexedSlot{newChildrenTop, previousChild})
		newChildren[newChildrenTop] = newChild
		previousChild = newChild
		newChildrenTop++
		oldChildrenTop++
	}

	// Unclaimed keyed elements are gone for good.
	for _, oldChild := range oldKeyedChildren {
		e.deactivateChild(oldChild)
	}

	return newChildren
}
