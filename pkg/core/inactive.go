package core

import (
	"slices"
)

// inactiveElements holds subtree roots detached during the current pass.
// Each lives here for at most one pass: a graft may reclaim it, otherwise
// FinalizeTree unmounts it.
type inactiveElements struct {
	elements map[Element]struct{}
	locked   bool
}

// add detaches element into the set, deactivating its subtree if it was
// still active (the steal-from-live path hands in active elements).
func (s *inactiveElements) add(element Element) {
	if s.locked {
		panic(protocolErr("inactiveElements.add", element, "tree mutated during finalize"))
	}
	if element.base().phase == lifecycleActive {
		deactivateRecursively(element)
	}
	if s.elements == nil {
		s.elements = make(map[Element]struct{})
	}
	s.elements[element] = struct{}{}
}

// remove reclaims an element for grafting.
func (s *inactiveElements) remove(element Element) {
	delete(s.elements, element)
}

// unmountAll retires everything still detached at pass end. Roots are
// processed deepest-first, and each root's subtree is unmounted together
// before the next root is touched.
func (s *inactiveElements) unmountAll() {
	if len(s.elements) == 0 {
		return
	}
	s.locked = true
	roots := make([]Element, 0, len(s.elements))
	for element := range s.elements {
		roots = append(roots, element)
	}
	clear(s.elements)
	slices.SortFunc(roots, func(a, b Element) int {
		return a.Depth() - b.Depth()
	})
	for i := len(roots) - 1; i >= 0; i-- {
		roots[i].Unmount()
	}
	s.locked = false
}
