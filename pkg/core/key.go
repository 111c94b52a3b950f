package core

import (
	"fmt"
	"sort"

	"github.com/go-graft/graft/pkg/errors"
)

// Key tags a widget with an identity that survives position changes during
// reconciliation. The key set is closed: LocalKey matches by value within one
// parent's child list, *GlobalKey is a tree-wide singleton that additionally
// allows an element to be relocated across parents within a single pass.
type Key interface {
	keyMarker()
}

// LocalKey is an equality-based key. Value must be comparable.
type LocalKey struct {
	Value any
}

func (LocalKey) keyMarker() {}

func (k LocalKey) String() string {
	return fmt.Sprintf("LocalKey(%v)", k.Value)
}

// GlobalKey identifies an element by pointer identity across the whole tree.
// At most one live element per BuildOwner may hold a given GlobalKey; mounting
// a compatible widget with an already-claimed key steals the claiming element
// into the new location instead of building a fresh one.
type GlobalKey struct {
	// Label names the key in identity reports.
	Label string
}

// NewGlobalKey creates a fresh global key.
func NewGlobalKey(label string) *GlobalKey {
	return &GlobalKey{Label: label}
}

func (*GlobalKey) keyMarker() {}

func (k *GlobalKey) String() string {
	if k.Label != "" {
		return fmt.Sprintf("GlobalKey(%s)", k.Label)
	}
	return fmt.Sprintf("GlobalKey(%p)", k)
}

// globalKeyRegistry tracks which live elements claim each global key. It is
// owned by a BuildOwner; independent trees never share registrations.
//
// Claimants are kept in registration order. The head of the list is the
// key's holder; any further entries are collisions, reported at finalize
// rather than silently merged.
type globalKeyRegistry struct {
	claimants map[*GlobalKey][]Element
}

func (r *globalKeyRegistry) register(key *GlobalKey, element Element) {
	if r.claimants == nil {
		r.claimants = make(map[*GlobalKey][]Element)
	}
	for _, claimed := range r.claimants[key] {
		if claimed == element {
			return
		}
	}
	r.claimants[key] = append(r.claimants[key], element)
}

func (r *globalKeyRegistry) unregister(key *GlobalKey, element Element) {
	list := r.claimants[key]
	for i, claimed := range list {
		if claimed == element {
			r.claimants[key] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(r.claimants[key]) == 0 {
		delete(r.claimants, key)
	}
}

// elementFor returns the live holder of key, or nil.
func (r *globalKeyRegistry) elementFor(key *GlobalKey) Element {
	if list := r.claimants[key]; len(list) > 0 {
		return list[0]
	}
	return nil
}

// collisions returns one IdentityError per key with more than one live
// claimant, ordered by key label for deterministic reporting.
func (r *globalKeyRegistry) collisions() []*errors.IdentityError {
	var out []*errors.IdentityError
	for key, list := range r.claimants {
		if len(list) < 2 {
			continue
		}
		out = append(out, &errors.IdentityError{
			Key:    key.String(),
			First:  describeElement(list[0]),
			Second: describeElement(list[1]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
