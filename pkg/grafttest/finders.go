package grafttest

import (
	"fmt"
	"reflect"

	"github.com/go-graft/graft/pkg/backend"
	"github.com/go-graft/graft/pkg/core"
)

// Finder locates elements in the tree.
type Finder interface {
	// Evaluate returns all matching elements under root, depth-first.
	Evaluate(root core.Element) []core.Element
	// Description names the finder in failure messages.
	Description() string
}

// FinderResult wraps finder matches with convenient accessors.
type FinderResult struct {
	elements []core.Element
	finder   Finder
}

// First returns the first match. Panics if there are none.
func (r FinderResult) First() core.Element {
	if len(r.elements) == 0 {
		panic(fmt.Sprintf("grafttest: no elements matched %s", r.describe()))
	}
	return r.elements[0]
}

// FirstOrNil returns the first match, or nil.
func (r FinderResult) FirstOrNil() core.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// All returns every match in traversal order.
func (r FinderResult) All() []core.Element {
	return r.elements
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.elements)
}

// Exists reports whether anything matched.
func (r FinderResult) Exists() bool {
	return len(r.elements) > 0
}

// Widget returns the widget of the first match. Panics if there are none.
func (r FinderResult) Widget() core.Widget {
	return r.First().Widget()
}

// BackendObject returns the backend object of the first match, or nil if the
// matched subtree bears none.
func (r FinderResult) BackendObject() backend.Object {
	return r.First().Object()
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown finder"
	}
	return r.finder.Description()
}

func collectMatches(root core.Element, match func(core.Element) bool) []core.Element {
	var out []core.Element
	var walk func(core.Element)
	walk = func(element core.Element) {
		if match(element) {
			out = append(out, element)
		}
		element.VisitChildren(func(child core.Element) bool {
			walk(child)
			return true
		})
	}
	walk(root)
	return out
}

type typeFinder struct {
	widgetType reflect.Type
}

func (f *typeFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		return reflect.TypeOf(e.Widget()) == f.widgetType
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.widgetType)
}

// ByType matches elements hosting a widget of type T.
func ByType[T core.Widget]() Finder {
	return &typeFinder{widgetType: reflect.TypeOf((*T)(nil)).Elem()}
}

type keyFinder struct {
	key core.Key
}

func (f *keyFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		return e.Widget().Key() == f.key
	})
}

func (f *keyFinder) Description() string {
	return fmt.Sprintf("ByKey(%v)", f.key)
}

// ByKey matches elements whose widget carries exactly this key.
func ByKey(key core.Key) Finder {
	return &keyFinder{key: key}
}

type predicateFinder struct {
	predicate   func(core.Element) bool
	description string
}

func (f *predicateFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, f.predicate)
}

func (f *predicateFinder) Description() string {
	return f.description
}

// ByPredicate matches elements satisfying an arbitrary predicate. The
// description names it in failure messages.
func ByPredicate(description string, predicate func(core.Element) bool) Finder {
	return &predicateFinder{predicate: predicate, description: description}
}

type kindFinder struct {
	kind string
}

func (f *kindFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		host, ok := e.(*core.HostElement)
		if !ok {
			return false
		}
		node, ok := host.BackendObject().(*backend.Node)
		return ok && node.Kind == f.kind
	})
}

func (f *kindFinder) Description() string {
	return fmt.Sprintf("ByKind(%s)", f.kind)
}

// ByKind matches host elements whose backend node has the given kind.
func ByKind(kind string) Finder {
	return &kindFinder{kind: kind}
}
