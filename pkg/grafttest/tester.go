package grafttest

import (
	"errors"
	"testing"

	"github.com/go-graft/graft/pkg/backend"
	"github.com/go-graft/graft/pkg/core"
)

// ErrUnsettled is returned when Settle exhausts its pass budget with work
// still pending.
var ErrUnsettled = errors.New("grafttest: tree did not settle")

// Tester owns one element tree and its backend mirror. It drives passes
// explicitly; nothing rebuilds between Pump calls.
type Tester struct {
	owner      *core.BuildOwner
	root       core.Element
	surface    *backend.Node
	frames     int
	dispatches []func()
}

// New creates a tester with a fresh owner and backend surface. Call Cleanup
// when done, or use NewWithT.
func New() *Tester {
	tester := &Tester{
		owner:   core.NewBuildOwner(),
		surface: backend.NewNode("surface"),
	}
	tester.owner.OnNeedsFrame = func() { tester.frames++ }
	return tester
}

// NewWithT creates a tester that unmounts its tree via t.Cleanup. This is
// the recommended constructor.
func NewWithT(t *testing.T) *Tester {
	tester := New()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the current tree through the normal deferred-unmount
// path. Safe to call more than once.
func (t *Tester) Cleanup() {
	if t.root == nil {
		return
	}
	core.DetachRoot(t.root)
	t.owner.FinalizeTree()
	t.root = nil
}

// surfaceWidget anchors the tree on the tester's backend surface node.
type surfaceWidget struct {
	child core.Widget
	node  *backend.Node
}

func (w surfaceWidget) CreateElement() core.Element { return core.NewHostElement() }
func (w surfaceWidget) Key() core.Key               { return nil }
func (w surfaceWidget) ChildWidget() core.Widget    { return w.child }

func (w surfaceWidget) CreateObject(ctx core.BuildContext) backend.Object {
	return w.node
}

func (w surfaceWidget) UpdateObject(ctx core.BuildContext, object backend.Object) {}

// PumpWidget mounts widget as a fresh tree, replacing any previous one, and
// runs one full pass.
func (t *Tester) PumpWidget(widget core.Widget) {
	t.Cleanup()
	t.surface = backend.NewNode("surface")
	t.root = core.AttachRoot(t.owner, surfaceWidget{child: widget, node: t.surface})
	t.owner.FinalizeTree()
}

// Pump runs one pass: queued dispatches, then a build scope over the dirty
// list, then finalize.
func (t *Tester) Pump() {
	queued := t.dispatches
	t.dispatches = nil
	for _, fn := range queued {
		fn()
	}
	t.owner.BuildScope(t.root, nil)
	t.owner.FinalizeTree()
}

// Settle pumps until no work remains, up to maxPasses. A tree that keeps
// scheduling work past the budget returns ErrUnsettled.
func (t *Tester) Settle(maxPasses int) error {
	for i := 0; i < maxPasses; i++ {
		t.Pump()
		if !t.owner.NeedsWork() && len(t.dispatches) == 0 {
			return nil
		}
	}
	return ErrUnsettled
}

// Dispatch queues a callback to run at the start of the next Pump.
func (t *Tester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// Owner returns the BuildOwner driving this tree.
func (t *Tester) Owner() *core.BuildOwner {
	return t.owner
}

// RootElement returns the mounted root, or nil before the first PumpWidget.
func (t *Tester) RootElement() core.Element {
	return t.root
}

// Surface returns the backend node the tree renders into.
func (t *Tester) Surface() *backend.Node {
	return t.surface
}

// DumpBackend renders the backend mirror as an indented outline, one node
// per line. Useful in failure messages.
func (t *Tester) DumpBackend() string {
	return t.surface.Dump()
}

// FrameRequests reports how many times the owner signalled for a new pass.
func (t *Tester) FrameRequests() int {
	return t.frames
}

// Find evaluates a finder against the current tree.
func (t *Tester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(t.root),
		finder:   finder,
	}
}
