package main

import (
	"github.com/go-graft/graft/pkg/backend"
	"github.com/go-graft/graft/pkg/core"
)

// runner owns one element tree rooted on an in-memory surface node and lets
// the CLI swap the scene widget between passes.
type runner struct {
	owner   *core.BuildOwner
	root    core.Element
	surface *backend.Node
	state   *sceneHostState
}

func newRunner(widget core.Widget) *runner {
	r := &runner{
		owner:   core.NewBuildOwner(),
		surface: backend.NewNode("surface"),
	}
	r.root = core.AttachRoot(r.owner, sceneHost{child: widget, node: r.surface})
	r.owner.FinalizeTree()
	r.state = r.root.(*core.StatefulElement).State().(*sceneHostState)
	return r
}

// swap reconciles the live tree onto a new scene widget in one pass.
func (r *runner) swap(widget core.Widget) {
	r.state.SetState(func() { r.state.child = widget })
	r.owner.BuildScope(r.root, nil)
	r.owner.FinalizeTree()
}

func (r *runner) close() {
	core.DetachRoot(r.root)
	r.owner.FinalizeTree()
}

// sceneHost anchors the scene on the surface node and keeps the current
// scene widget swappable.
type sceneHost struct {
	child core.Widget
	node  *backend.Node
}

func (w sceneHost) CreateElement() core.Element { return core.NewStatefulElement() }
func (w sceneHost) Key() core.Key               { return nil }
func (w sceneHost) CreateState() core.State     { return &sceneHostState{} }

type sceneHostState struct {
	core.StateBase
	child core.Widget
}

func (s *sceneHostState) InitState() {
	s.child = s.Element().Widget().(sceneHost).child
}

func (s *sceneHostState) Build(ctx core.BuildContext) core.Widget {
	host := s.Element().Widget().(sceneHost)
	return surfaceAnchor{child: s.child, node: host.node}
}

// surfaceAnchor is the host widget owning the surface backend node.
type surfaceAnchor struct {
	child core.Widget
	node  *backend.Node
}

func (w surfaceAnchor) CreateElement() core.Element { return core.NewHostElement() }
func (w surfaceAnchor) Key() core.Key               { return nil }
func (w surfaceAnchor) ChildWidget() core.Widget    { return w.child }

func (w surfaceAnchor) CreateObject(ctx core.BuildContext) backend.Object {
	return w.node
}

func (w surfaceAnchor) UpdateObject(ctx core.BuildContext, object backend.Object) {}
