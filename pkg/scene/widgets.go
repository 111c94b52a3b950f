package scene

import (
	"github.com/go-graft/graft/pkg/backend"
	"github.com/go-graft/graft/pkg/core"
)

// Label is a childless host widget mirrored as a `label` backend node with a
// text attribute.
type Label struct {
	ItemKey core.Key
	Text    string
}

func (w Label) CreateElement() core.Element { return core.NewHostElement() }
func (w Label) Key() core.Key               { return w.ItemKey }

func (w Label) CreateObject(ctx core.BuildContext) backend.Object {
	node := backend.NewNode("label")
	node.SetAttr("text", w.Text)
	return node
}

func (w Label) UpdateObject(ctx core.BuildContext, object backend.Object) {
	object.(*backend.Node).SetAttr("text", w.Text)
}

// Box is a host widget mirrored as a `box` backend node.
type Box struct {
	ItemKey  core.Key
	Children []core.Widget
}

func (w Box) CreateElement() core.Element { return core.NewHostElement() }
func (w Box) Key() core.Key               { return w.ItemKey }
func (w Box) ChildWidgets() []core.Widget { return w.Children }

func (w Box) CreateObject(ctx core.BuildContext) backend.Object {
	return backend.NewNode("box")
}

func (w Box) UpdateObject(ctx core.BuildContext, object backend.Object) {}

// Row is a host widget mirrored as a `row` backend node.
type Row struct {
	ItemKey  core.Key
	Children []core.Widget
}

func (w Row) CreateElement() core.Element { return core.NewHostElement() }
func (w Row) Key() core.Key               { return w.ItemKey }
func (w Row) ChildWidgets() []core.Widget { return w.Children }

func (w Row) CreateObject(ctx core.BuildContext) backend.Object {
	return backend.NewNode("row")
}

func (w Row) UpdateObject(ctx core.BuildContext, object backend.Object) {}
