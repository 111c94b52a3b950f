package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/go-graft/graft/pkg/core"
	"github.com/go-graft/graft/pkg/errors"
	"github.com/go-graft/graft/pkg/grafttest"
)

const sampleScene = `
version: 1
root:
  kind: row
  children:
    - kind: label
      key: greeting
      text: "hello"
    - kind: box
      children:
        - kind: label
          text: "world"
`

func TestParse_ValidDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleScene))
	require.NoError(t, err)
	require.Equal(t, "row", doc.Root.Kind)
	require.Len(t, doc.Root.Children, 2)
	require.Equal(t, "greeting", doc.Root.Children[0].Key)
}

func TestParse_RejectsUnsupportedVersion(t *testing.T) {
	_, err := Parse([]byte("version: 2\nroot: {kind: box}\n"))
	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "version", parseErr.Path)
}

func TestParse_RejectsMissingRoot(t *testing.T) {
	_, err := Parse([]byte("version: 1\n"))
	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "root", parseErr.Path)
}

func TestParse_RejectsUnknownKind(t *testing.T) {
	_, err := Parse([]byte(`
version: 1
root:
  kind: row
  children:
    - kind: column
`))
	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "root.children[0].kind", parseErr.Path)
}

func TestParse_RejectsLabelWithChildren(t *testing.T) {
	_, err := Parse([]byte(`
version: 1
root:
  kind: label
  children:
    - kind: label
`))
	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "root.children", parseErr.Path)
}

func TestParse_RejectsDuplicateSiblingKeys(t *testing.T) {
	_, err := Parse([]byte(`
version: 1
root:
  kind: row
  children:
    - {kind: label, key: a}
    - {kind: label, key: a}
`))
	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "root.children[1].key", parseErr.Path)
}

func TestLoad_ReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScene), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "row", doc.Root.Kind)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestWidget_MirrorsSceneIntoBackend(t *testing.T) {
	doc, err := Parse([]byte(sampleScene))
	require.NoError(t, err)

	tester := grafttest.NewWithT(t)
	tester.PumpWidget(doc.Widget())

	want := `surface
  row
    label(text="hello")
    box
      label(text="world")
`
	if diff := cmp.Diff(want, tester.DumpBackend()); diff != "" {
		t.Errorf("backend tree mismatch (-want +got):\n%s", diff)
	}
}

func TestWidget_KeyedNodeSurvivesReorder(t *testing.T) {
	before, err := Parse([]byte(`
version: 1
root:
  kind: row
  children:
    - {kind: label, key: a, text: "a"}
    - {kind: label, key: b, text: "b"}
`))
	require.NoError(t, err)
	after, err := Parse([]byte(`
version: 1
root:
  kind: row
  children:
    - {kind: label, key: b, text: "b"}
    - {kind: label, key: a, text: "a"}
`))
	require.NoError(t, err)

	var swap func()
	widget := core.Stateful(
		func() core.Widget { return before.Widget() },
		func(current core.Widget, ctx core.BuildContext, setState func(func(core.Widget) core.Widget)) core.Widget {
			swap = func() {
				setState(func(core.Widget) core.Widget { return after.Widget() })
			}
			return current
		},
	)

	tester := grafttest.NewWithT(t)
	tester.PumpWidget(widget)
	nodeBefore := tester.Find(grafttest.ByKey(core.LocalKey{Value: "a"})).First().Object()

	swap()
	tester.Pump()

	nodeAfter := tester.Find(grafttest.ByKey(core.LocalKey{Value: "a"})).First().Object()
	require.Same(t, nodeBefore, nodeAfter, "keyed node must be reused across the reorder")

	want := `surface
  row
    label(text="b")
    label(text="a")
`
	if diff := cmp.Diff(want, tester.DumpBackend()); diff != "" {
		t.Errorf("backend tree mismatch (-want +got):\n%s", diff)
	}
}
