package core

import (
	"testing"
)

func keyedLeaves(rec *opRecorder, names ...string) []Widget {
	widgets := make([]Widget, len(names))
	for i, name := range names {
		widgets[i] = leafWidget{key: LocalKey{Value: name}, name: name, rec: rec}
	}
	return widgets
}

func leafElements(h *harness, names ...string) map[string]*HostElement {
	found := make(map[string]*HostElement, len(names))
	for _, name := range names {
		element := findHost(h.root, name)
		if element == nil {
			panic("leaf " + name + " not mounted")
		}
		found[name] = element
	}
	return found
}

func TestUpdateChildren_ReorderMovesWithoutRecreating(t *testing.T) {
	rec := &opRecorder{}
	h := mountTree(rowWidget{name: "row", rec: rec, children: keyedLeaves(rec, "a", "b", "c", "d")})
	before := leafElements(h, "a", "b", "c", "d")
	rec.reset()

	h.rebuild(rowWidget{name: "row", rec: rec, children: keyedLeaves(rec, "a", "c", "b", "d")})

	if got := findHost(h.root, "row").object.(*testObject).childNames(); got != "a,c,b,d" {
		t.Fatalf("expected order a,c,b,d, got %s", got)
	}
	if rec.count("insert") != 0 || rec.count("remove") != 0 {
		t.Errorf("reorder must not recreate objects, ops=%v", rec.ops)
	}
	after := leafElements(h, "a", "b", "c", "d")
	for name := range before {
		if before[name] != after[name] {
			t.Errorf("element for %s was recreated", name)
		}
	}
	if rec.count("move a") != 0 {
		t.Errorf("untouched front run must not move, ops=%v", rec.ops)
	}
}

func TestUpdateChildren_AppendInsertsOnlyNewChild(t *testing.T) {
	rec := &opRecorder{}
	h := mountTree(rowWidget{name: "row", rec: rec, children: keyedLeaves(rec, "a", "b")})
	rec.reset()

	h.rebuild(rowWidget{name: "row", rec: rec, children: keyedLeaves(rec, "a", "b", "c")})

	if got := findHost(h.root, "row").object.(*testObject).childNames(); got != "a,b,c" {
		t.Fatalf("expected order a,b,c, got %s", got)
	}
	if len(rec.ops) != 1 || rec.ops[0] != "insert c after b" {
		t.Errorf("append should be a single trailing insert, ops=%v", rec.ops)
	}
}

func TestUpdateChildren_PrependKeepsExistingElements(t *testing.T) {
	rec := &opRecorder{}
	h := mountTree(rowWidget{name: "row", rec: rec, children: keyedLeaves(rec, "b", "c")})
	before := leafElements(h, "b", "c")
	rec.reset()

	h.rebuild(rowWidget{name: "row", rec: rec, children: keyedLeaves(rec, "a", "b", "c")})

	if got := findHost(h.root, "row").object.(*testObject).childNames(); got != "a,b,c" {
		t.Fatalf("expected order a,b,c, got %s", got)
	}
	if rec.count("insert") != 1 || rec.count("remove") != 0 {
		t.Errorf("prepend should insert exactly one object, ops=%v", rec.ops)
	}
	after := leafElements(h, "b", "c")
	for name := range before {
		if before[name] != after[name] {
			t.Errorf("element for %s was recreated", name)
		}
	}
}

func TestUpdateChildren_RemovalDetachesAndUnmounts(t *testing.T) {
	rec := &opRecorder{}
	h := mountTree(rowWidget{name: "row", rec: rec, children: keyedLeaves(rec, "a", "b", "c")})
	removed := findHost(h.root, "b")
	rec.reset()

	h.rebuild(rowWidget{name: "row", rec: rec, children: keyedLeaves(rec, "a", "c")})

	if got := findHost(h.root, "row").object.(*testObject).childNames(); got != "a,c" {
		t.Fatalf("expected order a,c, got %s", got)
	}
	if rec.count("remove b") != 1 || rec.count("insert") != 0 {
		t.Errorf("removal should detach one object, ops=%v", rec.ops)
	}
	if removed.base().phase != lifecycleDefunct {
		t.Errorf("removed element should be defunct after finalize, is %s", removed.base().phase)
	}
}

func TestUpdateChildren_KeylessMiddleIsNotMatchedAcrossMoves(t *testing.T) {
	rec := &opRecorder{}
	h := mountTree(rowWidget{name: "row", rec: rec, children: []Widget{
		leafWidget{key: LocalKey{Value: "a"}, name: "a", rec: rec},
		leafWidget{name: "x", rec: rec},
		leafWidget{key: LocalKey{Value: "b"}, name: "b", rec: rec},
	}})
	keylessBefore := findHost(h.root, "x")

	h.rebuild(rowWidget{name: "row", rec: rec, children: []Widget{
		leafWidget{key: LocalKey{Value: "b"}, name: "b", rec: rec},
		leafWidget{name: "x", rec: rec},
		leafWidget{key: LocalKey{Value: "a"}, name: "a", rec: rec},
	}})

	if got := findHost(h.root, "row").object.(*testObject).childNames(); got != "b,x,a" {
		t.Fatalf("expected order b,x,a, got %s", got)
	}
	if keylessBefore.base().phase != lifecycleDefunct {
		t.Errorf("keyless middle child should have been dropped, is %s", keylessBefore.base().phase)
	}
	if findHost(h.root, "x") == keylessBefore {
		t.Error("keyless middle child must be inflated fresh")
	}
}

func TestUpdateChildren_UnchangedListIsIdempotent(t *testing.T) {
	rec := &opRecorder{}
	children := keyedLeaves(rec, "a", "b", "c")
	h := mountTree(rowWidget{name: "row", rec: rec, children: children})
	before := leafElements(h, "a", "b", "c")
	rec.reset()

	h.rebuild(rowWidget{name: "row", rec: rec, children: keyedLeaves(rec, "a", "b", "c")})

	if len(rec.ops) != 0 {
		t.Errorf("identical list must not touch the backend, ops=%v", rec.ops)
	}
	after := leafElements(h, "a", "b", "c")
	for name := range before {
		if before[name] != after[name] {
			t.Errorf("element for %s was recreated", name)
		}
	}
}

func TestIndexedSlot_CarriesPreviousSibling(t *testing.T) {
	rec := &opRecorder{}
	h := mountTree(rowWidget{name: "row", rec: rec, children: keyedLeaves(rec, "a", "b")})

	b := findHost(h.root, "b")
	slot, ok := b.Slot().(IndexedSlot)
	if !ok {
		t.Fatalf("expected IndexedSlot, got %T", b.Slot())
	}
	if slot.Index != 1 {
		t.Errorf("expected index 1, got %d", slot.Index)
	}
	if slot.Previous == nil || slot.Previous.Object().(*testObject).name != "a" {
		t.Error("expected previous sibling a")
	}
}
