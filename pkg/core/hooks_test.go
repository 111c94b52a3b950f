package core

import (
	"testing"
)

type tickerController struct {
	disposed bool
}

func (c *tickerController) Dispose() { c.disposed = true }

type hookState struct {
	StateBase
	controller *tickerController
	obs        *Observable[int]
	builds     int
	seen       int
}

func (s *hookState) InitState() {
	s.controller = UseController(s, func() *tickerController {
		return &tickerController{}
	})
	if s.obs != nil {
		UseObservable(s, s.obs)
	}
}

func (s *hookState) Build(ctx BuildContext) Widget {
	s.builds++
	if s.obs != nil {
		s.seen = s.obs.Value()
	}
	return nil
}

type hookWidget struct {
	state **hookState
	obs   *Observable[int]
}

func (w hookWidget) CreateElement() Element { return NewStatefulElement() }
func (w hookWidget) Key() Key               { return nil }

func (w hookWidget) CreateState() State {
	s := &hookState{obs: w.obs}
	*w.state = s
	return s
}

func TestUseController_DisposedWithState(t *testing.T) {
	var state *hookState
	rec := &opRecorder{}
	h := mountTree(rowWidget{name: "row", rec: rec, children: []Widget{
		hookWidget{state: &state},
	}})

	if state.controller == nil || state.controller.disposed {
		t.Fatal("controller should exist and be live while mounted")
	}
	h.rebuild(rowWidget{name: "row", rec: rec, children: []Widget{}})
	if !state.controller.disposed {
		t.Error("controller should be disposed with its state")
	}
	if !state.IsDisposed() {
		t.Error("state should report disposed")
	}
}

func TestUseObservable_ChangeTriggersRebuild(t *testing.T) {
	var state *hookState
	obs := NewObservable(1)
	h := mountTree(hookWidget{state: &state, obs: obs})

	if state.builds != 1 || state.seen != 1 {
		t.Fatalf("expected initial build with value 1, got builds=%d seen=%d", state.builds, state.seen)
	}

	obs.Set(7)
	h.pump()

	if state.builds != 2 || state.seen != 7 {
		t.Errorf("expected rebuild with value 7, got builds=%d seen=%d", state.builds, state.seen)
	}
}

func TestObservable_UnsubscribeStopsNotifications(t *testing.T) {
	obs := NewObservable("a")
	calls := 0
	unsub := obs.AddListener(func(string) { calls++ })

	obs.Set("b")
	unsub()
	obs.Set("c")

	if calls != 1 {
		t.Errorf("expected 1 notification, got %d", calls)
	}
	if obs.Value() != "c" {
		t.Errorf("value should still advance, got %s", obs.Value())
	}
}

func TestStateBase_SetStateAfterDisposeIsNoop(t *testing.T) {
	var state *hookState
	rec := &opRecorder{}
	h := mountTree(rowWidget{name: "row", rec: rec, children: []Widget{
		hookWidget{state: &state},
	}})
	h.rebuild(rowWidget{name: "row", rec: rec, children: []Widget{}})

	ran := false
	state.SetState(func() { ran = true })
	if ran {
		t.Error("SetState after dispose must not run the mutation")
	}
}

func TestStateBase_OnDisposeUnregister(t *testing.T) {
	var state *hookState
	rec := &opRecorder{}
	h := mountTree(rowWidget{name: "row", rec: rec, children: []Widget{
		hookWidget{state: &state},
	}})

	kept, dropped := 0, 0
	state.OnDispose(func() { kept++ })
	unregister := state.OnDispose(func() { dropped++ })
	unregister()

	h.rebuild(rowWidget{name: "row", rec: rec, children: []Widget{}})
	if kept != 1 || dropped != 0 {
		t.Errorf("expected kept=1 dropped=0, got kept=%d dropped=%d", kept, dropped)
	}
}

func TestInlineStateful_MountsAndBuilds(t *testing.T) {
	counter := 0
	widget := Stateful(
		func() int { return 0 },
		func(count int, ctx BuildContext, setState func(func(int) int)) Widget {
			counter++
			return nil
		},
	)
	h := mountTree(widget)

	element := findElement(h.root, func(e Element) bool {
		_, ok := e.(*StatefulElement)
		return ok && e != h.root
	})
	if element == nil {
		t.Fatal("inline stateful element not mounted")
	}
	if counter != 1 {
		t.Fatalf("expected one initial build, got %d", counter)
	}
}

func TestInlineStateful_SetStateUpdatesValue(t *testing.T) {
	var lastCount int
	var bump func()
	widget := Stateful(
		func() int { return 10 },
		func(count int, ctx BuildContext, setState func(func(int) int)) Widget {
			lastCount = count
			bump = func() { setState(func(c int) int { return c + 1 }) }
			return nil
		},
	)
	h := mountTree(widget)

	if lastCount != 10 {
		t.Fatalf("expected initial count 10, got %d", lastCount)
	}
	bump()
	h.pump()
	if lastCount != 11 {
		t.Errorf("expected count 11 after setState, got %d", lastCount)
	}
}
