// Package grafttest provides an isolated harness for testing widget trees.
//
// # Quick Start
//
// Create a tester, pump a widget, and make assertions:
//
//	func TestMyWidget(t *testing.T) {
//	    tester := grafttest.NewWithT(t)
//	    tester.PumpWidget(MyWidget{})
//
//	    label := tester.Find(grafttest.ByType[scene.Label]()).First()
//	    if label == nil {
//	        t.Fatal("expected a label")
//	    }
//	}
//
// The tester drives the same pass machinery as a real embedder: each Pump
// runs one build scope over the dirty list and finalizes the tree, and the
// backend mirror can be inspected with DumpBackend.
//
// # Driving State
//
// Mutate state through the widgets under test, then pump again:
//
//	state.SetState(func() { state.count++ })
//	tester.Pump()
//
// Settle pumps until no work remains, for cascading rebuilds.
package grafttest
