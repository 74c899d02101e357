// Package testing runs frames of an immediate-mode UI in tests.
//
// # Quick Start
//
// Create a tester, pump a scene, and make assertions:
//
//	func TestSave(t *testing.T) {
//	    tester := immtest.NewWidgetTesterWithT(t)
//	    var saved bool
//	    scene := func(ctx *core.Context) {
//	        if widgets.ButtonOf("Save").Build(identity.Here(), ctx) {
//	            saved = true
//	        }
//	    }
//	    tester.Pump(scene)
//
//	    // Simulate input, then run another frame to observe it.
//	    tester.Tap(immtest.ByKind(widgets.KindButton))
//	    tester.Repump()
//
//	    if !saved {
//	        t.Error("expected the press to be reported")
//	    }
//	}
//
// Input is dispatched between frames, as a host would: a builder observes
// an event on the frame after it arrives.
//
// # Snapshot Testing
//
// Compare the reconciled tree against a YAML golden file:
//
//	immtest.MatchesFile(t, tester.CaptureSnapshot(), "testdata/save.yaml")
//
// Update golden files with:
//
//	IMMEDIATE_UPDATE_SNAPSHOTS=1 go test ./...
package testing
