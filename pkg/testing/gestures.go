package testing

import (
	"fmt"

	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/input"
	"github.com/go-drift/immediate/pkg/node"
	"golang.org/x/image/math/f32"
)

// Tap presses and releases the left button at the center of the first node
// matched by finder.
func (t *WidgetTester) Tap(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Tap: finder matched no nodes: %s", finder.Description())
	}
	return t.TapNode(result.First())
}

// TapNode presses and releases the left button at the center of id as it
// was laid out and drawn in the last frame.
func (t *WidgetTester) TapNode(id node.ID) error {
	p, ok := t.NodeCenter(id)
	if !ok {
		return fmt.Errorf("TapNode: node %s is not in the tree", id)
	}
	t.TapAt(p)
	return nil
}

// TapAt presses and releases the left button at p and returns the press
// response.
func (t *WidgetTester) TapAt(p geometry.Point) input.Response {
	resp := t.SendPointer(p, input.MouseButtonEvent{Button: input.ButtonLeft, Pressed: true})
	t.SendPointer(p, input.MouseButtonEvent{Button: input.ButtonLeft})
	return resp
}

// SendPointer dispatches a pointer event with a ray through p.
func (t *WidgetTester) SendPointer(p geometry.Point, ev input.Event) input.Response {
	return t.ui.RegisterEvent(ev, geometry.PointerRay(p.X, p.Y))
}

// SendKey presses and releases key and returns the press response.
func (t *WidgetTester) SendKey(key input.Key) input.Response {
	resp := t.ui.RegisterEvent(input.KeyEvent{Key: key, Pressed: true}, geometry.Ray{})
	t.ui.RegisterEvent(input.KeyEvent{Key: key}, geometry.Ray{})
	return resp
}

// SendChar dispatches one character event.
func (t *WidgetTester) SendChar(r rune) input.Response {
	return t.ui.RegisterEvent(input.CharEvent{Rune: r}, geometry.Ray{})
}

// EnterText sends every rune of s as a character event.
func (t *WidgetTester) EnterText(s string) {
	for _, r := range s {
		t.SendChar(r)
	}
}

// FocusNext moves focus forward through the traversal order.
func (t *WidgetTester) FocusNext() input.Response {
	return t.ui.RegisterEvent(input.FocusForwardEvent{}, geometry.Ray{})
}

// FocusPrevious moves focus backward through the traversal order.
func (t *WidgetTester) FocusPrevious() input.Response {
	return t.ui.RegisterEvent(input.FocusBackwardEvent{}, geometry.Ray{})
}

// NodeCenter returns the screen-space center of id.
func (t *WidgetTester) NodeCenter(id node.ID) (geometry.Point, bool) {
	var (
		center geometry.Point
		found  bool
	)
	t.ui.Owner().WalkWorld(t.ui.RootID(), geometry.Identity(), func(nid node.ID, n *node.Node, world f32.Mat4) bool {
		if found {
			return false
		}
		if nid == id {
			r := core.WorldRect(world, n.Size)
			x, y := r.Center()
			center, found = geometry.Point{X: x, Y: y}, true
			return false
		}
		return true
	})
	return center, found
}
