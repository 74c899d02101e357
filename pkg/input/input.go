// Package input defines the normalized input events the engine dispatches
// and the hit-test bookkeeping used to route pointer events.
package input

import (
	"cmp"
	"slices"

	"github.com/go-drift/immediate/pkg/node"
)

// Event is one normalized input event. The set of implementations is
// closed; switch on the concrete type.
type Event interface {
	isEvent()
}

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "left"
	}
}

// MouseButtonEvent is a press or release.
type MouseButtonEvent struct {
	Button  MouseButton
	Pressed bool
}

// MouseMoveEvent reports the pointer position in screen space.
type MouseMoveEvent struct {
	X, Y float32
}

// ScrollEvent reports a wheel or trackpad delta.
type ScrollEvent struct {
	DX, DY float32
}

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Key is a platform-independent key code.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeySpace
)

// KeyEvent is a key press or release.
type KeyEvent struct {
	Key       Key
	Pressed   bool
	Modifiers Modifiers
}

// CharEvent carries one character of text input.
type CharEvent struct {
	Rune rune
}

// FocusForwardEvent asks to move keyboard focus to the next target.
type FocusForwardEvent struct{}

// FocusBackwardEvent asks to move keyboard focus to the previous target.
type FocusBackwardEvent struct{}

func (MouseButtonEvent) isEvent()   {}
func (MouseMoveEvent) isEvent()     {}
func (ScrollEvent) isEvent()        {}
func (KeyEvent) isEvent()           {}
func (CharEvent) isEvent()          {}
func (FocusForwardEvent) isEvent()  {}
func (FocusBackwardEvent) isEvent() {}

// IsPointer reports whether e is routed by hit testing.
func IsPointer(e Event) bool {
	switch e.(type) {
	case MouseButtonEvent, MouseMoveEvent, ScrollEvent:
		return true
	}
	return false
}

// IsKeyboard reports whether e is routed to the focus target.
func IsKeyboard(e Event) bool {
	switch e.(type) {
	case KeyEvent, CharEvent:
		return true
	}
	return false
}

// Response is a widget's answer to an event.
type Response uint8

const (
	// Pass means the widget ignored the event; propagation continues.
	Pass Response = iota
	// PassivelyRegistered means the widget reacted but widgets behind it
	// may react too.
	PassivelyRegistered
	// Registered means the widget consumed the event; propagation stops.
	Registered
)

func (r Response) String() string {
	switch r {
	case PassivelyRegistered:
		return "passively-registered"
	case Registered:
		return "registered"
	default:
		return "pass"
	}
}

// Hit is a hit-test candidate: a node and the ray parameter at which the
// ray met it. Smaller distances are closer to the viewer.
type Hit struct {
	Distance float32
	Node     node.ID
	// Depth is the node's tree depth; deeper nodes win distance ties so
	// that a child drawn over its parent is preferred.
	Depth int
	// X and Y are where the ray met the node, in its local space.
	X, Y float32
}

// Hits is a collection of candidates.
type Hits []Hit

// Add appends a candidate.
func (h *Hits) Add(hit Hit) {
	*h = append(*h, hit)
}

// Sort orders candidates closest first, deepest first on ties.
func (h Hits) Sort() {
	slices.SortStableFunc(h, func(a, b Hit) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(b.Depth, a.Depth)
	})
}

// Closest returns the nearest candidate.
func (h Hits) Closest() (Hit, bool) {
	if len(h) == 0 {
		return Hit{}, false
	}
	best := h[0]
	for _, hit := range h[1:] {
		if hit.Distance < best.Distance || (hit.Distance == best.Distance && hit.Depth > best.Depth) {
			best = hit
		}
	}
	return best, true
}
