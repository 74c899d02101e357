package engine

import (
	"log/slog"

	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/focus"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/input"
	"github.com/go-drift/immediate/pkg/node"
)

// RegisterEvent dispatches one input event.
//
// Pointer events are hit tested with ray and offered to the candidates
// closest first. A Registered response stops propagation; a
// PassivelyRegistered or Pass response lets the next candidate see the
// event. A left press also moves keyboard focus to the first focusable
// candidate that reacted, or clears it if none did. The node that
// registered a left press also receives the next left release, even when
// the release happens outside it.
//
// Keyboard and character events go to the focused node; ray is ignored.
// Tab, Shift+Tab and the focus events move focus through the traversal
// order, and arrow keys the focused node passes on move it spatially.
//
// The result is the strongest response any node gave.
func (in *Interface) RegisterEvent(ev input.Event, ray geometry.Ray) (resp input.Response) {
	if in.ctx != nil {
		panic(&errors.ReconcileError{
			Op:         "engine.RegisterEvent",
			Identity:   in.owner.Node(in.root).Identity.String(),
			StackTrace: errors.CaptureStack(),
		})
	}
	if in.recoverPanics {
		defer errors.RecoverWithCallback("engine.RegisterEvent", func(any) { resp = input.Pass })
	}
	if input.IsPointer(ev) {
		resp = in.dispatchPointer(ev, ray)
	} else {
		resp = in.dispatchFocused(ev)
	}
	in.logger.Debug("event dispatched",
		slog.String("event", eventName(ev)),
		slog.String("response", resp.String()))
	return resp
}

// HitTest returns the candidates under ray, closest first.
func (in *Interface) HitTest(ray geometry.Ray) input.Hits {
	var hits input.Hits
	in.owner.HitTest(in.root, ray, 0, &hits)
	hits.Sort()
	return hits
}

func (in *Interface) dispatchPointer(ev input.Event, ray geometry.Ray) input.Response {
	hits := in.HitTest(ray)
	press, release := isLeft(ev, true), isLeft(ev, false)
	fm := in.owner.Services.Focus

	result := input.Pass
	focused := false
	captureSeen := false
	if press {
		in.captured = node.Nil
	}
	for _, hit := range hits {
		r := in.owner.Deliver(hit.Node, hit, ev)
		captureSeen = captureSeen || hit.Node == in.captured
		if r == input.Pass {
			continue
		}
		if press && !focused && in.focusable(hit.Node) {
			focused = fm.Request(hit.Node)
		}
		result = max(result, r)
		if r == input.Registered {
			if press {
				in.captured = hit.Node
			}
			break
		}
	}
	if press && !focused {
		fm.Clear()
	}
	if release {
		if !captureSeen && !in.captured.IsNil() && in.owner.Arena().Contains(in.captured) {
			result = max(result, in.owner.Deliver(in.captured, input.Hit{Node: in.captured}, ev))
		}
		in.captured = node.Nil
	}
	return result
}

func (in *Interface) dispatchFocused(ev input.Event) input.Response {
	fm := in.owner.Services.Focus
	switch e := ev.(type) {
	case input.FocusForwardEvent:
		return moved(fm.Move(1))
	case input.FocusBackwardEvent:
		return moved(fm.Move(-1))
	case input.KeyEvent:
		if e.Pressed && e.Key == input.KeyTab {
			if e.Modifiers&input.ModShift != 0 {
				return moved(fm.Move(-1))
			}
			return moved(fm.Move(1))
		}
	}

	target := fm.Primary()
	resp := input.Pass
	if !target.IsNil() && in.owner.Arena().Contains(target) {
		resp = in.owner.Deliver(target, input.Hit{Node: target}, ev)
	}
	if resp != input.Pass {
		return resp
	}
	if e, ok := ev.(input.KeyEvent); ok && e.Pressed {
		if d, ok := arrowDirection(e.Key); ok {
			return moved(fm.MoveInDirection(d))
		}
	}
	return resp
}

func (in *Interface) focusable(id node.ID) bool {
	f, ok := in.owner.Node(id).Payload.(core.Focusable)
	return ok && f.Focusable()
}

func moved(ok bool) input.Response {
	if ok {
		return input.Registered
	}
	return input.Pass
}

func isLeft(ev input.Event, pressed bool) bool {
	e, ok := ev.(input.MouseButtonEvent)
	return ok && e.Pressed == pressed && e.Button == input.ButtonLeft
}

func arrowDirection(k input.Key) (focus.Direction, bool) {
	switch k {
	case input.KeyUp:
		return focus.Up, true
	case input.KeyDown:
		return focus.Down, true
	case input.KeyLeft:
		return focus.Left, true
	case input.KeyRight:
		return focus.Right, true
	}
	return 0, false
}

func eventName(ev input.Event) string {
	switch ev.(type) {
	case input.MouseButtonEvent:
		return "mouse-button"
	case input.MouseMoveEvent:
		return "mouse-move"
	case input.ScrollEvent:
		return "scroll"
	case input.KeyEvent:
		return "key"
	case input.CharEvent:
		return "char"
	case input.FocusForwardEvent:
		return "focus-forward"
	case input.FocusBackwardEvent:
		return "focus-backward"
	}
	return "unknown"
}
