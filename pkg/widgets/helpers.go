package widgets

import (
	"image/color"
	"log/slog"

	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/draw"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/glyph"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/input"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/node"
)

// Kinds of the built-in widgets.
var (
	KindWindow       = identity.RegisterKind("window")
	KindPadding      = identity.RegisterKind("padding")
	KindInline       = identity.RegisterKind("inline")
	KindCenter       = identity.RegisterKind("center")
	KindMaximize     = identity.RegisterKind("maximize")
	KindButton       = identity.RegisterKind("button")
	KindCheckbox     = identity.RegisterKind("checkbox")
	KindLabel        = identity.RegisterKind("label")
	KindFrameCounter = identity.RegisterKind("frame-counter")
	KindSpacer       = identity.RegisterKind("spacer")
	KindTextInput    = identity.RegisterKind("text-input")
	KindImage        = identity.RegisterKind("image")
)

func pickColor(c, fallback color.NRGBA) color.NRGBA {
	if c == (color.NRGBA{}) {
		return fallback
	}
	return c
}

func pickSize(v, fallback float32) float32 {
	if v <= 0 {
		return fallback
	}
	return v
}

// shade darkens c by f in [0, 1].
func shade(c color.NRGBA, f float32) color.NRGBA {
	k := 1 - f
	return color.NRGBA{R: uint8(float32(c.R) * k), G: uint8(float32(c.G) * k), B: uint8(float32(c.B) * k), A: c.A}
}

// measureText returns the line box of text, logging and returning zero on
// a provider error.
func measureText(o *core.Owner, p glyph.Provider, text string, size float32) geometry.Size {
	s, err := glyph.Measure(p, text, size)
	if err != nil {
		o.Services.Logger.Warn("measure text failed", slog.String("text", text), slog.Any("error", err))
		return geometry.Size{}
	}
	return s
}

// pushText appends text with its line box's top-left at (x, y).
func pushText(o *core.Owner, list *draw.List, p glyph.Provider, text string, size, x, y float32, c color.NRGBA) {
	cmd, err := glyph.Quads(p, text, size, c, nil)
	if err != nil {
		o.Services.Logger.Warn("draw text failed", slog.String("text", text), slog.Any("error", err))
		return
	}
	if len(cmd.Vertices) == 0 {
		return
	}
	cmd.Model = geometry.Translate(x, y, 0)
	list.Push(cmd)
}

// overlay lays every child out against the same query at the given offset
// and returns the largest child size together with the merged statuses.
func overlay(o *core.Owner, children []node.ID, q layout.Query, dx, dy float32) layout.Response {
	var resp layout.Response
	for _, child := range children {
		cr := o.Layout(child, q)
		o.Place(child, geometry.Translate(dx, dy, 0))
		resp.Size.Width = max(resp.Size.Width, cr.Size.Width)
		resp.Size.Height = max(resp.Size.Height, cr.Size.Height)
		resp = resp.MergeStatus(cr)
	}
	return resp
}

// boundedHitTest recurses into children only when the ray meets the
// node's own bounds.
func boundedHitTest(o *core.Owner, id node.ID, children []node.ID, ray geometry.Ray, depth int, hits *input.Hits) {
	_, x, y, ok := ray.IntersectPlane()
	if !ok || !geometry.RectFromSize(o.Node(id).Size).Contains(x, y) {
		return
	}
	o.HitTestChildren(children, ray, depth+1, hits)
}

// isActivation reports whether ev presses a button-like widget.
func isActivation(ev input.Event) bool {
	switch e := ev.(type) {
	case input.MouseButtonEvent:
		return e.Button == input.ButtonLeft && e.Pressed
	case input.KeyEvent:
		return e.Pressed && (e.Key == input.KeyEnter || e.Key == input.KeySpace)
	}
	return false
}
