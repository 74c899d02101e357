package widgets

import (
	"image/color"

	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/draw"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/input"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/node"
)

// Window stacks its children vertically, giving each an equal share of
// the height. When the height is unbounded each share is the tallest
// child's height.
type Window struct {
	// Background fills the window. Defaults to the theme background.
	Background color.NRGBA
}

// WithBackground returns a copy of the window with the given background.
func (w Window) WithBackground(c color.NRGBA) Window {
	w.Background = c
	return w
}

// Build declares the window and runs children against it.
func (w Window) Build(loc identity.Location, ctx *core.Context, children func(*core.Context)) node.ID {
	_, id := core.Build(ctx, loc, windowDecl{w})
	core.BuildChildren(ctx, id, children)
	return id
}

// NewWindowPayload returns the payload of a root window, for engines that
// allocate the root node themselves.
func NewWindowPayload(background color.NRGBA) core.ContainerPayload {
	return &window{background: background}
}

type window struct {
	core.Container
	background color.NRGBA
}

func (*window) Kind() identity.Kind { return KindWindow }

func (w *window) Layout(o *core.Owner, _ node.ID, q layout.Query) layout.Response {
	children := w.ChildIDs()
	if len(children) == 0 {
		return layout.ResolveSize(geometry.Size{}, q)
	}
	n := float32(len(children))

	var resp layout.Response
	var slot float32
	if extent, ok := q.Height.Extent(); ok {
		slot = extent / n
		cq := q.WithBound(layout.Vertical, layout.Finite(slot))
		for _, child := range children {
			cr := o.Layout(child, cq)
			resp.Size.Width = max(resp.Size.Width, cr.Size.Width)
			resp = resp.MergeStatus(cr)
		}
	} else {
		for _, child := range children {
			cr := o.Layout(child, q)
			resp.Size.Width = max(resp.Size.Width, cr.Size.Width)
			slot = max(slot, cr.Size.Height)
			resp = resp.MergeStatus(cr)
		}
	}
	for i, child := range children {
		o.Place(child, geometry.Translate(0, float32(i)*slot, 0))
	}

	own := layout.ResolveSize(geometry.Size{Width: resp.Size.Width, Height: slot * n}, q)
	return own.MergeStatus(resp)
}

func (w *window) Draw(o *core.Owner, id node.ID, list *draw.List) {
	bg := pickColor(w.background, o.Services.Theme.Background)
	if bg.A > 0 {
		list.Push(draw.Quad(geometry.RectFromSize(o.Node(id).Size), bg))
	}
	o.DrawChildren(w.ChildIDs(), list)
}

func (w *window) HitTest(o *core.Owner, id node.ID, ray geometry.Ray, depth int, hits *input.Hits) {
	boundedHitTest(o, id, w.ChildIDs(), ray, depth, hits)
}

type windowDecl struct{ Window }

func (windowDecl) Kind() identity.Kind { return KindWindow }

func (d windowDecl) Create(*core.Context) *window { return &window{background: d.Background} }

func (d windowDecl) Update(_ *core.Context, w *window) struct{} {
	w.background = d.Background
	return struct{}{}
}

func (windowDecl) Initial(*window) struct{} { return struct{}{} }
