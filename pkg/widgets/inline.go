package widgets

import (
	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/draw"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/input"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/node"
)

// Inline lays its children out left to right with a fixed separator
// between them. When the width is bounded and a child no longer fits,
// layout stops there and reports Inconsistencies horizontally; the
// children that fit are still laid out and displayed. The rest are
// neither drawn nor hit tested, and cannot take focus.
type Inline struct {
	// Separator is the gap between children. Defaults to the theme
	// separator if zero.
	Separator float32
}

// InlineOf returns an inline row with the given separator.
func InlineOf(separator float32) Inline {
	return Inline{Separator: separator}
}

// Build declares the row and runs children against it.
func (i Inline) Build(loc identity.Location, ctx *core.Context, children func(*core.Context)) node.ID {
	_, id := core.Build(ctx, loc, inlineDecl{i})
	core.BuildChildren(ctx, id, children)
	return id
}

type inline struct {
	core.Container
	separator float32
	// validPrefix is the number of leading children that fit in the last
	// layout pass.
	validPrefix int
}

func (*inline) Kind() identity.Kind { return KindInline }

// VisibleChildIDs returns the children that fit in the last layout pass.
func (in *inline) VisibleChildIDs() []node.ID {
	children := in.ChildIDs()
	return children[:min(in.validPrefix, len(children))]
}

func (in *inline) Layout(o *core.Owner, _ node.ID, q layout.Query) layout.Response {
	sep := pickSize(in.separator, o.Services.Theme.Separator)
	extent, bounded := q.Width.Extent()

	var resp layout.Response
	var x float32
	overflow := false
	in.validPrefix = 0
	for i, child := range in.ChildIDs() {
		start := x
		if i > 0 {
			start += sep
		}
		cq := q.WithObjective(layout.Horizontal, layout.Minimize).WithBound(layout.Horizontal, layout.Unbounded)
		if bounded {
			cq = cq.WithBound(layout.Horizontal, layout.Finite(extent-start))
		}
		if overflow {
			// Children past the overflow point get no space.
			o.Layout(child, cq.WithBound(layout.Horizontal, layout.Finite(0)))
			continue
		}
		cr := o.Layout(child, cq)
		if bounded && (cr.Horizontal != layout.Ok || start+cr.Size.Width > extent) {
			overflow = true
			continue
		}
		o.Place(child, geometry.Translate(start, 0, 0))
		x = start + cr.Size.Width
		resp.Size.Height = max(resp.Size.Height, cr.Size.Height)
		resp.Vertical = layout.Worst(resp.Vertical, cr.Vertical)
		in.validPrefix++
	}

	own := layout.ResolveSize(geometry.Size{Width: x, Height: resp.Size.Height}, q)
	own.Vertical = layout.Worst(own.Vertical, resp.Vertical)
	if overflow {
		own.Horizontal = layout.Worst(own.Horizontal, layout.Inconsistencies)
	}
	return own
}

func (in *inline) Draw(o *core.Owner, _ node.ID, list *draw.List) {
	o.DrawChildren(in.VisibleChildIDs(), list)
}

func (in *inline) HitTest(o *core.Owner, _ node.ID, ray geometry.Ray, depth int, hits *input.Hits) {
	o.HitTestChildren(in.VisibleChildIDs(), ray, depth+1, hits)
}

type inlineDecl struct{ Inline }

func (inlineDecl) Kind() identity.Kind { return KindInline }

func (d inlineDecl) Create(*core.Context) *inline { return &inline{separator: d.Separator} }

func (d inlineDecl) Update(_ *core.Context, in *inline) struct{} {
	in.separator = d.Separator
	return struct{}{}
}

func (inlineDecl) Initial(*inline) struct{} { return struct{}{} }
