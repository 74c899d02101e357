package widgets

import (
	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/node"
)

// Center centers its children horizontally within the available width.
// Children are laid out at their minimum size; the center's height is
// the tallest child's height.
type Center struct{}

// Build declares the center and runs children against it.
func (c Center) Build(loc identity.Location, ctx *core.Context, children func(*core.Context)) node.ID {
	_, id := core.Build(ctx, loc, centerDecl{})
	core.BuildChildren(ctx, id, children)
	return id
}

type center struct{ core.Container }

func (*center) Kind() identity.Kind { return KindCenter }

func (c *center) Layout(o *core.Owner, _ node.ID, q layout.Query) layout.Response {
	cq := q.WithObjective(layout.Horizontal, layout.Minimize).WithObjective(layout.Vertical, layout.Minimize)

	var resp layout.Response
	for _, child := range c.ChildIDs() {
		cr := o.Layout(child, cq)
		resp.Size.Width = max(resp.Size.Width, cr.Size.Width)
		resp.Size.Height = max(resp.Size.Height, cr.Size.Height)
		resp = resp.MergeStatus(cr)
	}

	width := resp.Size.Width
	if extent, ok := q.Width.Extent(); ok && extent > width {
		width = extent
	}
	for _, child := range c.ChildIDs() {
		dx := (width - o.Node(child).Size.Width) / 2
		o.Place(child, geometry.Translate(dx, 0, 0))
	}
	resp.Size.Width = width
	return resp
}

type centerDecl struct{}

func (centerDecl) Kind() identity.Kind { return KindCenter }

func (centerDecl) Create(*core.Context) *center { return &center{} }

func (centerDecl) Update(*core.Context, *center) struct{} { return struct{}{} }

func (centerDecl) Initial(*center) struct{} { return struct{}{} }
