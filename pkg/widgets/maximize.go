package widgets

import (
	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/node"
)

// Maximize forces the Maximize objective onto its children along Axis, or
// along both axes when Both is set.
type Maximize struct {
	Axis layout.Axis
	Both bool
}

// MaximizeOf returns a Maximize along axis.
func MaximizeOf(axis layout.Axis) Maximize {
	return Maximize{Axis: axis}
}

// MaximizeBoth returns a Maximize along both axes.
func MaximizeBoth() Maximize {
	return Maximize{Both: true}
}

// Build declares the maximize and runs children against it.
func (m Maximize) Build(loc identity.Location, ctx *core.Context, children func(*core.Context)) node.ID {
	_, id := core.Build(ctx, loc, maximizeDecl{m})
	core.BuildChildren(ctx, id, children)
	return id
}

type maximize struct {
	core.Container
	axis layout.Axis
	both bool
}

func (*maximize) Kind() identity.Kind { return KindMaximize }

func (m *maximize) Layout(o *core.Owner, _ node.ID, q layout.Query) layout.Response {
	cq := q.WithObjective(m.axis, layout.Maximize)
	if m.both {
		cq = cq.WithObjective(layout.Horizontal, layout.Maximize).WithObjective(layout.Vertical, layout.Maximize)
	}
	return overlay(o, m.ChildIDs(), cq, 0, 0)
}

type maximizeDecl struct{ Maximize }

func (maximizeDecl) Kind() identity.Kind { return KindMaximize }

func (d maximizeDecl) Create(*core.Context) *maximize {
	return &maximize{axis: d.Axis, both: d.Both}
}

func (d maximizeDecl) Update(_ *core.Context, m *maximize) struct{} {
	m.axis, m.both = d.Axis, d.Both
	return struct{}{}
}

func (maximizeDecl) Initial(*maximize) struct{} { return struct{}{} }
