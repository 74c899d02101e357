package widgets

import (
	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/node"
)

// Padding adds a fixed margin on every side of its child. The child is
// offered the available space minus the margins.
//
// More than one child is allowed; they are laid out on top of each other
// inside the same padded area.
type Padding struct {
	// Amount is the margin on each side. Defaults to the theme padding
	// if zero.
	Amount float32
}

// PaddingOf returns a padding of the given amount.
func PaddingOf(amount float32) Padding {
	return Padding{Amount: amount}
}

// Build declares the padding and runs children against it.
func (p Padding) Build(loc identity.Location, ctx *core.Context, children func(*core.Context)) node.ID {
	_, id := core.Build(ctx, loc, paddingDecl{p})
	core.BuildChildren(ctx, id, children)
	return id
}

type padding struct {
	core.Container
	amount float32
}

func (*padding) Kind() identity.Kind { return KindPadding }

func (p *padding) Layout(o *core.Owner, _ node.ID, q layout.Query) layout.Response {
	m := pickSize(p.amount, o.Services.Theme.Padding)
	inner := overlay(o, p.ChildIDs(), q.Shrink(2*m, 2*m), m, m)
	own := layout.ResolveSize(geometry.Size{
		Width:  inner.Size.Width + 2*m,
		Height: inner.Size.Height + 2*m,
	}, q)
	return own.MergeStatus(inner)
}

type paddingDecl struct{ Padding }

func (paddingDecl) Kind() identity.Kind { return KindPadding }

func (d paddingDecl) Create(*core.Context) *padding { return &padding{amount: d.Amount} }

func (d paddingDecl) Update(_ *core.Context, p *padding) struct{} {
	p.amount = d.Amount
	return struct{}{}
}

func (paddingDecl) Initial(*padding) struct{} { return struct{}{} }
