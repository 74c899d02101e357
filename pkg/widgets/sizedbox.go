package widgets

import (
	"image/color"

	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/draw"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/node"
)

// Spacer occupies a fixed minimum size, optionally filled with a color.
type Spacer struct {
	Width, Height float32
	Color         color.NRGBA
}

// SpacerOf returns a spacer of the given size.
func SpacerOf(width, height float32) Spacer {
	return Spacer{Width: width, Height: height}
}

// WithColor returns a copy of the spacer filled with c.
func (s Spacer) WithColor(c color.NRGBA) Spacer {
	s.Color = c
	return s
}

// Build declares the spacer.
func (s Spacer) Build(loc identity.Location, ctx *core.Context) node.ID {
	_, id := core.Build(ctx, loc, spacerDecl{s})
	return id
}

type spacer struct{ Spacer }

func (*spacer) Kind() identity.Kind { return KindSpacer }

func (s *spacer) Layout(_ *core.Owner, _ node.ID, q layout.Query) layout.Response {
	return layout.ResolveSize(geometry.Size{Width: s.Width, Height: s.Height}, q)
}

func (s *spacer) Draw(o *core.Owner, id node.ID, list *draw.List) {
	if s.Color.A == 0 {
		return
	}
	list.Push(draw.Quad(geometry.RectFromSize(o.Node(id).Size), s.Color))
}

type spacerDecl struct{ Spacer }

func (spacerDecl) Kind() identity.Kind { return KindSpacer }

func (d spacerDecl) Create(*core.Context) *spacer { return &spacer{d.Spacer} }

func (d spacerDecl) Update(_ *core.Context, s *spacer) struct{} {
	s.Spacer = d.Spacer
	return struct{}{}
}

func (spacerDecl) Initial(*spacer) struct{} { return struct{}{} }
