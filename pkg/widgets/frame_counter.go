package widgets

import (
	"strconv"

	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/draw"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/node"
)

// FrameCounter counts the frames it has been declared in and displays the
// count. Build returns the count including the current frame, so it is 1
// on the first frame.
type FrameCounter struct {
	Prefix string
}

// Build declares the counter and returns its count.
func (f FrameCounter) Build(loc identity.Location, ctx *core.Context) int {
	count, _ := core.Build(ctx, loc, frameCounterDecl{f})
	return count
}

type frameCounter struct {
	prefix string
	count  int
}

func (*frameCounter) Kind() identity.Kind { return KindFrameCounter }

func (f *frameCounter) text() string {
	return f.prefix + strconv.Itoa(f.count)
}

func (f *frameCounter) Layout(o *core.Owner, _ node.ID, q layout.Query) layout.Response {
	return layout.ResolveSize(measureText(o, o.Services.Glyphs, f.text(), o.Services.Theme.FontSize), q)
}

func (f *frameCounter) Draw(o *core.Owner, _ node.ID, list *draw.List) {
	theme := o.Services.Theme
	pushText(o, list, o.Services.Glyphs, f.text(), theme.FontSize, 0, 0, theme.Foreground)
}

type frameCounterDecl struct{ FrameCounter }

func (frameCounterDecl) Kind() identity.Kind { return KindFrameCounter }

func (d frameCounterDecl) Create(*core.Context) *frameCounter {
	return &frameCounter{prefix: d.Prefix, count: 1}
}

func (d frameCounterDecl) Update(_ *core.Context, f *frameCounter) int {
	f.prefix = d.Prefix
	f.count++
	return f.count
}

func (frameCounterDecl) Initial(f *frameCounter) int { return f.count }
