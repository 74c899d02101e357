package widgets

import (
	"image/color"

	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/draw"
	"github.com/go-drift/immediate/pkg/glyph"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/node"
	"github.com/go-drift/immediate/pkg/resource"
)

// Label displays a single line of text.
//
// Font, when set, names a glyph.Provider held in the resource registry.
// If the backend has dropped it, Build returns an error wrapping
// errors.ErrResourceDropped and the label reports WontDisplay until a
// live font is supplied.
type Label struct {
	Text string
	// Size defaults to the theme font size if zero.
	Size float32
	// Color defaults to the theme foreground if zero.
	Color color.NRGBA
	Font  *resource.Handle
}

// LabelOf creates a label with the given text.
func LabelOf(text string) Label {
	return Label{Text: text}
}

// WithFont returns a copy of the label using the font resource h.
func (l Label) WithFont(h resource.Handle) Label {
	l.Font = &h
	return l
}

// WithSize returns a copy of the label with the given font size.
func (l Label) WithSize(size float32) Label {
	l.Size = size
	return l
}

// WithColor returns a copy of the label with the given color.
func (l Label) WithColor(c color.NRGBA) Label {
	l.Color = c
	return l
}

// Build declares the label. The error is non-nil when the font resource
// cannot be resolved.
func (l Label) Build(loc identity.Location, ctx *core.Context) error {
	err, _ := core.Build(ctx, loc, labelDecl{l})
	return err
}

type label struct {
	Label
	provider glyph.Provider
	err      error
}

func (*label) Kind() identity.Kind { return KindLabel }

func (l *label) resolve(ctx *core.Context) {
	l.provider, l.err = nil, nil
	if l.Font == nil {
		return
	}
	l.provider, l.err = resource.Lookup[glyph.Provider](ctx.Resources(), *l.Font)
}

func (l *label) glyphs(o *core.Owner) glyph.Provider {
	if l.provider != nil {
		return l.provider
	}
	return o.Services.Glyphs
}

func (l *label) Layout(o *core.Owner, _ node.ID, q layout.Query) layout.Response {
	if l.err != nil {
		return layout.Response{Horizontal: layout.WontDisplay, Vertical: layout.WontDisplay}
	}
	size := measureText(o, l.glyphs(o), l.Text, pickSize(l.Size, o.Services.Theme.FontSize))
	return layout.ResolveSize(size, q)
}

func (l *label) Draw(o *core.Owner, _ node.ID, list *draw.List) {
	if l.err != nil {
		return
	}
	theme := o.Services.Theme
	pushText(o, list, l.glyphs(o), l.Text, pickSize(l.Size, theme.FontSize), 0, 0, pickColor(l.Color, theme.Foreground))
}

type labelDecl struct{ Label }

func (labelDecl) Kind() identity.Kind { return KindLabel }

func (d labelDecl) Create(ctx *core.Context) *label {
	l := &label{Label: d.Label}
	l.resolve(ctx)
	return l
}

func (d labelDecl) Update(ctx *core.Context, l *label) error {
	l.Label = d.Label
	l.resolve(ctx)
	return l.err
}

func (labelDecl) Initial(l *label) error { return l.err }
