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

// Button is a pressable label.
//
// Build reports a press edge: it returns true on the first build after the
// button was pressed, and false again afterwards until the next press.
//
//	if widgets.ButtonOf("Save").Build(identity.Here(), ctx) {
//	    save()
//	}
type Button struct {
	// Label is the text displayed on the button.
	Label string
	// Disabled ignores presses and removes the button from focus
	// traversal.
	Disabled bool
	// Color is the background color. Defaults to the theme accent if zero.
	Color color.NRGBA
	// TextColor is the label color. Defaults to the theme background if
	// zero.
	TextColor color.NRGBA
	// FontSize defaults to the theme font size if zero.
	FontSize float32
}

// ButtonOf creates a button with the given label.
func ButtonOf(label string) Button {
	return Button{Label: label}
}

// WithDisabled returns a copy of the button with the disabled state set.
func (b Button) WithDisabled(disabled bool) Button {
	b.Disabled = disabled
	return b
}

// WithColor returns a copy of the button with the given colors.
func (b Button) WithColor(bg, text color.NRGBA) Button {
	b.Color = bg
	b.TextColor = text
	return b
}

// WithFontSize returns a copy of the button with the given font size.
func (b Button) WithFontSize(size float32) Button {
	b.FontSize = size
	return b
}

// Build declares the button and returns whether it was pressed since the
// previous build.
func (b Button) Build(loc identity.Location, ctx *core.Context) bool {
	pressed, _ := core.Build(ctx, loc, buttonDecl{b})
	return pressed
}

type button struct {
	Button
	// pressed latches a press until the next build reads it.
	pressed bool
	// held is true between a pointer press and its release.
	held bool
}

func (*button) Kind() identity.Kind { return KindButton }

func (b *button) Layout(o *core.Owner, _ node.ID, q layout.Query) layout.Response {
	theme := o.Services.Theme
	text := measureText(o, o.Services.Glyphs, b.Label, pickSize(b.FontSize, theme.FontSize))
	return layout.ResolveSize(geometry.Size{
		Width:  text.Width + 2*theme.Padding,
		Height: text.Height + 2*theme.Padding,
	}, q)
}

func (b *button) Draw(o *core.Owner, id node.ID, list *draw.List) {
	theme := o.Services.Theme
	size := o.Node(id).Size
	bg := pickColor(b.Color, theme.Accent)
	switch {
	case b.Disabled:
		bg.A /= 2
	case b.held:
		bg = shade(bg, 0.2)
	}
	list.Push(draw.Quad(geometry.RectFromSize(size), bg))

	fontSize := pickSize(b.FontSize, theme.FontSize)
	text := measureText(o, o.Services.Glyphs, b.Label, fontSize)
	pushText(o, list, o.Services.Glyphs, b.Label, fontSize,
		(size.Width-text.Width)/2, (size.Height-text.Height)/2,
		pickColor(b.TextColor, theme.Background))

	if o.Services.Focus.Has(id) {
		list.Push(draw.Outline(geometry.RectFromSize(size), theme.Focus))
	}
}

func (b *button) HandleEvent(_ core.EventContext, ev input.Event) input.Response {
	if b.Disabled {
		return input.Pass
	}
	if isActivation(ev) {
		b.pressed = true
		if _, ok := ev.(input.MouseButtonEvent); ok {
			b.held = true
		}
		return input.Registered
	}
	if e, ok := ev.(input.MouseButtonEvent); ok && !e.Pressed && b.held {
		b.held = false
		return input.Registered
	}
	return input.Pass
}

func (b *button) Focusable() bool { return !b.Disabled }

type buttonDecl struct{ Button }

func (buttonDecl) Kind() identity.Kind { return KindButton }

func (d buttonDecl) Create(*core.Context) *button { return &button{Button: d.Button} }

func (d buttonDecl) Update(_ *core.Context, b *button) bool {
	b.Button = d.Button
	pressed := b.pressed
	b.pressed = false
	return pressed
}

func (buttonDecl) Initial(*button) bool { return false }
