package widgets

import (
	"unicode/utf8"

	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/draw"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/input"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/node"
	"golang.org/x/text/unicode/norm"
)

// TextInput is a single-line editable text field. It owns its text and
// returns it from Build. Typed characters are kept in NFC form so a base
// letter followed by a combining mark is stored as one composed rune, and
// Backspace removes the whole last character rather than half of it.
//
// Text is only received while the field has keyboard focus.
type TextInput struct {
	Placeholder string
	// Default seeds the text when the field first appears.
	Default string
	// Width is the field width in font-size units. Defaults to 12.
	Width float32
}

// TextInputOf returns a text input showing placeholder while empty.
func TextInputOf(placeholder string) TextInput {
	return TextInput{Placeholder: placeholder}
}

// WithDefault returns a copy of the input seeded with text.
func (t TextInput) WithDefault(text string) TextInput {
	t.Default = text
	return t
}

// Build declares the field and returns its current text.
func (t TextInput) Build(loc identity.Location, ctx *core.Context) string {
	text, _ := core.Build(ctx, loc, textInputDecl{t})
	return text
}

type textInput struct {
	TextInput
	text string
}

func (*textInput) Kind() identity.Kind { return KindTextInput }

func (t *textInput) width(fontSize float32) float32 {
	return pickSize(t.Width, 12) * fontSize
}

func (t *textInput) Layout(o *core.Owner, _ node.ID, q layout.Query) layout.Response {
	theme := o.Services.Theme
	line := measureText(o, o.Services.Glyphs, t.text, theme.FontSize)
	if line.Height == 0 {
		line = measureText(o, o.Services.Glyphs, " ", theme.FontSize)
	}
	return layout.ResolveSize(geometry.Size{
		Width:  t.width(theme.FontSize) + 2*theme.Padding,
		Height: line.Height + 2*theme.Padding,
	}, q)
}

func (t *textInput) Draw(o *core.Owner, id node.ID, list *draw.List) {
	theme := o.Services.Theme
	rect := geometry.RectFromSize(o.Node(id).Size)
	list.Push(draw.Quad(rect, shade(theme.Background, 0.1)))
	if t.text == "" {
		placeholder := theme.Foreground
		placeholder.A /= 2
		pushText(o, list, o.Services.Glyphs, t.Placeholder, theme.FontSize, theme.Padding, theme.Padding, placeholder)
	} else {
		pushText(o, list, o.Services.Glyphs, t.text, theme.FontSize, theme.Padding, theme.Padding, theme.Foreground)
	}
	if o.Services.Focus.Has(id) {
		list.Push(draw.Outline(rect, theme.Focus))
	} else {
		list.Push(draw.Outline(rect, shade(theme.Foreground, 0.5)))
	}
}

func (t *textInput) HandleEvent(_ core.EventContext, ev input.Event) input.Response {
	switch e := ev.(type) {
	case input.CharEvent:
		if e.Rune < 0x20 || e.Rune == utf8.RuneError {
			return input.Pass
		}
		t.text = norm.NFC.String(t.text + string(e.Rune))
		return input.Registered
	case input.KeyEvent:
		if !e.Pressed || e.Key != input.KeyBackspace {
			return input.Pass
		}
		t.text = dropLastCharacter(t.text)
		return input.Registered
	case input.MouseButtonEvent:
		if e.Pressed && e.Button == input.ButtonLeft {
			return input.PassivelyRegistered
		}
	}
	return input.Pass
}

func (t *textInput) Focusable() bool { return true }

// dropLastCharacter removes the last normalization segment of s, so a
// letter and its combining marks go together.
func dropLastCharacter(s string) string {
	if s == "" {
		return s
	}
	if i := norm.NFC.LastBoundary([]byte(s)); i >= 0 && i < len(s) {
		return s[:i]
	}
	_, n := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-n]
}

type textInputDecl struct{ TextInput }

func (textInputDecl) Kind() identity.Kind { return KindTextInput }

func (d textInputDecl) Create(*core.Context) *textInput {
	return &textInput{TextInput: d.TextInput, text: norm.NFC.String(d.Default)}
}

func (d textInputDecl) Update(_ *core.Context, t *textInput) string {
	t.TextInput = d.TextInput
	return t.text
}

func (textInputDecl) Initial(t *textInput) string { return t.text }
