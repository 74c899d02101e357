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

// Checkbox is a box with a label that toggles when pressed. Build returns
// the checked state, which the checkbox owns: Default only seeds it when
// the checkbox first appears.
type Checkbox struct {
	Label   string
	Default bool
	// Color is the box color. Defaults to the theme accent if zero.
	Color color.NRGBA
}

// CheckboxOf creates an unchecked checkbox with the given label.
func CheckboxOf(label string) Checkbox {
	return Checkbox{Label: label}
}

// WithDefault returns a copy of the checkbox seeded with checked.
func (c Checkbox) WithDefault(checked bool) Checkbox {
	c.Default = checked
	return c
}

// Build declares the checkbox and returns whether it is checked.
func (c Checkbox) Build(loc identity.Location, ctx *core.Context) bool {
	checked, _ := core.Build(ctx, loc, checkboxDecl{c})
	return checked
}

type checkbox struct {
	label   string
	color   color.NRGBA
	checked bool
}

func (*checkbox) Kind() identity.Kind { return KindCheckbox }

func (c *checkbox) box(o *core.Owner) float32 {
	return o.Services.Theme.FontSize
}

func (c *checkbox) Layout(o *core.Owner, _ node.ID, q layout.Query) layout.Response {
	theme := o.Services.Theme
	box := c.box(o)
	text := measureText(o, o.Services.Glyphs, c.label, theme.FontSize)
	size := geometry.Size{Width: box, Height: max(box, text.Height)}
	if c.label != "" {
		size.Width += theme.Padding + text.Width
	}
	return layout.ResolveSize(size, q)
}

func (c *checkbox) Draw(o *core.Owner, id node.ID, list *draw.List) {
	theme := o.Services.Theme
	box := c.box(o)
	rect := geometry.Rect{Width: box, Height: box}
	accent := pickColor(c.color, theme.Accent)
	if c.checked {
		list.Push(draw.Quad(rect, accent))
	}
	list.Push(draw.Outline(rect, accent))
	if c.label != "" {
		pushText(o, list, o.Services.Glyphs, c.label, theme.FontSize, box+theme.Padding, 0, theme.Foreground)
	}
	if o.Services.Focus.Has(id) {
		list.Push(draw.Outline(geometry.RectFromSize(o.Node(id).Size), theme.Focus))
	}
}

func (c *checkbox) HandleEvent(_ core.EventContext, ev input.Event) input.Response {
	if isActivation(ev) {
		c.checked = !c.checked
		return input.Registered
	}
	return input.Pass
}

func (c *checkbox) Focusable() bool { return true }

type checkboxDecl struct{ Checkbox }

func (checkboxDecl) Kind() identity.Kind { return KindCheckbox }

func (d checkboxDecl) Create(*core.Context) *checkbox {
	return &checkbox{label: d.Label, color: d.Color, checked: d.Default}
}

func (d checkboxDecl) Update(_ *core.Context, c *checkbox) bool {
	c.label, c.color = d.Label, d.Color
	return c.checked
}

func (checkboxDecl) Initial(c *checkbox) bool { return c.checked }
