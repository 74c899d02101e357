package cmd

import (
	"fmt"
	"image/color"

	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/engine"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/input"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/resource"
	"github.com/go-drift/immediate/pkg/widgets"
)

var barColor = color.NRGBA{R: 0x33, G: 0x66, B: 0xcc, A: 0xff}

// demo is the application state of the demo scene. Widget state such as
// the checkbox and the text field lives in the engine; demo only keeps
// what the scene derives from their feedback.
type demo struct {
	title  string
	font   resource.Handle
	clicks int
	name   string
}

func newDemo(title string, font resource.Handle) *demo {
	return &demo{title: title, font: font}
}

func (d *demo) build(ctx *core.Context) error {
	var err error
	widgets.PaddingOf(4).Build(identity.Here(), ctx, func(ctx *core.Context) {
		err = widgets.LabelOf(d.title).WithFont(d.font).Build(identity.Here(), ctx)
	})
	if err != nil {
		return err
	}

	widgets.InlineOf(0).Build(identity.Here(), ctx, func(ctx *core.Context) {
		if widgets.ButtonOf("Increment").Build(identity.Here(), ctx) {
			d.clicks++
		}
		if widgets.ButtonOf("Reset").WithDisabled(d.clicks == 0).Build(identity.Here(), ctx) {
			d.clicks = 0
		}
		widgets.FrameCounter{Prefix: "frame "}.Build(identity.Here(), ctx)
	})

	if widgets.CheckboxOf("Details").Build(identity.Here(), ctx) {
		widgets.PaddingOf(2).Build(identity.Here(), ctx, func(ctx *core.Context) {
			err = widgets.LabelOf(fmt.Sprintf("clicks: %d", d.clicks)).Build(identity.Here(), ctx)
		})
		if err != nil {
			return err
		}
	}

	d.name = widgets.TextInputOf("your name").Build(identity.Here(), ctx)
	widgets.Center{}.Build(identity.Here(), ctx, func(ctx *core.Context) {
		greeting := "Hello!"
		if d.name != "" {
			greeting = fmt.Sprintf("Hello, %s!", d.name)
		}
		err = widgets.LabelOf(greeting).Build(identity.Here(), ctx)
	})
	if err != nil {
		return err
	}

	widgets.MaximizeOf(layout.Horizontal).Build(identity.Here(), ctx, func(ctx *core.Context) {
		widgets.SpacerOf(1, 4).WithColor(barColor).Build(identity.Here(), ctx)
	})
	return nil
}

// typeInto focuses the first text field and sends text to it one rune at
// a time.
func typeInto(ui *engine.Interface, text string) error {
	for _, t := range ui.Focus().Order() {
		if ui.Owner().Node(t.Node).Identity.Kind != widgets.KindTextInput {
			continue
		}
		ui.Focus().Request(t.Node)
		for _, r := range text {
			ui.RegisterEvent(input.CharEvent{Rune: r}, geometry.Ray{})
		}
		return nil
	}
	return fmt.Errorf("scene has no text field")
}

// click presses and releases the left button at p.
func click(ui *engine.Interface, p geometry.Point) input.Response {
	ray := geometry.PointerRay(p.X, p.Y)
	resp := ui.RegisterEvent(input.MouseButtonEvent{Button: input.ButtonLeft, Pressed: true}, ray)
	ui.RegisterEvent(input.MouseButtonEvent{Button: input.ButtonLeft}, ray)
	return resp
}
