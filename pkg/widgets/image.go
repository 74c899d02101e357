package widgets

import (
	"fmt"
	"image/color"

	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/draw"
	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/node"
	"github.com/go-drift/immediate/pkg/resource"
	"golang.org/x/image/math/f32"
)

// ImageFit controls how an image fills the space it is given.
type ImageFit uint8

const (
	// ImageFitNone draws at the declared size.
	ImageFitNone ImageFit = iota
	// ImageFitFill stretches to the laid out size.
	ImageFitFill
)

// Image draws a texture held in the resource registry.
//
//	widgets.Image{Texture: logo, Width: 64, Height: 64}.Build(identity.Here(), ctx)
type Image struct {
	Texture       resource.Handle
	Width, Height float32
	Fit           ImageFit
	// Tint multiplies the texture. Defaults to opaque white if zero.
	Tint color.NRGBA
}

// Build declares the image. The error is non-nil when the texture has been
// dropped by the backend; the image then reports WontDisplay.
func (i Image) Build(loc identity.Location, ctx *core.Context) error {
	err, _ := core.Build(ctx, loc, imageDecl{i})
	return err
}

type imageNode struct {
	Image
	err error
}

func (*imageNode) Kind() identity.Kind { return KindImage }

func (img *imageNode) resolve(ctx *core.Context) {
	img.err = nil
	if img.Texture.Kind() != resource.Texture {
		img.err = &errors.FrameError{
			Op:   "widgets.Image",
			Kind: errors.KindResource,
			Node: img.Texture.String(),
			Err:  fmt.Errorf("resource is a %s, want %s", img.Texture.Kind(), resource.Texture),
		}
		return
	}
	_, img.err = ctx.Resources().Resolve(img.Texture)
}

func (img *imageNode) Layout(_ *core.Owner, _ node.ID, q layout.Query) layout.Response {
	if img.err != nil {
		return layout.Response{Horizontal: layout.WontDisplay, Vertical: layout.WontDisplay}
	}
	return layout.ResolveSize(geometry.Size{Width: img.Width, Height: img.Height}, q)
}

func (img *imageNode) Draw(o *core.Owner, id node.ID, list *draw.List) {
	if img.err != nil {
		return
	}
	rect := geometry.Rect{Width: img.Width, Height: img.Height}
	if img.Fit == ImageFitFill {
		rect = geometry.RectFromSize(o.Node(id).Size)
	}
	tex := img.Texture
	list.Push(draw.TexturedQuad(rect, f32.Vec2{0, 0}, f32.Vec2{1, 1},
		pickColor(img.Tint, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}), &tex))
}

type imageDecl struct{ Image }

func (imageDecl) Kind() identity.Kind { return KindImage }

func (d imageDecl) Create(ctx *core.Context) *imageNode {
	img := &imageNode{Image: d.Image}
	img.resolve(ctx)
	return img
}

func (d imageDecl) Update(ctx *core.Context, img *imageNode) error {
	img.Image = d.Image
	img.resolve(ctx)
	return img.err
}

func (imageDecl) Initial(img *imageNode) error { return img.err }
