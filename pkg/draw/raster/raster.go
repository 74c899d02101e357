// Package raster is a software reference implementation of draw.Rasterizer.
//
// It fills triangle primitives with golang.org/x/image/vector and expands
// lines and points into thin quads. It exists for tests, headless
// rendering and the CLI's PNG export; real applications plug a GPU backend
// in behind the same interface.
package raster

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"math"

	"github.com/go-drift/immediate/pkg/draw"
	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/resource"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/vector"
)

// Image is an RGBA target.
type Image struct {
	*image.RGBA
}

// NewImage allocates a target of the given pixel size.
func NewImage(width, height int) *Image {
	return &Image{RGBA: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Size implements draw.Target.
func (i *Image) Size() geometry.Size {
	b := i.Bounds()
	return geometry.Size{Width: float32(b.Dx()), Height: float32(b.Dy())}
}

// Clear fills the image with c.
func (i *Image) Clear(c color.Color) {
	stddraw.Draw(i.RGBA, i.Bounds(), image.NewUniform(c), image.Point{}, stddraw.Src)
}

// Rasterizer fills draw lists into an Image.
type Rasterizer struct {
	// Resources resolves command textures. A command referencing a texture
	// the registry no longer holds fails the frame.
	Resources *resource.Registry
	// LineWidth is the width in pixels used for line primitives.
	LineWidth float32

	z *vector.Rasterizer
}

// New returns a rasterizer resolving textures against resources, which
// may be nil when no command is textured.
func New(resources *resource.Registry) *Rasterizer {
	return &Rasterizer{Resources: resources, LineWidth: 1}
}

// Rasterize implements draw.Rasterizer. The target must be an *Image.
//
// Textured commands are checked against the registry and then shaded with
// their vertex colour; sampling is left to real backends.
func (r *Rasterizer) Rasterize(list draw.List, target draw.Target) error {
	img, ok := target.(*Image)
	if !ok {
		return &errors.FrameError{
			Op:   "raster.Rasterize",
			Kind: errors.KindUnknown,
			Err:  fmt.Errorf("unsupported target %T", target),
		}
	}
	b := img.Bounds()
	if r.z == nil {
		r.z = vector.NewRasterizer(b.Dx(), b.Dy())
	}
	for _, cmd := range list.Flatten() {
		if cmd.Texture != nil {
			if _, err := r.Resources.Resolve(*cmd.Texture); err != nil {
				return err
			}
		}
		if err := r.command(img, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Rasterizer) command(img *Image, cmd draw.Command) error {
	if len(cmd.Vertices) == 0 {
		return nil
	}
	pts := make([]f32.Vec3, len(cmd.Vertices))
	for i, v := range cmd.Vertices {
		pts[i] = geometry.Apply(cmd.Model, v.Position)
	}
	indices := cmd.Indices
	if len(indices) == 0 {
		indices = make([]uint32, len(pts))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	for _, idx := range indices {
		if int(idx) >= len(pts) {
			return &errors.FrameError{
				Op:   "raster.Rasterize",
				Kind: errors.KindUnknown,
				Err:  fmt.Errorf("index %d out of range for %d vertices", idx, len(pts)),
			}
		}
	}

	b := img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	switch cmd.Mode {
	case draw.Triangles:
		for i := 0; i+2 < len(indices); i += 3 {
			r.triangle(pts[indices[i]], pts[indices[i+1]], pts[indices[i+2]])
		}
	case draw.TriangleFan:
		for i := 1; i+1 < len(indices); i++ {
			r.triangle(pts[indices[0]], pts[indices[i]], pts[indices[i+1]])
		}
	case draw.TriangleStrip:
		for i := 0; i+2 < len(indices); i++ {
			r.triangle(pts[indices[i]], pts[indices[i+1]], pts[indices[i+2]])
		}
	case draw.Lines:
		for i := 0; i+1 < len(indices); i += 2 {
			r.line(pts[indices[i]], pts[indices[i+1]])
		}
	case draw.LineStrip:
		for i := 0; i+1 < len(indices); i++ {
			r.line(pts[indices[i]], pts[indices[i+1]])
		}
	case draw.Points:
		for _, idx := range indices {
			p := pts[idx]
			r.rect(p[0]-0.5, p[1]-0.5, p[0]+0.5, p[1]+0.5)
		}
	}
	src := image.NewUniform(cmd.Vertices[0].Color)
	r.z.Draw(img.RGBA, b, src, image.Point{})
	return nil
}

func (r *Rasterizer) triangle(a, b, c f32.Vec3) {
	r.z.MoveTo(a[0], a[1])
	r.z.LineTo(b[0], b[1])
	r.z.LineTo(c[0], c[1])
	r.z.ClosePath()
}

func (r *Rasterizer) rect(x0, y0, x1, y1 float32) {
	r.z.MoveTo(x0, y0)
	r.z.LineTo(x1, y0)
	r.z.LineTo(x1, y1)
	r.z.LineTo(x0, y1)
	r.z.ClosePath()
}

// line expands a segment into a quad LineWidth pixels wide.
func (r *Rasterizer) line(a, b f32.Vec3) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	half := r.LineWidth / 2
	// Axis-aligned segments are the common case (outlines); handle them
	// without normalizing.
	switch {
	case dy == 0:
		x0, x1 := min(a[0], b[0]), max(a[0], b[0])
		r.rect(x0-half, a[1]-half, x1+half, a[1]+half)
	case dx == 0:
		y0, y1 := min(a[1], b[1]), max(a[1], b[1])
		r.rect(a[0]-half, y0-half, a[0]+half, y1+half)
	default:
		length := float32(math.Hypot(float64(dx), float64(dy)))
		nx, ny := -dy/length*half, dx/length*half
		r.z.MoveTo(a[0]+nx, a[1]+ny)
		r.z.LineTo(b[0]+nx, b[1]+ny)
		r.z.LineTo(b[0]-nx, b[1]-ny)
		r.z.LineTo(a[0]-nx, a[1]-ny)
		r.z.ClosePath()
	}
}
