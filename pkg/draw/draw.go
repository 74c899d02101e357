// Package draw defines the draw list a frame produces for the rasterizer.
//
// A [List] is a tree: each level carries a local transform that applies to
// its own commands and to every nested child list. Containers wrap their
// children's lists in a list carrying the container's transform, so leaf
// widgets draw in their own local space and never need their absolute
// position.
package draw

import (
	"image/color"

	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/resource"
	"golang.org/x/image/math/f32"
)

// Mode selects how vertices are assembled into primitives.
type Mode uint8

const (
	Triangles Mode = iota
	TriangleFan
	TriangleStrip
	Lines
	LineStrip
	Points
)

func (m Mode) String() string {
	switch m {
	case TriangleFan:
		return "triangle-fan"
	case TriangleStrip:
		return "triangle-strip"
	case Lines:
		return "lines"
	case LineStrip:
		return "line-strip"
	case Points:
		return "points"
	default:
		return "triangles"
	}
}

// Vertex is one vertex of a command's vertex buffer.
type Vertex struct {
	Position f32.Vec3
	UV       f32.Vec2
	Color    color.NRGBA
}

// Command is a single draw call.
type Command struct {
	Vertices []Vertex
	Indices  []uint32
	Mode     Mode
	// Model is the command's own transform, applied before the transforms
	// of the enclosing lists.
	Model f32.Mat4
	// Texture is the optional texture sampled with the vertex UVs.
	Texture *resource.Handle
}

// List is a transform-annotated, nested list of commands.
type List struct {
	Transform f32.Mat4
	Commands  []Command
	Children  []List
}

// NewList returns an empty list with the identity transform.
func NewList() List {
	return List{Transform: geometry.Identity()}
}

// Push appends commands to the list.
func (l *List) Push(cmds ...Command) {
	l.Commands = append(l.Commands, cmds...)
}

// Nest appends child as a nested list.
func (l *List) Nest(child List) {
	l.Children = append(l.Children, child)
}

// Empty reports whether the list and all its children contain no commands.
func (l List) Empty() bool {
	if len(l.Commands) > 0 {
		return false
	}
	for _, c := range l.Children {
		if !c.Empty() {
			return false
		}
	}
	return true
}

// Len counts the commands in the list and all its children.
func (l List) Len() int {
	n := len(l.Commands)
	for _, c := range l.Children {
		n += c.Len()
	}
	return n
}

// Flatten returns every command with its Model replaced by the fully
// composed transform (outer lists first), in paint order: a list's own
// commands before its children.
func (l List) Flatten() []Command {
	var out []Command
	l.flatten(geometry.Identity(), &out)
	return out
}

func (l List) flatten(parent f32.Mat4, out *[]Command) {
	m := geometry.Mul(parent, l.Transform)
	for _, cmd := range l.Commands {
		model := cmd.Model
		if model == (f32.Mat4{}) {
			model = geometry.Identity()
		}
		cmd.Model = geometry.Mul(m, model)
		*out = append(*out, cmd)
	}
	for _, child := range l.Children {
		child.flatten(m, out)
	}
}

// Quad returns a filled rectangle as two triangles.
func Quad(r geometry.Rect, c color.NRGBA) Command {
	return TexturedQuad(r, f32.Vec2{0, 0}, f32.Vec2{0, 0}, c, nil)
}

// TexturedQuad returns a rectangle sampling the UV range [uv0, uv1].
func TexturedQuad(r geometry.Rect, uv0, uv1 f32.Vec2, c color.NRGBA, tex *resource.Handle) Command {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height
	return Command{
		Vertices: []Vertex{
			{Position: f32.Vec3{x0, y0, 0}, UV: f32.Vec2{uv0[0], uv0[1]}, Color: c},
			{Position: f32.Vec3{x1, y0, 0}, UV: f32.Vec2{uv1[0], uv0[1]}, Color: c},
			{Position: f32.Vec3{x1, y1, 0}, UV: f32.Vec2{uv1[0], uv1[1]}, Color: c},
			{Position: f32.Vec3{x0, y1, 0}, UV: f32.Vec2{uv0[0], uv1[1]}, Color: c},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Mode:    Triangles,
		Model:   geometry.Identity(),
		Texture: tex,
	}
}

// Outline returns the rectangle's border as a closed line strip.
func Outline(r geometry.Rect, c color.NRGBA) Command {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height
	return Command{
		Vertices: []Vertex{
			{Position: f32.Vec3{x0, y0, 0}, Color: c},
			{Position: f32.Vec3{x1, y0, 0}, Color: c},
			{Position: f32.Vec3{x1, y1, 0}, Color: c},
			{Position: f32.Vec3{x0, y1, 0}, Color: c},
		},
		Indices: []uint32{0, 1, 2, 3, 0},
		Mode:    LineStrip,
		Model:   geometry.Identity(),
	}
}

// Target is the surface a Rasterizer writes to.
type Target interface {
	Size() geometry.Size
}

// Rasterizer turns a draw list into pixels. GPU backends implement it
// outside this module; package raster provides a software reference.
type Rasterizer interface {
	Rasterize(list List, target Target) error
}
