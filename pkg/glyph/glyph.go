// Package glyph provides per-character font metrics for text-drawing widgets.
//
// A [Provider] maps a character, together with the character before it for
// kerning, to the metrics a widget needs to place a textured quad: where the
// glyph sits relative to the pen, how far the pen advances, and which part
// of the glyph atlas to sample. Shaping is out of scope; providers work one
// rune at a time.
package glyph

import (
	"image/color"

	"github.com/go-drift/immediate/pkg/draw"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/resource"
	"golang.org/x/image/math/f32"
)

// CharInfo describes one glyph at a given size. Offsets are relative to the
// pen position on the baseline, with y growing downward.
type CharInfo struct {
	TextureUV   f32.Vec2
	TextureSize f32.Vec2
	TopLeft     f32.Vec2
	BottomRight f32.Vec2
	Advance     float32
	// Kerning is the adjustment between the previous character and this
	// one, already scaled to the requested size.
	Kerning float32
}

// VerticalMetrics are the line metrics of a face at a given size.
type VerticalMetrics struct {
	Ascent  float32
	Descent float32
	LineGap float32
}

// LineHeight is the distance between consecutive baselines.
func (m VerticalMetrics) LineHeight() float32 {
	return m.Ascent + m.Descent + m.LineGap
}

// Provider supplies glyph metrics.
type Provider interface {
	// CharInfo returns metrics for r. prev is the preceding character, or
	// 0 at the start of a run.
	CharInfo(r, prev rune, size float32) (CharInfo, error)
	VerticalMetrics(size float32) (VerticalMetrics, error)
}

// Atlas describes a square grid atlas where glyph i occupies cell
// i mod (Columns*Columns).
type Atlas struct {
	Columns int
}

// DefaultAtlas is a 16x16 grid.
var DefaultAtlas = Atlas{Columns: 16}

// Cell returns the UV origin and size of glyph index i.
func (a Atlas) Cell(i int) (uv, size f32.Vec2) {
	cols := a.Columns
	if cols <= 0 {
		cols = DefaultAtlas.Columns
	}
	i %= cols * cols
	step := 1 / float32(cols)
	return f32.Vec2{float32(i%cols) * step, float32(i/cols) * step}, f32.Vec2{step, step}
}

// Measure returns the extent of a single line of text.
func Measure(p Provider, text string, size float32) (geometry.Size, error) {
	vm, err := p.VerticalMetrics(size)
	if err != nil {
		return geometry.Size{}, err
	}
	var width float32
	var prev rune
	for _, r := range text {
		info, err := p.CharInfo(r, prev, size)
		if err != nil {
			return geometry.Size{}, err
		}
		width += info.Kerning + info.Advance
		prev = r
	}
	return geometry.Size{Width: width, Height: vm.Ascent + vm.Descent}, nil
}

// Quads lays out a single line of text starting at the top-left of the
// line box and returns it as one textured triangle command.
func Quads(p Provider, text string, size float32, c color.NRGBA, atlas *resource.Handle) (draw.Command, error) {
	vm, err := p.VerticalMetrics(size)
	if err != nil {
		return draw.Command{}, err
	}
	cmd := draw.Command{
		Mode:    draw.Triangles,
		Model:   geometry.Identity(),
		Texture: atlas,
	}
	var pen float32
	var prev rune
	for _, r := range text {
		info, err := p.CharInfo(r, prev, size)
		if err != nil {
			return draw.Command{}, err
		}
		pen += info.Kerning
		rect := geometry.Rect{
			X:      pen + info.TopLeft[0],
			Y:      vm.Ascent + info.TopLeft[1],
			Width:  info.BottomRight[0] - info.TopLeft[0],
			Height: info.BottomRight[1] - info.TopLeft[1],
		}
		if rect.Width > 0 && rect.Height > 0 {
			uv1 := f32.Vec2{info.TextureUV[0] + info.TextureSize[0], info.TextureUV[1] + info.TextureSize[1]}
			quad := draw.TexturedQuad(rect, info.TextureUV, uv1, c, atlas)
			base := uint32(len(cmd.Vertices))
			cmd.Vertices = append(cmd.Vertices, quad.Vertices...)
			for _, idx := range quad.Indices {
				cmd.Indices = append(cmd.Indices, base+idx)
			}
		}
		pen += info.Advance
		prev = r
	}
	return cmd, nil
}
