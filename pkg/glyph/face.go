package glyph

import (
	"fmt"

	"github.com/go-drift/immediate/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f32"
)

// Face adapts a fixed-size font.Face. Metrics are scaled linearly from the
// face's nominal size, which suits bitmap faces used in tests and tools.
type Face struct {
	face    font.Face
	nominal float32
	atlas   Atlas
}

// NewFace wraps face, whose glyphs are drawn at nominal pixels.
func NewFace(face font.Face, nominal float32) *Face {
	return &Face{face: face, nominal: nominal, atlas: DefaultAtlas}
}

// Basic returns the 7x13 bitmap face from x/image.
func Basic() *Face {
	return NewFace(basicfont.Face7x13, 13)
}

func (f *Face) scale(size float32) float32 {
	if f.nominal <= 0 {
		return 1
	}
	return size / f.nominal
}

// CharInfo implements Provider. Runes the face cannot render fall back to
// '?'; if that is missing too an error is returned.
func (f *Face) CharInfo(r, prev rune, size float32) (CharInfo, error) {
	bounds, advance, ok := f.face.GlyphBounds(r)
	if !ok {
		r = '?'
		if bounds, advance, ok = f.face.GlyphBounds(r); !ok {
			return CharInfo{}, &errors.FrameError{
				Op:   "glyph.Face.CharInfo",
				Kind: errors.KindResource,
				Err:  fmt.Errorf("no glyph for %q", r),
			}
		}
	}
	s := f.scale(size)
	uv, uvSize := f.atlas.Cell(int(r))
	info := CharInfo{
		TextureUV:   uv,
		TextureSize: uvSize,
		TopLeft:     f32.Vec2{fromFixed(bounds.Min.X) * s, fromFixed(bounds.Min.Y) * s},
		BottomRight: f32.Vec2{fromFixed(bounds.Max.X) * s, fromFixed(bounds.Max.Y) * s},
		Advance:     fromFixed(advance) * s,
	}
	if prev != 0 {
		info.Kerning = fromFixed(f.face.Kern(prev, r)) * s
	}
	return info, nil
}

// VerticalMetrics implements Provider.
func (f *Face) VerticalMetrics(size float32) (VerticalMetrics, error) {
	m := f.face.Metrics()
	s := f.scale(size)
	ascent, descent := fromFixed(m.Ascent)*s, fromFixed(m.Descent)*s
	gap := fromFixed(m.Height)*s - ascent - descent
	if gap < 0 {
		gap = 0
	}
	return VerticalMetrics{Ascent: ascent, Descent: descent, LineGap: gap}, nil
}
