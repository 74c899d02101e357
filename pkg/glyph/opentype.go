package glyph

import (
	stderrors "errors"
	"fmt"

	"github.com/go-drift/immediate/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/math/fixed"
)

// OpenType reads metrics from a parsed TrueType/OpenType font.
// It keeps a scratch sfnt.Buffer and is not safe for concurrent use.
type OpenType struct {
	font  *sfnt.Font
	buf   sfnt.Buffer
	atlas Atlas
}

// NewOpenType parses font data.
func NewOpenType(data []byte) (*OpenType, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, &errors.FrameError{
			Op:   "glyph.NewOpenType",
			Kind: errors.KindResource,
			Err:  fmt.Errorf("parse font: %w", err),
		}
	}
	return &OpenType{font: f, atlas: DefaultAtlas}, nil
}

// Default returns a provider for the bundled Go Regular face.
func Default() (*OpenType, error) {
	return NewOpenType(goregular.TTF)
}

// Name returns the font's family name, if present.
func (o *OpenType) Name() string {
	name, err := o.font.Name(&o.buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

func toFixed(size float32) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// CharInfo implements Provider. Characters missing from the font map to
// the font's .notdef glyph.
func (o *OpenType) CharInfo(r, prev rune, size float32) (CharInfo, error) {
	ppem := toFixed(size)
	idx, err := o.font.GlyphIndex(&o.buf, r)
	if err != nil {
		return CharInfo{}, &errors.FrameError{Op: "glyph.CharInfo", Kind: errors.KindResource, Err: err}
	}
	bounds, advance, err := o.font.GlyphBounds(&o.buf, idx, ppem, font.HintingNone)
	if err != nil {
		return CharInfo{}, &errors.FrameError{Op: "glyph.CharInfo", Kind: errors.KindResource, Err: err}
	}
	uv, uvSize := o.atlas.Cell(int(idx))
	info := CharInfo{
		TextureUV:   uv,
		TextureSize: uvSize,
		TopLeft:     f32.Vec2{fromFixed(bounds.Min.X), fromFixed(bounds.Min.Y)},
		BottomRight: f32.Vec2{fromFixed(bounds.Max.X), fromFixed(bounds.Max.Y)},
		Advance:     fromFixed(advance),
	}
	if prev != 0 {
		prevIdx, err := o.font.GlyphIndex(&o.buf, prev)
		if err == nil {
			kern, err := o.font.Kern(&o.buf, prevIdx, idx, ppem, font.HintingNone)
			switch {
			case err == nil:
				info.Kerning = fromFixed(kern)
			case stderrors.Is(err, sfnt.ErrNotFound):
			default:
				return CharInfo{}, &errors.FrameError{Op: "glyph.CharInfo", Kind: errors.KindResource, Err: err}
			}
		}
	}
	return info, nil
}

// VerticalMetrics implements Provider.
func (o *OpenType) VerticalMetrics(size float32) (VerticalMetrics, error) {
	m, err := o.font.Metrics(&o.buf, toFixed(size), font.HintingNone)
	if err != nil {
		return VerticalMetrics{}, &errors.FrameError{Op: "glyph.VerticalMetrics", Kind: errors.KindResource, Err: err}
	}
	ascent, descent := fromFixed(m.Ascent), fromFixed(m.Descent)
	gap := fromFixed(m.Height) - ascent - descent
	if gap < 0 {
		gap = 0
	}
	return VerticalMetrics{Ascent: ascent, Descent: descent, LineGap: gap}, nil
}
