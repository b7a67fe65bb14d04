package bough

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// bitmapFace adapts a BitmapFont to font.Face so bitmap fonts can be drawn
// with font.Drawer or Ebitengine's text/v2 package. Coordinates are y-down
// with the dot on the baseline.
type bitmapFace struct {
	f *BitmapFont
}

var _ font.Face = (*bitmapFace)(nil)

// Face returns a font.Face over the font's page images. Glyphs missing from
// the font report ok == false rather than falling back to '?'.
func (f *BitmapFont) Face() font.Face {
	if f.face == nil {
		f.face = &bitmapFace{f: f}
	}
	return f.face
}

func (b *bitmapFace) Close() error { return nil }

func (b *bitmapFace) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	c, ok := b.f.chars[r]
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	page := b.f.pages[c.Page].Source()
	top := b.f.LineHeight - c.Offset.Y - c.Size.Y // yoffset
	x := dot.X.Round() + int(c.Offset.X)
	y := dot.Y.Round() - int(b.f.Base) + int(top)
	dr = image.Rect(x, y, x+c.src.Dx(), y+c.src.Dy())
	return dr, page, c.src.Min.Add(page.Bounds().Min), fixed.I(int(c.Advance)), true
}

func (b *bitmapFace) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	c, ok := b.f.chars[r]
	if !ok {
		return fixed.Rectangle26_6{}, 0, false
	}
	top := b.f.LineHeight - c.Offset.Y - c.Size.Y - b.f.Base
	bounds = fixed.Rectangle26_6{
		Min: fixed.Point26_6{X: floatToFixed(c.Offset.X), Y: floatToFixed(top)},
		Max: fixed.Point26_6{X: floatToFixed(c.Offset.X + c.Size.X), Y: floatToFixed(top + c.Size.Y)},
	}
	return bounds, floatToFixed(c.Advance), true
}

func (b *bitmapFace) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	c, ok := b.f.chars[r]
	if !ok {
		return 0, false
	}
	return floatToFixed(c.Advance), true
}

func (b *bitmapFace) Kern(r0, r1 rune) fixed.Int26_6 {
	c, ok := b.f.chars[r1]
	if !ok {
		return 0
	}
	return floatToFixed(c.Kerning(r0))
}

func (b *bitmapFace) Metrics() font.Metrics {
	return font.Metrics{
		Height:  floatToFixed(b.f.LineHeight),
		Ascent:  floatToFixed(b.f.Base),
		Descent: floatToFixed(b.f.LineHeight - b.f.Base),
	}
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
