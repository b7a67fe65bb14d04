package bough

import "unicode"

// runGlyph is one measured character of a run.
type runGlyph struct {
	char   *BitmapChar
	r      rune
	offset int     // rune offset in the source text
	kern   float64 // against the previous glyph of the run
	pos    Vec2    // pen position after placement, bottom of the line box
}

// TextRun is a span of text sharing one font and color. Start and End are
// rune offsets into the source text; End is exclusive.
type TextRun struct {
	Font     *BitmapFont
	Color    Color
	Tracking float64
	Start    int
	End      int
	Width    float64

	// Origin is the run's bottom-left pen position after placement.
	Origin Vec2

	glyphs []runGlyph
}

func newTextRun(f *BitmapFont, c Color, tracking float64, start int) *TextRun {
	return &TextRun{Font: f, Color: c, Tracking: tracking, Start: start, End: start}
}

// Len returns the number of glyphs in the run.
func (r *TextRun) Len() int { return len(r.glyphs) }

// Height returns the run's line height.
func (r *TextRun) Height() float64 { return r.Font.LineHeight }

// Text returns the run's runes in order.
func (r *TextRun) Text() string {
	rs := make([]rune, len(r.glyphs))
	for i, g := range r.glyphs {
		rs[i] = g.r
	}
	return string(rs)
}

// push measures c and appends it. Returns the width it added.
func (r *TextRun) push(c *BitmapChar, ch rune, offset int) float64 {
	var kern float64
	if n := len(r.glyphs); n > 0 {
		kern = c.Kerning(r.glyphs[n-1].char.ID)
	}
	r.glyphs = append(r.glyphs, runGlyph{char: c, r: ch, offset: offset, kern: kern})
	w := kern + c.Advance + r.Tracking
	r.Width += w
	r.End = offset + 1
	return w
}

// pop removes the last n glyphs. End moves to the offset of the first
// removed glyph.
func (r *TextRun) pop(n int) {
	if n > len(r.glyphs) {
		n = len(r.glyphs)
	}
	if n <= 0 {
		return
	}
	keep := len(r.glyphs) - n
	for _, g := range r.glyphs[keep:] {
		r.Width -= g.kern + g.char.Advance + r.Tracking
	}
	r.End = r.glyphs[keep].offset
	r.glyphs = r.glyphs[:keep]
	if keep == 0 {
		r.Width = 0
	}
}

// breakIndex returns the index of the last breaking whitespace glyph, or -1.
func (r *TextRun) breakIndex() int {
	for i := len(r.glyphs) - 1; i >= 0; i-- {
		if isBreakingSpace(r.glyphs[i].r) {
			return i
		}
	}
	return -1
}

func isBreakingSpace(r rune) bool {
	return unicode.IsSpace(r) && r != '\u00a0' && r != '\u202f'
}
