package bough

import (
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TextStyle describes how LayoutText measures and places text.
type TextStyle struct {
	Font     *BitmapFont
	BoldFont *BitmapFont // used inside [B]...[/B]; nil falls back to Font
	Color    Color

	HAlign   HorizontalAlignment
	VAlign   VerticalAlignment
	Overflow Overflow

	Indent   float64 // reserved on lines after the first; only left aligned lines move
	Tracking float64 // extra advance per glyph
	Leading  float64 // extra space below each line

	// HitTest keeps per-character boxes for CharacterAt.
	HitTest bool

	// NoMarkup lays out [B] and [/B] as literal text.
	NoMarkup bool
}

// TextLine is one laid out line of runs.
type TextLine struct {
	Runs   []*TextRun
	X      float64
	Y      float64 // bottom of the line box
	Width  float64
	Height float64
}

func (l *TextLine) measure() {
	l.Width, l.Height = 0, 0
	for _, r := range l.Runs {
		l.Width += r.Width
		l.Height = math.Max(l.Height, r.Height())
	}
}

// TextLayout is the result of LayoutText. Coordinates are local to the text
// rectangle's bottom-left corner, y-up.
type TextLayout struct {
	Lines  []*TextLine
	Runs   []*TextRun
	Bounds Rect
	Width  float64
	Height float64

	// CharBoxes holds one box per rune of the source text. Markup and
	// control runes, and runes removed by wrapping or truncation, have
	// empty boxes. Nil unless TextStyle.HitTest is set.
	CharBoxes []Rect

	// Truncated is set when OverflowHidden dropped text.
	Truncated bool
}

// MeasureText is an alias of LayoutText.
func MeasureText(content string, style TextStyle, size Vec2) (*TextLayout, error) {
	return LayoutText(content, style, size)
}

// LayoutText splits content into runs and lines within size and places
// them per the style's alignment. [B] and [/B] tags switch to the bold font.
func LayoutText(content string, style TextStyle, size Vec2) (*TextLayout, error) {
	if style.Font == nil {
		return nil, &NotFoundError{Kind: "font", Name: "<nil>"}
	}
	lt := &layouter{
		style: style,
		size:  size,
		runes: []rune(content),
		upper: cases.Upper(language.Und),
	}
	if err := lt.run(); err != nil {
		return nil, err
	}
	return lt.place(), nil
}

type layouter struct {
	style TextStyle
	size  Vec2
	runes []rune
	upper cases.Caser

	lines     []*TextLine
	line      *TextLine
	cur       *TextRun
	bold      int
	truncated bool
}

func (lt *layouter) font() *BitmapFont {
	if lt.bold > 0 && lt.style.BoldFont != nil {
		return lt.style.BoldFont
	}
	return lt.style.Font
}

// startRun closes the current run at end and opens one at start. An empty
// current run is reused.
func (lt *layouter) startRun(end, start int) {
	if lt.cur != nil && lt.cur.Len() == 0 {
		lt.cur.Font = lt.font()
		lt.cur.Start, lt.cur.End = start, start
		return
	}
	if lt.cur != nil {
		lt.cur.End = end
	}
	lt.cur = newTextRun(lt.font(), lt.style.Color, lt.style.Tracking, start)
	lt.line.Runs = append(lt.line.Runs, lt.cur)
}

// newLine opens a new line whose first run starts at start.
func (lt *layouter) newLine(start int) {
	lt.line = &TextLine{}
	lt.lines = append(lt.lines, lt.line)
	lt.cur = nil
	lt.startRun(start, start)
}

// tag reports the length of a [B] or [/B] tag at i, or 0.
func (lt *layouter) tag(i int) (open bool, n int) {
	for j := i + 1; j < len(lt.runes) && j-i < 4; j++ {
		if lt.runes[j] != ']' {
			continue
		}
		switch lt.upper.String(string(lt.runes[i : j+1])) {
		case "[B]":
			return true, j + 1 - i
		case "[/B]":
			return false, j + 1 - i
		}
		return false, 0
	}
	return false, 0
}

func (lt *layouter) lineWidth() float64 {
	var w float64
	for _, r := range lt.line.Runs {
		w += r.Width
	}
	return w
}

// indent is the width reserved on lines after the first. Only left
// aligned lines are placed at it, but every alignment wraps as if they
// were.
func (lt *layouter) indent() float64 {
	if len(lt.lines) > 1 {
		return lt.style.Indent
	}
	return 0
}

func (lt *layouter) run() error {
	lt.newLine(0)
	i := 0
	for i < len(lt.runes) {
		ch := lt.runes[i]
		if ch == '[' && !lt.style.NoMarkup {
			if open, n := lt.tag(i); n > 0 {
				// Every tag opens a run, so a wrap never backs up over one.
				switch {
				case open:
					lt.bold++
					lt.startRun(i, i+n)
				case lt.bold > 0:
					lt.bold--
					lt.startRun(i, i+n)
				}
				i += n
				continue
			}
		}
		if ch == '\n' {
			lt.cur.End = i
			lt.newLine(i + 1)
			i++
			continue
		}
		if ch < 32 {
			i++
			continue
		}

		c, err := lt.cur.Font.Character(ch)
		if err != nil {
			return err
		}
		lt.cur.push(c, ch, i)

		switch lt.style.Overflow {
		case OverflowWrap:
			if lt.lineWidth()+lt.indent() > lt.size.X {
				i = lt.wrap(i)
				continue
			}
		case OverflowHidden:
			if lt.lineWidth() > lt.size.X {
				lt.cur.pop(1)
				lt.truncated = true
				return nil
			}
		}
		i++
	}
	lt.cur.End = len(lt.runes)
	return nil
}

// wrap breaks the current line after the glyph at i overflowed it and
// returns the offset to resume from. It always makes progress: a run that
// holds a single glyph keeps it.
func (lt *layouter) wrap(i int) int {
	cur := lt.cur
	if k := cur.breakIndex(); k >= 1 {
		ws := cur.glyphs[k].offset
		cur.pop(cur.Len() - k)
		lt.newLine(ws + 1)
		return ws + 1
	}
	if len(lt.line.Runs) > 1 {
		lt.line.Runs = lt.line.Runs[:len(lt.line.Runs)-1]
		start := cur.Start
		cur.pop(cur.Len())
		lt.line = &TextLine{Runs: []*TextRun{cur}}
		lt.lines = append(lt.lines, lt.line)
		return start
	}
	if cur.Len() >= 2 {
		cur.pop(1)
		lt.newLine(i)
		return i
	}
	return i + 1
}

func (lt *layouter) place() *TextLayout {
	style, size := lt.style, lt.size
	out := &TextLayout{Lines: lt.lines, Truncated: lt.truncated}
	if style.HitTest {
		out.CharBoxes = make([]Rect, len(lt.runes))
	}

	for _, l := range lt.lines {
		l.measure()
		out.Width = math.Max(out.Width, l.Width)
		out.Height += l.Height + style.Leading
		out.Runs = append(out.Runs, l.Runs...)
	}

	var y float64
	switch style.VAlign {
	case AlignTop:
		y = size.Y
	case AlignMiddle:
		y = math.Round(size.Y - (size.Y-out.Height)/2)
	case AlignBottom:
		y = out.Height
	}
	top := y

	minX := math.Inf(1)
	for n, l := range lt.lines {
		switch style.HAlign {
		case AlignLeft:
			if n > 0 {
				l.X = style.Indent
			}
		case AlignCenter:
			l.X = math.Round((size.X - l.Width) / 2)
		case AlignRight:
			l.X = size.X - l.Width
		}
		minX = math.Min(minX, l.X)

		y -= l.Height + style.Leading
		l.Y = y
		x := l.X
		for _, r := range l.Runs {
			r.Origin = Vec2{x, y - (style.Font.Base - r.Font.Base)}
			gx := x
			for gi := range r.glyphs {
				g := &r.glyphs[gi]
				if gi > 0 {
					gx += g.kern
				}
				g.pos = Vec2{gx, r.Origin.Y}
				if out.CharBoxes != nil {
					out.CharBoxes[g.offset] = Rect{gx, r.Origin.Y, g.char.Advance + r.Tracking, r.Font.LineHeight}
				}
				gx += g.char.Advance + r.Tracking
			}
			x += r.Width
		}
	}
	out.Bounds = Rect{minX, top - out.Height, out.Width, math.Max(0, out.Height)}
	return out
}

// CharacterAt returns the rune offset of the character under p, given in
// layout space, or -1. Within a row, a point left of a character resolves
// to that character; a point past the row's end resolves to the last
// character before it.
func (t *TextLayout) CharacterAt(p Vec2) int {
	first, last := -1, -1
	for i, b := range t.CharBoxes {
		if b.Width > 0 {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return -1
	}
	if p.Y > t.CharBoxes[first].YMax() || p.Y < t.CharBoxes[last].YMin() {
		return -1
	}
	spill := -1
	for i, b := range t.CharBoxes {
		if b.Width <= 0 || p.Y < b.YMin() || p.Y > b.YMax() {
			continue
		}
		if p.X < b.XMin() || p.X <= b.XMax() {
			return i
		}
		spill = i
	}
	return spill
}

// CharacterBounds returns the box of the rune at offset i, or an empty Rect.
func (t *TextLayout) CharacterBounds(i int) Rect {
	if i < 0 || i >= len(t.CharBoxes) {
		return Rect{}
	}
	return t.CharBoxes[i]
}

// Build emits the glyph quads, one mesh per font page in order of first
// use. vertexOffset is added to every vertex; clip is in the same space as
// the offset vertices.
func (t *TextLayout) Build(clipped bool, clip Rect, vertexOffset Vec2) ([]*Mesh, error) {
	return t.build(clipped, clip, vertexOffset, func(f *BitmapFont, page int) (*Material, error) {
		return f.Material(page)
	})
}

type pageKey struct {
	font *BitmapFont
	page int
}

func (t *TextLayout) build(clipped bool, clip Rect, vo Vec2, material func(*BitmapFont, int) (*Material, error)) ([]*Mesh, error) {
	var meshes []*Mesh
	byPage := make(map[pageKey]*Mesh)
	for _, r := range t.Runs {
		for _, g := range r.glyphs {
			c := g.char
			if c.Size.X <= 0 || c.Size.Y <= 0 {
				continue
			}
			key := pageKey{r.Font, c.Page}
			m, ok := byPage[key]
			if !ok {
				mat, err := material(r.Font, c.Page)
				if err != nil {
					return nil, err
				}
				m = &Mesh{Material: mat}
				byPage[key] = m
				meshes = append(meshes, m)
			}
			xy := Rect{g.pos.X + c.Offset.X + vo.X, g.pos.Y + c.Offset.Y + vo.Y, c.Size.X, c.Size.Y}
			before := len(m.Vertices)
			if m.AddQuad(xy, PlainUV(c.UV), clipped, clip) {
				for range len(m.Vertices) - before {
					m.Colors = append(m.Colors, r.Color)
				}
			}
		}
	}
	return meshes, nil
}
