package bough

// UVRect is a UV sub rectangle of a full sprite rectangle, with an optional
// rotate/flip applied inside the full rectangle. Quads read their four UV
// corners from it.
type UVRect struct {
	Full       Rect
	Sub        Rect
	RotateFlip RotateFlip

	corrected Rect
}

// NewUVRect returns a UVRect for sub within full.
func NewUVRect(full, sub Rect, rf RotateFlip) UVRect {
	u := UVRect{Full: full, Sub: sub, RotateFlip: rf}
	u.correct()
	return u
}

// PlainUV wraps a rectangle with no rotate/flip.
func PlainUV(r Rect) UVRect {
	return NewUVRect(r, r, RotateNone)
}

// WithSub returns a copy of u with a new sub rectangle.
func (u UVRect) WithSub(sub Rect) UVRect {
	return NewUVRect(u.Full, sub, u.RotateFlip)
}

// correct mirrors the sub rectangle through the full rectangle: flips first,
// then at most one rotation.
func (u *UVRect) correct() {
	r := u.Sub
	if u.RotateFlip == RotateNone {
		u.corrected = r
		return
	}
	f := u.Full
	c := f.Center()

	if u.RotateFlip&FlipH != 0 {
		r = RectMinMax(c.X-(r.XMax()-c.X), r.YMin(), c.X+(c.X-r.XMin()), r.YMax())
	}
	if u.RotateFlip&FlipV != 0 {
		r = RectMinMax(r.XMin(), c.Y-(r.YMax()-c.Y), r.XMax(), c.Y+(c.Y-r.YMin()))
	}

	switch {
	case u.RotateFlip&Rotate90CW != 0:
		r = RectMinMax(
			f.XMin()+((f.YMax()-r.YMax())/f.Height)*f.Width,
			f.YMin()+((r.XMin()-f.XMin())/f.Width)*f.Height,
			f.XMax()-((r.YMin()-f.YMin())/f.Height)*f.Width,
			f.YMax()-((f.XMax()-r.XMax())/f.Width)*f.Height,
		)
	case u.RotateFlip&Rotate180 != 0:
		r = RectMinMax(c.X-(r.XMax()-c.X), c.Y-(r.YMax()-c.Y), c.X+(c.X-r.XMin()), c.Y+(c.Y-r.YMin()))
	case u.RotateFlip&Rotate270CW != 0:
		r = RectMinMax(
			f.XMin()+((r.YMin()-f.YMin())/f.Height)*f.Width,
			f.YMin()+((f.XMax()-r.XMax())/f.Width)*f.Height,
			f.XMax()-((f.YMax()-r.YMax())/f.Height)*f.Width,
			f.YMax()-((r.XMin()-f.XMin())/f.Width)*f.Height,
		)
	}
	u.corrected = r
}

// corner returns the UV for a quad corner; x and y select the max edge.
func (u UVRect) corner(x, y bool) Vec2 {
	if u.RotateFlip == RotateNone {
		return pick(u.Sub, x, y)
	}
	switch {
	case u.RotateFlip&Rotate90CW != 0:
		if x == y {
			x = !x
		} else {
			y = !y
		}
	case u.RotateFlip&Rotate180 != 0:
		x, y = !x, !y
	case u.RotateFlip&Rotate270CW != 0:
		if x == y {
			y = !y
		} else {
			x = !x
		}
	}
	if u.RotateFlip&FlipH != 0 {
		x = !x
	}
	if u.RotateFlip&FlipV != 0 {
		y = !y
	}
	return pick(u.corrected, x, y)
}

func pick(r Rect, x, y bool) Vec2 {
	p := Vec2{r.XMin(), r.YMin()}
	if x {
		p.X = r.XMax()
	}
	if y {
		p.Y = r.YMax()
	}
	return p
}

func (u UVRect) XMinYMin() Vec2 { return u.corner(false, false) }
func (u UVRect) XMaxYMin() Vec2 { return u.corner(true, false) }
func (u UVRect) XMinYMax() Vec2 { return u.corner(false, true) }
func (u UVRect) XMaxYMax() Vec2 { return u.corner(true, true) }
