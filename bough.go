package bough

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts the color to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Vec2 is a 2D vector used for sizes, offsets and local points.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Vec3 is a position. Z orders drawing and hit testing: a smaller Z is
// nearer to the viewer.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// XY drops the Z component.
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

// Rect is an axis-aligned rectangle. The coordinate system is y-up: (X, Y)
// is the bottom-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// RectMinMax builds a Rect from its edges.
func RectMinMax(xMin, yMin, xMax, yMax float64) Rect {
	return Rect{X: xMin, Y: yMin, Width: xMax - xMin, Height: yMax - yMin}
}

func (r Rect) XMin() float64 { return r.X }
func (r Rect) YMin() float64 { return r.Y }
func (r Rect) XMax() float64 { return r.X + r.Width }
func (r Rect) YMax() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 { return Vec2{r.X + r.Width/2, r.Y + r.Height/2} }

// Empty reports whether the rectangle has no area. An empty clip rect means
// "no clipping".
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Shift returns r translated by (dx, dy).
func (r Rect) Shift(dx, dy float64) Rect {
	return Rect{r.X + dx, r.Y + dy, r.Width, r.Height}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Outside reports whether r lies strictly outside clip.
func (r Rect) Outside(clip Rect) bool {
	return r.XMin() > clip.XMax() || r.YMin() > clip.YMax() ||
		r.XMax() < clip.XMin() || r.YMax() < clip.YMin()
}

// Exceeds reports whether any edge of r extends past clip.
func (r Rect) Exceeds(clip Rect) bool {
	return r.XMin() < clip.XMin() || r.YMin() < clip.YMin() ||
		r.XMax() > clip.XMax() || r.YMax() > clip.YMax()
}

// Union returns the smallest rectangle containing r and other.
func (r Rect) Union(other Rect) Rect {
	return RectMinMax(
		math.Min(r.XMin(), other.XMin()), math.Min(r.YMin(), other.YMin()),
		math.Max(r.XMax(), other.XMax()), math.Max(r.YMax(), other.YMax()),
	)
}

// HorizontalAlignment places text lines within a visual's width.
type HorizontalAlignment uint8

const (
	AlignLeft   HorizontalAlignment = iota // lines start at x = 0 (plus indent)
	AlignRight                             // lines end at the right edge
	AlignCenter                            // lines are centered, rounded to whole pixels
)

func (a HorizontalAlignment) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignRight:
		return "Right"
	case AlignCenter:
		return "Center"
	default:
		return "Unknown"
	}
}

// VerticalAlignment places a text block within a visual's height.
type VerticalAlignment uint8

const (
	AlignTop    VerticalAlignment = iota // first line touches the top edge
	AlignBottom                          // last line touches the bottom edge
	AlignMiddle                          // block is centered, rounded to whole pixels
)

func (a VerticalAlignment) String() string {
	switch a {
	case AlignTop:
		return "Top"
	case AlignBottom:
		return "Bottom"
	case AlignMiddle:
		return "Middle"
	default:
		return "Unknown"
	}
}

// AnchorTo selects which point of a visual its render origin sits on.
type AnchorTo uint8

const (
	AnchorCorner AnchorTo = iota // origin at the bottom-left corner
	AnchorCenter                 // origin at the center; geometry is offset by -size/2
)

// BillboardType selects whether a visual tracks a world position on screen.
type BillboardType uint8

const (
	BillboardNone   BillboardType = iota // drawn in its own layer's space
	BillboardScreen                      // projected into the gui layer every frame
)

// RotateFlip is a bitmask of UV transforms for non-sliced sprites.
type RotateFlip uint8

const (
	RotateNone   RotateFlip = 0
	Rotate90CW   RotateFlip = 1 << 0
	Rotate180    RotateFlip = 1 << 1
	Rotate270CW  RotateFlip = 1 << 2
	FlipH        RotateFlip = 1 << 3
	FlipV        RotateFlip = 1 << 4
	Rotate90CCW             = Rotate270CW
	Rotate270CCW            = Rotate90CW
	FlipHV                  = Rotate180
)

// Overflow selects what text layout does with lines wider than the visual.
type Overflow uint8

const (
	OverflowVisible Overflow = iota // lines run past the edge
	OverflowHidden                  // text is truncated at the first overflowing glyph
	OverflowWrap                    // lines break at whitespace
)

func (o Overflow) String() string {
	switch o {
	case OverflowVisible:
		return "Visible"
	case OverflowHidden:
		return "Hidden"
	case OverflowWrap:
		return "Wrap"
	default:
		return "Unknown"
	}
}

// PixelAlign selects which axes of a visual's render origin snap to whole
// pixels. The zero value aligns both.
type PixelAlign uint8

const (
	PixelAlignBoth PixelAlign = iota // round x and y
	PixelAlignNone                   // no rounding
	PixelAlignH                      // round x only
	PixelAlignV                      // round y only
)

// H reports whether the x axis is aligned.
func (p PixelAlign) H() bool { return p == PixelAlignBoth || p == PixelAlignH }

// V reports whether the y axis is aligned.
func (p PixelAlign) V() bool { return p == PixelAlignBoth || p == PixelAlignV }

// Key identifies a navigation or editing key delivered to the focused
// KeyboardInput. Printable characters arrive as runes instead; backspace
// arrives as '\b' and enter as '\n'.
type Key uint8

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyDelete
	KeyTab
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyDelete:
		return "Delete"
	case KeyTab:
		return "Tab"
	case KeyEscape:
		return "Escape"
	default:
		return "Unknown"
	}
}
