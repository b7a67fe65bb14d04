package bough

import "math"

// GeometryOptions controls how BuildGeometry lays a sprite over a size.
type GeometryOptions struct {
	Color Color

	// Clipped enables clipping against Clip, given relative to the render
	// origin.
	Clipped bool
	Clip    Rect

	// Unaligned axes inset sliced seams by half a texel to avoid bleeding.
	HPixelAlign bool
	VPixelAlign bool

	// TileOffset shifts the phase of tiled edges and centers, in pixels.
	// Negative offsets wrap from the far edge.
	TileOffset Vec2

	RotateFlip RotateFlip
	Anchor     AnchorTo
}

// BuildGeometry builds the quads for sprite stretched or tiled over size:
// up to four corners, four edges and a center. Corners keep their native
// size; edges and the center stretch or, when the sprite tiles on an axis,
// repeat at native size.
func BuildGeometry(sprite *Sprite, size Vec2, opts GeometryOptions) (*Mesh, error) {
	if opts.RotateFlip != RotateNone && (!sprite.Border.IsZero() || sprite.TileH || sprite.TileV) {
		return nil, &UnsupportedCombinationError{
			RotateFlip: opts.RotateFlip,
			Reason:     "sprite " + sprite.Name + " is sliced or tiled",
		}
	}
	m, _ := sprite.atlas.Material("", nil)
	mesh := &Mesh{Material: m}
	g := newSliceBuilder(mesh, sprite, size, opts)
	g.build()

	mesh.SetColor(opts.Color)
	if opts.Anchor == AnchorCenter {
		mesh.Translate(Vec2{-size.X / 2, -size.Y / 2})
	}
	return mesh, nil
}

// sliceBuilder holds the precomputed rectangles of one BuildGeometry call.
// Geometry is built with the origin at the bottom-left corner.
type sliceBuilder struct {
	mesh    *Mesh
	sprite  *Sprite
	size    Vec2
	texel   Vec2
	offset  Vec2
	clipped bool
	clip    Rect
	rf      RotateFlip

	b       Border
	inner   Rect
	outerUV Rect
	innerUV Rect
	tileH   bool
	tileV   bool
	hollow  bool
}

func newSliceBuilder(mesh *Mesh, sprite *Sprite, size Vec2, opts GeometryOptions) *sliceBuilder {
	var hb, vb float64
	if !opts.HPixelAlign {
		hb = 0.5
	}
	if !opts.VPixelAlign {
		vb = 0.5
	}
	b := sprite.Border
	t := sprite.TexelSize()
	uv := sprite.UV

	inset := func(border, bleed float64) float64 {
		if border > 0 {
			return bleed
		}
		return 0
	}
	inner := func(border, bleed float64) float64 {
		if border > 0 {
			return border
		}
		return bleed
	}

	g := &sliceBuilder{
		mesh:    mesh,
		sprite:  sprite,
		size:    size,
		texel:   t,
		offset:  opts.TileOffset,
		clipped: opts.Clipped,
		clip:    opts.Clip,
		rf:      opts.RotateFlip,
		b:       b,
		hollow:  sprite.Hollow,
		inner:   RectMinMax(b.Left, b.Bottom, size.X-b.Right, size.Y-b.Top),
		outerUV: RectMinMax(
			uv.XMin()+inset(b.Left, hb)*t.X,
			uv.YMin()+inset(b.Bottom, vb)*t.Y,
			uv.XMax()-inset(b.Right, hb)*t.X,
			uv.YMax()-inset(b.Top, vb)*t.Y,
		),
		innerUV: RectMinMax(
			uv.XMin()+inner(b.Left, hb)*t.X,
			uv.YMin()+inner(b.Bottom, vb)*t.Y,
			uv.XMax()-inner(b.Right, hb)*t.X,
			uv.YMax()-inner(b.Top, vb)*t.Y,
		),
	}
	if opts.Anchor == AnchorCenter {
		g.clip = g.clip.Shift(size.X/2, size.Y/2)
	}
	g.tileH = sprite.TileH && g.innerUV.Width > 0
	g.tileV = sprite.TileV && g.innerUV.Height > 0
	return g
}

func (g *sliceBuilder) quad(xy, uv Rect) {
	if xy.Width < 0 || xy.Height < 0 {
		return
	}
	g.mesh.AddQuad(xy, NewUVRect(g.outerUV, uv, g.rf), g.clipped, g.clip)
}

func (g *sliceBuilder) build() {
	b, in, o, i := g.b, g.inner, g.outerUV, g.innerUV
	w, h := g.size.X, g.size.Y

	if b.Left > 0 && b.Bottom > 0 {
		g.quad(RectMinMax(0, 0, in.XMin(), in.YMin()),
			RectMinMax(o.XMin(), o.YMin(), i.XMin(), i.YMin()))
	}
	if b.Right > 0 && b.Bottom > 0 {
		g.quad(RectMinMax(in.XMax(), 0, w, in.YMin()),
			RectMinMax(i.XMax(), o.YMin(), o.XMax(), i.YMin()))
	}
	if b.Left > 0 && b.Top > 0 {
		g.quad(RectMinMax(0, in.YMax(), in.XMin(), h),
			RectMinMax(o.XMin(), i.YMax(), i.XMin(), o.YMax()))
	}
	if b.Right > 0 && b.Top > 0 {
		g.quad(RectMinMax(in.XMax(), in.YMax(), w, h),
			RectMinMax(i.XMax(), i.YMax(), o.XMax(), o.YMax()))
	}

	if g.tileV {
		g.tile(in.YMin(), in.YMax(), i.YMin(), i.Height/g.texel.Y, g.offset.Y, g.texel.Y, func(from, to, fromUV, toUV float64) {
			g.sideEdges(from, to, fromUV, toUV)
			if g.hollow {
				return
			}
			if !g.tileH {
				g.quad(RectMinMax(in.XMin(), from, in.XMax(), to),
					RectMinMax(i.XMin(), fromUV, i.XMax(), toUV))
				return
			}
			g.tileRow(from, to, fromUV, toUV)
		})
	} else {
		g.sideEdges(in.YMin(), in.YMax(), i.YMin(), i.YMax())
	}

	if g.tileH {
		g.tile(in.XMin(), in.XMax(), i.XMin(), i.Width/g.texel.X, g.offset.X, g.texel.X, func(from, to, fromUV, toUV float64) {
			g.capEdges(from, to, fromUV, toUV)
			if !g.hollow && !g.tileV {
				g.quad(RectMinMax(from, in.YMin(), to, in.YMax()),
					RectMinMax(fromUV, i.YMin(), toUV, i.YMax()))
			}
		})
	} else {
		g.capEdges(in.XMin(), in.XMax(), i.XMin(), i.XMax())
	}

	if !g.tileH && !g.tileV && !g.hollow {
		g.quad(in, i)
	}
}

// sideEdges emits the left and right edge pieces spanning [from, to].
func (g *sliceBuilder) sideEdges(from, to, fromUV, toUV float64) {
	in, o, i := g.inner, g.outerUV, g.innerUV
	if g.b.Left > 0 {
		g.quad(RectMinMax(0, from, in.XMin(), to), RectMinMax(o.XMin(), fromUV, i.XMin(), toUV))
	}
	if g.b.Right > 0 {
		g.quad(RectMinMax(in.XMax(), from, g.size.X, to), RectMinMax(i.XMax(), fromUV, o.XMax(), toUV))
	}
}

// capEdges emits the bottom and top edge pieces spanning [from, to].
func (g *sliceBuilder) capEdges(from, to, fromUV, toUV float64) {
	in, o, i := g.inner, g.outerUV, g.innerUV
	if g.b.Bottom > 0 {
		g.quad(RectMinMax(from, 0, to, in.YMin()), RectMinMax(fromUV, o.YMin(), toUV, i.YMin()))
	}
	if g.b.Top > 0 {
		g.quad(RectMinMax(from, in.YMax(), to, g.size.Y), RectMinMax(fromUV, i.YMax(), toUV, o.YMax()))
	}
}

// tileRow tiles the center horizontally within one vertical tile step.
func (g *sliceBuilder) tileRow(yFrom, yTo, vFrom, vTo float64) {
	in, i := g.inner, g.innerUV
	g.tile(in.XMin(), in.XMax(), i.XMin(), i.Width/g.texel.X, g.offset.X, g.texel.X, func(from, to, fromUV, toUV float64) {
		g.quad(RectMinMax(from, yFrom, to, yTo), RectMinMax(fromUV, vFrom, toUV, vTo))
	})
}

// tile walks [lo, hi) in steps of size pixels. The first step is shortened
// by the phase offset; every later step starts at uvMin. emit receives the
// geometry span and the matching UV span.
func (g *sliceBuilder) tile(lo, hi, uvMin, size, offset, texel float64, emit func(from, to, fromUV, toUV float64)) {
	if size <= 0 {
		return
	}
	phase := math.Mod(offset, size)
	if phase < 0 {
		phase += size
	}
	from := lo
	to := math.Min(lo+size-phase, hi)
	fromUV := uvMin + phase*texel
	for from < hi {
		emit(from, to, fromUV, fromUV+(to-from)*texel)
		from = to
		to = math.Min(to+size, hi)
		fromUV = uvMin
	}
}
