package bough

import "math"

// Mesh is one batch of textured, vertex-colored quads sharing a material.
// Vertices are local to the owning visual's render origin, in y-up space.
type Mesh struct {
	Material *Material
	Vertices []Vec2
	UVs      []Vec2
	Indices  []uint32
	Colors   []Color
}

// AddQuad appends a quad covering xy with UVs from uv. When clipped is set
// the quad is intersected with clip first: a quad fully outside is dropped
// and a partial quad has its UV sub rectangle trimmed in proportion to the
// trimmed geometry. Reports whether a quad was emitted.
func (m *Mesh) AddQuad(xy Rect, uv UVRect, clipped bool, clip Rect) bool {
	if clipped {
		if clip.XMin() > xy.XMax() || clip.XMax() < xy.XMin() ||
			clip.YMin() > xy.YMax() || clip.YMax() < xy.YMin() {
			return false
		}
		xMin, yMin, xMax, yMax := xy.XMin(), xy.YMin(), xy.XMax(), xy.YMax()
		s := uv.Sub
		uMin, vMin, uMax, vMax := s.XMin(), s.YMin(), s.XMax(), s.YMax()
		if clip.XMin() > xMin {
			uMin += s.Width * (clip.XMin() - xMin) / xy.Width
			xMin = clip.XMin()
		}
		if clip.XMax() < xMax {
			uMax -= s.Width * (xMax - clip.XMax()) / xy.Width
			xMax = clip.XMax()
		}
		if clip.YMin() > yMin {
			vMin += s.Height * (clip.YMin() - yMin) / xy.Height
			yMin = clip.YMin()
		}
		if clip.YMax() < yMax {
			vMax -= s.Height * (yMax - clip.YMax()) / xy.Height
			yMax = clip.YMax()
		}
		xy = RectMinMax(xMin, yMin, xMax, yMax)
		uv = uv.WithSub(RectMinMax(uMin, vMin, uMax, vMax))
	}

	i := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vec2{xy.XMin(), xy.YMin()},
		Vec2{xy.XMax(), xy.YMin()},
		Vec2{xy.XMin(), xy.YMax()},
		Vec2{xy.XMax(), xy.YMax()},
	)
	m.UVs = append(m.UVs, uv.XMinYMin(), uv.XMaxYMin(), uv.XMinYMax(), uv.XMaxYMax())
	m.Indices = append(m.Indices, i, i+2, i+1, i+3, i+1, i+2)
	return true
}

// QuadCount returns the number of quads in the mesh.
func (m *Mesh) QuadCount() int {
	return len(m.Vertices) / 4
}

// Quad returns the geometry and UV rectangles of quad i.
func (m *Mesh) Quad(i int) (xy, uv Rect) {
	v := m.Vertices[i*4:]
	t := m.UVs[i*4:]
	xy = RectMinMax(v[0].X, v[0].Y, v[3].X, v[3].Y)
	uv = RectMinMax(
		math.Min(t[0].X, t[3].X), math.Min(t[0].Y, t[3].Y),
		math.Max(t[0].X, t[3].X), math.Max(t[0].Y, t[3].Y),
	)
	return xy, uv
}

// SetColor recolors every vertex in place.
func (m *Mesh) SetColor(c Color) {
	if cap(m.Colors) < len(m.Vertices) {
		m.Colors = make([]Color, len(m.Vertices))
	}
	m.Colors = m.Colors[:len(m.Vertices)]
	for i := range m.Colors {
		m.Colors[i] = c
	}
}

// Translate moves every vertex by d.
func (m *Mesh) Translate(d Vec2) {
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Add(d)
	}
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Mesh) Bounds() Rect {
	if len(m.Vertices) == 0 {
		return Rect{}
	}
	minX, minY := m.Vertices[0].X, m.Vertices[0].Y
	maxX, maxY := minX, minY
	for _, v := range m.Vertices[1:] {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return RectMinMax(minX, minY, maxX, maxY)
}

// Reset empties the mesh, keeping its buffers.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.UVs = m.UVs[:0]
	m.Indices = m.Indices[:0]
	m.Colors = m.Colors[:0]
}
