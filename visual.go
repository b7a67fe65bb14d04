package bough

import "math"

// DirtyFlags records which parts of a visual need rebuilding.
type DirtyFlags uint8

const (
	DirtySize    DirtyFlags = 1 << iota // size changed
	DirtyContent                        // sprite, text or format changed
	DirtyClip                           // clip state changed
)

// VisualOptions configures a visual at attach time.
type VisualOptions struct {
	Name string

	// Layer names the draw layer. Empty selects Config.DefaultLayer.
	Layer string

	// Shader names a Kage shader registered with Runtime.AddShader.
	Shader string

	// Parent attaches the visual below another control. Descendants move
	// with their parent and are disposed with it.
	Parent Control

	PixelAlign PixelAlign
	TileOffset Vec2

	// Color tints the geometry. The zero Color means white.
	Color Color

	RotateFlip RotateFlip
	Anchor     AnchorTo

	// Billboard projects the position through the layer's camera into the
	// gui layer every frame, at Z = BillboardDepth.
	Billboard      BillboardType
	BillboardDepth float64
}

// Visual turns a control's content into meshes and tracks its place in the
// tree. Create one with Runtime.Attach.
type Visual struct {
	rt      *Runtime
	control Control
	caps    capabilitySet
	opts    VisualOptions

	layer     *Layer
	drawLayer *Layer
	parent    *Visual
	children  []*Visual
	container *Visual

	position Vec3
	size     Vec2
	color    Color
	origin   Vec3

	dirty      DirtyFlags
	clipped    bool
	built      bool
	skipped    bool
	visible    bool
	active     bool
	disposing  bool
	disposed   bool
	generation uint32
	order      int

	meshes []*Mesh
	layout *TextLayout
}

// Control returns the owning control.
func (v *Visual) Control() Control { return v.control }

// Runtime returns the runtime the visual belongs to.
func (v *Visual) Runtime() *Runtime { return v.rt }

// Name returns VisualOptions.Name.
func (v *Visual) Name() string { return v.opts.Name }

// Options returns the options the visual was attached with.
func (v *Visual) Options() VisualOptions { return v.opts }

// Layer returns the layer the visual draws in. Billboards draw in the gui
// layer.
func (v *Visual) Layer() *Layer { return v.drawLayer }

// Parent returns the parent visual, or nil for a root.
func (v *Visual) Parent() *Visual { return v.parent }

// Children returns the direct children. The slice must not be modified.
func (v *Visual) Children() []*Visual { return v.children }

// Position returns the world position of the bottom-left corner.
func (v *Visual) Position() Vec3 { return v.position }

// Size returns the visual's size.
func (v *Visual) Size() Vec2 { return v.size }

// Color returns the tint.
func (v *Visual) Color() Color { return v.color }

// Origin returns the render origin: the aligned position, plus size/2 when
// center anchored, or the projected point for billboards.
func (v *Visual) Origin() Vec3 { return v.origin }

// Clipped reports whether the visual extends past its container's clip.
func (v *Visual) Clipped() bool { return v.clipped }

// Dirty returns the pending dirty flags.
func (v *Visual) Dirty() DirtyFlags { return v.dirty }

// IsDirty reports whether any dirty flag is set.
func (v *Visual) IsDirty() bool { return v.dirty != 0 }

// IsDisposed reports whether Dispose was called.
func (v *Visual) IsDisposed() bool { return v.disposed }

// Generation is bumped when the visual is disposed.
func (v *Visual) Generation() uint32 { return v.generation }

// IsVisible reports whether the visual's own geometry is drawn.
func (v *Visual) IsVisible() bool { return v.visible }

// IsActive reports whether the visual and all its ancestors are active.
func (v *Visual) IsActive() bool {
	for p := v; p != nil; p = p.parent {
		if !p.active {
			return false
		}
	}
	return true
}

// Invalidate marks the content dirty. The rebuild runs on the next
// Runtime.Update or when a reader needs the geometry.
func (v *Visual) Invalidate() {
	v.dirty |= DirtyContent
}

// SetPosition moves the visual and its descendants by the same delta.
func (v *Visual) SetPosition(p Vec3) {
	if v.rt.cfg.Debug {
		debugCheckDisposed(v, "SetPosition")
	}
	d := p.Sub(v.position)
	if d == (Vec3{}) {
		return
	}
	v.walk(func(w *Visual) {
		w.position = w.position.Add(d)
		w.updatePosition()
	})
}

// SetSize resizes the visual. Children are not resized.
func (v *Visual) SetSize(s Vec2) {
	if v.rt.cfg.Debug {
		debugCheckDisposed(v, "SetSize")
	}
	if s == v.size {
		return
	}
	v.size = s
	v.dirty |= DirtySize
	v.updatePosition()
}

// SetColor recolors the existing meshes in place.
func (v *Visual) SetColor(c Color) {
	if c == v.color {
		return
	}
	v.color = c
	for _, m := range v.meshes {
		m.SetColor(c)
	}
	if v.layout != nil {
		for _, r := range v.layout.Runs {
			r.Color = c
		}
	}
}

// SetVisible shows or hides the visual's own geometry. Hidden visuals are
// not hit tested; children are unaffected.
func (v *Visual) SetVisible(visible bool) {
	v.visible = visible
}

// SetActive enables or disables the visual and its descendants for drawing
// and input.
func (v *Visual) SetActive(active bool) {
	v.active = active
}

// updatePosition recomputes the render origin and the clip state.
func (v *Visual) updatePosition() {
	pos := v.position
	if v.opts.Billboard == BillboardScreen {
		sx, sy := v.layer.project(pos.X, pos.Y)
		pos = Vec3{sx - v.size.X/2, sy - v.size.Y/2, v.opts.BillboardDepth}
	}
	if v.opts.PixelAlign.H() {
		pos.X = math.Round(pos.X)
		if v.rt.cfg.HalfTexelOffset {
			pos.X -= 0.5
		}
	}
	if v.opts.PixelAlign.V() {
		pos.Y = math.Round(pos.Y)
		if v.rt.cfg.HalfTexelOffset {
			pos.Y += 0.5
		}
	}
	if v.opts.Anchor == AnchorCenter {
		pos.X += v.size.X / 2
		pos.Y += v.size.Y / 2
	}
	v.origin = pos

	if v.container != nil {
		clip := v.clipRect()
		was := v.clipped
		v.clipped = !clip.Empty() && v.bounds().Exceeds(clip)
		if v.clipped || was {
			v.dirty |= DirtyClip
		}
	}
}

// corner returns the bottom-left corner of the render rectangle.
func (v *Visual) corner() Vec2 {
	c := v.origin.XY()
	if v.opts.Anchor == AnchorCenter {
		c = c.Sub(Vec2{v.size.X / 2, v.size.Y / 2})
	}
	return c
}

// bounds returns the world rectangle used for clip tests without
// rebuilding. Text uses the last layout's bounds.
func (v *Visual) bounds() Rect {
	c := v.corner()
	if v.layout != nil {
		return v.layout.Bounds.Shift(c.X, c.Y)
	}
	return Rect{c.X, c.Y, v.size.X, v.size.Y}
}

// clipRect returns the container's world clip for this visual.
func (v *Visual) clipRect() Rect {
	if v.container == nil || v.container.disposed {
		return Rect{}
	}
	return v.container.caps.container.ClipRect(v.control)
}

func (v *Visual) findContainer() *Visual {
	for p := v.parent; p != nil; p = p.parent {
		if p.caps.container != nil {
			return p
		}
	}
	return nil
}

// walk calls fn for v and every descendant, parents first.
func (v *Visual) walk(fn func(*Visual)) {
	fn(v)
	for _, c := range v.children {
		c.walk(fn)
	}
}

// Dispose releases the visual and its descendants. Children are disposed
// first, then the container is notified and the control's OnDispose runs.
// Calling Dispose again does nothing.
func (v *Visual) Dispose() {
	if v.disposed || v.disposing {
		return
	}
	v.disposing = true
	for len(v.children) > 0 {
		v.children[len(v.children)-1].Dispose()
	}
	v.disposed = true
	v.detach()
	if c := v.container; c != nil && !c.disposing {
		c.caps.container.OnChildRemoved(v.control)
	}
	v.meshes = nil
	v.layout = nil
	v.generation++
	v.rt.forget(v)
	if v.caps.disposer != nil {
		v.caps.disposer.OnDispose()
	}
}

// detach removes v from its parent's children or the runtime's roots.
func (v *Visual) detach() {
	list := &v.rt.roots
	if v.parent != nil {
		list = &v.parent.children
	}
	for i, c := range *list {
		if c == v {
			s := *list
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nil
			*list = s[:len(s)-1]
			break
		}
	}
}
