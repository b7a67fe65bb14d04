package bough

// Rebuild rebuilds the meshes now if any dirty flag is set.
func (v *Visual) Rebuild() error {
	if v.disposed || v.dirty == 0 {
		return nil
	}
	return v.rebuild()
}

// refresh rebuilds for a reader. Failures are logged; the reader sees
// whatever geometry remains.
func (v *Visual) refresh() {
	if err := v.Rebuild(); err != nil {
		Logger().Warn("rebuild failed", "visual", v.opts.Name, "error", err)
	}
}

// rebuild clears the meshes and builds them again. A visual that was built
// before and now lies entirely outside its clip is skipped: its meshes stay
// empty and its text layout keeps the previous result.
func (v *Visual) rebuild() error {
	v.dirty = 0
	v.meshes = nil

	clip := v.clipRect()
	if !clip.Empty() && v.built && v.bounds().Outside(clip) {
		v.skipped = true
		v.rt.stats.skipped++
		Logger().Debug("rebuild skipped", "visual", v.opts.Name)
		return nil
	}
	v.skipped = false
	v.clipped = !clip.Empty() && v.bounds().Exceeds(clip)
	local := clip.Shift(-v.origin.X, -v.origin.Y)

	var err error
	switch {
	case v.caps.text != nil:
		err = v.buildText(local)
	case v.caps.sprite != nil:
		err = v.buildSprite(local)
	}
	v.built = true
	v.rt.stats.rebuilds++
	return err
}

func (v *Visual) geometryOptions(clip Rect) GeometryOptions {
	return GeometryOptions{
		Color:       v.color,
		Clipped:     v.clipped,
		Clip:        clip,
		HPixelAlign: v.opts.PixelAlign.H(),
		VPixelAlign: v.opts.PixelAlign.V(),
		TileOffset:  v.opts.TileOffset,
		RotateFlip:  v.opts.RotateFlip,
		Anchor:      v.opts.Anchor,
	}
}

func (v *Visual) buildSprite(clip Rect) error {
	path := v.caps.sprite.Sprite()
	if path == "" {
		return nil
	}
	sp, err := v.rt.Sprite(path)
	if err != nil {
		return err
	}
	mesh, err := BuildGeometry(sp, v.size, v.geometryOptions(clip))
	if err != nil {
		return err
	}
	if v.opts.Shader != "" {
		if mesh.Material, err = sp.Atlas().Material(v.opts.Shader, v.rt); err != nil {
			return err
		}
	}
	v.meshes = []*Mesh{mesh}
	return nil
}

// textStyle resolves a TextFormat's font names.
func (v *Visual) textStyle(f TextFormat) (TextStyle, error) {
	font, err := v.rt.Font(f.Font)
	if err != nil {
		return TextStyle{}, err
	}
	var bold *BitmapFont
	if f.BoldFont != "" {
		if bold, err = v.rt.Font(f.BoldFont); err != nil {
			return TextStyle{}, err
		}
	}
	return TextStyle{
		Font:     font,
		BoldFont: bold,
		Color:    v.color,
		HAlign:   f.HAlign,
		VAlign:   f.VAlign,
		Overflow: f.Overflow,
		Indent:   f.Indent,
		Tracking: f.Tracking,
		Leading:  f.Leading,
		HitTest:  f.HitTest,
		NoMarkup: f.NoMarkup,
	}, nil
}

func (v *Visual) buildText(clip Rect) error {
	style, err := v.textStyle(v.caps.text.TextFormat())
	if err != nil {
		return err
	}
	layout, err := LayoutText(v.caps.text.Text(), style, v.size)
	if err != nil {
		return err
	}
	v.layout = layout
	// The flag set by rebuild saw the previous layout's bounds.
	v.clipped = !clip.Empty() && v.bounds().Shift(-v.origin.X, -v.origin.Y).Exceeds(clip)
	// Layout coordinates are corner-relative.
	var vo Vec2
	if v.opts.Anchor == AnchorCenter {
		vo = Vec2{-v.size.X / 2, -v.size.Y / 2}
	}
	// Glyphs can overhang their advance, so text inside a container is
	// always clipped.
	meshes, err := layout.build(!clip.Empty(), clip, vo, func(f *BitmapFont, page int) (*Material, error) {
		return f.PageMaterial(page, v.opts.Shader, v.rt)
	})
	if err != nil {
		return err
	}
	v.meshes = meshes
	return nil
}

// Meshes returns the visual's meshes, rebuilding first if dirty. Vertices
// are relative to Origin.
func (v *Visual) Meshes() []*Mesh {
	v.refresh()
	return v.meshes
}

// Layout returns the last text layout, rebuilding first if dirty. Nil for
// visuals without text.
func (v *Visual) Layout() *TextLayout {
	v.refresh()
	return v.layout
}

// Bounds returns the world rectangle of the content. Text visuals report
// their layout bounds, rebuilding first if dirty.
func (v *Visual) Bounds() Rect {
	if v.caps.text != nil {
		v.refresh()
	}
	return v.bounds()
}

// CharacterAt returns the rune offset of the character under the world
// point p, or -1. Requires TextFormat.HitTest.
func (v *Visual) CharacterAt(p Vec3) int {
	v.refresh()
	if v.layout == nil {
		return -1
	}
	return v.layout.CharacterAt(p.XY().Sub(v.corner()))
}

// CharacterBounds returns the world box of the rune at offset i, or an
// empty Rect.
func (v *Visual) CharacterBounds(i int) Rect {
	v.refresh()
	if v.layout == nil {
		return Rect{}
	}
	b := v.layout.CharacterBounds(i)
	if b == (Rect{}) {
		return b
	}
	c := v.corner()
	return b.Shift(c.X, c.Y)
}

// hitRect returns the world rectangle the pointer tests against. A visual
// whose rebuild was skipped, or whose geometry was clipped away entirely,
// cannot be hit.
func (v *Visual) hitRect() (Rect, bool) {
	if v.caps.hitBox != nil {
		return v.caps.hitBox.HitBox(), true
	}
	if v.skipped {
		return Rect{}, false
	}
	var (
		r     Rect
		found bool
	)
	for _, m := range v.meshes {
		if len(m.Vertices) == 0 {
			continue
		}
		b := m.Bounds().Shift(v.origin.X, v.origin.Y)
		if !found {
			r, found = b, true
			continue
		}
		r = r.Union(b)
	}
	if found {
		return r, true
	}
	if v.clipped {
		return Rect{}, false
	}
	return v.bounds(), true
}
