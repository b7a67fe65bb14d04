package bough

import "math"

// ScrollViewOptions configures a ScrollView. Border insets the clip from
// the view's edges; the scroll bars sit inside the border.
type ScrollViewOptions struct {
	VisualOptions

	Sprite string

	// NoClip draws children outside the view instead of clipping them.
	NoClip bool

	VAllowDrag bool // dragging content scrolls vertically
	HAllowDrag bool // dragging content scrolls horizontally

	Border           Border
	HScrollBarHeight float64
	VScrollBarWidth  float64

	// ScrollSpeed scales the mouse wheel. Zero means 10.
	ScrollSpeed float64

	VScrollBarSprite   string
	VKnobSprite        string
	VKnobOverSprite    string
	VKnobPressedSprite string
	// VKnobSize of zero width uses the bar width; zero height sizes the
	// knob to the visible fraction of the content.
	VKnobSize Vec2

	HScrollBarSprite   string
	HKnobSprite        string
	HKnobOverSprite    string
	HKnobPressedSprite string
	HKnobSize          Vec2
}

// ScrollView clips its descendants to an inner rectangle and scrolls them.
// The scroll range grows to cover every descendant.
type ScrollView struct {
	Image
	opts ScrollViewOptions

	// clip and extents are relative to the view's position.
	clip    Rect
	extents Rect

	vBar, hBar   *Image
	vKnob, hKnob *Button
	vAuto, hAuto bool
	building     bool
	grab, delta  float64
}

// NewScrollView attaches a scroll view.
func NewScrollView(rt *Runtime, pos Vec3, size Vec2, opts ScrollViewOptions) (*ScrollView, error) {
	s := &ScrollView{}
	if err := s.init(rt, s, pos, size, opts); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ScrollView) init(rt *Runtime, self Control, pos Vec3, size Vec2, opts ScrollViewOptions) error {
	if opts.ScrollSpeed == 0 {
		opts.ScrollSpeed = 10
	}
	s.opts = opts
	b := opts.Border
	s.clip = Rect{
		X:      b.Left,
		Y:      b.Bottom + opts.HScrollBarHeight,
		Width:  size.X - b.Left - b.Right - opts.VScrollBarWidth,
		Height: size.Y - b.Bottom - b.Top - opts.HScrollBarHeight,
	}
	s.extents = s.clip

	s.building = true
	defer func() { s.building = false }()
	if err := s.Image.init(rt, self, pos, size, opts.Sprite, opts.VisualOptions); err != nil {
		return err
	}
	clip := s.Clip()

	if w := opts.VScrollBarWidth; w > 0 {
		bar, err := NewImage(rt, Vec3{clip.XMax(), clip.YMin(), pos.Z - 0.1}, Vec2{w, clip.Height}, opts.VScrollBarSprite,
			VisualOptions{Name: "vscroll", Parent: self})
		if err != nil {
			return err
		}
		knob := opts.VKnobSize
		if knob.X <= 0 {
			knob.X = w
		}
		if knob.Y <= 0 {
			s.vAuto = true
			knob.Y = clip.Height
		}
		x := clip.XMax() + w/2 - knob.X/2
		s.vBar = bar
		if s.vKnob, err = s.newKnob(rt, self, "vscrollknob", Vec3{x, clip.YMin(), pos.Z - 0.9}, knob, s.vAuto,
			opts.VKnobSprite, opts.VKnobOverSprite, opts.VKnobPressedSprite); err != nil {
			return err
		}
	}
	if h := opts.HScrollBarHeight; h > 0 {
		bar, err := NewImage(rt, Vec3{clip.XMin(), clip.YMin() - h, pos.Z - 0.1}, Vec2{clip.Width, h}, opts.HScrollBarSprite,
			VisualOptions{Name: "hscroll", Parent: self, PixelAlign: PixelAlignNone})
		if err != nil {
			return err
		}
		knob := opts.HKnobSize
		if knob.Y <= 0 {
			knob.Y = h
		}
		if knob.X <= 0 {
			s.hAuto = true
			knob.X = clip.Width
		}
		y := clip.YMin() - h/2 - knob.Y/2
		s.hBar = bar
		if s.hKnob, err = s.newKnob(rt, self, "hscrollknob", Vec3{clip.XMin(), y, pos.Z - 0.9}, knob, s.hAuto,
			opts.HKnobSprite, opts.HKnobOverSprite, opts.HKnobPressedSprite); err != nil {
			return err
		}
	}
	s.setExtents(s.extents)
	return nil
}

func (s *ScrollView) newKnob(rt *Runtime, parent Control, name string, pos Vec3, size Vec2, auto bool, normal, over, pressed string) (*Button, error) {
	align := PixelAlignBoth
	if auto {
		align = PixelAlignNone
	}
	return NewButton(rt, pos, size, ButtonOptions{
		VisualOptions: VisualOptions{Name: name, Parent: parent, PixelAlign: align},
		NormalSprite:  normal,
		OverSprite:    over,
		PressedSprite: pressed,
	})
}

// isChrome reports whether c is one of the view's scroll bars or knobs.
func (s *ScrollView) isChrome(c Control) bool {
	if c == nil {
		return false
	}
	v := c.Visual()
	return v != nil && ((s.vBar != nil && v == s.vBar.visual) ||
		(s.hBar != nil && v == s.hBar.visual) ||
		(s.vKnob != nil && v == s.vKnob.visual) ||
		(s.hKnob != nil && v == s.hKnob.visual))
}

// Clip returns the world rectangle children are clipped to.
func (s *ScrollView) Clip() Rect {
	p := s.visual.position
	return s.clip.Shift(p.X, p.Y)
}

// Extents returns the world rectangle covering the clip and every
// descendant.
func (s *ScrollView) Extents() Rect {
	p := s.visual.position
	return s.extents.Shift(p.X, p.Y)
}

// setExtents replaces the local extents and resizes auto-sized knobs.
func (s *ScrollView) setExtents(r Rect) {
	s.extents = r
	if s.vKnob != nil && s.vAuto && r.Height > 0 {
		ratio := s.clip.Height / r.Height
		k := s.vKnob.Size()
		s.vKnob.SetSize(Vec2{k.X, math.Max(s.opts.VScrollBarWidth, ratio*s.clip.Height)})
	}
	if s.hKnob != nil && s.hAuto && r.Width > 0 {
		ratio := s.clip.Width / r.Width
		k := s.hKnob.Size()
		s.hKnob.SetSize(Vec2{math.Max(s.opts.HScrollBarHeight, ratio*s.clip.Width), k.Y})
	}
	s.placeKnobs()
}

// expandExtents grows the local extents to cover c.
func (s *ScrollView) expandExtents(c Control) {
	v := c.Visual()
	p := v.position.Sub(s.visual.position)
	s.setExtents(s.extents.Union(Rect{p.X, p.Y, v.size.X, v.size.Y}))
}

// VScroll returns the vertical scroll position: 0 shows the top of the
// content, 1 the bottom. Content that fits reports 0.
func (s *ScrollView) VScroll() float64 {
	d := s.extents.Height - s.clip.Height
	if d <= 0 {
		return 0
	}
	return 1 - (s.clip.YMin()-s.extents.YMin())/d
}

// SetVScroll scrolls vertically. The value is clamped to [0, 1].
func (s *ScrollView) SetVScroll(pos float64) {
	s.scrollV(pos)
	s.placeKnobs()
}

// HScroll returns the horizontal scroll position: 0 shows the left edge of
// the content, 1 the right. Content that fits reports 0.
func (s *ScrollView) HScroll() float64 {
	d := s.extents.Width - s.clip.Width
	if d <= 0 {
		return 0
	}
	return (s.clip.XMin() - s.extents.XMin()) / d
}

// SetHScroll scrolls horizontally. The value is clamped to [0, 1].
func (s *ScrollView) SetHScroll(pos float64) {
	s.scrollH(pos)
	s.placeKnobs()
}

func (s *ScrollView) scrollV(pos float64) {
	if math.IsNaN(pos) {
		return
	}
	d := math.Max(0, s.extents.Height-s.clip.Height)
	pos = max(0, min(1, pos))
	s.moveContent(0, s.clip.YMin()+pos*d-d-s.extents.Y)
}

func (s *ScrollView) scrollH(pos float64) {
	if math.IsNaN(pos) {
		return
	}
	d := math.Max(0, s.extents.Width-s.clip.Width)
	pos = max(0, min(1, pos))
	s.moveContent(s.clip.XMin()-pos*d-s.extents.X, 0)
}

// moveContent shifts the extents and every direct child except the
// chrome.
func (s *ScrollView) moveContent(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	s.extents = s.extents.Shift(dx, dy)
	for _, c := range append([]*Visual(nil), s.visual.children...) {
		if s.isChrome(c.control) {
			continue
		}
		c.SetPosition(c.position.Add(Vec3{dx, dy, 0}))
	}
}

// placeKnobs moves the knobs to match the scroll positions.
func (s *ScrollView) placeKnobs() {
	clip := s.Clip()
	if s.vKnob != nil {
		p, k := s.vKnob.Position(), s.vKnob.Size()
		s.vKnob.SetPosition(Vec3{p.X, clip.YMin() + (1-s.VScroll())*(clip.Height-k.Y), p.Z})
	}
	if s.hKnob != nil {
		p, k := s.hKnob.Position(), s.hKnob.Size()
		s.hKnob.SetPosition(Vec3{clip.XMin() + s.HScroll()*(clip.Width-k.X), p.Y, p.Z})
	}
}

// ClipRect clips content to Clip. The chrome is never clipped.
func (s *ScrollView) ClipRect(child Control) Rect {
	if s.opts.NoClip || s.building || s.isChrome(child) {
		return Rect{}
	}
	return s.Clip()
}

func (s *ScrollView) OnChildAdded(child Control) {
	if s.building || s.isChrome(child) {
		return
	}
	s.expandExtents(child)
}

// OnChildRemoved recomputes the extents from the remaining descendants.
func (s *ScrollView) OnChildRemoved(Control) {
	if s.visual.disposing {
		return
	}
	s.extents = s.clip
	var visit func(v *Visual)
	visit = func(v *Visual) {
		for _, c := range v.children {
			if c.disposed || s.isChrome(c.control) {
				continue
			}
			s.expandExtents(c.control)
			visit(c)
		}
	}
	visit(s.visual)
	s.setExtents(s.extents)
}

// HitBox makes the whole clip area respond to drags and the wheel.
func (s *ScrollView) HitBox() Rect { return s.Clip() }

func (s *ScrollView) OnMouseEnter(Control) {}

func (s *ScrollView) OnMouseExit(Control) {}

func (s *ScrollView) OnMouseDown(src Control, _ Vec3) {
	switch {
	case s.vKnob != nil && src == Control(s.vKnob):
		s.grab, s.delta = s.vKnob.Position().Y, 0
	case s.hKnob != nil && src == Control(s.hKnob):
		s.grab, s.delta = s.hKnob.Position().X, 0
	}
}

func (s *ScrollView) OnMouseUp(Control) {}

func (s *ScrollView) OnMouseDrag(src Control, delta Vec2) {
	clip := s.Clip()
	switch {
	case s.vKnob != nil && src == Control(s.vKnob):
		s.delta += delta.Y
		p, k := s.vKnob.Position(), s.vKnob.Size()
		y := max(clip.YMin(), min(clip.YMax()-k.Y, s.grab+s.delta))
		s.vKnob.SetPosition(Vec3{p.X, y, p.Z})
		if span := clip.Height - k.Y; span > 0 {
			s.scrollV(1 - (y-clip.YMin())/span)
		}
	case s.hKnob != nil && src == Control(s.hKnob):
		s.delta += delta.X
		p, k := s.hKnob.Position(), s.hKnob.Size()
		x := max(clip.XMin(), min(clip.XMax()-k.X, s.grab+s.delta))
		s.hKnob.SetPosition(Vec3{x, p.Y, p.Z})
		if span := clip.Width - k.X; span > 0 {
			s.scrollH((x - clip.XMin()) / span)
		}
	case s.opts.HAllowDrag || s.opts.VAllowDrag:
		var d Vec2
		c, e := s.clip, s.extents
		if s.opts.HAllowDrag {
			d.X = max(c.XMax()-e.XMax(), min(c.XMin()-e.XMin(), delta.X))
		}
		if s.opts.VAllowDrag {
			d.Y = max(c.YMax()-e.YMax(), min(c.YMin()-e.YMin(), delta.Y))
		}
		s.moveContent(d.X, d.Y)
		s.placeKnobs()
	}
}

// OnMouseWheel scrolls by a fixed distance per notch regardless of the
// content height.
func (s *ScrollView) OnMouseWheel(_ Control, delta float64) {
	d := s.extents.Height - s.clip.Height
	if d <= 0 {
		return
	}
	delta *= 10 * s.opts.ScrollSpeed / d
	s.SetVScroll(s.VScroll() - delta)
}
