package bough

// Control is anything that owns a Visual. Concrete controls embed
// ControlBase and are attached with Runtime.Attach, which resolves the
// optional capability interfaces below once.
type Control interface {
	Visual() *Visual
	controlBase() *ControlBase
}

// SpriteContent is implemented by controls drawn from an atlas sprite. The
// path has the form "atlas/sprite"; an empty path draws nothing.
type SpriteContent interface {
	Sprite() string
}

// TextContent is implemented by controls drawn as text.
type TextContent interface {
	Text() string
	TextFormat() TextFormat
}

// TextFormat names the fonts and layout settings of a TextContent. Fonts
// are resolved through the runtime's font registry at build time.
type TextFormat struct {
	Font     string
	BoldFont string // used inside [B]...[/B]; empty falls back to Font

	HAlign   HorizontalAlignment
	VAlign   VerticalAlignment
	Overflow Overflow

	Indent   float64
	Tracking float64
	Leading  float64

	HitTest  bool
	NoMarkup bool
}

// MouseInput receives pointer events for the control and its descendants.
// src is the control whose visual was hit.
type MouseInput interface {
	OnMouseEnter(src Control)
	OnMouseExit(src Control)
	OnMouseDown(src Control, p Vec3)
	OnMouseUp(src Control)
	OnMouseDrag(src Control, delta Vec2)
	OnMouseWheel(src Control, delta float64)
}

// CustomHitBox replaces the mesh-derived hit rectangle with a world rect.
type CustomHitBox interface {
	HitBox() Rect
}

// KeyboardInput receives keys while the control has focus.
type KeyboardInput interface {
	OnGotFocus()
	OnLostFocus()
	OnKeyRune(r rune)
	OnKey(k Key)
}

// Container clips its descendants. ClipRect returns the world clip for
// child, or an empty Rect for none.
type Container interface {
	ClipRect(child Control) Rect
	OnChildAdded(child Control)
	OnChildRemoved(child Control)
}

// Updater is called once per Runtime.Update after rebuilds.
type Updater interface {
	Update(dt float64)
}

// CustomCursor supplies a cursor shown while the pointer is over the control.
type CustomCursor interface {
	Cursor() *Cursor
}

// Disposer is called once when the control's visual is disposed.
type Disposer interface {
	OnDispose()
}

// capabilitySet caches a control's capability assertions.
type capabilitySet struct {
	sprite    SpriteContent
	text      TextContent
	mouse     MouseInput
	hitBox    CustomHitBox
	keyboard  KeyboardInput
	container Container
	updater   Updater
	cursor    CustomCursor
	disposer  Disposer
}

func resolveCapabilities(c Control) capabilitySet {
	var caps capabilitySet
	caps.sprite, _ = c.(SpriteContent)
	caps.text, _ = c.(TextContent)
	caps.mouse, _ = c.(MouseInput)
	caps.hitBox, _ = c.(CustomHitBox)
	caps.keyboard, _ = c.(KeyboardInput)
	caps.container, _ = c.(Container)
	caps.updater, _ = c.(Updater)
	caps.cursor, _ = c.(CustomCursor)
	caps.disposer, _ = c.(Disposer)
	return caps
}

// hittable reports whether the pointer can target the control.
func (c capabilitySet) hittable() bool {
	return c.mouse != nil || c.hitBox != nil
}

// ControlBase carries the visual of a control. Embed it by value.
type ControlBase struct {
	visual *Visual

	// Data is free for application use.
	Data any
}

// Visual returns the control's visual, or nil before Attach.
func (c *ControlBase) Visual() *Visual { return c.visual }

func (c *ControlBase) controlBase() *ControlBase { return c }

// Runtime returns the runtime the control is attached to.
func (c *ControlBase) Runtime() *Runtime { return c.visual.rt }

// Name returns the visual's name.
func (c *ControlBase) Name() string { return c.visual.opts.Name }

// Position returns the world position.
func (c *ControlBase) Position() Vec3 { return c.visual.position }

// SetPosition moves the control and its descendants.
func (c *ControlBase) SetPosition(p Vec3) { c.visual.SetPosition(p) }

// Size returns the control's size.
func (c *ControlBase) Size() Vec2 { return c.visual.size }

// SetSize resizes the control.
func (c *ControlBase) SetSize(s Vec2) { c.visual.SetSize(s) }

// Bounds returns the world rectangle covered by position and size.
func (c *ControlBase) Bounds() Rect {
	p := c.visual.position
	return Rect{p.X, p.Y, c.visual.size.X, c.visual.size.Y}
}

// Center returns the center of Bounds.
func (c *ControlBase) Center() Vec2 { return c.Bounds().Center() }

// SetCenter moves the control so its bounds are centered on p.
func (c *ControlBase) SetCenter(p Vec2) {
	pos := c.visual.position
	c.visual.SetPosition(Vec3{p.X - c.visual.size.X/2, p.Y - c.visual.size.Y/2, pos.Z})
}

// Color returns the tint.
func (c *ControlBase) Color() Color { return c.visual.color }

// SetColor recolors the control.
func (c *ControlBase) SetColor(col Color) { c.visual.SetColor(col) }

// SetVisible shows or hides the control without disabling input routing
// to descendants.
func (c *ControlBase) SetVisible(v bool) { c.visual.SetVisible(v) }

// SetActive enables or disables the control and its descendants for both
// drawing and input.
func (c *ControlBase) SetActive(a bool) { c.visual.SetActive(a) }

// Invalidate marks the content dirty.
func (c *ControlBase) Invalidate() { c.visual.Invalidate() }

// Dispose releases the control and its descendants.
func (c *ControlBase) Dispose() { c.visual.Dispose() }

// IsDisposed reports whether the control was disposed.
func (c *ControlBase) IsDisposed() bool { return c.visual == nil || c.visual.disposed }

// Parent returns the parent control, or nil.
func (c *ControlBase) Parent() Control {
	if c.visual.parent == nil {
		return nil
	}
	return c.visual.parent.control
}

// Children returns the direct child controls in attach order.
func (c *ControlBase) Children() []Control {
	out := make([]Control, 0, len(c.visual.children))
	for _, ch := range c.visual.children {
		out = append(out, ch.control)
	}
	return out
}

// Descendants returns every control below this one, depth first.
func (c *ControlBase) Descendants() []Control {
	var out []Control
	c.visual.walk(func(v *Visual) {
		if v != c.visual {
			out = append(out, v.control)
		}
	})
	return out
}

// FindChild returns the first direct child with the given name, or nil.
func (c *ControlBase) FindChild(name string) Control {
	for _, ch := range c.visual.children {
		if ch.opts.Name == name {
			return ch.control
		}
	}
	return nil
}

// ZIndex maps a front-to-back rank to a Z value: higher ranks are nearer.
func ZIndex(rank float64) float64 {
	return 500 - rank
}

// ZIndexFrom returns a Z offset nearer than relativeTo by offset.
func ZIndexFrom(offset float64, relativeTo Control) float64 {
	return relativeTo.Visual().position.Z - offset
}
