package bough

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxPointers is the number of pointer slots: 0 is the mouse, 1..10 are
// touches.
const maxPointers = 11

// Key repeat timing in ticks for held navigation keys.
const (
	keyRepeatDelay    = 30
	keyRepeatInterval = 3
)

// inputSource reads device state once per frame. Screen coordinates are
// y-down, as Ebitengine reports them.
type inputSource interface {
	cursorPosition() (x, y int)
	mousePressed() bool
	wheel() float64
	appendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	touchPosition(id ebiten.TouchID) (x, y int)
	appendRunes(rs []rune) []rune
	appendKeys(ks []Key) []Key
	setCursorVisible(visible bool)
}

// ebitenInput reads the real devices.
type ebitenInput struct{}

func (ebitenInput) cursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenInput) mousePressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (ebitenInput) wheel() float64 {
	_, y := ebiten.Wheel()
	return y
}

func (ebitenInput) appendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenInput) touchPosition(id ebiten.TouchID) (int, int) { return ebiten.TouchPosition(id) }

func (ebitenInput) appendRunes(rs []rune) []rune {
	rs = ebiten.AppendInputChars(rs)
	if keyRepeated(ebiten.KeyBackspace) {
		rs = append(rs, '\b')
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		rs = append(rs, '\n')
	}
	return rs
}

var navigationKeys = [...]struct {
	key ebiten.Key
	k   Key
}{
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
	{ebiten.KeyDelete, KeyDelete},
	{ebiten.KeyTab, KeyTab},
	{ebiten.KeyEscape, KeyEscape},
}

func (ebitenInput) appendKeys(ks []Key) []Key {
	for _, n := range navigationKeys {
		if keyRepeated(n.key) {
			ks = append(ks, n.k)
		}
	}
	return ks
}

func (ebitenInput) setCursorVisible(visible bool) {
	if visible {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
}

// keyRepeated reports a key on the tick it goes down and then at the
// repeat interval while held.
func keyRepeated(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0)
}

// pointerState tracks one pointer between frames. Coordinates are gui
// space (screen, y-up).
type pointerState struct {
	x, y           float64
	startX, startY float64
	dragX, dragY   float64
	hover          *Visual
	pressed        *Visual
	down           bool
	dragging       bool
}

// processInput is called from Runtime.Update. An injected pointer event
// replaces real pointer input for that frame.
func (rt *Runtime) processInput() {
	enabled := rt.InputEnabled()
	if !rt.processInjectedInput(enabled) && rt.source != nil {
		mx, my := rt.source.cursorPosition()
		rt.processPointer(0, float64(mx), rt.screenH-float64(my), rt.source.mousePressed(), enabled)
		if w := rt.source.wheel(); w != 0 && enabled {
			rt.dispatchWheel(w * rt.cfg.WheelScale)
		}
		rt.processTouchPointers(enabled)
	}
	rt.moveCursors()
	if enabled {
		rt.processKeys()
	}
}

// processTouchPointers handles touch input (pointers 1-10).
func (rt *Runtime) processTouchPointers(enabled bool) {
	touchIDs := rt.source.appendTouchIDs(rt.prevTouchIDs[:0])
	rt.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := rt.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := rt.source.touchPosition(tid)
		rt.processPointer(slot, float64(tx), rt.screenH-float64(ty), true, enabled)
	}

	for i := 1; i < maxPointers; i++ {
		if rt.touchUsed[i] && !activeSlots[i] {
			ps := &rt.pointers[i]
			if ps.down {
				rt.processPointer(i, ps.x, ps.y, false, enabled)
			}
			// Touches do not hover once lifted.
			if ps.hover != nil {
				rt.fireExit(ps.hover)
				ps.hover = nil
			}
			rt.touchUsed[i] = false
			rt.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-10). Returns the
// existing slot or allocates a new one. Returns -1 if full.
func (rt *Runtime) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if rt.touchUsed[i] && rt.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !rt.touchUsed[i] {
			rt.touchUsed[i] = true
			rt.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for one pointer. Hover
// follows the hit test even while pressed; down, drag and up go to the
// visual hit at press time.
func (rt *Runtime) processPointer(id int, x, y float64, pressed, enabled bool) {
	ps := &rt.pointers[id]
	ps.x, ps.y = x, y

	target := rt.hitTest(x, y)
	if target != ps.hover {
		if ps.hover != nil {
			rt.fireExit(ps.hover)
		}
		if target != nil {
			rt.fireEnter(target)
		}
		ps.hover = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.dragging = false
		ps.startX, ps.startY = x, y
		ps.dragX, ps.dragY = x, y
		ps.pressed = nil
		if enabled && target != nil {
			ps.pressed = target
			wx, wy := target.drawLayer.unproject(x, y)
			rt.fireDown(target, Vec3{wx, wy, target.origin.Z})
		}

	case !pressed && ps.down:
		if p := ps.pressed; p != nil && !p.disposed {
			rt.fireUp(p)
		}
		ps.down = false
		ps.dragging = false
		ps.pressed = nil

	case pressed && ps.down:
		if x == ps.dragX && y == ps.dragY {
			return
		}
		if !ps.dragging {
			dx, dy := x-ps.startX, y-ps.startY
			if math.Sqrt(dx*dx+dy*dy) <= rt.cfg.DragThreshold {
				return
			}
			ps.dragging = true
		}
		if p := ps.pressed; p != nil && enabled {
			fx, fy := p.drawLayer.unproject(ps.dragX, ps.dragY)
			tx, ty := p.drawLayer.unproject(x, y)
			rt.fireDrag(p, Vec2{tx - fx, ty - fy})
		}
		ps.dragX, ps.dragY = x, y
	}
}

// hitTest returns the nearest hittable visual under the gui-space point:
// the highest layer index first, then the smallest Z, then the one drawn
// last.
func (rt *Runtime) hitTest(x, y float64) *Visual {
	var best *Visual
	bestSeq, seq := 0, 0
	rt.walkActive(func(v *Visual) {
		seq++
		if !v.visible || !v.caps.hittable() {
			return
		}
		r, ok := v.hitRect()
		if !ok {
			return
		}
		wx, wy := v.drawLayer.unproject(x, y)
		if !r.Contains(wx, wy) {
			return
		}
		if best == nil || nearer(v, seq, best, bestSeq) {
			best, bestSeq = v, seq
		}
	})
	return best
}

func nearer(a *Visual, aSeq int, b *Visual, bSeq int) bool {
	if a.drawLayer.Index != b.drawLayer.Index {
		return a.drawLayer.Index > b.drawLayer.Index
	}
	if a.origin.Z != b.origin.Z {
		return a.origin.Z < b.origin.Z
	}
	return aSeq > bSeq
}

// walkActive visits active visuals in tree order, skipping inactive
// subtrees.
func (rt *Runtime) walkActive(fn func(*Visual)) {
	var visit func(v *Visual)
	visit = func(v *Visual) {
		if !v.active || v.disposed {
			return
		}
		fn(v)
		for _, c := range v.children {
			visit(c)
		}
	}
	for _, r := range rt.roots {
		visit(r)
	}
}

// bubble calls fn for every MouseInput from v up to the root, passing v's
// control as the source.
func bubble(v *Visual, fn func(m MouseInput, src Control)) {
	src := v.control
	for p := v; p != nil; p = p.parent {
		if p.caps.mouse != nil && !p.disposed {
			fn(p.caps.mouse, src)
		}
	}
}

func (rt *Runtime) fireEnter(v *Visual) {
	if v.caps.cursor != nil {
		if err := rt.SetCursor(CursorContext, v.caps.cursor.Cursor()); err != nil {
			Logger().Warn("cursor failed", "visual", v.opts.Name, "error", err)
		}
	}
	bubble(v, func(m MouseInput, src Control) { m.OnMouseEnter(src) })
}

func (rt *Runtime) fireExit(v *Visual) {
	if v.caps.cursor != nil {
		_ = rt.SetCursor(CursorContext, nil)
	}
	bubble(v, func(m MouseInput, src Control) { m.OnMouseExit(src) })
}

func (rt *Runtime) fireDown(v *Visual, p Vec3) {
	bubble(v, func(m MouseInput, src Control) { m.OnMouseDown(src, p) })
}

func (rt *Runtime) fireUp(v *Visual) {
	bubble(v, func(m MouseInput, src Control) { m.OnMouseUp(src) })
}

func (rt *Runtime) fireDrag(v *Visual, d Vec2) {
	bubble(v, func(m MouseInput, src Control) { m.OnMouseDrag(src, d) })
}

// dispatchWheel sends a wheel delta to the visual under the mouse.
func (rt *Runtime) dispatchWheel(delta float64) {
	v := rt.pointers[0].hover
	if v == nil {
		return
	}
	bubble(v, func(m MouseInput, src Control) { m.OnMouseWheel(src, delta) })
}

// processKeys delivers this frame's runes and keys to the focused control.
func (rt *Runtime) processKeys() {
	runes, keys := rt.runeBuf[:0], rt.keyBuf[:0]
	if rt.source != nil {
		runes = rt.source.appendRunes(runes)
		keys = rt.source.appendKeys(keys)
	}
	runes = append(runes, rt.injectRunes...)
	keys = append(keys, rt.injectKeys...)
	rt.injectRunes, rt.injectKeys = rt.injectRunes[:0], rt.injectKeys[:0]
	rt.runeBuf, rt.keyBuf = runes, keys

	for _, r := range runes {
		if rt.focus == nil {
			return
		}
		rt.focus.OnKeyRune(r)
	}
	for _, k := range keys {
		if rt.focus == nil {
			return
		}
		rt.focus.OnKey(k)
	}
}

// forgetPointers drops references to a disposed visual without firing
// events.
func (rt *Runtime) forgetPointers(v *Visual) {
	for i := range rt.pointers {
		ps := &rt.pointers[i]
		if ps.hover == v {
			ps.hover = nil
		}
		if ps.pressed == v {
			ps.pressed = nil
		}
	}
}
