package bough

import "fmt"

// CursorPriority orders custom cursors. The lowest non-empty priority is
// shown.
type CursorPriority int

const (
	CursorOverride CursorPriority = iota // forced by the application
	CursorContext                        // set by the control under the pointer
	CursorDefault                        // the application's normal cursor
	cursorSlots
)

// cursorDepth keeps cursor images nearer than any ZIndex rank below 500.
const cursorDepth = 0

// Cursor is a sprite drawn at the pointer in place of the system cursor.
// Offset moves the image relative to the pointer; (0, 0) puts the image's
// top-left corner at the hot spot.
type Cursor struct {
	Sprite string
	Offset Vec2
}

type cursorImage struct {
	cursor *Cursor
	img    *Image
	offset Vec2
}

// SetCursor shows c at priority p, replacing whatever that priority
// showed. Pass nil to clear the priority. The system cursor is hidden
// while any custom cursor is set.
func (rt *Runtime) SetCursor(p CursorPriority, c *Cursor) error {
	if p < 0 || p >= cursorSlots {
		return fmt.Errorf("bough: invalid cursor priority %d", p)
	}
	if rt.shutdown {
		return ErrShutdown
	}
	if ci := rt.cursors[p]; ci != nil {
		if ci.cursor == c {
			return nil
		}
		ci.img.Dispose()
		rt.cursors[p] = nil
	}
	if c != nil {
		sp, err := rt.Sprite(c.Sprite)
		if err != nil {
			rt.refreshCursors()
			return err
		}
		size := sp.Size()
		img, err := NewImage(rt, Vec3{Z: cursorDepth}, size, c.Sprite, VisualOptions{Name: "cursor", Layer: GuiLayer})
		if err != nil {
			rt.refreshCursors()
			return err
		}
		rt.cursors[p] = &cursorImage{cursor: c, img: img, offset: Vec2{c.Offset.X, c.Offset.Y - size.Y}}
	}
	rt.refreshCursors()
	return nil
}

// refreshCursors activates the highest-priority cursor only.
func (rt *Runtime) refreshCursors() {
	shown := false
	for _, ci := range rt.cursors {
		if ci == nil {
			continue
		}
		ci.img.SetActive(!shown)
		shown = true
	}
	if rt.source != nil {
		rt.source.setCursorVisible(!shown)
	}
	rt.moveCursors()
}

// moveCursors keeps cursor images on the mouse pointer.
func (rt *Runtime) moveCursors() {
	ps := &rt.pointers[0]
	for _, ci := range rt.cursors {
		if ci == nil {
			continue
		}
		ci.img.SetPosition(Vec3{ps.x + ci.offset.X, ps.y + ci.offset.Y, cursorDepth})
	}
}
