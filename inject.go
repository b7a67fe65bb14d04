package bough

// syntheticPointerEvent represents a single injected pointer event. Screen
// coordinates are y-down, matching what a screenshot shows, and are
// converted exactly like real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	wheel            float64
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next Update.
func (rt *Runtime) InjectPress(x, y float64) {
	rt.injectQueue = append(rt.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
	})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (rt *Runtime) InjectMove(x, y float64) {
	rt.injectQueue = append(rt.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
	})
}

// InjectHover queues a pointer move with no button held.
func (rt *Runtime) InjectHover(x, y float64) {
	rt.injectQueue = append(rt.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
	})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (rt *Runtime) InjectRelease(x, y float64) {
	rt.injectQueue = append(rt.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: false,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (rt *Runtime) InjectClick(x, y float64) {
	rt.InjectPress(x, y)
	rt.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The total sequence consumes frames frames. Minimum frames is
// 2 (press + release).
func (rt *Runtime) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	rt.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		rt.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	rt.InjectRelease(toX, toY)
}

// InjectWheel queues a hover at the given screen coordinates followed by
// wheel ticks, positive away from the user.
func (rt *Runtime) InjectWheel(x, y, ticks float64) {
	rt.injectQueue = append(rt.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: rt.pointers[0].down,
		wheel:   ticks,
	})
}

// InjectRune queues a typed character for the focused control. Use '\b'
// for backspace and '\n' for enter.
func (rt *Runtime) InjectRune(r rune) {
	rt.injectRunes = append(rt.injectRunes, r)
}

// InjectKey queues a navigation key for the focused control.
func (rt *Runtime) InjectKey(k Key) {
	rt.injectKeys = append(rt.injectKeys, k)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed, in which
// case real pointer input is skipped for the frame.
func (rt *Runtime) processInjectedInput(enabled bool) bool {
	if len(rt.injectQueue) == 0 {
		return false
	}
	evt := rt.injectQueue[0]
	copy(rt.injectQueue, rt.injectQueue[1:])
	rt.injectQueue = rt.injectQueue[:len(rt.injectQueue)-1]

	rt.processPointer(0, evt.screenX, rt.screenH-evt.screenY, evt.pressed, enabled)
	if evt.wheel != 0 && enabled {
		rt.dispatchWheel(evt.wheel * rt.cfg.WheelScale)
	}
	return true
}
