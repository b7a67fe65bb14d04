package bough

import (
	"weak"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RepeatMode selects what a transition does when it reaches its end.
type RepeatMode uint8

const (
	RepeatOnce     RepeatMode = iota // finish and dispose
	RepeatLoop                       // restart from 0
	RepeatPingPong                   // run backwards, then forwards again
)

// Transition drives fn with a value from 0 to 1 over a duration. Create one
// with Runtime.NewTransition and start it with Now, Repeat or PingPong.
type Transition struct {
	rt       *Runtime
	fn       func(v float64)
	duration float64
	current  float64
	reverse  bool
	mode     RepeatMode
	curve    *gween.Tween

	hook     HookID
	hooked   bool
	paused   bool
	finished bool
	tag      string
	uses     []weak.Pointer[Visual]
	done     []func()
}

// NewTransition creates a stopped transition. fn receives the eased value
// each tick.
func (rt *Runtime) NewTransition(duration float64, fn func(v float64)) *Transition {
	return &Transition{
		rt:       rt,
		fn:       fn,
		duration: duration,
		curve:    gween.New(0, 1, 1, ease.Linear),
	}
}

// Ease replaces the easing curve. The default is linear.
func (t *Transition) Ease(fn ease.TweenFunc) *Transition {
	t.curve = gween.New(0, 1, 1, fn)
	return t
}

// Uses ties the transition's life to v: once v is disposed or collected
// the transition disposes itself without calling fn again.
func (t *Transition) Uses(v *Visual) *Transition {
	if v != nil {
		t.uses = append(t.uses, weak.Make(v))
	}
	return t
}

// Tag files the transition under tag for AnyTransition, KillTransitions and
// SuppressInput.
func (t *Transition) Tag(tag string) *Transition {
	if t.tag != "" {
		t.rt.untag(t)
	}
	t.tag = tag
	if tag != "" && t.hooked {
		t.rt.tags[tag] = append(t.rt.tags[tag], t)
	}
	return t
}

// Then registers fn to run each time the transition completes a pass.
func (t *Transition) Then(fn func()) *Transition {
	t.done = append(t.done, fn)
	return t
}

// ThenRun starts next when this transition completes.
func (t *Transition) ThenRun(next *Transition) *Transition {
	return t.Then(func() { next.start(next.mode) })
}

// Now starts the transition once from the beginning.
func (t *Transition) Now() *Transition { return t.start(RepeatOnce) }

// Repeat starts the transition looping from the beginning.
func (t *Transition) Repeat() *Transition { return t.start(RepeatLoop) }

// PingPong starts the transition bouncing between 0 and 1. Each return to
// 0 completes a pass.
func (t *Transition) PingPong() *Transition { return t.start(RepeatPingPong) }

func (t *Transition) start(mode RepeatMode) *Transition {
	if t.rt.shutdown {
		return t
	}
	t.mode = mode
	t.finished = false
	t.paused = false
	if !t.hooked {
		t.hook = t.rt.AddUpdateHook(t.update)
		t.hooked = true
		if t.tag != "" {
			t.rt.tags[t.tag] = append(t.rt.tags[t.tag], t)
		}
	}
	t.Reset()
	return t
}

// Reset rewinds to the beginning and calls fn(0).
func (t *Transition) Reset() {
	t.current = 0
	t.reverse = false
	t.call(0)
}

// Pause stops time from advancing.
func (t *Transition) Pause() { t.paused = true }

// Resume continues after Pause.
func (t *Transition) Resume() { t.paused = false }

// IsFinished reports whether the transition was disposed or ran to the end.
func (t *Transition) IsFinished() bool { return t.finished }

// IsRunning reports whether the transition is started and not finished.
func (t *Transition) IsRunning() bool { return t.hooked && !t.finished }

// Value returns the progress in [0, 1] before easing.
func (t *Transition) Value() float64 { return t.progress() }

// Finish jumps to the end, calling fn(1) if it was not there already, and
// disposes the transition. Done callbacks do not run.
func (t *Transition) Finish() {
	if t.finished {
		return
	}
	if t.progress() < 1 || t.reverse {
		t.call(1)
	}
	t.Dispose()
}

// Dispose stops the transition without calling fn.
func (t *Transition) Dispose() {
	if t.hooked {
		t.rt.RemoveUpdateHook(t.hook)
		t.hooked = false
	}
	if t.tag != "" {
		t.rt.untag(t)
	}
	t.finished = true
}

func (t *Transition) progress() float64 {
	if t.duration <= 0 {
		if t.reverse {
			return 0
		}
		return 1
	}
	return clamp01(t.current / t.duration)
}

func (t *Transition) alive() bool {
	for _, w := range t.uses {
		v := w.Value()
		if v == nil || v.disposed {
			return false
		}
	}
	return true
}

func (t *Transition) call(p float64) {
	if !t.alive() {
		t.Dispose()
		return
	}
	v, _ := t.curve.Set(float32(p))
	t.fn(float64(v))
}

func (t *Transition) update(dt float64) {
	if t.paused || t.finished {
		return
	}
	if !t.alive() {
		t.Dispose()
		return
	}
	if t.reverse {
		t.current -= dt
	} else {
		t.current += dt
	}
	p := t.progress()

	pass := false
	switch {
	case t.reverse && p <= 0:
		t.current = 0
		t.reverse = false
		pass = true
	case !t.reverse && p >= 1:
		switch t.mode {
		case RepeatOnce:
			pass = true
		case RepeatLoop:
			t.current = 0
			pass = true
		case RepeatPingPong:
			t.current = t.duration
			t.reverse = true
		}
	}
	t.call(p)
	if !pass || t.finished {
		return
	}
	if t.mode == RepeatOnce {
		t.Dispose()
	}
	for _, fn := range t.done {
		fn()
	}
}

// AnyTransition reports whether a transition tagged tag is running.
func (rt *Runtime) AnyTransition(tag string) bool {
	for _, t := range rt.tags[tag] {
		if t.IsRunning() {
			return true
		}
	}
	return false
}

// KillTransitions disposes every transition tagged tag.
func (rt *Runtime) KillTransitions(tag string) {
	list := rt.tags[tag]
	delete(rt.tags, tag)
	for _, t := range list {
		t.tag = ""
		t.Dispose()
	}
}

func (rt *Runtime) untag(t *Transition) {
	list := rt.tags[t.tag]
	for i, o := range list {
		if o == t {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(rt.tags, t.tag)
	} else {
		rt.tags[t.tag] = list
	}
}
