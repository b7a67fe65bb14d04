package bough

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func step(t *testing.T, rt *Runtime, dt float64, n int) {
	t.Helper()
	for range n {
		if err := rt.Update(dt); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !approxEqual(a[i], b[i], epsilon) {
			return false
		}
	}
	return true
}

func TestTransition_Now(t *testing.T) {
	rt := newTestRuntime(t)
	var got []float64
	done := 0
	tr := rt.NewTransition(1, func(v float64) { got = append(got, v) }).
		Then(func() { done++ })
	if tr.IsRunning() || len(got) != 0 {
		t.Fatal("transition ran before it was started")
	}
	tr.Now()
	step(t, rt, 0.25, 5)

	if want := []float64{0, 0.25, 0.5, 0.75, 1}; !equalFloats(got, want) {
		t.Errorf("values = %v, want %v", got, want)
	}
	if done != 1 {
		t.Errorf("done = %d, want 1", done)
	}
	if !tr.IsFinished() || tr.IsRunning() {
		t.Error("finished transition still running")
	}
	if rt.HookCount() != 0 {
		t.Errorf("HookCount = %d, want 0", rt.HookCount())
	}
}

func TestTransition_Repeat(t *testing.T) {
	rt := newTestRuntime(t)
	var got []float64
	done := 0
	tr := rt.NewTransition(0.5, func(v float64) { got = append(got, v) }).
		Then(func() { done++ }).
		Repeat()
	step(t, rt, 0.25, 4)

	if want := []float64{0, 0.5, 1, 0.5, 1}; !equalFloats(got, want) {
		t.Errorf("values = %v, want %v", got, want)
	}
	if done != 2 {
		t.Errorf("done = %d, want 2", done)
	}
	if !tr.IsRunning() {
		t.Error("looping transition stopped")
	}
}

func TestTransition_PingPong(t *testing.T) {
	rt := newTestRuntime(t)
	var got []float64
	done := 0
	tr := rt.NewTransition(0.5, func(v float64) { got = append(got, v) }).
		Then(func() { done++ }).
		PingPong()
	step(t, rt, 0.25, 4)

	if want := []float64{0, 0.5, 1, 0.5, 0}; !equalFloats(got, want) {
		t.Errorf("values = %v, want %v", got, want)
	}
	if done != 1 {
		t.Errorf("done = %d, want 1", done)
	}
	if !tr.IsRunning() {
		t.Error("ping-pong transition stopped")
	}
}

func TestTransition_Ease(t *testing.T) {
	rt := newTestRuntime(t)
	var last float64
	tr := rt.NewTransition(1, func(v float64) { last = v }).Ease(ease.InQuad).Now()
	step(t, rt, 0.5, 1)
	if !approxEqual(last, 0.25, epsilon) {
		t.Errorf("eased value = %v, want 0.25", last)
	}
	if !approxEqual(tr.Value(), 0.5, epsilon) {
		t.Errorf("Value = %v, want 0.5", tr.Value())
	}
}

func TestTransition_ZeroDuration(t *testing.T) {
	rt := newTestRuntime(t)
	var got []float64
	tr := rt.NewTransition(0, func(v float64) { got = append(got, v) }).Now()
	step(t, rt, 0.25, 2)
	if want := []float64{0, 1}; !equalFloats(got, want) {
		t.Errorf("values = %v, want %v", got, want)
	}
	if !tr.IsFinished() {
		t.Error("zero-length transition did not finish")
	}
}

func TestTransition_PauseResume(t *testing.T) {
	rt := newTestRuntime(t)
	calls := 0
	tr := rt.NewTransition(1, func(float64) { calls++ }).Now()
	step(t, rt, 0.25, 1)
	tr.Pause()
	step(t, rt, 0.25, 2)
	if calls != 2 || !approxEqual(tr.Value(), 0.25, epsilon) {
		t.Errorf("paused: calls, value = %d, %v, want 2, 0.25", calls, tr.Value())
	}
	tr.Resume()
	step(t, rt, 0.25, 1)
	if !approxEqual(tr.Value(), 0.5, epsilon) {
		t.Errorf("resumed value = %v, want 0.5", tr.Value())
	}
}

func TestTransition_Finish(t *testing.T) {
	rt := newTestRuntime(t)
	var last float64
	done := 0
	tr := rt.NewTransition(1, func(v float64) { last = v }).Then(func() { done++ }).Now()
	step(t, rt, 0.25, 1)
	tr.Finish()
	if last != 1 {
		t.Errorf("value after Finish = %v, want 1", last)
	}
	if done != 0 {
		t.Errorf("done = %d, want 0", done)
	}
	if !tr.IsFinished() || rt.HookCount() != 0 {
		t.Error("Finish left the transition hooked")
	}
	tr.Finish()
}

func TestTransition_Dispose(t *testing.T) {
	rt := newTestRuntime(t)
	calls := 0
	tr := rt.NewTransition(1, func(float64) { calls++ }).Now()
	tr.Dispose()
	step(t, rt, 0.25, 2)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestTransition_UsesDisposedVisual(t *testing.T) {
	rt := newTestRuntime(t)
	e, _ := NewEmpty(rt, Vec3{}, Vec2{}, VisualOptions{})
	calls := 0
	tr := rt.NewTransition(1, func(float64) { calls++ }).Uses(e.Visual()).Now()
	step(t, rt, 0.25, 1)
	e.Dispose()
	step(t, rt, 0.25, 1)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if !tr.IsFinished() {
		t.Error("transition outlived its visual")
	}
}

func TestTransition_ThenRun(t *testing.T) {
	rt := newTestRuntime(t)
	var order []string
	second := rt.NewTransition(0.5, func(v float64) {
		if v == 0 {
			order = append(order, "second")
		}
	})
	rt.NewTransition(0.5, func(v float64) {
		if v == 1 {
			order = append(order, "first")
		}
	}).ThenRun(second).Now()
	step(t, rt, 0.25, 2)
	if want := []string{"first", "second"}; !equalStrings(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if !second.IsRunning() {
		t.Error("chained transition is not running")
	}
}

func TestTransition_Tags(t *testing.T) {
	rt := newTestRuntime(t)
	a := rt.NewTransition(1, func(float64) {}).Tag("fade").Now()
	b := rt.NewTransition(1, func(float64) {}).Now().Tag("fade")
	if !rt.AnyTransition("fade") {
		t.Fatal("AnyTransition(fade) = false")
	}
	if rt.AnyTransition("slide") {
		t.Error("AnyTransition(slide) = true")
	}
	a.Dispose()
	if !rt.AnyTransition("fade") {
		t.Error("AnyTransition(fade) = false with b running")
	}
	rt.KillTransitions("fade")
	if rt.AnyTransition("fade") || !b.IsFinished() {
		t.Error("KillTransitions left a transition running")
	}
}

func TestTransition_SuppressInput(t *testing.T) {
	rt := newTestRuntime(t)
	rt.SuppressInput("modal")
	rt.SuppressInput("modal")
	if !rt.InputEnabled() {
		t.Fatal("input disabled with no transitions")
	}
	tr := rt.NewTransition(0.5, func(float64) {}).Tag("modal").Now()
	if rt.InputEnabled() {
		t.Error("input enabled during a suppressing transition")
	}
	step(t, rt, 0.25, 2)
	if !tr.IsFinished() || !rt.InputEnabled() {
		t.Error("input still suppressed after the transition ended")
	}

	rt.NewTransition(1, func(float64) {}).Tag("modal").Now()
	rt.AllowInput("modal")
	if !rt.InputEnabled() {
		t.Error("AllowInput did not lift suppression")
	}
	rt.SetInputEnabled(false)
	if rt.InputEnabled() {
		t.Error("SetInputEnabled(false) ignored")
	}
}

func TestImage_Animate(t *testing.T) {
	rt := newTestRuntime(t)
	img, _ := NewImage(rt, Vec3{}, Vec2{16, 16}, "ui/caret", VisualOptions{})
	tr := img.Animate(1, []string{"ui/button", "ui/panel"}).Repeat()
	if img.Sprite() != "ui/button" {
		t.Errorf("sprite = %q, want ui/button", img.Sprite())
	}
	step(t, rt, 0.5, 1)
	if img.Sprite() != "ui/panel" {
		t.Errorf("sprite = %q, want ui/panel", img.Sprite())
	}
	img.Dispose()
	step(t, rt, 0.25, 1)
	if !tr.IsFinished() {
		t.Error("animation outlived its image")
	}
}
