package bough

import (
	"errors"
	"testing"
)

// probe is a bare control that records its disposal.
type probe struct {
	ControlBase
	name string
	log  *[]string
}

func (p *probe) OnDispose() { *p.log = append(*p.log, p.name) }

func newProbe(t *testing.T, rt *Runtime, name string, parent Control, log *[]string) *probe {
	t.Helper()
	p := &probe{name: name, log: log}
	if _, err := rt.Attach(p, Vec3{}, Vec2{10, 10}, VisualOptions{Name: name, Parent: parent}); err != nil {
		t.Fatalf("Attach(%s): %v", name, err)
	}
	return p
}

func TestAttach_Defaults(t *testing.T) {
	rt := newTestRuntime(t)
	img, err := NewImage(rt, Vec3{10, 20, 5}, Vec2{16, 16}, "ui/button", VisualOptions{Name: "img"})
	if err != nil {
		t.Fatal(err)
	}
	v := img.Visual()
	if v.Layer().Name != GuiLayer {
		t.Errorf("layer = %q, want %q", v.Layer().Name, GuiLayer)
	}
	if v.Color() != ColorWhite {
		t.Errorf("color = %v, want white", v.Color())
	}
	if v.Dirty() != DirtySize|DirtyContent {
		t.Errorf("dirty = %v, want size|content", v.Dirty())
	}
	if !v.IsActive() || !v.IsVisible() {
		t.Error("new visual should be active and visible")
	}
	if v.Origin() != (Vec3{10, 20, 5}) {
		t.Errorf("origin = %v, want (10,20,5)", v.Origin())
	}
	if rt.VisualCount() != 1 {
		t.Errorf("VisualCount = %d, want 1", rt.VisualCount())
	}

	update(t, rt, 1)
	if v.IsDirty() {
		t.Errorf("dirty after update = %v", v.Dirty())
	}
	meshes := v.Meshes()
	if len(meshes) != 1 || meshes[0].QuadCount() != 1 {
		t.Fatalf("meshes = %d, want 1 with 1 quad", len(meshes))
	}
	if r, ok := v.hitRect(); !ok || r != (Rect{10, 20, 16, 16}) {
		t.Errorf("hitRect = %v, %v, want (10,20,16,16), true", r, ok)
	}
}

func TestAttach_PixelAlign(t *testing.T) {
	rt := newTestRuntime(t)
	a, err := NewImage(rt, Vec3{10.4, 20.6, 0}, Vec2{16, 16}, "ui/button", VisualOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Visual().Origin(); got != (Vec3{10, 21, 0}) {
		t.Errorf("aligned origin = %v, want (10,21,0)", got)
	}
	b, err := NewImage(rt, Vec3{10.4, 20.6, 0}, Vec2{16, 16}, "ui/button", VisualOptions{PixelAlign: PixelAlignNone})
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Visual().Origin(); got != (Vec3{10.4, 20.6, 0}) {
		t.Errorf("unaligned origin = %v, want (10.4,20.6,0)", got)
	}
	c, err := NewImage(rt, Vec3{10, 20, 0}, Vec2{16, 16}, "ui/button", VisualOptions{Anchor: AnchorCenter})
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Visual().Origin(); got != (Vec3{18, 28, 0}) {
		t.Errorf("centered origin = %v, want (18,28,0)", got)
	}
}

func TestAttach_Layers(t *testing.T) {
	rt := newTestRuntime(t)
	if _, err := rt.AddLayer("world", nil); err != nil {
		t.Fatal(err)
	}
	parent, err := NewEmpty(rt, Vec3{}, Vec2{10, 10}, VisualOptions{Layer: "world"})
	if err != nil {
		t.Fatal(err)
	}
	child, err := NewEmpty(rt, Vec3{}, Vec2{10, 10}, VisualOptions{Parent: parent})
	if err != nil {
		t.Fatal(err)
	}
	if got := child.Visual().Layer().Name; got != "world" {
		t.Errorf("child layer = %q, want world", got)
	}
	if _, err := NewEmpty(rt, Vec3{}, Vec2{}, VisualOptions{Layer: "nope"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown layer err = %v, want ErrNotFound", err)
	}
}

func TestAttach_Errors(t *testing.T) {
	rt := newTestRuntime(t)
	img, err := NewImage(rt, Vec3{}, Vec2{16, 16}, "ui/button", VisualOptions{Name: "img"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rt.Attach(img, Vec3{}, Vec2{}, VisualOptions{}); err == nil {
		t.Error("attaching twice succeeded")
	}

	parent, _ := NewEmpty(rt, Vec3{}, Vec2{}, VisualOptions{})
	parent.Dispose()
	if _, err := NewEmpty(rt, Vec3{}, Vec2{}, VisualOptions{Parent: parent}); !errors.Is(err, ErrDisposed) {
		t.Errorf("disposed parent err = %v, want ErrDisposed", err)
	}

	rt.Shutdown()
	if !rt.IsShutdown() {
		t.Error("IsShutdown = false")
	}
	if _, err := NewEmpty(rt, Vec3{}, Vec2{}, VisualOptions{}); !errors.Is(err, ErrShutdown) {
		t.Errorf("attach after shutdown err = %v, want ErrShutdown", err)
	}
	if err := rt.Update(1.0 / 60); !errors.Is(err, ErrShutdown) {
		t.Errorf("Update after shutdown err = %v, want ErrShutdown", err)
	}
	if _, err := rt.Font("body"); !errors.Is(err, ErrShutdown) {
		t.Errorf("Font after shutdown err = %v, want ErrShutdown", err)
	}
	if !img.IsDisposed() {
		t.Error("shutdown left a visual alive")
	}
}

func TestVisual_SetPositionMovesDescendants(t *testing.T) {
	rt := newTestRuntime(t)
	parent, _ := NewEmpty(rt, Vec3{0, 0, 10}, Vec2{100, 100}, VisualOptions{})
	child, _ := NewEmpty(rt, Vec3{10, 10, 9}, Vec2{10, 10}, VisualOptions{Parent: parent})
	grand, _ := NewEmpty(rt, Vec3{20, 20, 8}, Vec2{10, 10}, VisualOptions{Parent: child})

	parent.SetPosition(Vec3{5, -5, 10})
	if got := child.Position(); got != (Vec3{15, 5, 9}) {
		t.Errorf("child = %v, want (15,5,9)", got)
	}
	if got := grand.Position(); got != (Vec3{25, 15, 8}) {
		t.Errorf("grandchild = %v, want (25,15,8)", got)
	}
	if got := grand.Visual().Origin(); got != (Vec3{25, 15, 8}) {
		t.Errorf("grandchild origin = %v, want (25,15,8)", got)
	}

	child.SetCenter(Vec2{50, 50})
	if got := child.Position(); got != (Vec3{45, 45, 9}) {
		t.Errorf("centered child = %v, want (45,45,9)", got)
	}
	if got := grand.Position(); got != (Vec3{55, 55, 8}) {
		t.Errorf("grandchild after SetCenter = %v, want (55,55,8)", got)
	}
}

func TestVisual_Tree(t *testing.T) {
	rt := newTestRuntime(t)
	parent, _ := NewEmpty(rt, Vec3{}, Vec2{}, VisualOptions{Name: "root"})
	a, _ := NewEmpty(rt, Vec3{}, Vec2{}, VisualOptions{Name: "a", Parent: parent})
	b, _ := NewEmpty(rt, Vec3{}, Vec2{}, VisualOptions{Name: "b", Parent: parent})
	c, _ := NewEmpty(rt, Vec3{}, Vec2{}, VisualOptions{Name: "c", Parent: a})

	if got := parent.Children(); len(got) != 2 || got[0] != Control(a) || got[1] != Control(b) {
		t.Errorf("Children = %v, want [a b]", got)
	}
	if got := parent.Descendants(); len(got) != 3 || got[1] != Control(c) {
		t.Errorf("Descendants = %v, want [a c b]", got)
	}
	if got := parent.FindChild("b"); got != Control(b) {
		t.Errorf("FindChild(b) = %v", got)
	}
	if got := parent.FindChild("c"); got != nil {
		t.Errorf("FindChild(c) = %v, want nil", got)
	}
	if c.Parent() != Control(a) || parent.Parent() != nil {
		t.Error("Parent links are wrong")
	}
	if got := rt.VisualCount(); got != 4 {
		t.Errorf("VisualCount = %d, want 4", got)
	}
}

func TestVisual_Dispose(t *testing.T) {
	rt := newTestRuntime(t)
	var log []string
	parent := newProbe(t, rt, "parent", nil, &log)
	newProbe(t, rt, "a", parent, &log)
	b := newProbe(t, rt, "b", parent, &log)
	newProbe(t, rt, "b1", b, &log)

	parent.Dispose()
	want := []string{"b1", "b", "a", "parent"}
	if !equalStrings(log, want) {
		t.Errorf("dispose order = %v, want %v", log, want)
	}
	if !parent.IsDisposed() || !b.IsDisposed() {
		t.Error("IsDisposed = false after Dispose")
	}
	if got := parent.Visual().Generation(); got != 1 {
		t.Errorf("Generation = %d, want 1", got)
	}
	if got := rt.VisualCount(); got != 0 {
		t.Errorf("VisualCount = %d, want 0", got)
	}

	parent.Dispose()
	if len(log) != 4 {
		t.Errorf("second Dispose ran OnDispose again: %v", log)
	}
}

func TestVisual_DisposeChild(t *testing.T) {
	rt := newTestRuntime(t)
	var log []string
	parent := newProbe(t, rt, "parent", nil, &log)
	a := newProbe(t, rt, "a", parent, &log)
	newProbe(t, rt, "b", parent, &log)

	a.Dispose()
	if got := parent.Children(); len(got) != 1 || got[0].Visual().Name() != "b" {
		t.Errorf("Children after dispose = %v, want [b]", got)
	}
	if parent.IsDisposed() {
		t.Error("disposing a child disposed the parent")
	}
}

func TestVisual_Rebuild(t *testing.T) {
	rt := newTestRuntime(t)
	img, err := NewImage(rt, Vec3{}, Vec2{100, 50}, "ui/panel", VisualOptions{})
	if err != nil {
		t.Fatal(err)
	}
	v := img.Visual()
	// Readers rebuild on demand.
	if got := v.Meshes()[0].QuadCount(); got != 9 {
		t.Errorf("QuadCount = %d, want 9", got)
	}
	if v.IsDirty() {
		t.Error("Meshes left the visual dirty")
	}

	img.SetSize(Vec2{100, 50})
	if v.IsDirty() {
		t.Error("SetSize to the same size marked dirty")
	}
	img.SetSize(Vec2{8, 8})
	if v.Dirty()&DirtySize == 0 {
		t.Errorf("dirty = %v, want size", v.Dirty())
	}
	update(t, rt, 1)
	xy, _ := v.Meshes()[0].Quad(0)
	if xy != (Rect{0, 0, 4, 4}) {
		t.Errorf("corner after resize = %v, want (0,0,4,4)", xy)
	}

	img.SetSprite("ui/button")
	if v.Dirty()&DirtyContent == 0 {
		t.Errorf("dirty = %v, want content", v.Dirty())
	}
	update(t, rt, 1)
	if got := v.Meshes()[0].QuadCount(); got != 1 {
		t.Errorf("QuadCount = %d, want 1", got)
	}
}

func TestVisual_RebuildError(t *testing.T) {
	rt := newTestRuntime(t)
	img, err := NewImage(rt, Vec3{}, Vec2{16, 16}, "ui/missing", VisualOptions{Name: "broken"})
	if err != nil {
		t.Fatal(err)
	}
	err = rt.Update(1.0 / 60)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update err = %v, want ErrNotFound", err)
	}
	if img.Visual().IsDirty() {
		t.Error("failed rebuild should not retry every frame")
	}
	if err := rt.Update(1.0 / 60); err != nil {
		t.Errorf("second Update err = %v, want nil", err)
	}
}

func TestVisual_EmptySprite(t *testing.T) {
	rt := newTestRuntime(t)
	img, _ := NewImage(rt, Vec3{}, Vec2{16, 16}, "", VisualOptions{})
	update(t, rt, 1)
	if got := img.Visual().Meshes(); len(got) != 0 {
		t.Errorf("meshes = %d, want 0", len(got))
	}
}

func TestVisual_SetColor(t *testing.T) {
	rt := newTestRuntime(t)
	img, _ := NewImage(rt, Vec3{}, Vec2{16, 16}, "ui/button", VisualOptions{})
	update(t, rt, 1)
	red := Color{1, 0, 0, 1}
	img.SetColor(red)
	if img.Visual().IsDirty() {
		t.Error("SetColor marked the visual dirty")
	}
	for i, c := range img.Visual().Meshes()[0].Colors {
		if c != red {
			t.Errorf("vertex %d color = %v, want red", i, c)
		}
	}
}

func TestVisual_ActiveInherited(t *testing.T) {
	rt := newTestRuntime(t)
	parent, _ := NewEmpty(rt, Vec3{}, Vec2{}, VisualOptions{})
	child, _ := NewEmpty(rt, Vec3{}, Vec2{}, VisualOptions{Parent: parent})
	parent.SetActive(false)
	if child.Visual().IsActive() {
		t.Error("child of an inactive parent is active")
	}
	parent.SetActive(true)
	parent.SetVisible(false)
	if !child.Visual().IsVisible() || !child.Visual().IsActive() {
		t.Error("hiding the parent affected the child")
	}
}

func TestVisual_LabelBounds(t *testing.T) {
	rt := newTestRuntime(t)
	l, err := NewLabel(rt, Vec3{10, 10, 0}, Vec2{100, 20}, "Hello", LabelOptions{
		TextFormat: TextFormat{Font: "body", HitTest: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := l.TextBounds(); got != (Rect{10, 14, 40, 16}) {
		t.Errorf("TextBounds = %v, want (10,14,40,16)", got)
	}
	if got := l.CharacterAt(Vec3{13, 20, 0}); got != 0 {
		t.Errorf("CharacterAt = %d, want 0", got)
	}
	if got := l.CharacterBounds(1); got != (Rect{18, 14, 8, 16}) {
		t.Errorf("CharacterBounds(1) = %v, want (18,14,8,16)", got)
	}

	l.SetText("Hi")
	if got := l.TextBounds().Width; got != 16 {
		t.Errorf("width after SetText = %v, want 16", got)
	}
}

func TestVisual_LabelUnknownFont(t *testing.T) {
	rt := newTestRuntime(t)
	if _, err := NewLabel(rt, Vec3{}, Vec2{100, 20}, "x", LabelOptions{TextFormat: TextFormat{Font: "nope"}}); err != nil {
		t.Fatal(err)
	}
	if err := rt.Update(1.0 / 60); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update err = %v, want ErrNotFound", err)
	}
}

func TestVisual_StaleRebuildSkipped(t *testing.T) {
	rt := newTestRuntime(t)
	sv, err := NewScrollView(rt, Vec3{}, Vec2{100, 100}, ScrollViewOptions{})
	if err != nil {
		t.Fatal(err)
	}
	img, err := NewImage(rt, Vec3{0, 200, -1}, Vec2{16, 16}, "ui/button", VisualOptions{Parent: sv})
	if err != nil {
		t.Fatal(err)
	}
	v := img.Visual()

	// The first build always runs; everything is clipped away.
	update(t, rt, 1)
	if v.skipped || !v.Clipped() {
		t.Fatalf("skipped, clipped = %v, %v, want false, true", v.skipped, v.Clipped())
	}
	if _, ok := v.hitRect(); ok {
		t.Error("clipped-away image is hittable")
	}

	img.Invalidate()
	update(t, rt, 1)
	if !v.skipped {
		t.Fatal("rebuild outside the clip was not skipped")
	}
	if len(v.Meshes()) != 0 {
		t.Errorf("skipped visual has %d meshes", len(v.Meshes()))
	}
	if _, ok := v.hitRect(); ok {
		t.Error("skipped image is hittable")
	}

	// Scrolling to the top brings it into view.
	sv.SetVScroll(0)
	if got := img.Position().Y; got != 84 {
		t.Fatalf("image y = %v, want 84", got)
	}
	update(t, rt, 1)
	if v.skipped || v.Clipped() {
		t.Errorf("skipped, clipped = %v, %v, want false, false", v.skipped, v.Clipped())
	}
	if got := v.Meshes()[0].QuadCount(); got != 1 {
		t.Errorf("QuadCount = %d, want 1", got)
	}
}

func TestVisual_TextGrowsPastClip(t *testing.T) {
	rt := newTestRuntime(t)
	sv, err := NewScrollView(rt, Vec3{}, Vec2{100, 100}, ScrollViewOptions{})
	if err != nil {
		t.Fatal(err)
	}
	l, err := NewLabel(rt, Vec3{10, 10, -1}, Vec2{300, 20}, "ab", LabelOptions{
		VisualOptions: VisualOptions{Parent: sv},
		TextFormat:    TextFormat{Font: "body"},
	})
	if err != nil {
		t.Fatal(err)
	}
	v := l.Visual()
	update(t, rt, 1)
	if v.Clipped() {
		t.Fatal("short text reported as clipped")
	}

	l.SetText("abcdefghijklmnopqrstuvwxyz")
	update(t, rt, 1)
	if !v.Clipped() {
		t.Error("long text not reported as clipped")
	}
	// Glyph 11 is trimmed at the clip edge; later glyphs are dropped.
	m := v.Meshes()[0]
	if got := m.QuadCount(); got != 12 {
		t.Errorf("QuadCount = %d, want 12", got)
	}
	if got := m.Bounds().XMax(); got != 90 {
		t.Errorf("mesh right edge = %v, want 90", got)
	}
	if r, ok := v.hitRect(); !ok || r.XMax() != 100 {
		t.Errorf("hitRect = %v, %v, want right edge 100", r, ok)
	}
}

func TestVisual_StaleTextRebuildSkipped(t *testing.T) {
	rt := newTestRuntime(t)
	sv, err := NewScrollView(rt, Vec3{}, Vec2{100, 100}, ScrollViewOptions{})
	if err != nil {
		t.Fatal(err)
	}
	l, err := NewLabel(rt, Vec3{0, 200, -1}, Vec2{100, 16}, "ab", LabelOptions{
		VisualOptions: VisualOptions{Parent: sv},
		TextFormat:    TextFormat{Font: "body", HitTest: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	v := l.Visual()
	update(t, rt, 1)

	// While skipped, the hit-test table still describes the old text.
	l.SetText("xyz")
	update(t, rt, 1)
	if !v.skipped {
		t.Fatal("rebuild outside the clip was not skipped")
	}
	if got := len(v.Layout().CharBoxes); got != 2 {
		t.Errorf("CharBoxes = %d, want the stale 2", got)
	}
	if got := l.CharacterBounds(2); got != (Rect{}) {
		t.Errorf("CharacterBounds(2) = %v, want empty", got)
	}

	sv.SetVScroll(0)
	if got := l.Position().Y; got != 84 {
		t.Fatalf("label y = %v, want 84", got)
	}
	update(t, rt, 1)
	if v.skipped {
		t.Fatal("label still skipped inside the clip")
	}
	if got := len(v.Layout().CharBoxes); got != 3 {
		t.Errorf("CharBoxes = %d, want 3", got)
	}
	if got := l.CharacterBounds(2); got.Width != 8 {
		t.Errorf("CharacterBounds(2) = %v, want an 8px box", got)
	}
}
