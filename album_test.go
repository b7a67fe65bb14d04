package bough

import "testing"

func newTestAlbum(t *testing.T, rt *Runtime, selected int) *Album[int] {
	t.Helper()
	a, err := NewAlbum(rt, Vec3{}, Vec2{200, 50}, []int{10, 20, 30}, AlbumOptions{
		ItemSprite:    "ui/button",
		ItemSize:      Vec2{40, 40},
		Spacing:       10,
		SelectedIndex: selected,
	})
	if err != nil {
		t.Fatalf("NewAlbum: %v", err)
	}
	return a
}

func itemXs[T any](a *Album[T]) []float64 {
	var xs []float64
	for _, it := range a.Items() {
		xs = append(xs, it.Position().X)
	}
	return xs
}

func TestAlbum_Layout(t *testing.T) {
	rt := newTestRuntime(t)
	a := newTestAlbum(t, rt, 1)
	if got, want := itemXs(a), []float64{30, 80, 130}; !equalFloats(got, want) {
		t.Errorf("item x = %v, want %v", got, want)
	}
	if got := a.Items()[0].Position().Y; got != 5 {
		t.Errorf("item y = %v, want 5", got)
	}
	if a.SelectedIndex() != 1 || a.Selected() != 20 || !a.Items()[1].Selected() {
		t.Errorf("selected %d (%d)", a.SelectedIndex(), a.Selected())
	}
}

func TestAlbum_SelectedIndexClamped(t *testing.T) {
	rt := newTestRuntime(t)
	a := newTestAlbum(t, rt, 7)
	if a.SelectedIndex() != 2 {
		t.Errorf("SelectedIndex = %d, want 2", a.SelectedIndex())
	}
	if got := a.Items()[2].Position().X; got != 80 {
		t.Errorf("centered item x = %v, want 80", got)
	}
}

func TestAlbum_Slide(t *testing.T) {
	rt := newTestRuntime(t)
	a := newTestAlbum(t, rt, 1)
	a.SetSelectedIndex(2)
	if !a.IsSliding() {
		t.Fatal("IsSliding = false after SetSelectedIndex")
	}
	if a.Selected() != 30 || a.Items()[1].Selected() {
		t.Errorf("selected %d, previous still selected = %v", a.Selected(), a.Items()[1].Selected())
	}
	step(t, rt, 0.5, 2)
	if a.IsSliding() {
		t.Error("slide did not finish")
	}
	if got, want := itemXs(a), []float64{-20, 30, 80}; !equalFloats(got, want) {
		t.Errorf("item x = %v, want %v", got, want)
	}
}

func TestAlbum_ClickItem(t *testing.T) {
	rt := newTestRuntime(t)
	a := newTestAlbum(t, rt, 1)
	click(t, rt, 50, 25)
	if a.SelectedIndex() != 0 {
		t.Fatalf("SelectedIndex = %d, want 0", a.SelectedIndex())
	}
	step(t, rt, 1, 1)
	if got := a.Items()[0].Position().X; got != 80 {
		t.Errorf("clicked item x = %v, want 80", got)
	}
}

func TestAlbum_Empty(t *testing.T) {
	rt := newTestRuntime(t)
	a, err := NewAlbum[string](rt, Vec3{}, Vec2{200, 50}, nil, AlbumOptions{ItemSize: Vec2{40, 40}})
	if err != nil {
		t.Fatal(err)
	}
	if a.SelectedIndex() != -1 || a.Selected() != "" {
		t.Errorf("empty album selected %d %q", a.SelectedIndex(), a.Selected())
	}
	a.SetSelectedIndex(1)
	if a.IsSliding() {
		t.Error("empty album started sliding")
	}
}

func TestAlbum_ClipsItems(t *testing.T) {
	rt := newTestRuntime(t)
	a := newTestAlbum(t, rt, 0)
	// Items at 80, 130 and 180; the last one crosses the right edge.
	if got := a.Items()[2].Position().X; got != 180 {
		t.Fatalf("last item x = %v, want 180", got)
	}
	if !a.Items()[2].Visual().Clipped() || a.Items()[0].Visual().Clipped() {
		t.Error("clip state is wrong")
	}
}
