package bough

import (
	"strings"
	"testing"
)

func commandNames(rt *Runtime) []string {
	names := make([]string, len(rt.commands))
	for i, c := range rt.commands {
		names[i] = c.visual.Name()
	}
	return names
}

func newNamedImage(t *testing.T, rt *Runtime, name string, pos Vec3, opts VisualOptions) *Image {
	t.Helper()
	opts.Name = name
	img, err := NewImage(rt, pos, Vec2{16, 16}, "ui/button", opts)
	if err != nil {
		t.Fatalf("NewImage(%s): %v", name, err)
	}
	return img
}

func TestRender_SortOrder(t *testing.T) {
	rt := newTestRuntime(t)
	if _, err := rt.AddLayer("world", nil); err != nil {
		t.Fatal(err)
	}
	newNamedImage(t, rt, "near", Vec3{0, 0, 0}, VisualOptions{})
	newNamedImage(t, rt, "far", Vec3{0, 0, 5}, VisualOptions{})
	newNamedImage(t, rt, "near2", Vec3{0, 0, 0}, VisualOptions{})
	newNamedImage(t, rt, "world", Vec3{0, 0, -50}, VisualOptions{Layer: "world"})

	rt.collect()
	rt.mergeSort()

	// Lower layers first, then far to near, then tree order.
	want := []string{"world", "far", "near", "near2"}
	if got := commandNames(rt); !equalStrings(got, want) {
		t.Errorf("draw order = %v, want %v", got, want)
	}
}

func TestRender_SkipsHiddenAndInactive(t *testing.T) {
	rt := newTestRuntime(t)
	newNamedImage(t, rt, "shown", Vec3{}, VisualOptions{})
	hidden := newNamedImage(t, rt, "hidden", Vec3{}, VisualOptions{})
	hidden.SetVisible(false)
	parent := newNamedImage(t, rt, "parent", Vec3{}, VisualOptions{})
	newNamedImage(t, rt, "child", Vec3{}, VisualOptions{Parent: parent})
	parent.SetActive(false)
	if _, err := NewImage(rt, Vec3{}, Vec2{16, 16}, "", VisualOptions{Name: "blank"}); err != nil {
		t.Fatal(err)
	}

	rt.collect()
	if got, want := commandNames(rt), []string{"shown"}; !equalStrings(got, want) {
		t.Errorf("commands = %v, want %v", got, want)
	}
}

func TestRender_Culling(t *testing.T) {
	rt := newTestRuntime(t)
	cam := NewCamera(Rect{0, 0, 640, 480})
	cam.X, cam.Y = 320, 240
	if _, err := rt.AddLayer("world", cam); err != nil {
		t.Fatal(err)
	}
	newNamedImage(t, rt, "inside", Vec3{100, 100, 0}, VisualOptions{Layer: "world"})
	newNamedImage(t, rt, "outside", Vec3{5000, 5000, 0}, VisualOptions{Layer: "world"})

	rt.collect()
	if got, want := commandNames(rt), []string{"inside"}; !equalStrings(got, want) {
		t.Errorf("culling on: commands = %v, want %v", got, want)
	}

	cam.CullEnabled = false
	rt.collect()
	if got, want := commandNames(rt), []string{"inside", "outside"}; !equalStrings(got, want) {
		t.Errorf("culling off: commands = %v, want %v", got, want)
	}
}

func TestRender_CollectRebuildsDirty(t *testing.T) {
	rt := newTestRuntime(t)
	img := newNamedImage(t, rt, "img", Vec3{}, VisualOptions{})
	if !img.Visual().IsDirty() {
		t.Fatal("new image should be dirty")
	}
	rt.collect()
	if img.Visual().IsDirty() {
		t.Error("collect left the image dirty")
	}
	if len(rt.commands) != 1 {
		t.Errorf("commands = %d, want 1", len(rt.commands))
	}
}

func TestMergeSort_Stable(t *testing.T) {
	rt := &Runtime{}
	zs := []float64{1, 3, 1, 2, 3, 1, 2}
	for i, z := range zs {
		rt.commands = append(rt.commands, drawCommand{z: z, seq: i})
	}
	rt.mergeSort()

	wantSeq := []int{1, 4, 3, 6, 0, 2, 5}
	for i, c := range rt.commands {
		if c.seq != wantSeq[i] {
			t.Fatalf("order = %v, want seqs %v", rt.commands, wantSeq)
		}
	}
}

func quadCommand(origin Vec3, layer *Layer, col Color) *drawCommand {
	m := &Mesh{
		Material: newMaterial(testTexture(64, 32), "", nil),
		Vertices: []Vec2{{0, 0}, {16, 0}, {16, 8}, {0, 8}},
		UVs:      []Vec2{{0, 0}, {0.25, 0}, {0.25, 0.5}, {0, 0.5}},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
		Colors:   []Color{col, col, col, col},
	}
	v := &Visual{origin: origin, drawLayer: layer}
	return &drawCommand{mesh: m, visual: v}
}

func TestAppendMeshVertices(t *testing.T) {
	cmd := quadCommand(Vec3{10, 20, 0}, &Layer{Name: GuiLayer}, Color{1, 0.5, 0, 0.5})
	verts, inds := appendMeshVertices(nil, nil, cmd, 480)
	if len(verts) != 4 || len(inds) != 6 {
		t.Fatalf("got %d vertices, %d indices, want 4 and 6", len(verts), len(inds))
	}

	// Vertex 2 is the top-right corner: world (26,28), y flipped.
	v := verts[2]
	if v.DstX != 26 || v.DstY != 452 {
		t.Errorf("dst = (%v,%v), want (26,452)", v.DstX, v.DstY)
	}
	// UVs are y-up; texel coordinates are y-down.
	if v.SrcX != 16 || v.SrcY != 16 {
		t.Errorf("src = (%v,%v), want (16,16)", v.SrcX, v.SrcY)
	}
	if verts[0].SrcY != 32 {
		t.Errorf("bottom-left SrcY = %v, want 32", verts[0].SrcY)
	}
	if v.ColorR != 0.5 || v.ColorG != 0.25 || v.ColorB != 0 || v.ColorA != 0.5 {
		t.Errorf("color = (%v,%v,%v,%v), want premultiplied (0.5,0.25,0,0.5)",
			v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
}

func TestAppendMeshVertices_OffsetsIndices(t *testing.T) {
	cmd := quadCommand(Vec3{}, &Layer{Name: GuiLayer}, ColorWhite)
	verts, inds := appendMeshVertices(nil, nil, cmd, 480)
	verts, inds = appendMeshVertices(verts, inds, cmd, 480)
	if len(verts) != 8 {
		t.Fatalf("vertices = %d, want 8", len(verts))
	}
	want := []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	for i := range want {
		if inds[i] != want[i] {
			t.Fatalf("indices = %v, want %v", inds, want)
		}
	}
}

func TestAppendMeshVertices_Camera(t *testing.T) {
	cam := NewCamera(Rect{0, 0, 640, 480})
	cam.Zoom = 2
	cmd := quadCommand(Vec3{}, &Layer{Name: "world", Camera: cam}, ColorWhite)
	verts, _ := appendMeshVertices(nil, nil, cmd, 480)

	// World origin maps to the viewport center; zoom doubles the quad.
	if v := verts[0]; v.DstX != 320 || v.DstY != 240 {
		t.Errorf("origin at (%v,%v), want (320,240)", v.DstX, v.DstY)
	}
	if v := verts[2]; v.DstX != 352 || v.DstY != 224 {
		t.Errorf("top-right at (%v,%v), want (352,224)", v.DstX, v.DstY)
	}
}

func TestAppendMeshVertices_MissingColors(t *testing.T) {
	cmd := quadCommand(Vec3{}, &Layer{Name: GuiLayer}, ColorWhite)
	cmd.mesh.Colors = nil
	verts, _ := appendMeshVertices(nil, nil, cmd, 480)
	if v := verts[0]; v.ColorR != 1 || v.ColorA != 1 {
		t.Errorf("color = (%v,...,%v), want white", v.ColorR, v.ColorA)
	}
}

func BenchmarkRender_Collect(b *testing.B) {
	rt, err := NewRuntime(DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	rt.source = nil
	a, err := ParseAtlas("ui", strings.NewReader(testAtlasDesc), testTexture(64, 64))
	if err != nil {
		b.Fatal(err)
	}
	_ = rt.AddAtlas(a)
	for i := range 1000 {
		_, _ = NewImage(rt, Vec3{float64(i % 40 * 16), float64(i / 40 * 16), float64(i % 3)}, Vec2{16, 16}, "ui/button", VisualOptions{})
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rt.collect()
		rt.mergeSort()
	}
}
