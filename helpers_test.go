package bough

import (
	"fmt"
	"image"
	"math"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func rectApprox(a, b Rect) bool {
	return approxEqual(a.X, b.X, 1e-6) && approxEqual(a.Y, b.Y, 1e-6) &&
		approxEqual(a.Width, b.Width, 1e-6) && approxEqual(a.Height, b.Height, 1e-6)
}

// testAtlasDesc describes a 64x64 texture:
//
//	button 16x16 plain
//	panel  32x32 with a 4px border
//	frame  32x32 with a 4px border and a hollow center
//	tile   16x16 tiled on both axes
//	caret  2x16 plain
const testAtlasDesc = "atlas\n" +
	"button\t0\t0\t0.25\t0.25\n" +
	"panel\t0.25\t0\t0.75\t0.5\t4\t4\t4\t4\tfalse\tfalse\tfalse\n" +
	"frame\t0.25\t0\t0.75\t0.5\t4\t4\t4\t4\ttrue\tfalse\tfalse\n" +
	"tile\t0\t0.5\t0.25\t0.75\t0\t0\t0\t0\tfalse\ttrue\ttrue\n" +
	"caret\t0\t0.75\t0.03125\t1\n"

func testTexture(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func testAtlas(t *testing.T) *Atlas {
	t.Helper()
	a, err := ParseAtlas("ui", strings.NewReader(testAtlasDesc), testTexture(64, 64))
	if err != nil {
		t.Fatalf("ParseAtlas: %v", err)
	}
	return a
}

func testSprite(t *testing.T, name string) *Sprite {
	t.Helper()
	sp, err := testAtlas(t).Sprite(name)
	if err != nil {
		t.Fatalf("Sprite(%q): %v", name, err)
	}
	return sp
}

// testFontDesc builds a BMFont description with printable ASCII glyphs. Every
// glyph is 6x10 pixels with xoffset 1 and yoffset 2; the space has no
// pixels. Line height is 16 and the baseline 12. "AV" kerns by -2.
func testFontDesc(name string, advance int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "info face=%q size=16 bold=0 italic=0 outline=0\n", name)
	b.WriteString("common lineHeight=16 base=12 scaleW=128 scaleH=128 pages=1 packed=0\n")
	fmt.Fprintf(&b, "page id=0 file=\"%s_0.png\"\n", name)
	fmt.Fprintf(&b, "chars count=%d\n", 126-32+1)
	for r := 32; r <= 126; r++ {
		w, h := 6, 10
		if r == ' ' {
			w, h = 0, 0
		}
		x, y := ((r-32)%16)*8, ((r-32)/16)*12
		fmt.Fprintf(&b, "char id=%d x=%d y=%d width=%d height=%d xoffset=1 yoffset=2 xadvance=%d page=0 chnl=15\n",
			r, x, y, w, h, advance)
	}
	b.WriteString("kernings count=1\n")
	b.WriteString("kerning first=65 second=86 amount=-2\n")
	return b.String()
}

func testFont(t *testing.T, name string, advance int) *BitmapFont {
	t.Helper()
	f, err := ParseBitmapFont(name, strings.NewReader(testFontDesc(name, advance)),
		map[string]image.Image{name + "_0": testTexture(128, 128)})
	if err != nil {
		t.Fatalf("ParseBitmapFont(%q): %v", name, err)
	}
	return f
}

// newTestRuntime returns a 640x480 runtime with the "ui" atlas, the "body"
// font (8px advance) and the "bold" font (10px advance). Device input is
// off; tests drive the pointer through the inject queue or a fakeInput.
func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	rt, err := NewRuntime(DefaultConfig())
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	rt.source = nil
	if err := rt.AddAtlas(testAtlas(t)); err != nil {
		t.Fatal(err)
	}
	for _, f := range []*BitmapFont{testFont(t, "body", 8), testFont(t, "bold", 10)} {
		if err := rt.AddFont(f); err != nil {
			t.Fatal(err)
		}
	}
	return rt
}

// update runs n frames of 1/60s and fails on rebuild errors.
func update(t *testing.T, rt *Runtime, n int) {
	t.Helper()
	for range n {
		if err := rt.Update(1.0 / 60); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
}

// screenY converts a gui-space y into the y-down screen coordinate used by
// the Inject methods.
func screenY(rt *Runtime, y float64) float64 {
	return rt.screenH - y
}

// click presses and releases at a gui-space point over two frames.
func click(t *testing.T, rt *Runtime, x, y float64) {
	t.Helper()
	rt.InjectClick(x, screenY(rt, y))
	update(t, rt, 2)
}

// fakeInput is a scripted inputSource. Coordinates are y-down.
type fakeInput struct {
	x, y          int
	pressed       bool
	wheelY        float64
	touchIDs      []ebiten.TouchID
	touches       map[ebiten.TouchID][2]int
	runes         []rune
	keys          []Key
	cursorVisible bool
}

func (f *fakeInput) cursorPosition() (int, int) { return f.x, f.y }
func (f *fakeInput) mousePressed() bool         { return f.pressed }

func (f *fakeInput) wheel() float64 {
	w := f.wheelY
	f.wheelY = 0
	return w
}

func (f *fakeInput) appendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return append(ids, f.touchIDs...)
}

func (f *fakeInput) touchPosition(id ebiten.TouchID) (int, int) {
	p := f.touches[id]
	return p[0], p[1]
}

func (f *fakeInput) appendRunes(rs []rune) []rune {
	rs = append(rs, f.runes...)
	f.runes = nil
	return rs
}

func (f *fakeInput) appendKeys(ks []Key) []Key {
	ks = append(ks, f.keys...)
	f.keys = nil
	return ks
}

func (f *fakeInput) setCursorVisible(v bool) { f.cursorVisible = v }

// recordingSink collects mirrored control events.
type recordingSink struct {
	events []ControlEvent
}

func (s *recordingSink) EmitEvent(e ControlEvent) { s.events = append(s.events, e) }

func (s *recordingSink) ofType(typ ControlEventType) []ControlEvent {
	var out []ControlEvent
	for _, e := range s.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
