package bough

import (
	"bytes"
	"errors"
	"image/png"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
)

func TestParseAtlas_Sprites(t *testing.T) {
	a := testAtlas(t)

	want := []string{"button", "caret", "frame", "panel", "tile"}
	if got := a.SpriteNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("SpriteNames = %v, want %v", got, want)
	}

	tests := []struct {
		name   string
		size   Vec2
		border Border
		hollow bool
		tileH  bool
		tileV  bool
	}{
		{"button", Vec2{16, 16}, Border{}, false, false, false},
		{"panel", Vec2{32, 32}, Border{4, 4, 4, 4}, false, false, false},
		{"frame", Vec2{32, 32}, Border{4, 4, 4, 4}, true, false, false},
		{"tile", Vec2{16, 16}, Border{}, false, true, true},
		{"caret", Vec2{2, 16}, Border{}, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := a.Sprite(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if got := s.Size(); !approxEqual(got.X, tt.size.X, 1e-9) || !approxEqual(got.Y, tt.size.Y, 1e-9) {
				t.Errorf("Size = %v, want %v", got, tt.size)
			}
			if s.Border != tt.border {
				t.Errorf("Border = %v, want %v", s.Border, tt.border)
			}
			if s.Hollow != tt.hollow || s.TileH != tt.tileH || s.TileV != tt.tileV {
				t.Errorf("flags = (%v, %v, %v), want (%v, %v, %v)",
					s.Hollow, s.TileH, s.TileV, tt.hollow, tt.tileH, tt.tileV)
			}
			if s.Atlas() != a {
				t.Error("sprite does not point back to its atlas")
			}
		})
	}
}

func TestParseAtlas_UV(t *testing.T) {
	s := testSprite(t, "panel")
	want := Rect{0.25, 0, 0.5, 0.5}
	if !rectApprox(s.UV, want) {
		t.Errorf("UV = %v, want %v", s.UV, want)
	}
	if ts := s.TexelSize(); ts != (Vec2{1.0 / 64, 1.0 / 64}) {
		t.Errorf("TexelSize = %v, want 1/64", ts)
	}
}

func TestParseAtlas_MissingHeader(t *testing.T) {
	_, err := ParseAtlas("bad", strings.NewReader("button\t0\t0\t1\t1\n"), testTexture(8, 8))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("err = %v, want ErrInvalidFormat", err)
	}
	var fe *InvalidFormatError
	if !errors.As(err, &fe) || fe.Line != 1 {
		t.Errorf("err = %#v, want line 1", err)
	}
}

func TestParseAtlas_Empty(t *testing.T) {
	_, err := ParseAtlas("empty", strings.NewReader("\n\n"), testTexture(8, 8))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("err = %v, want ErrInvalidFormat", err)
	}
}

func TestParseAtlas_SkipsMalformedRecords(t *testing.T) {
	desc := "atlas\n" +
		"short\t0\t0\n" +
		"nan\tx\t0\t1\t1\n" +
		"negative\t0\t0\t1\t1\t-1\t0\t0\t0\tfalse\tfalse\tfalse\n" +
		"badflag\t0\t0\t1\t1\t1\t1\t1\t1\tmaybe\tfalse\tfalse\n" +
		"\n" +
		"good\t0\t0\t1\t1\n" +
		"partial\t0\t0\t0.5\t0.5\t2\t2\n"
	a, err := ParseAtlas("mixed", strings.NewReader(desc), testTexture(8, 8))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"good", "partial"}
	if got := a.SpriteNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("SpriteNames = %v, want %v", got, want)
	}
	// A record without all seven slice fields is a plain sprite.
	p, _ := a.Sprite("partial")
	if !p.Border.IsZero() {
		t.Errorf("partial Border = %v, want zero", p.Border)
	}
}

func TestNewAtlas_Errors(t *testing.T) {
	if _, err := NewAtlas("nil", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("nil texture: err = %v, want ErrNotFound", err)
	}
	if _, err := NewAtlas("zero", testTexture(0, 0)); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("zero texture: err = %v, want ErrInvalidFormat", err)
	}
}

func TestAtlas_SpriteNotFound(t *testing.T) {
	_, err := testAtlas(t).Sprite("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "ui/missing") {
		t.Errorf("err = %q, want it to name ui/missing", err)
	}
}

func TestAtlas_AddSpriteReplaces(t *testing.T) {
	a := testAtlas(t)
	a.AddSprite(Sprite{Name: "button", UV: Rect{0, 0, 0.5, 0.5}})
	s, _ := a.Sprite("button")
	if got := s.Size(); got != (Vec2{32, 32}) {
		t.Errorf("Size = %v, want (32, 32)", got)
	}
}

func TestAtlas_Material(t *testing.T) {
	a := testAtlas(t)
	m1, err := a.Material("", nil)
	if err != nil {
		t.Fatal(err)
	}
	m2, _ := a.Material("", nil)
	if m1 != m2 {
		t.Error("default material is not shared")
	}
	if w, h := m1.TextureSize(); w != 64 || h != 64 {
		t.Errorf("TextureSize = %dx%d, want 64x64", w, h)
	}
	if _, err := a.Material("glow", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("no provider: err = %v, want ErrNotFound", err)
	}

	rt := newTestRuntime(t)
	if _, err := a.Material("glow", rt); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown shader: err = %v, want ErrNotFound", err)
	}
}

// --- Runtime registry ---

func TestRuntime_Sprite(t *testing.T) {
	rt := newTestRuntime(t)

	s, err := rt.Sprite("ui/panel")
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "panel" {
		t.Errorf("Name = %q, want panel", s.Name)
	}

	for _, p := range []string{"panel", "/panel", "ui/", "nope/panel", "ui/nope"} {
		if _, err := rt.Sprite(p); !errors.Is(err, ErrNotFound) {
			t.Errorf("Sprite(%q) err = %v, want ErrNotFound", p, err)
		}
	}
}

func TestRuntime_SpriteNameWithSlash(t *testing.T) {
	rt := newTestRuntime(t)
	a, _ := rt.Atlas("ui")
	a.AddSprite(Sprite{Name: "icons/close", UV: Rect{0, 0, 0.25, 0.25}})
	if _, err := rt.Sprite("ui/icons/close"); err != nil {
		t.Errorf("Sprite(ui/icons/close) err = %v", err)
	}
}

func TestRuntime_LoadAtlasFS(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testTexture(32, 32)); err != nil {
		t.Fatal(err)
	}
	fsys := fstest.MapFS{
		"gfx/hud.atlas": {Data: []byte("atlas\nheart\t0\t0\t0.5\t0.5\n")},
		"gfx/hud.png":   {Data: buf.Bytes()},
	}

	rt := newTestRuntime(t)
	a, err := rt.LoadAtlasFS(fsys, "gfx/hud.atlas", "gfx/hud.png")
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != "hud" {
		t.Errorf("Name = %q, want hud", a.Name)
	}
	s, err := rt.Sprite("hud/heart")
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Size(); got != (Vec2{16, 16}) {
		t.Errorf("Size = %v, want (16, 16)", got)
	}

	if _, err := rt.LoadAtlasFS(fsys, "gfx/hud.atlas", "gfx/missing.png"); err == nil {
		t.Error("missing texture: err = nil")
	}
}
