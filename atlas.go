package bough

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Border holds 9-slice insets in texels.
type Border struct {
	Left, Bottom, Right, Top float64
}

// IsZero reports whether every inset is zero.
func (b Border) IsZero() bool {
	return b.Left == 0 && b.Bottom == 0 && b.Right == 0 && b.Top == 0
}

// Sprite is a named UV rectangle within an atlas, with optional 9-slice
// border, hollow center and per-axis tiling.
type Sprite struct {
	Name   string
	UV     Rect
	Border Border
	Hollow bool // omit the center quad; only meaningful with a border
	TileH  bool
	TileV  bool

	atlas *Atlas
}

// Atlas returns the atlas that owns the sprite.
func (s *Sprite) Atlas() *Atlas { return s.atlas }

// TexelSize returns the UV size of one texture pixel.
func (s *Sprite) TexelSize() Vec2 { return s.atlas.texel }

// Size returns the sprite's native size in pixels.
func (s *Sprite) Size() Vec2 {
	t := s.atlas.texel
	return Vec2{s.UV.Width / t.X, s.UV.Height / t.Y}
}

// Atlas holds one texture and a map of named sprites within it.
type Atlas struct {
	Name string

	texture   image.Image
	texel     Vec2
	sprites   map[string]*Sprite
	materials map[string]*Material
	material  *Material
}

// NewAtlas creates an empty atlas over texture. Sprites are added with
// AddSprite or parsed with ParseAtlas.
func NewAtlas(name string, texture image.Image) (*Atlas, error) {
	if texture == nil {
		return nil, &NotFoundError{Kind: "atlas texture", Name: name}
	}
	b := texture.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, &InvalidFormatError{Source: name, Reason: "atlas texture has no pixels"}
	}
	return &Atlas{
		Name:     name,
		texture:  texture,
		texel:    Vec2{1 / float64(b.Dx()), 1 / float64(b.Dy())},
		sprites:  make(map[string]*Sprite),
		material: newMaterial(texture, "", nil),
	}, nil
}

// AddSprite registers s under s.Name, replacing any sprite of that name.
func (a *Atlas) AddSprite(s Sprite) *Sprite {
	sp := s
	sp.atlas = a
	a.sprites[s.Name] = &sp
	return &sp
}

// TexelSize returns the UV size of one texture pixel.
func (a *Atlas) TexelSize() Vec2 { return a.texel }

// Texture returns the atlas texture.
func (a *Atlas) Texture() image.Image { return a.texture }

// Sprite returns the sprite with the given name.
func (a *Atlas) Sprite(name string) (*Sprite, error) {
	if s, ok := a.sprites[name]; ok {
		return s, nil
	}
	if globalDebug {
		Logger().Debug("atlas sprite not found", "atlas", a.Name, "sprite", name)
	}
	return nil, &NotFoundError{Kind: "sprite", Name: a.Name + "/" + name}
}

// SpriteNames returns the sprite names in sorted order.
func (a *Atlas) SpriteNames() []string {
	names := make([]string, 0, len(a.sprites))
	for n := range a.sprites {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Material returns a material bound to the atlas texture. An empty shader
// name returns the default material; named shaders are resolved through
// shaders once and cached.
func (a *Atlas) Material(shader string, shaders ShaderProvider) (*Material, error) {
	if shader == "" {
		return a.material, nil
	}
	if m, ok := a.materials[shader]; ok {
		return m, nil
	}
	if shaders == nil {
		return nil, &NotFoundError{Kind: "shader", Name: shader}
	}
	s, err := shaders.Shader(shader)
	if err != nil {
		return nil, err
	}
	if a.materials == nil {
		a.materials = make(map[string]*Material)
	}
	m := newMaterial(a.texture, shader, s)
	a.materials[shader] = m
	return m, nil
}

// atlasHeader is the literal first line of an atlas description.
const atlasHeader = "atlas"

// ParseAtlas reads an atlas description: the header line "atlas" followed by
// tab-separated records
//
//	name uMin vMin uMax vMax [borderL borderB borderR borderT isHollow tileH tileV]
//
// Malformed records are skipped.
func ParseAtlas(name string, r io.Reader, texture image.Image) (*Atlas, error) {
	atlas, err := NewAtlas(name, texture)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	header := false
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !header {
			if line != atlasHeader {
				return nil, &InvalidFormatError{Source: name, Line: lineNo, Reason: fmt.Sprintf("expected %q header", atlasHeader)}
			}
			header = true
			continue
		}
		s, ok := parseSpriteRecord(strings.Split(line, "\t"))
		if !ok {
			Logger().Debug("skipping malformed atlas record", "atlas", name, "line", lineNo)
			continue
		}
		atlas.AddSprite(s)
	}
	if err := scanner.Err(); err != nil {
		return nil, &InvalidFormatError{Source: name, Line: lineNo, Reason: "read failed", Err: err}
	}
	if !header {
		return nil, &InvalidFormatError{Source: name, Reason: fmt.Sprintf("expected %q header", atlasHeader)}
	}
	return atlas, nil
}

func parseSpriteRecord(parts []string) (Sprite, bool) {
	if len(parts) < 5 {
		return Sprite{}, false
	}
	var uv [4]float64
	for i := range uv {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i+1]), 64)
		if err != nil {
			return Sprite{}, false
		}
		uv[i] = v
	}
	s := Sprite{Name: parts[0], UV: RectMinMax(uv[0], uv[1], uv[2], uv[3])}
	if len(parts) < 12 {
		return s, true
	}

	var border [4]float64
	for i := range border {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i+5]), 64)
		if err != nil || v < 0 {
			return Sprite{}, false
		}
		border[i] = v
	}
	var flags [3]bool
	for i := range flags {
		v, err := strconv.ParseBool(strings.TrimSpace(parts[i+9]))
		if err != nil {
			return Sprite{}, false
		}
		flags[i] = v
	}
	s.Border = Border{Left: border[0], Bottom: border[1], Right: border[2], Top: border[3]}
	s.Hollow, s.TileH, s.TileV = flags[0], flags[1], flags[2]
	return s, true
}
