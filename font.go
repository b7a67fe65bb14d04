package bough

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// BitmapChar holds the metrics of one glyph. Offset is baseline-relative
// from the bottom of the line.
type BitmapChar struct {
	ID      rune
	UV      Rect
	Size    Vec2
	Offset  Vec2
	Advance float64
	Page    int

	src     image.Rectangle // pixel rect in the page image, y-down
	kerning map[rune]float64
}

// Kerning returns the spacing adjustment applied when c follows prev.
// Unknown pairs return 0.
func (c *BitmapChar) Kerning(prev rune) float64 {
	return c.kerning[prev]
}

// BitmapFont is a parsed BMFont text description plus its page textures.
// It is immutable after parsing.
type BitmapFont struct {
	Name       string
	LineHeight float64
	Base       float64
	Outline    float64

	texel  Vec2
	pages  []*Material
	shaded map[string][]*Material
	chars  map[rune]*BitmapChar
	face   *bitmapFace
}

// TexelSize returns the UV size of one page pixel.
func (f *BitmapFont) TexelSize() Vec2 { return f.texel }

// PageCount returns the number of declared pages.
func (f *BitmapFont) PageCount() int { return len(f.pages) }

// Character returns the glyph for r, falling back to '?'.
func (f *BitmapFont) Character(r rune) (*BitmapChar, error) {
	if c, ok := f.chars[r]; ok {
		return c, nil
	}
	if c, ok := f.chars['?']; ok {
		return c, nil
	}
	return nil, &InvalidGlyphError{Font: f.Name, Char: r}
}

// Material returns the default material of a page.
func (f *BitmapFont) Material(page int) (*Material, error) {
	if page < 0 || page >= len(f.pages) {
		return nil, &NotFoundError{Kind: "font page", Name: fmt.Sprintf("%s#%d", f.Name, page)}
	}
	return f.pages[page], nil
}

// PageMaterial returns a page material bound to a named shader, resolved
// through shaders once and cached. An empty name is the default material.
func (f *BitmapFont) PageMaterial(page int, shader string, shaders ShaderProvider) (*Material, error) {
	m, err := f.Material(page)
	if err != nil || shader == "" {
		return m, err
	}
	if ms, ok := f.shaded[shader]; ok {
		return ms[page], nil
	}
	if shaders == nil {
		return nil, &NotFoundError{Kind: "shader", Name: shader}
	}
	s, err := shaders.Shader(shader)
	if err != nil {
		return nil, err
	}
	ms := make([]*Material, len(f.pages))
	for i, p := range f.pages {
		ms[i] = newMaterial(p.Source(), shader, s)
	}
	if f.shaded == nil {
		f.shaded = make(map[string][]*Material)
	}
	f.shaded[shader] = ms
	return ms[page], nil
}

// BMFont text grammar: one record per line, a tag followed by key=value
// attributes.
var (
	bmfLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "EOL", Pattern: `\n+`},
		{Name: "String", Pattern: `"[^"\n]*"`},
		{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.\-]*`},
		{Name: "Symbol", Pattern: `[=,]`},
	})

	bmfParser = participle.MustBuild[bmfDocument](
		participle.Lexer(bmfLexer),
		participle.Elide("Whitespace"),
	)
)

type bmfDocument struct {
	Records []*bmfRecord `parser:"EOL* ( @@ EOL+ )*"`
}

type bmfRecord struct {
	Pos   lexer.Position `parser:""`
	Tag   string         `parser:"@Ident"`
	Attrs []*bmfAttr     `parser:"@@*"`
}

type bmfAttr struct {
	Key   string    `parser:"@Ident '='"`
	Value *bmfValue `parser:"@@"`
}

type bmfValue struct {
	Str   *bmfQuote `parser:"  @String"`
	Nums  []string  `parser:"| @Number ( ',' @Number )*"`
	Ident *string   `parser:"| @Ident"`
}

// bmfQuote strips the quotes of a BMFont string. BMFont does not escape
// backslashes, so strconv.Unquote is not used.
type bmfQuote string

func (q *bmfQuote) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string capture requires value")
	}
	*q = bmfQuote(strings.Trim(values[0], `"`))
	return nil
}

// record gives keyed access to one line's attributes.
type record struct {
	src  string
	line int
	kv   map[string]*bmfAttr
}

func newRecord(src string, r *bmfRecord) record {
	kv := make(map[string]*bmfAttr, len(r.Attrs))
	for _, a := range r.Attrs {
		kv[a.Key] = a
	}
	return record{src: src, line: r.Pos.Line, kv: kv}
}

func (r record) fail(format string, args ...any) error {
	return &InvalidFormatError{Source: r.src, Line: r.line, Reason: fmt.Sprintf(format, args...)}
}

func (r record) has(key string) bool {
	_, ok := r.kv[key]
	return ok
}

func (r record) num(key string) (float64, error) {
	a, ok := r.kv[key]
	if !ok || len(a.Value.Nums) == 0 {
		return 0, r.fail("missing numeric attribute %q", key)
	}
	v, err := strconv.ParseFloat(a.Value.Nums[0], 64)
	if err != nil {
		return 0, r.fail("attribute %q: %v", key, err)
	}
	return v, nil
}

func (r record) numOr(key string, def float64) (float64, error) {
	if !r.has(key) {
		return def, nil
	}
	return r.num(key)
}

func (r record) str(key string) (string, error) {
	a, ok := r.kv[key]
	if !ok {
		return "", r.fail("missing attribute %q", key)
	}
	switch v := a.Value; {
	case v.Str != nil:
		return string(*v.Str), nil
	case v.Ident != nil:
		return *v.Ident, nil
	case len(v.Nums) > 0:
		return strings.Join(v.Nums, ","), nil
	}
	return "", r.fail("attribute %q has no value", key)
}

// ParseBitmapFont reads a BMFont text description. Page textures are looked
// up in pages by the page file name without directory or extension.
func ParseBitmapFont(name string, r io.Reader, pages map[string]image.Image) (*BitmapFont, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, &InvalidFormatError{Source: name, Reason: "read failed", Err: err}
	}
	doc, err := bmfParser.ParseString(name, string(src)+"\n")
	if err != nil {
		fe := &InvalidFormatError{Source: name, Reason: "syntax error", Err: err}
		var perr participle.Error
		if errors.As(err, &perr) {
			fe.Line = perr.Position().Line
			fe.Reason = perr.Message()
			fe.Err = nil
		}
		return nil, fe
	}

	f := &BitmapFont{Name: name, chars: make(map[rune]*BitmapChar)}
	common := false
	for _, rec := range doc.Records {
		r := newRecord(name, rec)
		switch rec.Tag {
		case "info":
			if f.Outline, err = r.numOr("outline", 0); err != nil {
				return nil, err
			}
		case "common":
			if err := f.parseCommon(r); err != nil {
				return nil, err
			}
			common = true
		case "page":
			if !common {
				return nil, r.fail("page before common")
			}
			if err := f.parsePage(r, pages); err != nil {
				return nil, err
			}
		case "char":
			if !common {
				return nil, r.fail("char before common")
			}
			if err := f.parseChar(r); err != nil {
				return nil, err
			}
		case "kerning":
			if err := f.parseKerning(r); err != nil {
				return nil, err
			}
		}
	}
	if !common {
		return nil, &InvalidFormatError{Source: name, Reason: "missing common record"}
	}
	for i, p := range f.pages {
		if p == nil {
			return nil, &InvalidFormatError{Source: name, Reason: fmt.Sprintf("page %d not declared", i)}
		}
	}
	return f, nil
}

func (f *BitmapFont) parseCommon(r record) error {
	var v [5]float64
	for i, key := range []string{"lineHeight", "base", "scaleW", "scaleH", "pages"} {
		n, err := r.num(key)
		if err != nil {
			return err
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return r.fail("scaleW and scaleH must be positive")
	}
	if v[4] < 0 {
		return r.fail("negative page count")
	}
	f.LineHeight, f.Base = v[0], v[1]
	f.texel = Vec2{1 / v[2], 1 / v[3]}
	f.pages = make([]*Material, int(v[4]))
	return nil
}

func (f *BitmapFont) parsePage(r record, pages map[string]image.Image) error {
	id, err := r.num("id")
	if err != nil {
		return err
	}
	if id < 0 || int(id) >= len(f.pages) {
		return r.fail("page id %v out of range", id)
	}
	file, err := r.str("file")
	if err != nil {
		return err
	}
	base := path.Base(strings.ReplaceAll(file, `\`, "/"))
	stem := strings.TrimSuffix(base, path.Ext(base))
	img, ok := pages[stem]
	if !ok || img == nil {
		return &NotFoundError{Kind: "font page", Name: stem}
	}
	if f.pages[int(id)] != nil {
		return r.fail("page id %v declared twice", id)
	}
	f.pages[int(id)] = newMaterial(img, "", nil)
	return nil
}

func (f *BitmapFont) parseChar(r record) error {
	var v [8]float64
	keys := []string{"id", "x", "y", "width", "height", "xadvance", "page", "xoffset"}
	for i, key := range keys {
		n, err := r.num(key)
		if err != nil {
			return err
		}
		v[i] = n
	}
	yoff, err := r.num("yoffset")
	if err != nil {
		return err
	}
	for i := 1; i < 7; i++ {
		if v[i] < 0 {
			return r.fail("negative %s", keys[i])
		}
	}
	page := int(v[6])
	if page >= len(f.pages) {
		return r.fail("char page %d out of range", page)
	}
	x, y, w, h := v[1], v[2], v[3], v[4]
	tw, th := f.texel.X, f.texel.Y
	f.chars[rune(v[0])] = &BitmapChar{
		ID:      rune(v[0]),
		UV:      Rect{x * tw, 1 - (y+h)*th, w * tw, h * th},
		Size:    Vec2{w, h},
		Offset:  Vec2{v[7], (f.LineHeight - h) - yoff},
		Advance: v[5],
		Page:    page,
		src:     image.Rect(int(x), int(y), int(x+w), int(y+h)),
	}
	return nil
}

func (f *BitmapFont) parseKerning(r record) error {
	first, err := r.num("first")
	if err != nil {
		return err
	}
	second, err := r.num("second")
	if err != nil {
		return err
	}
	amount, err := r.num("amount")
	if err != nil {
		return err
	}
	if _, ok := f.chars[rune(first)]; !ok {
		return r.fail("kerning references undeclared char %d", int(first))
	}
	c, ok := f.chars[rune(second)]
	if !ok {
		return r.fail("kerning references undeclared char %d", int(second))
	}
	if c.kerning == nil {
		c.kerning = make(map[rune]float64)
	}
	c.kerning[rune(first)] = amount
	return nil
}
