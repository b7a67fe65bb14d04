package bough

// LabelOptions configures a Label.
type LabelOptions struct {
	VisualOptions
	TextFormat
}

// Label draws text in a bitmap font. Markup [B]...[/B] switches to the
// bold font unless NoMarkup is set.
type Label struct {
	ControlBase
	text   string
	format TextFormat
}

// NewLabel attaches a label. The text is laid out within size.
func NewLabel(rt *Runtime, pos Vec3, size Vec2, text string, opts LabelOptions) (*Label, error) {
	l := &Label{text: text, format: opts.TextFormat}
	if _, err := rt.Attach(l, pos, size, opts.VisualOptions); err != nil {
		return nil, err
	}
	return l, nil
}

// Text returns the label's source text, markup included.
func (l *Label) Text() string { return l.text }

// SetText replaces the text.
func (l *Label) SetText(text string) {
	if text == l.text {
		return
	}
	l.text = text
	l.visual.Invalidate()
}

// TextFormat returns the label's format.
func (l *Label) TextFormat() TextFormat { return l.format }

// SetTextFormat replaces the format.
func (l *Label) SetTextFormat(f TextFormat) {
	l.format = f
	l.visual.Invalidate()
}

// TextBounds returns the world rectangle of the laid out text.
func (l *Label) TextBounds() Rect { return l.visual.Bounds() }

// CharacterAt returns the rune offset under the world point p, or -1.
// Requires HitTest.
func (l *Label) CharacterAt(p Vec3) int { return l.visual.CharacterAt(p) }

// CharacterBounds returns the world box of the rune at offset i.
func (l *Label) CharacterBounds(i int) Rect { return l.visual.CharacterBounds(i) }
