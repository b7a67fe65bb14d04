package bough

// TextViewOptions configures a TextView.
type TextViewOptions struct {
	ScrollViewOptions

	Font   string
	Indent float64 // indent of wrapped continuation lines

	// PaddingTop leaves space above the first line.
	PaddingTop float64
	// StartFromBottom makes the first line appear at the bottom of the
	// view, as in a chat log.
	StartFromBottom bool
}

// TextView is a scrolling log of wrapped lines. Appending scrolls to the
// bottom.
type TextView struct {
	ScrollView
	opts  TextViewOptions
	lines []*Label
	used  float64 // height taken from the top of the content
}

// NewTextView attaches an empty text view.
func NewTextView(rt *Runtime, pos Vec3, size Vec2, opts TextViewOptions) (*TextView, error) {
	tv := &TextView{opts: opts}
	if err := tv.ScrollView.init(rt, tv, pos, size, opts.ScrollViewOptions); err != nil {
		return nil, err
	}
	tv.reset()
	return tv, nil
}

func (tv *TextView) reset() {
	tv.used = tv.opts.PaddingTop
	if tv.opts.StartFromBottom {
		tv.used = tv.clip.Height
	}
}

// Lines returns the appended labels, oldest first.
func (tv *TextView) Lines() []*Label { return tv.lines }

// AppendLine adds text below the previous line, wrapped to the clip width,
// and scrolls to the bottom.
func (tv *TextView) AppendLine(text string, color Color) (*Label, error) {
	rt := tv.visual.rt
	font, err := rt.Font(tv.opts.Font)
	if err != nil {
		return nil, err
	}
	clip, ext := tv.Clip(), tv.Extents()
	format := TextFormat{
		Font:     tv.opts.Font,
		VAlign:   AlignBottom,
		Overflow: OverflowWrap,
		Indent:   tv.opts.Indent,
	}
	layout, err := LayoutText(text, TextStyle{
		Font:     font,
		VAlign:   format.VAlign,
		Overflow: format.Overflow,
		Indent:   format.Indent,
	}, Vec2{clip.Width, 0})
	if err != nil {
		return nil, err
	}
	h := layout.Height
	top := ext.YMax()
	label, err := NewLabel(rt, Vec3{ext.X, top - tv.used - h, ZIndexFrom(0.1, tv)}, Vec2{clip.Width, h}, text, LabelOptions{
		VisualOptions: VisualOptions{Name: "line", Parent: tv, Color: color},
		TextFormat:    format,
	})
	if err != nil {
		return nil, err
	}
	tv.used += h
	tv.lines = append(tv.lines, label)
	tv.SetVScroll(1)
	return label, nil
}

// Clear disposes every line.
func (tv *TextView) Clear() {
	for len(tv.lines) > 0 {
		l := tv.lines[len(tv.lines)-1]
		tv.lines = tv.lines[:len(tv.lines)-1]
		l.Dispose()
	}
	tv.reset()
	tv.SetVScroll(0)
}
