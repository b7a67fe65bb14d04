package bough

// TextBoxState is the interaction state of a TextBox.
type TextBoxState uint8

const (
	TextBoxNormal TextBoxState = iota
	TextBoxOver
	TextBoxActive // focused
	TextBoxDisabled
)

func (s TextBoxState) String() string {
	switch s {
	case TextBoxNormal:
		return "Normal"
	case TextBoxOver:
		return "Over"
	case TextBoxActive:
		return "Active"
	case TextBoxDisabled:
		return "Disabled"
	default:
		return "Unknown"
	}
}

// TextBoxOptions configures a TextBox.
type TextBoxOptions struct {
	VisualOptions

	Font string

	NormalSprite   string
	OverSprite     string
	ActiveSprite   string
	DisabledSprite string

	CaretSprite string
	CaretSize   Vec2

	// Border insets the text area from the box's edges.
	Border Border

	// Cursor is shown while the pointer is over the box.
	Cursor *Cursor

	// CaretBlinkRate is the blink period in seconds. Zero means 1.
	CaretBlinkRate float64

	// MaxLength limits the number of runes. Zero means no limit.
	MaxLength int
}

// TextBox is a single-line text input. It takes keyboard focus when
// clicked and scrolls its text to keep the caret in view.
type TextBox struct {
	ControlBase
	opts  TextBoxOptions
	state TextBoxState
	clip  Rect // relative to the box's position
	caret int

	label      *Label
	caretImage *Image
	blink      *Transition

	textChanged observers[*TextBox]
	committed   observers[*TextBox]
}

// NewTextBox attaches an empty text box.
func NewTextBox(rt *Runtime, pos Vec3, size Vec2, opts TextBoxOptions) (*TextBox, error) {
	if opts.CaretBlinkRate <= 0 {
		opts.CaretBlinkRate = 1
	}
	b := opts.Border
	tb := &TextBox{
		opts: opts,
		clip: Rect{b.Left, b.Bottom, size.X - b.Left - b.Right, size.Y - b.Bottom - b.Top},
	}
	if _, err := rt.Attach(tb, pos, size, opts.VisualOptions); err != nil {
		return nil, err
	}
	clip := tb.Clip()
	label, err := NewLabel(rt, Vec3{clip.X, clip.Y, pos.Z - 0.1}, Vec2{clip.Width * 1000, clip.Height}, "", LabelOptions{
		VisualOptions: VisualOptions{Name: "text", Parent: tb},
		TextFormat: TextFormat{
			Font:     opts.Font,
			VAlign:   AlignMiddle,
			HitTest:  true,
			NoMarkup: true,
		},
	})
	if err != nil {
		tb.Dispose()
		return nil, err
	}
	tb.label = label
	lp, ls := label.Position(), label.Size()
	caret, err := NewImage(rt, Vec3{lp.X, lp.Y + (ls.Y-opts.CaretSize.Y)/2, lp.Z - 0.1}, opts.CaretSize, opts.CaretSprite,
		VisualOptions{Name: "caret", Parent: tb, PixelAlign: PixelAlignNone})
	if err != nil {
		tb.Dispose()
		return nil, err
	}
	caret.SetActive(false)
	tb.caretImage = caret
	return tb, nil
}

// Clip returns the world rectangle the text is clipped to.
func (tb *TextBox) Clip() Rect {
	p := tb.visual.position
	return tb.clip.Shift(p.X, p.Y)
}

// State returns the current state.
func (tb *TextBox) State() TextBoxState { return tb.state }

func (tb *TextBox) setState(s TextBoxState) {
	if s == tb.state {
		return
	}
	tb.state = s
	tb.visual.Invalidate()
	tb.caretImage.SetActive(s == TextBoxActive && tb.visual.IsActive())
}

// IsEnabled reports whether the box accepts input.
func (tb *TextBox) IsEnabled() bool { return tb.state != TextBoxDisabled }

// SetEnabled disables the box, dropping focus, or returns it to Normal.
func (tb *TextBox) SetEnabled(enabled bool) {
	if enabled == tb.IsEnabled() {
		return
	}
	if enabled {
		tb.setState(TextBoxNormal)
		return
	}
	if tb.visual.rt.focus == KeyboardInput(tb) {
		tb.visual.rt.SetFocus(nil)
	}
	tb.setState(TextBoxDisabled)
}

// Label returns the child label holding the text.
func (tb *TextBox) Label() *Label { return tb.label }

// Text returns the current text.
func (tb *TextBox) Text() string { return tb.label.Text() }

// SetText replaces the text and notifies OnTextChanged observers. The
// caret index is clamped to the new text.
func (tb *TextBox) SetText(text string) {
	if text == tb.label.Text() {
		return
	}
	tb.label.SetText(text)
	tb.textChanged.notify(tb)
	tb.visual.rt.emit(ControlEvent{Type: EventTextChanged, Control: tb, Text: text})
	tb.SetCaretIndex(tb.caret)
}

// OnTextChanged registers fn to run after every text change.
func (tb *TextBox) OnTextChanged(fn func(*TextBox)) CallbackHandle {
	return tb.textChanged.add(fn)
}

// OnCommit registers fn to run when enter is pressed.
func (tb *TextBox) OnCommit(fn func(*TextBox)) CallbackHandle {
	return tb.committed.add(fn)
}

// CaretIndex returns the rune offset the caret sits before.
func (tb *TextBox) CaretIndex() int { return tb.caret }

// SetCaretIndex moves the caret, scrolling the text so the caret stays
// inside the clip.
func (tb *TextBox) SetCaretIndex(i int) {
	tb.caret = max(0, min(len([]rune(tb.Text())), i))
	x := tb.label.visual.corner().X
	if tb.caret > 0 {
		x = tb.label.CharacterBounds(tb.caret - 1).XMax()
	}
	clip := tb.Clip()
	w := tb.opts.CaretSize.X
	switch {
	case x < clip.XMin():
		dx := clip.XMin() - x
		tb.shiftText(dx)
		x += dx
	case x+w > clip.XMax():
		dx := x + w - clip.XMax()
		tb.shiftText(-dx)
		x -= dx
	}
	p := tb.caretImage.Position()
	tb.caretImage.SetPosition(Vec3{x, p.Y, p.Z})
}

func (tb *TextBox) shiftText(dx float64) {
	p := tb.label.Position()
	tb.label.SetPosition(Vec3{p.X + dx, p.Y, p.Z})
}

// Sprite picks the sprite for the current state.
func (tb *TextBox) Sprite() string {
	o := &tb.opts
	switch tb.state {
	case TextBoxActive:
		return or(o.ActiveSprite, o.NormalSprite)
	case TextBoxOver:
		return or(o.OverSprite, o.NormalSprite)
	case TextBoxDisabled:
		return or(o.DisabledSprite, o.NormalSprite)
	default:
		return o.NormalSprite
	}
}

// Cursor returns TextBoxOptions.Cursor.
func (tb *TextBox) Cursor() *Cursor { return tb.opts.Cursor }

// HitBox is the text area.
func (tb *TextBox) HitBox() Rect { return tb.Clip() }

// ClipRect clips the text and caret to the text area.
func (tb *TextBox) ClipRect(Control) Rect { return tb.Clip() }

func (tb *TextBox) OnChildAdded(Control) {}

func (tb *TextBox) OnChildRemoved(Control) {}

func (tb *TextBox) OnMouseEnter(Control) {
	if tb.state == TextBoxNormal {
		tb.setState(TextBoxOver)
	}
}

func (tb *TextBox) OnMouseExit(Control) {
	if tb.state == TextBoxOver {
		tb.setState(TextBoxNormal)
	}
}

// OnMouseDown moves the caret to the nearer side of the clicked character
// and takes focus.
func (tb *TextBox) OnMouseDown(_ Control, p Vec3) {
	if tb.state == TextBoxDisabled {
		return
	}
	if i := tb.label.CharacterAt(p); i >= 0 {
		r := tb.label.CharacterBounds(i)
		if r.XMax()-p.X < p.X-r.XMin() {
			i++
		}
		tb.SetCaretIndex(i)
	}
	tb.visual.rt.SetFocus(tb)
	tb.restartBlink()
}

func (tb *TextBox) OnMouseUp(Control) {}

func (tb *TextBox) OnMouseDrag(Control, Vec2) {}

func (tb *TextBox) OnMouseWheel(Control, float64) {}

func (tb *TextBox) OnGotFocus() {
	tb.setState(TextBoxActive)
	if tb.blink != nil {
		tb.blink.Dispose()
	}
	caret := tb.caretImage
	tb.blink = tb.visual.rt.NewTransition(tb.opts.CaretBlinkRate, func(v float64) {
		caret.SetActive(v < 0.5 && tb.visual.IsActive())
	}).Uses(tb.visual).Repeat()
}

func (tb *TextBox) OnLostFocus() {
	tb.setState(TextBoxNormal)
	if tb.blink != nil {
		tb.blink.Dispose()
		tb.blink = nil
	}
}

// restartBlink shows the caret and restarts the blink cycle.
func (tb *TextBox) restartBlink() {
	if tb.blink != nil {
		tb.blink.Repeat()
	}
}

// OnKeyRune edits the text: '\b' deletes before the caret, '\n' and '\r'
// commit, and printable runes are inserted at the caret.
func (tb *TextBox) OnKeyRune(ch rune) {
	if tb.state == TextBoxDisabled {
		return
	}
	text := []rune(tb.Text())
	i := tb.caret
	switch {
	case ch == '\b':
		if i == 0 {
			break
		}
		r := tb.label.CharacterBounds(i - 1)
		tb.SetText(string(text[:i-1]) + string(text[i:]))
		// Scroll in from the left to fill the gap rather than move the caret.
		clip := tb.Clip()
		if x := tb.label.Position().X; x < clip.XMin() {
			tb.shiftText(min(r.Width, clip.XMin()-x))
		}
		tb.SetCaretIndex(i - 1)
	case ch == '\n' || ch == '\r':
		tb.committed.notify(tb)
		tb.visual.rt.emit(ControlEvent{Type: EventCommit, Control: tb, Text: string(text)})
	case ch >= 32 && (tb.opts.MaxLength <= 0 || len(text) < tb.opts.MaxLength):
		tb.SetText(string(text[:i]) + string(ch) + string(text[i:]))
		tb.SetCaretIndex(i + 1)
	}
	tb.restartBlink()
}

// OnKey moves the caret or deletes after it. Arrowing past the clip edge
// scrolls the text by a quarter of the clip width.
func (tb *TextBox) OnKey(k Key) {
	if tb.state == TextBoxDisabled {
		return
	}
	clip := tb.Clip()
	cx := tb.caretImage.Position().X
	n := len([]rune(tb.Text()))
	switch k {
	case KeyLeft:
		if i := tb.caret - 1; i >= 0 && cx-tb.label.CharacterBounds(i).Width < clip.XMin() {
			tb.shiftText(min(clip.XMin()-tb.label.Position().X, clip.Width*0.25))
		}
		tb.SetCaretIndex(tb.caret - 1)
	case KeyRight:
		if tb.caret < n && cx+tb.label.CharacterBounds(tb.caret).Width > clip.XMax() {
			right := tb.label.Position().X + tb.label.TextBounds().Width
			tb.shiftText(-min(right-clip.XMax(), clip.Width*0.25))
		}
		tb.SetCaretIndex(tb.caret + 1)
	case KeyHome:
		tb.SetCaretIndex(0)
	case KeyEnd:
		tb.SetCaretIndex(n)
	case KeyDelete:
		if tb.caret < n {
			text := []rune(tb.Text())
			tb.SetText(string(text[:tb.caret]) + string(text[tb.caret+1:]))
		}
	}
	tb.restartBlink()
}

func (tb *TextBox) OnDispose() {
	if tb.blink != nil {
		tb.blink.Dispose()
		tb.blink = nil
	}
}
