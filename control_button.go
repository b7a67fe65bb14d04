package bough

// ButtonState is the interaction state of a Button.
type ButtonState uint8

const (
	ButtonNormal ButtonState = iota
	ButtonOver
	ButtonPressed
	ButtonActive
	ButtonActivePressed
	ButtonDisabled
	ButtonClickOut       // pressed, then the pointer left
	ButtonActiveClickOut // pressed while active, then the pointer left
)

func (s ButtonState) String() string {
	switch s {
	case ButtonNormal:
		return "Normal"
	case ButtonOver:
		return "Over"
	case ButtonPressed:
		return "Pressed"
	case ButtonActive:
		return "Active"
	case ButtonActivePressed:
		return "ActivePressed"
	case ButtonDisabled:
		return "Disabled"
	case ButtonClickOut:
		return "ClickOut"
	case ButtonActiveClickOut:
		return "ActiveClickOut"
	default:
		return "Unknown"
	}
}

// ButtonOptions configures a Button. Empty sprites fall back toward
// NormalSprite.
type ButtonOptions struct {
	VisualOptions

	NormalSprite        string
	OverSprite          string
	PressedSprite       string
	ActiveSprite        string
	ActivePressedSprite string
	DisabledSprite      string

	// Toggle makes a click leave the button active until clicked again.
	Toggle bool
	// Group makes the button one of a set with exactly one active.
	Group *RadioGroup
}

// ButtonStateChange is delivered to OnStateChanged observers.
type ButtonStateChange struct {
	Button *Button
	State  ButtonState
	Old    ButtonState
}

// Button is a clickable sprite with a state per interaction.
type Button struct {
	ControlBase
	opts  ButtonOptions
	state ButtonState
	label *Label

	stateChanged observers[ButtonStateChange]
	clicked      observers[*Button]
}

// NewButton attaches a button.
func NewButton(rt *Runtime, pos Vec3, size Vec2, opts ButtonOptions) (*Button, error) {
	b := &Button{}
	if err := b.init(rt, b, pos, size, opts); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Button) init(rt *Runtime, self Control, pos Vec3, size Vec2, opts ButtonOptions) error {
	b.opts = opts
	if _, err := rt.Attach(self, pos, size, opts.VisualOptions); err != nil {
		return err
	}
	if opts.Group != nil {
		opts.Group.Add(b)
	}
	return nil
}

// State returns the current state.
func (b *Button) State() ButtonState { return b.state }

func (b *Button) setState(s ButtonState) {
	if s == b.state {
		return
	}
	old := b.state
	b.state = s
	b.stateChanged.notify(ButtonStateChange{Button: b, State: s, Old: old})
	b.visual.rt.emit(ControlEvent{Type: EventStateChanged, Control: b, State: s, PrevState: old})
	b.visual.Invalidate()
}

// IsEnabled reports whether the button is not disabled.
func (b *Button) IsEnabled() bool { return b.state != ButtonDisabled }

// SetEnabled disables the button or returns it to Normal.
func (b *Button) SetEnabled(enabled bool) {
	if enabled == b.IsEnabled() {
		return
	}
	if enabled {
		b.setState(ButtonNormal)
	} else {
		b.setState(ButtonDisabled)
	}
}

// Selected reports whether the button is in one of the active states.
func (b *Button) Selected() bool {
	switch b.state {
	case ButtonActive, ButtonActivePressed, ButtonActiveClickOut:
		return true
	}
	return false
}

// SetSelected makes the button active or returns it to Normal.
func (b *Button) SetSelected(selected bool) {
	if selected {
		b.setState(ButtonActive)
	} else {
		b.setState(ButtonNormal)
	}
}

// Group returns the button's radio group, or nil.
func (b *Button) Group() *RadioGroup { return b.opts.Group }

// Label returns the label set by SetLabel, or nil.
func (b *Button) Label() *Label { return b.label }

// OnStateChanged registers fn to run on every state change.
func (b *Button) OnStateChanged(fn func(ButtonStateChange)) CallbackHandle {
	return b.stateChanged.add(fn)
}

// OnClick registers fn to run when the button is clicked.
func (b *Button) OnClick(fn func(*Button)) CallbackHandle {
	return b.clicked.add(fn)
}

// SetLabel replaces the button's label with centered text in font.
func (b *Button) SetLabel(text, font string, color Color, hAlign HorizontalAlignment) error {
	if b.label != nil {
		b.label.Dispose()
		b.label = nil
	}
	p := b.visual.position
	l, err := NewLabel(b.visual.rt, Vec3{p.X, p.Y, ZIndexFrom(0.1, b)}, b.visual.size, text, LabelOptions{
		VisualOptions: VisualOptions{
			Name:   "label",
			Parent: b,
			Color:  color,
			Anchor: AnchorCenter,
		},
		TextFormat: TextFormat{
			Font:   font,
			HAlign: hAlign,
			VAlign: AlignMiddle,
		},
	})
	if err != nil {
		return err
	}
	b.label = l
	return nil
}

// Sprite picks the sprite for the current state.
func (b *Button) Sprite() string {
	o := &b.opts
	switch b.state {
	case ButtonDisabled:
		return or(o.DisabledSprite, o.NormalSprite)
	case ButtonPressed:
		return or(o.PressedSprite, o.OverSprite, o.NormalSprite)
	case ButtonActive, ButtonActiveClickOut:
		return or(o.ActiveSprite, o.NormalSprite)
	case ButtonActivePressed:
		return or(o.ActivePressedSprite, o.PressedSprite, o.ActiveSprite, o.NormalSprite)
	case ButtonOver:
		return or(o.OverSprite, o.NormalSprite)
	default:
		return o.NormalSprite
	}
}

// or returns the first non-empty string.
func or(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}

func (b *Button) isSelf(src Control) bool {
	return src != nil && src.Visual() == b.visual
}

func (b *Button) OnMouseEnter(src Control) {
	if !b.isSelf(src) {
		return
	}
	switch b.state {
	case ButtonNormal:
		b.setState(ButtonOver)
	case ButtonClickOut:
		b.setState(ButtonPressed)
	case ButtonActiveClickOut:
		b.setState(ButtonActivePressed)
	}
}

func (b *Button) OnMouseExit(src Control) {
	if !b.isSelf(src) {
		return
	}
	switch b.state {
	case ButtonOver:
		b.setState(ButtonNormal)
	case ButtonPressed:
		b.setState(ButtonClickOut)
	case ButtonActivePressed:
		b.setState(ButtonActiveClickOut)
	}
}

func (b *Button) OnMouseDown(src Control, _ Vec3) {
	if !b.isSelf(src) {
		return
	}
	switch b.state {
	case ButtonDisabled:
	case ButtonActive:
		b.setState(ButtonActivePressed)
	default:
		b.setState(ButtonPressed)
	}
}

func (b *Button) OnMouseUp(src Control) {
	if !b.isSelf(src) {
		return
	}
	switch b.state {
	case ButtonClickOut:
		b.setState(ButtonNormal)
	case ButtonActiveClickOut:
		b.setState(ButtonActive)
	case ButtonPressed:
		if b.opts.Toggle || b.opts.Group != nil {
			b.setState(ButtonActive)
		} else {
			b.setState(ButtonOver)
		}
		b.click()
	case ButtonActivePressed:
		b.setState(ButtonOver)
		b.click()
	}
}

func (b *Button) OnMouseDrag(Control, Vec2) {}

func (b *Button) OnMouseWheel(Control, float64) {}

// Click runs the click observers as if the button was clicked.
func (b *Button) Click() { b.click() }

func (b *Button) click() {
	b.clicked.notify(b)
	b.visual.rt.emit(ControlEvent{Type: EventClick, Control: b})
}

// OnDispose leaves the radio group.
func (b *Button) OnDispose() {
	if b.opts.Group != nil {
		b.opts.Group.Remove(b)
	}
}
