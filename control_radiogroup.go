package bough

// RadioChange is delivered to RadioGroup.OnChanged observers. Previous is
// nil when no other button was active.
type RadioChange struct {
	Active   *Button
	Previous *Button
}

// RadioGroup keeps at most one of its buttons active. Once a button is
// active, clicking it again keeps it active.
type RadioGroup struct {
	buttons   []*Button
	handles   map[*Button]CallbackHandle
	suppress  bool
	restoring bool
	changed   observers[RadioChange]

	// quiet leaves the EventSink to an owning control that reports the
	// change itself.
	quiet bool
}

// NewRadioGroup creates an empty group. Buttons join it through
// ButtonOptions.Group.
func NewRadioGroup() *RadioGroup {
	return &RadioGroup{handles: make(map[*Button]CallbackHandle)}
}

// Active returns the active button, or nil.
func (g *RadioGroup) Active() *Button {
	for _, b := range g.buttons {
		if b.Selected() {
			return b
		}
	}
	return nil
}

// Buttons returns the group's buttons in join order.
func (g *RadioGroup) Buttons() []*Button { return g.buttons }

// OnChanged registers fn to run when a button becomes active.
func (g *RadioGroup) OnChanged(fn func(RadioChange)) CallbackHandle {
	return g.changed.add(fn)
}

// Add puts b in the group. Buttons created with ButtonOptions.Group call
// it themselves.
func (g *RadioGroup) Add(b *Button) {
	if _, ok := g.handles[b]; ok {
		return
	}
	g.buttons = append(g.buttons, b)
	g.handles[b] = b.OnStateChanged(g.onStateChanged)
}

// Remove takes b out of the group. Reports whether it was a member.
func (g *RadioGroup) Remove(b *Button) bool {
	h, ok := g.handles[b]
	if !ok {
		return false
	}
	h.Remove()
	delete(g.handles, b)
	for i, o := range g.buttons {
		if o == b {
			g.buttons = append(g.buttons[:i], g.buttons[i+1:]...)
			break
		}
	}
	return true
}

// Clear deactivates every button without restoring one.
func (g *RadioGroup) Clear() {
	g.suppress = true
	for _, b := range g.buttons {
		b.SetSelected(false)
	}
	g.suppress = false
}

func (g *RadioGroup) onStateChanged(e ButtonStateChange) {
	b := e.Button
	if e.State == ButtonActive {
		if g.restoring {
			return
		}
		var prev *Button
		for _, o := range g.buttons {
			if o != b && o.Selected() {
				o.SetSelected(false)
				prev = o
			}
		}
		g.changed.notify(RadioChange{Active: b, Previous: prev})
		if !g.quiet {
			b.visual.rt.emit(ControlEvent{Type: EventSelectionChanged, Control: b, Index: -1})
		}
		return
	}
	switch e.Old {
	case ButtonActive, ButtonActivePressed, ButtonActiveClickOut:
	default:
		return
	}
	if g.suppress || e.State == ButtonActivePressed || e.State == ButtonActiveClickOut {
		return
	}
	if g.Active() != nil {
		return
	}
	g.restoring = true
	b.SetSelected(true)
	g.restoring = false
}
