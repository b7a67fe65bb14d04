package bough

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one action of an input script. Coordinates are screen
// pixels, y-down, as in a screenshot.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Ticks  float64 `json:"ticks,omitempty"`
	Text   string  `json:"text,omitempty"`
	Key    string  `json:"key,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner plays scripted input and screenshots across frames, for
// automated testing of a GUI. Attach one with Runtime.SetScript.
//
// Actions: "click", "hover", "drag", "wheel", "type", "key", "wait" and
// "screenshot".
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("bough: parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("bough: parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "click", "hover", "drag", "wheel", "type", "wait", "screenshot":
		case "key":
			if _, ok := keyByName(st.Key); !ok {
				return nil, fmt.Errorf("bough: parse script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("bough: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScript attaches a script. Its steps run from Update, before input is
// processed. Pass nil to detach.
func (rt *Runtime) SetScript(r *ScriptRunner) {
	rt.script = r
}

// Done reports whether every step has run and its input was consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the script by one frame.
func (r *ScriptRunner) step(rt *Runtime) {
	if r.done {
		return
	}
	// Let queued pointer events drain first.
	if len(rt.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		rt.Screenshot(st.Label)
	case "click":
		rt.InjectClick(st.X, st.Y)
	case "hover":
		rt.InjectHover(st.X, st.Y)
	case "drag":
		rt.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(2, st.Frames))
	case "wheel":
		rt.InjectWheel(st.X, st.Y, st.Ticks)
	case "type":
		for _, ch := range st.Text {
			rt.InjectRune(ch)
		}
	case "key":
		k, _ := keyByName(st.Key)
		rt.InjectKey(k)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(rt.injectQueue) == 0 {
		r.done = true
	}
}

func keyByName(name string) (Key, bool) {
	for k := KeyLeft; k <= KeyEscape; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}
