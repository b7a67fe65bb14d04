package bough

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// statsInterval is how often a StatsLabel refreshes, in seconds.
const statsInterval = 0.5

// StatsLabel draws FPS, TPS and the live visual count over everything else
// in a bitmap font. It is drawn after the visual tree by Runtime.Draw.
type StatsLabel struct {
	rt      *Runtime
	face    *text.GoXFace
	spacing float64
	x, y    float64 // top-left corner, gui space
	text    string
	elapsed float64
	hook    HookID
	visible bool
}

// NewStatsLabel creates a stats overlay with its top-left corner at (x, y)
// in gui space.
func (rt *Runtime) NewStatsLabel(fontName string, x, y float64) (*StatsLabel, error) {
	f, err := rt.Font(fontName)
	if err != nil {
		return nil, err
	}
	s := &StatsLabel{
		rt:      rt,
		face:    text.NewGoXFace(f.Face()),
		spacing: f.LineHeight,
		x:       x,
		y:       y,
		visible: true,
		elapsed: statsInterval,
	}
	s.hook = rt.AddUpdateHook(s.update)
	rt.overlays = append(rt.overlays, s)
	return s, nil
}

// Text returns the last refreshed text.
func (s *StatsLabel) Text() string { return s.text }

// SetVisible shows or hides the overlay.
func (s *StatsLabel) SetVisible(v bool) { s.visible = v }

// Dispose stops refreshing and removes the overlay.
func (s *StatsLabel) Dispose() {
	s.rt.RemoveUpdateHook(s.hook)
	for i, o := range s.rt.overlays {
		if o == s {
			s.rt.overlays = append(s.rt.overlays[:i], s.rt.overlays[i+1:]...)
			break
		}
	}
}

func (s *StatsLabel) update(dt float64) {
	s.elapsed += dt
	if s.elapsed < statsInterval {
		return
	}
	s.elapsed = 0
	s.text = formatStats(ebiten.ActualFPS(), ebiten.ActualTPS(), s.rt.VisualCount())
}

func formatStats(fps, tps float64, visuals int) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nVisuals: %d", fps, tps, visuals)
}

func (s *StatsLabel) draw(dst *ebiten.Image) {
	if !s.visible || s.text == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(s.x, s.rt.screenH-s.y)
	op.LineSpacing = s.spacing
	text.Draw(dst, s.text, s.face, op)
}
