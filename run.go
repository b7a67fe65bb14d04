package bough

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int

	// ClearColor fills the screen before each frame when its alpha is
	// non-zero.
	ClearColor Color

	// StatsFont, when set, shows a StatsLabel in that font at the top-left
	// corner.
	StatsFont string

	// Update runs once per tick before the runtime updates.
	Update func() error
}

// Run opens a window and drives rt until the window closes, the Update
// callback fails or rt is shut down. Rebuild errors are logged and do not
// stop the loop.
func Run(rt *Runtime, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		w, h := rt.ScreenSize()
		cfg.Width, cfg.Height = int(w), int(h)
	}
	if cfg.StatsFont != "" {
		if _, err := rt.NewStatsLabel(cfg.StatsFont, 4, float64(cfg.Height)-4); err != nil {
			return err
		}
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{rt: rt, cfg: cfg})
}

type game struct {
	rt  *Runtime
	cfg RunConfig
}

func (g *game) Update() error {
	if g.cfg.Update != nil {
		if err := g.cfg.Update(); err != nil {
			return err
		}
	}
	if err := g.rt.Update(1 / float64(ebiten.TPS())); errors.Is(err, ErrShutdown) {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.ClearColor.A > 0 {
		screen.Fill(g.cfg.ClearColor.RGBA())
	}
	g.rt.Draw(screen)
}

func (g *game) Layout(int, int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
