package bough

import (
	"fmt"
	"time"
)

// globalDebug enables debug-only checks that have no runtime to consult.
// NewRuntime sets it from Config.Debug.
var globalDebug bool

// frameStats holds per-frame counters. Only logged when Config.Debug is set.
type frameStats struct {
	updateTime  time.Duration
	drawTime    time.Duration
	rebuilds    int
	skipped     int
	hooks       int
	meshes      int
	drawCalls   int
	vertexCount int
}

// debugLog logs the frame's counters at Debug and resets them.
func (rt *Runtime) debugLog() {
	if !rt.cfg.Debug {
		return
	}
	s := rt.stats
	Logger().Debug("frame",
		"update", s.updateTime,
		"draw", s.drawTime,
		"rebuilds", s.rebuilds,
		"skipped", s.skipped,
		"hooks", s.hooks,
		"meshes", s.meshes,
		"drawCalls", s.drawCalls,
		"vertices", s.vertexCount,
	)
	rt.stats = frameStats{}
}

// debugCheckDisposed panics with a descriptive message when a disposed
// visual is used in a tree operation. Callers skip this in release mode.
func debugCheckDisposed(v *Visual, op string) {
	if v.disposed {
		panic(fmt.Sprintf("bough debug: %s on disposed visual %q (generation %d)", op, v.opts.Name, v.generation))
	}
}

// debugCheckTreeDepth warns if the tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(v *Visual) {
	depth := 0
	for p := v; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("visual tree too deep", "visual", v.opts.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugCheckChildCount warns if a visual has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(v *Visual) {
	if len(v.children) > debugMaxChildCount {
		Logger().Warn("visual has too many children", "visual", v.opts.Name, "children", len(v.children), "threshold", debugMaxChildCount)
	}
}
