package bough

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// drawCommand is one mesh queued for submission.
type drawCommand struct {
	mesh   *Mesh
	visual *Visual
	layer  int
	z      float64
	seq    int // tree order, for a stable sort
}

// Draw renders every visible, active visual into screen: layers in
// ascending index order, then far to near by Z, then in tree order. Dirty
// visuals are rebuilt first. The screen size becomes the gui layer size.
func (rt *Runtime) Draw(screen *ebiten.Image) {
	if rt.shutdown {
		return
	}
	start := time.Now()
	b := screen.Bounds()
	rt.screenW, rt.screenH = float64(b.Dx()), float64(b.Dy())

	rt.collect()
	rt.mergeSort()
	rt.submitBatches(screen)
	for _, o := range rt.overlays {
		o.draw(screen)
	}
	rt.flushScreenshots(screen)

	rt.stats.drawTime = time.Since(start)
	rt.debugLog()
}

// collect gathers the meshes of visible visuals in active subtrees. Visuals
// outside a culling camera's view are left out.
func (rt *Runtime) collect() {
	rt.commands = rt.commands[:0]
	seq := 0
	rt.walkActive(func(v *Visual) {
		if !v.visible {
			return
		}
		meshes := v.Meshes()
		if len(meshes) == 0 || rt.culled(v, meshes) {
			return
		}
		for _, m := range meshes {
			if len(m.Indices) == 0 {
				continue
			}
			seq++
			rt.commands = append(rt.commands, drawCommand{
				mesh:   m,
				visual: v,
				layer:  v.drawLayer.Index,
				z:      v.origin.Z,
				seq:    seq,
			})
		}
	})
	rt.stats.meshes += len(rt.commands)
}

// culled reports whether the meshes lie entirely outside the visual's
// camera view.
func (rt *Runtime) culled(v *Visual, meshes []*Mesh) bool {
	cam := v.drawLayer.Camera
	if cam == nil || !cam.CullEnabled {
		return false
	}
	var (
		r     Rect
		found bool
	)
	for _, m := range meshes {
		if len(m.Vertices) == 0 {
			continue
		}
		b := m.Bounds()
		if !found {
			r, found = b, true
			continue
		}
		r = r.Union(b)
	}
	if !found {
		return true
	}
	return !r.Shift(v.origin.X, v.origin.Y).Intersects(cam.VisibleBounds())
}

// commandLessOrEqual returns true if a should draw before or with b. Larger
// Z is farther and draws first. Using <= for seq keeps the sort stable.
func commandLessOrEqual(a, b *drawCommand) bool {
	if a.layer != b.layer {
		return a.layer < b.layer
	}
	if a.z != b.z {
		return a.z > b.z
	}
	return a.seq <= b.seq
}

// mergeSort sorts rt.commands in place using rt.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations once the buffer reaches its
// high-water mark.
func (rt *Runtime) mergeSort() {
	n := len(rt.commands)
	if n <= 1 {
		return
	}
	if cap(rt.sortBuf) < n {
		rt.sortBuf = make([]drawCommand, n)
	}
	rt.sortBuf = rt.sortBuf[:n]

	a := rt.commands
	b := rt.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(rt.commands, rt.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []drawCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
