package bough

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// batchKey groups draw commands that can be submitted in a single draw call.
type batchKey struct {
	image  *ebiten.Image
	shader *ebiten.Shader
}

func commandBatchKey(cmd *drawCommand) batchKey {
	m := cmd.mesh.Material
	if m == nil {
		return batchKey{}
	}
	return batchKey{image: m.Image(), shader: m.Shader}
}

// submitBatches iterates the sorted commands, coalescing consecutive
// meshes that share a texture and shader into one draw call.
func (rt *Runtime) submitBatches(target *ebiten.Image) {
	rt.vertices = rt.vertices[:0]
	rt.indices = rt.indices[:0]

	var current batchKey
	for i := range rt.commands {
		cmd := &rt.commands[i]
		key := commandBatchKey(cmd)
		if key.image == nil {
			continue
		}
		if key != current {
			rt.flushBatch(target, current)
			current = key
		}
		rt.vertices, rt.indices = appendMeshVertices(rt.vertices, rt.indices, cmd, rt.screenH)
	}
	rt.flushBatch(target, current)
}

// appendMeshVertices converts a command's mesh to screen-space vertices:
// world positions go through the layer's camera, y is flipped to
// Ebitengine's y-down space, UVs become texel coordinates and colors are
// premultiplied.
func appendMeshVertices(verts []ebiten.Vertex, inds []uint32, cmd *drawCommand, screenH float64) ([]ebiten.Vertex, []uint32) {
	m := cmd.mesh
	o := cmd.visual.origin
	cam := cmd.visual.drawLayer.Camera
	tw, th := m.Material.TextureSize()

	base := uint32(len(verts))
	for i, p := range m.Vertices {
		x, y := o.X+p.X, o.Y+p.Y
		if cam != nil {
			x, y = cam.WorldToScreen(x, y)
		}
		uv := m.UVs[i]
		c := ColorWhite
		if i < len(m.Colors) {
			c = m.Colors[i]
		}
		a := float32(c.A)
		verts = append(verts, ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(screenH - y),
			SrcX:   float32(uv.X * float64(tw)),
			SrcY:   float32((1 - uv.Y) * float64(th)),
			ColorR: float32(c.R) * a,
			ColorG: float32(c.G) * a,
			ColorB: float32(c.B) * a,
			ColorA: a,
		})
	}
	for _, idx := range m.Indices {
		inds = append(inds, base+idx)
	}
	return verts, inds
}

// flushBatch submits the accumulated vertices as a single draw call.
func (rt *Runtime) flushBatch(target *ebiten.Image, key batchKey) {
	if len(rt.vertices) == 0 {
		return
	}
	if key.shader != nil {
		var op ebiten.DrawTrianglesShaderOptions
		op.Images[0] = key.image
		target.DrawTrianglesShader32(rt.vertices, rt.indices, key.shader, &op)
	} else {
		var op ebiten.DrawTrianglesOptions
		op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
		target.DrawTriangles32(rt.vertices, rt.indices, key.image, &op)
	}
	rt.stats.drawCalls++
	rt.stats.vertexCount += len(rt.vertices)

	rt.vertices = rt.vertices[:0]
	rt.indices = rt.indices[:0]
}
