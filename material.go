package bough

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Material binds a texture to an optional Kage shader. A nil shader selects
// Ebitengine's built-in vertex-colored sprite pipeline, shared by every
// default material.
type Material struct {
	// ShaderName is empty for the default material.
	ShaderName string
	Shader     *ebiten.Shader

	source image.Image
	image  *ebiten.Image
}

// ShaderProvider resolves shader names. The Runtime implements it.
type ShaderProvider interface {
	Shader(name string) (*ebiten.Shader, error)
}

func newMaterial(src image.Image, shaderName string, shader *ebiten.Shader) *Material {
	return &Material{ShaderName: shaderName, Shader: shader, source: src}
}

// Source returns the texture as it was supplied.
func (m *Material) Source() image.Image {
	return m.source
}

// Image returns the texture as an *ebiten.Image, uploading it on first use.
func (m *Material) Image() *ebiten.Image {
	if m.image == nil && m.source != nil {
		if img, ok := m.source.(*ebiten.Image); ok {
			m.image = img
		} else {
			m.image = ebiten.NewImageFromImage(m.source)
		}
	}
	return m.image
}

// TextureSize returns the texture dimensions in pixels.
func (m *Material) TextureSize() (w, h int) {
	if m.source == nil {
		return 0, 0
	}
	b := m.source.Bounds()
	return b.Dx(), b.Dy()
}
