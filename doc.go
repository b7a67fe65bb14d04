// Package bough is a retained-mode 2D GUI toolkit for [Ebitengine].
//
// Bough keeps a tree of controls (images, labels, buttons, radio groups,
// scroll views, list boxes, text boxes) and turns each one into textured,
// vertex-colored quads drawn from a sprite atlas or a bitmap font. Geometry
// is rebuilt lazily: changing a control only marks it dirty, and the next
// Update rebuilds what changed.
//
// # Quick start
//
// Create a [Runtime], register an atlas and a font, attach controls and
// drive the runtime from your [ebiten.Game]:
//
//	rt, _ := bough.NewRuntime(bough.DefaultConfig())
//	rt.LoadAtlasFS(assets, "ui.atlas", "ui.png")
//	rt.LoadFontFS(assets, "body.fnt", "body_0.png")
//
//	ok, _ := bough.NewButton(rt, bough.Vec3{X: 20, Y: 20}, bough.Vec2{X: 120, Y: 32}, bough.ButtonOptions{
//		NormalSprite: "ui/button",
//		OverSprite:   "ui/button_over",
//	})
//	ok.SetLabel("OK", "body", bough.ColorWhite, bough.AlignCenter)
//	ok.OnClick(func(*bough.Button) { ... })
//
//	type Game struct{ rt *bough.Runtime }
//
//	func (g *Game) Update() error              { return g.rt.Update(1.0 / 60) }
//	func (g *Game) Draw(s *ebiten.Image)       { g.rt.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Coordinates
//
// World and gui space are y-up with the origin at the bottom-left. A
// smaller Z is nearer the viewer; use [ZIndex] and [ZIndexFrom] to stack
// controls. Layers draw in ascending index order and the gui layer is
// always drawn last. A layer with a [Camera] maps its world space onto the
// screen.
//
// # Sprites and text
//
// Atlas sprites may carry a 9-slice border, a hollow center and per-axis
// tiling; see [BuildGeometry]. Bitmap fonts are read from the BMFont text
// format; see [ParseBitmapFont] and [LayoutText]. Text wraps, aligns, and
// switches to a bold font inside [B]...[/B].
//
// # Events
//
// Pointer events go to the nearest control under the pointer and bubble up
// through every ancestor that handles the mouse. Each control exposes typed
// observers such as [Button.OnClick]. Every control event is also mirrored
// to an optional [EventSink]; the bough/ecs package forwards them into a
// [Donburi] world.
//
// Animations are [Transition] values eased with [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package bough
