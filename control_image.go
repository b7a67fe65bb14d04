package bough

// Image draws one sprite, stretched, sliced or tiled over its size.
type Image struct {
	ControlBase
	sprite string
	anim   *Transition
}

// NewImage attaches an image showing sprite, given as "atlas/sprite".
func NewImage(rt *Runtime, pos Vec3, size Vec2, sprite string, opts VisualOptions) (*Image, error) {
	img := &Image{}
	if err := img.init(rt, img, pos, size, sprite, opts); err != nil {
		return nil, err
	}
	return img, nil
}

func (i *Image) init(rt *Runtime, self Control, pos Vec3, size Vec2, sprite string, opts VisualOptions) error {
	i.sprite = sprite
	_, err := rt.Attach(self, pos, size, opts)
	return err
}

// Sprite returns the sprite path.
func (i *Image) Sprite() string { return i.sprite }

// SetSprite changes the sprite path.
func (i *Image) SetSprite(sprite string) {
	if sprite == i.sprite {
		return
	}
	i.sprite = sprite
	i.visual.Invalidate()
}

// Animate cycles through sprites over duration. The returned transition is
// not started; call Now, Repeat or PingPong on it. A previous animation is
// disposed.
func (i *Image) Animate(duration float64, sprites []string) *Transition {
	if i.anim != nil {
		i.anim.Dispose()
	}
	n := len(sprites)
	i.anim = i.visual.rt.NewTransition(duration, func(v float64) {
		if n == 0 {
			return
		}
		i.SetSprite(sprites[min(n-1, int(float64(n)*v))])
	}).Uses(i.visual)
	return i.anim
}
