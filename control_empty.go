package bough

// Empty is a control with no content. Use it to group children that move,
// hide and dispose together.
type Empty struct {
	ControlBase
}

// NewEmpty attaches an empty control.
func NewEmpty(rt *Runtime, pos Vec3, size Vec2, opts VisualOptions) (*Empty, error) {
	e := &Empty{}
	if _, err := rt.Attach(e, pos, size, opts); err != nil {
		return nil, err
	}
	return e, nil
}
