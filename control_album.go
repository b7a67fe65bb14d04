package bough

import (
	"math"

	"github.com/tanema/gween/ease"
)

// AlbumOptions configures an Album.
type AlbumOptions struct {
	VisualOptions

	Sprite string
	Border Border

	ItemSprite string
	ItemSize   Vec2
	Spacing    float64

	SelectedIndex int

	// SlideDuration is the time in seconds to slide to a new selection.
	// Zero means 1.
	SlideDuration float64
}

// Album shows a horizontal row of items with the selected one centered.
// Clicking an item slides it to the center.
type Album[T any] struct {
	Image
	opts  AlbumOptions
	clip  Rect // relative to the album's position
	items []*ListItem[T]
	group *RadioGroup
	xBase float64 // local x of the centered item
	index int
	slide *Transition
}

// NewAlbum attaches an album with one item per value.
func NewAlbum[T any](rt *Runtime, pos Vec3, size Vec2, values []T, opts AlbumOptions) (*Album[T], error) {
	if opts.SlideDuration <= 0 {
		opts.SlideDuration = 1
	}
	b := opts.Border
	a := &Album[T]{
		opts:  opts,
		clip:  Rect{b.Left, b.Bottom, size.X - b.Left - b.Right, size.Y - b.Bottom - b.Top},
		group: NewRadioGroup(),
	}
	if err := a.Image.init(rt, a, pos, size, opts.Sprite, opts.VisualOptions); err != nil {
		return nil, err
	}
	if err := a.createItems(values); err != nil {
		a.Dispose()
		return nil, err
	}
	return a, nil
}

func (a *Album[T]) createItems(values []T) error {
	is := a.opts.ItemSize
	y := math.Round(a.clip.YMin() + (a.clip.Height-is.Y)/2)
	a.xBase = math.Round(a.clip.XMin() + (a.clip.Width-is.X)/2)
	a.index = max(0, min(len(values)-1, a.opts.SelectedIndex))
	x := a.offsetFor(a.index)
	p := a.visual.position
	for i, v := range values {
		it, err := newListItem(a, a.group, Vec3{p.X + x, p.Y + y, ZIndexFrom(0.5, a)}, is, v, ButtonOptions{
			VisualOptions: VisualOptions{Name: "album_item"},
			NormalSprite:  a.opts.ItemSprite,
		})
		if err != nil {
			return err
		}
		it.OnClick(func(*Button) { a.SetSelectedIndex(i) })
		a.items = append(a.items, it)
		x += is.X + a.opts.Spacing
	}
	if len(a.items) > 0 {
		a.items[a.index].SetSelected(true)
	}
	return nil
}

// offsetFor returns the local x of the first item when item i is centered.
func (a *Album[T]) offsetFor(i int) float64 {
	return a.xBase - float64(i)*(a.opts.ItemSize.X+a.opts.Spacing)
}

// Clip returns the world rectangle items are clipped to.
func (a *Album[T]) Clip() Rect {
	p := a.visual.position
	return a.clip.Shift(p.X, p.Y)
}

// Items returns the items left to right.
func (a *Album[T]) Items() []*ListItem[T] { return a.items }

// SelectedIndex returns the centered item's index, or -1 when empty.
func (a *Album[T]) SelectedIndex() int {
	if len(a.items) == 0 {
		return -1
	}
	return a.index
}

// SetSelectedIndex slides item i to the center. The index is clamped.
func (a *Album[T]) SetSelectedIndex(i int) {
	if len(a.items) == 0 {
		return
	}
	a.index = max(0, min(len(a.items)-1, i))
	a.items[a.index].SetSelected(true)
	a.slideTo(a.offsetFor(a.index))
}

// Selected returns the centered item's value, or the zero value.
func (a *Album[T]) Selected() T {
	if len(a.items) == 0 {
		var zero T
		return zero
	}
	return a.items[a.index].Value
}

// IsSliding reports whether a slide is in progress.
func (a *Album[T]) IsSliding() bool {
	return a.slide != nil && a.slide.IsRunning()
}

func (a *Album[T]) slideTo(x float64) {
	if a.slide != nil {
		a.slide.Dispose()
	}
	from := a.items[0].Position().X - a.visual.position.X
	a.slide = a.visual.rt.NewTransition(a.opts.SlideDuration, func(v float64) {
		a.setScroll(from + (x-from)*v)
	}).Ease(ease.OutQuint).Uses(a.visual).Now()
}

// setScroll lays the items out from local x.
func (a *Album[T]) setScroll(x float64) {
	px := a.visual.position.X
	for _, it := range a.items {
		p := it.Position()
		it.SetPosition(Vec3{px + math.Round(x), p.Y, p.Z})
		x += a.opts.ItemSize.X + a.opts.Spacing
	}
}

// ClipRect clips every item to the album's inner area.
func (a *Album[T]) ClipRect(Control) Rect { return a.Clip() }

func (a *Album[T]) OnChildAdded(Control) {}

func (a *Album[T]) OnChildRemoved(Control) {}

func (a *Album[T]) OnDispose() {
	if a.slide != nil {
		a.slide.Dispose()
	}
}
