package bough

import "fmt"

// ListBoxOptions configures a ListBox.
type ListBoxOptions struct {
	ScrollViewOptions

	ItemHeight float64
	// ItemWidth of zero uses the clip width.
	ItemWidth float64

	ItemSprite     string
	OverSprite     string
	SelectedSprite string
}

// ListItem is one row of a ListBox: a button in the list's radio group
// carrying a value.
type ListItem[T any] struct {
	Button
	Value T
}

// newListItem attaches an item below parent as a member of group.
func newListItem[T any](parent Control, group *RadioGroup, pos Vec3, size Vec2, value T, opts ButtonOptions) (*ListItem[T], error) {
	opts.Parent = parent
	opts.Group = group
	it := &ListItem[T]{Value: value}
	if err := it.Button.init(parent.Visual().rt, it, pos, size, opts); err != nil {
		return nil, err
	}
	return it, nil
}

// ListSelection is delivered to ListBox.OnSelectionChanged observers.
type ListSelection[T any] struct {
	Index    int
	Item     *ListItem[T]
	Previous *ListItem[T]
}

// ListBox is a scroll view of stacked, selectable items. At most one item
// is selected.
type ListBox[T any] struct {
	ScrollView
	opts  ListBoxOptions
	items []*ListItem[T]
	group *RadioGroup

	selChanged observers[ListSelection[T]]
}

// NewListBox attaches an empty list box.
func NewListBox[T any](rt *Runtime, pos Vec3, size Vec2, opts ListBoxOptions) (*ListBox[T], error) {
	lb := &ListBox[T]{opts: opts, group: NewRadioGroup()}
	lb.group.quiet = true
	if err := lb.ScrollView.init(rt, lb, pos, size, opts.ScrollViewOptions); err != nil {
		return nil, err
	}
	lb.group.OnChanged(lb.onGroupChanged)
	return lb, nil
}

func (lb *ListBox[T]) onGroupChanged(c RadioChange) {
	sel := ListSelection[T]{
		Index:    lb.indexOf(c.Active),
		Item:     lb.itemOf(c.Active),
		Previous: lb.itemOf(c.Previous),
	}
	lb.selChanged.notify(sel)
	lb.visual.rt.emit(ControlEvent{Type: EventSelectionChanged, Control: lb, Index: sel.Index})
}

func (lb *ListBox[T]) indexOf(b *Button) int {
	if b == nil {
		return -1
	}
	for i, it := range lb.items {
		if &it.Button == b {
			return i
		}
	}
	return -1
}

func (lb *ListBox[T]) itemOf(b *Button) *ListItem[T] {
	if i := lb.indexOf(b); i >= 0 {
		return lb.items[i]
	}
	return nil
}

// Items returns the items top to bottom. The slice must not be modified.
func (lb *ListBox[T]) Items() []*ListItem[T] { return lb.items }

// Len returns the number of items.
func (lb *ListBox[T]) Len() int { return len(lb.items) }

// OnSelectionChanged registers fn to run when an item becomes selected.
func (lb *ListBox[T]) OnSelectionChanged(fn func(ListSelection[T])) CallbackHandle {
	return lb.selChanged.add(fn)
}

// SelectedItem returns the selected item, or nil.
func (lb *ListBox[T]) SelectedItem() *ListItem[T] {
	return lb.itemOf(lb.group.Active())
}

// SetSelectedItem selects it. Nil clears the selection.
func (lb *ListBox[T]) SetSelectedItem(it *ListItem[T]) {
	if it == nil {
		lb.group.Clear()
		return
	}
	it.SetSelected(true)
}

// SelectedIndex returns the index of the selected item, or -1.
func (lb *ListBox[T]) SelectedIndex() int {
	return lb.indexOf(lb.group.Active())
}

// SetSelectedIndex selects the item at i. A negative index clears the
// selection.
func (lb *ListBox[T]) SetSelectedIndex(i int) error {
	if i < 0 {
		lb.group.Clear()
		return nil
	}
	if i >= len(lb.items) {
		return fmt.Errorf("bough: select item %d of %d: %w", i, len(lb.items), ErrOutOfRange)
	}
	lb.items[i].SetSelected(true)
	return nil
}

// Selected returns the selected item's value, or the zero value.
func (lb *ListBox[T]) Selected() T {
	if it := lb.SelectedItem(); it != nil {
		return it.Value
	}
	var zero T
	return zero
}

// AddItem appends an item holding value.
func (lb *ListBox[T]) AddItem(value T) (*ListItem[T], error) {
	return lb.AddItemAt(len(lb.items), value)
}

// AddItemAt inserts an item holding value at idx, moving later items down
// by one row.
func (lb *ListBox[T]) AddItemAt(idx int, value T) (*ListItem[T], error) {
	if idx < 0 || idx > len(lb.items) {
		return nil, fmt.Errorf("bough: insert item at %d of %d: %w", idx, len(lb.items), ErrOutOfRange)
	}
	h := lb.opts.ItemHeight
	ext := lb.Extents()
	var y float64
	switch {
	case len(lb.items) == 0 || idx == 0:
		y = ext.YMax() - h
	case idx == len(lb.items):
		y = lb.items[idx-1].Position().Y - h
	default:
		y = lb.items[idx].Position().Y
	}
	for _, it := range lb.items[idx:] {
		p := it.Position()
		it.SetPosition(Vec3{p.X, p.Y - h, p.Z})
	}
	if idx < len(lb.items) {
		lb.expandExtents(lb.items[len(lb.items)-1])
	}

	w := lb.opts.ItemWidth
	if w <= 0 {
		w = lb.Clip().Width
	}
	it, err := newListItem(lb, lb.group, Vec3{ext.X, y, ZIndexFrom(0.5, lb)}, Vec2{w, h}, value, ButtonOptions{
		VisualOptions: VisualOptions{Name: "list_item", PixelAlign: PixelAlignNone},
		NormalSprite:  lb.opts.ItemSprite,
		OverSprite:    lb.opts.OverSprite,
		ActiveSprite:  lb.opts.SelectedSprite,
	})
	if err != nil {
		return nil, err
	}
	lb.items = append(lb.items, nil)
	copy(lb.items[idx+1:], lb.items[idx:])
	lb.items[idx] = it
	return it, nil
}

// RemoveItem removes it. Reports whether it was in the list.
func (lb *ListBox[T]) RemoveItem(it *ListItem[T]) bool {
	for i, o := range lb.items {
		if o == it {
			return lb.RemoveItemAt(i) == nil
		}
	}
	return false
}

// RemoveItemAt disposes the item at idx and moves later items up by one
// row. Removing the selected item clears the selection.
func (lb *ListBox[T]) RemoveItemAt(idx int) error {
	if idx < 0 || idx >= len(lb.items) {
		return fmt.Errorf("bough: remove item %d of %d: %w", idx, len(lb.items), ErrOutOfRange)
	}
	h := lb.opts.ItemHeight
	for _, it := range lb.items[idx+1:] {
		p := it.Position()
		it.SetPosition(Vec3{p.X, p.Y + h, p.Z})
	}
	it := lb.items[idx]
	if it.Selected() {
		lb.group.Clear()
	}
	lb.items = append(lb.items[:idx], lb.items[idx+1:]...)
	it.Dispose()
	lb.SetVScroll(lb.VScroll())
	return nil
}

// Clear removes every item.
func (lb *ListBox[T]) Clear() {
	for len(lb.items) > 0 {
		_ = lb.RemoveItemAt(len(lb.items) - 1)
	}
}
