package bough

// ControlEventType identifies a control event mirrored to an EventSink.
type ControlEventType uint8

const (
	EventClick            ControlEventType = iota // a button was clicked
	EventStateChanged                             // a button changed state
	EventSelectionChanged                         // a radio group or list box selection changed
	EventTextChanged                              // a text box's text changed
	EventCommit                                   // enter was pressed in a text box
)

func (t ControlEventType) String() string {
	switch t {
	case EventClick:
		return "Click"
	case EventStateChanged:
		return "StateChanged"
	case EventSelectionChanged:
		return "SelectionChanged"
	case EventTextChanged:
		return "TextChanged"
	case EventCommit:
		return "Commit"
	default:
		return "Unknown"
	}
}

// ControlEvent describes something a control did. Fields that do not apply
// to the event type are zero.
type ControlEvent struct {
	Type    ControlEventType
	Control Control
	Name    string

	State     ButtonState // EventStateChanged
	PrevState ButtonState // EventStateChanged
	Index     int         // EventSelectionChanged on a list box, -1 for none
	Text      string      // EventTextChanged, EventCommit
}

// EventSink receives every ControlEvent after the control's own observers.
type EventSink interface {
	EmitEvent(ControlEvent)
}

// SetEventSink mirrors control events into sink. Pass nil to stop.
func (rt *Runtime) SetEventSink(sink EventSink) {
	rt.sink = sink
}

func (rt *Runtime) emit(ev ControlEvent) {
	if rt.sink == nil {
		return
	}
	if ev.Name == "" && ev.Control != nil && ev.Control.Visual() != nil {
		ev.Name = ev.Control.Visual().opts.Name
	}
	rt.sink.EmitEvent(ev)
}

// CallbackHandle allows removing a registered observer.
type CallbackHandle struct {
	id     uint32
	remove func(uint32)
}

// Remove unregisters the observer so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.remove != nil {
		h.remove(h.id)
	}
}

type observer[T any] struct {
	id uint32
	fn func(T)
}

// observers is an ordered list of callbacks. Notify iterates a snapshot so
// callbacks may add or remove observers.
type observers[T any] struct {
	list   []observer[T]
	nextID uint32
}

func (o *observers[T]) add(fn func(T)) CallbackHandle {
	o.nextID++
	id := o.nextID
	o.list = append(o.list, observer[T]{id: id, fn: fn})
	return CallbackHandle{id: id, remove: o.remove}
}

func (o *observers[T]) remove(id uint32) {
	for i, h := range o.list {
		if h.id == id {
			// Copy so an in-flight snapshot is not disturbed.
			next := make([]observer[T], 0, len(o.list)-1)
			next = append(next, o.list[:i]...)
			o.list = append(next, o.list[i+1:]...)
			return
		}
	}
}

func (o *observers[T]) notify(v T) {
	for _, h := range o.list {
		h.fn(v)
	}
}
