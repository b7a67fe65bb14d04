package ecs

import (
	"github.com/phanxgames/bough"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ControlEventType is the Donburi event type for bough control events.
var ControlEventType = events.NewEventType[bough.ControlEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on ControlEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) bough.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event bough.ControlEvent) {
	ControlEventType.Publish(s.world, event)
}
