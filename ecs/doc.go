// Package ecs provides ECS adapters for bough's control events.
//
// [NewDonburiSink] forwards every control event (clicks, state and
// selection changes, text edits) into a [Donburi] world as a typed event.
// Subscribe to [ControlEventType] in your ECS systems to receive them.
//
// Usage:
//
//	rt.SetEventSink(ecs.NewDonburiSink(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
