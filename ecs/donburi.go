// Package ecs provides ECS adapters for pinchzoom.
package ecs

import (
	"github.com/phanxgames/pinchzoom"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for pinchzoom events.
// Subscribe to this in your ECS systems to receive gesture lifecycle and
// update events.
var GestureEventType = events.NewEventType[pinchzoom.Event]()

// ViewTransform holds the latest transform of a zoomable surface. Systems
// that position sprites in content space read it from the tracked entity.
var ViewTransform = donburi.NewComponentType[pinchzoom.Transform]()

// DonburiSink is a pinchzoom.EventSink backed by a Donburi world.
type DonburiSink struct {
	world   donburi.World
	entity  donburi.Entity
	tracked bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are published to GestureEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world}
}

// Track makes the sink copy every event's transform into the ViewTransform
// component of entity. The component is added if missing.
func (s *DonburiSink) Track(entity donburi.Entity) {
	s.entity = entity
	s.tracked = true
}

// NewViewEntity creates an entity carrying a ViewTransform and tracks it.
func (s *DonburiSink) NewViewEntity() donburi.Entity {
	e := s.world.Create(ViewTransform)
	s.Track(e)
	return e
}

func (s *DonburiSink) EmitEvent(event pinchzoom.Event) {
	GestureEventType.Publish(s.world, event)
	if !s.tracked || !s.world.Valid(s.entity) {
		return
	}
	entry := s.world.Entry(s.entity)
	if !entry.HasComponent(ViewTransform) {
		entry.AddComponent(ViewTransform)
	}
	ViewTransform.SetValue(entry, event.Transform)
}
