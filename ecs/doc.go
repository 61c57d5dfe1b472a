// Package ecs provides ECS adapters for pinchzoom's event system.
//
// The primary adapter is [NewDonburiSink], which bridges pinchzoom events
// (zoom, drag, double-tap and per-frame updates) into a [Donburi] world as
// typed events. Subscribe to [GestureEventType] in your ECS systems to
// receive them. A tracked entity additionally carries the latest transform
// in its [ViewTransform] component.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	view := sink.NewViewEntity()
//	engine, err := pinchzoom.New(cfg, geom, pinchzoom.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
