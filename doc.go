// Package pinchzoom is a headless multi-touch gesture engine for zoomable
// 2D content.
//
// An [Engine] consumes the full set of active touch contacts each time it
// changes, classifies them into an interaction [Mode] (drag, pinch-zoom or
// none), detects double-taps, and maintains a clamped view [Transform]: a
// zoom factor and an offset describing how a bounded content element is
// scaled and translated inside a fixed-size viewport. Programmatic motion
// (double-tap zoom, zoom-out below the threshold, snap-back of an offset
// that overshot during a pinch) is driven by a single-slot animation
// [Scheduler] built on [gween] tweens.
//
// # Quick start
//
//	geom := pinchzoom.FixedGeometry{
//		Viewport: pinchzoom.Size{Width: 320, Height: 480},
//		Content:  pinchzoom.Size{Width: 640, Height: 960},
//	}
//	eng, err := pinchzoom.New(pinchzoom.DefaultConfig(), geom)
//	if err != nil {
//		log.Fatal(err)
//	}
//	eng.OnUpdate(func(ev pinchzoom.Event) {
//		// apply ev.Transform.Matrix() to the content
//	})
//
//	// host input callback, called on every touch start/move/end:
//	eng.ContactsChanged(points)
//
//	// host frame callback:
//	eng.FrameTick(eng.Now())
//
// The engine never reads layout or input devices itself. Geometry is polled
// through the [Geometry] interface and input arrives through
// [Engine.ContactsChanged], which keeps all of the math testable without a
// window. The ebitenzoom sub-package wires an engine to Ebitengine touch and
// mouse input; the ecs sub-module forwards events into a Donburi world.
//
// # Events
//
// Hosts subscribe with [Engine.OnZoomStart], [Engine.OnZoomEnd],
// [Engine.OnDragStart], [Engine.OnDragEnd], [Engine.OnDoubleTap] and
// [Engine.OnUpdate]. Update fires at most once per [Engine.FrameTick], and
// only when the transform changed since the previous frame.
//
// # Logging
//
// The package is silent by default. Call [SetLogger] with a [log/slog]
// logger to receive debug records for mode transitions and animations.
//
// [gween]: https://github.com/tanema/gween
package pinchzoom
