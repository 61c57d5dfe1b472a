package pinchzoom

import "fmt"

// Option configures an Engine at construction.
type Option func(*Engine)

// WithClock sets the time source used for double-tap detection and
// animation start times. Defaults to a monotonic wall clock in
// milliseconds since New.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithEventSink forwards every event to sink after the registered handlers.
func WithEventSink(sink EventSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// Engine is the per-surface facade: it owns one TransformState, one
// gesture recognizer and one animation Scheduler, and keeps live gestures
// and animations from mutating the state in the same tick.
//
// An Engine is not safe for concurrent use; drive it from the host's input
// and frame callbacks on one goroutine.
type Engine struct {
	cfg   Config
	geom  Geometry
	clock Clock

	state *TransformState
	rec   *gestureRecognizer
	anim  *Scheduler

	handlers handlerRegistry
	sink     EventSink
	enabled  bool

	injectQueue [][]Point
	runner      *ScriptRunner
	stats       Stats
}

// New creates an enabled engine at zoom 1, offset (0, 0). Zero-valued
// numeric config fields take their defaults.
func New(cfg Config, geom Geometry, opts ...Option) (*Engine, error) {
	if geom == nil {
		return nil, fmt.Errorf("pinchzoom: nil geometry: %w", ErrInvalidArgument)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, geom: geom, enabled: true}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = newWallClock()
	}
	e.state = NewTransformState(geom, cfg.MinZoom, cfg.MaxZoom)
	e.anim = NewScheduler(e.clock)
	e.rec = newGestureRecognizer(e.state, e, cfg.LockDragAxis)
	return e, nil
}

// Config returns the configuration the engine runs with.
func (e *Engine) Config() Config { return e.cfg }

// Now returns the engine clock's current time in milliseconds.
func (e *Engine) Now() float64 { return e.clock.Now() }

// Transform returns the current transform.
func (e *Engine) Transform() Transform { return e.state.snapshot() }

// Mode returns the interaction currently in progress.
func (e *Engine) Mode() Mode { return e.rec.mode }

// Animating reports whether a programmatic animation is running.
func (e *Engine) Animating() bool { return e.anim.Active() }

// Idle reports whether neither a gesture nor an animation is in progress.
// Renderers can use it to switch to a slower, higher quality path.
func (e *Engine) Idle() bool {
	return e.rec.mode == ModeNone && !e.anim.Active()
}

// Enabled reports whether contact input is processed.
func (e *Engine) Enabled() bool { return e.enabled }

// Enable resumes processing of contact input.
func (e *Engine) Enable() { e.enabled = true }

// Disable makes ContactsChanged ignore its input. A gesture in progress
// ends as if all contacts were lifted; running animations complete
// normally and Transform stays readable.
func (e *Engine) Disable() {
	if !e.enabled {
		return
	}
	e.enabled = false
	e.rec.abort()
}

// ContactsChanged feeds the full set of active contacts, in page space.
// Hosts call it on every raw touch start, move and end. Order matters only
// in that index 0 is the reference contact for drags and double-taps.
//
// Non-finite coordinates return ErrInvalidArgument and leave the engine
// unchanged. Input is ignored while the engine is disabled.
func (e *Engine) ContactsChanged(points []Point) error {
	if !e.enabled {
		return nil
	}
	if err := checkPoints("contacts changed", points); err != nil {
		e.stats.RejectedContacts++
		Logger().Warn("pinchzoom: rejected contacts", "error", err)
		return err
	}
	e.stats.ContactEvents++
	return e.rec.update(e.toLocal(points), e.clock.Now())
}

// toLocal copies points into viewport-local space.
func (e *Engine) toLocal(points []Point) []Point {
	origin := e.geom.ViewportOrigin()
	local := make([]Point, len(points))
	for i, p := range points {
		local[i] = p.Sub(origin)
	}
	return local
}

// FrameTick advances the engine to now, which must come from the same
// time base as the engine clock. Per tick it consumes at most one injected
// contact set, advances the animation, and fires EventUpdate once if the
// transform changed since the previous tick.
func (e *Engine) FrameTick(now float64) {
	e.stats.Frames++
	if e.runner != nil {
		e.runner.step(e)
	}
	e.processInjected()
	e.anim.Tick(now)
	if e.state.takeDirty() {
		e.stats.Updates++
		e.fire(EventUpdate, nil)
	}
}

// GeometryChanged tells the engine the viewport or content was resized.
// The next FrameTick fires EventUpdate so renderers pick up the new
// BaseScale.
func (e *Engine) GeometryChanged() {
	e.state.dirty = true
}

// Reset cancels any animation and returns to zoom 1, offset (0, 0).
func (e *Engine) Reset() {
	e.cancelAnimation()
	e.state.Reset()
}

// ZoomTo zooms to target around the viewport point center, animated with
// the configured duration or applied immediately. It returns
// ErrGestureActive while the user is interacting.
func (e *Engine) ZoomTo(target float64, center Point, animate bool) error {
	if !isFinite(target) || target <= 0 {
		return fmt.Errorf("pinchzoom: zoom target %v: %w", target, ErrInvalidArgument)
	}
	if err := checkPoints("zoom to", []Point{center}); err != nil {
		return err
	}
	if e.rec.mode != ModeNone {
		return ErrGestureActive
	}
	if !animate {
		e.cancelAnimation()
		e.state.ScaleTo(target, center)
		e.state.ClampOffset()
		return nil
	}
	e.animateZoom(e.state.Zoom(), target, center)
	return nil
}

// --- gestureListener ---

func (e *Engine) gestureStart(mode Mode, touches []Point) {
	e.cancelAnimation()
	Logger().Debug("pinchzoom: gesture start", "mode", mode, "contacts", len(touches))
	switch mode {
	case ModeZoom:
		e.fire(EventZoomStart, touches)
	case ModeDrag:
		e.fire(EventDragStart, touches)
	}
}

func (e *Engine) gestureEnd(mode Mode, touches []Point) {
	Logger().Debug("pinchzoom: gesture end", "mode", mode,
		"zoom", e.state.Zoom(), "offset", e.state.Offset())
	switch mode {
	case ModeZoom:
		e.fire(EventZoomEnd, touches)
	case ModeDrag:
		e.fire(EventDragEnd, touches)
	}
	e.sanitize()
}

func (e *Engine) doubleTap(touches []Point) {
	if e.rec.mode != ModeNone || len(touches) == 0 {
		return
	}
	start := e.state.Zoom()
	target := e.cfg.TapZoomFactor
	if start > 1 {
		target = 1
	}
	center := touches[0]
	if start > target {
		center = e.state.CurrentZoomCenter()
	}
	Logger().Debug("pinchzoom: double tap", "from", start, "to", target, "center", center)
	e.stats.DoubleTaps++
	e.animateZoom(start, target, center)
	e.fire(EventDoubleTap, touches)
}

// --- Animations ---

// sanitize runs after every gesture: a zoom below ZoomOutFactor animates
// back to 1, otherwise an offset outside the legal range snaps back.
func (e *Engine) sanitize() {
	zoom := e.state.Zoom()
	// At exactly 1 a zoom animation cannot move the offset, so a pan left
	// behind by the pinch snaps back instead.
	if zoom < e.cfg.ZoomOutFactor && zoom != 1 {
		e.animateZoom(zoom, 1, e.state.CurrentZoomCenter())
		return
	}
	from := e.state.Offset()
	if !e.state.IsOutOfBounds(from) {
		return
	}
	to := e.state.SanitizeOffset(from)
	e.startAnimation("snap back", AnimationJob{
		Duration: e.cfg.animationMillis(),
		Progress: func(p float64) {
			e.state.SetOffset(Point{lerp(from.X, to.X, p), lerp(from.Y, to.Y, p)})
		},
	})
}

// animateZoom interpolates the zoom linearly from start to target, eased
// with Swing. The offset is clamped once the target is reached.
func (e *Engine) animateZoom(start, target float64, center Point) {
	e.startAnimation("zoom", AnimationJob{
		Duration: e.cfg.animationMillis(),
		Progress: func(p float64) {
			e.state.ScaleTo(lerp(start, target, p), center)
		},
		OnComplete: e.state.ClampOffset,
	})
}

func (e *Engine) startAnimation(name string, job AnimationJob) {
	done := job.OnComplete
	job.OnComplete = func() {
		e.stats.AnimationsCompleted++
		Logger().Debug("pinchzoom: animation complete", "name", name)
		if done != nil {
			done()
		}
	}
	if e.anim.Active() {
		e.stats.AnimationsCancelled++
	}
	e.stats.AnimationsStarted++
	Logger().Debug("pinchzoom: animation start", "name", name, "duration_ms", job.Duration)
	e.anim.Start(job)
}

func (e *Engine) cancelAnimation() {
	if e.anim.Cancel() {
		e.stats.AnimationsCancelled++
		Logger().Debug("pinchzoom: animation cancelled")
	}
}

// lerp returns exactly b at p == 1.
func lerp(a, b, p float64) float64 {
	return a*(1-p) + b*p
}
