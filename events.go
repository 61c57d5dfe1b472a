package pinchzoom

// --- Handler registry ---

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	byType [eventTypeCount][]eventHandler
	nextID uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.byType[h.event] = s[:len(s)-1]
			return
		}
	}
}

func (r *handlerRegistry) add(t EventType, fn func(Event)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.byType[t] = append(r.byType[t], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: t}
}

// --- Engine-level registration ---

// On registers fn for events of type t. Unknown types are ignored and
// return a handle whose Remove is a no-op.
func (e *Engine) On(t EventType, fn func(Event)) CallbackHandle {
	if t >= eventTypeCount || fn == nil {
		return CallbackHandle{}
	}
	return e.handlers.add(t, fn)
}

// OnZoomStart registers a callback for the start of a pinch.
func (e *Engine) OnZoomStart(fn func(Event)) CallbackHandle { return e.On(EventZoomStart, fn) }

// OnZoomEnd registers a callback for the end of a pinch.
func (e *Engine) OnZoomEnd(fn func(Event)) CallbackHandle { return e.On(EventZoomEnd, fn) }

// OnDragStart registers a callback for the start of a single-contact pan.
func (e *Engine) OnDragStart(fn func(Event)) CallbackHandle { return e.On(EventDragStart, fn) }

// OnDragEnd registers a callback for the end of a single-contact pan.
func (e *Engine) OnDragEnd(fn func(Event)) CallbackHandle { return e.On(EventDragEnd, fn) }

// OnDoubleTap registers a callback for double-taps that start a zoom
// animation.
func (e *Engine) OnDoubleTap(fn func(Event)) CallbackHandle { return e.On(EventDoubleTap, fn) }

// OnUpdate registers a callback fired at most once per FrameTick when the
// transform changed. Renderers apply ev.Transform here.
func (e *Engine) OnUpdate(fn func(Event)) CallbackHandle { return e.On(EventUpdate, fn) }

// --- Event dispatch ---

func (e *Engine) fire(t EventType, touches []Point) {
	ev := Event{Type: t, Touches: touches, Transform: e.state.snapshot()}
	for _, h := range e.handlers.byType[t] {
		h.fn(ev)
	}
	if e.sink != nil {
		e.sink.EmitEvent(ev)
	}
}
