package pinchzoom

// Point is a 2D coordinate. Depending on the producer it is either in page
// space (raw host input) or viewport-local space (everything the engine
// hands back).
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Size is a width/height pair in pixels.
type Size struct {
	Width, Height float64
}

// Mode is the interaction the gesture recognizer is currently tracking.
// Modes are mutually exclusive.
type Mode uint8

const (
	ModeNone Mode = iota // no gesture in progress
	ModeDrag             // one contact panning zoomed content
	ModeZoom             // two contacts pinching
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case ModeDrag:
		return "drag"
	case ModeZoom:
		return "zoom"
	default:
		return "none"
	}
}

// EventType identifies a lifecycle notification.
type EventType uint8

const (
	EventZoomStart EventType = iota // fires when a pinch gesture begins
	EventZoomEnd                    // fires when a pinch gesture ends
	EventDragStart                  // fires when a single-contact pan begins
	EventDragEnd                    // fires when a single-contact pan ends
	EventDoubleTap                  // fires when a double-tap starts a zoom animation
	EventUpdate                     // fires once per frame when the transform changed

	eventTypeCount
)

// String returns the event name as used by scripts and the trace CLI.
func (t EventType) String() string {
	switch t {
	case EventZoomStart:
		return "zoomstart"
	case EventZoomEnd:
		return "zoomend"
	case EventDragStart:
		return "dragstart"
	case EventDragEnd:
		return "dragend"
	case EventDoubleTap:
		return "doubletap"
	case EventUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Event is delivered to handlers and to the EventSink.
type Event struct {
	Type EventType
	// Touches is the contact set that caused the event, in viewport-local
	// coordinates. Nil for events raised by programmatic animations.
	Touches []Point
	// Transform is the transform at the time the event fired.
	Transform Transform
}

// EventSink is the interface for optional event forwarding, e.g. into an
// ECS world. When set on an Engine, every event is also passed to EmitEvent
// after the registered handlers ran.
type EventSink interface {
	EmitEvent(event Event)
}
