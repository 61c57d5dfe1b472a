package pinchzoom

import (
	"fmt"
	"math"
)

const (
	doubleTapInterval = 300.0 // ms between two single-contact starts
	zoomSeedFrames    = 3     // pinch frames used only to seed the reference scale
)

// gestureListener receives lifecycle transitions from the recognizer.
// Engine implements it.
type gestureListener interface {
	gestureStart(mode Mode, touches []Point)
	gestureEnd(mode Mode, touches []Point)
	doubleTap(touches []Point)
}

// gestureRecognizer turns successive contact sets into interaction modes
// and feeds the resulting scale and pan deltas into a TransformState.
type gestureRecognizer struct {
	state    *TransformState
	listener gestureListener
	lockAxis bool

	mode      Mode
	fingers   int
	firstMove bool

	lastTapStart float64
	hasLastTap   bool

	// Pinch state.
	startTouches   []Point
	lastScale      float64
	nthZoom        int
	lastZoomCenter Point

	// Drag state.
	lastDrag    Point
	hasLastDrag bool

	gestureFrames int
}

func newGestureRecognizer(state *TransformState, listener gestureListener, lockAxis bool) *gestureRecognizer {
	return &gestureRecognizer{
		state:     state,
		listener:  listener,
		lockAxis:  lockAxis,
		lastScale: 1,
	}
}

// update consumes the full set of active contacts at time now. The change
// in contact count tells a touch start, a touch end and a move apart.
func (r *gestureRecognizer) update(touches []Point, now float64) error {
	n := len(touches)
	switch {
	case n > r.fingers:
		r.fingers = n
		r.firstMove = true
		r.detectDoubleTap(touches, now)
	case n < r.fingers:
		r.fingers = n
		return r.classify(touches)
	case n > 0:
		var err error
		if r.firstMove {
			err = r.classify(touches)
		} else {
			err = r.move(touches)
		}
		r.firstMove = false
		return err
	}
	return nil
}

// classify derives the mode from the contact count alone.
func (r *gestureRecognizer) classify(touches []Point) error {
	next := ModeNone
	switch {
	case len(touches) == 2:
		next = ModeZoom
	case len(touches) == 1 && r.state.CanDrag():
		next = ModeDrag
	}
	return r.setMode(next, touches)
}

// setMode switches modes. Drag and Zoom never hand over directly: the old
// mode ends (None) before the new one starts.
func (r *gestureRecognizer) setMode(next Mode, touches []Point) error {
	if next == r.mode {
		return nil
	}
	if r.mode != ModeNone {
		prev := r.mode
		r.mode = ModeNone
		r.listener.gestureEnd(prev, touches)
	}
	if next == ModeNone {
		return nil
	}

	r.mode = next
	r.listener.gestureStart(next, touches)
	switch next {
	case ModeZoom:
		r.startTouches = append(r.startTouches[:0], touches...)
		r.lastScale = 1
		r.nthZoom = 0
	case ModeDrag:
		r.hasLastDrag = false
		r.drag(touches[0])
	}
	return nil
}

func (r *gestureRecognizer) move(touches []Point) error {
	switch r.mode {
	case ModeZoom:
		scale, err := ScaleRatio(r.startTouches, touches)
		if err != nil {
			return err
		}
		return r.zoom(touches, scale)
	case ModeDrag:
		if len(touches) == 0 {
			return fmt.Errorf("pinchzoom: drag frame without contacts: %w", ErrInvalidArgument)
		}
		r.gestureFrames++
		r.drag(touches[0])
	}
	return nil
}

// zoom applies one pinch frame. newScale is relative to the pinch start;
// the state is scaled by the change since the previous frame. The first
// frames are noisy and only seed the reference values.
func (r *gestureRecognizer) zoom(touches []Point, newScale float64) error {
	center, err := Average(touches)
	if err != nil {
		return err
	}
	scale := newScale / r.lastScale
	r.lastScale = newScale

	r.nthZoom++
	if r.nthZoom > zoomSeedFrames {
		r.gestureFrames++
		r.state.ScaleBy(scale, center)
		r.pan(center, r.lastZoomCenter)
	}
	r.lastZoomCenter = center
	return nil
}

// drag pans by the contact's movement and clamps immediately. Nothing
// happens unless the content is zoomed in.
func (r *gestureRecognizer) drag(touch Point) {
	if r.state.Zoom() <= 1 {
		return
	}
	if r.hasLastDrag {
		r.pan(touch, r.lastDrag)
	}
	r.state.ClampOffset()
	r.lastDrag = touch
	r.hasLastDrag = true
}

// pan moves the content along with the contact: moving right scrolls the
// offset left.
func (r *gestureRecognizer) pan(center, last Point) {
	dx := center.X - last.X
	dy := center.Y - last.Y
	if r.lockAxis {
		if math.Abs(dx) > math.Abs(dy) {
			dy = 0
		} else {
			dx = 0
		}
	}
	r.state.TranslateBy(Point{-dx, -dy})
}

// detectDoubleTap fires when a single-contact start follows the previous
// one within doubleTapInterval. Any multi-contact start resets the timer
// so a pinch is never taken for a tap.
func (r *gestureRecognizer) detectDoubleTap(touches []Point, now float64) {
	if r.fingers > 1 {
		r.hasLastTap = false
	}
	if r.hasLastTap && now-r.lastTapStart < doubleTapInterval {
		r.listener.doubleTap(touches)
	}
	if r.fingers == 1 {
		r.lastTapStart = now
		r.hasLastTap = true
	}
}

// abort ends any gesture in progress and forgets the contacts and the
// pending tap, since contacts still down are seen as new on resume.
func (r *gestureRecognizer) abort() {
	r.fingers = 0
	r.firstMove = false
	r.hasLastTap = false
	_ = r.setMode(ModeNone, nil)
}
