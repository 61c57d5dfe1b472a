package pinchzoom

import "fmt"

// Stats holds running counters for one engine. Useful for debugging hosts
// that feed input at the wrong rate or never tick frames.
type Stats struct {
	Frames              int // FrameTick calls
	ContactEvents       int // accepted ContactsChanged calls
	RejectedContacts    int // ContactsChanged calls failing validation
	GestureFrames       int // drag and pinch frames applied to the transform
	Updates             int // EventUpdate notifications
	AnimationsStarted   int
	AnimationsCancelled int
	AnimationsCompleted int
	DoubleTaps          int
}

// Stats returns a copy of the engine's counters.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.GestureFrames = e.rec.gestureFrames
	return s
}

// String formats the counters on one line.
func (s Stats) String() string {
	return fmt.Sprintf("frames: %d | contacts: %d (rejected %d) | gesture frames: %d | updates: %d | "+
		"animations: %d started, %d cancelled, %d completed | double taps: %d",
		s.Frames, s.ContactEvents, s.RejectedContacts, s.GestureFrames, s.Updates,
		s.AnimationsStarted, s.AnimationsCancelled, s.AnimationsCompleted, s.DoubleTaps)
}

// LogStats writes the counters to the package logger at debug level.
func (e *Engine) LogStats() {
	s := e.Stats()
	Logger().Debug("pinchzoom: stats",
		"frames", s.Frames,
		"contacts", s.ContactEvents,
		"rejected", s.RejectedContacts,
		"gesture_frames", s.GestureFrames,
		"updates", s.Updates,
		"animations_started", s.AnimationsStarted,
		"animations_cancelled", s.AnimationsCancelled,
		"animations_completed", s.AnimationsCompleted,
		"double_taps", s.DoubleTaps,
	)
}
