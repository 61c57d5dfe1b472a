package pinchzoom

import "time"

// Clock supplies the engine's notion of "now" in milliseconds. Values
// passed to Engine.FrameTick must use the same time base.
type Clock interface {
	Now() float64
}

// wallClock reports milliseconds elapsed since it was created.
type wallClock struct {
	epoch time.Time
}

func newWallClock() wallClock {
	return wallClock{epoch: time.Now()}
}

func (c wallClock) Now() float64 {
	return float64(time.Since(c.epoch)) / float64(time.Millisecond)
}

// ManualClock is a Clock that only moves when told to. Used by scripts,
// the trace CLI and tests for deterministic replay.
type ManualClock struct {
	now float64
}

// Now returns the current time in milliseconds.
func (c *ManualClock) Now() float64 { return c.now }

// Advance moves the clock forward by ms milliseconds and returns the new time.
func (c *ManualClock) Advance(ms float64) float64 {
	c.now += ms
	return c.now
}

// Set moves the clock to ms.
func (c *ManualClock) Set(ms float64) { c.now = ms }
