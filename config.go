package pinchzoom

import (
	"fmt"
	"time"
)

// Default gesture parameters.
const (
	DefaultTapZoomFactor     = 2.0
	DefaultZoomOutFactor     = 1.3
	DefaultAnimationDuration = 300 * time.Millisecond
	DefaultMaxZoom           = 4.0
	DefaultMinZoom           = 0.5
)

// Config holds the per-surface gesture parameters. It is read once by New
// and never mutated afterwards.
type Config struct {
	// TapZoomFactor is the zoom a double-tap animates to when not zoomed in.
	TapZoomFactor float64
	// ZoomOutFactor is the threshold below which releasing a gesture
	// animates back to zoom 1.
	ZoomOutFactor float64
	// AnimationDuration is the length of every programmatic animation.
	AnimationDuration time.Duration
	// MaxZoom and MinZoom bound the zoom factor.
	MaxZoom float64
	MinZoom float64
	// LockDragAxis restricts each pan step to the axis with the larger
	// movement.
	LockDragAxis bool
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		TapZoomFactor:     DefaultTapZoomFactor,
		ZoomOutFactor:     DefaultZoomOutFactor,
		AnimationDuration: DefaultAnimationDuration,
		MaxZoom:           DefaultMaxZoom,
		MinZoom:           DefaultMinZoom,
	}
}

// withDefaults fills zero-valued numeric fields with their defaults.
func (c Config) withDefaults() Config {
	if c.TapZoomFactor == 0 {
		c.TapZoomFactor = DefaultTapZoomFactor
	}
	if c.ZoomOutFactor == 0 {
		c.ZoomOutFactor = DefaultZoomOutFactor
	}
	if c.AnimationDuration == 0 {
		c.AnimationDuration = DefaultAnimationDuration
	}
	if c.MaxZoom == 0 {
		c.MaxZoom = DefaultMaxZoom
	}
	if c.MinZoom == 0 {
		c.MinZoom = DefaultMinZoom
	}
	return c
}

// Validate reports whether the config can drive an engine.
func (c Config) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"TapZoomFactor", c.TapZoomFactor},
		{"ZoomOutFactor", c.ZoomOutFactor},
		{"MaxZoom", c.MaxZoom},
		{"MinZoom", c.MinZoom},
	}
	for _, f := range fields {
		if !isFinite(f.v) || f.v <= 0 {
			return fmt.Errorf("pinchzoom: %s must be a positive finite number, got %v: %w",
				f.name, f.v, ErrInvalidConfig)
		}
	}
	if c.MinZoom > c.MaxZoom {
		return fmt.Errorf("pinchzoom: MinZoom %v exceeds MaxZoom %v: %w", c.MinZoom, c.MaxZoom, ErrInvalidConfig)
	}
	if c.AnimationDuration < 0 {
		return fmt.Errorf("pinchzoom: negative AnimationDuration %v: %w", c.AnimationDuration, ErrInvalidConfig)
	}
	return nil
}

// animationMillis returns AnimationDuration in the engine's millisecond
// time base.
func (c Config) animationMillis() float64 {
	return float64(c.AnimationDuration) / float64(time.Millisecond)
}
