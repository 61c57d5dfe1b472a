package pinchzoom

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidArgument is returned when a call receives input that breaks
	// its contract: an empty point set where at least one point is
	// required, or a non-finite coordinate. The engine state is left
	// unchanged.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidConfig is returned by Config.Validate and New.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrGestureActive is returned by programmatic zooms requested while
	// the user is dragging or pinching.
	ErrGestureActive = errors.New("gesture in progress")
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// checkPoints rejects non-finite coordinates.
func checkPoints(op string, points []Point) error {
	for i, p := range points {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return fmt.Errorf("pinchzoom: %s: point %d (%v, %v) is not finite: %w",
				op, i, p.X, p.Y, ErrInvalidArgument)
		}
	}
	return nil
}
