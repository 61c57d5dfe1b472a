package pinchzoom

import (
	"fmt"
	"math"
)

// Average returns the componentwise mean of points.
func Average(points []Point) (Point, error) {
	if len(points) == 0 {
		return Point{}, fmt.Errorf("pinchzoom: average of empty point set: %w", ErrInvalidArgument)
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{sx / n, sy / n}, nil
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// ScaleRatio returns how much the distance between the first two points of
// end grew relative to the first two points of start.
//
// A zero start distance is not an error: the result is +Inf or NaN and is
// clamped away by TransformState.ScaleBy.
func ScaleRatio(start, end []Point) (float64, error) {
	if len(start) < 2 || len(end) < 2 {
		return 0, fmt.Errorf("pinchzoom: scale ratio needs two points per pair, got %d and %d: %w",
			len(start), len(end), ErrInvalidArgument)
	}
	return Distance(end[0], end[1]) / Distance(start[0], start[1]), nil
}
