package pinchzoom

import "math"

// Geometry reports the current layout of a surface. The engine polls it on
// every bounds computation so hosts never have to push size changes.
type Geometry interface {
	// ViewportOrigin is the page-space position of the viewport's top-left
	// corner. Raw contacts are made viewport-local by subtracting it.
	ViewportOrigin() Point
	// ViewportSize is the fixed window through which content is shown.
	ViewportSize() Size
	// ContentNativeSize is the unscaled size of the content element.
	ContentNativeSize() Size
}

// FixedGeometry is a Geometry with constant values.
type FixedGeometry struct {
	Origin   Point
	Viewport Size
	Content  Size
}

func (g FixedGeometry) ViewportOrigin() Point   { return g.Origin }
func (g FixedGeometry) ViewportSize() Size      { return g.Viewport }
func (g FixedGeometry) ContentNativeSize() Size { return g.Content }

// TransformState owns the zoom factor and offset of one surface. Every
// mutation keeps MinZoom <= zoom <= MaxZoom. The offset may transiently
// leave the SanitizeOffset rectangle during a pinch; callers restore it.
type TransformState struct {
	zoom    float64
	offset  Point
	minZoom float64
	maxZoom float64
	geom    Geometry

	dirty bool
}

// NewTransformState creates a state at zoom 1, offset (0, 0).
func NewTransformState(geom Geometry, minZoom, maxZoom float64) *TransformState {
	return &TransformState{
		zoom:    1,
		minZoom: minZoom,
		maxZoom: maxZoom,
		geom:    geom,
		dirty:   true,
	}
}

// Zoom returns the current zoom factor.
func (s *TransformState) Zoom() float64 { return s.zoom }

// Offset returns the current offset in viewport pixels.
func (s *TransformState) Offset() Point { return s.offset }

// SetOffset replaces the offset without clamping.
func (s *TransformState) SetOffset(o Point) {
	if o != s.offset {
		s.offset = o
		s.dirty = true
	}
}

// Reset returns to zoom 1, offset (0, 0).
func (s *TransformState) Reset() {
	if s.zoom != 1 || s.offset != (Point{}) {
		s.zoom = 1
		s.offset = Point{}
		s.dirty = true
	}
}

// CanDrag reports whether the content is zoomed far enough from 1 for a
// single contact to pan it. Values within 0.01 of 1 count as not zoomed.
func (s *TransformState) CanDrag() bool {
	return !(s.zoom > 0.99 && s.zoom < 1.01)
}

// ScaleBy multiplies the zoom factor by rawScale, keeping the viewport
// point center fixed. The zoom is clamped first and the offset is derived
// from the scale that was actually applied.
//
// A NaN rawScale leaves the zoom unchanged; +Inf and 0 clamp to the bounds.
func (s *TransformState) ScaleBy(rawScale float64, center Point) {
	s.applyZoom(s.clampZoom(s.zoom*rawScale), center)
}

// ScaleTo zooms to target around center. The clamped target is set
// exactly, which is equivalent to ScaleBy(target/zoom, center) without the
// rounding error.
func (s *TransformState) ScaleTo(target float64, center Point) {
	s.applyZoom(s.clampZoom(target), center)
}

func (s *TransformState) clampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return s.zoom
	}
	return math.Max(s.minZoom, math.Min(z, s.maxZoom))
}

func (s *TransformState) applyZoom(z float64, center Point) {
	scale := z / s.zoom
	if scale == 1 {
		return
	}
	s.zoom = z
	s.offset.X += (scale - 1) * (center.X + s.offset.X)
	s.offset.Y += (scale - 1) * (center.Y + s.offset.Y)
	s.dirty = true
}

// TranslateBy adds delta to the offset without clamping.
func (s *TransformState) TranslateBy(delta Point) {
	if delta.X == 0 && delta.Y == 0 {
		return
	}
	s.offset = s.offset.Add(delta)
	s.dirty = true
}

// offsetBounds returns the legal offset rectangle for the current zoom.
func (s *TransformState) offsetBounds() (minX, maxX, minY, maxY float64) {
	vp := s.geom.ViewportSize()
	spanX := (s.zoom - 1) * vp.Width
	spanY := (s.zoom - 1) * vp.Height
	return math.Min(0, spanX), math.Max(0, spanX), math.Min(0, spanY), math.Max(0, spanY)
}

// SanitizeOffset clamps o into the legal range for the current zoom. At
// zoom 1 the range collapses to (0, 0).
func (s *TransformState) SanitizeOffset(o Point) Point {
	minX, maxX, minY, maxY := s.offsetBounds()
	return Point{
		X: math.Min(math.Max(o.X, minX), maxX),
		Y: math.Min(math.Max(o.Y, minY), maxY),
	}
}

// ClampOffset sanitizes the current offset in place.
func (s *TransformState) ClampOffset() {
	s.SetOffset(s.SanitizeOffset(s.offset))
}

// IsOutOfBounds reports whether SanitizeOffset would change o.
func (s *TransformState) IsOutOfBounds(o Point) bool {
	return s.SanitizeOffset(o) != o
}

// CurrentZoomCenter recovers the viewport point a zoom back to 1 should be
// anchored at so that the offset converges to (0, 0).
//
// Per axis it solves offsetNear / offsetFar = center / (extent - center),
// where offsetFar is the hidden content beyond the far viewport edge.
func (s *TransformState) CurrentZoomCenter() Point {
	vp := s.geom.ViewportSize()
	return Point{
		X: zoomCenterAxis(s.offset.X, vp.Width, s.zoom),
		Y: zoomCenterAxis(s.offset.Y, vp.Height, s.zoom),
	}
}

func zoomCenterAxis(near, extent, zoom float64) float64 {
	far := extent*zoom - near - extent
	if far == 0 {
		return extent
	}
	ratio := near / far
	if ratio+1 == 0 {
		// zoom 1 with a non-zero offset: every anchor is equivalent.
		return extent / 2
	}
	return ratio * extent / (ratio + 1)
}

// takeDirty reports whether the state changed since the last call and
// clears the flag.
func (s *TransformState) takeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}
