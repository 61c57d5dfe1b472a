package pinchzoom

import "log/slog"

// Transform is a read-only snapshot of a surface's view transform.
type Transform struct {
	// ZoomFactor is the magnification relative to fit-to-viewport (1 = fit).
	ZoomFactor float64
	// OffsetX and OffsetY are the viewport-pixel translation of the zoomed
	// content's top-left origin.
	OffsetX, OffsetY float64
	// BaseScale maps native content pixels to fit-to-viewport pixels.
	BaseScale float64
}

// Scale returns the total content-to-viewport scale.
func (t Transform) Scale() float64 {
	return t.BaseScale * t.ZoomFactor
}

// Matrix returns the content-to-viewport affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// A native content point p lands at Scale()*p - offset.
func (t Transform) Matrix() [6]float64 {
	s := t.Scale()
	return multiplyAffine(
		[6]float64{1, 0, 0, 1, -t.OffsetX, -t.OffsetY},
		[6]float64{s, 0, 0, s, 0, 0},
	)
}

// ContentToViewport maps a native content point into viewport-local space.
func (t Transform) ContentToViewport(x, y float64) (float64, float64) {
	return transformPoint(t.Matrix(), x, y)
}

// ViewportToContent maps a viewport-local point back into native content
// space. A degenerate scale maps through the identity.
func (t Transform) ViewportToContent(x, y float64) (float64, float64) {
	return transformPoint(invertAffine(t.Matrix()), x, y)
}

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// snapshot builds the Transform for the current state.
func (s *TransformState) snapshot() Transform {
	base := 1.0
	if cw := s.geom.ContentNativeSize().Width; cw > 0 {
		base = s.geom.ViewportSize().Width / cw
	}
	return Transform{
		ZoomFactor: s.zoom,
		OffsetX:    s.offset.X,
		OffsetY:    s.offset.Y,
		BaseScale:  base,
	}
}

// LogValue logs a Transform as a group.
func (t Transform) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("zoom", t.ZoomFactor),
		slog.Float64("offset_x", t.OffsetX),
		slog.Float64("offset_y", t.OffsetY),
	)
}
