package pinchzoom

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- Transform ---

func TestTransformBaseScale(t *testing.T) {
	s := newTestState()
	tr := s.snapshot()
	assertNear(t, "BaseScale", tr.BaseScale, 0.5)
	assertNear(t, "Scale", tr.Scale(), 0.5)
}

func TestTransformBaseScaleZeroContent(t *testing.T) {
	s := NewTransformState(FixedGeometry{Viewport: Size{300, 300}}, 0.5, 4)
	assertNear(t, "BaseScale", s.snapshot().BaseScale, 1)
}

func TestTransformMatrix(t *testing.T) {
	tr := Transform{ZoomFactor: 2, OffsetX: 100, OffsetY: 50, BaseScale: 0.5}
	assertMatrix(t, "matrix", tr.Matrix(), [6]float64{1, 0, 0, 1, -100, -50})

	tr = Transform{ZoomFactor: 3, OffsetX: -10, OffsetY: 20, BaseScale: 2}
	assertMatrix(t, "matrix", tr.Matrix(), [6]float64{6, 0, 0, 6, 10, -20})
}

func TestContentToViewport(t *testing.T) {
	tests := []struct {
		name   string
		tr     Transform
		x, y   float64
		wx, wy float64
	}{
		{"fit", Transform{ZoomFactor: 1, BaseScale: 0.5}, 600, 600, 300, 300},
		{"zoomed", Transform{ZoomFactor: 2, OffsetX: 100, OffsetY: 50, BaseScale: 0.5}, 300, 300, 200, 250},
		{"zoomed out", Transform{ZoomFactor: 0.5, OffsetX: -75, OffsetY: -75, BaseScale: 0.5}, 0, 0, 75, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.tr.ContentToViewport(tt.x, tt.y)
			assertNear(t, "x", x, tt.wx)
			assertNear(t, "y", y, tt.wy)
		})
	}
}

func TestViewportToContentRoundtrip(t *testing.T) {
	tr := Transform{ZoomFactor: 2.7, OffsetX: 123.5, OffsetY: -40, BaseScale: 0.5}
	for _, p := range []Point{{0, 0}, {150, 150}, {299, 17}, {-20, 400}} {
		cx, cy := tr.ViewportToContent(p.X, p.Y)
		vx, vy := tr.ContentToViewport(cx, cy)
		assertNear(t, "x", vx, p.X)
		assertNear(t, "y", vy, p.Y)
	}
}

func TestViewportToContentZeroScale(t *testing.T) {
	tr := Transform{ZoomFactor: 2}
	x, y := tr.ViewportToContent(10, 20)
	assertNear(t, "x", x, 10)
	assertNear(t, "y", y, 20)
}

// --- multiplyAffine ---

func TestMultiplyAffineIdentity(t *testing.T) {
	id := identityTransform
	m := [6]float64{2, 1, 3, 4, 5, 6}
	assertMatrix(t, "id*m", multiplyAffine(id, m), m)
	assertMatrix(t, "m*id", multiplyAffine(m, id), m)
}

func TestMultiplyAffineTranslations(t *testing.T) {
	a := [6]float64{1, 0, 0, 1, 10, 20}
	b := [6]float64{1, 0, 0, 1, 5, 3}
	got := multiplyAffine(a, b)
	assertMatrix(t, "translations", got, [6]float64{1, 0, 0, 1, 15, 23})
}

// --- invertAffine ---

func TestInvertAffine(t *testing.T) {
	m := [6]float64{2, 0, 0, 3, 10, 20}
	inv := invertAffine(m)
	result := multiplyAffine(m, inv)
	assertMatrix(t, "m*inv=id", result, identityTransform)
}

func TestInvertAffineSingularReturnsIdentity(t *testing.T) {
	m := [6]float64{0, 0, 0, 0, 50, 100}
	inv := invertAffine(m)
	assertMatrix(t, "zero-scale→identity", inv, identityTransform)
}

func BenchmarkContentToViewport(b *testing.B) {
	tr := Transform{ZoomFactor: 2, OffsetX: 100, OffsetY: 50, BaseScale: 0.5}
	var x, y float64
	for i := 0; i < b.N; i++ {
		x, y = tr.ContentToViewport(float64(i), 42)
	}
	_, _ = x, y
}
