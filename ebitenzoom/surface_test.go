package ebitenzoom

import (
	"image"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/pinchzoom"
)

type fakeInput struct {
	order   []ebiten.TouchID
	touches map[ebiten.TouchID]image.Point
	cursor  image.Point
	pressed bool
	wheelY  float64
}

func newFakeInput() *fakeInput {
	return &fakeInput{touches: map[ebiten.TouchID]image.Point{}}
}

func (f *fakeInput) touch(id ebiten.TouchID, x, y int) {
	if _, ok := f.touches[id]; !ok {
		f.order = append(f.order, id)
	}
	f.touches[id] = image.Pt(x, y)
}

func (f *fakeInput) release(id ebiten.TouchID) {
	delete(f.touches, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

func (f *fakeInput) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return append(ids, f.order...)
}

func (f *fakeInput) TouchPosition(id ebiten.TouchID) (int, int) {
	p := f.touches[id]
	return p.X, p.Y
}

func (f *fakeInput) CursorPosition() (int, int) { return f.cursor.X, f.cursor.Y }
func (f *fakeInput) MousePressed() bool         { return f.pressed }
func (f *fakeInput) Wheel() (float64, float64) {
	y := f.wheelY
	f.wheelY = 0
	return 0, y
}

func newTestSurface(t *testing.T, in *fakeInput) *Surface {
	t.Helper()
	s := &Surface{
		viewport:     image.Rect(10, 20, 310, 320),
		contentSize:  pinchzoom.Size{Width: 600, Height: 600},
		input:        in,
		emulateMouse: true,
		wheelStep:    DefaultWheelZoomStep,
	}
	e, err := pinchzoom.New(pinchzoom.Config{}, s, pinchzoom.WithClock(&pinchzoom.ManualClock{}))
	if err != nil {
		t.Fatalf("pinchzoom.New: %v", err)
	}
	s.Engine = e
	return s
}

func TestSurfaceGeometry(t *testing.T) {
	s := newTestSurface(t, newFakeInput())
	if got := s.ViewportOrigin(); got != (pinchzoom.Point{X: 10, Y: 20}) {
		t.Errorf("ViewportOrigin = %v", got)
	}
	if got := s.ViewportSize(); got != (pinchzoom.Size{Width: 300, Height: 300}) {
		t.Errorf("ViewportSize = %v", got)
	}
	if got := s.Engine.Transform().BaseScale; got != 0.5 {
		t.Errorf("BaseScale = %v, want 0.5", got)
	}
}

func TestSetViewportFiresUpdate(t *testing.T) {
	s := newTestSurface(t, newFakeInput())
	updates := 0
	s.Engine.OnUpdate(func(pinchzoom.Event) { updates++ })
	_ = s.Update()
	s.SetViewport(image.Rect(0, 0, 600, 600))
	_ = s.Update()
	if updates != 2 {
		t.Errorf("updates = %d, want 2", updates)
	}
	if got := s.Engine.Transform().BaseScale; got != 1 {
		t.Errorf("BaseScale after resize = %v, want 1", got)
	}
}

func TestTrackerKeepsSlotOrder(t *testing.T) {
	in := newFakeInput()
	var c contactTracker
	bounds := image.Rect(0, 0, 100, 100)

	in.touch(1, 10, 10)
	in.touch(2, 20, 20)
	got := c.poll(in, bounds, false)
	if len(got) != 2 || got[0].X != 10 {
		t.Fatalf("contacts = %v", got)
	}

	// The platform reorders IDs; the tracker does not.
	in.order = []ebiten.TouchID{2, 1}
	got = c.poll(in, bounds, false)
	if got[0].X != 10 || got[1].X != 20 {
		t.Errorf("reordered contacts = %v, want touch 1 first", got)
	}

	in.release(1)
	in.touch(3, 30, 30)
	got = c.poll(in, bounds, false)
	if len(got) != 2 || got[0].X != 20 || got[1].X != 30 {
		t.Errorf("contacts = %v, want [touch 2, touch 3]", got)
	}
}

func TestTrackerMouseEmulation(t *testing.T) {
	in := newFakeInput()
	var c contactTracker
	bounds := image.Rect(0, 0, 100, 100)

	in.pressed = true
	in.cursor = image.Pt(150, 50)
	if got := c.poll(in, bounds, true); len(got) != 0 {
		t.Errorf("press outside bounds = %v, want none", got)
	}

	in.pressed = false
	c.poll(in, bounds, true)
	in.pressed = true
	in.cursor = image.Pt(50, 50)
	if got := c.poll(in, bounds, true); len(got) != 1 {
		t.Fatalf("press inside bounds = %v, want one contact", got)
	}

	// Once down, the mouse is tracked outside the viewport.
	in.cursor = image.Pt(150, 50)
	if got := c.poll(in, bounds, true); len(got) != 1 || got[0].X != 150 {
		t.Errorf("drag outside = %v, want contact at 150", got)
	}

	if got := c.poll(in, bounds, false); len(got) != 0 {
		t.Errorf("emulation off = %v, want none", got)
	}
}

func TestTrackerTouchWinsOverMouse(t *testing.T) {
	in := newFakeInput()
	var c contactTracker
	in.pressed = true
	in.cursor = image.Pt(50, 50)
	in.touch(7, 5, 5)
	got := c.poll(in, image.Rect(0, 0, 100, 100), true)
	if len(got) != 1 || got[0].X != 5 {
		t.Errorf("contacts = %v, want only the touch", got)
	}
}

func TestUpdateForwardsChangesOnly(t *testing.T) {
	in := newFakeInput()
	s := newTestSurface(t, in)
	in.touch(1, 100, 100)
	_ = s.Update()
	_ = s.Update()
	_ = s.Update()
	if got := s.Engine.Stats().ContactEvents; got != 1 {
		t.Errorf("ContactEvents = %d, want 1", got)
	}
	in.touch(1, 110, 100)
	_ = s.Update()
	in.release(1)
	_ = s.Update()
	if got := s.Engine.Stats().ContactEvents; got != 3 {
		t.Errorf("ContactEvents = %d, want 3", got)
	}
	if got := s.Engine.Stats().Frames; got != 5 {
		t.Errorf("Frames = %d, want 5", got)
	}
}

func TestUpdatePinch(t *testing.T) {
	in := newFakeInput()
	s := newTestSurface(t, in)
	// Viewport-local center (150, 150) is screen (160, 170).
	in.touch(1, 110, 170)
	_ = s.Update()
	in.touch(2, 210, 170)
	_ = s.Update()
	// Unchanged polls are not forwarded, so every frame here moves.
	for _, d := range []int{55, 60, 70, 80, 100} {
		in.touch(1, 160-d, 170)
		in.touch(2, 160+d, 170)
		_ = s.Update()
	}
	tr := s.Engine.Transform()
	if math.Abs(tr.ZoomFactor-1.25) > 1e-9 {
		t.Errorf("zoom = %v, want 1.25", tr.ZoomFactor)
	}
	if math.Abs(tr.OffsetX-37.5) > 1e-9 || math.Abs(tr.OffsetY-37.5) > 1e-9 {
		t.Errorf("offset = (%v,%v), want (37.5,37.5)", tr.OffsetX, tr.OffsetY)
	}
}

func TestWheelZoom(t *testing.T) {
	in := newFakeInput()
	s := newTestSurface(t, in)
	in.cursor = image.Pt(160, 170)
	in.wheelY = 1
	_ = s.Update()
	tr := s.Engine.Transform()
	if math.Abs(tr.ZoomFactor-DefaultWheelZoomStep) > 1e-9 {
		t.Errorf("zoom = %v, want %v", tr.ZoomFactor, DefaultWheelZoomStep)
	}
	if math.Abs(tr.OffsetX-(DefaultWheelZoomStep-1)*150) > 1e-9 {
		t.Errorf("offset x = %v", tr.OffsetX)
	}

	in.cursor = image.Pt(0, 0)
	in.wheelY = 3
	_ = s.Update()
	if z := s.Engine.Transform().ZoomFactor; z != tr.ZoomFactor {
		t.Errorf("wheel outside viewport changed zoom to %v", z)
	}
}

func TestGeoMMatchesTransform(t *testing.T) {
	tr := pinchzoom.Transform{ZoomFactor: 2.5, OffsetX: 40, OffsetY: -12, BaseScale: 0.5}
	g := GeoM(tr)
	for _, p := range [][2]float64{{0, 0}, {600, 600}, {123, 45}} {
		gx, gy := g.Apply(p[0], p[1])
		wx, wy := tr.ContentToViewport(p[0], p[1])
		if math.Abs(gx-wx) > 1e-9 || math.Abs(gy-wy) > 1e-9 {
			t.Errorf("GeoM(%v) = (%v,%v), want (%v,%v)", p, gx, gy, wx, wy)
		}
	}
}

func TestDrawOptions(t *testing.T) {
	s := newTestSurface(t, newFakeInput())
	op := s.drawOptions()
	if op.Filter != ebiten.FilterLinear {
		t.Errorf("idle filter = %v, want linear", op.Filter)
	}
	x, y := op.GeoM.Apply(0, 0)
	if x != 10 || y != 20 {
		t.Errorf("content origin drawn at (%v,%v), want viewport origin (10,20)", x, y)
	}

	_ = s.Engine.ZoomTo(2, pinchzoom.Point{}, true)
	if op := s.drawOptions(); op.Filter != ebiten.FilterNearest {
		t.Errorf("animating filter = %v, want nearest", op.Filter)
	}
}

func TestScreenToContent(t *testing.T) {
	s := newTestSurface(t, newFakeInput())
	x, y := s.ScreenToContent(160, 170)
	if math.Abs(x-300) > 1e-9 || math.Abs(y-300) > 1e-9 {
		t.Errorf("ScreenToContent = (%v,%v), want (300,300)", x, y)
	}
}
