// Package ebitenzoom drives a pinchzoom.Engine from ebiten input and draws
// the zoomed content into a viewport rectangle of the screen.
//
// Call Surface.Update from ebiten.Game.Update and Surface.Draw from
// ebiten.Game.Draw:
//
//	surf, err := ebitenzoom.New(img, image.Rect(0, 0, 640, 480), ebitenzoom.Options{
//		EmulateMouse: true,
//	})
//	...
//	func (g *game) Update() error          { return g.surf.Update() }
//	func (g *game) Draw(screen *ebiten.Image) { g.surf.Draw(screen) }
package ebitenzoom

import (
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/pinchzoom"
)

// DefaultWheelZoomStep is the zoom multiplier applied per wheel notch.
const DefaultWheelZoomStep = 1.1

// Options configures a Surface.
type Options struct {
	// Config is passed to pinchzoom.New.
	Config pinchzoom.Config
	// EngineOptions are passed to pinchzoom.New after the surface's own.
	EngineOptions []pinchzoom.Option
	// EmulateMouse feeds the left mouse button as a single contact when no
	// touches are down.
	EmulateMouse bool
	// WheelZoomStep is the zoom multiplier per wheel notch. Zero selects
	// DefaultWheelZoomStep; a negative value disables wheel zoom.
	WheelZoomStep float64
}

// Surface owns one engine and the content image it transforms. It
// implements pinchzoom.Geometry from its viewport rectangle and content
// bounds.
type Surface struct {
	Engine *pinchzoom.Engine

	content     *ebiten.Image
	contentSize pinchzoom.Size
	viewport    image.Rectangle

	input        inputSource
	tracker      contactTracker
	last         []pinchzoom.Point
	emulateMouse bool
	wheelStep    float64
}

// New creates a surface showing content inside viewport, in screen pixels.
func New(content *ebiten.Image, viewport image.Rectangle, opts Options) (*Surface, error) {
	if content == nil {
		return nil, fmt.Errorf("ebitenzoom: nil content: %w", pinchzoom.ErrInvalidArgument)
	}
	if viewport.Empty() {
		return nil, fmt.Errorf("ebitenzoom: empty viewport %v: %w", viewport, pinchzoom.ErrInvalidArgument)
	}
	s := &Surface{
		viewport:     viewport,
		input:        ebitenInput{},
		emulateMouse: opts.EmulateMouse,
		wheelStep:    opts.WheelZoomStep,
	}
	if s.wheelStep == 0 {
		s.wheelStep = DefaultWheelZoomStep
	}
	s.setContent(content)

	e, err := pinchzoom.New(opts.Config, s, opts.EngineOptions...)
	if err != nil {
		return nil, fmt.Errorf("ebitenzoom: %w", err)
	}
	s.Engine = e
	return s, nil
}

// ViewportOrigin implements pinchzoom.Geometry.
func (s *Surface) ViewportOrigin() pinchzoom.Point {
	return pinchzoom.Point{X: float64(s.viewport.Min.X), Y: float64(s.viewport.Min.Y)}
}

// ViewportSize implements pinchzoom.Geometry.
func (s *Surface) ViewportSize() pinchzoom.Size {
	return pinchzoom.Size{Width: float64(s.viewport.Dx()), Height: float64(s.viewport.Dy())}
}

// ContentNativeSize implements pinchzoom.Geometry.
func (s *Surface) ContentNativeSize() pinchzoom.Size {
	return s.contentSize
}

// Viewport returns the screen rectangle the content is drawn into.
func (s *Surface) Viewport() image.Rectangle { return s.viewport }

// SetViewport moves or resizes the viewport, e.g. from ebiten.Game.Layout.
func (s *Surface) SetViewport(r image.Rectangle) {
	if r == s.viewport || r.Empty() {
		return
	}
	s.viewport = r
	s.Engine.GeometryChanged()
}

// SetContent replaces the content image.
func (s *Surface) SetContent(img *ebiten.Image) {
	if img == nil {
		return
	}
	s.setContent(img)
	s.Engine.GeometryChanged()
}

func (s *Surface) setContent(img *ebiten.Image) {
	s.content = img
	b := img.Bounds()
	s.contentSize = pinchzoom.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Update polls input, forwards changed contact sets to the engine and
// advances it by one frame.
func (s *Surface) Update() error {
	contacts := s.tracker.poll(s.input, s.viewport, s.emulateMouse)
	if !samePoints(contacts, s.last) {
		s.last = append(s.last[:0], contacts...)
		if err := s.Engine.ContactsChanged(s.last); err != nil {
			return fmt.Errorf("ebitenzoom: %w", err)
		}
	}
	s.applyWheel()
	s.Engine.FrameTick(s.Engine.Now())
	return nil
}

// applyWheel zooms around the cursor. Wheel input during a gesture is
// dropped.
func (s *Surface) applyWheel() {
	if s.wheelStep <= 0 {
		return
	}
	_, dy := s.input.Wheel()
	if dy == 0 {
		return
	}
	mx, my := s.input.CursorPosition()
	if !image.Pt(mx, my).In(s.viewport) {
		return
	}
	target := s.Engine.Transform().ZoomFactor * math.Pow(s.wheelStep, dy)
	center := pinchzoom.Point{X: float64(mx - s.viewport.Min.X), Y: float64(my - s.viewport.Min.Y)}
	if err := s.Engine.ZoomTo(target, center, false); err != nil {
		pinchzoom.Logger().Debug("ebitenzoom: wheel zoom dropped", "error", err)
	}
}

// GeoM converts a transform into the matrix that draws native content into
// viewport-local space.
func GeoM(t pinchzoom.Transform) ebiten.GeoM {
	var g ebiten.GeoM
	s := t.Scale()
	g.Scale(s, s)
	g.Translate(-t.OffsetX, -t.OffsetY)
	return g
}

// drawOptions builds the options Draw uses. Moving content is drawn with
// nearest filtering; linear filtering kicks in once the engine is idle.
func (s *Surface) drawOptions() *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	op.GeoM = GeoM(s.Engine.Transform())
	op.GeoM.Translate(float64(s.viewport.Min.X), float64(s.viewport.Min.Y))
	if s.Engine.Idle() {
		op.Filter = ebiten.FilterLinear
	} else {
		op.Filter = ebiten.FilterNearest
	}
	return op
}

// Draw renders the content into the viewport rectangle of dst.
func (s *Surface) Draw(dst *ebiten.Image) {
	sub, ok := dst.SubImage(s.viewport).(*ebiten.Image)
	if !ok {
		return
	}
	sub.DrawImage(s.content, s.drawOptions())
}

// ScreenToContent maps a screen position to native content pixels.
func (s *Surface) ScreenToContent(x, y int) (float64, float64) {
	return s.Engine.Transform().ViewportToContent(
		float64(x-s.viewport.Min.X), float64(y-s.viewport.Min.Y))
}

// DebugText describes the surface state on a few lines.
func (s *Surface) DebugText() string {
	t := s.Engine.Transform()
	return fmt.Sprintf("zoom: %.3f\noffset: %.1f, %.1f\nmode: %s\nTPS: %.1f",
		t.ZoomFactor, t.OffsetX, t.OffsetY, s.Engine.Mode(), ebiten.ActualTPS())
}

// DrawDebug prints DebugText in the top-left corner of the viewport.
func (s *Surface) DrawDebug(dst *ebiten.Image) {
	ebitenutil.DebugPrintAt(dst, s.DebugText(), s.viewport.Min.X+4, s.viewport.Min.Y+4)
}
