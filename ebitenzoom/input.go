package ebitenzoom

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/pinchzoom"
)

// inputSource is the slice of ebiten's polling API the surface reads. Tests
// substitute a fake.
type inputSource interface {
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (int, int)
	CursorPosition() (int, int)
	MousePressed() bool
	Wheel() (float64, float64)
}

// ebitenInput reads the real ebiten input state.
type ebitenInput struct{}

func (ebitenInput) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenInput) TouchPosition(id ebiten.TouchID) (int, int) {
	return ebiten.TouchPosition(id)
}

func (ebitenInput) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenInput) MousePressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (ebitenInput) Wheel() (float64, float64) {
	return ebiten.Wheel()
}

// contactTracker turns polled touch IDs into an ordered contact list. IDs
// keep the slot they were first seen in, so index 0 stays the reference
// contact while it is down.
type contactTracker struct {
	slots    []ebiten.TouchID
	scratch  []ebiten.TouchID
	contacts []pinchzoom.Point

	mouseDown bool
}

// poll reads the current contacts from src. Touches win over the mouse; the
// mouse only counts as a contact when its press started inside bounds.
func (c *contactTracker) poll(src inputSource, bounds image.Rectangle, emulateMouse bool) []pinchzoom.Point {
	c.scratch = src.AppendTouchIDs(c.scratch[:0])

	// Drop released IDs, keeping the order of the survivors.
	kept := c.slots[:0]
	for _, id := range c.slots {
		if containsID(c.scratch, id) {
			kept = append(kept, id)
		}
	}
	c.slots = kept
	for _, id := range c.scratch {
		if !containsID(c.slots, id) {
			c.slots = append(c.slots, id)
		}
	}

	c.contacts = c.contacts[:0]
	for _, id := range c.slots {
		x, y := src.TouchPosition(id)
		c.contacts = append(c.contacts, pinchzoom.Point{X: float64(x), Y: float64(y)})
	}
	if len(c.contacts) > 0 {
		c.mouseDown = false
		return c.contacts
	}

	if !emulateMouse {
		return c.contacts
	}
	mx, my := src.CursorPosition()
	pressed := src.MousePressed()
	switch {
	case !pressed:
		c.mouseDown = false
	case !c.mouseDown && image.Pt(mx, my).In(bounds):
		c.mouseDown = true
	}
	if c.mouseDown {
		c.contacts = append(c.contacts, pinchzoom.Point{X: float64(mx), Y: float64(my)})
	}
	return c.contacts
}

func containsID(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func samePoints(a, b []pinchzoom.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
