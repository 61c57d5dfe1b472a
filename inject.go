package pinchzoom

// InjectContacts queues a contact set in page coordinates. Queued sets are
// consumed one per FrameTick and processed exactly like ContactsChanged.
// An empty call queues "all contacts lifted".
func (e *Engine) InjectContacts(points ...Point) {
	e.injectQueue = append(e.injectQueue, append([]Point(nil), points...))
}

// InjectTap queues a single-contact press followed by a release at the
// given page coordinates. Consumes two frames.
func (e *Engine) InjectTap(x, y float64) {
	e.InjectContacts(Point{x, y})
	e.InjectContacts()
}

// InjectDoubleTap queues two taps at the same position. Consumes four
// frames, well inside the double-tap interval at any normal frame rate.
func (e *Engine) InjectDoubleTap(x, y float64) {
	e.InjectTap(x, y)
	e.InjectTap(x, y)
}

// InjectDrag queues a single-contact press at (fromX, fromY), moves
// linearly interpolated to (toX, toY) and a release. The first move lands
// on the press position so the gesture is classified before the contact
// travels. The sequence consumes frames frames, minimum 3.
func (e *Engine) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	e.InjectContacts(Point{fromX, fromY})
	moves := frames - 2
	for i := 0; i < moves; i++ {
		t := progressAt(i, moves)
		e.InjectContacts(Point{fromX + (toX-fromX)*t, fromY + (toY-fromY)*t})
	}
	e.InjectContacts()
}

// InjectPinch queues a two-contact pinch centered on (cx, cy). The contacts
// sit on a horizontal line and their distance moves linearly from fromDist
// to toDist. The contacts go down one after the other and lift together.
// The sequence consumes frames frames, minimum 4; the first three pinch
// frames after classification only seed the gesture.
func (e *Engine) InjectPinch(cx, cy, fromDist, toDist float64, frames int) {
	if frames < 4 {
		frames = 4
	}
	pair := func(dist float64) []Point {
		return []Point{{cx - dist/2, cy}, {cx + dist/2, cy}}
	}
	start := pair(fromDist)
	e.InjectContacts(start[0])
	e.InjectContacts(start...)
	moves := frames - 3
	for i := 0; i < moves; i++ {
		e.InjectContacts(pair(fromDist + (toDist-fromDist)*progressAt(i, moves))...)
	}
	e.InjectContacts()
}

// Pending returns the number of queued contact sets.
func (e *Engine) Pending() int {
	return len(e.injectQueue)
}

// progressAt spreads n samples over [0, 1] inclusive.
func progressAt(i, n int) float64 {
	if n <= 1 {
		return 1
	}
	return float64(i) / float64(n-1)
}

// processInjected pops one queued contact set and feeds it through
// ContactsChanged.
func (e *Engine) processInjected() {
	if len(e.injectQueue) == 0 {
		return
	}
	points := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue[len(e.injectQueue)-1] = nil
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	if err := e.ContactsChanged(points); err != nil {
		Logger().Warn("pinchzoom: injected contacts rejected", "error", err)
	}
}
