package viewport

// DragSession tracks one pointer drag.
//
// A press captures the pointer position and the box at that moment; every
// move while active computes the box from those two values, so intermediate
// moves never accumulate rounding. Moves outside a drag are ignored, and a
// release or pointer-leave always ends the drag.
type DragSession struct {
	Active   bool
	Start    Point
	StartBox ViewBox
}

// Press starts a drag at p with box as the starting view. A press while a drag
// is already active restarts it from the new point.
func (d *DragSession) Press(p Point, box ViewBox) {
	d.Active = true
	d.Start = p
	d.StartBox = box
}

// Move returns the box for the pointer at p on a surface of the given size.
// The second result is false when no drag is active.
func (d *DragSession) Move(p Point, screenW, screenH float64) (ViewBox, bool) {
	if !d.Active {
		return ViewBox{}, false
	}
	return Pan(d.StartBox, p.X-d.Start.X, p.Y-d.Start.Y, screenW, screenH), true
}

// Release ends the drag. It is safe to call without an active drag.
func (d *DragSession) Release() {
	*d = DragSession{}
}
