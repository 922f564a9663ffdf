package viewport

import "math"

// Zoom factors applied by the toolbar buttons and the initial display zoom.
const (
	// ZoomStep is the factor applied by one zoom-in (and divided by one zoom-out).
	ZoomStep = 1.2

	// InitialZoom shrinks the rendered box once after rendering so graphs are
	// legible by default. The resulting box has 0.6 times the original size.
	InitialZoom = 0.6
)

// Pan shifts v by a pointer movement measured in screen units.
//
// The screen delta is scaled by the ratio of document size to screen size
// (v.Width/screenW horizontally, v.Height/screenH vertically) and subtracted
// from the origin, so the same physical drag always moves the same fraction of
// the visible graph. An axis whose screen extent is not positive has no
// defined scale and is left unchanged.
func Pan(v ViewBox, dx, dy, screenW, screenH float64) ViewBox {
	out := v
	if screenW > 0 {
		out.X = v.X - dx*(v.Width/screenW)
	}
	if screenH > 0 {
		out.Y = v.Y - dy*(v.Height/screenH)
	}
	return out
}

// Zoom scales v by factor about its center: factor > 1 zooms in (smaller box),
// factor < 1 zooms out. Non-positive or non-finite factors return v unchanged.
func Zoom(v ViewBox, factor float64) ViewBox {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return v
	}
	c := v.Center()
	w := v.Width / factor
	h := v.Height / factor
	return ViewBox{
		X:      c.X - w/2,
		Y:      c.Y - h/2,
		Width:  w,
		Height: h,
	}
}

// InitialView returns the box first displayed after rendering: orig shrunk to
// InitialZoom of its size about its center.
//
// "0 0 200 100" becomes "40 20 120 60".
func InitialView(orig ViewBox) ViewBox {
	c := orig.Center()
	w := orig.Width * InitialZoom
	h := orig.Height * InitialZoom
	return ViewBox{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}
