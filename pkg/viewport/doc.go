// Package viewport implements the pan and zoom geometry of a rendered graph.
//
// # Overview
//
// A rendered SVG document maps a rectangle of its own coordinate space, the
// [ViewBox], onto the rendering surface. Everything the user sees is driven by
// that rectangle: panning moves its origin, zooming scales its size about its
// center. This package keeps that geometry pure so it can be tested without a
// renderer or an event system:
//
//   - [Pan] converts an on-screen drag delta into a document-space shift
//   - [Zoom] scales a view box about its center
//   - [Controller] tracks the original box, the current box and the zoom level
//   - [DragSession] turns press/move/release events into [Pan] calls
//
// # Invariants
//
// Zooming composes: Zoom(Zoom(v, a), b) equals Zoom(v, a*b) within floating
// point tolerance, and never moves the center of the box. Panning is linear:
// a drag followed by the opposite drag restores the box. [Controller.Reset]
// restores the recorded original bit for bit.
//
// # Usage
//
//	orig, _ := viewport.ParseViewBox("0 0 200 100")
//	c := viewport.NewController(orig)
//	c.Set(viewport.InitialView(orig)) // "40 20 120 60"
//	c.ZoomIn()
//	c.Pan(15, -4, 800, 600)
//	c.Reset()
package viewport
