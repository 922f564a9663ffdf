package viewport

// Controller owns the view of one rendering: the box reported by the layout
// engine (the original), the box currently displayed, and the accumulated
// zoom level.
//
// The current box is authoritative. The zoom level is derived bookkeeping that
// stays equal to Original().Width / Current().Width up to rounding.
//
// A Controller is not safe for concurrent use; it belongs to the goroutine
// that handles the panel's events.
type Controller struct {
	original ViewBox
	current  ViewBox
	scale    float64
}

// NewController returns a controller displaying orig at zoom level 1.
func NewController(orig ViewBox) *Controller {
	return &Controller{original: orig, current: orig, scale: 1}
}

// Original returns the box recorded at render time.
func (c *Controller) Original() ViewBox { return c.original }

// Current returns the box currently displayed.
func (c *Controller) Current() ViewBox { return c.current }

// Scale returns the accumulated zoom level relative to the original box.
func (c *Controller) Scale() float64 { return c.scale }

// ApplyInitialZoom switches to the default display box, [InitialView] of the
// original. It is applied once per rendering, before any user interaction.
func (c *Controller) ApplyInitialZoom() ViewBox {
	c.current = InitialView(c.original)
	c.scale = 1 / InitialZoom
	return c.current
}

// Set replaces the current box, e.g. with the result of a drag.
// Invalid boxes are ignored.
func (c *Controller) Set(v ViewBox) ViewBox {
	if !v.Valid() {
		return c.current
	}
	c.current = v
	c.scale = c.original.Width / v.Width
	return c.current
}

// ZoomBy zooms the current box by factor about its center.
func (c *Controller) ZoomBy(factor float64) ViewBox {
	next := Zoom(c.current, factor)
	if next == c.current {
		return c.current
	}
	c.current = next
	c.scale *= factor
	return c.current
}

// ZoomIn zooms in by one [ZoomStep].
func (c *Controller) ZoomIn() ViewBox { return c.ZoomBy(ZoomStep) }

// ZoomOut zooms out by one [ZoomStep].
func (c *Controller) ZoomOut() ViewBox { return c.ZoomBy(1 / ZoomStep) }

// Pan shifts the current box by a screen delta; see [Pan].
func (c *Controller) Pan(dx, dy, screenW, screenH float64) ViewBox {
	c.current = Pan(c.current, dx, dy, screenW, screenH)
	return c.current
}

// Reset restores the original box exactly and the zoom level to 1.
func (c *Controller) Reset() ViewBox {
	c.current = c.original
	c.scale = 1
	return c.current
}
