package panel

import (
	"github.com/matzehuels/prospect/pkg/render"
	"github.com/matzehuels/prospect/pkg/viewport"
)

// install attaches a freshly rendered document: the layout engine's box
// becomes the original, the display starts at the initial zoom, and the
// document is stretched over the content area.
func (p *Panel) install(doc *render.Document) {
	p.area.Clear()

	p.doc = doc
	p.view = viewport.NewController(doc.ViewBox())
	p.view.ApplyInitialZoom()
	p.writeBack()

	doc.Fill()
	p.area.Attach(doc)
}

func (p *Panel) detach() {
	p.doc = nil
	p.view = nil
	p.drag.Release()
}

// writeBack puts the displayed box onto the attached document.
func (p *Panel) writeBack() {
	if p.doc != nil && p.view != nil {
		p.doc.SetViewBox(p.view.Current())
	}
}

// Press starts a drag at screen point (x, y). It is ignored unless a document
// is attached.
func (p *Panel) Press(x, y float64) {
	if p.view == nil {
		return
	}
	p.drag.Press(viewport.Point{X: x, Y: y}, p.view.Current())
}

// Move pans the view to follow a drag. It reports whether the view changed.
// With a zero-size content area the affected axis does not move.
func (p *Panel) Move(x, y float64) bool {
	if p.view == nil {
		return false
	}
	w, h := p.area.Size()
	v, ok := p.drag.Move(viewport.Point{X: x, Y: y}, w, h)
	if !ok || v == p.view.Current() {
		return false
	}
	p.view.Set(v)
	p.writeBack()
	return true
}

// Release ends a drag.
func (p *Panel) Release() { p.drag.Release() }

// Leave ends a drag when the pointer leaves the content area.
func (p *Panel) Leave() { p.drag.Release() }

// Pan moves the view by a screen delta, as a drag of (dx, dy) would.
func (p *Panel) Pan(dx, dy float64) {
	if p.view == nil {
		return
	}
	w, h := p.area.Size()
	p.view.Pan(dx, dy, w, h)
	p.writeBack()
}

// ZoomIn magnifies the view about its center.
func (p *Panel) ZoomIn() { p.zoom((*viewport.Controller).ZoomIn) }

// ZoomOut shrinks the view about its center.
func (p *Panel) ZoomOut() { p.zoom((*viewport.Controller).ZoomOut) }

// ResetZoom restores the layout engine's original box.
func (p *Panel) ResetZoom() { p.zoom((*viewport.Controller).Reset) }

// zoom applies op and ends any drag, whose start box no longer matches.
func (p *Panel) zoom(op func(*viewport.Controller) viewport.ViewBox) {
	if p.view == nil {
		return
	}
	p.drag.Release()
	op(p.view)
	p.writeBack()
}
