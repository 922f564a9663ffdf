package render

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/prospect/pkg/errors"
	"github.com/matzehuels/prospect/pkg/observability"
	"github.com/matzehuels/prospect/pkg/viewport"
)

// GraphvizRenderer lays out DOT text with an in-process Graphviz (compiled to
// WebAssembly, so no system installation is needed).
//
// The engine instance is created on first use and reused; renders are
// serialized. Call [GraphvizRenderer.Close] to release it.
type GraphvizRenderer struct {
	mu sync.Mutex
	gv *graphviz.Graphviz
}

// NewGraphvizRenderer returns a renderer. The engine is initialized lazily.
func NewGraphvizRenderer() *GraphvizRenderer {
	return &GraphvizRenderer{}
}

// Render parses dot and renders it to SVG. The document's viewBox is
// normalized to start at the origin and its size is given in pixels.
func (r *GraphvizRenderer) Render(ctx context.Context, dot string) (*Document, error) {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, "svg", len(dot))

	doc, err := r.render(ctx, dot)
	observability.Render().OnRenderComplete(ctx, "svg", time.Since(start), err)
	return doc, err
}

func (r *GraphvizRenderer) render(ctx context.Context, dot string) (*Document, error) {
	if strings.TrimSpace(dot) == "" {
		return nil, &errors.RenderError{Message: "empty graph description"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gv == nil {
		gv, err := graphviz.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("init graphviz: %w", err)
		}
		r.gv = gv
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, &errors.RenderError{Message: err.Error(), Cause: err}
	}
	if g == nil {
		return nil, &errors.RenderError{Message: "graph description contains no graph"}
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := r.gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, &errors.RenderError{Message: err.Error(), Cause: err}
	}

	doc, err := ParseDocument(buf.Bytes())
	if err != nil {
		return nil, &errors.RenderError{Message: err.Error(), Cause: err}
	}
	normalizeViewBox(doc)
	return doc, nil
}

// Close releases the engine. The renderer can be used again afterwards.
func (r *GraphvizRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gv == nil {
		return nil
	}
	err := r.gv.Close()
	r.gv = nil
	return err
}

// normalizeViewBox rewrites Graphviz's "0.00 0.00 w h" box and its pt-sized
// width and height into an origin-anchored box and a pixel size.
func normalizeViewBox(d *Document) {
	vb := d.ViewBox()
	w, h := round2(vb.Width), round2(vb.Height)
	if w == 0 || h == 0 {
		return
	}
	d.SetViewBox(viewport.ViewBox{Width: w, Height: h})
	d.set("width", strconv.FormatFloat(math.Round(w), 'f', -1, 64))
	d.set("height", strconv.FormatFloat(math.Round(h), 'f', -1, 64))
	d.width, d.height = math.Round(w), math.Round(h)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var _ Renderer = (*GraphvizRenderer)(nil)
