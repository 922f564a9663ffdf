package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/prospect/pkg/errors"
	"github.com/matzehuels/prospect/pkg/viewport"
)

// graphvizSVG is trimmed Graphviz output for `digraph { a -> b }`.
const graphvizSVG = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN"
 "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<svg width="62pt" height="116pt"
 viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">
<g id="graph0" class="graph" transform="scale(1 1) rotate(0) translate(4 112)">
<polygon fill="white" stroke="none" points="-4,4 -4,-112 58,-112 58,4 -4,4"/>
<g id="node1" class="node">
<title>a</title>
<ellipse fill="none" stroke="black" cx="27" cy="-90" rx="27" ry="18"/>
<text text-anchor="middle" x="27" y="-85.8" font-family="Times,serif" font-size="14.00">a</text>
</g>
<g id="node2" class="node">
<title>b</title>
<polygon fill="none" stroke="black" points="54,-36 0,-36 0,0 54,0 54,-36"/>
<text text-anchor="middle" x="27" y="-13.8" font-family="Times,serif" font-size="14.00">1: load</text>
<text text-anchor="middle" x="27" y="-1.8" font-family="Times,serif" font-size="14.00">data</text>
</g>
<g id="edge1" class="edge">
<title>a&#45;&gt;b</title>
<path fill="none" stroke="black" d="M27,-71.7C27,-64.41 27,-55.73 27,-47.54"/>
</g>
</g>
</svg>
`

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name    string
		svg     string
		want    viewport.ViewBox
		w, h    float64
		wantErr errors.Code
	}{
		{
			name: "graphviz output",
			svg:  graphvizSVG,
			want: viewport.ViewBox{Width: 62, Height: 116},
			w:    62, h: 116,
		},
		{
			name: "viewBox without size",
			svg:  `<svg viewBox="0 0 200 100"></svg>`,
			want: viewport.ViewBox{Width: 200, Height: 100},
			w:    200, h: 100,
		},
		{
			name: "relative size falls back to viewBox",
			svg:  `<svg width="100%" height="100%" viewBox="10 10 50 40"/>`,
			want: viewport.ViewBox{X: 10, Y: 10, Width: 50, Height: 40},
			w:    50, h: 40,
		},
		{
			name: "size without viewBox",
			svg:  `<svg width="300px" height="150px"></svg>`,
			want: viewport.ViewBox{Width: 300, Height: 150},
			w:    300, h: 150,
		},
		{
			name:    "not svg",
			svg:     `<html></html>`,
			wantErr: errors.ErrCodeInvalidFormat,
		},
		{
			name:    "no viewBox and no size",
			svg:     `<svg></svg>`,
			wantErr: errors.ErrCodeInvalidViewBox,
		},
		{
			name:    "degenerate viewBox",
			svg:     `<svg viewBox="0 0 0 100"></svg>`,
			wantErr: errors.ErrCodeInvalidViewBox,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument([]byte(tt.svg))
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDocument() error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDocument() error: %v", err)
			}
			if doc.ViewBox() != tt.want {
				t.Errorf("ViewBox() = %v, want %v", doc.ViewBox(), tt.want)
			}
			if w, h := doc.Size(); w != tt.w || h != tt.h {
				t.Errorf("Size() = %v, %v, want %v, %v", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestDocumentSetViewBox(t *testing.T) {
	doc, err := ParseDocument([]byte(`<svg viewBox="0 0 200 100"><g/></svg>`))
	if err != nil {
		t.Fatal(err)
	}

	doc.SetViewBox(viewport.ViewBox{X: 40, Y: 20, Width: 120, Height: 60})
	if got := doc.Attr("viewBox"); got != "40 20 120 60" {
		t.Errorf("viewBox attribute = %q, want %q", got, "40 20 120 60")
	}
	if !strings.Contains(string(doc.Markup()), `viewBox="40 20 120 60"`) {
		t.Errorf("Markup() = %s, missing rewritten viewBox", doc.Markup())
	}

	doc.SetViewBox(viewport.ViewBox{Width: -1, Height: 5})
	if got := doc.Attr("viewBox"); got != "40 20 120 60" {
		t.Errorf("invalid box should be ignored, viewBox = %q", got)
	}
}

func TestDocumentFill(t *testing.T) {
	doc, err := ParseDocument([]byte(graphvizSVG))
	if err != nil {
		t.Fatal(err)
	}
	doc.Fill()

	for name, want := range map[string]string{
		"width":               "100%",
		"height":              "100%",
		"preserveAspectRatio": "none",
	} {
		if got := doc.Attr(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
	if w, h := doc.Size(); w != 62 || h != 116 {
		t.Errorf("Size() after Fill = %v, %v, want natural size 62, 116", w, h)
	}

	again, err := ParseDocument(doc.Markup())
	if err != nil {
		t.Fatalf("re-parse filled markup: %v", err)
	}
	if again.ViewBox() != doc.ViewBox() {
		t.Errorf("re-parsed ViewBox() = %v, want %v", again.ViewBox(), doc.ViewBox())
	}
}

func TestDocumentMarkupPreservesBody(t *testing.T) {
	doc, err := ParseDocument([]byte(graphvizSVG))
	if err != nil {
		t.Fatal(err)
	}
	out := string(doc.Markup())
	for _, want := range []string{`<?xml version="1.0"`, `<title>a</title>`, `xmlns:xlink=`, "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("Markup() missing %q", want)
		}
	}
}

func TestDocumentClone(t *testing.T) {
	doc, err := ParseDocument([]byte(`<svg viewBox="0 0 200 100"></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	c := doc.Clone()
	c.SetViewBox(viewport.ViewBox{X: 1, Y: 1, Width: 10, Height: 10})
	c.Fill()

	if doc.ViewBox() != (viewport.ViewBox{Width: 200, Height: 100}) {
		t.Errorf("original ViewBox changed to %v", doc.ViewBox())
	}
	if doc.Attr("width") != "" {
		t.Errorf("original width = %q, want unset", doc.Attr("width"))
	}
}

func TestDocumentNodes(t *testing.T) {
	doc, err := ParseDocument([]byte(graphvizSVG))
	if err != nil {
		t.Fatal(err)
	}
	nodes := doc.Nodes()
	if len(nodes) != 2 {
		t.Fatalf("Nodes() returned %d nodes, want 2", len(nodes))
	}

	tests := []struct {
		id, label string
		center    viewport.Point
	}{
		// ellipse center (27,-90) translated by (4,112)
		{"a", "a", viewport.Point{X: 31, Y: 22}},
		// polygon bbox center (27,-18) translated by (4,112)
		{"b", "1: load data", viewport.Point{X: 31, Y: 94}},
	}
	for i, tt := range tests {
		n := nodes[i]
		if n.ID != tt.id || n.Label != tt.label {
			t.Errorf("node %d = %q/%q, want %q/%q", i, n.ID, n.Label, tt.id, tt.label)
		}
		if n.Center != tt.center {
			t.Errorf("node %q center = %v, want %v", n.ID, n.Center, tt.center)
		}
		if !doc.ViewBox().Contains(n.Center) {
			t.Errorf("node %q center %v outside the document", n.ID, n.Center)
		}
	}
}

func TestDocumentNodesNonGraphviz(t *testing.T) {
	doc, err := ParseDocument([]byte(`<svg viewBox="0 0 10 10"><rect width="10" height="10"/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	if nodes := doc.Nodes(); len(nodes) != 0 {
		t.Errorf("Nodes() = %v, want none", nodes)
	}
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		in   string
		want transform
	}{
		{"", transform{sx: 1, sy: 1}},
		{"scale(1 1) rotate(0) translate(4 112)", transform{sx: 1, sy: 1, tx: 4, ty: 112}},
		{"scale(0.5) translate(2,3)", transform{sx: 0.5, sy: 0.5, tx: 2, ty: 3}},
	}
	for _, tt := range tests {
		if got := parseTransform(tt.in); got != tt.want {
			t.Errorf("parseTransform(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
