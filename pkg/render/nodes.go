package render

import (
	"bytes"
	"encoding/xml"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/prospect/pkg/viewport"
)

// Node is a laid-out graph node found in a Graphviz SVG document.
type Node struct {
	ID     string         // node name, from the group's <title>
	Label  string         // text lines of the node, joined by spaces
	Center viewport.Point // in viewBox coordinates
}

// Nodes returns the nodes of a Graphviz-produced document, in document order.
// Centers come from the node's ellipse, else the bounding box of its polygon,
// else its first text anchor, and are mapped through the graph group's
// transform. Documents that were not produced by Graphviz have no nodes.
func (d *Document) Nodes() []Node {
	dec := xml.NewDecoder(bytes.NewReader(d.Markup()))
	dec.Strict = false

	var (
		nodes []Node
		tf    = transform{sx: 1, sy: 1}
		cur   *nodeShape
		depth int
		field string
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if cur != nil {
				depth++
				cur.visit(t, &field)
				continue
			}
			if t.Name.Local != "g" {
				continue
			}
			switch attrOf(t, "class") {
			case "graph":
				tf = parseTransform(attrOf(t, "transform"))
			case "node":
				cur, depth = &nodeShape{}, 0
			}
		case xml.EndElement:
			if cur == nil {
				continue
			}
			if depth == 0 {
				nodes = append(nodes, cur.node(tf))
				cur = nil
				continue
			}
			depth--
			field = ""
		case xml.CharData:
			if cur == nil {
				continue
			}
			switch field {
			case "title":
				cur.title += string(t)
			case "text":
				cur.texts[len(cur.texts)-1] += string(t)
			}
		}
	}
	return nodes
}

type nodeShape struct {
	title   string
	texts   []string
	ellipse *viewport.Point
	poly    []viewport.Point
	anchor  *viewport.Point
}

func (n *nodeShape) visit(t xml.StartElement, field *string) {
	switch t.Name.Local {
	case "title":
		*field = "title"
	case "text":
		*field = "text"
		n.texts = append(n.texts, "")
		if n.anchor == nil {
			if p, ok := pointOf(t, "x", "y"); ok {
				n.anchor = &p
			}
		}
	case "ellipse":
		if n.ellipse == nil {
			if p, ok := pointOf(t, "cx", "cy"); ok {
				n.ellipse = &p
			}
		}
	case "polygon":
		if n.poly == nil {
			n.poly = parsePoints(attrOf(t, "points"))
		}
	}
}

func (n *nodeShape) node(tf transform) Node {
	var labels []string
	for _, s := range n.texts {
		if s = strings.TrimSpace(s); s != "" {
			labels = append(labels, s)
		}
	}
	out := Node{ID: strings.TrimSpace(n.title), Label: strings.Join(labels, " ")}
	if out.Label == "" {
		out.Label = out.ID
	}

	switch {
	case n.ellipse != nil:
		out.Center = tf.apply(*n.ellipse)
	case len(n.poly) > 0:
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, p := range n.poly {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
		out.Center = tf.apply(viewport.Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2})
	case n.anchor != nil:
		out.Center = tf.apply(*n.anchor)
	}
	return out
}

// transform is the subset of SVG transforms Graphviz emits on the graph
// group: "scale(sx sy) rotate(0) translate(tx ty)", applied right to left.
type transform struct {
	sx, sy, tx, ty float64
}

func (t transform) apply(p viewport.Point) viewport.Point {
	return viewport.Point{X: t.sx * (p.X + t.tx), Y: t.sy * (p.Y + t.ty)}
}

var transformRe = regexp.MustCompile(`(scale|translate)\s*\(([^)]*)\)`)

func parseTransform(s string) transform {
	t := transform{sx: 1, sy: 1}
	for _, m := range transformRe.FindAllStringSubmatch(s, -1) {
		args := numbers(m[2])
		if len(args) == 0 {
			continue
		}
		a, b := args[0], 0.0
		if len(args) > 1 {
			b = args[1]
		}
		switch m[1] {
		case "scale":
			if len(args) == 1 {
				b = a
			}
			t.sx, t.sy = a, b
		case "translate":
			t.tx, t.ty = a, b
		}
	}
	return t
}

func parsePoints(s string) []viewport.Point {
	vals := numbers(s)
	pts := make([]viewport.Point, 0, len(vals)/2)
	for i := 0; i+1 < len(vals); i += 2 {
		pts = append(pts, viewport.Point{X: vals[i], Y: vals[i+1]})
	}
	return pts
}

func numbers(s string) []float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func pointOf(t xml.StartElement, xName, yName string) (viewport.Point, bool) {
	x, errX := strconv.ParseFloat(attrOf(t, xName), 64)
	y, errY := strconv.ParseFloat(attrOf(t, yName), 64)
	if errX != nil || errY != nil {
		return viewport.Point{}, false
	}
	return viewport.Point{X: x, Y: y}, true
}

func attrOf(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
