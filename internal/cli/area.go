package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/prospect/pkg/render"
	"github.com/matzehuels/prospect/pkg/viewport"
)

type areaMode int

const (
	areaEmpty areaMode = iota
	areaProgress
	areaError
	areaDocument
)

// termArea is the viewer's content area: a grid of terminal cells. Sizes and
// pointer coordinates are measured in cells.
type termArea struct {
	width, height int

	mode    areaMode
	label   string
	message string
	doc     *render.Document
	nodes   []render.Node
}

func (a *termArea) Clear() {
	a.mode = areaEmpty
	a.label, a.message = "", ""
	a.doc, a.nodes = nil, nil
}

func (a *termArea) ShowProgress(label string) {
	a.mode = areaProgress
	a.label = label
}

func (a *termArea) ShowError(message string) {
	a.mode = areaError
	a.message = message
}

func (a *termArea) Attach(doc *render.Document) {
	a.mode = areaDocument
	a.doc = doc
	a.nodes = doc.Nodes()
}

func (a *termArea) Size() (width, height float64) {
	return float64(a.width), float64(a.height)
}

// resize sets the area's size, clamping negative sizes to zero.
func (a *termArea) resize(width, height int) {
	a.width, a.height = max(width, 0), max(height, 0)
}

// contains reports whether cell (x, y) lies inside the area.
func (a *termArea) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < a.width && y < a.height
}

// cellClass selects the style of a grid cell.
type cellClass uint8

const (
	cellBlank cellClass = iota
	cellMark
	cellLabel
	cellTerminal
	cellNamed
)

var cellStyles = map[cellClass]lipgloss.Style{
	cellMark:     styleNodeMark,
	cellLabel:    styleNode,
	cellTerminal: styleNodeTerm,
	cellNamed:    styleNodeNamed,
}

type cell struct {
	r     rune
	class cellClass
}

// graphGrid is a character-grid projection of laid-out nodes.
type graphGrid struct {
	width, height int
	cells         []cell
}

// project maps the nodes inside box onto a width x height grid. Each visible
// node is drawn as a mark at its center followed by as much of its label as
// fits on the row. Later nodes overwrite earlier ones.
func project(nodes []render.Node, box viewport.ViewBox, width, height int) *graphGrid {
	g := &graphGrid{width: max(width, 0), height: max(height, 0)}
	g.cells = make([]cell, g.width*g.height)
	for i := range g.cells {
		g.cells[i].r = ' '
	}
	if g.width == 0 || g.height == 0 || !box.Valid() {
		return g
	}

	for _, n := range nodes {
		col, row, ok := cellOf(n.Center, box, g.width, g.height)
		if !ok {
			continue
		}
		g.set(col, row, []rune(iconNode)[0], cellMark)

		label := n.Label
		if label == "" {
			label = n.ID
		}
		class := nodeClass(n)
		for i, r := range []rune(" " + label) {
			if col+1+i >= g.width {
				break
			}
			g.set(col+1+i, row, r, class)
		}
	}
	return g
}

// cellOf returns the cell a point of the box falls in.
func cellOf(p viewport.Point, box viewport.ViewBox, width, height int) (col, row int, ok bool) {
	if !box.Contains(p) {
		return 0, 0, false
	}
	col = int((p.X - box.X) / box.Width * float64(width))
	row = int((p.Y - box.Y) / box.Height * float64(height))
	return min(col, width-1), min(row, height-1), true
}

func nodeClass(n render.Node) cellClass {
	switch {
	case n.ID == "start" || n.ID == "end":
		return cellTerminal
	case strings.Contains(n.ID, "_import_") || strings.Contains(n.ID, "_name_"):
		return cellNamed
	}
	return cellLabel
}

func (g *graphGrid) set(col, row int, r rune, class cellClass) {
	g.cells[row*g.width+col] = cell{r: r, class: class}
}

func (g *graphGrid) at(col, row int) cell {
	return g.cells[row*g.width+col]
}

// lines returns the grid rows without styling.
func (g *graphGrid) lines() []string {
	out := make([]string, g.height)
	for row := range g.height {
		var b strings.Builder
		for col := range g.width {
			b.WriteRune(g.at(col, row).r)
		}
		out[row] = b.String()
	}
	return out
}

// render returns the styled grid, one line per row.
func (g *graphGrid) render() string {
	rows := make([]string, g.height)
	for row := range g.height {
		var b, run strings.Builder
		class := cellBlank
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if style, ok := cellStyles[class]; ok {
				b.WriteString(style.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for col := range g.width {
			c := g.at(col, row)
			if c.class != class {
				flush()
				class = c.class
			}
			run.WriteRune(c.r)
		}
		flush()
		rows[row] = b.String()
	}
	return strings.Join(rows, "\n")
}
