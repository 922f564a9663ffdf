package render

import (
	"bytes"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/prospect/pkg/errors"
	"github.com/matzehuels/prospect/pkg/viewport"
)

// Document is a rendered SVG document. The attributes of the root <svg>
// element are held separately so that the viewBox and the display size can
// be rewritten without re-serializing the rest of the markup.
//
// A Document is not safe for concurrent use.
type Document struct {
	head        []byte // markup before the root element
	tail        []byte // markup after the root start tag
	attrs       []attr // root attributes in document order
	selfClosing bool

	viewBox       viewport.ViewBox
	width, height float64 // natural size
}

type attr struct {
	name, value string
}

var (
	svgTagRe  = regexp.MustCompile(`<svg\b[^>]*>`)
	svgAttrRe = regexp.MustCompile(`([A-Za-z_:][-A-Za-z0-9_:.]*)\s*=\s*("[^"]*"|'[^']*')`)
	lengthRe  = regexp.MustCompile(`^\s*([0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?)\s*(px|pt)?\s*$`)
)

// ParseDocument parses SVG markup. The natural size comes from the width and
// height attributes (px and pt units are stripped); when they are missing or
// relative, the viewBox size is used instead. A document without a viewBox
// gets one synthesized from its size.
func ParseDocument(svg []byte) (*Document, error) {
	loc := svgTagRe.FindIndex(svg)
	if loc == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "document has no <svg> element")
	}
	tag := svg[loc[0]:loc[1]]

	d := &Document{
		head:        bytes.Clone(svg[:loc[0]]),
		tail:        bytes.Clone(svg[loc[1]:]),
		selfClosing: bytes.HasSuffix(tag, []byte("/>")),
	}
	for _, m := range svgAttrRe.FindAllSubmatch(tag, -1) {
		v := m[2]
		d.attrs = append(d.attrs, attr{name: string(m[1]), value: string(v[1 : len(v)-1])})
	}

	w, wok := parseLength(d.Attr("width"))
	h, hok := parseLength(d.Attr("height"))

	if raw := d.Attr("viewBox"); raw != "" {
		vb, err := viewport.ParseViewBox(raw)
		if err != nil {
			return nil, err
		}
		d.viewBox = vb
		if !wok || !hok {
			w, h = vb.Width, vb.Height
		}
	} else {
		if !wok || !hok {
			return nil, errors.New(errors.ErrCodeInvalidViewBox, "document has neither a viewBox nor a size")
		}
		d.SetViewBox(viewport.ViewBox{Width: w, Height: h})
	}
	d.width, d.height = w, h
	return d, nil
}

func parseLength(s string) (float64, bool) {
	m := lengthRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// ViewBox returns the document's current viewBox.
func (d *Document) ViewBox() viewport.ViewBox {
	return d.viewBox
}

// SetViewBox rewrites the viewBox attribute. Invalid boxes are ignored.
func (d *Document) SetViewBox(v viewport.ViewBox) {
	if !v.Valid() {
		return
	}
	d.viewBox = v
	d.set("viewBox", v.String())
}

// Size returns the natural size in pixels. It is not affected by [Document.Fill].
func (d *Document) Size() (width, height float64) {
	return d.width, d.height
}

// Fill stretches the document to its container. The aspect ratio is not
// preserved.
func (d *Document) Fill() {
	d.set("width", "100%")
	d.set("height", "100%")
	d.set("preserveAspectRatio", "none")
}

// Attr returns the value of a root element attribute, or "" if it is absent.
func (d *Document) Attr(name string) string {
	for _, a := range d.attrs {
		if a.name == name {
			return a.value
		}
	}
	return ""
}

// Markup serializes the document.
func (d *Document) Markup() []byte {
	var b bytes.Buffer
	b.Grow(len(d.head) + len(d.tail) + 256)
	b.Write(d.head)
	b.WriteString("<svg")
	for _, a := range d.attrs {
		b.WriteByte(' ')
		b.WriteString(a.name)
		b.WriteString(`="`)
		b.WriteString(strings.ReplaceAll(a.value, `"`, "&quot;"))
		b.WriteByte('"')
	}
	if d.selfClosing {
		b.WriteString("/>")
	} else {
		b.WriteByte('>')
	}
	b.Write(d.tail)
	return b.Bytes()
}

// Clone returns an independent copy of the document.
func (d *Document) Clone() *Document {
	c := *d
	c.head = bytes.Clone(d.head)
	c.tail = bytes.Clone(d.tail)
	c.attrs = slices.Clone(d.attrs)
	return &c
}

func (d *Document) set(name, value string) {
	for i := range d.attrs {
		if d.attrs[i].name == name {
			d.attrs[i].value = value
			return
		}
	}
	d.attrs = append(d.attrs, attr{name: name, value: value})
}
