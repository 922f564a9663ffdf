package viewport

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/prospect/pkg/errors"
)

// ViewBox is the rectangle of document coordinate space mapped onto the
// rendering surface. Width and Height are positive for a usable box.
type ViewBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a position either on screen (pixels or cells) or in document space.
type Point struct {
	X, Y float64
}

// ParseViewBox parses an SVG viewBox attribute ("min-x min-y width height").
// Values may be separated by whitespace and/or commas.
func ParseViewBox(s string) (ViewBox, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return ViewBox{}, errors.New(errors.ErrCodeInvalidViewBox, "viewBox %q: want 4 values, got %d", s, len(fields))
	}

	var vals [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return ViewBox{}, errors.New(errors.ErrCodeInvalidViewBox, "viewBox %q: bad number %q", s, f)
		}
		vals[i] = v
	}

	v := ViewBox{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
	if !v.Valid() {
		return ViewBox{}, errors.New(errors.ErrCodeInvalidViewBox, "viewBox %q: width and height must be positive", s)
	}
	return v, nil
}

// String formats the box in SVG attribute form, e.g. "40 20 120 60". Values
// are rounded to six significant digits; the box itself keeps full precision.
func (v ViewBox) String() string {
	return strings.Join([]string{
		formatFloat(v.X),
		formatFloat(v.Y),
		formatFloat(v.Width),
		formatFloat(v.Height),
	}, " ")
}

// Valid reports whether the box has a positive, finite size.
func (v ViewBox) Valid() bool {
	return v.Width > 0 && v.Height > 0 &&
		!math.IsInf(v.Width, 0) && !math.IsInf(v.Height, 0)
}

// Center returns the midpoint of the box.
func (v ViewBox) Center() Point {
	return Point{X: v.X + v.Width/2, Y: v.Y + v.Height/2}
}

// Contains reports whether p lies inside the box (edges included).
func (v ViewBox) Contains(p Point) bool {
	return p.X >= v.X && p.X <= v.X+v.Width && p.Y >= v.Y && p.Y <= v.Y+v.Height
}

// ApproxEqual reports whether two boxes agree within a relative tolerance.
func (v ViewBox) ApproxEqual(o ViewBox, tol float64) bool {
	return approx(v.X, o.X, tol) && approx(v.Y, o.Y, tol) &&
		approx(v.Width, o.Width, tol) && approx(v.Height, o.Height, tol)
}

func approx(a, b, tol float64) bool {
	diff := math.Abs(a - b)
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return diff <= tol*scale
}

func formatFloat(f float64) string {
	if f == 0 {
		// avoid "-0"
		return "0"
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'g', 6, 64), 64)
	if err != nil {
		r = f
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
