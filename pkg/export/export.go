// Package export renders a trial's graph description on demand and hands the
// result to a [Saver].
//
// Exports always re-render the retained DOT text, so the output is the
// canonical layout regardless of how the live view is panned or zoomed.
// Failures are reported as *errors.ExportError.
package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/prospect/pkg/errors"
	"github.com/matzehuels/prospect/pkg/render"
)

// MIME types of exported files.
const (
	MimeSVG = "image/svg+xml"
	MimeDOT = "text/plain;charset=utf-8"
	MimePNG = "image/png"
	MimePDF = "application/pdf"
)

// Format is an export file format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatDOT Format = "dot"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{FormatSVG, FormatDOT, FormatPNG, FormatPDF}

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatSVG, FormatDOT, FormatPNG, FormatPDF:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown export format %q (want svg, dot, png or pdf)", s)
}

// Filename returns the suggested filename of a trial's export.
func Filename(trialID string, f Format) string {
	return fmt.Sprintf("prospective_%s.%s", trialID, f)
}

// Saver persists exported bytes under a suggested filename.
type Saver interface {
	Save(ctx context.Context, data []byte, filename, mimeType string) error
}

// SaverFunc adapts a function to the [Saver] interface.
type SaverFunc func(ctx context.Context, data []byte, filename, mimeType string) error

// Save calls f(ctx, data, filename, mimeType).
func (f SaverFunc) Save(ctx context.Context, data []byte, filename, mimeType string) error {
	return f(ctx, data, filename, mimeType)
}

// Exporter renders and saves exports.
type Exporter struct {
	renderer render.Renderer
	saver    Saver
	pngScale float64
}

// Option configures an [Exporter].
type Option func(*Exporter)

// WithPNGScale sets the scale used by [Exporter.Export] for PNG output.
func WithPNGScale(scale float64) Option {
	return func(e *Exporter) {
		if scale > 0 {
			e.pngScale = scale
		}
	}
}

// New returns an exporter that renders with r and persists with s.
func New(r render.Renderer, s Saver, opts ...Option) *Exporter {
	e := &Exporter{renderer: r, saver: s, pngScale: 2}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes text in format f and returns the filename it was saved under.
func (e *Exporter) Export(ctx context.Context, f Format, trialID, text string) (string, error) {
	switch f {
	case FormatSVG:
		return e.ExportSVG(ctx, trialID, text)
	case FormatDOT:
		return e.ExportDOT(ctx, trialID, text)
	case FormatPNG:
		return e.ExportPNG(ctx, trialID, text, e.pngScale)
	case FormatPDF:
		return e.ExportPDF(ctx, trialID, text)
	}
	return "", &errors.ExportError{Filename: Filename(trialID, f), Cause: errors.New(errors.ErrCodeInvalidFormat, "unknown export format %q", f)}
}

// ExportSVG renders text and saves the markup.
func (e *Exporter) ExportSVG(ctx context.Context, trialID, text string) (string, error) {
	name := Filename(trialID, FormatSVG)
	doc, err := e.renderer.Render(ctx, text)
	if err != nil {
		return name, &errors.ExportError{Filename: name, Cause: err}
	}
	return name, e.save(ctx, doc.Markup(), name, MimeSVG)
}

// ExportDOT saves text verbatim.
func (e *Exporter) ExportDOT(ctx context.Context, trialID, text string) (string, error) {
	name := Filename(trialID, FormatDOT)
	return name, e.save(ctx, []byte(text), name, MimeDOT)
}

// ExportPNG renders text, rasterizes it at scale and saves the image.
// It requires rsvg-convert.
func (e *Exporter) ExportPNG(ctx context.Context, trialID, text string, scale float64) (string, error) {
	return e.convert(ctx, trialID, text, FormatPNG, MimePNG, func(svg []byte) ([]byte, error) {
		return render.ToPNG(ctx, svg, scale)
	})
}

// ExportPDF renders text and saves it as a single-page PDF.
// It requires rsvg-convert.
func (e *Exporter) ExportPDF(ctx context.Context, trialID, text string) (string, error) {
	return e.convert(ctx, trialID, text, FormatPDF, MimePDF, func(svg []byte) ([]byte, error) {
		return render.ToPDF(ctx, svg)
	})
}

// convert renders text and passes the markup through conv before saving.
func (e *Exporter) convert(ctx context.Context, trialID, text string, f Format, mime string, conv func([]byte) ([]byte, error)) (string, error) {
	name := Filename(trialID, f)
	doc, err := e.renderer.Render(ctx, text)
	if err != nil {
		return name, &errors.ExportError{Filename: name, Cause: err}
	}
	data, err := conv(doc.Markup())
	if err != nil {
		return name, &errors.ExportError{Filename: name, Cause: err}
	}
	return name, e.save(ctx, data, name, mime)
}

func (e *Exporter) save(ctx context.Context, data []byte, name, mime string) error {
	if err := e.saver.Save(ctx, data, name, mime); err != nil {
		return &errors.ExportError{Filename: name, Cause: err}
	}
	return nil
}
