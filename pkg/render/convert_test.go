package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/prospect/pkg/errors"
)

func TestToPNG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="10" height="10"><rect width="10" height="10"/></svg>`)

	if !ConverterAvailable() {
		_, err := ToPNG(context.Background(), svg, 1)
		if !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Fatalf("ToPNG() without rsvg-convert error = %v, want UNSUPPORTED", err)
		}
		t.Skip("rsvg-convert not installed")
	}

	png, err := ToPNG(context.Background(), svg, 2)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("ToPNG() output is not a PNG")
	}
}

func TestToPDF(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="10" height="10"><rect width="10" height="10"/></svg>`)

	if !ConverterAvailable() {
		if _, err := ToPDF(context.Background(), svg); !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Fatalf("ToPDF() without rsvg-convert error = %v, want UNSUPPORTED", err)
		}
		t.Skip("rsvg-convert not installed")
	}

	pdf, err := ToPDF(context.Background(), svg)
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("ToPDF() output is not a PDF")
	}
}
