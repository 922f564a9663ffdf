package export

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/matzehuels/prospect/pkg/errors"
	"github.com/matzehuels/prospect/pkg/render"
)

type saved struct {
	data           []byte
	filename, mime string
}

type memSaver struct {
	files []saved
	err   error
}

func (s *memSaver) Save(ctx context.Context, data []byte, filename, mimeType string) error {
	if s.err != nil {
		return s.err
	}
	s.files = append(s.files, saved{data: data, filename: filename, mime: mimeType})
	return nil
}

type stubRenderer struct {
	calls []string
	err   error
}

func (r *stubRenderer) Render(ctx context.Context, dot string) (*render.Document, error) {
	r.calls = append(r.calls, dot)
	if r.err != nil {
		return nil, r.err
	}
	return render.ParseDocument([]byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100" width="200" height="100"><g/></svg>`))
}

func TestExportSVG(t *testing.T) {
	r, s := &stubRenderer{}, &memSaver{}
	e := New(r, s)

	name, err := e.ExportSVG(context.Background(), "t42", "digraph { a -> b }")
	if err != nil {
		t.Fatalf("ExportSVG() error: %v", err)
	}
	if name != "prospective_t42.svg" {
		t.Errorf("filename = %q", name)
	}
	if len(r.calls) != 1 || r.calls[0] != "digraph { a -> b }" {
		t.Errorf("renderer calls = %q, want one call with the source text", r.calls)
	}
	if len(s.files) != 1 {
		t.Fatalf("saved %d files, want 1", len(s.files))
	}
	f := s.files[0]
	if f.filename != "prospective_t42.svg" || f.mime != MimeSVG {
		t.Errorf("saved %q as %q", f.filename, f.mime)
	}
	if !strings.Contains(string(f.data), `viewBox="0 0 200 100"`) {
		t.Errorf("saved markup = %s, want canonical viewBox", f.data)
	}
}

func TestExportDOT(t *testing.T) {
	r, s := &stubRenderer{}, &memSaver{}
	e := New(r, s)

	text := "digraph {\n  a -> b\n}\n"
	if _, err := e.ExportDOT(context.Background(), "t42", text); err != nil {
		t.Fatalf("ExportDOT() error: %v", err)
	}
	if len(r.calls) != 0 {
		t.Error("ExportDOT() should not render")
	}
	f := s.files[0]
	if string(f.data) != text {
		t.Errorf("saved %q, want source verbatim", f.data)
	}
	if f.filename != "prospective_t42.dot" || f.mime != "text/plain;charset=utf-8" {
		t.Errorf("saved %q as %q", f.filename, f.mime)
	}
}

func TestExportErrors(t *testing.T) {
	tests := []struct {
		name   string
		r      *stubRenderer
		s      *memSaver
		format Format
		cause  errors.Code
	}{
		{"render rejected", &stubRenderer{err: &errors.RenderError{Message: "syntax error"}}, &memSaver{}, FormatSVG, errors.ErrCodeRender},
		{"save failed", &stubRenderer{}, &memSaver{err: stderrors.New("disk full")}, FormatSVG, ""},
		{"dot save failed", &stubRenderer{}, &memSaver{err: stderrors.New("disk full")}, FormatDOT, ""},
		{"unknown format", &stubRenderer{}, &memSaver{}, Format("gif"), errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.r, tt.s).Export(context.Background(), tt.format, "t42", "digraph {}")
			var xe *errors.ExportError
			if !stderrors.As(err, &xe) {
				t.Fatalf("Export() error = %v, want *errors.ExportError", err)
			}
			if errors.GetCode(err) != errors.ErrCodeExport {
				t.Errorf("GetCode() = %s, want EXPORT_FAILED", errors.GetCode(err))
			}
			if tt.cause != "" && errors.GetCode(xe.Cause) != tt.cause {
				t.Errorf("cause code = %s, want %s", errors.GetCode(xe.Cause), tt.cause)
			}
		})
	}
}

func TestExportConverted(t *testing.T) {
	tests := []struct {
		format Format
		name   string
		mime   string
		magic  string
	}{
		{FormatPNG, "prospective_t42.png", MimePNG, "\x89PNG"},
		{FormatPDF, "prospective_t42.pdf", MimePDF, "%PDF"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			r, s := &stubRenderer{}, &memSaver{}
			name, err := New(r, s).Export(context.Background(), tt.format, "t42", "digraph { a -> b }")
			if name != tt.name {
				t.Errorf("filename = %q, want %q", name, tt.name)
			}
			if len(r.calls) != 1 {
				t.Errorf("renderer called %d times, want 1", len(r.calls))
			}

			if !render.ConverterAvailable() {
				if !errors.Is(err, errors.ErrCodeExport) {
					t.Fatalf("Export() without rsvg-convert error = %v, want EXPORT_FAILED", err)
				}
				if len(s.files) != 0 {
					t.Errorf("saved %d files after a failed conversion", len(s.files))
				}
				t.Skip("rsvg-convert not installed")
			}

			if err != nil {
				t.Fatalf("Export() error: %v", err)
			}
			if len(s.files) != 1 {
				t.Fatalf("saved %d files, want 1", len(s.files))
			}
			f := s.files[0]
			if f.filename != tt.name || f.mime != tt.mime {
				t.Errorf("saved %q as %q", f.filename, f.mime)
			}
			if !strings.HasPrefix(string(f.data), tt.magic) {
				t.Errorf("output starts with %q, want %q", f.data[:min(len(f.data), 8)], tt.magic)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"svg", "DOT", " png ", "Pdf"} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q) error: %v", in, err)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func TestSaverFunc(t *testing.T) {
	var got string
	var s Saver = SaverFunc(func(ctx context.Context, data []byte, filename, mimeType string) error {
		got = filename
		return nil
	})
	if err := s.Save(context.Background(), nil, "x.dot", MimeDOT); err != nil || got != "x.dot" {
		t.Errorf("SaverFunc.Save() = %v, filename %q", err, got)
	}
}
