package panel

import (
	"context"

	"github.com/matzehuels/prospect/pkg/export"
)

// Export returns a job exporting the current graph description in format f.
// It returns nil when nothing has been loaded yet or no exporter is set.
// The export re-renders the description and ignores the live view; its
// outcome never changes the load state.
func (p *Panel) Export(f export.Format) Job {
	if !p.hasText || p.exporter == nil {
		return nil
	}
	ex, id, text := p.exporter, p.trialID, p.text
	return func(ctx context.Context) Msg {
		name, err := ex.Export(ctx, f, id, text)
		return ExportDoneMsg{Format: f, Filename: name, Err: err}
	}
}

// ExportSVG returns a job saving the canonical rendering.
func (p *Panel) ExportSVG() Job { return p.Export(export.FormatSVG) }

// ExportDOT returns a job saving the graph description verbatim.
func (p *Panel) ExportDOT() Job { return p.Export(export.FormatDOT) }

// ExportPNG returns a job saving a raster of the canonical rendering.
func (p *Panel) ExportPNG() Job { return p.Export(export.FormatPNG) }

// ExportPDF returns a job saving the canonical rendering as a PDF.
func (p *Panel) ExportPDF() Job { return p.Export(export.FormatPDF) }
