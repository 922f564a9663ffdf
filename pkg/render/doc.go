// Package render turns graph descriptions into SVG documents the panel can
// display, pan and export.
//
// # Overview
//
// Layout is delegated entirely to an engine behind the [Renderer] interface.
// The package provides:
//
//   - [Document]: rendered SVG markup with a mutable viewBox attribute
//   - [GraphvizRenderer]: in-process Graphviz layout
//   - [CachedRenderer]: a [Renderer] wrapper that skips the engine for
//     descriptions it has already rendered
//   - [ToPDF] and [ToPNG]: format conversion through rsvg-convert
//
// # Rendering
//
//	r := render.NewGraphvizRenderer()
//	defer r.Close()
//	doc, err := r.Render(ctx, "digraph { a -> b }")
//	doc.SetViewBox(viewport.InitialView(doc.ViewBox()))
//
// An engine rejection is returned as a *errors.RenderError whose message is
// the engine's message, unchanged.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg).
//
//	png, err := render.ToPNG(ctx, doc.Markup(), 2.0) // 2x scale
package render
