// Package pkg holds the prospect libraries.
//
// # Overview
//
// Prospect shows the prospective provenance graph of a script trial: the
// trial's code components chained in source order, described as Graphviz DOT.
// The libraries split the work as follows:
//
//  1. [source] - fetch a trial's DOT text over HTTP or from a directory
//  2. [render] - lay the text out with Graphviz and inspect the SVG document
//  3. [viewport] - pan and zoom arithmetic on SVG viewBoxes
//  4. [panel] - the load state machine and view pipeline a host embeds
//  5. [export] - re-render and save SVG, DOT, PNG or PDF files
//  6. [prospective] - generate DOT text from a trial's code components
//
// Supporting packages: [cache] for rendered documents, [errors] for coded
// errors, [observability] for load, render, cache and HTTP hooks, and
// [buildinfo] for version information.
//
// # Data flow
//
//	source.Fetch(trial)
//	       ↓
//	render.Render(dot)  →  *render.Document (viewBox)
//	       ↓
//	panel: initial zoom, pan, zoom, reset  →  ContentArea
//	       ↓
//	export.Export(format)  →  Saver (files or GridFS)
//
// # Quick Start
//
//	src, _ := source.NewHTTPSource("https://example.org/api")
//	r := render.NewGraphvizRenderer()
//	defer r.Close()
//
//	p, err := panel.New("t42", src, r, area)
//	if err != nil {
//	    return err
//	}
//	if err := p.LoadSync(ctx); err != nil {
//	    return err
//	}
//	p.ZoomIn()
//
// [source]: github.com/matzehuels/prospect/pkg/source
// [render]: github.com/matzehuels/prospect/pkg/render
// [viewport]: github.com/matzehuels/prospect/pkg/viewport
// [panel]: github.com/matzehuels/prospect/pkg/panel
// [export]: github.com/matzehuels/prospect/pkg/export
// [prospective]: github.com/matzehuels/prospect/pkg/prospective
// [cache]: github.com/matzehuels/prospect/pkg/cache
// [errors]: github.com/matzehuels/prospect/pkg/errors
// [observability]: github.com/matzehuels/prospect/pkg/observability
// [buildinfo]: github.com/matzehuels/prospect/pkg/buildinfo
package pkg
