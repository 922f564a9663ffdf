// Package panel implements the prospective-graph panel: the load state
// machine that sequences fetch, layout and attach, the pipeline that installs
// a rendered document into the host's content area, and the pan, zoom and
// export actions a host wires to its toolbar and pointer.
//
// # Event loop
//
// A Panel is owned by a single goroutine, the host's event loop, and is not
// safe for concurrent use. Blocking work is handed to the host as a [Job]:
//
//	job := p.Load(ctx)
//	for job != nil {
//	    msg := job(ctx)       // off the loop
//	    job = p.Apply(ctx, msg) // on the loop
//	}
//
// Every Load increments the panel's generation. Results carry the generation
// that produced them, and results from a superseded load are dropped without
// touching the panel. [Panel.LoadSync] runs the whole chain inline for hosts
// without a loop.
package panel

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/prospect/pkg/errors"
	"github.com/matzehuels/prospect/pkg/export"
	"github.com/matzehuels/prospect/pkg/render"
	"github.com/matzehuels/prospect/pkg/source"
	"github.com/matzehuels/prospect/pkg/viewport"
)

// ContentArea is the host surface the panel draws into.
type ContentArea interface {
	// Clear removes whatever the area shows.
	Clear()
	// ShowProgress shows an indeterminate progress indicator.
	ShowProgress(label string)
	// ShowError shows a failure message together with a retry affordance.
	ShowError(message string)
	// Attach shows a rendered document. The panel keeps mutating the
	// document's viewBox while it is attached.
	Attach(doc *render.Document)
	// Size returns the area's size in screen units. Either may be zero.
	Size() (width, height float64)
}

// ErrorReporter receives failures that do not affect the panel's state,
// such as failed exports.
type ErrorReporter func(err error)

// Panel shows the prospective graph of one trial.
type Panel struct {
	id       uuid.UUID
	trialID  string
	source   source.Source
	renderer render.Renderer
	exporter *export.Exporter
	area     ContentArea
	logger   *log.Logger
	report   ErrorReporter

	state   State
	errMsg  string
	lastErr error
	gen     uint64
	started time.Time

	text    string
	hasText bool

	doc  *render.Document
	view *viewport.Controller
	drag viewport.DragSession
}

// Option configures a [Panel].
type Option func(*Panel)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(p *Panel) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithExporter enables the export actions.
func WithExporter(e *export.Exporter) Option {
	return func(p *Panel) { p.exporter = e }
}

// WithErrorReporter sets where export failures go. The default logs them.
func WithErrorReporter(r ErrorReporter) Option {
	return func(p *Panel) { p.report = r }
}

// New returns an idle panel for trialID.
func New(trialID string, src source.Source, r render.Renderer, area ContentArea, opts ...Option) (*Panel, error) {
	if err := errors.ValidateTrialID(trialID); err != nil {
		return nil, err
	}
	p := &Panel{
		id:       uuid.New(),
		trialID:  trialID,
		source:   src,
		renderer: r,
		area:     area,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("panel", p.id.String()[:8], "trial", trialID)
	if p.report == nil {
		p.report = func(err error) {
			p.logger.Error("export failed", "err", err)
		}
	}
	return p, nil
}

// ID returns the panel's instance id.
func (p *Panel) ID() uuid.UUID { return p.id }

// TrialID returns the trial the panel shows.
func (p *Panel) TrialID() string { return p.trialID }

// State returns the load state.
func (p *Panel) State() State { return p.state }

// Err returns the failure message while the panel is [Failed].
func (p *Panel) Err() string { return p.errMsg }

// Generation returns the number of loads started.
func (p *Panel) Generation() uint64 { return p.gen }

// Source returns the graph description of the last successful load.
func (p *Panel) Source() (string, bool) { return p.text, p.hasText }

// Document returns the attached document, or nil unless the panel is [Loaded].
func (p *Panel) Document() *render.Document { return p.doc }

// ViewBox returns the displayed box. ok is false unless the panel is [Loaded].
func (p *Panel) ViewBox() (v viewport.ViewBox, ok bool) {
	if p.view == nil {
		return viewport.ViewBox{}, false
	}
	return p.view.Current(), true
}

// Original returns the box the layout engine reported for the attached
// document.
func (p *Panel) Original() (v viewport.ViewBox, ok bool) {
	if p.view == nil {
		return viewport.ViewBox{}, false
	}
	return p.view.Original(), true
}

// Scale returns the zoom accumulator, original width over displayed width.
// It is 0 while nothing is displayed.
func (p *Panel) Scale() float64 {
	if p.view == nil {
		return 0
	}
	return p.view.Scale()
}

// Dragging reports whether a drag is in progress.
func (p *Panel) Dragging() bool { return p.drag.Active }
