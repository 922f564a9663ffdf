package panel

import (
	"context"
	"time"

	"github.com/matzehuels/prospect/pkg/errors"
	"github.com/matzehuels/prospect/pkg/observability"
)

// Load starts a new load and returns the fetch job. The previous document,
// view and any in-flight load are discarded.
func (p *Panel) Load(ctx context.Context) Job {
	p.gen++
	gen := p.gen

	p.state = Loading
	p.errMsg = ""
	p.detach()
	p.started = time.Now()

	p.area.Clear()
	p.area.ShowProgress("Loading " + p.trialID + "…")

	observability.Load().OnLoadStart(ctx, p.trialID, gen)
	p.logger.Debug("load started", "gen", gen)

	src, id := p.source, p.trialID
	return func(ctx context.Context) Msg {
		text, err := src.Fetch(ctx, id)
		return FetchedMsg{Gen: gen, Text: text, Err: err}
	}
}

// Retry reloads a failed panel. It returns nil in any other state.
func (p *Panel) Retry(ctx context.Context) Job {
	if p.state != Failed {
		return nil
	}
	return p.Load(ctx)
}

// Apply feeds the result of a job back into the panel and returns the next
// job of the chain, if any. Results of superseded loads are dropped.
func (p *Panel) Apply(ctx context.Context, msg Msg) Job {
	switch m := msg.(type) {
	case FetchedMsg:
		if p.stale(ctx, m.Gen, Loading) {
			return nil
		}
		if m.Err != nil {
			p.fail(ctx, m.Err)
			return nil
		}
		p.state = Rendering
		p.logger.Debug("fetched", "gen", m.Gen, "bytes", len(m.Text))

		r, gen, text := p.renderer, m.Gen, m.Text
		return func(ctx context.Context) Msg {
			doc, err := r.Render(ctx, text)
			return RenderedMsg{Gen: gen, Text: text, Doc: doc, Err: err}
		}

	case RenderedMsg:
		if p.stale(ctx, m.Gen, Rendering) {
			return nil
		}
		if m.Err != nil {
			p.fail(ctx, m.Err)
			return nil
		}
		p.text, p.hasText = m.Text, true
		p.state = Loaded
		p.install(m.Doc)

		elapsed := time.Since(p.started)
		observability.Load().OnLoadComplete(ctx, p.trialID, m.Gen, elapsed, nil)
		p.logger.Info("loaded", "gen", m.Gen, "viewBox", p.view.Current().String(), "elapsed", elapsed.Round(time.Millisecond))

	case ExportDoneMsg:
		if m.Err != nil {
			p.report(m.Err)
			return nil
		}
		p.logger.Info("exported", "format", m.Format, "file", m.Filename)
	}
	return nil
}

// LoadSync loads the panel without an event loop. It returns the failure
// that put the panel into [Failed], if any.
func (p *Panel) LoadSync(ctx context.Context) error {
	job := p.Load(ctx)
	for job != nil {
		job = p.Apply(ctx, job(ctx))
	}
	if p.state == Failed {
		return p.lastErr
	}
	return nil
}

// stale reports whether a result must be dropped: it belongs to a superseded
// load, or the current load is no longer waiting for it.
func (p *Panel) stale(ctx context.Context, gen uint64, want State) bool {
	if gen == p.gen && p.state == want {
		return false
	}
	observability.Load().OnStale(ctx, p.trialID, gen, p.gen)
	p.logger.Debug("dropped stale result", "gen", gen, "current", p.gen, "state", p.state)
	return true
}

func (p *Panel) fail(ctx context.Context, err error) {
	p.state = Failed
	p.errMsg = errors.UserMessage(err)
	p.lastErr = err
	p.detach()

	p.area.Clear()
	p.area.ShowError(p.errMsg)

	observability.Load().OnLoadComplete(ctx, p.trialID, p.gen, time.Since(p.started), err)
	p.logger.Warn("load failed", "gen", p.gen, "err", p.errMsg)
}
