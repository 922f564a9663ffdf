package panel

import (
	"context"

	"github.com/matzehuels/prospect/pkg/export"
	"github.com/matzehuels/prospect/pkg/render"
)

// State is the panel's load state.
type State int

const (
	Idle State = iota
	Loading
	Rendering
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Rendering:
		return "rendering"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Busy reports whether a load is in flight.
func (s State) Busy() bool {
	return s == Loading || s == Rendering
}

// Msg is the result of a [Job], to be passed to [Panel.Apply].
type Msg interface {
	panelMsg()
}

// Job is blocking work the host runs off its event loop.
type Job func(ctx context.Context) Msg

// FetchedMsg carries the outcome of fetching the graph description.
type FetchedMsg struct {
	Gen  uint64
	Text string
	Err  error
}

// RenderedMsg carries the outcome of laying out the graph description.
type RenderedMsg struct {
	Gen  uint64
	Text string
	Doc  *render.Document
	Err  error
}

// ExportDoneMsg carries the outcome of an export.
type ExportDoneMsg struct {
	Format   export.Format
	Filename string
	Err      error
}

func (FetchedMsg) panelMsg()    {}
func (RenderedMsg) panelMsg()   {}
func (ExportDoneMsg) panelMsg() {}
