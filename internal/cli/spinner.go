package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// lineSpinner animates a progress line for commands that do not take over the
// screen. It draws the same frames as the viewer's bubbles spinner.
type lineSpinner struct {
	w     io.Writer
	label string
	anim  spinner.Spinner

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// startSpinner draws label on w until Stop is called or ctx ends.
func startSpinner(ctx context.Context, w io.Writer, label string) *lineSpinner {
	s := &lineSpinner{
		w:     w,
		label: label,
		anim:  spinner.Dot,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *lineSpinner) run(ctx context.Context) {
	defer close(s.done)
	tick := time.NewTicker(s.anim.FPS)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-tick.C:
			f := s.anim.Frames[frame%len(s.anim.Frames)]
			fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(f), StyleDim.Render(s.label))
		}
	}
}

// Stop ends the animation and blanks the line. It is safe to call twice.
func (s *lineSpinner) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", lipgloss.Width(s.label)+4))
}
