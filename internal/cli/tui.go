package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/prospect/pkg/errors"
	"github.com/matzehuels/prospect/pkg/export"
	"github.com/matzehuels/prospect/pkg/panel"
	"github.com/matzehuels/prospect/pkg/render"
	"github.com/matzehuels/prospect/pkg/source"
)

// Rows taken by the toolbar above and the status bar below the content area.
const (
	toolbarHeight = 1
	statusHeight  = 1
)

// toolbar lists the viewer's key bindings in display order.
var toolbar = []struct{ key, label string }{
	{"+", "zoom in"},
	{"-", "zoom out"},
	{"0", "reset"},
	{"s", "svg"},
	{"d", "dot"},
	{"p", "png"},
	{"f", "pdf"},
	{"r", "reload"},
	{"q", "quit"},
}

// viewModel is the bubbletea model hosting one panel. Panel jobs run as
// commands and their results come back through Update, which is the panel's
// event loop.
type viewModel struct {
	ctx     context.Context
	panel   *panel.Panel
	area    *termArea
	spinner spinner.Model
	watch   *fileWatcher
	logger  *log.Logger

	width, height int
	notice        string
	noticeIsError bool
}

// newViewModel builds the model and its panel. w may be nil.
func newViewModel(ctx context.Context, trialID string, src source.Source, r render.Renderer, ex *export.Exporter, w *fileWatcher, logger *log.Logger) (*viewModel, error) {
	m := &viewModel{
		ctx:    ctx,
		area:   &termArea{},
		watch:  w,
		logger: logger,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styleIconSpinner),
		),
	}
	p, err := panel.New(trialID, src, r, m.area,
		panel.WithLogger(logger),
		panel.WithExporter(ex),
		panel.WithErrorReporter(m.reportExport),
	)
	if err != nil {
		return nil, err
	}
	m.panel = p
	return m, nil
}

func (m *viewModel) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.watchNext())
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.area.resize(msg.Width, msg.Height-toolbarHeight-statusHeight)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.panel.State().Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case panel.ExportDoneMsg:
		if msg.Err == nil {
			m.setNotice(false, "saved %s", msg.Filename)
		}
		return m, m.run(m.panel.Apply(m.ctx, msg))

	case panel.Msg:
		return m, m.run(m.panel.Apply(m.ctx, msg))

	case fileChangedMsg:
		m.logger.Info("trial file changed", "path", msg.path)
		return m, tea.Batch(m.reload(), m.watchNext())

	case watchErrMsg:
		m.setNotice(true, "watch: %v", msg.err)
		return m, m.watchNext()
	}
	return m, nil
}

func (m *viewModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return tea.Quit
	case "+", "=":
		m.panel.ZoomIn()
	case "-", "_":
		m.panel.ZoomOut()
	case "0":
		m.panel.ResetZoom()
	case "left", "h":
		m.panel.Pan(1, 0)
	case "right", "l":
		m.panel.Pan(-1, 0)
	case "up", "k":
		m.panel.Pan(0, 1)
	case "down", "j":
		m.panel.Pan(0, -1)
	case "s":
		return m.export(export.FormatSVG)
	case "d":
		return m.export(export.FormatDOT)
	case "p":
		return m.export(export.FormatPNG)
	case "f":
		return m.export(export.FormatPDF)
	case "r":
		return m.reload()
	}
	return nil
}

// handleMouse maps left-button drags onto the panel and the wheel onto zoom.
// Coordinates are made relative to the content area.
func (m *viewModel) handleMouse(msg tea.MouseMsg) {
	x, y := msg.X, msg.Y-toolbarHeight
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if m.area.contains(x, y) {
				m.panel.Press(float64(x), float64(y))
			}
		case tea.MouseButtonWheelUp:
			m.panel.ZoomIn()
		case tea.MouseButtonWheelDown:
			m.panel.ZoomOut()
		}
	case tea.MouseActionMotion:
		if !m.panel.Dragging() {
			return
		}
		if !m.area.contains(x, y) {
			m.panel.Leave()
			return
		}
		m.panel.Move(float64(x), float64(y))
	case tea.MouseActionRelease:
		m.panel.Release()
	}
}

// reload starts a new load, superseding any load in flight.
func (m *viewModel) reload() tea.Cmd {
	m.notice = ""
	return tea.Batch(m.run(m.panel.Load(m.ctx)), m.spinner.Tick)
}

func (m *viewModel) export(f export.Format) tea.Cmd {
	job := m.panel.Export(f)
	if job == nil {
		m.setNotice(true, "nothing to export yet")
		return nil
	}
	m.setNotice(false, "exporting %s…", f)
	return m.run(job)
}

func (m *viewModel) reportExport(err error) {
	m.logger.Error("export failed", "err", err)
	m.setNotice(true, "%s", errors.UserMessage(err))
}

func (m *viewModel) setNotice(isError bool, format string, args ...any) {
	m.notice = fmt.Sprintf(format, args...)
	m.noticeIsError = isError
}

// run turns a panel job into a command. The job runs off the event loop and
// its result is delivered back to Update.
func (m *viewModel) run(job panel.Job) tea.Cmd {
	if job == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return job(ctx)
	}
}

func (m *viewModel) watchNext() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	return m.watch.next
}

// =============================================================================
// View
// =============================================================================

func (m *viewModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.toolbarView(),
		m.contentView(),
		m.statusView(),
	)
}

func (m *viewModel) toolbarView() string {
	items := make([]string, len(toolbar))
	for i, t := range toolbar {
		items[i] = styleKey.Render(t.key) + " " + styleToolbar.Render(t.label)
	}
	line := strings.Join(items, "  ")
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

func (m *viewModel) contentView() string {
	w, h := m.area.width, m.area.height
	switch m.area.mode {
	case areaProgress:
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" "+StyleDim.Render(m.area.label))
	case areaError:
		box := styleErrorBox.Render(
			StyleError.Render("Could not load the graph") + "\n" +
				m.area.message + "\n\n" +
				StyleDim.Render("press r to retry"))
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
	case areaDocument:
		box, ok := m.panel.ViewBox()
		if !ok {
			break
		}
		return project(m.area.nodes, box, w, h).render()
	}
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, "")
}

func (m *viewModel) statusView() string {
	parts := []string{m.panel.TrialID(), m.panel.State().String()}
	if box, ok := m.panel.ViewBox(); ok {
		parts = append(parts,
			fmt.Sprintf("zoom %.0f%%", m.panel.Scale()*100),
			"viewBox "+box.String(),
		)
	}
	line := styleStatusBar.Render(strings.Join(parts, " · "))
	if m.notice != "" {
		style := StyleSuccess
		if m.noticeIsError {
			style = StyleError
		}
		line += "  " + style.Render(m.notice)
	}
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}
