package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"eventhub/internal/domain"
	"eventhub/internal/logic"
	"eventhub/internal/ui/commands"
	"eventhub/internal/ui/views"
)

const (
	maxLogLines    = 500
	maxHistory     = 100
	statusDuration = 3 * time.Second
)

// Model represents the UI state
type Model struct {
	exec     *commands.Executor
	renderer *views.Renderer
	helpOps  *HelpOps
	log      zerolog.Logger

	width  int
	height int
	input  textinput.Model
	help   help.Model

	lines       []commands.Line
	history     []string
	historyPos  int // len(history) when not browsing
	status      string
	statusError bool
	inPagerMode bool
	stopped     bool
}

// NewModel creates a new UI model driving exec
func NewModel(exec *commands.Executor, log zerolog.Logger) *Model {
	ti := textinput.New()
	ti.Prompt = "" // Prompt is handled in the view
	ti.Placeholder = "on tick | emit tick 1 2 | help"
	ti.CharLimit = 512
	ti.Focus()

	return &Model{
		exec:     exec,
		renderer: views.NewRenderer(),
		helpOps:  &HelpOps{},
		log:      log,
		input:    ti,
		help:     help.New(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.helpOps.SetProgram(p)
}

// Init announces the console and starts the cursor blinking
func (m *Model) Init() tea.Cmd {
	m.apply(m.exec.Emit(string(domain.EventConsoleStarted)))
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.Stop()
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			return m, m.fetchHelpPager(renderHelpContent(m.exec.Context().Catalog.Names()))
		case key.Matches(msg, keys.Prev):
			m.browseHistory(-1)
			return m, nil
		case key.Matches(msg, keys.Next):
			m.browseHistory(1)
			return m, nil
		case key.Matches(msg, keys.Submit):
			return m, m.submit()
		}

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			m.log.Warn().Err(msg.err).Msg("help pager failed")
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.status = ""
		m.statusError = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the console
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	ctx := m.exec.Context()
	return m.renderer.Render(views.ViewState{
		Width:       m.width,
		Height:      m.height,
		Events:      logic.Summaries(ctx.Hub),
		Bindings:    ctx.Binder.List(),
		Log:         m.lines,
		Input:       m.input.View(),
		Status:      m.status,
		StatusError: m.statusError,
		Help:        m.help.View(keys),
	})
}

// Stop announces that the console is exiting. Only the first call emits.
func (m *Model) Stop() {
	if m.stopped {
		return
	}
	m.stopped = true
	m.apply(m.exec.Emit(string(domain.EventConsoleStopped)))
}

// Lines returns the output shown in the log pane
func (m *Model) Lines() []commands.Line {
	return m.lines
}

func (m *Model) submit() tea.Cmd {
	line := m.input.Value()
	m.input.Reset()
	if line == "" {
		return nil
	}

	m.history = append(m.history, line)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.historyPos = len(m.history)

	res := m.exec.Run(line)
	m.apply(res)
	if res.Quit {
		m.Stop()
		return tea.Quit
	}
	return tea.Tick(statusDuration, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) apply(res commands.Result) {
	if res.Clear {
		m.lines = nil
	}
	m.lines = append(m.lines, res.Lines...)
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}

	m.status, m.statusError = "", false
	for _, l := range res.Lines {
		if l.Kind == commands.LineError {
			m.status, m.statusError = l.Text, true
		}
	}
	if !m.statusError && len(res.Lines) > 0 {
		m.status = fmt.Sprintf("%d line(s)", len(res.Lines))
	}
}

func (m *Model) browseHistory(delta int) {
	if len(m.history) == 0 {
		return
	}
	pos := m.historyPos + delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(m.history) {
		m.historyPos = len(m.history)
		m.input.SetValue("")
		return
	}
	m.historyPos = pos
	m.input.SetValue(m.history[pos])
	m.input.CursorEnd()
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		if m.helpOps.program == nil {
			return helpPagerMsg{err: fmt.Errorf("program not set")}
		}
		// Send pause message to stop rendering
		m.helpOps.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.helpOps.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}
