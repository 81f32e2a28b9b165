package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"eventhub/internal/domain"
	"eventhub/internal/ui/commands"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width       int
	Height      int
	Events      []domain.EventSummary
	Bindings    []domain.Binding
	Log         []commands.Line
	Input       string // rendered text input
	Status      string
	StatusError bool
	Help        string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the styles in use
func (r *Renderer) Styles() *Styles { return r.styles }

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80
	}
	height := state.Height
	if height <= 0 {
		height = 24
	}

	title := r.styles.Title.Render("eventhub")

	paneWidth := width/2 - 2
	if paneWidth < 20 {
		paneWidth = 20
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		r.styles.Pane.Width(paneWidth).Render(r.renderEvents(state.Events)),
		r.styles.Pane.Width(paneWidth).Render(r.renderBindings(state.Bindings)),
	)

	// Title, panes, prompt, status and help take the rest of the screen.
	used := lipgloss.Height(title) + lipgloss.Height(panes) + 6
	logHeight := height - used
	if logHeight < 3 {
		logHeight = 3
	}
	logBox := r.styles.LogBox.Width(width - 2).Render(r.renderLog(state.Log, logHeight))

	status := state.Status
	if status != "" {
		if state.StatusError {
			status = r.styles.StatusError.Render(status)
		} else {
			status = r.styles.StatusOK.Render(status)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		panes,
		logBox,
		r.styles.Prompt.Render("> ")+state.Input,
		r.styles.Status.Render(status),
		r.styles.Help.Render(state.Help),
	)
}

func (r *Renderer) renderEvents(events []domain.EventSummary) string {
	b := &strings.Builder{}
	b.WriteString(r.styles.PaneTitle.Render("Events"))
	if len(events) == 0 {
		b.WriteString("\n" + r.styles.Dim.Render("none"))
		return b.String()
	}
	for _, e := range events {
		fmt.Fprintf(b, "\n%s %s", r.styles.EventName.Render(e.Name), r.styles.Dim.Render(fmt.Sprintf("(%d)", e.Listeners)))
	}
	return b.String()
}

func (r *Renderer) renderBindings(bindings []domain.Binding) string {
	b := &strings.Builder{}
	b.WriteString(r.styles.PaneTitle.Render("Listeners"))
	if len(bindings) == 0 {
		b.WriteString("\n" + r.styles.Dim.Render("none"))
		return b.String()
	}
	for _, bind := range bindings {
		fmt.Fprintf(b, "\n%s %s -> %s",
			r.styles.ListenerID.Render(fmt.Sprintf("#%d", bind.ID)),
			r.styles.EventName.Render(bind.Event),
			bind.Action)
		if bind.Once {
			b.WriteString(" " + r.styles.OnceMarker.Render("once"))
		}
	}
	return b.String()
}

// renderLog shows the newest lines that fit
func (r *Renderer) renderLog(lines []commands.Line, height int) string {
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	out := make([]string, 0, height)
	for _, l := range lines {
		out = append(out, r.renderLine(l))
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func (r *Renderer) renderLine(l commands.Line) string {
	switch l.Kind {
	case commands.LineCall:
		return r.styles.Call.Render(l.Text)
	case commands.LineError:
		return r.styles.Error.Render(l.Text)
	default:
		return r.styles.Info.Render(l.Text)
	}
}
