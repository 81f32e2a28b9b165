package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Pane        lipgloss.Style
	PaneTitle   lipgloss.Style
	LogBox      lipgloss.Style
	Prompt      lipgloss.Style
	Help        lipgloss.Style
	Call        lipgloss.Style
	Error       lipgloss.Style
	Info        lipgloss.Style
	EventName   lipgloss.Style
	ListenerID  lipgloss.Style
	OnceMarker  lipgloss.Style
	StatusError lipgloss.Style
	StatusOK    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
		PaneTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		LogBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Help:        lipgloss.NewStyle().Faint(true),
		Call:        lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Info:        lipgloss.NewStyle(),
		EventName:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		ListenerID:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		OnceMarker:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		StatusOK:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
	}
}
