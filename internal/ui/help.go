package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"eventhub/internal/actions"
	"eventhub/internal/domain"
	"eventhub/internal/ui/commands"
)

var actionDescriptions = map[string]string{
	actions.ActionLog:      "write the event and its args to the log file",
	actions.ActionCount:    "count calls in eventhub_listener_calls_total",
	actions.ActionRecord:   "keep the call in memory",
	actions.ActionFail:     "panic, aborting the rest of the dispatch",
	commands.DefaultAction: "print the call in the console",
}

// renderHelpContent renders the full reference shown in the pager
func renderHelpContent(actionNames []string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("eventhub console"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Commands"))
	help.WriteString("\n")
	for _, line := range commands.Usage() {
		help.WriteString("  " + descStyle.Render(line) + "\n")
	}

	help.WriteString(sectionStyle.Render("Actions"))
	help.WriteString("\n")
	for _, name := range actionNames {
		help.WriteString(fmt.Sprintf("  %-8s %s\n", keyStyle.Render(name), descStyle.Render(actionDescriptions[name])))
	}

	help.WriteString(sectionStyle.Render("Lifecycle events"))
	help.WriteString("\n")
	for _, name := range domain.LifecycleEvents() {
		help.WriteString(fmt.Sprintf("  %-18s %s\n", keyStyle.Render(name.String()), descStyle.Render(domain.Describe(name))))
	}

	help.WriteString(sectionStyle.Render("Keys"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("enter"), descStyle.Render("run the command line")))
	help.WriteString(fmt.Sprintf("  %s     %s\n", keyStyle.Render("↑/↓"), descStyle.Render("walk command history")))
	help.WriteString(fmt.Sprintf("  %s     %s\n", keyStyle.Render("F1"), descStyle.Render("show this reference")))
	help.WriteString(fmt.Sprintf("  %s %s", keyStyle.Render("ctrl+c"), descStyle.Render("quit")))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// SetProgram sets the program reference for terminal management
func (h *HelpOps) SetProgram(p *tea.Program) {
	h.program = p
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
