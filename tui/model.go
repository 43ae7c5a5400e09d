package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"push-paint/engine"
	"push-paint/midi"
	"push-paint/widgets"
)

// Model mirrors the pad grid and active configuration in the terminal.
// Display-only, except for the 'a' key which feeds a mode-toggle event so
// assign mode can be driven without touching the hardware button.
type Model struct {
	App *engine.App

	quitting  bool
	assignKey bool // keyboard latch for assign mode
}

type UpdateMsg struct{}

func NewModel(app *engine.App) Model {
	return Model{App: app}
}

func ListenForUpdates(app *engine.App) tea.Cmd {
	return func() tea.Msg {
		<-app.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.App)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "a":
			m.assignKey = !m.assignKey
			m.App.Submit(midi.Event{Type: midi.ModeToggle, Pressed: m.assignKey})
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.App)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.App.Snapshot()

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#e861c5"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7a6a8a"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb86c"))

	mode := ""
	if s.Assigning {
		mode = "  ASSIGN"
	}
	header := headerStyle.Render(fmt.Sprintf("push-paint  tick:%06.0f  entities:%d%s", s.Tick, s.Entities, mode))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(widgets.RenderPadGrid(s.Frame))
	out.WriteString("\n\n")
	out.WriteString(s.Status)
	if len(s.Touched) > 0 {
		out.WriteString(dimStyle.Render(fmt.Sprintf("  touching %v", s.Touched)))
	}
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render("a:assign  q:quit"))
	if s.SaveErr != "" {
		out.WriteString("\n")
		out.WriteString(warnStyle.Render("save failed: " + s.SaveErr))
	}

	return out.String()
}
