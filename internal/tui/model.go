// Package tui is a key-driven bubbletea front end for a pager session.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/metcalfc/folio/internal/pager"
)

var (
	boxStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	chapterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)
)

// Model wraps a pager.Session. Each key press is one command.
type Model struct {
	session pager.Session
	keys    KeyMap
	help    help.Model
	width   int
	height  int
}

// New creates a model positioned at s.
func New(s pager.Session) Model {
	return Model{
		session: s,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		width:   80,
		height:  24,
	}
}

// Session returns the current reading state.
func (m Model) Session() pager.Session { return m.session }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, ok := m.keys.command(msg)
		if !ok {
			return m, nil
		}
		m.session = m.session.Apply(cmd)
		if m.session.Done() {
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.session.Done() {
		return ""
	}

	var sb strings.Builder
	if title := m.session.SectionTitle(); title != "" {
		sb.WriteString(sectionStyle.Render(title))
		sb.WriteString("\n")
	}
	sb.WriteString(boxStyle.Render(m.session.Box()))
	sb.WriteString("\n")
	if status := m.session.ChapterStatus(); status != "" {
		sb.WriteString(chapterStyle.Render(status))
		sb.WriteString("\n")
	}
	sb.WriteString(statusStyle.Render(m.session.PageStatus()))
	sb.WriteString("\n\n")
	sb.WriteString(controlsStyle.Render(m.help.View(m.keys.forSession(m.session))))

	return sb.String()
}
