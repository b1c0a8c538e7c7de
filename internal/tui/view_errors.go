package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrorLogModel lists the errors of the last import, one per line.
type ErrorLogModel struct {
	errors   []string
	viewport viewport.Model
}

func NewErrorLogModel(errors []string) *ErrorLogModel {
	m := &ErrorLogModel{
		errors:   errors,
		viewport: viewport.New(80, 20),
	}
	m.viewport.SetContent(m.content())
	return m
}

func (m *ErrorLogModel) content() string {
	if len(m.errors) == 0 {
		return "No errors."
	}
	style := lipgloss.NewStyle().Foreground(CurrentTheme.Error)
	lines := make([]string, len(m.errors))
	for i, e := range m.errors {
		lines[i] = style.Render(e)
	}
	return strings.Join(lines, "\n")
}

func (m *ErrorLogModel) Init() tea.Cmd { return nil }

func (m *ErrorLogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = max(msg.Height-6, 1)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, keyBack) {
			return m, pop
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *ErrorLogModel) View() string {
	title := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render("Error logs")
	footer := lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("Press 'q' to return.")
	return lipgloss.NewStyle().Margin(1, 2).Render(title + "\n\n" + m.viewport.View() + "\n" + footer)
}
