package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shazow/wifimport/qrwifi"
	"github.com/shazow/wifimport/wifi"
)

// QRModel shows a join code for a single network.
type QRModel struct {
	suggestion wifi.Suggestion
	code       string
	err        error
}

func NewQRModel(s wifi.Suggestion) *QRModel {
	code, err := qrwifi.Render(s)
	return &QRModel{suggestion: s, code: code, err: err}
}

func (m *QRModel) Init() tea.Cmd { return nil }

func (m *QRModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keyBack) {
		return m, pop
	}
	return m, nil
}

func (m *QRModel) View() string {
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render(m.suggestion.SSID()))
	s.WriteString("\n\n")
	if m.err != nil {
		s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Error).Render(fmt.Sprintf("Error: %s", m.err)))
	} else {
		s.WriteString(m.code)
	}
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("Press 'q' to return."))
	return lipgloss.NewStyle().Margin(1, 2).Render(s.String())
}
