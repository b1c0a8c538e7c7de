package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shazow/wifimport/internal/log"
)

// LogViewModel is the model for the log view.
type LogViewModel struct {
	logs *log.RingHandler
}

// NewLogViewModel creates a new LogViewModel. logs may be nil.
func NewLogViewModel(logs *log.RingHandler) *LogViewModel {
	return &LogViewModel{logs: logs}
}

// Init is the first command that is run when the view is pushed.
func (m *LogViewModel) Init() tea.Cmd {
	return nil
}

// Update handles all incoming messages and updates the model accordingly.
func (m *LogViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keyBack) {
		return m, pop
	}
	return m, nil
}

// View renders the UI based on the current model state.
func (m *LogViewModel) View() string {
	var s strings.Builder
	s.WriteString("Latest logs (press 'q' to return):\n\n")

	if m.logs == nil {
		return s.String()
	}
	for _, r := range m.logs.Logs() {
		var style lipgloss.Style
		switch {
		case r.Level >= slog.LevelError:
			style = lipgloss.NewStyle().Foreground(CurrentTheme.Error)
		case r.Level < slog.LevelInfo:
			style = lipgloss.NewStyle().Foreground(CurrentTheme.Subtle)
		default:
			style = lipgloss.NewStyle().Foreground(CurrentTheme.Normal)
		}
		s.WriteString(style.Render(fmt.Sprintf("%s [%s] %s", r.Time.Format("15:04:05"), r.Level, r.Message)))
		r.Attrs(func(a slog.Attr) bool {
			s.WriteString(style.Render(fmt.Sprintf(" %s=%v", a.Key, a.Value.Any())))
			return true
		})
		s.WriteString("\n")
	}

	return s.String()
}
