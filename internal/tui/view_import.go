package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shazow/wifimport/importer"
	"github.com/shazow/wifimport/internal/log"
	"github.com/shazow/wifimport/wifi"
)

const (
	buttonImport = iota
	buttonBatch
	buttonErrors
)

var importButtons = []string{
	"Import with network suggestions",
	"Add networks in batches (5 at a time)",
	"Show error logs",
}

var errNoFile = errors.New("no CSV file selected")

// ImportModel is the home view: pick a CSV file and choose how to add its
// networks.
type ImportModel struct {
	backend    wifi.Backend
	importer   *importer.Importer
	dispatcher *importer.Dispatcher
	logs       *log.RingHandler

	path    *TextField
	buttons *ButtonGroup
	focus   *FocusManager

	// errors are the messages of the last import or batch load.
	errors []string
	// batchPath is the file the dispatcher has loaded from.
	batchPath string
}

// NewImportModel creates the home view with path pre-filled.
func NewImportModel(b wifi.Backend, im *importer.Importer, logs *log.RingHandler, path string) *ImportModel {
	m := &ImportModel{
		backend:    b,
		importer:   im,
		dispatcher: importer.NewDispatcher(im, b),
		logs:       logs,
		path:       NewTextField("CSV file", "networks.csv", path),
	}
	m.buttons = NewButtonGroup(importButtons, m.press, func(i int) bool {
		return i == buttonErrors && len(m.errors) == 0
	})
	m.focus = NewFocusManager(m.path, m.buttons)
	return m
}

func (m *ImportModel) source() (importer.Source, error) {
	path := m.path.Value()
	if path == "" {
		return nil, errNoFile
	}
	return importer.FileSource(path), nil
}

func (m *ImportModel) press(button int) tea.Cmd {
	if button == buttonErrors {
		return func() tea.Msg { return PushMsg{NewErrorLogModel(m.errors)} }
	}

	src, err := m.source()
	if err != nil {
		return func() tea.Msg { return ShowErrorMsg{err} }
	}

	switch button {
	case buttonImport:
		return startLoading("Importing networks...", importNetworks(m.importer, m.backend, src))
	case buttonBatch:
		if path := m.path.Value(); path != m.batchPath {
			m.dispatcher.Reset()
			m.batchPath = path
		}
		return startLoading("Proposing networks...", dispatchBatch(m.dispatcher, m.backend, src))
	}
	return nil
}

func (m *ImportModel) Init() tea.Cmd {
	if m.path.Value() == "" {
		return m.focus.Focus()
	}
	m.focus.Focus()
	return m.focus.Next()
}

var (
	keyNextField = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field"))
	keyPrevField = key.NewBinding(key.WithKeys("shift+tab"))
	keyShowLog   = key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "logs"))
	keyErrors    = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "errors"))
	keyQuit      = key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit"))
)

func (m *ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case importFinishedMsg:
		m.errors = msg.result.Errors
		return m, importSummary(msg.result)
	case dispatchedMsg:
		m.errors = importer.Messages(msg.dispatch.Errors)
		cmd := dispatchSummary(msg.dispatch)
		if msg.dispatch.State == importer.StateBatch {
			next := dispatchBatch(m.dispatcher, m.backend, importer.FileSource(m.path.Value()))
			batch := NewBatchModel(msg.dispatch, next, m.errors)
			return m, tea.Batch(cmd, func() tea.Msg { return PushMsg{batch} })
		}
		return m, cmd
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keyNextField):
			return m, m.focus.Next()
		case key.Matches(msg, keyPrevField):
			return m, m.focus.Prev()
		}
		// Letters belong to the path input while it has focus.
		if m.focus.Focused() == m.buttons {
			switch {
			case key.Matches(msg, keyShowLog):
				return m, func() tea.Msg { return PushMsg{NewLogViewModel(m.logs)} }
			case key.Matches(msg, keyErrors):
				if len(m.errors) > 0 {
					return m, m.press(buttonErrors)
				}
				return m, nil
			case key.Matches(msg, keyQuit):
				return m, tea.Quit
			}
		} else if msg.Type == tea.KeyEnter {
			return m, m.focus.Next()
		}
	}
	return m, m.focus.Update(msg)
}

func (m *ImportModel) View() string {
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render("Import Wi-Fi networks"))
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("backend: " + m.backend.Name()))
	s.WriteString("\n\n")
	s.WriteString(m.path.View())
	s.WriteString("\n\n")
	s.WriteString(m.buttons.View())
	s.WriteString("\n\n")
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("tab: next field • enter: select • e: errors • l: logs • q: quit"))
	return lipgloss.NewStyle().Margin(1, 2).Render(s.String())
}
