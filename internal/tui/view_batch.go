package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shazow/wifimport/importer"
	"github.com/shazow/wifimport/wifi"
)

// suggestionItem holds a single proposed network in the batch list.
type suggestionItem struct {
	wifi.Suggestion
}

func (i suggestionItem) Title() string       { return i.SSID() }
func (i suggestionItem) Description() string { return i.Security().String() }
func (i suggestionItem) FilterValue() string { return i.SSID() }

var (
	keyNextBatch = key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("n", "next batch"))
	keyShowQR    = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "qr code"))
	keyBack      = key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "back"))
)

// BatchModel shows the networks of the batch that was just proposed.
type BatchModel struct {
	list     CustomHelpList
	help     help.Model
	dispatch importer.Dispatch
	errors   []string
	next     tea.Cmd
}

// NewBatchModel creates a view for d. next dispatches the following batch.
func NewBatchModel(d importer.Dispatch, next tea.Cmd, errors []string) *BatchModel {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keyNextBatch, keyShowQR, keyErrors, keyBack}
	}

	m := &BatchModel{
		list:   CustomHelpList{Model: l},
		help:   help.New(),
		errors: errors,
		next:   next,
	}
	m.setDispatch(d)
	return m
}

func (m *BatchModel) setDispatch(d importer.Dispatch) {
	m.dispatch = d
	items := make([]list.Item, 0, len(d.Batch))
	for _, s := range d.Batch {
		items = append(items, suggestionItem{s})
	}
	m.list.SetItems(items)
	m.list.Select(0)
	m.list.Title = fmt.Sprintf("Proposed networks (%d remaining)", d.Remaining)
}

func (m *BatchModel) Init() tea.Cmd {
	return nil
}

func (m *BatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		m.help.Width = msg.Width
		return m, nil
	case dispatchedMsg:
		m.errors = importer.Messages(msg.dispatch.Errors)
		if msg.dispatch.State != importer.StateBatch {
			return m, tea.Batch(pop, dispatchSummary(msg.dispatch))
		}
		m.setDispatch(msg.dispatch)
		return m, dispatchSummary(msg.dispatch)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keyNextBatch):
			return m, startLoading("Proposing networks...", m.next)
		case key.Matches(msg, keyShowQR):
			item, ok := m.list.SelectedItem().(suggestionItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return PushMsg{NewQRModel(item.Suggestion)} }
		case key.Matches(msg, keyErrors):
			return m, func() tea.Msg { return PushMsg{NewErrorLogModel(m.errors)} }
		case key.Matches(msg, keyBack):
			return m, pop
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *BatchModel) View() string {
	var s strings.Builder
	s.WriteString(m.list.View())
	s.WriteString("\n")
	s.WriteString(m.help.View(m.list))
	return s.String()
}
