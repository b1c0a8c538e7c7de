package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- TextField ---

// TextField is a labelled text input.
type TextField struct {
	label string
	input textinput.Model
}

func NewTextField(label, placeholder, value string) *TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.Prompt = ""
	ti.CharLimit = 4096
	ti.Width = 60
	return &TextField{label: label, input: ti}
}

func (f *TextField) Focus() tea.Cmd {
	return f.input.Focus()
}

func (f *TextField) Blur() {
	f.input.Blur()
}

func (f *TextField) Update(msg tea.Msg) (Focusable, tea.Cmd) {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f *TextField) View() string {
	style := lipgloss.NewStyle().Foreground(CurrentTheme.Subtle)
	if f.input.Focused() {
		style = lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	}
	return style.Render(f.label) + "\n" + f.input.View()
}

func (f *TextField) Value() string {
	return strings.TrimSpace(f.input.Value())
}

// --- ButtonGroup ---

type ButtonGroup struct {
	buttons  []string
	selected int
	focused  bool
	action   func(int) tea.Cmd
	// disabled reports whether a button can't be pressed right now.
	disabled func(int) bool
}

func NewButtonGroup(buttons []string, action func(int) tea.Cmd, disabled func(int) bool) *ButtonGroup {
	return &ButtonGroup{
		buttons:  buttons,
		action:   action,
		disabled: disabled,
	}
}

func (b *ButtonGroup) Focus() tea.Cmd {
	b.focused = true
	return nil
}

func (b *ButtonGroup) Blur() {
	b.focused = false
}

func (b *ButtonGroup) isDisabled(i int) bool {
	return b.disabled != nil && b.disabled(i)
}

func (b *ButtonGroup) Update(msg tea.Msg) (Focusable, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "right", "down", "j":
			b.selected = (b.selected + 1) % len(b.buttons)
		case "left", "up", "k":
			b.selected = (b.selected - 1 + len(b.buttons)) % len(b.buttons)
		case "enter", " ":
			if b.action != nil && !b.isDisabled(b.selected) {
				return b, b.action(b.selected)
			}
		}
	}
	return b, nil
}

func (b *ButtonGroup) View() string {
	var rows []string
	for i, label := range b.buttons {
		style := lipgloss.NewStyle().
			Foreground(CurrentTheme.Normal).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(CurrentTheme.Border).
			Padding(0, 1)
		switch {
		case b.isDisabled(i):
			style = style.Foreground(CurrentTheme.Disabled).BorderForeground(CurrentTheme.Disabled)
		case b.focused && i == b.selected:
			style = style.Foreground(CurrentTheme.Primary).BorderForeground(CurrentTheme.Primary).Bold(true)
		}
		rows = append(rows, style.Render(label))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Selected returns the index of the highlighted button.
func (b *ButtonGroup) Selected() int {
	return b.selected
}
