package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Focusable defines the contract for a UI element that can be managed by the
// focus manager.
type Focusable interface {
	// Focus is called when the element gains focus. It can return a command.
	Focus() tea.Cmd
	// Blur is called when the element loses focus.
	Blur()
	// Update is called when the element is focused and a message is received.
	// It should return the updated element and any resulting command.
	Update(msg tea.Msg) (Focusable, tea.Cmd)
	// View renders the element's UI.
	View() string
}

// FocusManager moves focus between a fixed set of Focusable elements.
type FocusManager struct {
	items []Focusable
	focus int
}

// NewFocusManager creates a new focus manager with the given items.
func NewFocusManager(items ...Focusable) *FocusManager {
	return &FocusManager{
		items: items,
		focus: 0,
	}
}

// Focus focuses the first item.
func (m *FocusManager) Focus() tea.Cmd {
	return m.SetFocus(0)
}

// Update passes the message to the currently focused element.
func (m *FocusManager) Update(msg tea.Msg) tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	newItem, cmd := m.items[m.focus].Update(msg)
	m.items[m.focus] = newItem
	return cmd
}

// Next moves focus to the next item, wrapping around.
func (m *FocusManager) Next() tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	return m.SetFocus((m.focus + 1) % len(m.items))
}

// Prev moves focus to the previous item, wrapping around.
func (m *FocusManager) Prev() tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	return m.SetFocus((m.focus - 1 + len(m.items)) % len(m.items))
}

// Focused returns the currently focused element.
func (m *FocusManager) Focused() Focusable {
	if len(m.items) == 0 {
		return nil
	}
	return m.items[m.focus]
}

// SetFocus sets the focus to the item at the given index.
func (m *FocusManager) SetFocus(index int) tea.Cmd {
	if index < 0 || index >= len(m.items) {
		return nil
	}
	m.items[m.focus].Blur()
	m.focus = index
	return m.items[m.focus].Focus()
}
