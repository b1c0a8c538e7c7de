// Package tui is the interactive frontend: pick a CSV file, then import its
// networks in one go or review them in batches.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shazow/wifimport/importer"
	"github.com/shazow/wifimport/internal/log"
	"github.com/shazow/wifimport/wifi"
)

// NewModel creates the starting state of our application
func NewModel(b wifi.Backend, im *importer.Importer, logs *log.RingHandler, path string) *Stack {
	return NewStack(NewImportModel(b, im, logs, path))
}

// Run starts the TUI and blocks until the user quits.
func Run(b wifi.Backend, im *importer.Importer, logs *log.RingHandler, path string) error {
	p := tea.NewProgram(NewModel(b, im, logs, path), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
