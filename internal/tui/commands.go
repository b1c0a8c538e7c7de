package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shazow/wifimport/importer"
	"github.com/shazow/wifimport/wifi"
)

// Bubbletea messages are used to communicate between the views and commands
type (
	importFinishedMsg struct{ result importer.ImportResult }
	dispatchedMsg     struct{ dispatch importer.Dispatch }
)

// --- Commands that interact with the backend ---

func importNetworks(im *importer.Importer, b wifi.Backend, src importer.Source) tea.Cmd {
	return func() tea.Msg {
		if !b.Capabilities().BulkRegistration {
			return ShowErrorMsg{fmt.Errorf("%s backend can't register networks: %w", b.Name(), wifi.ErrNotSupported)}
		}
		return importFinishedMsg{im.ImportAndRegister(src, b)}
	}
}

func dispatchBatch(d *importer.Dispatcher, b wifi.Backend, src importer.Source) tea.Cmd {
	return func() tea.Msg {
		if !b.Capabilities().Proposals {
			return ShowErrorMsg{fmt.Errorf("%s backend can't propose networks: %w", b.Name(), wifi.ErrNotSupported)}
		}
		return dispatchedMsg{d.Dispatch(src)}
	}
}

func importSummary(r importer.ImportResult) tea.Cmd {
	return func() tea.Msg {
		return SetSummaryMsg{
			Text:      fmt.Sprintf("%d networks suggested, %d failed.", r.SuccessCount, r.FailureCount),
			Succeeded: r.SuccessCount,
			Total:     r.SuccessCount + r.FailureCount,
		}
	}
}

func dispatchSummary(d importer.Dispatch) tea.Cmd {
	return func() tea.Msg {
		if d.State == importer.StateEmpty && len(d.Errors) > 0 {
			return SetSummaryMsg{Text: d.Summary(), Total: len(d.Errors)}
		}
		return SetStatusMsg(d.Summary())
	}
}
