package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shazow/wifimport/importer"
	"github.com/shazow/wifimport/internal/log"
	"github.com/shazow/wifimport/wifi"
	"github.com/shazow/wifimport/wifi/mock"
)

var (
	keyEnterMsg = tea.KeyMsg{Type: tea.KeyEnter}
	keyDownMsg  = tea.KeyMsg{Type: tea.KeyDown}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// execCmd runs cmd and flattens batches into their messages.
func execCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var msgs []tea.Msg
		for _, c := range msg {
			msgs = append(msgs, execCmd(c)...)
		}
		return msgs
	default:
		return []tea.Msg{msg}
	}
}

// send feeds msg to m along with every message its commands produce.
func send(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	queue := []tea.Msg{msg}
	for i := 0; len(queue) > 0; i++ {
		if i > 50 {
			t.Fatal("too many messages")
		}
		msg, queue = queue[0], queue[1:]
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		queue = append(queue, execCmd(cmd)...)
	}
	return m
}

func writeCSV(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "networks.csv")
	data := "ssid,password,security\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func newBackend() *mock.MockBackend {
	return &mock.MockBackend{
		Caps: wifi.Capabilities{BulkRegistration: true, Proposals: true},
	}
}

func newTestModel(t *testing.T, b wifi.Backend, logs *log.RingHandler, path string) tea.Model {
	t.Helper()
	im := importer.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := NewModel(b, im, logs, path)
	m.Init()
	return send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
}

func TestImport_ShowsSummary(t *testing.T) {
	b := newBackend()
	path := writeCSV(t, "Home,secret,WPA2", "Cafe,,OPEN", "Broken,,WPA2")
	m := newTestModel(t, b, nil, path)

	m = send(t, m, keyEnterMsg)

	view := m.View()
	if !strings.Contains(view, "2 networks suggested, 1 failed.") {
		t.Errorf("View does not contain the summary in\n%s", view)
	}
	if len(b.Registered()) != 2 {
		t.Errorf("expected 2 registered networks, got %d", len(b.Registered()))
	}

	// The errors of the import are one key away.
	m = send(t, m, runeKey('e'))
	view = m.View()
	if !strings.Contains(view, "Row 4: Skipping WPA/WPA2 network 'Broken' with empty password") {
		t.Errorf("View does not contain the row error in\n%s", view)
	}

	m = send(t, m, runeKey('q'))
	if !strings.Contains(m.View(), "Import Wi-Fi networks") {
		t.Errorf("expected to be back on the import view")
	}
}

func TestImport_RegistrationFailure(t *testing.T) {
	b := newBackend()
	b.Existing = map[string]bool{"Cafe": true}
	path := writeCSV(t, "Home,secret,WPA2", "Cafe,,OPEN")
	m := newTestModel(t, b, nil, path)

	m = send(t, m, keyEnterMsg)

	if view := m.View(); !strings.Contains(view, "0 networks suggested, 2 failed.") {
		t.Errorf("View does not contain the summary in\n%s", view)
	}
	m = send(t, m, runeKey('e'))
	if view := m.View(); !strings.Contains(view, "Failed to add network suggestions") {
		t.Errorf("View does not contain the registration error in\n%s", view)
	}
}

func TestImport_NotSupported(t *testing.T) {
	b := newBackend()
	b.Caps.BulkRegistration = false
	m := newTestModel(t, b, nil, writeCSV(t, "Home,secret,WPA2"))

	m = send(t, m, keyEnterMsg)

	if view := m.View(); !strings.Contains(view, "can't register networks") {
		t.Errorf("expected an error view, got\n%s", view)
	}
	if len(b.Registered()) != 0 {
		t.Errorf("nothing should be registered")
	}

	// Any key dismisses the error.
	m = send(t, m, runeKey('x'))
	if strings.Contains(m.View(), "Error:") {
		t.Errorf("error view should be dismissed")
	}
}

func TestImport_NoPath(t *testing.T) {
	m := newTestModel(t, newBackend(), nil, "")

	// The path field has focus, so tab over to the buttons first.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, keyEnterMsg)

	if view := m.View(); !strings.Contains(view, "no CSV file selected") {
		t.Errorf("expected an error view, got\n%s", view)
	}
}

func TestImport_ErrorsButtonDisabled(t *testing.T) {
	m := newTestModel(t, newBackend(), nil, writeCSV(t, "Home,secret,WPA2"))

	m = send(t, m, runeKey('e'))
	if strings.Contains(m.View(), "Error logs") {
		t.Errorf("error log should not open without errors")
	}

	m = send(t, m, keyDownMsg)
	m = send(t, m, keyDownMsg)
	m = send(t, m, keyEnterMsg)
	if strings.Contains(m.View(), "Error logs") {
		t.Errorf("disabled button should not open the error log")
	}
}

func TestBatch_DispatchesUntilExhausted(t *testing.T) {
	b := newBackend()
	var rows []string
	for i := 1; i <= 7; i++ {
		rows = append(rows, fmt.Sprintf("Net%d,secret%d,WPA2", i, i))
	}
	m := newTestModel(t, b, nil, writeCSV(t, rows...))

	m = send(t, m, keyDownMsg)
	m = send(t, m, keyEnterMsg)

	view := m.View()
	if !strings.Contains(view, "Showing 5 networks. 2 remaining.") {
		t.Errorf("View does not contain the batch summary in\n%s", view)
	}
	if !strings.Contains(view, "Net1") || strings.Contains(view, "Net6") {
		t.Errorf("expected the first batch in\n%s", view)
	}

	m = send(t, m, runeKey('n'))
	view = m.View()
	if !strings.Contains(view, "Showing 2 networks. 0 remaining.") || !strings.Contains(view, "Net7") {
		t.Errorf("expected the second batch in\n%s", view)
	}

	m = send(t, m, runeKey('n'))
	view = m.View()
	if !strings.Contains(view, "All networks have been processed.") {
		t.Errorf("View does not contain the exhausted summary in\n%s", view)
	}
	if !strings.Contains(view, "Import Wi-Fi networks") {
		t.Errorf("expected to be back on the import view in\n%s", view)
	}

	proposals := b.Proposals()
	if len(proposals) != 2 || len(proposals[0]) != 5 || len(proposals[1]) != 2 {
		t.Errorf("unexpected proposals %v", proposals)
	}
}

func TestBatch_EmptyFileWithErrors(t *testing.T) {
	m := newTestModel(t, newBackend(), nil, writeCSV(t, "Broken,,WPA3", "too,many,columns,here"))

	m = send(t, m, keyDownMsg)
	m = send(t, m, keyEnterMsg)

	if view := m.View(); !strings.Contains(view, "Found 2 errors. Press 'e' for details.") {
		t.Errorf("View does not contain the error summary in\n%s", view)
	}
}

func TestBatch_ShowQR(t *testing.T) {
	m := newTestModel(t, newBackend(), nil, writeCSV(t, "Home,secret,WPA2"))

	m = send(t, m, keyDownMsg)
	m = send(t, m, keyEnterMsg)
	m = send(t, m, runeKey('r'))

	view := m.View()
	if !strings.Contains(view, "Home") || strings.Contains(view, "Error:") {
		t.Errorf("expected a QR code for Home in\n%s", view)
	}

	m = send(t, m, runeKey('q'))
	if !strings.Contains(m.View(), "Proposed networks") {
		t.Errorf("expected to be back on the batch view in\n%s", m.View())
	}
}

func TestStack_LoadingBlocksKeys(t *testing.T) {
	m := newTestModel(t, newBackend(), nil, writeCSV(t, "Home,secret,WPA2"))

	m = send(t, m, SetLoadingMsg{Loading: true, Message: "Working..."})
	m = send(t, m, runeKey('l'))

	view := m.View()
	if strings.Contains(view, "Latest logs") {
		t.Errorf("keys should be ignored while loading")
	}
	if !strings.Contains(view, "Working...") {
		t.Errorf("expected the loading status in\n%s", view)
	}
}

func TestStack_LoadingWorkStartsAfterSpinner(t *testing.T) {
	ring := log.NewRingHandler(slog.NewTextHandler(io.Discard, nil), 10)
	m := newTestModel(t, newBackend(), ring, writeCSV(t, "Home,secret,WPA2"))
	stack := m.(*Stack)

	work := func() tea.Msg { return SetStatusMsg("done") }
	_, cmd := stack.Update(SetLoadingMsg{Loading: true, Message: "Working...", Cmd: work})
	if !stack.loading {
		t.Fatalf("expected loading before the work runs")
	}
	if cmd == nil {
		t.Fatalf("expected the work to be returned as a command")
	}

	m = send(t, stack, cmd())
	if stack.loading {
		t.Errorf("loading should end with the work's result")
	}
	m = send(t, m, runeKey('l'))
	if !strings.Contains(m.View(), "Latest logs") {
		t.Errorf("keys should reach the view after loading, got\n%s", m.View())
	}
}

func TestImport_MissingFileEndsLoading(t *testing.T) {
	ring := log.NewRingHandler(slog.NewTextHandler(io.Discard, nil), 10)
	m := newTestModel(t, newBackend(), ring, filepath.Join(t.TempDir(), "missing.csv"))

	m = send(t, m, keyEnterMsg)
	if m.(*Stack).loading {
		t.Fatalf("loading should end after a failed import")
	}
	if view := m.View(); !strings.Contains(view, "0 networks suggested, 1 failed.") {
		t.Errorf("View does not contain the summary in\n%s", view)
	}
	m = send(t, m, runeKey('l'))
	if !strings.Contains(m.View(), "Latest logs") {
		t.Errorf("keys should reach the view after a failed import")
	}
}

func TestLogView(t *testing.T) {
	ring := log.NewRingHandler(slog.NewTextHandler(io.Discard, nil), 10)
	slog.New(ring).Error("backend exploded", "ssid", "Home")

	m := newTestModel(t, newBackend(), ring, writeCSV(t, "Home,secret,WPA2"))
	m = send(t, m, runeKey('l'))

	view := m.View()
	if !strings.Contains(view, "backend exploded") || !strings.Contains(view, "ssid=Home") {
		t.Errorf("View does not contain the log record in\n%s", view)
	}
}
