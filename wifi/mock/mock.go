package mock

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shazow/wifimport/wifi"
)

var DefaultActionSleep = 500 * time.Millisecond

// MockBackend is an in-memory implementation of wifi.Backend for testing.
type MockBackend struct {
	mu         sync.Mutex
	registered []wifi.Suggestion
	proposals  [][]wifi.Suggestion

	// AddError is returned by AddSuggestions, and nothing is registered.
	AddError error
	// ProposeError makes ProposeSuggestions log it and drop the batch.
	ProposeError error
	// Caps is what Capabilities reports.
	Caps wifi.Capabilities
	// Existing SSIDs are rejected by AddSuggestions as duplicates.
	Existing map[string]bool

	// ActionSleep is a delay before every action, to better emulate a real-world backend for the frontend. Set to 0 during testing.
	ActionSleep time.Duration
	// Logger receives proposal failures. Nil uses slog.Default().
	Logger *slog.Logger
}

// New creates a new mock backend with a couple of pre-existing networks.
func New(logger *slog.Logger) (wifi.Backend, error) {
	return &MockBackend{
		Logger: logger,
		Caps: wifi.Capabilities{BulkRegistration: true, Proposals: true},
		Existing: map[string]bool{
			"HideYoKidsHideYoWiFi": true,
		},
		ActionSleep: DefaultActionSleep,
	}, nil
}

func (m *MockBackend) Name() string { return "mock" }

func (m *MockBackend) Capabilities() wifi.Capabilities {
	return m.Caps
}

// AddSuggestions registers all suggestions, or none if any of them clashes
// with an existing network.
func (m *MockBackend) AddSuggestions(suggestions []wifi.Suggestion) error {
	time.Sleep(m.ActionSleep)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.AddError != nil {
		return m.AddError
	}
	for _, s := range suggestions {
		if m.Existing[s.SSID()] {
			return fmt.Errorf("network %q already exists: %w", s.SSID(), wifi.ErrRegistrationFailed)
		}
	}
	m.registered = append(m.registered, suggestions...)
	return nil
}

func (m *MockBackend) ProposeSuggestions(suggestions []wifi.Suggestion) {
	time.Sleep(m.ActionSleep)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ProposeError != nil {
		m.logger().Error("failed to propose networks", "count", len(suggestions), "error", m.ProposeError)
		return
	}
	batch := make([]wifi.Suggestion, len(suggestions))
	copy(batch, suggestions)
	m.proposals = append(m.proposals, batch)
}

func (m *MockBackend) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}

// Registered returns everything added through AddSuggestions.
func (m *MockBackend) Registered() []wifi.Suggestion {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]wifi.Suggestion(nil), m.registered...)
}

// Proposals returns every batch handed to ProposeSuggestions, in order.
func (m *MockBackend) Proposals() [][]wifi.Suggestion {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]wifi.Suggestion(nil), m.proposals...)
}
