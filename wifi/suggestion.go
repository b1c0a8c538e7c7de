package wifi

import (
	"encoding/json"
	"fmt"
)

// Suggestion is a validated network descriptor, ready to be registered.
// The zero value is not a valid suggestion; use NewSuggestion.
type Suggestion struct {
	ssid       string
	passphrase string
	security   SecurityType
}

// NewSuggestion builds a Suggestion. Personal security types require a
// non-empty passphrase and open networks must not carry one.
func NewSuggestion(ssid, passphrase string, security SecurityType) (Suggestion, error) {
	if ssid == "" {
		return Suggestion{}, fmt.Errorf("empty ssid: %w", ErrInvalidSuggestion)
	}
	switch security {
	case SecurityOpen:
		if passphrase != "" {
			return Suggestion{}, fmt.Errorf("open network %q with passphrase: %w", ssid, ErrInvalidSuggestion)
		}
	case SecurityWPA2Personal, SecurityWPA3Personal:
		if passphrase == "" {
			return Suggestion{}, fmt.Errorf("%s network %q without passphrase: %w", security, ssid, ErrInvalidSuggestion)
		}
	default:
		return Suggestion{}, fmt.Errorf("security type %s: %w", security, ErrInvalidSuggestion)
	}
	return Suggestion{ssid: ssid, passphrase: passphrase, security: security}, nil
}

// NewOpenSuggestion is a shortcut for an open network.
func NewOpenSuggestion(ssid string) (Suggestion, error) {
	return NewSuggestion(ssid, "", SecurityOpen)
}

func (s Suggestion) SSID() string { return s.ssid }

func (s Suggestion) Security() SecurityType { return s.security }

// Passphrase returns the passphrase and whether the network has one.
func (s Suggestion) Passphrase() (string, bool) {
	return s.passphrase, s.security.RequiresPassphrase()
}

func (s Suggestion) String() string {
	return fmt.Sprintf("%s (%s)", s.ssid, s.security)
}

type suggestionJSON struct {
	SSID       string `json:"ssid"`
	Security   string `json:"security"`
	Passphrase string `json:"passphrase,omitempty"`
}

func (s Suggestion) MarshalJSON() ([]byte, error) {
	return json.Marshal(suggestionJSON{
		SSID:       s.ssid,
		Security:   s.security.String(),
		Passphrase: s.passphrase,
	})
}
