package importer

import (
	"fmt"
	"strings"

	"github.com/shazow/wifimport/wifi"
)

// Validate turns one record's fields into a Suggestion, or returns a
// *ValidationError explaining why the record was skipped.
//
// The SSID check happens before any security check, and the security token
// is matched case-insensitively. Passwords supplied for open networks are
// ignored.
func Validate(ssid, password, security string) (wifi.Suggestion, error) {
	ssid = strings.TrimSpace(ssid)
	password = strings.TrimSpace(password)
	security = strings.TrimSpace(security)

	if ssid == "" {
		return wifi.Suggestion{}, &ValidationError{Reason: "Skipping network with empty SSID"}
	}

	kind, ok := wifi.ParseSecurityType(security)
	if !ok {
		return wifi.Suggestion{}, &ValidationError{
			Reason: fmt.Sprintf("Unsupported security type: '%s' for network '%s'", security, ssid),
		}
	}

	switch kind {
	case wifi.SecurityWPA2Personal:
		if password == "" {
			return wifi.Suggestion{}, &ValidationError{
				Reason: fmt.Sprintf("Skipping WPA/WPA2 network '%s' with empty password", ssid),
			}
		}
	case wifi.SecurityWPA3Personal:
		if password == "" {
			return wifi.Suggestion{}, &ValidationError{
				Reason: fmt.Sprintf("Skipping WPA3 network '%s' with empty password", ssid),
			}
		}
	case wifi.SecurityOpen:
		s, err := wifi.NewOpenSuggestion(ssid)
		if err != nil {
			return wifi.Suggestion{}, &ValidationError{Reason: err.Error()}
		}
		return s, nil
	}

	s, err := wifi.NewSuggestion(ssid, password, kind)
	if err != nil {
		return wifi.Suggestion{}, &ValidationError{Reason: err.Error()}
	}
	return s, nil
}
