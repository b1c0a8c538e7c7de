package wifi

import "strings"

// SecurityType represents the authentication scheme of a network.
type SecurityType int

const (
	SecurityUnknown SecurityType = iota
	SecurityOpen
	SecurityWPA2Personal
	SecurityWPA3Personal
)

func (s SecurityType) String() string {
	switch s {
	case SecurityOpen:
		return "open"
	case SecurityWPA2Personal:
		return "wpa2-personal"
	case SecurityWPA3Personal:
		return "wpa3-personal"
	default:
		return "unknown"
	}
}

// RequiresPassphrase is true for the personal (pre-shared key) schemes.
func (s SecurityType) RequiresPassphrase() bool {
	return s == SecurityWPA2Personal || s == SecurityWPA3Personal
}

// securityTokens maps the recognized CSV tokens to a security type. Note that
// "UNKNOWN" is a legitimate token that means an open network.
var securityTokens = map[string]SecurityType{
	"WPA":               SecurityWPA2Personal,
	"WPA2":              SecurityWPA2Personal,
	"WPA-PSK":           SecurityWPA2Personal,
	"WPA_WPA2_PERSONAL": SecurityWPA2Personal,
	"WPA_PERSONAL":      SecurityWPA2Personal,
	"WPA3":              SecurityWPA3Personal,
	"WPA3_PERSONAL":     SecurityWPA3Personal,
	"OPEN":              SecurityOpen,
	"NONE":              SecurityOpen,
	"UNKNOWN":           SecurityOpen,
}

// ParseSecurityType matches a token against the known security types,
// ignoring case and surrounding whitespace. It returns false for tokens that
// are not supported.
func ParseSecurityType(token string) (SecurityType, bool) {
	s, ok := securityTokens[strings.ToUpper(strings.TrimSpace(token))]
	return s, ok
}
