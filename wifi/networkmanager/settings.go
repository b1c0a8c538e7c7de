//go:build linux

package networkmanager

import (
	gonetworkmanager "github.com/Wifx/gonetworkmanager/v3"
	"github.com/google/uuid"
	"github.com/shazow/wifimport/wifi"
)

// connectionSettings builds the NetworkManager profile for a suggestion.
// An empty iface leaves the profile usable on any wireless device.
func connectionSettings(s wifi.Suggestion, iface string, autoConnect bool) gonetworkmanager.ConnectionSettings {
	connection := gonetworkmanager.ConnectionSettings{
		"connection": {
			"id":          s.SSID(),
			"uuid":        uuid.New().String(),
			"type":        "802-11-wireless",
			"autoconnect": autoConnect,
		},
		"802-11-wireless": {
			"mode": "infrastructure",
			"ssid": []byte(s.SSID()),
		},
		"ipv4": {"method": "auto"},
		"ipv6": {"method": "auto"},
	}
	if iface != "" {
		connection["connection"]["interface-name"] = iface
	}

	passphrase, _ := s.Passphrase()
	switch s.Security() {
	case wifi.SecurityWPA2Personal:
		connection["802-11-wireless"]["security"] = "802-11-wireless-security"
		connection["802-11-wireless-security"] = map[string]interface{}{
			"key-mgmt": "wpa-psk",
			"psk":      passphrase,
		}
	case wifi.SecurityWPA3Personal:
		connection["802-11-wireless"]["security"] = "802-11-wireless-security"
		connection["802-11-wireless-security"] = map[string]interface{}{
			"key-mgmt": "sae",
			"psk":      passphrase,
		}
	default:
		// Open networks have no security settings.
	}
	return connection
}
