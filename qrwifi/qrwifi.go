// Package qrwifi renders Wi-Fi suggestions as WIFI: join codes.
package qrwifi

import (
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/shazow/wifimport/wifi"
)

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	`:`, `\:`,
	`"`, `\"`,
)

// EscapeWifiString handles the special character escaping for SSID and Password.
func EscapeWifiString(s string) string {
	return escaper.Replace(s)
}

// URI builds the WIFI: connection string for a suggestion.
func URI(s wifi.Suggestion) string {
	var b strings.Builder
	b.WriteString("WIFI:S:")
	b.WriteString(EscapeWifiString(s.SSID()))
	b.WriteString(";")

	if passphrase, ok := s.Passphrase(); ok {
		if s.Security() == wifi.SecurityWPA3Personal {
			b.WriteString("T:SAE;P:")
		} else {
			b.WriteString("T:WPA;P:")
		}
		b.WriteString(EscapeWifiString(passphrase))
		b.WriteString(";")
	} else {
		b.WriteString("T:nopass;")
	}

	b.WriteString(";")
	return b.String()
}

// Render returns the QR code for a suggestion as a string of block
// characters that fits in a terminal.
func Render(s wifi.Suggestion) (string, error) {
	q, err := qrcode.New(URI(s), qrcode.Medium)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(false), nil
}
