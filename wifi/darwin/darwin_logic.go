package darwin

import (
	"bufio"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shazow/wifimport/wifi"
)

type runner func(name string, args ...string) ([]byte, error)

// Backend implements the wifi.Backend interface for macOS by editing the
// preferred networks list of a Wi-Fi interface with networksetup.
type Backend struct {
	WifiInterface string

	run    runner
	logger *slog.Logger
}

func (b *Backend) Name() string { return "darwin" }

// Capabilities checks that the preferred networks list is readable. Editing
// it may still prompt for admin rights.
func (b *Backend) Capabilities() wifi.Capabilities {
	if _, err := b.preferredNetworks(); err != nil {
		b.logger.Warn("preferred networks are not available", "error", err)
		return wifi.Capabilities{}
	}
	return wifi.Capabilities{BulkRegistration: true, Proposals: true}
}

// AddSuggestions adds every suggestion to the top of the preferred networks
// list. A network that is already preferred fails the call, and networks
// added by this call are removed again.
func (b *Backend) AddSuggestions(suggestions []wifi.Suggestion) error {
	known, err := b.preferredNetworks()
	if err != nil {
		return fmt.Errorf("failed to list preferred networks: %w: %v", wifi.ErrRegistrationFailed, err)
	}
	for _, s := range suggestions {
		if known[s.SSID()] {
			return fmt.Errorf("network %q is already known: %w", s.SSID(), wifi.ErrRegistrationFailed)
		}
	}

	var added []string
	for i, s := range suggestions {
		if err := b.addPreferred(s, i); err != nil {
			for _, ssid := range added {
				if rmErr := b.removePreferred(ssid); rmErr != nil {
					b.logger.Error("failed to roll back preferred network", "ssid", ssid, "error", rmErr)
				}
			}
			return fmt.Errorf("failed to add %s: %w: %v", s.SSID(), wifi.ErrRegistrationFailed, err)
		}
		added = append(added, s.SSID())
	}
	return nil
}

// ProposeSuggestions appends each network to the end of the preferred
// networks list, below everything the user already joined.
func (b *Backend) ProposeSuggestions(suggestions []wifi.Suggestion) {
	known, err := b.preferredNetworks()
	if err != nil {
		b.logger.Error("failed to list preferred networks", "error", err)
		return
	}
	index := len(known)
	for _, s := range suggestions {
		if known[s.SSID()] {
			b.logger.Info("network is already known", "ssid", s.SSID())
			continue
		}
		if err := b.addPreferred(s, index); err != nil {
			b.logger.Error("failed to propose network", "ssid", s.SSID(), "error", err)
			continue
		}
		index++
		b.logger.Info("proposed network", "ssid", s.SSID())
	}
}

func (b *Backend) addPreferred(s wifi.Suggestion, index int) error {
	args := []string{"-addpreferredwirelessnetworkatindex", b.WifiInterface, s.SSID(), strconv.Itoa(index), securityArg(s.Security())}
	if passphrase, ok := s.Passphrase(); ok {
		args = append(args, passphrase)
	}
	_, err := b.run("networksetup", args...)
	return err
}

func (b *Backend) removePreferred(ssid string) error {
	_, err := b.run("networksetup", "-removepreferredwirelessnetwork", b.WifiInterface, ssid)
	return err
}

func (b *Backend) preferredNetworks() (map[string]bool, error) {
	out, err := b.run("networksetup", "-listpreferredwirelessnetworks", b.WifiInterface)
	if err != nil {
		return nil, err
	}
	return parsePreferredNetworks(string(out)), nil
}

// parsePreferredNetworks parses `networksetup -listpreferredwirelessnetworks`.
func parsePreferredNetworks(output string) map[string]bool {
	known := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "Preferred networks on") {
			known[line] = true
		}
	}
	return known
}

// networksetup has no separate token for WPA3 personal networks.
func securityArg(t wifi.SecurityType) string {
	switch t {
	case wifi.SecurityOpen:
		return "OPEN"
	default:
		return "WPA2"
	}
}

// findWifiDevice parses the output of `networksetup -listallhardwareports` to find the Wi-Fi device.
func findWifiDevice(output string) (string, error) {
	// The output is a series of stanzas, separated by blank lines.
	for _, stanza := range strings.Split(output, "\n\n") {
		var device string
		isWifiPort := false
		for _, line := range strings.Split(stanza, "\n") {
			if port, ok := strings.CutPrefix(line, "Hardware Port: "); ok {
				isWifiPort = strings.Contains(port, "Wi-Fi") || strings.Contains(port, "AirPort")
			}
			if d, ok := strings.CutPrefix(line, "Device: "); ok {
				device = d
			}
		}
		if isWifiPort && device != "" {
			return device, nil
		}
	}
	return "", fmt.Errorf("no Wi-Fi interface found: %w", wifi.ErrNotFound)
}
