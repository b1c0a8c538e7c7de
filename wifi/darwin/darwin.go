//go:build darwin

package darwin

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/shazow/wifimport/wifi"
)

// execRun runs a command, capturing stderr into the returned error.
func execRun(name string, args ...string) ([]byte, error) {
	c := exec.Command(name, args...)
	var stderr strings.Builder
	c.Stderr = &stderr
	out, err := c.Output()
	if err != nil {
		return out, fmt.Errorf("failed to run command: %s: %w: %s", c.String(), err, stderr.String())
	}
	return out, nil
}

// New creates a new darwin.Backend for the first Wi-Fi hardware port.
func New(logger *slog.Logger) (wifi.Backend, error) {
	out, err := execRun("networksetup", "-listallhardwareports")
	if err != nil {
		return nil, fmt.Errorf("failed to list hardware ports: %w", wifi.ErrNotAvailable)
	}

	device, err := findWifiDevice(string(out))
	if err != nil {
		return nil, err
	}
	logger.Debug("found wifi device", "device", device)

	return &Backend{WifiInterface: device, run: execRun, logger: logger}, nil
}
