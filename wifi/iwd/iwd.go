//go:build linux

package iwd

import (
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
	"github.com/shazow/wifimport/wifi"
)

// IWD constants
const (
	iwdDest  = "net.connman.iwd"
	iwdPath  = "/"
	iwdIface = "net.connman.iwd"
)

// New creates a new iwd.Backend that provisions networks into stateDir. An
// empty stateDir uses DefaultStateDir.
func New(logger *slog.Logger, stateDir string) (wifi.Backend, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", wifi.ErrNotAvailable)
	}
	// We only use the bus to check that iwd is running; it picks up
	// provisioning files on its own.
	obj := conn.Object(iwdDest, iwdPath)
	if obj == nil {
		return nil, fmt.Errorf("failed to get dbus object for %s: %w", iwdDest, wifi.ErrNotAvailable)
	}
	version, err := obj.GetProperty(iwdIface + ".Version")
	if err != nil {
		return nil, fmt.Errorf("iwd is not available: %w", wifi.ErrNotAvailable)
	}
	logger.Debug("found iwd", "version", version.Value())

	if stateDir == "" {
		stateDir = DefaultStateDir
	}
	return &Backend{StateDir: stateDir, logger: logger}, nil
}
