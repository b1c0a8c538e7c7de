//go:build linux

package networkmanager

import (
	"fmt"
	"log/slog"

	gonetworkmanager "github.com/Wifx/gonetworkmanager/v3"
	"github.com/shazow/wifimport/wifi"
)

// Backend implements the wifi.Backend interface using D-Bus to communicate with NetworkManager.
//
// Each suggestion becomes a saved connection profile. Proposed networks are
// saved with autoconnect disabled, so they only get used once the user joins
// them.
type Backend struct {
	NM       gonetworkmanager.NetworkManager
	Settings gonetworkmanager.Settings

	logger         *slog.Logger
	wirelessDevice gonetworkmanager.DeviceWireless
}

// New creates a new networkmanager.Backend.
func New(logger *slog.Logger) (wifi.Backend, error) {
	nm, err := gonetworkmanager.NewNetworkManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create network manager client: %w", wifi.ErrNotAvailable)
	}

	settings, err := gonetworkmanager.NewSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", wifi.ErrOperationFailed)
	}

	return &Backend{
		NM:       nm,
		Settings: settings,
		logger:   logger,
	}, nil
}

func (b *Backend) Name() string { return "networkmanager" }

// Capabilities checks whether we're allowed to add connections at all.
func (b *Backend) Capabilities() wifi.Capabilities {
	canModify, err := b.Settings.GetPropertyCanModify()
	if err != nil {
		b.logger.Warn("failed to check settings permissions", "error", err)
		return wifi.Capabilities{}
	}
	return wifi.Capabilities{BulkRegistration: canModify, Proposals: canModify}
}

// AddSuggestions saves a profile per suggestion. If any of them fails, the
// profiles added by this call are deleted again.
func (b *Backend) AddSuggestions(suggestions []wifi.Suggestion) error {
	iface := b.interfaceName()

	var added []gonetworkmanager.Connection
	for _, s := range suggestions {
		conn, err := b.Settings.AddConnection(connectionSettings(s, iface, true))
		if err != nil {
			b.rollback(added)
			return fmt.Errorf("failed to add connection for %s: %w: %v", s.SSID(), wifi.ErrRegistrationFailed, err)
		}
		b.logger.Debug("added connection", "ssid", s.SSID(), "path", conn.GetPath())
		added = append(added, conn)
	}
	return nil
}

// ProposeSuggestions saves a profile per suggestion with autoconnect off.
func (b *Backend) ProposeSuggestions(suggestions []wifi.Suggestion) {
	iface := b.interfaceName()
	for _, s := range suggestions {
		if _, err := b.Settings.AddConnection(connectionSettings(s, iface, false)); err != nil {
			b.logger.Error("failed to propose network", "ssid", s.SSID(), "error", err)
			continue
		}
		b.logger.Info("proposed network", "ssid", s.SSID())
	}
}

func (b *Backend) rollback(added []gonetworkmanager.Connection) {
	for _, conn := range added {
		if err := conn.Delete(); err != nil {
			b.logger.Error("failed to roll back connection", "path", conn.GetPath(), "error", err)
		}
	}
}

// interfaceName returns the wireless interface to bind profiles to, or "" to
// leave them unbound when there is no wireless device.
func (b *Backend) interfaceName() string {
	dev, err := b.getWirelessDevice()
	if err != nil {
		b.logger.Debug("adding connections without an interface", "error", err)
		return ""
	}
	iface, err := dev.GetPropertyInterface()
	if err != nil {
		return ""
	}
	return iface
}

func (b *Backend) getWirelessDevice() (gonetworkmanager.DeviceWireless, error) {
	if b.wirelessDevice != nil {
		return b.wirelessDevice, nil
	}
	devices, err := b.NM.GetDevices()
	if err != nil {
		return nil, err
	}
	for _, device := range devices {
		if dev, ok := device.(gonetworkmanager.DeviceWireless); ok {
			b.wirelessDevice = dev
			return dev, nil
		}
	}
	return nil, fmt.Errorf("no wireless device found: %w", wifi.ErrNotFound)
}
