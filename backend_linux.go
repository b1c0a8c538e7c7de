//go:build linux && !mock

package main

import (
	"fmt"
	"log/slog"

	"github.com/shazow/wifimport/internal/config"
	"github.com/shazow/wifimport/wifi"
	"github.com/shazow/wifimport/wifi/iwd"
	"github.com/shazow/wifimport/wifi/networkmanager"
)

func GetBackend(logger *slog.Logger, cfg config.Config) (wifi.Backend, error) {
	switch cfg.Backend {
	case "networkmanager":
		return networkmanager.New(logger)
	case "iwd":
		return iwd.New(logger, cfg.IWDStateDir)
	case "darwin":
		return nil, fmt.Errorf("darwin backend on linux: %w", wifi.ErrNotSupported)
	}

	b, err := networkmanager.New(logger)
	if err == nil {
		return b, nil
	}
	logger.Warn("failed to initialize networkmanager backend, falling back to iwd", "error", err)
	// If networkmanager dbus backend failed to initialize, try the iwd backend
	return iwd.New(logger, cfg.IWDStateDir)
}
