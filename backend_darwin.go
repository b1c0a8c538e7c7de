//go:build darwin && !mock

package main

import (
	"fmt"
	"log/slog"

	"github.com/shazow/wifimport/internal/config"
	"github.com/shazow/wifimport/wifi"
	"github.com/shazow/wifimport/wifi/darwin"
)

func GetBackend(logger *slog.Logger, cfg config.Config) (wifi.Backend, error) {
	if cfg.Backend != "auto" && cfg.Backend != "darwin" {
		return nil, fmt.Errorf("%s backend on darwin: %w", cfg.Backend, wifi.ErrNotSupported)
	}
	return darwin.New(logger)
}
