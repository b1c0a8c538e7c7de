//go:build mock

package main

import (
	"log/slog"

	"github.com/shazow/wifimport/internal/config"
	"github.com/shazow/wifimport/wifi"
	mockBackend "github.com/shazow/wifimport/wifi/mock"
)

func GetBackend(logger *slog.Logger, cfg config.Config) (wifi.Backend, error) {
	logger.Info("using mock backend", "ignored_backend", cfg.Backend)
	return mockBackend.New(logger)
}
