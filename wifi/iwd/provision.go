package iwd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shazow/wifimport/wifi"
)

// DefaultStateDir is where iwd looks for network provisioning files.
const DefaultStateDir = "/var/lib/iwd"

// Backend implements the wifi.Backend interface by writing iwd network
// provisioning files. iwd watches its state directory, so networks become
// known as soon as their file exists.
type Backend struct {
	StateDir string

	logger *slog.Logger
}

func (b *Backend) Name() string { return "iwd" }

// Capabilities checks that the state directory is writable.
func (b *Backend) Capabilities() wifi.Capabilities {
	f, err := os.CreateTemp(b.StateDir, ".wifimport-*")
	if err != nil {
		b.logger.Warn("iwd state directory is not writable", "dir", b.StateDir, "error", err)
		return wifi.Capabilities{}
	}
	f.Close()
	os.Remove(f.Name())
	return wifi.Capabilities{BulkRegistration: true, Proposals: true}
}

// AddSuggestions writes a provisioning file per suggestion. Networks that are
// already provisioned fail the whole call, and files written by this call are
// removed again.
func (b *Backend) AddSuggestions(suggestions []wifi.Suggestion) error {
	var written []string
	for _, s := range suggestions {
		path, err := b.provision(s, true)
		if err != nil {
			for _, p := range written {
				if rmErr := os.Remove(p); rmErr != nil {
					b.logger.Error("failed to roll back provisioning file", "path", p, "error", rmErr)
				}
			}
			return fmt.Errorf("failed to provision %s: %w: %v", s.SSID(), wifi.ErrRegistrationFailed, err)
		}
		written = append(written, path)
	}
	return nil
}

// ProposeSuggestions provisions each network with AutoConnect disabled.
func (b *Backend) ProposeSuggestions(suggestions []wifi.Suggestion) {
	for _, s := range suggestions {
		path, err := b.provision(s, false)
		if err != nil {
			b.logger.Error("failed to propose network", "ssid", s.SSID(), "error", err)
			continue
		}
		b.logger.Info("proposed network", "ssid", s.SSID(), "path", path)
	}
}

func (b *Backend) provision(s wifi.Suggestion, autoConnect bool) (string, error) {
	if passphrase, _ := s.Passphrase(); strings.ContainsAny(passphrase, "\r\n") {
		return "", fmt.Errorf("passphrase contains a line break: %w", wifi.ErrNotSupported)
	}
	path := filepath.Join(b.StateDir, provisioningFileName(s))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("network is already known: %w", err)
		}
		return "", err
	}
	_, err = f.Write(provisioningFile(s, autoConnect))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// provisioningFileName encodes the SSID the way iwd expects: plain if it only
// has alphanumerics, '-' and '_', otherwise '=' followed by the hex SSID.
func provisioningFileName(s wifi.Suggestion) string {
	ext := ".psk"
	if s.Security() == wifi.SecurityOpen {
		ext = ".open"
	}
	ssid := s.SSID()
	for _, r := range ssid {
		if !isPlainSSIDRune(r) {
			return "=" + hex.EncodeToString([]byte(ssid)) + ext
		}
	}
	return ssid + ext
}

func isPlainSSIDRune(r rune) bool {
	return r == '-' || r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func provisioningFile(s wifi.Suggestion, autoConnect bool) []byte {
	var b strings.Builder
	if passphrase, ok := s.Passphrase(); ok {
		b.WriteString("[Security]\n")
		fmt.Fprintf(&b, "Passphrase=%s\n\n", passphrase)
	}
	b.WriteString("[Settings]\n")
	fmt.Fprintf(&b, "AutoConnect=%t\n", autoConnect)
	return []byte(b.String())
}
