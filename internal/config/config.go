// Package config loads the settings shared by every command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Config holds the settings from the config file, before flags are applied.
type Config struct {
	// Backend picks the network backend. "auto" tries each backend the
	// platform supports.
	Backend string `toml:"backend" validate:"required,oneof=auto networkmanager iwd darwin"`
	// IWDStateDir is where iwd provisioning files are written.
	IWDStateDir string `toml:"iwd_state_dir" validate:"omitempty,startswith=/"`
	LogLevel    string `toml:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat   string `toml:"log_format" validate:"required,oneof=text json"`
	// Theme is a path to a TUI theme file.
	Theme string `toml:"theme" validate:"omitempty,file"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Backend:   "auto",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration, reporting every invalid field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	errs := make([]error, 0, len(validationErrors))
	for _, fe := range validationErrors {
		errs = append(errs, fmt.Errorf("invalid %s %q: %s", fe.Field(), fe.Value(), fieldErrorMsg(fe)))
	}
	return errors.Join(errs...)
}

func fieldErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "startswith":
		return "must be an absolute path"
	case "file":
		return "must be an existing file"
	}
	return "failed " + fe.Tag()
}

// Load reads a TOML config from r on top of the defaults.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads the config at path. An empty path returns the defaults.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return Load(f)
}
