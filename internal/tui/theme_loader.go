package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

// themeColor is a color in a theme file: either a single color string, or a
// [light, dark] pair for adaptive colors.
type themeColor struct {
	set   bool
	color lipgloss.TerminalColor
}

func (c *themeColor) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		c.color = lipgloss.Color(v)
	case []any:
		if len(v) != 2 {
			return fmt.Errorf("adaptive color needs [light, dark], got %d values", len(v))
		}
		light, ok1 := v[0].(string)
		dark, ok2 := v[1].(string)
		if !ok1 || !ok2 {
			return fmt.Errorf("adaptive color values must be strings")
		}
		c.color = lipgloss.AdaptiveColor{Light: light, Dark: dark}
	default:
		return fmt.Errorf("invalid color %v", v)
	}
	c.set = true
	return nil
}

func (c themeColor) apply(dst *lipgloss.TerminalColor) {
	if c.set {
		*dst = c.color
	}
}

// themeFile represents the structure of the theme TOML file. Missing keys
// keep the default color, so users can override only the colors they want.
type themeFile struct {
	Primary     themeColor `toml:"Primary"`
	Subtle      themeColor `toml:"Subtle"`
	Success     themeColor `toml:"Success"`
	Error       themeColor `toml:"Error"`
	Normal      themeColor `toml:"Normal"`
	Disabled    themeColor `toml:"Disabled"`
	Border      themeColor `toml:"Border"`
	OutcomeHigh *string    `toml:"OutcomeHigh"`
	OutcomeLow  *string    `toml:"OutcomeLow"`
}

// LoadTheme reads a theme from r and overrides the default theme. A nil
// reader leaves the current theme alone.
func LoadTheme(r io.Reader) error {
	if r == nil {
		return nil
	}

	var tf themeFile
	if _, err := toml.NewDecoder(r).Decode(&tf); err != nil {
		return err
	}

	// Start with the default theme and override it with the loaded values.
	theme := NewDefaultTheme()
	tf.Primary.apply(&theme.Primary)
	tf.Subtle.apply(&theme.Subtle)
	tf.Success.apply(&theme.Success)
	tf.Error.apply(&theme.Error)
	tf.Normal.apply(&theme.Normal)
	tf.Disabled.apply(&theme.Disabled)
	tf.Border.apply(&theme.Border)
	if tf.OutcomeHigh != nil {
		theme.OutcomeHigh = *tf.OutcomeHigh
	}
	if tf.OutcomeLow != nil {
		theme.OutcomeLow = *tf.OutcomeLow
	}

	CurrentTheme = theme
	return nil
}

// LoadThemeFile loads the theme at path. If the path is empty, it does nothing.
func LoadThemeFile(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return LoadTheme(f)
}
