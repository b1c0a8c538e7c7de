package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme contains the colors for the application.
type Theme struct {
	Primary  lipgloss.TerminalColor
	Subtle   lipgloss.TerminalColor
	Success  lipgloss.TerminalColor
	Error    lipgloss.TerminalColor
	Normal   lipgloss.TerminalColor
	Disabled lipgloss.TerminalColor
	Border   lipgloss.TerminalColor

	// Summaries are blended from OutcomeLow to OutcomeHigh by the share of
	// networks that were added.
	OutcomeHigh string
	OutcomeLow  string
}

// CurrentTheme is the active theme for the application.
var CurrentTheme = NewDefaultTheme()

// NewDefaultTheme creates a new default theme.
func NewDefaultTheme() Theme {
	return Theme{
		Primary:  lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#D359E3"}, // Purple/Pink
		Subtle:   lipgloss.AdaptiveColor{Light: "#BDBDBD", Dark: "#616161"}, // Gray
		Success:  lipgloss.AdaptiveColor{Light: "#388E3C", Dark: "#81C784"}, // Green
		Error:    lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: "#E57373"}, // Red
		Normal:   lipgloss.AdaptiveColor{Light: "#212121", Dark: "#FFFFFF"}, // Black/White
		Disabled: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#424242"}, // Lighter/Darker Gray
		Border:   lipgloss.AdaptiveColor{Light: "#BDBDBD", Dark: "#616161"}, // Gray

		OutcomeHigh: "#4CAF50",
		OutcomeLow:  "#E53935",
	}
}

// OutcomeColor blends between OutcomeLow and OutcomeHigh by succeeded/total.
// Nothing attempted renders in the primary color.
func (t Theme) OutcomeColor(succeeded, total int) lipgloss.TerminalColor {
	if total <= 0 {
		return t.Primary
	}
	start, err := colorful.Hex(t.OutcomeLow)
	if err != nil {
		return t.Primary
	}
	end, err := colorful.Hex(t.OutcomeHigh)
	if err != nil {
		return t.Primary
	}
	p := float64(min(max(succeeded, 0), total)) / float64(total)
	return lipgloss.Color(start.BlendRgb(end, p).Hex())
}
