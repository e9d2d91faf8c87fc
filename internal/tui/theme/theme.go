// Package theme defines the color themes for the bcalc TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card and status bar backgrounds
	SurfaceHover lipgloss.Color // Selected row
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // Focused input
	TextDim      lipgloss.Color // Hints, placeholders
	TextMuted    lipgloss.Color // Labels, dates
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color // Titles, active tab
	Money        lipgloss.Color // Amounts and totals
	Warn         lipgloss.Color // Non-fatal notices
	Error        lipgloss.Color // Validation errors, delete prompt
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	Money:        lipgloss.Color("#879A39"),
	Warn:         lipgloss.Color("#DA702C"),
	Error:        lipgloss.Color("#D14D41"),
}

// Amber follows the warm brown and amber palette of the AYSHLYN web app.
var Amber = Theme{
	Name:         "amber",
	Background:   lipgloss.Color("#1C1208"),
	Surface:      lipgloss.Color("#2A1C0E"),
	SurfaceHover: lipgloss.Color("#3B2812"),
	Border:       lipgloss.Color("#5C3D1A"),
	BorderAccent: lipgloss.Color("#F59E0B"),
	TextDim:      lipgloss.Color("#7C6A55"),
	TextMuted:    lipgloss.Color("#B8A48C"),
	TextPrimary:  lipgloss.Color("#FEF3C7"),
	Accent:       lipgloss.Color("#F59E0B"),
	Money:        lipgloss.Color("#FCD34D"),
	Warn:         lipgloss.Color("#FB923C"),
	Error:        lipgloss.Color("#F87171"),
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	Money:        lipgloss.Color("2"),
	Warn:         lipgloss.Color("3"),
	Error:        lipgloss.Color("1"),
}

// All available themes.
var All = []Theme{FlexokiDark, Amber, Terminal}

// Names returns the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
