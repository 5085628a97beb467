// Package ux renders pipeline progress for the terminal.
// Colors degrade automatically when the output is not a TTY or NO_COLOR is set.
package ux

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	LightForeground = lipgloss.Color("#101F38")
	LightMuted      = lipgloss.Color("#6a737d")
	LightAccent     = lipgloss.Color("#005cc5")

	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkMuted      = lipgloss.Color("#8b949e")
	DarkAccent     = lipgloss.Color("#4db6ac")

	// Semantic colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
	Agent       = lipgloss.Color("#ba68c8")
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{Foreground: LightForeground, Muted: LightMuted, Accent: LightAccent}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{Foreground: DarkForeground, Muted: DarkMuted, Accent: DarkAccent, IsDark: true}
}

// DetectTheme picks dark mode from COLORFGBG or PRIVACYPAL_DARK_MODE=1,
// otherwise light mode.
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// "foreground;background"; low ANSI indexes are dark backgrounds
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}
	if os.Getenv("PRIVACYPAL_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Header  lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Agent   lipgloss.Style
	DMTitle lipgloss.Style
	DMBody  lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles builds styles bound to a renderer for w, so color profile
// detection follows the actual destination.
func NewStyles(w io.Writer, theme Theme) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Theme: theme,

		Header: r.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Body: r.NewStyle().
			Foreground(theme.Foreground),

		Muted: r.NewStyle().
			Foreground(theme.Muted),

		Bold: r.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Info: r.NewStyle().
			Foreground(theme.Accent),

		Success: r.NewStyle().
			Foreground(Success),

		Warning: r.NewStyle().
			Foreground(Warning),

		Danger: r.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Agent: r.NewStyle().
			Foreground(Agent),

		DMTitle: r.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		DMBody: r.NewStyle().
			Foreground(theme.Muted).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(theme.Accent).
			PaddingLeft(1).
			MarginLeft(6),

		Divider: r.NewStyle().
			Foreground(theme.Accent),
	}
}
