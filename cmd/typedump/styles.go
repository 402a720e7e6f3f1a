// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/charmbracelet/lipgloss"

	"typedump/internal/config"
)

// Shared color palette, tuned for dark terminal backgrounds. Every styled
// message in the CLI goes through one of the styles below so the output stays
// consistent across commands.
const (
	// ColorPrimary is teal, for titles and primary emphasis.
	ColorPrimary = lipgloss.Color("#14B8A6")

	// ColorMuted is gray, for secondary text and placeholders.
	ColorMuted = lipgloss.Color("#71717A")

	// ColorSuccess is green, for completed runs and checkmarks.
	ColorSuccess = lipgloss.Color("#22C55E")

	// ColorError is red, for failures.
	ColorError = lipgloss.Color("#DC2626")

	// ColorWarning is amber, for degraded-but-continuing states.
	ColorWarning = lipgloss.Color("#EAB308")

	// ColorHighlight is indigo, for command names, config keys, and paths.
	ColorHighlight = lipgloss.Color("#6366F1")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary text: resolved locations, defaults
	// notices, and "(not configured)" placeholders.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and positive indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warnings that do not stop the run.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for command names, config keys, and artifact paths.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)

// glamourStyle maps the configured color scheme to a glamour style name for
// issue card rendering. The auto scheme lets glamour probe the terminal
// background at render time.
func glamourStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}
