// Package theme provides the Lip Gloss palette and reusable styles for the
// scouting TUI. It is a leaf package apart from the progress status type.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cloudy-poro/scout/internal/progress"
)

// Semantic colors.
var (
	ColorAccent    = lipgloss.Color("#3b82f6")
	ColorPositive  = lipgloss.Color("#22c55e")
	ColorWarning   = lipgloss.Color("#d97706")
	ColorDanger    = lipgloss.Color("#dc2626")
	ColorHighlight = lipgloss.Color("#a855f7")
	ColorMuted     = lipgloss.Color("#6b7280")
	ColorDefault   = lipgloss.Color("#9ca3af")
)

// UI chrome colors.
var (
	ColorBorder = lipgloss.Color("#4b5563")
	ColorBright = lipgloss.Color("#f9fafb")
)

// StatusColor returns the color for a progress status.
func StatusColor(s progress.Status) lipgloss.Color {
	switch s {
	case progress.StatusConnecting:
		return ColorHighlight
	case progress.StatusProcessing:
		return ColorAccent
	case progress.StatusCompleted:
		return ColorPositive
	case progress.StatusError:
		return ColorDanger
	default:
		return ColorDefault
	}
}

// StatusGlyph returns a Unicode glyph for a progress status.
func StatusGlyph(s progress.Status) string {
	switch s {
	case progress.StatusConnecting:
		return "◎"
	case progress.StatusProcessing:
		return "●>"
	case progress.StatusCompleted:
		return "✓"
	case progress.StatusError:
		return "✗"
	default:
		return "·"
	}
}

// RateColor grades a percentage: green at or above 55, amber from 45, red below.
func RateColor(pct float64) lipgloss.Color {
	switch {
	case pct >= 55:
		return ColorPositive
	case pct >= 45:
		return ColorWarning
	default:
		return ColorDanger
	}
}

// ScoreColor grades a 0-1 unpredictability score; higher is harder to prepare for.
func ScoreColor(score float64) lipgloss.Color {
	switch {
	case score > 0.7:
		return ColorDanger
	case score > 0.4:
		return ColorWarning
	default:
		return ColorPositive
	}
}

// Reusable styles.
var (
	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleSection = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)
)
