// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette - shared hex colors for consistent theming across all CLI output.
// These colors are designed for dark terminal backgrounds with good contrast.
const (
	// ColorPrimary is purple - used for titles and primary emphasis.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for de-emphasized content, notably the
	// reconstructed command line in failure messages.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorError is red - used for errors and failure indicators.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for recorded runtime warnings.
	ColorWarning = lipgloss.Color("#F59E0B")
)

// Base styles built from the palette.
var (
	// TitleStyle is for primary headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary text.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ErrorStyle is for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// DimStyle renders the shell-quoted command line inside failure
	// messages without letting it dominate the output.
	DimStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(ColorMuted)
)
