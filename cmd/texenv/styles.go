// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Palette for dark terminal backgrounds. Every command renders through
// the styles below so report lines and error banners look the same
// everywhere.
const (
	colorAccent    = lipgloss.Color("#818CF8") // indigo, titles
	colorMuted     = lipgloss.Color("#64748B") // slate, secondary text
	colorSuccess   = lipgloss.Color("#34D399") // emerald, healthy states
	colorError     = lipgloss.Color("#FB7185") // rose, failures
	colorWarning   = lipgloss.Color("#FBBF24") // amber, degraded states
	colorHighlight = lipgloss.Color("#38BDF8") // sky, tool names and paths
)

var (
	// TitleStyle marks report and help headers.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// SubtitleStyle carries secondary text: descriptions, de-emphasized
	// values, section labels in help output.
	SubtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)

	// SuccessStyle marks healthy doctor lines and completed actions.
	SuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess)

	// ErrorStyle marks failures. Bold, since these lines decide whether
	// the user keeps reading.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)

	// WarningStyle marks degraded-but-working states, like a system-path
	// engine standing in for the bundled one.
	WarningStyle = lipgloss.NewStyle().Foreground(colorWarning)

	// ToolStyle marks tool names and filesystem paths in listings.
	ToolStyle = lipgloss.NewStyle().Foreground(colorHighlight)
)
