// Package tui provides the shared lipgloss palette, styles, key bindings
// and layout helpers used by the tipitaka reader.
package tui

import "github.com/charmbracelet/lipgloss"

// Tokyo Night inspired color palette
var (
	ColorPrimary   = lipgloss.Color("#7aa2f7") // Blue
	ColorSecondary = lipgloss.Color("#bb9af7") // Purple
	ColorSuccess   = lipgloss.Color("#9ece6a") // Green
	ColorWarning   = lipgloss.Color("#e0af68") // Yellow
	ColorError     = lipgloss.Color("#f7768e") // Red
	ColorMuted     = lipgloss.Color("#565f89") // Gray
	ColorBorder    = lipgloss.Color("#3b4261")
	ColorBg        = lipgloss.Color("#1a1b26") // Dark background
	ColorBgDark    = lipgloss.Color("#16161e")
	ColorBgLight   = lipgloss.Color("#24283b") // Lighter background
	ColorBgLighter = lipgloss.Color("#2f3549")
	ColorFg        = lipgloss.Color("#c0caf5") // Foreground
	ColorFgDim     = lipgloss.Color("#a9b1d6") // Dimmed foreground

	// Edition accents: original-language editions vs translations
	ColorPali    = lipgloss.Color("#e0af68")
	ColorEnglish = lipgloss.Color("#7dcfff")
)
