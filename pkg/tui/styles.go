package tui

import "github.com/charmbracelet/lipgloss"

// Base styles
var (
	// Header bar style
	HeaderStyle = lipgloss.NewStyle().
			Background(ColorBgDark).
			Foreground(ColorFg).
			Padding(0, 1).
			Bold(true)

	// Footer bar style
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	// Pane focus styles - for two-pane layouts
	PaneFocusedStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	PaneUnfocusedStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorFgDim)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Notice styles, one per severity
	NoticeInfo = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	NoticeWarn = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	NoticeError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// List item styles
	SelectedStyle = lipgloss.NewStyle().
			Background(ColorBgLight).
			Foreground(ColorFg).
			Bold(true)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(ColorFgDim)

	// Synthetic picker entries (back, search)
	SyntheticStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Italic(true)

	// Cursor line inside a reading pane
	CursorLineStyle = lipgloss.NewStyle().
			Background(ColorBgLighter)

	LineNumberStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Help styles
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Breadcrumb styles
	CrumbStyle = lipgloss.NewStyle().
			Foreground(ColorFgDim)

	CurrentCrumbStyle = lipgloss.NewStyle().
				Background(ColorPrimary).
				Foreground(ColorBg).
				Bold(true).
				Padding(0, 1)
)

// EditionBadge renders a short edition code ("p1", "e2") with the accent of
// its language family.
func EditionBadge(code string) string {
	color := ColorEnglish
	if len(code) > 0 && code[0] == 'p' {
		color = ColorPali
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Background(color).
		Foreground(ColorBg).
		Render(code)
}
