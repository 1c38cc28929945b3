package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	reflow "github.com/muesli/reflow/ansi"
)

// SplitLayout renders two panes side by side.
// Falls back to a stacked layout for narrow terminals.
type SplitLayout struct {
	leftRatio float64
	width     int
	height    int
	minWidth  int // Minimum width before falling back to stacked
}

// NewSplitLayout creates a new split layout with the specified left ratio.
// Use 0.5 for two equally weighted editions.
func NewSplitLayout(leftRatio float64) *SplitLayout {
	if leftRatio <= 0 || leftRatio >= 1 {
		leftRatio = 0.5
	}
	return &SplitLayout{
		leftRatio: leftRatio,
		minWidth:  80,
	}
}

// SetSize sets the total dimensions available for the layout.
func (l *SplitLayout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// LeftWidth returns the width available for the left pane.
func (l *SplitLayout) LeftWidth() int {
	if l.IsStacked() {
		return l.width
	}
	return int(float64(l.width)*l.leftRatio) - 2 // separator and gutter
}

// RightWidth returns the width available for the right pane.
func (l *SplitLayout) RightWidth() int {
	if l.IsStacked() {
		return l.width
	}
	leftWidth := int(float64(l.width) * l.leftRatio)
	return l.width - leftWidth - 1
}

// LeftHeight returns the height available for the left pane.
func (l *SplitLayout) LeftHeight() int {
	if l.IsStacked() {
		return l.height / 2
	}
	return l.height
}

// RightHeight returns the height available for the right pane.
func (l *SplitLayout) RightHeight() int {
	if l.IsStacked() {
		return l.height - l.LeftHeight() - 1 // -1 for separator
	}
	return l.height
}

// IsStacked returns true if the layout should fall back to stacked mode.
func (l *SplitLayout) IsStacked() bool {
	return l.width < l.minWidth
}

// Render combines pre-rendered left and right content.
func (l *SplitLayout) Render(left, right string) string {
	if l.height <= 0 || l.width <= 0 {
		return ""
	}
	if l.IsStacked() {
		return l.renderStacked(left, right)
	}
	return l.renderHorizontal(left, right)
}

func (l *SplitLayout) renderHorizontal(left, right string) string {
	leftWidth := l.LeftWidth()
	rightWidth := l.RightWidth()

	leftSplit := strings.Split(EnsureSize(left, leftWidth, l.height), "\n")
	rightSplit := strings.Split(EnsureSize(right, rightWidth, l.height), "\n")

	sep := lipgloss.NewStyle().Foreground(ColorBorder).Render("│")

	result := make([]string, 0, l.height)
	for i := 0; i < l.height; i++ {
		result = append(result, leftSplit[i]+" "+sep+" "+rightSplit[i])
	}
	return strings.Join(result, "\n")
}

func (l *SplitLayout) renderStacked(left, right string) string {
	top := EnsureSize(left, l.width, l.LeftHeight())
	bottom := EnsureSize(right, l.width, l.RightHeight())
	separator := lipgloss.NewStyle().
		Foreground(ColorBorder).
		Render(strings.Repeat("─", l.width))
	return top + "\n" + separator + "\n" + bottom
}

// EnsureSize pads or truncates content to fit exactly width x height.
func EnsureSize(content string, width, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		lines[i] = PadToWidth(line, width)
	}
	return strings.Join(lines, "\n")
}

// PadToWidth pads or truncates a line to exactly width display cells.
// ANSI escape codes do not count toward the width.
func PadToWidth(line string, width int) string {
	if width <= 0 {
		return ""
	}
	displayWidth := reflow.PrintableRuneWidth(line)
	if displayWidth == width {
		return line
	}
	if displayWidth > width {
		line = ansi.Truncate(line, width, "")
		displayWidth = reflow.PrintableRuneWidth(line)
	}
	return line + strings.Repeat(" ", max(0, width-displayWidth))
}
