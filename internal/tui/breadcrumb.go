package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	pkgtui "github.com/kondannyobhikkhu/tipitaka/pkg/tui"
)

// Breadcrumb shows the path from the collection list to the current
// listing.
type Breadcrumb struct {
	crumbs []string
	width  int
}

// NewBreadcrumb creates an empty breadcrumb
func NewBreadcrumb() *Breadcrumb {
	return &Breadcrumb{}
}

// SetWidth sets the available width
func (b *Breadcrumb) SetWidth(w int) {
	b.width = w
}

// Set replaces the crumbs, root first
func (b *Breadcrumb) Set(crumbs []string) {
	b.crumbs = append(b.crumbs[:0], crumbs...)
}

// Crumbs returns the current crumbs
func (b *Breadcrumb) Crumbs() []string {
	return b.crumbs
}

// View renders the breadcrumb. When it does not fit, leading crumbs are
// replaced by an ellipsis; the current crumb is always shown.
func (b *Breadcrumb) View() string {
	if len(b.crumbs) == 0 {
		return ""
	}

	separator := lipgloss.NewStyle().
		Foreground(pkgtui.ColorMuted).
		Padding(0, 1).
		Render("›")

	render := func(crumbs []string, elided bool) string {
		var parts []string
		if elided {
			parts = append(parts, pkgtui.CrumbStyle.Render("…"))
		}
		for i, c := range crumbs {
			if i == len(crumbs)-1 {
				parts = append(parts, pkgtui.CurrentCrumbStyle.Render(c))
			} else {
				parts = append(parts, pkgtui.CrumbStyle.Render(c))
			}
		}
		return strings.Join(parts, separator)
	}

	for skip := 0; skip < len(b.crumbs); skip++ {
		out := render(b.crumbs[skip:], skip > 0)
		if b.width <= 0 || lipgloss.Width(out) <= b.width {
			return out
		}
	}
	return render(b.crumbs[len(b.crumbs)-1:], len(b.crumbs) > 1)
}
