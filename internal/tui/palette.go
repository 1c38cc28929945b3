package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"

	pkgtui "github.com/kondannyobhikkhu/tipitaka/pkg/tui"
)

// PaletteItem is one selectable line.
type PaletteItem struct {
	Label     string
	Synthetic bool
}

// paletteChosenMsg carries the index of the chosen item in the list given
// to SetItems, regardless of any filter.
type paletteChosenMsg struct {
	Index int
}

type paletteCanceledMsg struct{}

// Palette is a picker with type-to-filter
type Palette struct {
	input    textinput.Model
	title    string
	note     string
	items    []PaletteItem
	matches  []fuzzy.Match
	selected int
	width    int
	height   int
}

// NewPalette creates an empty picker
func NewPalette() *Palette {
	input := textinput.New()
	input.Placeholder = "type to filter"
	input.Prompt = "> "
	input.CharLimit = 64

	return &Palette{
		input: input,
	}
}

// SetItems replaces the listing and clears the filter. note is shown under
// the items when non-empty.
func (p *Palette) SetItems(title string, items []PaletteItem, note string) {
	p.title = title
	p.items = items
	p.note = note
	p.input.Reset()
	p.selected = 0
	p.updateMatches()
}

// SetSize sets the palette dimensions
func (p *Palette) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-6)
}

// Focus focuses the filter input
func (p *Palette) Focus() tea.Cmd {
	return p.input.Focus()
}

// Filter returns the current filter text
func (p *Palette) Filter() string {
	return p.input.Value()
}

// Len is the number of items passing the filter
func (p *Palette) Len() int {
	return len(p.matches)
}

// Selected returns the index of the highlighted item in the full list
func (p *Palette) Selected() (int, bool) {
	if p.selected < 0 || p.selected >= len(p.matches) {
		return 0, false
	}
	return p.matches[p.selected].Index, true
}

// Update handles input
func (p *Palette) Update(msg tea.Msg) (*Palette, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if p.input.Value() != "" {
				p.input.Reset()
				p.updateMatches()
				p.selected = 0
				return p, nil
			}
			return p, func() tea.Msg { return paletteCanceledMsg{} }

		case "enter":
			if idx, ok := p.Selected(); ok {
				return p, func() tea.Msg { return paletteChosenMsg{Index: idx} }
			}
			return p, nil

		case "up", "ctrl+p", "shift+tab":
			if p.selected > 0 {
				p.selected--
			}
			return p, nil

		case "down", "ctrl+n", "tab":
			if p.selected < len(p.matches)-1 {
				p.selected++
			}
			return p, nil

		case "pgup":
			p.selected = max(0, p.selected-p.rows())
			return p, nil

		case "pgdown":
			p.selected = max(0, min(len(p.matches)-1, p.selected+p.rows()))
			return p, nil

		case "home":
			p.selected = 0
			return p, nil

		case "end":
			p.selected = max(0, len(p.matches)-1)
			return p, nil
		}
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)

	if p.input.Value() != before {
		p.updateMatches()
		p.selected = 0
	}
	return p, cmd
}

func (p *Palette) updateMatches() {
	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		p.matches = make([]fuzzy.Match, len(p.items))
		for i := range p.items {
			p.matches[i] = fuzzy.Match{Index: i}
		}
		return
	}

	labels := make([]string, len(p.items))
	for i, item := range p.items {
		labels[i] = item.Label
	}
	p.matches = fuzzy.Find(query, labels)
}

// rows is the number of items visible at once
func (p *Palette) rows() int {
	rows := 10
	if p.height > 0 {
		rows = p.height - 4
		if p.note != "" {
			rows--
		}
	}
	return max(1, rows)
}

// View renders the palette
func (p *Palette) View() string {
	width := p.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(pkgtui.TitleStyle.Render(p.title) + "\n")
	b.WriteString(p.input.View() + "\n")
	b.WriteString(pkgtui.LabelStyle.Render(strings.Repeat("─", max(0, width-2))) + "\n")

	rows := p.rows()
	start := 0
	if p.selected >= rows {
		start = p.selected - rows + 1
	}
	end := min(len(p.matches), start+rows)
	for i := start; i < end; i++ {
		item := p.items[p.matches[i].Index]
		label := ansi.Truncate(item.Label, max(1, width-4), "…")

		switch {
		case i == p.selected:
			label = pkgtui.SelectedStyle.Render("▸ " + label)
		case item.Synthetic:
			label = "  " + pkgtui.SyntheticStyle.Render(label)
		default:
			label = "  " + pkgtui.UnselectedStyle.Render(label)
		}
		b.WriteString(label + "\n")
	}

	if len(p.matches) == 0 {
		if p.input.Value() != "" {
			b.WriteString(pkgtui.LabelStyle.Render("  No matching entries") + "\n")
		} else {
			b.WriteString(pkgtui.LabelStyle.Render("  Nothing to show") + "\n")
		}
	}
	if p.note != "" {
		b.WriteString(pkgtui.NoticeWarn.Render(p.note) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
