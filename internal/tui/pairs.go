package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kondannyobhikkhu/tipitaka/internal/pane"
	pkgtui "github.com/kondannyobhikkhu/tipitaka/pkg/tui"
)

// pairItem is one left,right edition combination
type pairItem struct {
	left  pane.Edition
	right pane.Edition
}

func (i pairItem) Title() string       { return i.left.Code + "," + i.right.Code }
func (i pairItem) Description() string { return i.left.Label + " │ " + i.right.Label }
func (i pairItem) FilterValue() string { return i.Title() }

type pairChosenMsg struct {
	Left, Right string
}

type pairCanceledMsg struct{}

// PairChooser lists every ordered pair of distinct editions
type PairChooser struct {
	list list.Model
}

// NewPairChooser builds the chooser with the default pair highlighted
func NewPairChooser(editions pane.Editions, defLeft, defRight string) *PairChooser {
	var items []list.Item
	selected := 0
	for _, l := range editions {
		for _, r := range editions {
			if l.Code == r.Code {
				continue
			}
			if l.Code == defLeft && r.Code == defRight {
				selected = len(items)
			}
			items = append(items, pairItem{left: l, right: r})
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = pkgtui.SelectedStyle
	delegate.Styles.NormalTitle = pkgtui.UnselectedStyle
	l := list.New(items, delegate, 0, 0)
	l.Title = "Open edition pair"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Select(selected)
	return &PairChooser{list: l}
}

// SetSize sets the list dimensions, keeping the highlighted pair
func (c *PairChooser) SetSize(width, height int) {
	selected := c.list.Index()
	c.list.SetSize(width, height)
	c.list.Select(selected)
}

// Update handles selection and cancellation
func (c *PairChooser) Update(msg tea.Msg) (*PairChooser, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && c.list.FilterState() != list.Filtering {
		switch key.String() {
		case "enter":
			if item, ok := c.list.SelectedItem().(pairItem); ok {
				return c, func() tea.Msg { return pairChosenMsg{Left: item.left.Code, Right: item.right.Code} }
			}
			return c, nil
		case "esc":
			if c.list.FilterState() == list.FilterApplied {
				c.list.ResetFilter()
				return c, nil
			}
			return c, func() tea.Msg { return pairCanceledMsg{} }
		}
	}
	var cmd tea.Cmd
	c.list, cmd = c.list.Update(msg)
	return c, cmd
}

// View renders the list
func (c *PairChooser) View() string {
	return c.list.View()
}
