package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kondannyobhikkhu/tipitaka/internal/pane"
)

func TestPairChooserDefaultsAndChoice(t *testing.T) {
	c := NewPairChooser(pane.DefaultEditions(), "p2", "e2")
	c.SetSize(80, 20)
	if n := len(c.list.Items()); n != 12 {
		t.Fatalf("expected 12 ordered pairs, got %d", n)
	}
	_, cmd := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected choice command")
	}
	msg, ok := cmd().(pairChosenMsg)
	if !ok || msg.Left != "p2" || msg.Right != "e2" {
		t.Fatalf("expected p2,e2, got %#v", msg)
	}
}

func TestPairChooserEscCancels(t *testing.T) {
	c := NewPairChooser(pane.DefaultEditions(), "e1", "p1")
	_, cmd := c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected cancel command")
	}
	if _, ok := cmd().(pairCanceledMsg); !ok {
		t.Fatalf("expected pairCanceledMsg")
	}
}
