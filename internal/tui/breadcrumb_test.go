package tui

import (
	"strings"
	"testing"
)

func TestBreadcrumbShowsPath(t *testing.T) {
	b := NewBreadcrumb()
	b.Set([]string{"Collections", "MN", "The Root Fifty"})
	view := b.View()
	for _, want := range []string{"Collections", "MN", "The Root Fifty"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in %q", want, view)
		}
	}
}

func TestBreadcrumbElidesLeadingCrumbs(t *testing.T) {
	b := NewBreadcrumb()
	b.SetWidth(30)
	b.Set([]string{"Collections", "SN", "The Book with Verses", "Linked with Devas"})
	view := b.View()
	if strings.Contains(view, "Collections") {
		t.Fatalf("expected root crumb to be elided")
	}
	if !strings.Contains(view, "Linked with Devas") || !strings.Contains(view, "…") {
		t.Fatalf("expected current crumb and ellipsis, got %q", view)
	}
}
