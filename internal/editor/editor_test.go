package editor

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct{ line, count, want int }{
		{5, 10, 5},
		{15, 10, 10},
		{0, 10, 1},
		{3, 0, 1},
	}
	for _, c := range cases {
		if got := Clamp(c.line, c.count); got != c.want {
			t.Fatalf("Clamp(%d, %d) = %d, want %d", c.line, c.count, got, c.want)
		}
	}
}

func TestHubDeliversByKindAndCloses(t *testing.T) {
	var h Hub
	var moved, focused int
	subMoved := h.Subscribe([]EventKind{CursorMoved}, func(Event) { moved++ })
	h.Subscribe([]EventKind{CursorMoved, PaneFocused}, func(Event) { focused++ })

	h.Emit(Event{Kind: CursorMoved})
	h.Emit(Event{Kind: PaneFocused})
	if moved != 1 || focused != 2 {
		t.Fatalf("unexpected delivery counts moved=%d focused=%d", moved, focused)
	}

	subMoved.Close()
	subMoved.Close()
	h.Emit(Event{Kind: CursorMoved})
	if moved != 1 {
		t.Fatalf("expected closed subscription to stop receiving")
	}
	if h.Len() != 1 {
		t.Fatalf("expected one live subscription, got %d", h.Len())
	}
}

func TestHubHandlerMayCloseItself(t *testing.T) {
	var h Hub
	var sub Subscription
	calls := 0
	sub = h.Subscribe([]EventKind{CursorMoved}, func(Event) {
		calls++
		sub.Close()
	})
	h.Emit(Event{Kind: CursorMoved})
	h.Emit(Event{Kind: CursorMoved})
	if calls != 1 || h.Len() != 0 {
		t.Fatalf("expected single call and no subscriptions, calls=%d len=%d", calls, h.Len())
	}
}
