package editor

import "sync"

// Hub fans events out to subscribers. Hosts embed it to implement
// Workspace.Subscribe.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   []hubSub
}

type hubSub struct {
	id    int
	kinds []EventKind
	fn    func(Event)
}

type hubSubscription struct {
	hub  *Hub
	id   int
	once sync.Once
}

func (s *hubSubscription) Close() {
	s.once.Do(func() { s.hub.remove(s.id) })
}

// Subscribe registers fn for the given event kinds.
func (h *Hub) Subscribe(kinds []EventKind, fn func(Event)) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.subs = append(h.subs, hubSub{id: h.nextID, kinds: append([]EventKind(nil), kinds...), fn: fn})
	return &hubSubscription{hub: h, id: h.nextID}
}

func (h *Hub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
			return
		}
	}
}

// Emit calls every matching subscriber in registration order on the
// caller's goroutine. The subscriber list is snapshotted first, so handlers
// may subscribe or close while being called.
func (h *Hub) Emit(ev Event) {
	h.mu.Lock()
	subs := append([]hubSub(nil), h.subs...)
	h.mu.Unlock()

	for _, s := range subs {
		for _, k := range s.kinds {
			if k == ev.Kind {
				s.fn(ev)
				break
			}
		}
	}
}

// Len reports the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
