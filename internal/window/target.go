package window

import "sync"

// Target is an in-memory Handle. The compositor bridge feeds it focus
// and blur transitions; observers subscribe to it like any host window.
type Target struct {
	mu     sync.Mutex
	nextID int
	// Registration order is kept so Dispatch runs handlers in the
	// order they were added.
	listeners map[Event][]entry
}

type entry struct {
	id int
	fn func()
}

// NewTarget creates an empty event target.
func NewTarget() *Target {
	return &Target{
		listeners: make(map[Event][]entry),
	}
}

// AddListener registers fn for ev and returns its removal token.
func (t *Target) AddListener(ev Event, fn func()) Listener {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	t.listeners[ev] = append(t.listeners[ev], entry{id: t.nextID, fn: fn})
	return Listener{event: ev, id: t.nextID}
}

// RemoveListener unregisters the listener behind the token. Tokens that
// were never issued, or were already removed, are ignored.
func (t *Target) RemoveListener(l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := t.listeners[l.event]
	for i, e := range entries {
		if e.id == l.id {
			t.listeners[l.event] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// Dispatch invokes every listener registered for ev, in registration
// order. Handlers run on the caller's goroutine.
func (t *Target) Dispatch(ev Event) {
	t.mu.Lock()
	entries := make([]entry, len(t.listeners[ev]))
	copy(entries, t.listeners[ev])
	t.mu.Unlock()

	for _, e := range entries {
		e.fn()
	}
}

// ListenerCount reports how many handlers are registered across all
// events. Used for diagnostics and teardown checks.
func (t *Target) ListenerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, entries := range t.listeners {
		n += len(entries)
	}
	return n
}
