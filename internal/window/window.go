package window

// Event names the focus lifecycle events a window surface can deliver.
type Event string

const (
	// Focus fires when the window gains input focus.
	Focus Event = "focus"
	// Blur fires when the window loses input focus.
	Blur Event = "blur"
)

// Listener identifies a registered event handler so it can be removed
// later. The zero value is never issued.
type Listener struct {
	event Event
	id    int
}

// Event returns the event the listener was registered for.
func (l Listener) Event() Event {
	return l.event
}

// Handle is a focusable top-level UI surface owned by the host runtime.
// Implementations deliver focus and blur events to registered listeners.
type Handle interface {
	// AddListener registers fn for the given event and returns a token
	// for later removal.
	AddListener(ev Event, fn func()) Listener
	// RemoveListener unregisters a previously added listener. Unknown
	// tokens are ignored.
	RemoveListener(l Listener)
}
