package wm

import (
	"sync"
	"time"

	"qam-observer/internal/nav"
	"qam-observer/internal/window"
	"qam-observer/pkg/logger"
)

// Bridge exposes compositor windows through the navigation registry
// interface. Each bound node id maps to a set of window class/title
// matchers; the bridge polls the compositor for the bound windows and
// the active window, and turns focus transitions into focus/blur
// events on a per-binding event target.
//
// Observers never see the compositor: they resolve a window.Handle
// through TreeByID like they would against the host runtime.
type Bridge struct {
	log      *logger.Logger
	wm       WindowManager
	interval time.Duration

	mu       sync.RWMutex
	bindings map[string]*binding
	stopChan chan struct{}
	stopped  bool
}

type binding struct {
	classes []string
	titles  []string
	target  *window.Target
	win     Window
	present bool
	focused bool
}

// NewBridge creates a bridge that polls wm at the given interval.
func NewBridge(wm WindowManager, interval time.Duration, log *logger.Logger) *Bridge {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &Bridge{
		log:      log,
		wm:       wm,
		interval: interval,
		bindings: make(map[string]*binding),
		stopChan: make(chan struct{}),
	}
}

// Bind associates a navigation node id with compositor window matchers.
// Rebinding an id replaces its matchers and drops its event target.
func (b *Bridge) Bind(nodeID string, classNames []string, titles []string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bindings[nodeID] = &binding{
		classes: classNames,
		titles:  titles,
		target:  window.NewTarget(),
	}
	b.log.Debug("Bound navigation node to compositor windows",
		"node_id", nodeID,
		"classes", classNames,
		"titles", titles)
}

// TreeByID implements nav.Registry. A bound node whose window is
// currently present yields a full chain down to the binding's event
// target; a bound node whose window is absent yields a rootless tree,
// so resolution fails the way it does against a half-built host panel.
func (b *Bridge) TreeByID(id string) (*nav.Tree, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bd, ok := b.bindings[id]
	if !ok {
		return nil, false
	}
	if !bd.present {
		return &nav.Tree{}, true
	}
	return &nav.Tree{
		Root: &nav.Node{
			Element: &nav.Element{
				OwnerDocument: &nav.Document{
					DefaultView: bd.target,
				},
			},
		},
	}, true
}

// Start begins the poll loop. One initial poll runs synchronously so
// bindings are populated before Start returns.
func (b *Bridge) Start() {
	b.poll()
	go b.run()
}

// Stop ends the poll loop. Safe to call more than once.
func (b *Bridge) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return
	}
	b.stopped = true
	close(b.stopChan)
}

func (b *Bridge) run() {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			b.poll()
		}
	}
}

// poll refreshes window presence and focus for every binding and
// dispatches transitions. Events for one binding are delivered in
// order from this single goroutine.
func (b *Bridge) poll() {
	active, err := b.wm.ActiveWindow()
	if err != nil {
		b.log.Debug("Could not query active window", "error", err)
		return
	}

	type transition struct {
		target *window.Target
		event  window.Event
	}
	var transitions []transition

	b.mu.Lock()
	for nodeID, bd := range b.bindings {
		// Presence is re-verified on every poll: windows close and
		// reopen under fresh identities, so a stored match can go
		// stale at any time.
		win, err := b.wm.FindWindow(bd.classes, bd.titles)
		if err != nil {
			b.log.Error("Error locating bound window", err, "node_id", nodeID)
			continue
		}

		if win == (Window{}) {
			if bd.present {
				bd.present = false
				bd.win = Window{}
				b.log.Info("Bound window lost", "node_id", nodeID)
				if bd.focused {
					bd.focused = false
					transitions = append(transitions, transition{target: bd.target, event: window.Blur})
					b.log.Debug("Focus transition", "node_id", nodeID, "event", string(window.Blur))
				}
			}
			continue
		}

		if !bd.present {
			b.log.Info("Bound window appeared",
				"node_id", nodeID,
				"class", win.Class,
				"title", win.Title)
		}
		bd.win = win
		bd.present = true

		focused := sameWindow(active, bd.win)
		if focused == bd.focused {
			continue
		}
		bd.focused = focused

		ev := window.Blur
		if focused {
			ev = window.Focus
		}
		transitions = append(transitions, transition{target: bd.target, event: ev})
		b.log.Debug("Focus transition", "node_id", nodeID, "event", string(ev))
	}
	b.mu.Unlock()

	// Dispatch outside the lock; handlers may call back into TreeByID.
	for _, tr := range transitions {
		tr.target.Dispatch(tr.event)
	}
}

// sameWindow compares by the strongest identity available: Hyprland
// address first, X11 id second, class+title as a last resort.
func sameWindow(a, c Window) bool {
	if c == (Window{}) {
		return false
	}
	if a.Address != "" && c.Address != "" {
		return a.Address == c.Address
	}
	if a.ID != "" && c.ID != "" {
		return a.ID == c.ID
	}
	return a.Class == c.Class && a.Title == c.Title
}
