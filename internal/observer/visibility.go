// Package observer tracks whether the Quick Access Menu overlay panel
// holds input focus.
package observer

import (
	"sync"

	"qam-observer/internal/nav"
	"qam-observer/internal/window"
	"qam-observer/pkg/logger"
)

// Visibility reports whether the Quick Access Menu currently holds
// focus. It resolves the panel's window through a navigation registry
// once per Attach and mirrors the window's focus/blur events into a
// boolean.
//
// The value is best effort: it reflects the last focus event the host
// delivered, nothing more. During host UI reloads the panel can be
// reported blurred while it is actually focused; that is accepted
// behavior, not corrected here.
type Visibility struct {
	reg    nav.Registry
	nodeID string
	log    *logger.Logger

	mu       sync.RWMutex
	win      window.Handle
	focus    window.Listener
	blur     window.Listener
	visible  bool
	onChange func(bool)
}

// New creates a visibility observer for the given navigation node.
// An empty nodeID observes the Quick Access Menu.
func New(reg nav.Registry, nodeID string, log *logger.Logger) *Visibility {
	if nodeID == "" {
		nodeID = nav.QuickAccessNode
	}
	return &Visibility{
		reg:    reg,
		nodeID: nodeID,
		log:    log,
		// The panel is assumed on-screen by the time anyone observes it.
		visible: true,
	}
}

// OnChange registers a callback invoked whenever the flag flips. Must
// be set before Attach. The callback runs on the event dispatch
// goroutine and should return quickly.
func (v *Visibility) OnChange(fn func(visible bool)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onChange = fn
}

// Attach resolves the panel window and subscribes to its focus
// lifecycle. Resolution runs exactly once; if no window can be
// resolved the observer logs it and the flag stays at its default for
// the rest of this attachment. Attach never fails.
func (v *Visibility) Attach() {
	v.mu.Lock()
	defer v.mu.Unlock()

	// A second Attach is a fresh activation: drop any listeners the
	// previous one registered so they cannot leak.
	v.detachLocked()

	v.visible = true

	win, err := nav.ResolveWindow(v.reg, v.nodeID)
	if err != nil {
		// Non-fatal. The host may not have built the panel's nav tree
		// yet; the flag keeps its default until the next Attach.
		v.log.Warn("Could not resolve panel window, visibility will not update",
			"node_id", v.nodeID,
			"reason", err)
		return
	}

	v.win = win
	v.blur = win.AddListener(window.Blur, func() { v.set(false) })
	v.focus = win.AddListener(window.Focus, func() { v.set(true) })

	v.log.Debug("Subscribed to panel window focus events", "node_id", v.nodeID)
}

// Detach removes the two listeners added by Attach. Safe to call when
// no window was resolved, and idempotent.
func (v *Visibility) Detach() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.detachLocked()
}

func (v *Visibility) detachLocked() {
	if v.win == nil {
		return
	}

	v.win.RemoveListener(v.blur)
	v.win.RemoveListener(v.focus)
	v.win = nil

	v.log.Debug("Unsubscribed from panel window focus events", "node_id", v.nodeID)
}

// Visible reports whether the panel held focus as of the last event
// the host delivered, or the mount default if no window was resolved.
func (v *Visibility) Visible() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.visible
}

// Resolved reports whether the current attachment found a window.
func (v *Visibility) Resolved() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.win != nil
}

func (v *Visibility) set(visible bool) {
	v.mu.Lock()
	changed := v.visible != visible
	v.visible = visible
	fn := v.onChange
	v.mu.Unlock()

	if changed && fn != nil {
		fn(visible)
	}
}
