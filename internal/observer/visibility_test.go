package observer

import (
	"testing"

	"github.com/rs/zerolog"

	"qam-observer/internal/nav"
	"qam-observer/internal/window"
	"qam-observer/pkg/logger"
)

type fakeRegistry struct {
	trees map[string]*nav.Tree
}

func (f fakeRegistry) TreeByID(id string) (*nav.Tree, bool) {
	tree, ok := f.trees[id]
	return tree, ok
}

func fullTree(h window.Handle) *nav.Tree {
	return &nav.Tree{
		Root: &nav.Node{
			Element: &nav.Element{
				OwnerDocument: &nav.Document{
					DefaultView: h,
				},
			},
		},
	}
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(logger.WithLevel(zerolog.Disabled))
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

func newResolved(t *testing.T) (*Visibility, *window.Target) {
	t.Helper()
	target := window.NewTarget()
	reg := fakeRegistry{trees: map[string]*nav.Tree{
		nav.QuickAccessNode: fullTree(target),
	}}
	return New(reg, "", newTestLogger(t)), target
}

func TestBlurAndFocusToggleFlag(t *testing.T) {
	obs, target := newResolved(t)
	obs.Attach()
	defer obs.Detach()

	if !obs.Visible() {
		t.Fatalf("expected default visible=true after attach")
	}

	target.Dispatch(window.Blur)
	if obs.Visible() {
		t.Fatalf("expected visible=false after blur")
	}

	target.Dispatch(window.Focus)
	if !obs.Visible() {
		t.Fatalf("expected visible=true after focus")
	}
}

func TestRepeatedBlurThenFocusEndsTrue(t *testing.T) {
	obs, target := newResolved(t)
	obs.Attach()
	defer obs.Detach()

	target.Dispatch(window.Blur)
	target.Dispatch(window.Blur)
	target.Dispatch(window.Focus)

	if !obs.Visible() {
		t.Fatalf("expected visible=true after [blur, blur, focus]")
	}
}

func TestUnresolvableWindowKeepsDefault(t *testing.T) {
	// The tree exists but its chain never reaches a window, and an
	// unrelated target shows nothing got subscribed anywhere.
	spare := window.NewTarget()
	reg := fakeRegistry{trees: map[string]*nav.Tree{
		nav.QuickAccessNode: {Root: &nav.Node{}},
		"MainMenu-NA":       fullTree(spare),
	}}
	obs := New(reg, "", newTestLogger(t))

	obs.Attach()
	defer obs.Detach()

	if !obs.Visible() {
		t.Fatalf("expected flag to stay at default true")
	}
	if obs.Resolved() {
		t.Fatalf("expected no window to be resolved")
	}
	if n := spare.ListenerCount(); n != 0 {
		t.Fatalf("expected no listeners anywhere, got %d", n)
	}
}

func TestDetachRemovesBothHandlers(t *testing.T) {
	obs, target := newResolved(t)

	obs.Attach()
	if n := target.ListenerCount(); n != 2 {
		t.Fatalf("expected 2 listeners after attach, got %d", n)
	}

	obs.Detach()
	if n := target.ListenerCount(); n != 0 {
		t.Fatalf("expected 0 listeners after detach, got %d", n)
	}

	// Events after detach must not move the flag.
	target.Dispatch(window.Blur)
	if !obs.Visible() {
		t.Fatalf("expected flag unchanged after detach")
	}
}

func TestDetachWithoutResolvedWindowIsNoop(t *testing.T) {
	reg := fakeRegistry{trees: map[string]*nav.Tree{}}
	obs := New(reg, "", newTestLogger(t))

	obs.Attach()
	obs.Detach()
	// And again without any attach at all.
	obs.Detach()
}

func TestReattachResolvesIndependently(t *testing.T) {
	obs, target := newResolved(t)

	obs.Attach()
	target.Dispatch(window.Blur)
	if obs.Visible() {
		t.Fatalf("expected visible=false before detach")
	}
	obs.Detach()

	obs.Attach()
	defer obs.Detach()

	if !obs.Visible() {
		t.Fatalf("expected flag reset to true on re-attach")
	}
	if n := target.ListenerCount(); n != 2 {
		t.Fatalf("expected exactly 2 listeners after re-attach, got %d", n)
	}
}

func TestDoubleAttachDoesNotLeakListeners(t *testing.T) {
	obs, target := newResolved(t)

	obs.Attach()
	target.Dispatch(window.Blur)
	// Attach again without detaching: a fresh activation, not a leak.
	obs.Attach()

	if n := target.ListenerCount(); n != 2 {
		t.Fatalf("expected exactly 2 listeners after double attach, got %d", n)
	}
	if !obs.Visible() {
		t.Fatalf("expected flag reset to true on re-attach")
	}

	obs.Detach()
	if n := target.ListenerCount(); n != 0 {
		t.Fatalf("expected 0 listeners after detach, got %d", n)
	}
}

func TestOnChangeFiresOnTransitionsOnly(t *testing.T) {
	obs, target := newResolved(t)

	var seen []bool
	obs.OnChange(func(visible bool) { seen = append(seen, visible) })

	obs.Attach()
	defer obs.Detach()

	target.Dispatch(window.Blur)
	target.Dispatch(window.Blur) // no transition
	target.Dispatch(window.Focus)

	if len(seen) != 2 || seen[0] != false || seen[1] != true {
		t.Fatalf("expected transitions [false true], got %v", seen)
	}
}

func TestEndToEndQuickAccessChain(t *testing.T) {
	w := window.NewTarget()
	reg := fakeRegistry{trees: map[string]*nav.Tree{
		"QuickAccess-NA": fullTree(w),
	}}
	obs := New(reg, "QuickAccess-NA", newTestLogger(t))

	obs.Attach()
	defer obs.Detach()

	if !obs.Resolved() {
		t.Fatalf("expected observer to attach to the chain's window")
	}

	w.Dispatch(window.Blur)
	if obs.Visible() {
		t.Fatalf("expected visible=false after blur")
	}
	w.Dispatch(window.Focus)
	if !obs.Visible() {
		t.Fatalf("expected visible=true after focus")
	}
}
