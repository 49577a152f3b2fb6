package wm

import (
	"testing"

	"github.com/rs/zerolog"

	"qam-observer/internal/nav"
	"qam-observer/internal/window"
	"qam-observer/pkg/logger"
)

type fakeWM struct {
	win    Window
	active Window
}

func (f *fakeWM) FindWindow(classNames []string, titles []string) (Window, error) {
	return f.win, nil
}

func (f *fakeWM) ActiveWindow() (Window, error) {
	return f.active, nil
}

func (f *fakeWM) Name() string {
	return "fake"
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(logger.WithLevel(zerolog.Disabled))
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

func TestBridgeUnboundNode(t *testing.T) {
	b := NewBridge(&fakeWM{}, 0, newTestLogger(t))

	if _, ok := b.TreeByID("QuickAccess-NA"); ok {
		t.Fatalf("expected no tree for an unbound node")
	}
}

func TestBridgeAbsentWindowYieldsBrokenChain(t *testing.T) {
	b := NewBridge(&fakeWM{}, 0, newTestLogger(t))
	b.Bind("QuickAccess-NA", []string{"steam"}, nil)
	b.poll()

	tree, ok := b.TreeByID("QuickAccess-NA")
	if !ok {
		t.Fatalf("expected a tree for a bound node")
	}
	if _, err := nav.ResolveWindow(b, "QuickAccess-NA"); err == nil {
		t.Fatalf("expected resolution to fail while the window is absent")
	}
	if tree.Root != nil {
		t.Fatalf("expected a rootless tree, got %+v", tree)
	}
}

func TestBridgePresentWindowResolves(t *testing.T) {
	qam := Window{Class: "steam", Title: "Quick Access", Address: "0xabc"}
	fake := &fakeWM{win: qam}
	b := NewBridge(fake, 0, newTestLogger(t))
	b.Bind("QuickAccess-NA", []string{"steam"}, nil)
	b.poll()

	h, err := nav.ResolveWindow(b, "QuickAccess-NA")
	if err != nil {
		t.Fatalf("expected resolution to succeed, got %v", err)
	}
	if h == nil {
		t.Fatalf("expected a window handle")
	}
}

func TestBridgeFocusTransitions(t *testing.T) {
	qam := Window{Class: "steam", Title: "Quick Access", Address: "0xabc"}
	other := Window{Class: "game", Title: "Some Game", Address: "0xdef"}
	fake := &fakeWM{win: qam, active: other}
	b := NewBridge(fake, 0, newTestLogger(t))
	b.Bind("QuickAccess-NA", []string{"steam"}, nil)
	b.poll()

	h, err := nav.ResolveWindow(b, "QuickAccess-NA")
	if err != nil {
		t.Fatalf("expected resolution to succeed, got %v", err)
	}

	var events []window.Event
	h.AddListener(window.Focus, func() { events = append(events, window.Focus) })
	h.AddListener(window.Blur, func() { events = append(events, window.Blur) })

	fake.active = qam
	b.poll()
	fake.active = qam
	b.poll() // no transition
	fake.active = other
	b.poll()

	if len(events) != 2 || events[0] != window.Focus || events[1] != window.Blur {
		t.Fatalf("expected [focus blur], got %v", events)
	}
}

func TestBridgeWindowDisappearance(t *testing.T) {
	qam := Window{Class: "steam", Title: "Quick Access", Address: "0xabc"}
	fake := &fakeWM{win: qam, active: qam}
	b := NewBridge(fake, 0, newTestLogger(t))
	b.Bind("QuickAccess-NA", []string{"steam"}, nil)
	b.poll()

	h, err := nav.ResolveWindow(b, "QuickAccess-NA")
	if err != nil {
		t.Fatalf("expected resolution to succeed, got %v", err)
	}

	var events []window.Event
	h.AddListener(window.Blur, func() { events = append(events, window.Blur) })

	// The window closes: the chain must break and a final blur must
	// be delivered to listeners.
	fake.win = Window{}
	fake.active = Window{}
	b.poll()
	b.poll()

	if _, err := nav.ResolveWindow(b, "QuickAccess-NA"); err == nil {
		t.Fatalf("expected resolution to fail after the window closed")
	}
	if len(events) != 1 || events[0] != window.Blur {
		t.Fatalf("expected a single blur on disappearance, got %v", events)
	}
}

func TestBridgeWindowReappearsWithNewAddress(t *testing.T) {
	qam := Window{Class: "steam", Title: "Quick Access", Address: "0xabc"}
	fake := &fakeWM{win: qam, active: Window{}}
	b := NewBridge(fake, 0, newTestLogger(t))
	b.Bind("QuickAccess-NA", []string{"steam"}, nil)
	b.poll()

	h, err := nav.ResolveWindow(b, "QuickAccess-NA")
	if err != nil {
		t.Fatalf("expected resolution to succeed, got %v", err)
	}

	var events []window.Event
	h.AddListener(window.Focus, func() { events = append(events, window.Focus) })
	h.AddListener(window.Blur, func() { events = append(events, window.Blur) })

	// Close the window, then reopen it under a fresh address.
	fake.win = Window{}
	b.poll()

	reopened := Window{Class: "steam", Title: "Quick Access", Address: "0xfresh"}
	fake.win = reopened
	fake.active = reopened
	b.poll()

	if len(events) != 1 || events[0] != window.Focus {
		t.Fatalf("expected focus to resume against the new address, got %v", events)
	}

	// The same handle keeps working across the restart.
	if _, err := nav.ResolveWindow(b, "QuickAccess-NA"); err != nil {
		t.Fatalf("expected resolution to succeed after reappearance, got %v", err)
	}
}

func TestBridgeStopTwice(t *testing.T) {
	b := NewBridge(&fakeWM{}, 0, newTestLogger(t))
	b.Start()
	b.Stop()
	b.Stop()
}

func TestSameWindow(t *testing.T) {
	a := Window{Class: "steam", Title: "QAM", Address: "0x1"}

	if sameWindow(a, Window{}) {
		t.Fatalf("nothing should match the zero window")
	}
	if !sameWindow(a, Window{Class: "x", Title: "y", Address: "0x1"}) {
		t.Fatalf("expected address comparison to win")
	}
	if sameWindow(a, Window{Class: "steam", Title: "QAM", Address: "0x2"}) {
		t.Fatalf("expected differing addresses not to match")
	}
	if !sameWindow(Window{ID: "77"}, Window{ID: "77", Class: "steam"}) {
		t.Fatalf("expected id comparison when no addresses")
	}
	if !sameWindow(Window{Class: "steam", Title: "QAM"}, Window{Class: "steam", Title: "QAM"}) {
		t.Fatalf("expected class+title fallback to match")
	}
}
