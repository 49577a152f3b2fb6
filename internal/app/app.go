// Package app provides an optional desktop panel that mirrors the
// observer state, mainly useful while tuning window matchers.
package app

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"qam-observer/internal/observer"
	"qam-observer/pkg/logger"
)

// StatusPanel is a small always-available window showing whether the
// Quick Access Menu currently holds focus.
type StatusPanel struct {
	log    *logger.Logger
	obs    *observer.Visibility
	window fyne.Window
	status *widget.Label
	mu     sync.Mutex
}

// NewStatusPanel creates the panel for the given observer.
func NewStatusPanel(obs *observer.Visibility, log *logger.Logger) *StatusPanel {
	return &StatusPanel{
		log: log,
		obs: obs,
	}
}

// Run builds the window and blocks until it is closed.
func (p *StatusPanel) Run() error {
	p.log.Info("Starting status panel")

	a := app.New()
	p.window = a.NewWindow("QAM Observer")

	p.mu.Lock()
	p.status = widget.NewLabel(stateText(p.obs.Visible(), p.obs.Resolved()))
	p.mu.Unlock()

	content := container.NewCenter(
		container.NewVBox(
			widget.NewLabel("Quick Access Menu"),
			p.status,
		),
	)
	p.window.SetContent(content)
	p.window.Resize(fyne.NewSize(300, 150))

	p.window.ShowAndRun()
	return nil
}

// SetState updates the panel after a focus transition. Safe to call
// from the event dispatch goroutine.
func (p *StatusPanel) SetState(visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status == nil {
		return
	}
	p.status.SetText(stateText(visible, p.obs.Resolved()))
}

func stateText(visible, resolved bool) string {
	if !resolved {
		return "window not resolved"
	}
	if visible {
		return "focused"
	}
	return "blurred"
}
