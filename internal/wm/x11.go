package wm

import (
	"fmt"
	"os/exec"
	"strings"
)

type X11 struct{}

func NewX11() (WindowManager, error) {
	// Check if xdotool is available
	if _, err := exec.LookPath("xdotool"); err != nil {
		return nil, fmt.Errorf("xdotool is required for X11 support but was not found: %w", err)
	}
	return &X11{}, nil
}

func (x *X11) Name() string {
	return "X11"
}

func (x *X11) FindWindow(classNames []string, titles []string) (Window, error) {
	for _, class := range classNames {
		out, err := exec.Command("xdotool", "search", "--class", class).Output()
		if err != nil || len(out) == 0 {
			continue
		}
		// First line is the first matching window ID
		windowID := strings.Split(strings.TrimSpace(string(out)), "\n")[0]

		titleOut, err := exec.Command("xdotool", "getwindowname", windowID).Output()
		if err != nil {
			continue
		}
		return Window{
			ID:    windowID,
			Class: class,
			Title: strings.TrimSpace(string(titleOut)),
		}, nil
	}

	for _, title := range titles {
		out, err := exec.Command("xdotool", "search", "--name", title).Output()
		if err != nil || len(out) == 0 {
			continue
		}
		windowID := strings.Split(strings.TrimSpace(string(out)), "\n")[0]

		classOut, err := exec.Command("xdotool", "getwindowclassname", windowID).Output()
		if err != nil {
			continue
		}
		return Window{
			ID:    windowID,
			Class: strings.TrimSpace(string(classOut)),
			Title: title,
		}, nil
	}

	return Window{}, nil
}

func (x *X11) ActiveWindow() (Window, error) {
	out, err := exec.Command("xdotool", "getactivewindow").Output()
	if err != nil {
		// No active window is not an error condition for callers.
		return Window{}, nil
	}
	windowID := strings.TrimSpace(string(out))
	if windowID == "" {
		return Window{}, nil
	}

	w := Window{ID: windowID}
	if classOut, err := exec.Command("xdotool", "getwindowclassname", windowID).Output(); err == nil {
		w.Class = strings.TrimSpace(string(classOut))
	}
	if titleOut, err := exec.Command("xdotool", "getwindowname", windowID).Output(); err == nil {
		w.Title = strings.TrimSpace(string(titleOut))
	}
	return w, nil
}
