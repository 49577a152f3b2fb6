package wm

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"qam-observer/pkg/logger"
)

type Hyprland struct {
	log             *logger.Logger
	lastFoundWindow Window
}

func NewHyprland(log *logger.Logger) (*Hyprland, error) {
	// Check if hyprctl is available
	path, err := exec.LookPath("hyprctl")
	if err != nil {
		log.Error("hyprctl not found in PATH", err)
		return nil, fmt.Errorf("hyprctl not found in PATH: %w", err)
	}
	log.Debug("Found hyprctl", "path", path)

	return &Hyprland{log: log}, nil
}

func (h *Hyprland) Name() string {
	return "Hyprland"
}

type hyprClient struct {
	Address string `json:"address"`
	Class   string `json:"class"`
	Title   string `json:"title"`
}

func (h *Hyprland) FindWindow(classNames []string, titles []string) (Window, error) {
	cmd := exec.Command("hyprctl", "clients", "-j")
	output, err := cmd.CombinedOutput()
	if err != nil {
		h.log.Error("Failed to execute hyprctl", err, "output", string(output))
		return Window{}, fmt.Errorf("hyprctl error: %w", err)
	}

	if len(output) == 0 {
		return Window{}, nil
	}

	var windows []hyprClient
	if err := json.Unmarshal(output, &windows); err != nil {
		h.log.Error("Failed to parse hyprctl output", err, "output", string(output))
		return Window{}, fmt.Errorf("failed to parse hyprctl output: %w", err)
	}

	for _, w := range windows {
		if !matches(w.Class, classNames) && !matches(w.Title, titles) {
			continue
		}

		foundWindow := Window{
			Class:   w.Class,
			Title:   w.Title,
			Address: w.Address,
		}

		// Only log if this is a different window than last time
		if foundWindow != h.lastFoundWindow {
			h.log.Debug("Found matching window",
				"class", w.Class,
				"title", w.Title,
				"address", w.Address)
			h.lastFoundWindow = foundWindow
		}

		return foundWindow, nil
	}

	if h.lastFoundWindow != (Window{}) {
		h.lastFoundWindow = Window{}
	}

	return Window{}, nil
}

func (h *Hyprland) ActiveWindow() (Window, error) {
	cmd := exec.Command("hyprctl", "activewindow", "-j")
	output, err := cmd.CombinedOutput()
	if err != nil {
		h.log.Error("Failed to execute hyprctl", err, "output", string(output))
		return Window{}, fmt.Errorf("hyprctl error: %w", err)
	}

	// Hyprland reports an empty object when nothing is focused.
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" || trimmed == "{}" {
		return Window{}, nil
	}

	var active hyprClient
	if err := json.Unmarshal(output, &active); err != nil {
		h.log.Error("Failed to parse hyprctl output", err, "output", string(output))
		return Window{}, fmt.Errorf("failed to parse hyprctl output: %w", err)
	}

	return Window{
		Class:   active.Class,
		Title:   active.Title,
		Address: active.Address,
	}, nil
}

func matches(value string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(strings.ToLower(value), strings.ToLower(p)) {
			return true
		}
	}
	return false
}
