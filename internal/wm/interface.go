package wm

type WindowManager interface {
	// FindWindow looks for a window by class name or title
	FindWindow(classNames []string, titles []string) (Window, error)
	// ActiveWindow returns the window that currently holds focus
	ActiveWindow() (Window, error)
	// Name returns the WM name for logging/display
	Name() string
}

type Window struct {
	ID      string
	Class   string
	Title   string
	Address string // For Hyprland
}
