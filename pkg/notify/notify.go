package notify

import (
	"fmt"
	"os/exec"
	"strings"

	"qam-observer/pkg/logger"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	Error NotificationType = iota
	Info
)

// NotifyService handles system notifications
type NotifyService struct {
	log           *logger.Logger
	notifyCommand string
}

// NewNotifyService creates a new notification service
func NewNotifyService(notifyCommand string, log *logger.Logger) *NotifyService {
	return &NotifyService{
		log:           log,
		notifyCommand: notifyCommand,
	}
}

// Show displays a notification of the specified type. Delivery is best
// effort: the configured command first, notify-send second, the log as
// a last resort.
func (n *NotifyService) Show(message string, nType NotificationType) error {
	if n.notifyCommand != "" {
		if err := n.executeNotifyCommand(message, nType); err == nil {
			return nil
		}
		n.log.Warn("Custom notification command failed", "command", n.notifyCommand)
	}

	if err := n.trySystemNotification(message, nType); err == nil {
		return nil
	}

	if nType == Error {
		n.log.Error("Notification", nil, "message", message)
	} else {
		n.log.Info("Notification", "message", message)
	}
	return nil
}

func (n *NotifyService) executeNotifyCommand(message string, nType NotificationType) error {
	args := strings.Fields(n.notifyCommand)
	if len(args) == 0 {
		return fmt.Errorf("empty notify command")
	}
	args = append(args, message)
	return exec.Command(args[0], args[1:]...).Run()
}

func (n *NotifyService) trySystemNotification(message string, nType NotificationType) error {
	if _, err := exec.LookPath("notify-send"); err != nil {
		return err
	}

	urgency := "normal"
	if nType == Error {
		urgency = "critical"
	}
	return exec.Command("notify-send", "-u", urgency, "QAM Observer", message).Run()
}
