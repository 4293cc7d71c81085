package infrastructure

import (
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"github.com/yourusername/ytchannel-go/internal/domain"
)

// NotificationService sends desktop notifications for run events
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
	// run executes the notifier command; replaced in tests
	run func(name string, args ...string) error
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		config: config,
		logger: logger,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Send sends a notification. A nil service or disabled config is a no-op.
func (n *NotificationService) Send(title, message string) error {
	if n == nil {
		return nil
	}
	if !n.config.Enabled {
		n.logger.Debug("Notifications disabled, skipping",
			zap.String("title", title),
			zap.String("message", message))
		return nil
	}

	var err error
	switch n.config.Method {
	case "osascript":
		script := fmt.Sprintf(`display notification %q with title %q`, message, title)
		err = n.run("osascript", "-e", script)
	case "notify-send":
		err = n.run("notify-send", title, message)
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return nil
	}

	if err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("method", n.config.Method),
			zap.Error(err))
		return err
	}

	n.logger.Debug("Notification sent",
		zap.String("title", title),
		zap.String("message", message))
	return nil
}

// NotifyVideoFailed sends a notification when a video of the run fails
func (n *NotificationService) NotifyVideoFailed(index, total int, title string) {
	n.Send("Download Failed", fmt.Sprintf("[%d/%d] %s", index, total, truncateString(title, 40)))
}

// NotifyRunFinished sends a notification when every video has been processed
func (n *NotificationService) NotifyRunFinished(channel string, completed, failed int) {
	n.Send("Channel Download Finished",
		fmt.Sprintf("%s: %d downloaded, %d failed", truncateString(channel, 30), completed, failed))
}

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
