// Package notify holds NotificationSink implementations. Real deployments
// plug in the surrounding system's push/SMS/email delivery; the log sink is
// the development default.
package notify

import (
	"context"
	"log/slog"

	"safecircle/internal/breach"
	"safecircle/internal/directory"
)

// LogSink writes notifications to the log instead of delivering them.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Send(ctx context.Context, recipient directory.UserRef, message string, event breach.Event) error {
	s.logger.InfoContext(ctx, "notification",
		"recipient_id", recipient.ID,
		"message", message,
		"event_id", event.ID,
		"direction", event.Direction,
	)
	return nil
}
