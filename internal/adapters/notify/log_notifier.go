package notify

import (
	"context"

	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/ports"
)

// LogNotifier writes fired reminders to the log only
type LogNotifier struct{}

var _ ports.Notifier = LogNotifier{}

// Notify logs the payload
func (LogNotifier) Notify(ctx context.Context, payload ports.NotificationPayload) error {
	logging.Logger.Info("Reminder", "title", payload.Title, "body", payload.Body, "schedule_id", payload.ScheduleID)
	return nil
}
