package ports

import (
	"context"
	"errors"
	"time"
)

// ErrFireTimePassed is returned by backends asked to schedule a one-shot
// reminder whose time is not in the future
var ErrFireTimePassed = errors.New("fire time is not in the future")

// NotificationPayload is the content delivered when a reminder fires
type NotificationPayload struct {
	Body       string
	ScheduleID string
	Title      string
}

// NotificationBackend schedules reminders outside the core
type NotificationBackend interface {
	// ScheduleOneShot registers a reminder firing once at fireAt and returns its
	// handle. A fireAt that is not in the future fails with ErrFireTimePassed.
	ScheduleOneShot(ctx context.Context, fireAt time.Time, payload NotificationPayload) (string, error)

	// ScheduleRecurring registers a reminder firing every day at hour:minute local time
	ScheduleRecurring(ctx context.Context, hour, minute int, payload NotificationPayload) (string, error)

	// Cancel removes a reminder. Unknown handles are ignored.
	Cancel(ctx context.Context, handle string) error

	// CancelAll removes every reminder owned by the backend
	CancelAll(ctx context.Context) error
}

// Notifier delivers a fired reminder to the user
type Notifier interface {
	Notify(ctx context.Context, payload NotificationPayload) error
}
