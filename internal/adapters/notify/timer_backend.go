package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/ports"
)

const deliveryTimeout = 30 * time.Second

// TimerBackend schedules reminders as in-process timers and hands fired
// payloads to a Notifier. Reminders live only as long as the process.
type TimerBackend struct {
	clock    ports.Clock
	mu       sync.Mutex
	notifier ports.Notifier
	timers   map[string]*reminder
}

type reminder struct {
	payload   ports.NotificationPayload
	recurring bool
	timer     *time.Timer
}

var _ ports.NotificationBackend = (*TimerBackend)(nil)

// NewTimerBackend creates a backend delivering to notifier
func NewTimerBackend(notifier ports.Notifier, clock ports.Clock) *TimerBackend {
	if clock == nil {
		clock = ports.SystemClock()
	}
	return &TimerBackend{
		clock:    clock,
		notifier: notifier,
		timers:   make(map[string]*reminder),
	}
}

// ScheduleOneShot fires payload once at fireAt
func (b *TimerBackend) ScheduleOneShot(ctx context.Context, fireAt time.Time, payload ports.NotificationPayload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrBackend, err)
	}

	delay := fireAt.Sub(b.clock.Now())
	if delay <= 0 {
		return "", fmt.Errorf("%w: %w: %s", domain.ErrBackend, ports.ErrFireTimePassed, fireAt.Format(time.RFC3339))
	}

	handle := uuid.NewString()
	b.mu.Lock()
	defer b.mu.Unlock()

	r := &reminder{payload: payload}
	r.timer = time.AfterFunc(delay, func() { b.fire(handle) })
	b.timers[handle] = r

	logging.Logger.Debug("One-shot reminder armed", "handle", handle, "fire_at", fireAt, "schedule_id", payload.ScheduleID)
	return handle, nil
}

// ScheduleRecurring fires payload every day at hour:minute in the clock's zone
func (b *TimerBackend) ScheduleRecurring(ctx context.Context, hour, minute int, payload ports.NotificationPayload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrBackend, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: invalid daily time %02d:%02d", domain.ErrBackend, hour, minute)
	}

	handle := uuid.NewString()
	b.mu.Lock()
	defer b.mu.Unlock()

	r := &reminder{payload: payload, recurring: true}
	next := nextDaily(b.clock.Now(), hour, minute)
	r.timer = time.AfterFunc(next.Sub(b.clock.Now()), func() { b.fireDaily(handle, hour, minute) })
	b.timers[handle] = r

	logging.Logger.Debug("Daily reminder armed", "handle", handle, "next", next)
	return handle, nil
}

// Cancel stops the reminder with handle. Unknown handles are ignored.
func (b *TimerBackend) Cancel(ctx context.Context, handle string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r, ok := b.timers[handle]; ok {
		r.timer.Stop()
		delete(b.timers, handle)
	}
	return nil
}

// CancelAll stops every reminder
func (b *TimerBackend) CancelAll(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for handle, r := range b.timers {
		r.timer.Stop()
		delete(b.timers, handle)
	}
	return nil
}

// Pending returns the number of armed reminders
func (b *TimerBackend) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.timers)
}

func (b *TimerBackend) fire(handle string) {
	b.mu.Lock()
	r, ok := b.timers[handle]
	delete(b.timers, handle)
	b.mu.Unlock()

	if ok {
		b.deliver(handle, r.payload)
	}
}

func (b *TimerBackend) fireDaily(handle string, hour, minute int) {
	b.mu.Lock()
	r, ok := b.timers[handle]
	if ok {
		// Re-arm from a minute past the slot so a fast clock never fires twice
		now := b.clock.Now()
		next := nextDaily(now.Add(time.Minute), hour, minute)
		r.timer = time.AfterFunc(next.Sub(now), func() { b.fireDaily(handle, hour, minute) })
	}
	b.mu.Unlock()

	if ok {
		b.deliver(handle, r.payload)
	}
}

func (b *TimerBackend) deliver(handle string, payload ports.NotificationPayload) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	if err := b.notifier.Notify(ctx, payload); err != nil {
		logging.Logger.Error("Failed to deliver reminder", "handle", handle, "schedule_id", payload.ScheduleID, "error", err)
		return
	}
	logging.Logger.Info("Reminder delivered", "handle", handle, "schedule_id", payload.ScheduleID)
}

// nextDaily returns the first hour:minute strictly after now
func nextDaily(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
