package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/renato0307/studycal/internal/adapters/notify"
	"github.com/renato0307/studycal/internal/adapters/sound"
	"github.com/renato0307/studycal/internal/adapters/storage"
	"github.com/renato0307/studycal/internal/config"
	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/paths"
	"github.com/renato0307/studycal/internal/ports"
	"github.com/renato0307/studycal/internal/services"
)

// RemindCmd runs the reminder daemon
type RemindCmd struct {
	Daily    string        `help:"Daily reminder time (HH:MM); config daily_reminder when empty"`
	Notifier string        `help:"Notifier: desktop, log or telegram; config notifier when empty"`
	Refresh  time.Duration `help:"How often schedules are re-read to pick up changes" default:"1m"`
	Sound    bool          `help:"Play a sound when a reminder fires"`
}

// Run executes the remind command
func (r *RemindCmd) Run(cli *CLI) error {
	c := cli.Container

	lock, err := storage.AcquireLock(paths.GetLockPath())
	if err != nil {
		if errors.Is(err, storage.ErrLocked) {
			return fmt.Errorf("another reminder daemon is already running")
		}
		return err
	}
	defer lock.Release()

	notifier, err := r.newNotifier(c.Config)
	if err != nil {
		return err
	}
	if r.Sound {
		notifier = notify.WithChime(notifier, sound.NewPlayer())
	}
	backend := notify.NewTimerBackend(notifier, c.Clock)
	reminders := services.NewNotificationService(c.Repositories.Schedules, backend, c.Clock)
	c.WithReminders(reminders)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.Coordinator.Load(ctx); err != nil {
		return err
	}
	if err := r.setupDaily(ctx, c.Config, reminders); err != nil {
		return err
	}
	if err := reminders.SetupAllNotifications(ctx); err != nil {
		logging.Logger.Warn("Some reminders could not be registered", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	day := domain.FormatDate(c.Clock.Now())

	logging.Logger.Info("Reminder daemon started", "reminders", reminders.Count(), "refresh", r.Refresh)
	fmt.Printf("Watching schedules, %d reminders registered. Press Ctrl+C to stop.\n", reminders.Count())

	ticker := time.NewTicker(max(r.Refresh, time.Second))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Logger.Info("Reminder daemon stopping")
			// ctx is already cancelled; clearing only touches in-process timers
			if err := reminders.ClearAllNotifications(context.Background()); err != nil {
				logging.Logger.Warn("Failed to clear reminders", "error", err)
			}
			fmt.Println("Stopped")
			return nil
		case <-ticker.C:
			// edits made by other commands since the last tick
			if err := c.Coordinator.Refresh(ctx); err != nil {
				logging.Logger.Warn("Failed to sync changed schedules", "error", err)
			}
			// the reminder window moves with the date
			if today := domain.FormatDate(c.Clock.Now()); today != day {
				if err := reminders.SetupAllNotifications(ctx); err != nil {
					logging.Logger.Warn("Failed to refresh reminders", "error", err)
				}
				day = today
			}
			logging.Logger.Debug("Reminders refreshed", "count", reminders.Count(), "pending", backend.Pending())
		}
	}
}

func (r *RemindCmd) newNotifier(cfg *config.Config) (ports.Notifier, error) {
	kind := r.Notifier
	if kind == "" {
		kind = cfg.NotifierKind()
	}
	token, chatID := cfg.TelegramCredentials()
	return notify.New(notify.Options{
		Kind:           kind,
		TelegramChatID: chatID,
		TelegramToken:  token,
	})
}

func (r *RemindCmd) setupDaily(ctx context.Context, cfg *config.Config, reminders *services.NotificationService) error {
	daily := r.Daily
	if daily == "" && cfg.DailyReminder != nil {
		daily = *cfg.DailyReminder
	}
	if daily == "" {
		return nil
	}

	hour, minute, err := config.ParseDailyReminder(daily)
	if err != nil {
		return err
	}
	if err := reminders.SetupDailyReminder(ctx, hour, minute); err != nil {
		return fmt.Errorf("failed to set up daily reminder: %w", err)
	}
	fmt.Printf("Daily reminder at %02d:%02d\n", hour, minute)
	return nil
}
