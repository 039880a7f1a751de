package notify

import (
	"context"

	"github.com/renato0307/studycal/internal/adapters/sound"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/ports"
)

// ChimeNotifier plays a sound after the wrapped notifier delivers a reminder
type ChimeNotifier struct {
	next   ports.Notifier
	player ports.SoundPlayer
}

var _ ports.Notifier = (*ChimeNotifier)(nil)

// WithChime wraps next so every delivered reminder is followed by a cue
func WithChime(next ports.Notifier, player ports.SoundPlayer) *ChimeNotifier {
	return &ChimeNotifier{next: next, player: player}
}

// Notify delivers the payload, then plays the daily or session cue. A sound
// failure never fails the delivery.
func (n *ChimeNotifier) Notify(ctx context.Context, payload ports.NotificationPayload) error {
	if err := n.next.Notify(ctx, payload); err != nil {
		return err
	}

	cue := sound.CueReminder
	if payload.ScheduleID == "" {
		cue = sound.CueDaily
	}
	if err := n.player.PlayCue(cue); err != nil {
		logging.Logger.Warn("Failed to play reminder sound", "cue", cue, "error", err)
	}
	return nil
}
