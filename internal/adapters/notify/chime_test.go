package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/studycal/internal/adapters/sound"
	"github.com/renato0307/studycal/internal/ports"
	"github.com/renato0307/studycal/internal/ports/mocks"
)

func TestChimeNotifier(t *testing.T) {
	tests := []struct {
		name      string
		payload   ports.NotificationPayload
		notifyErr error
		playErr   error
		wantCue   string
		wantErr   bool
	}{
		{
			name:    "session reminder plays reminder cue",
			payload: ports.NotificationPayload{ScheduleID: "s1", Title: "Study reminder"},
			wantCue: sound.CueReminder,
		},
		{
			name:    "daily reminder plays daily cue",
			payload: ports.NotificationPayload{Title: "Time to study"},
			wantCue: sound.CueDaily,
		},
		{
			name:    "sound failure is ignored",
			payload: ports.NotificationPayload{ScheduleID: "s1"},
			playErr: errors.New("no audio device"),
			wantCue: sound.CueReminder,
		},
		{
			name:      "delivery failure skips the sound",
			payload:   ports.NotificationPayload{ScheduleID: "s1"},
			notifyErr: errors.New("offline"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			next := mocks.NewMockNotifier(t)
			player := mocks.NewMockSoundPlayer(t)

			next.EXPECT().Notify(ctx, tt.payload).Return(tt.notifyErr)
			if tt.wantCue != "" {
				player.EXPECT().PlayCue(tt.wantCue).Return(tt.playErr)
			}

			err := WithChime(next, player).Notify(ctx, tt.payload)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
