package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/ports"
)

type fakeSender struct {
	err  error
	sent []*bot.SendMessageParams
}

func (f *fakeSender) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.sent = append(f.sent, params)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Message{ID: len(f.sent)}, nil
}

func TestTelegramNotifier_SendsEscapedHTML(t *testing.T) {
	sender := &fakeSender{}
	n := NewTelegramNotifierWithSender(sender, 42)

	err := n.Notify(context.Background(), ports.NotificationPayload{Title: "Study reminder", Body: "<Generics> starts in 5 minutes"})

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(42), sender.sent[0].ChatID)
	assert.Equal(t, models.ParseModeHTML, sender.sent[0].ParseMode)
	assert.Equal(t, "<b>Study reminder</b>\n&lt;Generics&gt; starts in 5 minutes", sender.sent[0].Text)
}

func TestTelegramNotifier_WrapsSendFailure(t *testing.T) {
	n := NewTelegramNotifierWithSender(&fakeSender{err: errors.New("forbidden")}, 42)

	err := n.Notify(context.Background(), ports.NotificationPayload{Title: "x"})

	assert.ErrorIs(t, err, domain.ErrBackend)
}

func TestNewTelegramNotifier_RequiresCredentials(t *testing.T) {
	_, err := NewTelegramNotifier("", 1)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewTelegramNotifier("token", 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDesktopNotifier_FallsBackToBell(t *testing.T) {
	var out bytes.Buffer
	n := &DesktopNotifier{
		bell: &out,
		show: func(ctx context.Context, title, body string) error { return errors.New("no display") },
	}

	err := n.Notify(context.Background(), ports.NotificationPayload{Title: "Study reminder", Body: "soon"})

	require.NoError(t, err)
	assert.Equal(t, "\aStudy reminder: soon\n", out.String())
}

func TestDesktopNotifier_UsesPlatformTool(t *testing.T) {
	var out bytes.Buffer
	var shown []string
	n := &DesktopNotifier{
		bell: &out,
		show: func(ctx context.Context, title, body string) error {
			shown = append(shown, title, body)
			return nil
		},
	}

	require.NoError(t, n.Notify(context.Background(), ports.NotificationPayload{Title: "t", Body: "b"}))
	assert.Equal(t, []string{"t", "b"}, shown)
	assert.Empty(t, out.String())
}

func TestNew_SelectsNotifier(t *testing.T) {
	n, err := New(Options{Kind: KindLog})
	require.NoError(t, err)
	assert.IsType(t, LogNotifier{}, n)

	n, err = New(Options{})
	require.NoError(t, err)
	assert.IsType(t, &DesktopNotifier{}, n)

	_, err = New(Options{Kind: "pager"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
