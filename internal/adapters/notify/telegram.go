package notify

import (
	"context"
	"fmt"
	"html"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/ports"
)

// MessageSender is the part of the Telegram client used to deliver reminders
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramNotifier sends reminders to a Telegram chat
type TelegramNotifier struct {
	chatID int64
	sender MessageSender
}

var _ ports.Notifier = (*TelegramNotifier)(nil)

// NewTelegramNotifier creates a bot client for token and delivers to chatID
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: telegram token is empty", domain.ErrValidation)
	}
	if chatID == 0 {
		return nil, fmt.Errorf("%w: telegram chat id is empty", domain.ErrValidation)
	}

	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return NewTelegramNotifierWithSender(b, chatID), nil
}

// NewTelegramNotifierWithSender delivers through an existing sender
func NewTelegramNotifierWithSender(sender MessageSender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{chatID: chatID, sender: sender}
}

// Notify sends the payload as one message
func (n *TelegramNotifier) Notify(ctx context.Context, payload ports.NotificationPayload) error {
	_, err := n.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      fmt.Sprintf("<b>%s</b>\n%s", html.EscapeString(payload.Title), html.EscapeString(payload.Body)),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to send telegram message: %v", domain.ErrBackend, err)
	}
	return nil
}
