package notify

import (
	"fmt"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/ports"
)

// Notifier kinds accepted by New
const (
	KindDesktop  = "desktop"
	KindLog      = "log"
	KindTelegram = "telegram"
)

// Options selects and configures a notifier
type Options struct {
	Kind           string
	TelegramChatID int64
	TelegramToken  string
}

// New builds the notifier named by opts.Kind. An empty kind means desktop.
func New(opts Options) (ports.Notifier, error) {
	switch opts.Kind {
	case "", KindDesktop:
		return NewDesktopNotifier(), nil
	case KindLog:
		return LogNotifier{}, nil
	case KindTelegram:
		return NewTelegramNotifier(opts.TelegramToken, opts.TelegramChatID)
	default:
		return nil, fmt.Errorf("%w: unknown notifier %q", domain.ErrValidation, opts.Kind)
	}
}
