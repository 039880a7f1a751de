package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/ports"
)

// DesktopNotifier shows reminders as native desktop notifications. When no
// notification tool is available it rings the terminal bell instead.
type DesktopNotifier struct {
	bell io.Writer
	show func(ctx context.Context, title, body string) error
}

var _ ports.Notifier = (*DesktopNotifier)(nil)

// NewDesktopNotifier creates a notifier for the current platform
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{bell: os.Stdout, show: showNotification}
}

// Notify displays the payload
func (n *DesktopNotifier) Notify(ctx context.Context, payload ports.NotificationPayload) error {
	err := n.show(ctx, payload.Title, payload.Body)
	if err == nil {
		return nil
	}

	logging.Logger.Warn("Desktop notification failed, ringing bell", "error", err)
	if _, bellErr := fmt.Fprintf(n.bell, "\a%s: %s\n", payload.Title, payload.Body); bellErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackend, err)
	}
	return nil
}
