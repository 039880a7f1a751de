//go:build !darwin && !linux && !windows

package notify

import (
	"context"
	"errors"
)

// showNotification is unsupported here, so the bell fallback is used
func showNotification(ctx context.Context, title, body string) error {
	return errors.New("desktop notifications are not supported on this platform")
}
