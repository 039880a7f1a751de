//go:build linux

package notify

import (
	"context"
	"os/exec"
)

// showNotification uses notify-send from libnotify
func showNotification(ctx context.Context, title, body string) error {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		return err
	}
	return exec.CommandContext(ctx, path, "--app-name=studycal", "--urgency=normal", title, body).Run()
}
