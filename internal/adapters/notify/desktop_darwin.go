//go:build darwin

package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// showNotification uses osascript, which ships with macOS
func showNotification(ctx context.Context, title, body string) error {
	script := fmt.Sprintf("display notification %s with title %s sound name %s",
		strconv.Quote(body), strconv.Quote(title), strconv.Quote("Glass"))
	return exec.CommandContext(ctx, "osascript", "-e", script).Run()
}
