//go:build windows

package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const toastScript = `[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$text = $template.GetElementsByTagName('text')
$text.Item(0).AppendChild($template.CreateTextNode('%s')) | Out-Null
$text.Item(1).AppendChild($template.CreateTextNode('%s')) | Out-Null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('studycal').Show($toast)`

// showNotification raises a toast through PowerShell
func showNotification(ctx context.Context, title, body string) error {
	escape := strings.NewReplacer("'", "''").Replace
	script := fmt.Sprintf(toastScript, escape(title), escape(body))
	return exec.CommandContext(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script).Run()
}
