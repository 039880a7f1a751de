package cmd

import (
	"fmt"

	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/ui"
)

// confirm asks before a destructive command and reports a cancellation
func confirm(title, description string) (bool, error) {
	ok, err := ui.Confirm(title, description)
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		logging.Logger.Info("User cancelled", "action", title)
		fmt.Println("Cancelled")
	}
	return ok, nil
}
