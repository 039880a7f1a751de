package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/services"
)

// SettingsCmd manages study settings
type SettingsCmd struct {
	Reset SettingsResetCmd `cmd:"reset" help:"Restore default settings"`
	Set   SettingsSetCmd   `cmd:"set" help:"Change one setting"`
	View  SettingsViewCmd  `cmd:"view" help:"Show current settings" default:"1"`
}

// SettingsViewCmd shows settings
type SettingsViewCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the view command
func (s *SettingsViewCmd) Run(cli *CLI) error {
	settings, err := cli.Container.SettingsService.Get(context.Background())
	if err != nil {
		return err
	}
	if s.Format == "json" {
		return printJSON(settings)
	}
	printSettings(settings)
	return nil
}

// SettingsSetCmd changes one setting
type SettingsSetCmd struct {
	Key   string `arg:"" help:"default_notification_time, default_study_duration or theme"`
	Value string `arg:"" help:"New value"`
}

// Run executes the set command
func (s *SettingsSetCmd) Run(cli *CLI) error {
	settings, err := cli.Container.SettingsService.Set(context.Background(), s.Key, s.Value)
	if err != nil {
		return err
	}
	fmt.Printf("Setting '%s' updated\n\n", s.Key)
	printSettings(settings)
	return nil
}

// SettingsResetCmd restores defaults
type SettingsResetCmd struct {
	Force bool `help:"Reset without confirmation" short:"f"`
}

// Run executes the reset command
func (s *SettingsResetCmd) Run(cli *CLI) error {
	if !s.Force {
		ok, err := confirm("Restore default settings?", "Schedules, records and prompts are kept.")
		if err != nil || !ok {
			return err
		}
	}

	settings, err := cli.Container.SettingsService.Reset(context.Background())
	if err != nil {
		return err
	}
	fmt.Println("Settings restored to defaults")
	fmt.Println()
	printSettings(settings)
	return nil
}

func printSettings(settings domain.Settings) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE")
	fmt.Fprintf(w, "%s\t%d minutes\n", services.SettingDefaultNotificationTime, settings.DefaultNotificationTime)
	fmt.Fprintf(w, "%s\t%d minutes\n", services.SettingDefaultStudyDuration, settings.DefaultStudyDuration)
	fmt.Fprintf(w, "%s\t%s\n", services.SettingTheme, settings.Theme)
	w.Flush()
}
