package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/renato0307/studycal/internal/config"
	"github.com/renato0307/studycal/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d" env:"STUDYCAL_DEBUG"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)" env:"STUDYCAL_DEBUG_FILE"`
	Ephemeral   bool             `help:"Keep all data in memory for this run only"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000" env:"STUDYCAL_MAX_LOG_FILES"`

	Config    ConfigCmd    `cmd:"config" help:"Show config file location and options"`
	Info      VersionCmd   `cmd:"version" help:"Show version information"`
	Prompts   PromptsCmd   `cmd:"prompts" help:"Manage saved AI prompts"`
	Records   RecordsCmd   `cmd:"records" help:"Log and list study sessions"`
	Remind    RemindCmd    `cmd:"remind" help:"Run the reminder daemon until interrupted"`
	Schedules SchedulesCmd `cmd:"schedules" help:"Plan study sessions"`
	Settings  SettingsCmd  `cmd:"settings" help:"View or change study settings"`
	Stats     StatsCmd     `cmd:"stats" help:"Show study statistics"`

	// Internal fields (not flags)
	Container *Container     `kong:"-"`
	config    *config.Config `kong:"-"`
}

// SetConfig sets the loaded config on the CLI struct
func (c *CLI) SetConfig(cfg *config.Config) {
	c.config = cfg
}

// AfterApply initializes logging after CLI parsing and applies config
func (c *CLI) AfterApply() error {
	if c.config == nil {
		c.config = &config.Config{}
	}

	// Precedence: CLI flags > env vars > config.json > defaults.
	// A flag still at its default yields to env and then to config.json.
	if c.MaxLogFiles == config.DefaultMaxLogFiles {
		if _, hasEnv := os.LookupEnv("STUDYCAL_MAX_LOG_FILES"); !hasEnv {
			c.MaxLogFiles = c.config.LogFileLimit()
		}
	}
	if !c.Debug {
		if _, hasEnv := os.LookupEnv("STUDYCAL_DEBUG"); !hasEnv {
			c.Debug = c.config.DebugEnabled()
		}
	}

	if _, err := logging.Initialize(logging.Options{
		Debug:    c.Debug,
		File:     c.DebugFile,
		MaxFiles: c.MaxLogFiles,
	}); err != nil {
		return err
	}

	// Create container AFTER logging is initialized so gorm logs go to the file
	container, err := NewContainer(c.config, c.Ephemeral)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
