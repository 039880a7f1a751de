package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/renato0307/studycal/internal/paths"
)

// DefaultMaxLogFiles is the log rotation limit when nothing else is set
const DefaultMaxLogFiles = 1000

// Notifier kinds accepted in config.json
const (
	NotifierDesktop  = "desktop"
	NotifierLog      = "log"
	NotifierTelegram = "telegram"
)

// Config represents the structure of $STUDYCAL_HOME/config.json.
// Nil pointers mean the value was not set.
type Config struct {
	DailyReminder  *string `json:"daily_reminder,omitempty"`
	DatabaseURL    *string `json:"database_url,omitempty"`
	Debug          *bool   `json:"debug,omitempty"`
	MaxLogFiles    *int    `json:"max_log_files,omitempty"`
	Notifier       *string `json:"notifier,omitempty"`
	TelegramChatID *int64  `json:"telegram_chat_id,omitempty"`
	TelegramToken  *string `json:"telegram_token,omitempty"`
}

// Load reads config.json and applies STUDYCAL_* environment overrides.
// A missing file is not an error.
func Load() (*Config, error) {
	cfg, err := LoadFile(paths.GetConfigPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a config file without environment overrides
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config.json: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to path
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks values that have a closed set of options
func (c *Config) Validate() error {
	if c.Notifier != nil {
		switch *c.Notifier {
		case NotifierDesktop, NotifierLog, NotifierTelegram:
		default:
			return fmt.Errorf("unknown notifier '%s'", *c.Notifier)
		}
	}
	if c.DailyReminder != nil {
		if _, _, err := ParseDailyReminder(*c.DailyReminder); err != nil {
			return err
		}
	}
	if c.MaxLogFiles != nil && *c.MaxLogFiles < 0 {
		return fmt.Errorf("max_log_files must not be negative")
	}
	return nil
}

// applyEnv overrides fields from STUDYCAL_* variables
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("STUDYCAL_DATABASE_URL"); ok && v != "" {
		c.DatabaseURL = &v
	}
	if v, ok := lookup("STUDYCAL_NOTIFIER"); ok && v != "" {
		c.Notifier = &v
	}
	if v, ok := lookup("STUDYCAL_DAILY_REMINDER"); ok && v != "" {
		c.DailyReminder = &v
	}
	if v, ok := lookup("STUDYCAL_TELEGRAM_TOKEN"); ok && v != "" {
		c.TelegramToken = &v
	}
	if v, ok := lookup("STUDYCAL_TELEGRAM_CHAT_ID"); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid STUDYCAL_TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = &id
	}
	return c.Validate()
}

// DebugEnabled returns the configured debug flag
func (c *Config) DebugEnabled() bool {
	return c.Debug != nil && *c.Debug
}

// LogFileLimit returns max_log_files or the default
func (c *Config) LogFileLimit() int {
	if c.MaxLogFiles != nil {
		return *c.MaxLogFiles
	}
	return DefaultMaxLogFiles
}

// Database returns database_url or ""
func (c *Config) Database() string {
	if c.DatabaseURL != nil {
		return *c.DatabaseURL
	}
	return ""
}

// NotifierKind returns the configured notifier, desktop by default
func (c *Config) NotifierKind() string {
	if c.Notifier != nil {
		return *c.Notifier
	}
	return NotifierDesktop
}

// TelegramCredentials returns the bot token and chat id, zero values when unset
func (c *Config) TelegramCredentials() (string, int64) {
	var token string
	var chatID int64
	if c.TelegramToken != nil {
		token = *c.TelegramToken
	}
	if c.TelegramChatID != nil {
		chatID = *c.TelegramChatID
	}
	return token, chatID
}

// ParseDailyReminder splits an HH:MM string
func ParseDailyReminder(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid daily reminder '%s', expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid daily reminder hour in '%s'", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid daily reminder minute in '%s'", s)
	}
	return hour, minute, nil
}
