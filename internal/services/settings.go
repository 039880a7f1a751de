package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/ports"
)

// Setting keys accepted by SettingsService.Set
const (
	SettingDefaultNotificationTime = "default_notification_time"
	SettingDefaultStudyDuration    = "default_study_duration"
	SettingTheme                   = "theme"
)

// SettingKeys lists every key accepted by Set
var SettingKeys = []string{SettingDefaultNotificationTime, SettingDefaultStudyDuration, SettingTheme}

// SettingsService reads and changes the global study settings
type SettingsService struct {
	repo ports.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo ports.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the current settings
func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.repo.Get(ctx)
}

// Update applies a partial change
func (s *SettingsService) Update(ctx context.Context, update domain.SettingsUpdate) (domain.Settings, error) {
	settings, err := s.repo.Update(ctx, update)
	if err != nil {
		logging.Logger.Error("Failed to update settings", "error", err)
		return domain.Settings{}, fmt.Errorf("failed to update settings: %w", err)
	}
	return settings, nil
}

// Set changes one setting from its textual form
func (s *SettingsService) Set(ctx context.Context, key, value string) (domain.Settings, error) {
	logging.Logger.Debug("Setting value", "key", key, "value", value)

	update, err := parseSetting(key, value)
	if err != nil {
		return domain.Settings{}, err
	}
	return s.Update(ctx, update)
}

// Reset restores the defaults
func (s *SettingsService) Reset(ctx context.Context) (domain.Settings, error) {
	settings, err := s.repo.Reset(ctx)
	if err != nil {
		logging.Logger.Error("Failed to reset settings", "error", err)
		return domain.Settings{}, err
	}
	return settings, nil
}

func parseSetting(key, value string) (domain.SettingsUpdate, error) {
	switch key {
	case SettingDefaultNotificationTime:
		n, err := strconv.Atoi(value)
		if err != nil {
			return domain.SettingsUpdate{}, fmt.Errorf("%w: %s must be a number of minutes", domain.ErrValidation, key)
		}
		minutes := domain.NotificationTime(n)
		return domain.SettingsUpdate{DefaultNotificationTime: &minutes}, nil
	case SettingDefaultStudyDuration:
		n, err := strconv.Atoi(value)
		if err != nil {
			return domain.SettingsUpdate{}, fmt.Errorf("%w: %s must be a number of minutes", domain.ErrValidation, key)
		}
		return domain.SettingsUpdate{DefaultStudyDuration: &n}, nil
	case SettingTheme:
		theme := domain.Theme(value)
		return domain.SettingsUpdate{Theme: &theme}, nil
	default:
		return domain.SettingsUpdate{}, fmt.Errorf("%w: unknown setting %q (valid: %v)", domain.ErrValidation, key, SettingKeys)
	}
}
