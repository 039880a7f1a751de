package storage

import (
	"context"
	"fmt"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/ports"
)

// SettingsRepository stores the single global settings record
type SettingsRepository struct {
	store *EntityStore
}

var _ ports.SettingsRepository = (*SettingsRepository)(nil)

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(store *EntityStore) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// Get returns the persisted settings decoded over the defaults, so fields
// missing from older data keep their default value
func (r *SettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	return r.load(ctx), nil
}

// Update merges a partial change and persists the result
func (r *SettingsRepository) Update(ctx context.Context, update domain.SettingsUpdate) (domain.Settings, error) {
	var result domain.Settings
	err := r.store.exclusive(func() error {
		next, err := r.loadStrict(ctx)
		if err != nil {
			return err
		}
		update.Apply(&next)
		if err := next.Validate(); err != nil {
			return err
		}
		if err := r.store.writeValue(ctx, KeySettings, next); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		result = next
		return nil
	})
	if err != nil {
		return domain.Settings{}, err
	}

	logging.Logger.Info("Settings updated", "theme", result.Theme,
		"default_notification_time", result.DefaultNotificationTime,
		"default_study_duration", result.DefaultStudyDuration)
	return result, nil
}

// Reset removes the persisted settings and returns the defaults
func (r *SettingsRepository) Reset(ctx context.Context) (domain.Settings, error) {
	err := r.store.exclusive(func() error {
		return r.store.removeValue(ctx, KeySettings)
	})
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to reset settings: %w", err)
	}

	logging.Logger.Info("Settings reset to defaults")
	return domain.DefaultSettings(), nil
}

// loadStrict is load for the update path: a medium or decode failure is
// returned instead of falling back to defaults
func (r *SettingsRepository) loadStrict(ctx context.Context) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	found, err := r.store.loadValue(ctx, KeySettings, &settings)
	if err != nil {
		return domain.Settings{}, err
	}
	if !found {
		return domain.DefaultSettings(), nil
	}
	if err := settings.Validate(); err != nil {
		logging.Logger.Warn("Persisted settings are invalid, using defaults", "error", err)
		return domain.DefaultSettings(), nil
	}
	return settings, nil
}

func (r *SettingsRepository) load(ctx context.Context) domain.Settings {
	settings := domain.DefaultSettings()
	if !r.store.readValue(ctx, KeySettings, &settings) {
		return domain.DefaultSettings()
	}
	if err := settings.Validate(); err != nil {
		logging.Logger.Warn("Persisted settings are invalid, using defaults", "error", err)
		return domain.DefaultSettings()
	}
	return settings
}
