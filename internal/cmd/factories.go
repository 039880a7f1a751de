package cmd

import (
	"github.com/renato0307/studycal/internal/adapters/storage"
	"github.com/renato0307/studycal/internal/application"
	"github.com/renato0307/studycal/internal/config"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/paths"
	"github.com/renato0307/studycal/internal/ports"
	"github.com/renato0307/studycal/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	Clock  ports.Clock
	Config *config.Config

	// Repositories
	Repositories *storage.Repositories

	// Services
	Coordinator       *application.Coordinator
	PromptService     *services.PromptService
	SettingsService   *services.SettingsService
	StatisticsService *services.StatisticsService
	StudyService      *services.StudyService

	// Internal - for cleanup only
	kv ports.ClosableKVStore
}

// NewContainer creates a new Container with all dependencies wired. The
// coordinator runs without reminder sync until WithReminders is called; only
// the remind daemon owns a reminder backend.
func NewContainer(cfg *config.Config, ephemeral bool) (*Container, error) {
	kv, err := openKVStore(cfg, ephemeral)
	if err != nil {
		return nil, err
	}
	return newContainer(cfg, kv, ports.SystemClock()), nil
}

func newContainer(cfg *config.Config, kv ports.ClosableKVStore, clock ports.Clock) *Container {
	repos := storage.NewRepositories(kv, clock)

	statisticsService := services.NewStatisticsService(repos.Records, repos.Prompts, repos.Schedules, repos.Settings, repos.Statistics, clock)
	studyService := services.NewStudyService(repos.Schedules, repos.Records, repos, clock)

	c := &Container{
		Clock:             clock,
		Config:            cfg,
		PromptService:     services.NewPromptService(repos.Prompts),
		Repositories:      repos,
		SettingsService:   services.NewSettingsService(repos.Settings),
		StatisticsService: statisticsService,
		StudyService:      studyService,
		kv:                kv,
	}
	c.Coordinator = c.newCoordinator(nil)
	return c
}

// WithReminders replaces the coordinator with one that keeps reminders in
// step with every schedule change it applies or observes
func (c *Container) WithReminders(reminders application.ReminderSync) {
	c.Coordinator = c.newCoordinator(reminders)
}

func (c *Container) newCoordinator(reminders application.ReminderSync) *application.Coordinator {
	return application.NewCoordinator(application.Dependencies{
		Clock:      c.Clock,
		Prompts:    c.Repositories.Prompts,
		Records:    c.Repositories.Records,
		Reminders:  reminders,
		Schedules:  c.Repositories.Schedules,
		Settings:   c.Repositories.Settings,
		Statistics: c.StatisticsService,
		Study:      c.StudyService,
	})
}

func openKVStore(cfg *config.Config, ephemeral bool) (ports.ClosableKVStore, error) {
	if ephemeral {
		logging.Logger.Info("Using in-memory store")
		return storage.NewMemoryKVStore(), nil
	}
	kv, err := storage.OpenKVStore(cfg.Database(), paths.GetDBPath())
	if err != nil {
		return nil, err
	}
	return kv, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}
