package ports

import (
	"context"

	"github.com/renato0307/studycal/internal/domain"
)

// ScheduleExpander materializes repeating schedules into occurrences
type ScheduleExpander interface {
	ExpandRepeatingSchedules(ctx context.Context, start, end string) ([]domain.Schedule, error)
}

// ScheduleReader reads schedules
type ScheduleReader interface {
	ScheduleExpander
	FindAll(ctx context.Context) ([]domain.Schedule, error)
	FindByCategory(ctx context.Context, category domain.Category) ([]domain.Schedule, error)
	FindByDate(ctx context.Context, date string) ([]domain.Schedule, error)
	FindByDateRange(ctx context.Context, start, end string) ([]domain.Schedule, error)
	FindByID(ctx context.Context, id string) (*domain.Schedule, error)
	FindUpcoming(ctx context.Context, limit int) ([]domain.Schedule, error)
}

// ScheduleWriter creates, changes and removes schedules
type ScheduleWriter interface {
	Create(ctx context.Context, schedule domain.Schedule) (*domain.Schedule, error)
	Delete(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id string) (*domain.Schedule, error)
	Update(ctx context.Context, id string, update domain.ScheduleUpdate) (*domain.Schedule, error)
}

// ScheduleRepository is the composite interface
type ScheduleRepository interface {
	ScheduleReader
	ScheduleWriter
}

// RecordReader reads study records
type RecordReader interface {
	FindAll(ctx context.Context) ([]domain.Record, error)
	FindByDateRange(ctx context.Context, start, end string) ([]domain.Record, error)
	FindByID(ctx context.Context, id string) (*domain.Record, error)
	FindByScheduleID(ctx context.Context, scheduleID string) ([]domain.Record, error)
	FindLatest(ctx context.Context, limit int) ([]domain.Record, error)
}

// RecordWriter creates, changes and removes study records
type RecordWriter interface {
	Clear(ctx context.Context) error
	Create(ctx context.Context, record domain.Record) (*domain.Record, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, update domain.RecordUpdate) (*domain.Record, error)
}

// RecordRepository is the composite interface
type RecordRepository interface {
	RecordReader
	RecordWriter
}

// PromptReader reads saved prompts
type PromptReader interface {
	FindAll(ctx context.Context) ([]domain.Prompt, error)
	FindByID(ctx context.Context, id string) (*domain.Prompt, error)
	FindByLabel(ctx context.Context, label domain.PromptLabel) ([]domain.Prompt, error)
	Search(ctx context.Context, query string) ([]domain.Prompt, error)
}

// PromptWriter creates, changes and removes saved prompts
type PromptWriter interface {
	Create(ctx context.Context, prompt domain.Prompt) (*domain.Prompt, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, update domain.PromptUpdate) (*domain.Prompt, error)
}

// PromptRepository is the composite interface
type PromptRepository interface {
	PromptReader
	PromptWriter
}

// SettingsReader reads the global settings
type SettingsReader interface {
	Get(ctx context.Context) (domain.Settings, error)
}

// SettingsRepository manages the global settings record
type SettingsRepository interface {
	SettingsReader
	Reset(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, update domain.SettingsUpdate) (domain.Settings, error)
}

// StatisticsCache stores a display-only statistics snapshot
type StatisticsCache interface {
	Clear(ctx context.Context) error
	Load(ctx context.Context) (*domain.Statistics, error)
	Save(ctx context.Context, stats domain.Statistics) error
}

// StudyLog is the set of repositories that change together when a study
// session is recorded
type StudyLog struct {
	Records   RecordRepository
	Schedules ScheduleRepository
}

// UnitOfWork runs fn with repositories bound to one atomic write
type UnitOfWork interface {
	Atomic(ctx context.Context, fn func(log StudyLog) error) error
}
