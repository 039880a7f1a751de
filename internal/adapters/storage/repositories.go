package storage

import (
	"context"

	"github.com/renato0307/studycal/internal/ports"
)

// Repositories bundles every repository sharing one EntityStore
type Repositories struct {
	Prompts    *PromptRepository
	Records    *RecordRepository
	Schedules  *ScheduleRepository
	Settings   *SettingsRepository
	Statistics *StatisticsCache

	store *EntityStore
}

var _ ports.UnitOfWork = (*Repositories)(nil)

// NewRepositories wires all repositories over kv
func NewRepositories(kv ports.KVStore, clock ports.Clock) *Repositories {
	store := NewEntityStore(kv, clock)
	return &Repositories{
		Prompts:    NewPromptRepository(store),
		Records:    NewRecordRepository(store),
		Schedules:  NewScheduleRepository(store),
		Settings:   NewSettingsRepository(store),
		Statistics: NewStatisticsCache(store),
		store:      store,
	}
}

// Atomic runs fn with record and schedule repositories bound to one
// transaction. Nothing fn writes persists unless it returns nil.
func (r *Repositories) Atomic(ctx context.Context, fn func(log ports.StudyLog) error) error {
	return r.store.Atomic(ctx, func(tx *EntityStore) error {
		return fn(ports.StudyLog{
			Records:   NewRecordRepository(tx),
			Schedules: NewScheduleRepository(tx),
		})
	})
}
