package application

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/ports"
	"github.com/renato0307/studycal/internal/services"
)

const (
	// recordCacheSize is the number of latest records kept in memory
	recordCacheSize = 100
	// scheduleWindowDays is how many days around today are cached
	scheduleWindowDays = 30
)

// ReminderSync keeps reminders in step with schedule changes. A series is a
// stored schedule together with all of its repeating occurrences.
type ReminderSync interface {
	CancelSeries(ctx context.Context, baseID string) error
	SyncSeries(ctx context.Context, baseID string) error
}

// State is the in-memory view the presentation layer renders
type State struct {
	LastError  error
	Loading    bool
	Prompts    []domain.Prompt
	Records    []domain.Record
	Schedules  []domain.Schedule
	Settings   domain.Settings
	Statistics domain.Statistics
}

// Dependencies wires a Coordinator
type Dependencies struct {
	Clock      ports.Clock
	Prompts    ports.PromptRepository
	Records    ports.RecordRepository
	Reminders  ReminderSync
	Schedules  ports.ScheduleRepository
	Settings   ports.SettingsRepository
	Statistics *services.StatisticsService
	Study      *services.StudyService
}

// Coordinator fronts the repositories and services with one cached state.
// Every mutation persists first and touches the cache only on success; a
// failure is kept as LastError and leaves the cache as it was.
type Coordinator struct {
	clock      ports.Clock
	mu         sync.RWMutex
	prompts    ports.PromptRepository
	records    ports.RecordRepository
	reminders  ReminderSync
	schedules  ports.ScheduleRepository
	settings   ports.SettingsRepository
	state      State
	statistics *services.StatisticsService
	study      *services.StudyService
}

// NewCoordinator creates a Coordinator. Reminders may be nil.
func NewCoordinator(deps Dependencies) *Coordinator {
	clock := deps.Clock
	if clock == nil {
		clock = ports.SystemClock()
	}
	return &Coordinator{
		clock:      clock,
		prompts:    deps.Prompts,
		records:    deps.Records,
		reminders:  deps.Reminders,
		schedules:  deps.Schedules,
		settings:   deps.Settings,
		state:      State{Settings: domain.DefaultSettings(), Statistics: domain.NewStatistics()},
		statistics: deps.Statistics,
		study:      deps.Study,
	}
}

// Load fills the cache, reading every slice concurrently
func (c *Coordinator) Load(ctx context.Context) error {
	c.mu.Lock()
	c.state.Loading = true
	c.mu.Unlock()

	logging.Logger.Debug("Loading application state")

	var next State
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		schedules, err := c.loadScheduleWindow(gctx)
		next.Schedules = schedules
		return err
	})
	g.Go(func() error {
		records, err := c.records.FindLatest(gctx, recordCacheSize)
		next.Records = records
		return err
	})
	g.Go(func() error {
		prompts, err := c.prompts.FindAll(gctx)
		next.Prompts = prompts
		return err
	})
	g.Go(func() error {
		settings, err := c.settings.Get(gctx)
		next.Settings = settings
		return err
	})
	g.Go(func() error {
		stats, err := c.statistics.GetOverallStatistics(gctx)
		next.Statistics = stats
		return err
	})

	err := g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Loading = false
	if err != nil {
		c.state.LastError = err
		logging.Logger.Error("Failed to load application state", "error", err)
		return fmt.Errorf("failed to load state: %w", err)
	}

	c.state = next
	logging.Logger.Debug("Application state loaded",
		"schedules", len(next.Schedules),
		"records", len(next.Records),
		"prompts", len(next.Prompts))
	return nil
}

// Snapshot returns a copy of the cached state
func (c *Coordinator) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.state
	s.Prompts = slices.Clone(s.Prompts)
	s.Records = slices.Clone(s.Records)
	s.Schedules = slices.Clone(s.Schedules)
	s.Statistics = cloneStatistics(s.Statistics)
	return s
}

// Refresh reloads the cache and syncs the reminders of every series that
// was added, edited or removed since the previous load, including changes
// made by other processes
func (c *Coordinator) Refresh(ctx context.Context) error {
	before := c.seriesVersions()
	if err := c.Load(ctx); err != nil {
		return err
	}
	if c.reminders == nil {
		return nil
	}
	after := c.seriesVersions()

	var errs []error
	for id, version := range after {
		if prev, ok := before[id]; !ok || !prev.Equal(version) {
			errs = append(errs, c.reminders.SyncSeries(ctx, id))
		}
	}
	for id := range before {
		if _, ok := after[id]; !ok {
			errs = append(errs, c.reminders.CancelSeries(ctx, id))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return c.fail(err)
	}
	return nil
}

// ClearError forgets the last error
func (c *Coordinator) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.LastError = nil
}

// CreateSchedule stores a schedule and registers its reminder
func (c *Coordinator) CreateSchedule(ctx context.Context, schedule domain.Schedule) (*domain.Schedule, error) {
	created, err := c.schedules.Create(ctx, schedule)
	if err != nil {
		return nil, c.fail(err)
	}
	return created, c.afterScheduleChange(ctx, *created)
}

// UpdateSchedule changes a schedule and reschedules its reminder
func (c *Coordinator) UpdateSchedule(ctx context.Context, id string, update domain.ScheduleUpdate) (*domain.Schedule, error) {
	updated, err := c.schedules.Update(ctx, id, update)
	if err != nil {
		return nil, c.fail(err)
	}
	return updated, c.afterScheduleChange(ctx, *updated)
}

// CompleteSchedule marks a schedule completed and drops its reminder
func (c *Coordinator) CompleteSchedule(ctx context.Context, id string) (*domain.Schedule, error) {
	completed, err := c.schedules.MarkCompleted(ctx, id)
	if err != nil {
		return nil, c.fail(err)
	}
	return completed, c.afterScheduleChange(ctx, *completed)
}

// DeleteSchedule removes a schedule and cancels its reminders
func (c *Coordinator) DeleteSchedule(ctx context.Context, id string) error {
	if err := c.schedules.Delete(ctx, id); err != nil {
		return c.fail(err)
	}

	c.apply(func(s *State) {
		s.Schedules = slices.DeleteFunc(s.Schedules, func(sc domain.Schedule) bool {
			return sc.ID == id || isOccurrenceOf(sc.ID, id)
		})
	})

	if c.reminders != nil {
		if err := c.reminders.CancelSeries(ctx, id); err != nil {
			return c.fail(err)
		}
	}
	return nil
}

// CreateRecord logs a study session, completes its schedule and refreshes
// statistics
func (c *Coordinator) CreateRecord(ctx context.Context, params services.RecordStudyParams) (*domain.Record, error) {
	result, err := c.study.RecordStudy(ctx, params)
	if err != nil {
		return nil, c.fail(err)
	}

	c.apply(func(s *State) {
		s.Records = append([]domain.Record{*result.Record}, s.Records...)
		s.Records = s.Records[:min(len(s.Records), recordCacheSize)]
		if result.Schedule != nil {
			for i := range s.Schedules {
				if s.Schedules[i].ID == result.Schedule.ID || isOccurrenceOf(s.Schedules[i].ID, result.Schedule.ID) {
					s.Schedules[i].IsCompleted = true
				}
			}
		}
	})

	var errs []error
	if result.Schedule != nil && c.reminders != nil {
		errs = append(errs, c.reminders.SyncSeries(ctx, result.Schedule.ID))
	}
	errs = append(errs, c.refreshStatistics(ctx))
	if err := errors.Join(errs...); err != nil {
		return result.Record, c.fail(err)
	}
	return result.Record, nil
}

// DeleteRecord removes a record and refreshes statistics
func (c *Coordinator) DeleteRecord(ctx context.Context, id string) error {
	if err := c.records.Delete(ctx, id); err != nil {
		return c.fail(err)
	}
	c.apply(func(s *State) {
		s.Records = slices.DeleteFunc(s.Records, func(r domain.Record) bool { return r.ID == id })
	})
	if err := c.refreshStatistics(ctx); err != nil {
		return c.fail(err)
	}
	return nil
}

// ResetStatistics deletes every record and the statistics snapshot
func (c *Coordinator) ResetStatistics(ctx context.Context) error {
	if err := c.records.Clear(ctx); err != nil {
		return c.fail(err)
	}
	if err := c.statistics.ClearStatistics(ctx); err != nil {
		return c.fail(err)
	}

	prompts := c.Snapshot().Prompts
	stats := domain.NewStatistics()
	stats.TotalPrompts = len(prompts)
	for _, p := range prompts {
		stats.PromptsByLabel[p.Label]++
	}

	c.apply(func(s *State) {
		s.Records = nil
		s.Statistics = stats
	})
	logging.Logger.Info("Statistics reset")
	return nil
}

// CreatePrompt stores a prompt
func (c *Coordinator) CreatePrompt(ctx context.Context, prompt domain.Prompt) (*domain.Prompt, error) {
	created, err := c.prompts.Create(ctx, prompt)
	if err != nil {
		return nil, c.fail(err)
	}
	c.apply(func(s *State) {
		s.Prompts = append([]domain.Prompt{*created}, s.Prompts...)
		s.Statistics.TotalPrompts++
		s.Statistics.PromptsByLabel[created.Label]++
	})
	c.statistics.Invalidate()
	return created, nil
}

// UpdatePrompt changes a prompt
func (c *Coordinator) UpdatePrompt(ctx context.Context, id string, update domain.PromptUpdate) (*domain.Prompt, error) {
	updated, err := c.prompts.Update(ctx, id, update)
	if err != nil {
		return nil, c.fail(err)
	}
	c.apply(func(s *State) {
		for i := range s.Prompts {
			if s.Prompts[i].ID == id {
				if s.Prompts[i].Label != updated.Label {
					s.Statistics.PromptsByLabel[s.Prompts[i].Label]--
					s.Statistics.PromptsByLabel[updated.Label]++
				}
				s.Prompts[i] = *updated
			}
		}
	})
	c.statistics.Invalidate()
	return updated, nil
}

// DeletePrompt removes a prompt
func (c *Coordinator) DeletePrompt(ctx context.Context, id string) error {
	if err := c.prompts.Delete(ctx, id); err != nil {
		return c.fail(err)
	}
	c.apply(func(s *State) {
		i := slices.IndexFunc(s.Prompts, func(p domain.Prompt) bool { return p.ID == id })
		if i < 0 {
			return
		}
		s.Statistics.TotalPrompts--
		s.Statistics.PromptsByLabel[s.Prompts[i].Label]--
		s.Prompts = slices.Delete(s.Prompts, i, i+1)
	})
	c.statistics.Invalidate()
	return nil
}

// UpdateSettings changes the global settings
func (c *Coordinator) UpdateSettings(ctx context.Context, update domain.SettingsUpdate) (domain.Settings, error) {
	settings, err := c.settings.Update(ctx, update)
	if err != nil {
		return domain.Settings{}, c.fail(err)
	}
	c.apply(func(s *State) { s.Settings = settings })
	return settings, nil
}

// ResetSettings restores the default settings
func (c *Coordinator) ResetSettings(ctx context.Context) (domain.Settings, error) {
	settings, err := c.settings.Reset(ctx)
	if err != nil {
		return domain.Settings{}, c.fail(err)
	}
	c.apply(func(s *State) { s.Settings = settings })
	return settings, nil
}

// afterScheduleChange refreshes the cached window and syncs the reminders
// of the schedule's series
func (c *Coordinator) afterScheduleChange(ctx context.Context, schedule domain.Schedule) error {
	var errs []error
	if window, err := c.loadScheduleWindow(ctx); err != nil {
		errs = append(errs, err)
	} else {
		c.apply(func(s *State) { s.Schedules = window })
	}

	if c.reminders != nil {
		errs = append(errs, c.reminders.SyncSeries(ctx, schedule.ID))
	}

	if err := errors.Join(errs...); err != nil {
		return c.fail(err)
	}
	return nil
}

func (c *Coordinator) refreshStatistics(ctx context.Context) error {
	stats, err := c.statistics.UpdateStatisticsCache(ctx)
	if err != nil {
		return err
	}
	c.apply(func(s *State) { s.Statistics = stats })
	return nil
}

func (c *Coordinator) loadScheduleWindow(ctx context.Context) ([]domain.Schedule, error) {
	today := domain.FormatDate(c.clock.Now())
	start, err := domain.AddDays(today, -scheduleWindowDays)
	if err != nil {
		return nil, err
	}
	end, err := domain.AddDays(today, scheduleWindowDays)
	if err != nil {
		return nil, err
	}
	return c.schedules.ExpandRepeatingSchedules(ctx, start, end)
}

// apply mutates the cache after a successful write and clears LastError
func (c *Coordinator) apply(fn func(s *State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	c.state.LastError = nil
}

func (c *Coordinator) fail(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.LastError = err
	logging.Logger.Warn("Operation failed", "error", err)
	return err
}

// seriesVersions maps each cached series to the UpdatedAt of its schedule
func (c *Coordinator) seriesVersions() map[string]time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	versions := make(map[string]time.Time, len(c.state.Schedules))
	for _, s := range c.state.Schedules {
		id := s.ID
		if base, _, ok := domain.SplitOccurrenceID(id); ok {
			id = base
		}
		versions[id] = s.UpdatedAt
	}
	return versions
}

func cloneStatistics(s domain.Statistics) domain.Statistics {
	s.StudyTimeByCategory = maps.Clone(s.StudyTimeByCategory)
	s.StudyTimeByDate = maps.Clone(s.StudyTimeByDate)
	s.PromptsByLabel = maps.Clone(s.PromptsByLabel)
	return s
}

func isOccurrenceOf(id, baseID string) bool {
	base, _, ok := domain.SplitOccurrenceID(id)
	return ok && base == baseID
}
