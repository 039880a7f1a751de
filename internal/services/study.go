package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/ports"
)

const (
	// suggestionWindowDays is how far back duration suggestions look
	suggestionWindowDays = 30

	fallbackDuration       = 60
	fallbackPythonDuration = 90
)

// StudyService holds the business rules spanning schedules and records
type StudyService struct {
	clock     ports.Clock
	records   ports.RecordReader
	schedules ports.ScheduleReader
	uow       ports.UnitOfWork
}

// NewStudyService creates a new StudyService
func NewStudyService(schedules ports.ScheduleReader, records ports.RecordReader, uow ports.UnitOfWork, clock ports.Clock) *StudyService {
	if clock == nil {
		clock = ports.SystemClock()
	}
	return &StudyService{
		clock:     clock,
		records:   records,
		schedules: schedules,
		uow:       uow,
	}
}

// RecordStudy stores a study record. When the record names a stored
// schedule, that schedule is marked completed in the same atomic write. An
// occurrence id is kept on the record but completes nothing, so the rest of
// the series stays open. An unknown schedule or occurrence base fails with
// ErrNotFound and nothing is written.
func (s *StudyService) RecordStudy(ctx context.Context, params RecordStudyParams) (*RecordStudyResult, error) {
	record := domain.Record{
		CompletedAt: params.CompletedAt,
		Duration:    params.Duration,
		Memo:        params.Memo,
		ScheduleID:  params.ScheduleID,
		URLs:        params.URLs,
	}
	if record.CompletedAt.IsZero() {
		record.CompletedAt = s.clock.Now()
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	logging.Logger.Debug("Recording study session", "schedule_id", record.ScheduleID, "duration", record.Duration)

	var result RecordStudyResult
	err := s.uow.Atomic(ctx, func(log ports.StudyLog) error {
		var completeID string
		if record.ScheduleID != "" {
			schedule, err := resolveSchedule(ctx, log.Schedules, record.ScheduleID)
			if err != nil {
				return err
			}
			if schedule.ID == record.ScheduleID {
				completeID = schedule.ID
			}
		}

		created, err := log.Records.Create(ctx, record)
		if err != nil {
			return err
		}
		result.Record = created

		if completeID == "" {
			return nil
		}
		completed, err := log.Schedules.MarkCompleted(ctx, completeID)
		if err != nil {
			return err
		}
		result.Schedule = completed
		return nil
	})
	if err != nil {
		logging.Logger.Error("Failed to record study session", "schedule_id", record.ScheduleID, "error", err)
		return nil, fmt.Errorf("failed to record study session: %w", err)
	}

	logging.Logger.Info("Study session recorded", "id", result.Record.ID, "schedule_id", record.ScheduleID)
	return &result, nil
}

// CheckScheduleConflict reports whether the slot overlaps another timed
// schedule that day, repeating occurrences included. Slots touching at a
// boundary do not overlap. Without both times there is nothing to check.
func (s *StudyService) CheckScheduleConflict(ctx context.Context, q ConflictQuery) (bool, error) {
	if q.StartTime == "" || q.EndTime == "" {
		return false, nil
	}
	if _, err := domain.ParseDate(q.Date); err != nil {
		return false, err
	}
	newStart, err := domain.ParseClock(q.StartTime)
	if err != nil {
		return false, err
	}
	newEnd, err := domain.ParseClock(q.EndTime)
	if err != nil {
		return false, err
	}

	sameDay, err := s.schedules.ExpandRepeatingSchedules(ctx, q.Date, q.Date)
	if err != nil {
		return false, fmt.Errorf("failed to load schedules: %w", err)
	}

	for _, other := range sameDay {
		if q.ExcludeID != "" && isSameSchedule(other.ID, q.ExcludeID) {
			continue
		}
		if other.StartTime == "" || other.EndTime == "" {
			continue
		}
		start, err := domain.ParseClock(other.StartTime)
		if err != nil {
			continue
		}
		end, err := domain.ParseClock(other.EndTime)
		if err != nil {
			continue
		}
		if newStart < end && start < newEnd {
			logging.Logger.Debug("Schedule conflict found", "date", q.Date, "conflicts_with", other.ID)
			return true, nil
		}
	}
	return false, nil
}

// GetTodayStudyTime sums the minutes recorded today
func (s *StudyService) GetTodayStudyTime(ctx context.Context) (int, error) {
	today := domain.FormatDate(s.clock.Now())
	records, err := s.records.FindByDateRange(ctx, today, today)
	if err != nil {
		return 0, fmt.Errorf("failed to load records: %w", err)
	}

	total := 0
	for _, r := range records {
		total += r.Duration
	}
	return total, nil
}

// GetStudyTimeByCategory sums record minutes in [start, end] per category.
// Records without a resolvable schedule are left out.
func (s *StudyService) GetStudyTimeByCategory(ctx context.Context, start, end string) (map[domain.Category]int, error) {
	if err := domain.ValidateRange(start, end); err != nil {
		return nil, err
	}
	records, err := s.records.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	index, err := s.scheduleIndex(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[domain.Category]int, len(domain.Categories))
	for _, c := range domain.Categories {
		result[c] = 0
	}
	for _, r := range records {
		if schedule, ok := index.lookup(r.ScheduleID); ok {
			result[schedule.Category] += r.Duration
		}
	}
	return result, nil
}

// GetCompletionRate returns the rounded percentage of stored schedules in
// [start, end] that are completed, or 0 when there are none
func (s *StudyService) GetCompletionRate(ctx context.Context, start, end string) (int, error) {
	if err := domain.ValidateRange(start, end); err != nil {
		return 0, err
	}
	schedules, err := s.schedules.FindByDateRange(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to load schedules: %w", err)
	}

	completed := 0
	for _, schedule := range schedules {
		if schedule.IsCompleted {
			completed++
		}
	}
	return percent(completed, len(schedules)), nil
}

// SuggestStudyDuration averages the last month of sessions in category,
// falling back to a fixed duration when there are none
func (s *StudyService) SuggestStudyDuration(ctx context.Context, category domain.Category) (int, error) {
	today := domain.FormatDate(s.clock.Now())
	from, err := domain.AddDays(today, -suggestionWindowDays)
	if err != nil {
		return 0, err
	}

	records, err := s.records.FindByDateRange(ctx, from, today)
	if err != nil {
		return 0, fmt.Errorf("failed to load records: %w", err)
	}
	index, err := s.scheduleIndex(ctx)
	if err != nil {
		return 0, err
	}

	total, count := 0, 0
	for _, r := range records {
		if schedule, ok := index.lookup(r.ScheduleID); ok && schedule.Category == category {
			total += r.Duration
			count++
		}
	}

	if count == 0 {
		if category == domain.CategoryPython {
			return fallbackPythonDuration, nil
		}
		return fallbackDuration, nil
	}
	return int(math.Round(float64(total) / float64(count))), nil
}

func (s *StudyService) scheduleIndex(ctx context.Context) (scheduleIndex, error) {
	schedules, err := s.schedules.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedules: %w", err)
	}
	return newScheduleIndex(schedules), nil
}

// resolveSchedule finds a stored schedule by id or by occurrence id
func resolveSchedule(ctx context.Context, schedules ports.ScheduleReader, id string) (*domain.Schedule, error) {
	schedule, err := schedules.FindByID(ctx, id)
	if err == nil {
		return schedule, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if base, _, ok := domain.SplitOccurrenceID(id); ok {
		return schedules.FindByID(ctx, base)
	}
	return nil, err
}

// isSameSchedule reports whether id is excludeID or one of its occurrences
func isSameSchedule(id, excludeID string) bool {
	if id == excludeID {
		return true
	}
	base, _, ok := domain.SplitOccurrenceID(id)
	return ok && base == excludeID
}
