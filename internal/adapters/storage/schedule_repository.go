package storage

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/ports"
)

// DefaultUpcomingLimit is used when FindUpcoming gets a non-positive limit
const DefaultUpcomingLimit = 10

// ScheduleRepository implements ports.ScheduleRepository on an EntityStore
type ScheduleRepository struct {
	store *EntityStore
}

var _ ports.ScheduleRepository = (*ScheduleRepository)(nil)

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(store *EntityStore) *ScheduleRepository {
	return &ScheduleRepository{store: store}
}

func (r *ScheduleRepository) collection() Collection[domain.Schedule] {
	return NewCollection[domain.Schedule](r.store, KeySchedules, domain.ErrScheduleNotFound)
}

// Create validates and stores a new schedule. Any id or timestamps on the
// input are replaced.
func (r *ScheduleRepository) Create(ctx context.Context, schedule domain.Schedule) (*domain.Schedule, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	now := r.store.Now()
	s := schedule.Clone()
	s.ID = r.store.NewID()
	s.CreatedAt = now
	s.UpdatedAt = now

	if err := r.collection().Insert(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	logging.Logger.Debug("Schedule created", "id", s.ID, "date", s.Date)
	return &s, nil
}

// Update merges a partial change into the schedule with id
func (r *ScheduleRepository) Update(ctx context.Context, id string, update domain.ScheduleUpdate) (*domain.Schedule, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: schedule id is empty", domain.ErrValidation)
	}

	s, err := r.collection().Modify(ctx, id, func(s *domain.Schedule) error {
		next := s.Clone()
		update.Apply(&next)
		if err := next.Validate(); err != nil {
			return err
		}
		next.ID = s.ID
		next.UpdatedAt = r.store.touch(s.UpdatedAt)
		*s = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.Debug("Schedule updated", "id", id)
	return &s, nil
}

// MarkCompleted flags the schedule with id as completed
func (r *ScheduleRepository) MarkCompleted(ctx context.Context, id string) (*domain.Schedule, error) {
	done := true
	return r.Update(ctx, id, domain.ScheduleUpdate{IsCompleted: &done})
}

// Delete removes the schedule with id
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	if err := r.collection().Delete(ctx, id); err != nil {
		return err
	}
	logging.Logger.Debug("Schedule deleted", "id", id)
	return nil
}

// FindAll returns every stored schedule
func (r *ScheduleRepository) FindAll(ctx context.Context) ([]domain.Schedule, error) {
	return r.collection().ReadAll(ctx), nil
}

// FindByID returns the stored schedule with id. Occurrence ids are not resolved.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*domain.Schedule, error) {
	s, err := r.collection().Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByDate returns schedules stored on date
func (r *ScheduleRepository) FindByDate(ctx context.Context, date string) ([]domain.Schedule, error) {
	return r.filter(ctx, func(s domain.Schedule) bool { return s.Date == date }), nil
}

// FindByDateRange returns schedules whose date is within [start, end]
func (r *ScheduleRepository) FindByDateRange(ctx context.Context, start, end string) ([]domain.Schedule, error) {
	return r.filter(ctx, func(s domain.Schedule) bool {
		return s.Date >= start && s.Date <= end
	}), nil
}

// FindByCategory returns schedules of a category
func (r *ScheduleRepository) FindByCategory(ctx context.Context, category domain.Category) ([]domain.Schedule, error) {
	return r.filter(ctx, func(s domain.Schedule) bool { return s.Category == category }), nil
}

// FindUpcoming returns incomplete schedules starting now or later, soonest
// first. Schedules without a start time count from midnight.
func (r *ScheduleRepository) FindUpcoming(ctx context.Context, limit int) ([]domain.Schedule, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	now := r.store.Now()
	type upcoming struct {
		schedule domain.Schedule
		start    time.Time
	}

	var candidates []upcoming
	for _, s := range r.collection().ReadAll(ctx) {
		if s.IsCompleted {
			continue
		}
		start, err := s.EffectiveStart(now.Location(), "00:00")
		if err != nil {
			logging.Logger.Warn("Skipping schedule with invalid start", "id", s.ID, "error", err)
			continue
		}
		if start.Before(now) {
			continue
		}
		candidates = append(candidates, upcoming{schedule: s, start: start})
	}

	slices.SortStableFunc(candidates, func(a, b upcoming) int {
		return cmp.Or(a.start.Compare(b.start), cmp.Compare(a.schedule.ID, b.schedule.ID))
	})

	result := make([]domain.Schedule, 0, min(limit, len(candidates)))
	for _, c := range candidates[:min(limit, len(candidates))] {
		result = append(result, c.schedule)
	}
	return result, nil
}

// ExpandRepeatingSchedules returns every schedule occurrence in [start, end],
// sorted by date. Occurrences of repeating schedules are read-only projections
// with ids of the form {baseId}_{date}.
func (r *ScheduleRepository) ExpandRepeatingSchedules(ctx context.Context, start, end string) ([]domain.Schedule, error) {
	if err := domain.ValidateRange(start, end); err != nil {
		return nil, err
	}

	var result []domain.Schedule
	for _, s := range r.collection().ReadAll(ctx) {
		occurrences, err := domain.ExpandOccurrences(s, start, end)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyCustomDays) {
				logging.Logger.Warn("Custom repeat without weekdays has no occurrences", "id", s.ID)
			} else {
				logging.Logger.Warn("Skipping schedule that cannot be expanded", "id", s.ID, "error", err)
			}
			continue
		}
		result = append(result, occurrences...)
	}

	domain.SortSchedules(result)
	return result, nil
}

func (r *ScheduleRepository) filter(ctx context.Context, keep func(domain.Schedule) bool) []domain.Schedule {
	result := []domain.Schedule{}
	for _, s := range r.collection().ReadAll(ctx) {
		if keep(s) {
			result = append(result, s)
		}
	}
	return result
}
