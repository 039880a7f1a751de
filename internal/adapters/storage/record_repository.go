package storage

import (
	"context"
	"fmt"
	"slices"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/ports"
)

// DefaultLatestLimit is used when FindLatest gets a non-positive limit
const DefaultLatestLimit = 10

// RecordRepository implements ports.RecordRepository on an EntityStore
type RecordRepository struct {
	store *EntityStore
}

var _ ports.RecordRepository = (*RecordRepository)(nil)

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(store *EntityStore) *RecordRepository {
	return &RecordRepository{store: store}
}

func (r *RecordRepository) collection() Collection[domain.Record] {
	return NewCollection[domain.Record](r.store, KeyRecords, domain.ErrRecordNotFound)
}

// Create validates and stores a new record
func (r *RecordRepository) Create(ctx context.Context, record domain.Record) (*domain.Record, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	rec := record.Clone()
	rec.ID = r.store.NewID()
	rec.CreatedAt = r.store.Now()

	if err := r.collection().Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	logging.Logger.Debug("Record created", "id", rec.ID, "schedule_id", rec.ScheduleID, "duration", rec.Duration)
	return &rec, nil
}

// Update merges a partial change into the record with id
func (r *RecordRepository) Update(ctx context.Context, id string, update domain.RecordUpdate) (*domain.Record, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: record id is empty", domain.ErrValidation)
	}

	rec, err := r.collection().Modify(ctx, id, func(rec *domain.Record) error {
		next := rec.Clone()
		update.Apply(&next)
		if err := next.Validate(); err != nil {
			return err
		}
		next.ID = rec.ID
		*rec = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes the record with id
func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	return r.collection().Delete(ctx, id)
}

// Clear removes every record
func (r *RecordRepository) Clear(ctx context.Context) error {
	if err := r.collection().Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	logging.Logger.Info("All records cleared")
	return nil
}

// FindAll returns every stored record
func (r *RecordRepository) FindAll(ctx context.Context) ([]domain.Record, error) {
	return r.collection().ReadAll(ctx), nil
}

// FindByID returns the record with id
func (r *RecordRepository) FindByID(ctx context.Context, id string) (*domain.Record, error) {
	rec, err := r.collection().Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindByScheduleID returns records linked to a schedule
func (r *RecordRepository) FindByScheduleID(ctx context.Context, scheduleID string) ([]domain.Record, error) {
	return r.filter(ctx, func(rec domain.Record) bool { return rec.ScheduleID == scheduleID }), nil
}

// FindByDateRange returns records completed on a day within [start, end]
func (r *RecordRepository) FindByDateRange(ctx context.Context, start, end string) ([]domain.Record, error) {
	return r.filter(ctx, func(rec domain.Record) bool {
		d := rec.CompletedDate()
		return d >= start && d <= end
	}), nil
}

// FindLatest returns the most recently completed records, newest first
func (r *RecordRepository) FindLatest(ctx context.Context, limit int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}

	records := r.collection().ReadAll(ctx)
	slices.SortStableFunc(records, func(a, b domain.Record) int {
		return b.CompletedAt.Compare(a.CompletedAt)
	})

	return records[:min(limit, len(records))], nil
}

func (r *RecordRepository) filter(ctx context.Context, keep func(domain.Record) bool) []domain.Record {
	result := []domain.Record{}
	for _, rec := range r.collection().ReadAll(ctx) {
		if keep(rec) {
			result = append(result, rec)
		}
	}
	return result
}
