package storage

import (
	"context"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/ports"
)

// StatisticsCache stores the display-only statistics snapshot
type StatisticsCache struct {
	store *EntityStore
}

var _ ports.StatisticsCache = (*StatisticsCache)(nil)

// NewStatisticsCache creates a new StatisticsCache
func NewStatisticsCache(store *EntityStore) *StatisticsCache {
	return &StatisticsCache{store: store}
}

// Save replaces the snapshot
func (c *StatisticsCache) Save(ctx context.Context, stats domain.Statistics) error {
	return c.store.exclusive(func() error {
		return c.store.writeValue(ctx, KeyStatistics, stats)
	})
}

// Load returns the snapshot, or ErrStatisticsNotCached
func (c *StatisticsCache) Load(ctx context.Context) (*domain.Statistics, error) {
	var stats domain.Statistics
	if !c.store.readValue(ctx, KeyStatistics, &stats) {
		return nil, domain.ErrStatisticsNotCached
	}
	return &stats, nil
}

// Clear removes the snapshot
func (c *StatisticsCache) Clear(ctx context.Context) error {
	return c.store.exclusive(func() error {
		return c.store.removeValue(ctx, KeyStatistics)
	})
}
