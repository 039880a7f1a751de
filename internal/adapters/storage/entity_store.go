package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/ports"
)

// Keys under which each collection is persisted
const (
	KeyPrompts    = "@StudyCalendar:prompts"
	KeyRecords    = "@StudyCalendar:records"
	KeySchedules  = "@StudyCalendar:schedules"
	KeySettings   = "@StudyCalendar:settings"
	KeyStatistics = "@StudyCalendar:statistics"
)

// Entity is anything stored in a collection
type Entity interface {
	EntityID() string
}

// EntityStore persists whole collections as JSON arrays in a KVStore.
// Every load-mutate-persist sequence runs under the writer mutex, which is
// shared with the transactional views handed out by Atomic.
type EntityStore struct {
	clock ports.Clock
	inTx  bool
	kv    ports.KVStore
	mu    *sync.Mutex
}

// NewEntityStore creates an EntityStore over kv
func NewEntityStore(kv ports.KVStore, clock ports.Clock) *EntityStore {
	if clock == nil {
		clock = ports.SystemClock()
	}
	return &EntityStore{
		clock: clock,
		kv:    kv,
		mu:    &sync.Mutex{},
	}
}

// NewID returns a time-ordered unique id (UUIDv7: millisecond timestamp plus random bits)
func (s *EntityStore) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Now returns the current time
func (s *EntityStore) Now() time.Time {
	return s.clock.Now()
}

// touch returns a timestamp strictly after prev
func (s *EntityStore) touch(prev time.Time) time.Time {
	now := s.clock.Now()
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

// exclusive runs fn holding the writer mutex. Views created by Atomic
// already hold it.
func (s *EntityStore) exclusive(fn func() error) error {
	if !s.inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}

// Atomic runs fn with a store view whose writes all persist or none do
func (s *EntityStore) Atomic(ctx context.Context, fn func(tx *EntityStore) error) error {
	return s.exclusive(func() error {
		return s.kv.Atomic(ctx, func(kv ports.KVStore) error {
			return fn(&EntityStore{clock: s.clock, inTx: true, kv: kv, mu: s.mu})
		})
	})
}

// readValue decodes the value under key into dst. It reports false when the
// key is absent or unreadable; failures are logged, never returned.
func (s *EntityStore) readValue(ctx context.Context, key string, dst any) bool {
	found, err := s.loadValue(ctx, key, dst)
	if err != nil {
		logging.Logger.Warn("Failed to read key, using empty value", "key", key, "error", err)
		return false
	}
	return found
}

// loadValue decodes the value under key into dst. Medium and decode failures
// are returned as ErrStorage so mutations never persist over data they could
// not read.
func (s *EntityStore) loadValue(ctx context.Context, key string, dst any) (bool, error) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, storageError("read", key, err)
	}
	if !found || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("%w: failed to decode %s: %w", domain.ErrStorage, key, err)
	}
	return true, nil
}

// writeValue encodes v and stores it under key
func (s *EntityStore) writeValue(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s: %v", domain.ErrStorage, key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		logging.Logger.Error("Failed to write key", "key", key, "error", err)
		return storageError("write", key, err)
	}
	return nil
}

// removeValue deletes key
func (s *EntityStore) removeValue(ctx context.Context, key string) error {
	if err := s.kv.Remove(ctx, key); err != nil {
		logging.Logger.Error("Failed to remove key", "key", key, "error", err)
		return storageError("remove", key, err)
	}
	return nil
}

// storageError wraps a medium failure in ErrStorage unless it already is one
func storageError(op, key string, err error) error {
	if errors.Is(err, domain.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: failed to %s %s: %w", domain.ErrStorage, op, key, err)
}

// Collection is a named list of entities stored as one JSON array
type Collection[T Entity] struct {
	key      string
	notFound error
	store    *EntityStore
}

// NewCollection binds a collection key to a store. notFound is wrapped into
// errors for missing ids.
func NewCollection[T Entity](store *EntityStore, key string, notFound error) Collection[T] {
	return Collection[T]{key: key, notFound: notFound, store: store}
}

// ReadAll returns every item. Absent or unreadable data yields an empty
// slice; use it for queries only.
func (c Collection[T]) ReadAll(ctx context.Context) []T {
	var items []T
	if !c.store.readValue(ctx, c.key, &items) {
		return []T{}
	}
	return items
}

// load returns every item or the read failure. Mutations go through load.
func (c Collection[T]) load(ctx context.Context) ([]T, error) {
	var items []T
	found, err := c.store.loadValue(ctx, c.key, &items)
	if err != nil {
		return nil, err
	}
	if !found || items == nil {
		return []T{}, nil
	}
	return items, nil
}

// WriteAll overwrites the collection
func (c Collection[T]) WriteAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.store.writeValue(ctx, c.key, items)
}

// Find returns the item with id
func (c Collection[T]) Find(ctx context.Context, id string) (T, error) {
	for _, item := range c.ReadAll(ctx) {
		if item.EntityID() == id {
			return item, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s", c.notFound, id)
}

// Insert appends item and persists the collection
func (c Collection[T]) Insert(ctx context.Context, item T) error {
	return c.store.exclusive(func() error {
		items, err := c.load(ctx)
		if err != nil {
			return err
		}
		return c.WriteAll(ctx, append(items, item))
	})
}

// Modify applies fn to the item with id and persists the result. An error
// from fn aborts the write.
func (c Collection[T]) Modify(ctx context.Context, id string, fn func(item *T) error) (T, error) {
	var result T
	err := c.store.exclusive(func() error {
		items, err := c.load(ctx)
		if err != nil {
			return err
		}
		i := slices.IndexFunc(items, func(item T) bool { return item.EntityID() == id })
		if i < 0 {
			return fmt.Errorf("%w: %s", c.notFound, id)
		}
		if err := fn(&items[i]); err != nil {
			return err
		}
		if err := c.WriteAll(ctx, items); err != nil {
			return err
		}
		result = items[i]
		return nil
	})
	return result, err
}

// Delete removes the item with id and persists the collection
func (c Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.exclusive(func() error {
		items, err := c.load(ctx)
		if err != nil {
			return err
		}
		i := slices.IndexFunc(items, func(item T) bool { return item.EntityID() == id })
		if i < 0 {
			return fmt.Errorf("%w: %s", c.notFound, id)
		}
		return c.WriteAll(ctx, slices.Delete(items, i, i+1))
	})
}

// Clear empties the collection
func (c Collection[T]) Clear(ctx context.Context) error {
	return c.store.exclusive(func() error {
		return c.WriteAll(ctx, []T{})
	})
}
