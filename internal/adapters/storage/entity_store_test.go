package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/ports"
	portsmocks "github.com/renato0307/studycal/internal/ports/mocks"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (i item) EntityID() string { return i.ID }

var errItemNotFound = errors.New("item not found")

func TestCollection_ReadAllDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name  string
		setup func(kv *MemoryKVStore)
	}{
		{"absent key", func(kv *MemoryKVStore) {}},
		{"empty value", func(kv *MemoryKVStore) { _ = kv.Set(context.Background(), "items", "") }},
		{"garbage", func(kv *MemoryKVStore) { _ = kv.Set(context.Background(), "items", "{not json") }},
		{"wrong shape", func(kv *MemoryKVStore) { _ = kv.Set(context.Background(), "items", `{"id":"1"}`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKVStore()
			tt.setup(kv)
			c := NewCollection[item](NewEntityStore(kv, fixedClock(testNow)), "items", errItemNotFound)

			items := c.ReadAll(context.Background())

			assert.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestCollection_ReadAllToleratesMediumError(t *testing.T) {
	kv := portsmocks.NewMockKVStore(t)
	kv.EXPECT().Get(mock.Anything, "items").Return("", false, domain.ErrStorage)

	c := NewCollection[item](NewEntityStore(kv, fixedClock(testNow)), "items", errItemNotFound)

	assert.Empty(t, c.ReadAll(context.Background()))
}

func TestCollection_WriteFailurePropagates(t *testing.T) {
	kv := portsmocks.NewMockKVStore(t)
	kv.EXPECT().Get(mock.Anything, "items").Return(`[{"id":"1","name":"a"}]`, true, nil)
	kv.EXPECT().Set(mock.Anything, "items", mock.Anything).
		Return(fmt.Errorf("%w: disk full", domain.ErrStorage))

	c := NewCollection[item](NewEntityStore(kv, fixedClock(testNow)), "items", errItemNotFound)

	err := c.Insert(context.Background(), item{ID: "2", Name: "b"})

	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestCollection_CRUD(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKVStore()
	c := NewCollection[item](NewEntityStore(kv, fixedClock(testNow)), "items", errItemNotFound)

	require.NoError(t, c.Insert(ctx, item{ID: "1", Name: "a"}))
	require.NoError(t, c.Insert(ctx, item{ID: "2", Name: "b"}))

	got, err := c.Find(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Name)

	updated, err := c.Modify(ctx, "1", func(i *item) error {
		i.Name = "changed"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "changed", updated.Name)

	require.NoError(t, c.Delete(ctx, "2"))
	assert.Equal(t, []item{{ID: "1", Name: "changed"}}, c.ReadAll(ctx))

	_, err = c.Find(ctx, "2")
	assert.ErrorIs(t, err, errItemNotFound)
	assert.ErrorIs(t, c.Delete(ctx, "missing"), errItemNotFound)

	require.NoError(t, c.Clear(ctx))
	assert.Empty(t, c.ReadAll(ctx))
	raw, found, err := kv.Get(ctx, "items")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", raw)
}

func TestCollection_ModifyErrorAbortsWrite(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[item](NewEntityStore(NewMemoryKVStore(), fixedClock(testNow)), "items", errItemNotFound)
	require.NoError(t, c.Insert(ctx, item{ID: "1", Name: "a"}))

	_, err := c.Modify(ctx, "1", func(i *item) error {
		i.Name = "half-done"
		return domain.ErrValidation
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	got, err := c.Find(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)
}

func TestCollection_ConcurrentInsertsAreSerialized(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[item](NewEntityStore(NewMemoryKVStore(), fixedClock(testNow)), "items", errItemNotFound)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = c.Insert(ctx, item{ID: fmt.Sprintf("item-%d", n), Name: "x"})
		}(i)
	}
	wg.Wait()

	assert.Len(t, c.ReadAll(ctx), 50)
}

func TestEntityStore_AtomicRollsBack(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKVStore()
	store := NewEntityStore(kv, fixedClock(testNow))
	c := NewCollection[item](store, "items", errItemNotFound)
	require.NoError(t, c.Insert(ctx, item{ID: "1", Name: "a"}))

	err := store.Atomic(ctx, func(tx *EntityStore) error {
		txc := NewCollection[item](tx, "items", errItemNotFound)
		if err := txc.Insert(ctx, item{ID: "2", Name: "b"}); err != nil {
			return err
		}
		return errors.New("boom")
	})

	require.EqualError(t, err, "boom")
	assert.Len(t, c.ReadAll(ctx), 1)
}

func TestEntityStore_AtomicCommits(t *testing.T) {
	ctx := context.Background()
	store := NewEntityStore(NewMemoryKVStore(), fixedClock(testNow))
	c := NewCollection[item](store, "items", errItemNotFound)

	err := store.Atomic(ctx, func(tx *EntityStore) error {
		return NewCollection[item](tx, "items", errItemNotFound).Insert(ctx, item{ID: "1"})
	})

	require.NoError(t, err)
	assert.Len(t, c.ReadAll(ctx), 1)
}

func TestEntityStore_NewIDIsUniqueAndOrdered(t *testing.T) {
	store := NewEntityStore(NewMemoryKVStore(), nil)

	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 100; i++ {
		id := store.NewID()
		assert.False(t, seen[id])
		assert.Greater(t, id, prev)
		seen[id] = true
		prev = id
	}
}

func TestEntityStore_TouchIsStrictlyIncreasing(t *testing.T) {
	store := NewEntityStore(NewMemoryKVStore(), fixedClock(testNow))

	assert.True(t, store.touch(testNow).After(testNow))
	assert.Equal(t, testNow, store.touch(testNow.Add(-time.Hour)))
}

var _ ports.KVStore = (*portsmocks.MockKVStore)(nil)
