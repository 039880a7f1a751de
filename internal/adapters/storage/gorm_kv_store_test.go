package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/renato0307/studycal/internal/ports"
)

func TestSQLiteKVStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t, t.TempDir())

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "k", "v1"))
	require.NoError(t, store.Set(ctx, "k", "v2"))

	value, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v2", value)

	require.NoError(t, store.Remove(ctx, "k"))
	require.NoError(t, store.Remove(ctx, "k"))

	_, found, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSQLiteKVStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewSQLiteKVStore(filepath.Join(dir, "studycal.db"))
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, KeySchedules, `[{"id":"1"}]`))
	require.NoError(t, first.Close())

	second := newSQLiteStore(t, dir)
	value, found, err := second.Get(ctx, KeySchedules)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, value)
}

func TestSQLiteKVStore_AtomicRollback(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t, t.TempDir())
	require.NoError(t, store.Set(ctx, "a", "before"))

	err := store.Atomic(ctx, func(tx ports.KVStore) error {
		if err := tx.Set(ctx, "a", "after"); err != nil {
			return err
		}
		if err := tx.Set(ctx, "b", "new"); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")

	value, _, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "before", value)
	_, found, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSQLiteKVStore_AtomicCommit(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t, t.TempDir())

	err := store.Atomic(ctx, func(tx ports.KVStore) error {
		if err := tx.Set(ctx, "a", "1"); err != nil {
			return err
		}
		return tx.Set(ctx, "b", "2")
	})
	require.NoError(t, err)

	a, _, _ := store.Get(ctx, "a")
	b, _, _ := store.Get(ctx, "b")
	assert.Equal(t, "1", a)
	assert.Equal(t, "2", b)
}

func TestOpenKVStore_FallsBackToPath(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenKVStore("", filepath.Join(dir, "default.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())
	assert.FileExists(t, filepath.Join(dir, "default.db"))

	store, err = OpenKVStore(filepath.Join(dir, "custom.db"), filepath.Join(dir, "default.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())
	assert.FileExists(t, filepath.Join(dir, "custom.db"))
}

func TestMemoryKVStore_AtomicRollback(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKVStore()
	require.NoError(t, store.Set(ctx, "a", "before"))

	err := store.Atomic(ctx, func(tx ports.KVStore) error {
		_ = tx.Set(ctx, "a", "after")
		_ = tx.Remove(ctx, "a")
		return errors.New("abort")
	})

	require.Error(t, err)
	value, found, _ := store.Get(ctx, "a")
	assert.True(t, found)
	assert.Equal(t, "before", value)
	assert.Equal(t, []string{"a"}, store.Keys())
}

func TestMemoryKVStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewMemoryKVStore().Set(ctx, "a", "b")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithRetry(t *testing.T) {
	busy := sqlite3.Error{Code: sqlite3.ErrBusy}
	tests := []struct {
		name      string
		failures  []error
		wantCalls int
		wantErr   error
	}{
		{name: "succeeds first time", wantCalls: 1},
		{name: "retries busy then succeeds", failures: []error{busy, busy}, wantCalls: 3},
		{name: "not found is not retried", failures: []error{gorm.ErrRecordNotFound}, wantCalls: 1, wantErr: gorm.ErrRecordNotFound},
		{name: "gives up after max retries", failures: []error{busy, busy, busy, busy}, wantCalls: 3, wantErr: busy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := withRetry(func() error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			}, 3)

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
