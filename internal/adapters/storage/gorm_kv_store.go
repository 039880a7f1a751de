package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/paths"
	"github.com/renato0307/studycal/internal/ports"
)

const maxBusyRetries = 3

// GormKVStore implements ports.KVStore on a single GORM table
type GormKVStore struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.ClosableKVStore = (*GormKVStore)(nil)

// OpenKVStore opens the medium selected by databaseURL. A postgres:// or
// postgresql:// URL selects Postgres; anything else is treated as a SQLite
// file path, falling back to dbPath when databaseURL is empty.
func OpenKVStore(databaseURL, dbPath string) (*GormKVStore, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return NewPostgresKVStore(databaseURL)
	}
	if databaseURL != "" {
		dbPath = databaseURL
	}
	return NewSQLiteKVStore(dbPath)
}

// NewSQLiteKVStore opens (and creates if needed) a SQLite database at dbPath
func NewSQLiteKVStore(dbPath string) (*GormKVStore, error) {
	dbPath = paths.ExpandPath(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), newGormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets the CLI read while the reminder daemon holds the database
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	store, err := newGormKVStore(db)
	if err != nil {
		return nil, err
	}

	logging.Logger.Debug("SQLite store opened", "path", dbPath)
	return store, nil
}

// NewPostgresKVStore opens a Postgres database from a DSN or URL
func NewPostgresKVStore(dsn string) (*GormKVStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), newGormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store, err := newGormKVStore(db)
	if err != nil {
		return nil, err
	}

	logging.Logger.Debug("Postgres store opened")
	return store, nil
}

func newGormConfig() *gorm.Config {
	return &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	}
}

func newGormKVStore(db *gorm.DB) (*GormKVStore, error) {
	if err := db.AutoMigrate(&KVEntryModel{}); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("failed to migrate kv_entries schema: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &GormKVStore{db: db}, nil
}

// Get returns the value stored under key
func (s *GormKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry KVEntryModel
	err := withRetry(func() error {
		return s.db.WithContext(ctx).Where("entry_key = ?", key).Take(&entry).Error
	}, maxBusyRetries)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to read %s: %v", domain.ErrStorage, key, err)
	}
	return entry.Value, true, nil
}

// Set upserts value under key
func (s *GormKVStore) Set(ctx context.Context, key, value string) error {
	entry := KVEntryModel{Key: key, Value: value}
	err := withRetry(func() error {
		return s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&entry).Error
	}, maxBusyRetries)
	if err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", domain.ErrStorage, key, err)
	}
	return nil
}

// Remove deletes key
func (s *GormKVStore) Remove(ctx context.Context, key string) error {
	err := withRetry(func() error {
		return s.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&KVEntryModel{}).Error
	}, maxBusyRetries)
	if err != nil {
		return fmt.Errorf("%w: failed to remove %s: %v", domain.ErrStorage, key, err)
	}
	return nil
}

// Atomic runs fn inside a database transaction
func (s *GormKVStore) Atomic(ctx context.Context, fn func(tx ports.KVStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormKVStore{db: tx})
	})
}

// Close closes the database connection
func (s *GormKVStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withRetry retries operations on SQLITE_BUSY with linear backoff. Other
// errors are returned immediately.
func withRetry(fn func() error, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			logging.Logger.Debug("Database busy, retrying", "attempt", i+1)
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries: %w", maxRetries, err)
}
