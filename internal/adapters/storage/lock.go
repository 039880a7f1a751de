package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/renato0307/studycal/internal/logging"
)

// ErrLocked is returned when another process holds the data lock
var ErrLocked = errors.New("studycal data directory is locked by another process")

// FileLock is an exclusive advisory lock on a file
type FileLock struct {
	file *os.File
}

// AcquireLock takes the lock at path without blocking. It fails with
// ErrLocked when another process holds it.
func AcquireLock(path string) (*FileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := lockFile(file); err != nil {
		file.Close()
		if errors.Is(err, errWouldBlock) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}

	logging.Logger.Debug("Lock acquired", "path", path)
	return &FileLock{file: file}, nil
}

// Release unlocks and closes the lock file
func (l *FileLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	defer func() {
		l.file.Close()
		l.file = nil
	}()
	return unlockFile(l.file)
}
