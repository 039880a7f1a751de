package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/renato0307/studycal/internal/paths"
)

// Logger is shared by every package. It discards records until Initialize
// turns debug output on.
var Logger = discard()

var debugEnabled bool

// Options controls where debug logs go
type Options struct {
	// Debug writes JSON logs to a fresh file under LogDir
	Debug bool
	// File is a fixed log path; it implies Debug and skips pruning
	File string
	// MaxFiles caps the *.log files kept in LogDir, 0 keeps all
	MaxFiles int
}

// Initialize configures Logger from opts and returns the log file path,
// or "" when logging stays off
func Initialize(opts Options) (string, error) {
	if !opts.Debug && opts.File == "" {
		Logger = discard()
		debugEnabled = false
		return "", nil
	}

	path := opts.File
	if path == "" {
		dir := LogDir()
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}
		if err := pruneLogs(dir, opts.MaxFiles); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to prune old logs: %v\n", err)
		}
		path = filepath.Join(dir, uuid.NewString()+".log")
	} else if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	debugEnabled = true

	Logger.Info("Debug logging initialized", "log_file", path, "pid", os.Getpid())
	fmt.Fprintf(os.Stderr, "Debug mode enabled. Logs: %s\n", path)
	return path, nil
}

// DebugEnabled reports whether Initialize turned logging on
func DebugEnabled() bool {
	return debugEnabled
}

// LogDir returns $STUDYCAL_HOME/logs
func LogDir() string {
	return filepath.Join(paths.GetHome(), "logs")
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// pruneLogs deletes the oldest *.log files so that, with the file about to
// be created, at most maxFiles remain
func pruneLogs(dir string, maxFiles int) error {
	if maxFiles <= 0 {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFile struct {
		modTime time.Time
		path    string
	}
	var logs []logFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		logs = append(logs, logFile{modTime: info.ModTime(), path: filepath.Join(dir, e.Name())})
	}

	excess := len(logs) - maxFiles + 1
	if excess <= 0 {
		return nil
	}

	slices.SortFunc(logs, func(a, b logFile) int { return a.modTime.Compare(b.modTime) })

	var errs []error
	for _, l := range logs[:excess] {
		if err := os.Remove(l.path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
