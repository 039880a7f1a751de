package harness

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestEnvironment provides an isolated test environment with its own STUDYCAL_HOME.
type TestEnvironment struct {
	Home     string
	extraEnv map[string]string
	tb       testing.TB
}

// NewTestEnvironment creates an isolated test environment with a temp STUDYCAL_HOME.
// The temp directory is automatically cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	return &TestEnvironment{
		Home:     tb.TempDir(),
		extraEnv: make(map[string]string),
		tb:       tb,
	}
}

// Environ returns environment variables configured for test isolation.
// Existing STUDYCAL_* variables are dropped and STUDYCAL_HOME points at
// the temp directory.
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+1+len(e.extraEnv))

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "STUDYCAL_") {
			continue
		}
		if _, override := e.extraEnv[key]; override {
			continue
		}
		env = append(env, kv)
	}

	env = append(env, "STUDYCAL_HOME="+e.Home)
	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}

	return env
}

// DBPath returns the path to the test database.
func (e *TestEnvironment) DBPath() string {
	return filepath.Join(e.Home, "studycal.db")
}

// ConfigPath returns the path to the test config file.
func (e *TestEnvironment) ConfigPath() string {
	return filepath.Join(e.Home, "config.json")
}

// WriteConfig stores cfg as config.json in the test home.
func (e *TestEnvironment) WriteConfig(cfg map[string]any) {
	e.tb.Helper()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		e.tb.Fatalf("Failed to encode config: %v", err)
	}
	if err := os.WriteFile(e.ConfigPath(), data, 0644); err != nil {
		e.tb.Fatalf("Failed to write config: %v", err)
	}
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	if e.extraEnv == nil {
		e.extraEnv = make(map[string]string)
	}
	e.extraEnv[key] = value
}

// Today returns the local date in YYYY-MM-DD form.
func Today() string {
	return time.Now().Format(time.DateOnly)
}

// DaysFromToday returns the local date n days away in YYYY-MM-DD form.
func DaysFromToday(n int) string {
	return time.Now().AddDate(0, 0, n).Format(time.DateOnly)
}
