package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// BuildVersion is stamped into the test binary so tests can tell it apart
// from an installed studycal
const BuildVersion = "v0.0.0-integration"

const commandTimeout = 30 * time.Second

var (
	binaryPath string
	buildErr   error
	buildOnce  sync.Once
)

// CommandResult holds the outcome of one CLI invocation
type CommandResult struct {
	Args     []string
	ExitCode int
	Stderr   string
	Stdout   string
}

// BuildBinary compiles studycal once per test run. Call it from TestMain.
func BuildBinary() (string, error) {
	buildOnce.Do(func() {
		root, err := moduleRoot()
		if err != nil {
			buildErr = fmt.Errorf("failed to locate module root: %w", err)
			return
		}

		dir, err := os.MkdirTemp("", "studycal-integration-*")
		if err != nil {
			buildErr = err
			return
		}
		binaryPath = filepath.Join(dir, "studycal")

		ldflags := "-X github.com/renato0307/studycal/internal/version.Version=" + BuildVersion
		cmd := exec.Command("go", "build", "-ldflags", ldflags, "-o", binaryPath, ".")
		cmd.Dir = root
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			buildErr = fmt.Errorf("failed to build studycal: %w", err)
		}
	})
	return binaryPath, buildErr
}

// CleanupBinary removes the compiled binary. Call it from TestMain.
func CleanupBinary() {
	if binaryPath == "" {
		return
	}
	if err := os.RemoveAll(filepath.Dir(binaryPath)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to remove %s: %v\n", filepath.Dir(binaryPath), err)
	}
}

// RunCommand runs studycal with args inside env. Stdin is empty, so any
// confirmation prompt fails instead of hanging.
func RunCommand(tb testing.TB, env *TestEnvironment, args ...string) CommandResult {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binaryPath, args...)
	cmd.Env = env.Environ()
	cmd.Stdin = strings.NewReader("")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := CommandResult{Args: args}
	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		tb.Logf("studycal %v timed out after %v", args, commandTimeout)
		result.ExitCode = -1
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		tb.Logf("studycal %v could not run: %v", args, err)
		result.ExitCode = -1
	}

	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	return result
}

// RunJSON runs a command that prints JSON, requires success and decodes
// stdout into target
func RunJSON(tb testing.TB, env *TestEnvironment, target any, args ...string) {
	tb.Helper()
	result := RunCommand(tb, env, args...)
	AssertSuccess(tb, result)
	AssertValidJSON(tb, result, target)
}

func moduleRoot() (string, error) {
	out, err := exec.Command("go", "env", "GOMOD").Output()
	if err != nil {
		return "", err
	}
	gomod := strings.TrimSpace(string(out))
	if gomod == "" || gomod == os.DevNull {
		return "", errors.New("not inside a Go module")
	}
	return filepath.Dir(gomod), nil
}
