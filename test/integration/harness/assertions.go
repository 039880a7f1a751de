package harness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSuccess verifies the command exited 0
func AssertSuccess(tb testing.TB, result CommandResult) {
	tb.Helper()
	require.Equal(tb, 0, result.ExitCode,
		"studycal %v failed with exit %d.\nStdout: %s\nStderr: %s",
		result.Args, result.ExitCode, result.Stdout, result.Stderr)
}

// AssertFailure verifies the command exited non-zero
func AssertFailure(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.NotEqual(tb, 0, result.ExitCode,
		"studycal %v was expected to fail.\nStdout: %s", result.Args, result.Stdout)
}

// AssertStdoutContains verifies stdout contains expected
func AssertStdoutContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stdout, expected, "studycal %v stdout", result.Args)
}

// AssertStderrContains verifies stderr contains expected
func AssertStderrContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stderr, expected, "studycal %v stderr", result.Args)
}

// AssertValidJSON decodes stdout into target
func AssertValidJSON(tb testing.TB, result CommandResult, target any) {
	tb.Helper()
	require.NoError(tb, json.Unmarshal([]byte(result.Stdout), target),
		"studycal %v did not print JSON.\nStdout: %s", result.Args, result.Stdout)
}

// AssertJSONField verifies stdout is a JSON object whose key equals expected
func AssertJSONField(tb testing.TB, result CommandResult, key string, expected any) {
	tb.Helper()
	var data map[string]any
	AssertValidJSON(tb, result, &data)
	assert.Equal(tb, expected, data[key], "JSON key %q", key)
}
