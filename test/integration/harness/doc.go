// Package harness provides utilities for integration testing the studycal CLI.
// It handles binary compilation, environment isolation, and command execution.
//
// Environment variables managed:
//   - STUDYCAL_HOME: Isolated per test (temp directory)
//   - STUDYCAL_*: Everything else is dropped so a developer config never leaks in
package harness
