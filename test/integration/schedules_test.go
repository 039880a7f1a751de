package integration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/studycal/test/integration/harness"
)

type scheduleJSON struct {
	Category      string `json:"category"`
	Date          string `json:"date"`
	ID            string `json:"id"`
	IsCompleted   bool   `json:"isCompleted"`
	RepeatPattern *struct {
		Type string `json:"type"`
	} `json:"repeatPattern"`
	StartTime string `json:"startTime"`
	Title     string `json:"title"`
}

func listSchedules(t *testing.T, env *harness.TestEnvironment, args ...string) []scheduleJSON {
	t.Helper()
	var schedules []scheduleJSON
	harness.RunJSON(t, env, &schedules, append(args, "--format", "json")...)
	return schedules
}

func TestSchedulesAdd(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, env *harness.TestEnvironment)
		args     []string
		wantErr  bool
		validate func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult)
	}{
		{
			name:     "add simple schedule",
			args:     []string{"schedules", "add", "Decorators", "--date", "2030-01-07", "--start", "09:00", "--end", "10:00"},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "Schedule 'Decorators' created on 2030-01-07")

				schedules := listSchedules(t, env, "schedules", "list")
				require.Len(t, schedules, 1)
				assert.Equal(t, "Decorators", schedules[0].Title)
				assert.Equal(t, "python", schedules[0].Category)
				assert.Equal(t, "09:00", schedules[0].StartTime)
			},
		},
		{
			name:     "add with category",
			args:     []string{"schedules", "add", "Few-shot prompting", "--date", "2030-01-07", "-c", "prompt_engineering"},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				schedules := listSchedules(t, env, "schedules", "list", "--category", "prompt_engineering")
				require.Len(t, schedules, 1)
				assert.Equal(t, "prompt_engineering", schedules[0].Category)
			},
		},
		{
			name:    "invalid category fails",
			args:    []string{"schedules", "add", "Ownership", "-c", "rust"},
			wantErr: true,
		},
		{
			name:     "end before start fails",
			args:     []string{"schedules", "add", "Backwards", "--date", "2030-01-07", "--start", "10:00", "--end", "09:00"},
			wantErr:  true,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStderrContains(t, result, "Error")
				assert.Empty(t, listSchedules(t, env, "schedules", "list"))
			},
		},
		{
			name: "overlap is refused",
			setup: func(t *testing.T, env *harness.TestEnvironment) {
				harness.AssertSuccess(t, harness.RunCommand(t, env,
					"schedules", "add", "First", "--date", "2030-01-07", "--start", "09:00", "--end", "10:00"))
			},
			args:     []string{"schedules", "add", "Second", "--date", "2030-01-07", "--start", "09:30", "--end", "10:30"},
			wantErr:  true,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStderrContains(t, result, "overlaps another session")
				assert.Len(t, listSchedules(t, env, "schedules", "list"), 1)
			},
		},
		{
			name: "overlap allowed with flag",
			setup: func(t *testing.T, env *harness.TestEnvironment) {
				harness.AssertSuccess(t, harness.RunCommand(t, env,
					"schedules", "add", "First", "--date", "2030-01-07", "--start", "09:00", "--end", "10:00"))
			},
			args:     []string{"schedules", "add", "Second", "--date", "2030-01-07", "--start", "09:30", "--end", "10:30", "--allow-overlap"},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "Warning")
				assert.Len(t, listSchedules(t, env, "schedules", "list"), 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := harness.NewTestEnvironment(t)

			if tt.setup != nil {
				tt.setup(t, env)
			}

			result := harness.RunCommand(t, env, tt.args...)
			if tt.wantErr {
				harness.AssertFailure(t, result)
			} else {
				harness.AssertSuccess(t, result)
			}

			if tt.validate != nil {
				tt.validate(t, env, result)
			}
		})
	}
}

func TestSchedulesExpand(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	// 2030-01-07 is a Monday
	harness.AssertSuccess(t, harness.RunCommand(t, env,
		"schedules", "add", "Weekly review", "--date", "2030-01-07", "--repeat", "weekly"))

	occurrences := listSchedules(t, env, "schedules", "expand", "--from", "2030-01-01", "--to", "2030-01-31")

	require.Len(t, occurrences, 4)
	dates := make([]string, 0, len(occurrences))
	for _, o := range occurrences {
		dates = append(dates, o.Date)
	}
	assert.Equal(t, []string{"2030-01-07", "2030-01-14", "2030-01-21", "2030-01-28"}, dates)
	assert.Contains(t, occurrences[1].ID, "_2030-01-14")
}

func TestSchedulesExpandCustomDays(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	harness.AssertSuccess(t, harness.RunCommand(t, env,
		"schedules", "add", "Mon and Wed", "--date", "2030-01-07", "--repeat", "custom", "--days", "1,3", "--until", "2030-01-16"))

	occurrences := listSchedules(t, env, "schedules", "expand", "--from", "2030-01-01", "--to", "2030-01-31")

	dates := make([]string, 0, len(occurrences))
	for _, o := range occurrences {
		dates = append(dates, o.Date)
	}
	assert.Equal(t, []string{"2030-01-07", "2030-01-09", "2030-01-14", "2030-01-16"}, dates)
}

func TestSchedulesLifecycle(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	harness.AssertSuccess(t, harness.RunCommand(t, env,
		"schedules", "add", "Generators", "--date", "2030-01-07", "--start", "09:00"))
	schedules := listSchedules(t, env, "schedules", "list")
	require.Len(t, schedules, 1)
	id := schedules[0].ID

	result := harness.RunCommand(t, env, "schedules", "edit", id, "--title", "Iterators")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Schedule 'Iterators' updated")

	result = harness.RunCommand(t, env, "schedules", "view", id)
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Iterators")
	harness.AssertStdoutContains(t, result, "Reminder: off")

	result = harness.RunCommand(t, env, "schedules", "done", id)
	harness.AssertSuccess(t, result)
	schedules = listSchedules(t, env, "schedules", "list")
	require.Len(t, schedules, 1)
	assert.True(t, schedules[0].IsCompleted)

	result = harness.RunCommand(t, env, "schedules", "del", id, "--force")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "deleted")
	assert.Empty(t, listSchedules(t, env, "schedules", "list"))

	result = harness.RunCommand(t, env, "schedules", "view", id)
	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "not found")
}

func TestSchedulesConflict(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	harness.AssertSuccess(t, harness.RunCommand(t, env,
		"schedules", "add", "Morning", "--date", "2030-01-07", "--start", "09:00", "--end", "10:00"))

	result := harness.RunCommand(t, env, "schedules", "conflict", "2030-01-07", "09:30", "11:00")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "overlaps another session")

	result = harness.RunCommand(t, env, "schedules", "conflict", "2030-01-07", "10:00", "11:00")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "is free")
}

func TestSchedulesListEmpty(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "schedules")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "No schedules found.")
}
