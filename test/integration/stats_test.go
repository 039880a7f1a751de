package integration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/studycal/test/integration/harness"
)

type statisticsJSON struct {
	CurrentStreak       int            `json:"currentStreak"`
	LongestStreak       int            `json:"longestStreak"`
	PromptsByLabel      map[string]int `json:"promptsByLabel"`
	StudyTimeByCategory map[string]int `json:"studyTimeByCategory"`
	StudyTimeByDate     map[string]int `json:"studyTimeByDate"`
	TotalPrompts        int            `json:"totalPrompts"`
	TotalStudyTime      int            `json:"totalStudyTime"`
}

func showStats(t *testing.T, env *harness.TestEnvironment, args ...string) statisticsJSON {
	t.Helper()
	var stats statisticsJSON
	harness.RunJSON(t, env, &stats, append([]string{"stats", "show", "--format", "json"}, args...)...)
	return stats
}

func TestStats(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  bool
		validate func(t *testing.T, result harness.CommandResult)
	}{
		{
			name: "stats with no data",
			args: []string{"stats"},
			validate: func(t *testing.T, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "Study statistics")
				harness.AssertStdoutContains(t, result, "Total study time: 0m")
			},
		},
		{
			name: "chart format with no data",
			args: []string{"stats", "show", "--format=chart"},
			validate: func(t *testing.T, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "No study time recorded yet.")
			},
		},
		{
			name:    "invalid format",
			args:    []string{"stats", "show", "--format=invalid"},
			wantErr: true,
			validate: func(t *testing.T, result harness.CommandResult) {
				harness.AssertStderrContains(t, result, "format")
			},
		},
		{
			name:    "inverted range",
			args:    []string{"stats", "show", "--from", "2030-02-01", "--to", "2030-01-01"},
			wantErr: true,
		},
		{
			name: "streak with no data",
			args: []string{"stats", "streak"},
			validate: func(t *testing.T, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "Longest streak: 0 days")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := harness.NewTestEnvironment(t)

			result := harness.RunCommand(t, env, tt.args...)

			if tt.wantErr {
				harness.AssertFailure(t, result)
			} else {
				harness.AssertSuccess(t, result)
			}
			if tt.validate != nil {
				tt.validate(t, result)
			}
		})
	}
}

func TestStats_Aggregates(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	harness.AssertSuccess(t, harness.RunCommand(t, env,
		"schedules", "add", "Prompt patterns", "--date", "2030-01-07", "-c", "prompt_engineering"))
	schedules := listSchedules(t, env, "schedules", "list")
	require.Len(t, schedules, 1)

	harness.AssertSuccess(t, harness.RunCommand(t, env, "records", "add", "30", "--at", "2030-01-07 10:00", "--schedule", schedules[0].ID))
	harness.AssertSuccess(t, harness.RunCommand(t, env, "records", "add", "45", "--at", "2030-01-08 10:00"))
	harness.AssertSuccess(t, harness.RunCommand(t, env, "prompts", "add", "Explain closures with an example", "-l", "claude"))

	stats := showStats(t, env)
	assert.Equal(t, 75, stats.TotalStudyTime)
	assert.Equal(t, 30, stats.StudyTimeByCategory["prompt_engineering"])
	assert.Equal(t, 30, stats.StudyTimeByDate["2030-01-07"])
	assert.Equal(t, 45, stats.StudyTimeByDate["2030-01-08"])
	assert.Equal(t, 1, stats.TotalPrompts)
	assert.Equal(t, 1, stats.PromptsByLabel["claude"])

	ranged := showStats(t, env, "--from", "2030-01-08", "--to", "2030-01-08")
	assert.Equal(t, 45, ranged.TotalStudyTime)
	assert.Equal(t, 0, ranged.CurrentStreak)
	assert.Equal(t, 1, ranged.TotalPrompts)
}

func TestStats_StreakAndReset(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	harness.AssertSuccess(t, harness.RunCommand(t, env, "records", "add", "30", "--at", harness.DaysFromToday(-1)+" 00:01"))
	harness.AssertSuccess(t, harness.RunCommand(t, env, "records", "add", "30", "--at", harness.Today()+" 00:01"))

	result := harness.RunCommand(t, env, "stats", "streak")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Longest streak: 2 days")
	harness.AssertStdoutContains(t, result, "Last studied: "+harness.Today())

	stats := showStats(t, env)
	assert.Equal(t, 2, stats.CurrentStreak)

	result = harness.RunCommand(t, env, "stats", "reset", "--force")
	harness.AssertSuccess(t, result)

	stats = showStats(t, env)
	assert.Equal(t, 0, stats.TotalStudyTime)
	assert.Equal(t, 0, stats.CurrentStreak)
}

func TestStats_GoalAndPattern(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	harness.AssertSuccess(t, harness.RunCommand(t, env, "records", "add", "90", "--at", "2030-01-07 10:00"))

	result := harness.RunCommand(t, env, "stats", "goal", "--from", "2030-01-07", "--to", "2030-01-08", "--daily", "60")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Met on 1 of 2 days (50%)")

	result = harness.RunCommand(t, env, "stats", "pattern", "--from", "2030-01-01", "--to", "2030-01-31")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Monday")
}
