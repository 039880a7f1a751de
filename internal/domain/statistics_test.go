package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStreaks(t *testing.T) {
	tests := []struct {
		name            string
		dates           []string
		today           string
		expectedCurrent int
		expectedLongest int
	}{
		{"no records", nil, "2024-03-03", 0, 0},
		{"three days ending today", []string{"2024-03-01", "2024-03-02", "2024-03-03"}, "2024-03-03", 3, 3},
		{"three days long ago", []string{"2024-03-01", "2024-03-02", "2024-03-03"}, "2024-03-10", 0, 3},
		{"three days ending yesterday", []string{"2024-03-01", "2024-03-02", "2024-03-03"}, "2024-03-04", 3, 3},
		{"single date today", []string{"2024-03-03"}, "2024-03-03", 1, 1},
		{"single date yesterday", []string{"2024-03-02"}, "2024-03-03", 1, 1},
		{"single date older", []string{"2024-03-01"}, "2024-03-03", 0, 1},
		{"duplicates ignored", []string{"2024-03-02", "2024-03-02", "2024-03-03", "2024-03-03"}, "2024-03-03", 2, 2},
		{"unsorted input", []string{"2024-03-03", "2024-03-01", "2024-03-02"}, "2024-03-03", 3, 3},
		{"gap breaks run", []string{"2024-02-01", "2024-02-02", "2024-02-03", "2024-02-04", "2024-03-02", "2024-03-03"}, "2024-03-03", 2, 4},
		{"across month boundary", []string{"2024-02-28", "2024-02-29", "2024-03-01"}, "2024-03-01", 3, 3},
		{"unparsable dates skipped", []string{"bogus", "2024-03-03"}, "2024-03-03", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ComputeStreaks(tt.dates, tt.today)

			assert.Equal(t, tt.expectedCurrent, info.Current)
			assert.Equal(t, tt.expectedLongest, info.Longest)
		})
	}
}

func TestComputeStreaks_LastStudyDate(t *testing.T) {
	info := ComputeStreaks([]string{"2024-03-01", "2024-03-05", "2024-03-02"}, "2024-03-10")

	assert.Equal(t, "2024-03-05", info.LastStudyDate)
}

func TestNewStatistics_SeedsAllBuckets(t *testing.T) {
	stats := NewStatistics()

	assert.Len(t, stats.StudyTimeByCategory, len(Categories))
	assert.Len(t, stats.PromptsByLabel, len(PromptLabels))
	assert.Empty(t, stats.StudyTimeByDate)
	assert.Zero(t, stats.StudyTimeByCategory[CategoryPython])
}

func TestTrendPeriod_Days(t *testing.T) {
	assert.Equal(t, 7, PeriodWeek.Days())
	assert.Equal(t, 30, PeriodMonth.Days())
}
