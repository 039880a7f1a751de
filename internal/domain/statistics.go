package domain

import (
	"slices"
	"time"
)

// Statistics is an aggregate view derived from records and prompts
type Statistics struct {
	TotalStudyTime      int                 `json:"totalStudyTime"`
	StudyTimeByCategory map[Category]int    `json:"studyTimeByCategory"`
	StudyTimeByDate     map[string]int      `json:"studyTimeByDate"`
	CurrentStreak       int                 `json:"currentStreak"`
	LongestStreak       int                 `json:"longestStreak"`
	TotalPrompts        int                 `json:"totalPrompts"`
	PromptsByLabel      map[PromptLabel]int `json:"promptsByLabel"`
}

// NewStatistics returns empty statistics with every category and label present
func NewStatistics() Statistics {
	s := Statistics{
		StudyTimeByCategory: make(map[Category]int, len(Categories)),
		StudyTimeByDate:     make(map[string]int),
		PromptsByLabel:      make(map[PromptLabel]int, len(PromptLabels)),
	}
	for _, c := range Categories {
		s.StudyTimeByCategory[c] = 0
	}
	for _, l := range PromptLabels {
		s.PromptsByLabel[l] = 0
	}
	return s
}

// StreakInfo holds consecutive study day counts
type StreakInfo struct {
	Current       int
	LastStudyDate string
	Longest       int
}

// ComputeStreaks derives streaks from calendar days with at least one record.
// Duplicate and unparsable dates are ignored. The current streak only counts
// when today or yesterday has activity; today wins when both do.
func ComputeStreaks(dates []string, today string) StreakInfo {
	seen := make(map[int64]bool, len(dates))
	days := make([]int64, 0, len(dates))
	var last string
	for _, d := range dates {
		t, err := ParseDate(d)
		if err != nil {
			continue
		}
		n := dayNumber(t)
		if seen[n] {
			continue
		}
		seen[n] = true
		days = append(days, n)
		if d > last {
			last = d
		}
	}
	if len(days) == 0 {
		return StreakInfo{}
	}
	slices.Sort(days)

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i]-days[i-1] == 1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	info := StreakInfo{Longest: longest, LastStudyDate: last}

	todayTime, err := ParseDate(today)
	if err != nil {
		return info
	}
	anchor := dayNumber(todayTime)
	if !seen[anchor] {
		anchor--
	}
	for d := anchor; seen[d]; d-- {
		info.Current++
	}

	return info
}

// WeeklyPattern is the distribution of study time over weekdays
type WeeklyPattern struct {
	AveragePerDay   int
	ByWeekday       map[time.Weekday]int
	MostProductive  time.Weekday
	StudiedAnything bool
}

// GoalAchievement reports how often a daily study goal was met
type GoalAchievement struct {
	DailyGoal    int
	DaysAchieved int
	Rate         int
	TotalDays    int
}

// Trend is the direction of recent study time
type Trend string

const (
	TrendDeclining Trend = "declining"
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
)

// TrendPeriod is the window of a progress trend
type TrendPeriod string

const (
	PeriodMonth TrendPeriod = "month"
	PeriodWeek  TrendPeriod = "week"
)

// Days returns the number of days covered by the period
func (p TrendPeriod) Days() int {
	if p == PeriodMonth {
		return 30
	}
	return 7
}

// ProgressTrend compares the two halves of a period
type ProgressTrend struct {
	ChangePercent int
	DailyTotals   []int
	FirstHalf     int
	Period        TrendPeriod
	SecondHalf    int
	Trend         Trend
}
