package services

import (
	"context"
	"fmt"
	"maps"
	"math"
	"sync"
	"time"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/ports"
)

const (
	// overallRecordLimit bounds the records aggregated into overall statistics
	overallRecordLimit = 1000
	// statisticsCacheTTL is how long overall statistics are reused
	statisticsCacheTTL = 60 * time.Second
	// streakWindowDays is how far back streaks look
	streakWindowDays = 365
	// trendThreshold is the change in percent that counts as a trend
	trendThreshold = 10
)

// StatisticsService derives aggregate statistics from records and prompts
type StatisticsService struct {
	cache       *domain.Statistics
	cacheMu     sync.RWMutex
	clock       ports.Clock
	lastRefresh time.Time
	prompts     ports.PromptReader
	records     ports.RecordReader
	schedules   ports.ScheduleReader
	settings    ports.SettingsReader
	snapshots   ports.StatisticsCache
}

// NewStatisticsService creates a new StatisticsService
func NewStatisticsService(
	records ports.RecordReader,
	prompts ports.PromptReader,
	schedules ports.ScheduleReader,
	settings ports.SettingsReader,
	snapshots ports.StatisticsCache,
	clock ports.Clock,
) *StatisticsService {
	if clock == nil {
		clock = ports.SystemClock()
	}
	return &StatisticsService{
		clock:     clock,
		prompts:   prompts,
		records:   records,
		schedules: schedules,
		settings:  settings,
		snapshots: snapshots,
	}
}

// GetOverallStatistics aggregates the latest records and every prompt (cached)
func (s *StatisticsService) GetOverallStatistics(ctx context.Context) (domain.Statistics, error) {
	s.cacheMu.RLock()
	if s.cache != nil && s.clock.Now().Sub(s.lastRefresh) < statisticsCacheTTL {
		stats := cloneStatistics(*s.cache)
		s.cacheMu.RUnlock()
		return stats, nil
	}
	s.cacheMu.RUnlock()

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	// Double-check after acquiring write lock
	if s.cache != nil && s.clock.Now().Sub(s.lastRefresh) < statisticsCacheTTL {
		return cloneStatistics(*s.cache), nil
	}

	logging.Logger.Debug("Computing overall statistics")

	records, err := s.records.FindLatest(ctx, overallRecordLimit)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("failed to load records: %w", err)
	}
	stats, err := s.aggregate(ctx, records)
	if err != nil {
		return domain.Statistics{}, err
	}

	streak, err := s.GetStreakInfo(ctx)
	if err != nil {
		return domain.Statistics{}, err
	}
	stats.CurrentStreak = streak.Current
	stats.LongestStreak = streak.Longest

	s.cache = &stats
	s.lastRefresh = s.clock.Now()

	logging.Logger.Debug("Overall statistics computed",
		"records", len(records),
		"total_study_time", stats.TotalStudyTime,
		"current_streak", stats.CurrentStreak)

	return cloneStatistics(stats), nil
}

// Invalidate drops the in-process statistics cache
func (s *StatisticsService) Invalidate() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cache = nil
}

// GetStatisticsByDateRange aggregates records completed within [start, end]
// and every prompt. Streaks are left at zero.
func (s *StatisticsService) GetStatisticsByDateRange(ctx context.Context, start, end string) (domain.Statistics, error) {
	if err := domain.ValidateRange(start, end); err != nil {
		return domain.Statistics{}, err
	}

	records, err := s.records.FindByDateRange(ctx, start, end)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("failed to load records: %w", err)
	}
	return s.aggregate(ctx, records)
}

// GetStreakInfo computes streaks over the last year of records
func (s *StatisticsService) GetStreakInfo(ctx context.Context) (domain.StreakInfo, error) {
	today := domain.FormatDate(s.clock.Now())
	from, err := domain.AddDays(today, -streakWindowDays)
	if err != nil {
		return domain.StreakInfo{}, err
	}

	records, err := s.records.FindByDateRange(ctx, from, today)
	if err != nil {
		return domain.StreakInfo{}, fmt.Errorf("failed to load records: %w", err)
	}

	dates := make([]string, 0, len(records))
	for _, r := range records {
		dates = append(dates, r.CompletedDate())
	}
	return domain.ComputeStreaks(dates, today), nil
}

// UpdateStatisticsCache recomputes overall statistics and persists the snapshot
func (s *StatisticsService) UpdateStatisticsCache(ctx context.Context) (domain.Statistics, error) {
	s.Invalidate()

	stats, err := s.GetOverallStatistics(ctx)
	if err != nil {
		return domain.Statistics{}, err
	}
	if err := s.snapshots.Save(ctx, stats); err != nil {
		logging.Logger.Error("Failed to save statistics snapshot", "error", err)
		return domain.Statistics{}, fmt.Errorf("failed to save statistics snapshot: %w", err)
	}

	logging.Logger.Info("Statistics snapshot updated", "total_study_time", stats.TotalStudyTime)
	return stats, nil
}

// GetCachedStatistics returns the persisted snapshot. It is for display only.
func (s *StatisticsService) GetCachedStatistics(ctx context.Context) (*domain.Statistics, error) {
	return s.snapshots.Load(ctx)
}

// ClearStatistics removes the persisted snapshot and the in-process cache
func (s *StatisticsService) ClearStatistics(ctx context.Context) error {
	s.Invalidate()
	if err := s.snapshots.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear statistics snapshot: %w", err)
	}
	return nil
}

// GetWeeklyPattern averages session length per weekday for records in [start, end]
func (s *StatisticsService) GetWeeklyPattern(ctx context.Context, start, end string) (domain.WeeklyPattern, error) {
	records, err := s.recordsInRange(ctx, start, end)
	if err != nil {
		return domain.WeeklyPattern{}, err
	}

	var totals, counts [7]int
	for _, r := range records {
		day := r.CompletedAt.Weekday()
		totals[day] += r.Duration
		counts[day]++
	}

	pattern := domain.WeeklyPattern{ByWeekday: make(map[time.Weekday]int, 7)}
	var best, sum float64
	var studied int
	for day := time.Sunday; day <= time.Saturday; day++ {
		var avg float64
		if counts[day] > 0 {
			avg = float64(totals[day]) / float64(counts[day])
		}
		pattern.ByWeekday[day] = int(math.Round(avg))
		if avg > best {
			best = avg
			pattern.MostProductive = day
		}
		if avg > 0 {
			sum += avg
			studied++
		}
	}

	if studied > 0 {
		pattern.StudiedAnything = true
		pattern.AveragePerDay = int(math.Round(sum / float64(studied)))
	}
	return pattern, nil
}

// GetGoalAchievement reports the days in [start, end] whose study time met
// dailyGoal. A non-positive goal uses the default study duration setting.
func (s *StatisticsService) GetGoalAchievement(ctx context.Context, start, end string, dailyGoal int) (domain.GoalAchievement, error) {
	if dailyGoal <= 0 {
		settings, err := s.settings.Get(ctx)
		if err != nil {
			return domain.GoalAchievement{}, fmt.Errorf("failed to load settings: %w", err)
		}
		dailyGoal = settings.DefaultStudyDuration
	}

	records, err := s.recordsInRange(ctx, start, end)
	if err != nil {
		return domain.GoalAchievement{}, err
	}

	daily := make(map[string]int)
	for _, r := range records {
		daily[r.CompletedDate()] += r.Duration
	}

	result := domain.GoalAchievement{DailyGoal: dailyGoal, TotalDays: len(daily)}
	for _, total := range daily {
		if total >= dailyGoal {
			result.DaysAchieved++
		}
	}
	result.Rate = percent(result.DaysAchieved, result.TotalDays)
	return result, nil
}

// GetProgressTrend compares the later part of the period ending today with
// the earlier part. The later part is the shorter one for odd periods.
func (s *StatisticsService) GetProgressTrend(ctx context.Context, period domain.TrendPeriod) (domain.ProgressTrend, error) {
	days := period.Days()
	today := domain.FormatDate(s.clock.Now())
	from, err := domain.AddDays(today, -(days - 1))
	if err != nil {
		return domain.ProgressTrend{}, err
	}

	records, err := s.records.FindByDateRange(ctx, from, today)
	if err != nil {
		return domain.ProgressTrend{}, fmt.Errorf("failed to load records: %w", err)
	}

	byDate := make(map[string]int)
	for _, r := range records {
		byDate[r.CompletedDate()] += r.Duration
	}

	trend := domain.ProgressTrend{Period: period, DailyTotals: make([]int, days), Trend: domain.TrendStable}
	split := days - days/2
	for i := range days {
		date, _ := domain.AddDays(from, i)
		total := byDate[date]
		trend.DailyTotals[i] = total
		if i < split {
			trend.FirstHalf += total
		} else {
			trend.SecondHalf += total
		}
	}

	if trend.FirstHalf > 0 {
		change := float64(trend.SecondHalf-trend.FirstHalf) / float64(trend.FirstHalf) * 100
		trend.ChangePercent = int(math.Round(change))
	}
	switch {
	case trend.ChangePercent > trendThreshold:
		trend.Trend = domain.TrendImproving
	case trend.ChangePercent < -trendThreshold:
		trend.Trend = domain.TrendDeclining
	}
	return trend, nil
}

func (s *StatisticsService) recordsInRange(ctx context.Context, start, end string) ([]domain.Record, error) {
	if err := domain.ValidateRange(start, end); err != nil {
		return nil, err
	}
	records, err := s.records.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return records, nil
}

// aggregate totals records and prompts. Records whose schedule cannot be
// resolved count toward the total and the per-date sums only.
func (s *StatisticsService) aggregate(ctx context.Context, records []domain.Record) (domain.Statistics, error) {
	prompts, err := s.prompts.FindAll(ctx)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("failed to load prompts: %w", err)
	}
	schedules, err := s.schedules.FindAll(ctx)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("failed to load schedules: %w", err)
	}

	stats := domain.NewStatistics()
	index := newScheduleIndex(schedules)
	for _, r := range records {
		stats.TotalStudyTime += r.Duration
		stats.StudyTimeByDate[r.CompletedDate()] += r.Duration
		if schedule, ok := index.lookup(r.ScheduleID); ok {
			stats.StudyTimeByCategory[schedule.Category] += r.Duration
		}
	}

	stats.TotalPrompts = len(prompts)
	for _, p := range prompts {
		stats.PromptsByLabel[p.Label]++
	}
	return stats, nil
}

// percent returns part/whole as a rounded percentage, 0 when whole is 0
func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func cloneStatistics(s domain.Statistics) domain.Statistics {
	s.StudyTimeByCategory = maps.Clone(s.StudyTimeByCategory)
	s.StudyTimeByDate = maps.Clone(s.StudyTimeByDate)
	s.PromptsByLabel = maps.Clone(s.PromptsByLabel)
	return s
}
