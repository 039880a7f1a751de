package domain

import (
	"cmp"
	"slices"
	"time"
)

// ExpandOccurrences materializes the occurrences of s within [start, end].
//
// A schedule without a known recurrence rule is returned unchanged when its
// date falls inside the range. A repeating schedule is walked forward from
// its own date until the walk passes end or the pattern's end date. Each
// occurrence is a read-only copy whose id is OccurrenceID(s.ID, date); it is
// never persisted and cannot be looked up by id.
//
// Monthly steps use calendar arithmetic, so a schedule on the 31st drifts
// when it crosses a shorter month (Jan 31 -> Mar 2 -> Apr 2).
//
// A custom pattern with no valid weekday yields ErrEmptyCustomDays and no
// occurrences.
func ExpandOccurrences(s Schedule, start, end string) ([]Schedule, error) {
	if !s.IsRepeating() {
		if s.Date >= start && s.Date <= end {
			return []Schedule{s.Clone()}, nil
		}
		return nil, nil
	}

	p := s.RepeatPattern
	var weekdays map[time.Weekday]bool
	if p.Type == RepeatCustom {
		weekdays = weekdaySet(p.DaysOfWeek)
		if len(weekdays) == 0 {
			return nil, ErrEmptyCustomDays
		}
	}

	limit := end
	if p.EndDate != "" && p.EndDate < limit {
		limit = p.EndDate
	}

	current, err := ParseDate(s.Date)
	if err != nil {
		return nil, err
	}
	last, err := ParseDate(limit)
	if err != nil {
		return nil, err
	}

	var occurrences []Schedule
	for !current.After(last) {
		date := FormatDate(current)
		if date >= start {
			occ := s.Clone()
			occ.ID = OccurrenceID(s.ID, date)
			occ.Date = date
			occurrences = append(occurrences, occ)
		}
		current = nextOccurrence(current, *p, weekdays)
	}

	return occurrences, nil
}

// nextOccurrence advances one step of the pattern
func nextOccurrence(t time.Time, p RepeatPattern, weekdays map[time.Weekday]bool) time.Time {
	interval := p.Interval
	if interval < 1 {
		interval = 1
	}

	switch p.Type {
	case RepeatDaily:
		return t.AddDate(0, 0, interval)
	case RepeatWeekly:
		return t.AddDate(0, 0, 7*interval)
	case RepeatMonthly:
		return t.AddDate(0, interval, 0)
	case RepeatCustom:
		for i := 1; i <= 7; i++ {
			next := t.AddDate(0, 0, i)
			if weekdays[next.Weekday()] {
				return next
			}
		}
	}
	return t.AddDate(0, 0, 1)
}

// weekdaySet keeps only indices in 0..6
func weekdaySet(days []int) map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		if d >= 0 && d <= 6 {
			set[time.Weekday(d)] = true
		}
	}
	return set
}

// SortSchedules orders schedules by date, then start time, then id
func SortSchedules(schedules []Schedule) {
	slices.SortStableFunc(schedules, func(a, b Schedule) int {
		return cmp.Or(
			cmp.Compare(a.Date, b.Date),
			cmp.Compare(a.StartTime, b.StartTime),
			cmp.Compare(a.ID, b.ID),
		)
	})
}
