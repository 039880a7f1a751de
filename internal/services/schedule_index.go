package services

import "github.com/renato0307/studycal/internal/domain"

// scheduleIndex resolves record schedule ids to schedules in memory
type scheduleIndex map[string]domain.Schedule

func newScheduleIndex(schedules []domain.Schedule) scheduleIndex {
	index := make(scheduleIndex, len(schedules))
	for _, s := range schedules {
		index[s.ID] = s
	}
	return index
}

// lookup finds the schedule for id. Occurrence ids resolve to their base.
func (x scheduleIndex) lookup(id string) (domain.Schedule, bool) {
	if id == "" {
		return domain.Schedule{}, false
	}
	if s, ok := x[id]; ok {
		return s, true
	}
	if base, _, ok := domain.SplitOccurrenceID(id); ok {
		s, found := x[base]
		return s, found
	}
	return domain.Schedule{}, false
}
