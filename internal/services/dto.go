package services

import (
	"time"

	"github.com/renato0307/studycal/internal/domain"
)

// RecordStudyParams contains parameters for logging a study session
type RecordStudyParams struct {
	CompletedAt time.Time
	Duration    int
	Memo        string
	ScheduleID  string
	URLs        []string
}

// RecordStudyResult contains the stored record and, when the record is
// linked to a schedule, that schedule after completion
type RecordStudyResult struct {
	Record   *domain.Record
	Schedule *domain.Schedule
}

// ConflictQuery describes a proposed time slot
type ConflictQuery struct {
	Date      string
	EndTime   string
	ExcludeID string
	StartTime string
}
