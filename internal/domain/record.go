package domain

import (
	"slices"
	"time"
)

// Record is evidence that a study session took place
type Record struct {
	ID          string    `json:"id"`
	ScheduleID  string    `json:"scheduleId"`
	CompletedAt time.Time `json:"completedAt" validate:"required"`
	Duration    int       `json:"duration" validate:"gt=0"`
	Memo        string    `json:"memo,omitempty"`
	URLs        []string  `json:"urls,omitempty" validate:"omitempty,dive,required"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EntityID returns the record id
func (r Record) EntityID() string {
	return r.ID
}

// Validate checks field constraints
func (r Record) Validate() error {
	return validateStruct(r)
}

// CompletedDate returns the calendar day portion of CompletedAt
func (r Record) CompletedDate() string {
	return FormatDate(r.CompletedAt)
}

// Clone returns a deep copy
func (r Record) Clone() Record {
	r.URLs = slices.Clone(r.URLs)
	return r
}

// RecordUpdate is a partial record change. Nil fields are left untouched.
type RecordUpdate struct {
	CompletedAt *time.Time
	Duration    *int
	Memo        *string
	ScheduleID  *string
	URLs        *[]string
}

// Apply merges the update into r
func (u RecordUpdate) Apply(r *Record) {
	if u.CompletedAt != nil {
		r.CompletedAt = *u.CompletedAt
	}
	if u.Duration != nil {
		r.Duration = *u.Duration
	}
	if u.Memo != nil {
		r.Memo = *u.Memo
	}
	if u.ScheduleID != nil {
		r.ScheduleID = *u.ScheduleID
	}
	if u.URLs != nil {
		r.URLs = slices.Clone(*u.URLs)
	}
}
