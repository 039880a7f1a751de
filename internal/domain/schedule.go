package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Category is the study topic of a schedule
type Category string

const (
	CategoryAILiteracy        Category = "ai_literacy"
	CategoryPromptEngineering Category = "prompt_engineering"
	CategoryPython            Category = "python"
)

// Categories lists every category in display order
var Categories = []Category{CategoryPython, CategoryAILiteracy, CategoryPromptEngineering}

// DisplayName returns a human friendly category name
func (c Category) DisplayName() string {
	switch c {
	case CategoryPython:
		return "Python"
	case CategoryAILiteracy:
		return "AI Literacy"
	case CategoryPromptEngineering:
		return "Prompt Engineering"
	default:
		return string(c)
	}
}

// NotificationTime is the number of minutes a reminder fires before a session
type NotificationTime int

// NotificationTimes lists the allowed reminder offsets
var NotificationTimes = []NotificationTime{5, 15, 30, 60, 120, 180}

// DefaultNotificationTime is used when a schedule has reminders on but no offset
const DefaultNotificationTime NotificationTime = 30

// RepeatType is the recurrence rule of a schedule
type RepeatType string

const (
	RepeatCustom  RepeatType = "custom"
	RepeatDaily   RepeatType = "daily"
	RepeatMonthly RepeatType = "monthly"
	RepeatNone    RepeatType = "none"
	RepeatWeekly  RepeatType = "weekly"
)

// RepeatPattern describes how a schedule recurs
type RepeatPattern struct {
	Type       RepeatType `json:"type" validate:"required,oneof=none daily weekly monthly custom"`
	Interval   int        `json:"interval,omitempty" validate:"omitempty,min=1"`
	DaysOfWeek []int      `json:"daysOfWeek,omitempty" validate:"omitempty,dive,min=0,max=6"`
	EndDate    string     `json:"endDate,omitempty" validate:"omitempty,isodate"`
}

// Schedule is a planned study session
type Schedule struct {
	ID                    string           `json:"id"`
	Title                 string           `json:"title" validate:"required"`
	Description           string           `json:"description,omitempty"`
	Date                  string           `json:"date" validate:"required,isodate"`
	StartTime             string           `json:"startTime,omitempty" validate:"omitempty,clock"`
	EndTime               string           `json:"endTime,omitempty" validate:"omitempty,clock"`
	Category              Category         `json:"category" validate:"required,oneof=python ai_literacy prompt_engineering"`
	IsCompleted           bool             `json:"isCompleted"`
	IsNotificationEnabled bool             `json:"isNotificationEnabled"`
	NotificationTime      NotificationTime `json:"notificationTime,omitempty" validate:"omitempty,oneof=5 15 30 60 120 180"`
	RepeatPattern         *RepeatPattern   `json:"repeatPattern,omitempty"`
	CreatedAt             time.Time        `json:"createdAt"`
	UpdatedAt             time.Time        `json:"updatedAt"`
}

// EntityID returns the schedule id
func (s Schedule) EntityID() string {
	return s.ID
}

// Validate checks field constraints and cross-field rules
func (s Schedule) Validate() error {
	if err := validateStruct(s); err != nil {
		return err
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: title is blank", ErrValidation)
	}
	if s.StartTime != "" && s.EndTime != "" && s.EndTime <= s.StartTime {
		return fmt.Errorf("%w: end time %s is not after start time %s", ErrValidation, s.EndTime, s.StartTime)
	}
	if p := s.RepeatPattern; p != nil && p.Type == RepeatCustom && len(p.DaysOfWeek) == 0 {
		return ErrEmptyCustomDays
	}
	return nil
}

// IsRepeating reports whether the schedule has a known recurrence rule
func (s Schedule) IsRepeating() bool {
	if s.RepeatPattern == nil {
		return false
	}
	switch s.RepeatPattern.Type {
	case RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatCustom:
		return true
	default:
		return false
	}
}

// EffectiveStart returns the session start in loc, using fallbackClock when
// the schedule has no start time
func (s Schedule) EffectiveStart(loc *time.Location, fallbackClock string) (time.Time, error) {
	clock := s.StartTime
	if clock == "" {
		clock = fallbackClock
	}
	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, s.Date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid schedule start %s %s", ErrValidation, s.Date, clock)
	}
	return t, nil
}

// ReminderOffset returns the reminder offset, falling back to the default
func (s Schedule) ReminderOffset() time.Duration {
	n := s.NotificationTime
	if n <= 0 {
		n = DefaultNotificationTime
	}
	return time.Duration(n) * time.Minute
}

// Clone returns a deep copy
func (s Schedule) Clone() Schedule {
	if s.RepeatPattern != nil {
		p := *s.RepeatPattern
		p.DaysOfWeek = slices.Clone(p.DaysOfWeek)
		s.RepeatPattern = &p
	}
	return s
}

// OccurrenceID builds the derived id of a materialized occurrence
func OccurrenceID(baseID, date string) string {
	return baseID + "_" + date
}

// SplitOccurrenceID returns the base id and date of an occurrence id.
// ok is false when id is not an occurrence id.
func SplitOccurrenceID(id string) (baseID, date string, ok bool) {
	i := strings.LastIndex(id, "_")
	if i <= 0 || i == len(id)-1 {
		return "", "", false
	}
	if _, err := ParseDate(id[i+1:]); err != nil {
		return "", "", false
	}
	return id[:i], id[i+1:], true
}

// ScheduleUpdate is a partial schedule change. Nil fields are left untouched.
type ScheduleUpdate struct {
	Category              *Category
	Date                  *string
	Description           *string
	EndTime               *string
	IsCompleted           *bool
	IsNotificationEnabled *bool
	NotificationTime      *NotificationTime
	RepeatPattern         *RepeatPattern
	StartTime             *string
	Title                 *string
}

// Apply merges the update into s
func (u ScheduleUpdate) Apply(s *Schedule) {
	if u.Category != nil {
		s.Category = *u.Category
	}
	if u.Date != nil {
		s.Date = *u.Date
	}
	if u.Description != nil {
		s.Description = *u.Description
	}
	if u.EndTime != nil {
		s.EndTime = *u.EndTime
	}
	if u.IsCompleted != nil {
		s.IsCompleted = *u.IsCompleted
	}
	if u.IsNotificationEnabled != nil {
		s.IsNotificationEnabled = *u.IsNotificationEnabled
	}
	if u.NotificationTime != nil {
		s.NotificationTime = *u.NotificationTime
	}
	if u.RepeatPattern != nil {
		p := *u.RepeatPattern
		p.DaysOfWeek = slices.Clone(p.DaysOfWeek)
		s.RepeatPattern = &p
	}
	if u.StartTime != nil {
		s.StartTime = *u.StartTime
	}
	if u.Title != nil {
		s.Title = *u.Title
	}
}

// IsEmpty reports whether the update changes nothing
func (u ScheduleUpdate) IsEmpty() bool {
	return u == ScheduleUpdate{}
}
