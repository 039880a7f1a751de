package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBackend    = errors.New("notification backend failure")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
	ErrValidation = errors.New("validation failed")
)

// Entity specific errors wrap the generic ones so callers can match either.
var (
	ErrEmptyCustomDays     = fmt.Errorf("%w: custom repeat requires at least one weekday", ErrValidation)
	ErrInvalidDateRange    = fmt.Errorf("%w: start date is after end date", ErrValidation)
	ErrPromptNotFound      = fmt.Errorf("prompt %w", ErrNotFound)
	ErrRecordNotFound      = fmt.Errorf("record %w", ErrNotFound)
	ErrScheduleNotFound    = fmt.Errorf("schedule %w", ErrNotFound)
	ErrStatisticsNotCached = fmt.Errorf("statistics snapshot %w", ErrNotFound)
)
