package schedule

import "errors"

// Schedule errors
var (
	ErrEmptySchedule        = errors.New("blind schedule cannot be empty")
	ErrNegativeBlind        = errors.New("blind amounts cannot be negative")
	ErrNegativeAnte         = errors.New("ante cannot be negative")
	ErrInvalidBreakDuration = errors.New("break duration must be positive")
	ErrPresetNotFound       = errors.New("schedule preset not found")
)
