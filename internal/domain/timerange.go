package domain

import (
	"errors"
	"fmt"
)

const minutesPerDay = 1440

var ErrInvalidRange = errors.New("invalid time range")

// TimeRange is a half-open [Start, End) interval in minutes of day.
// Invariant: 0 <= Start < End <= 1440.
type TimeRange struct {
	StartMin int
	EndMin   int
}

func NewTimeRange(startMin, endMin int) (TimeRange, error) {
	if startMin < 0 || startMin >= endMin || endMin > minutesPerDay {
		return TimeRange{}, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, startMin, endMin)
	}
	return TimeRange{StartMin: startMin, EndMin: endMin}, nil
}

func TimeRangeFromDuration(startMin, durationMin int) (TimeRange, error) {
	if durationMin <= 0 {
		return TimeRange{}, fmt.Errorf("%w: duration %d", ErrInvalidRange, durationMin)
	}
	return NewTimeRange(startMin, startMin+durationMin)
}

// Overlaps reports whether the two ranges share any time. Ranges that only
// touch at an endpoint are compatible: a slot ending at 10:00 does not
// conflict with one starting at 10:00.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.StartMin < other.EndMin && other.StartMin < r.EndMin
}

func (r TimeRange) Duration() int {
	return r.EndMin - r.StartMin
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", r.StartMin/60, r.StartMin%60, r.EndMin/60, r.EndMin%60)
}
