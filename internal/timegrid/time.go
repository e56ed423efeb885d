package timegrid

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidClock is returned when a clock string is not in HH:MM format.
var ErrInvalidClock = errors.New("time must be in HH:MM format")

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (24-hour) into a Clock.
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// String formats the clock as "HH:MM".
func (c Clock) String() string {
	return MinutesToTime(c.Minutes())
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
