package schedule

import "github.com/javiermolinar/ttg/internal/timegrid"

// roundTolerance is how far past a slot boundary a start time may fall and
// still be placed in that slot.
const roundTolerance = 15

// RoundStart moves a meeting start onto a slot boundary.
//
// Starts on :00 or :30 are unchanged. A start at most 15 minutes past a
// boundary rounds down to it; anything later rounds up to the next boundary,
// rolling the hour when needed (09:46 becomes 10:00).
func RoundStart(c timegrid.Clock) timegrid.Clock {
	mins := c.Minutes()
	offset := mins % timegrid.SlotMinutes
	if offset == 0 {
		return c
	}

	mins -= offset
	if offset > roundTolerance {
		mins += timegrid.SlotMinutes
	}
	return timegrid.Clock{Hour: mins / 60, Minute: mins % 60}
}
