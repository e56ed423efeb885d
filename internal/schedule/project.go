package schedule

import (
	"github.com/javiermolinar/ttg/internal/timegrid"
	"github.com/javiermolinar/ttg/internal/unit"
)

// Occupant is one unit sitting in one slot, with the location of the
// meeting that put it there.
type Occupant struct {
	Unit     unit.SchoolUnit
	Location string
}

// Placement pairs a slot with the occupant a projection puts in it.
type Placement struct {
	Key      timegrid.SlotKey
	Occupant Occupant
}

// Project returns every slot the unit occupies.
//
// Full-year units are split into their two linked halves first, so the
// placements of a full-year unit carry the half, never the original.
// Each meeting covers [RoundStart(start), end) in 30-minute steps. A meeting
// whose rounded start is not before its end contributes nothing.
func Project(u unit.SchoolUnit) []Placement {
	if u.IsFullYear() {
		first, second, err := unit.SplitFullYear(u)
		if err != nil {
			return nil
		}
		return append(projectTerm(first), projectTerm(second)...)
	}
	return projectTerm(u)
}

// MeetingSlots returns the slots one meeting covers in the given term.
func MeetingSlots(term timegrid.Term, m unit.Meeting) []timegrid.SlotKey {
	start := RoundStart(m.Start)
	hour, minute := start.Hour, start.Minute
	endHour, endMinute := m.End.Hour, m.End.Minute

	var keys []timegrid.SlotKey
	for (hour == endHour && minute < endMinute) || hour < endHour {
		keys = append(keys, timegrid.KeyFor(term, m.Day, hour, minute))
		if minute == 30 {
			minute = 0
			hour++
		} else {
			minute = 30
		}
	}
	return keys
}

func projectTerm(u unit.SchoolUnit) []Placement {
	term := timegrid.Term(u.Term)
	if !term.Valid() {
		return nil
	}

	var placements []Placement
	for _, m := range u.Meetings {
		for _, key := range MeetingSlots(term, m) {
			placements = append(placements, Placement{
				Key:      key,
				Occupant: Occupant{Unit: u, Location: m.Location},
			})
		}
	}
	return placements
}
