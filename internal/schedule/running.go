package schedule

import (
	"slices"

	"github.com/javiermolinar/ttg/internal/timegrid"
	"github.com/javiermolinar/ttg/internal/unit"
)

// Running maps each occupied slot to the units in it, in insertion order.
// A key is present only while at least one unit occupies it.
//
// Running is not safe for concurrent use.
type Running struct {
	slots map[timegrid.SlotKey][]Occupant
}

// NewRunning returns an empty schedule.
func NewRunning() *Running {
	return &Running{slots: make(map[timegrid.SlotKey][]Occupant)}
}

// Add places the unit in every slot it projects to and returns the number
// of placements made. Zero means the unit has no schedulable meetings.
func (r *Running) Add(u unit.SchoolUnit) int {
	placements := Project(u)
	for _, p := range placements {
		r.slots[p.Key] = append(r.slots[p.Key], p.Occupant)
	}
	return len(placements)
}

// Remove takes the unit out of every slot it projects to and returns the
// number of occupants removed. In each slot only the first occupant equal to
// the unit (same course and section kind) goes; slots without one are left
// alone.
func (r *Running) Remove(u unit.SchoolUnit) int {
	removed := 0
	for _, p := range Project(u) {
		occupants, ok := r.slots[p.Key]
		if !ok {
			continue
		}
		i := slices.IndexFunc(occupants, func(o Occupant) bool {
			return unit.UnitsEqual(o.Unit, p.Occupant.Unit)
		})
		if i < 0 {
			continue
		}
		occupants = slices.Delete(occupants, i, i+1)
		removed++
		if len(occupants) == 0 {
			delete(r.slots, p.Key)
		} else {
			r.slots[p.Key] = occupants
		}
	}
	return removed
}

// At returns a copy of the occupants of a slot, or nil if it is empty.
func (r *Running) At(key timegrid.SlotKey) []Occupant {
	return slices.Clone(r.slots[key])
}

// Len returns the number of occupied slots.
func (r *Running) Len() int {
	return len(r.slots)
}

// Keys returns the occupied slots in grid order.
func (r *Running) Keys() []timegrid.SlotKey {
	keys := make([]timegrid.SlotKey, 0, len(r.slots))
	for k := range r.slots {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, timegrid.SlotKey.Compare)
	return keys
}

// OccupiesCourse reports whether any slot holds a unit of the same course as u.
func (r *Running) OccupiesCourse(u unit.SchoolUnit) bool {
	probes := []unit.SchoolUnit{u}
	if u.IsFullYear() {
		first, second, err := unit.SplitFullYear(u)
		if err == nil {
			probes = []unit.SchoolUnit{first, second}
		}
	}

	for _, occupants := range r.slots {
		for _, o := range occupants {
			for _, p := range probes {
				if unit.SameCourse(o.Unit, p) {
					return true
				}
			}
		}
	}
	return false
}

// Units returns the distinct occupants in grid order, first sighting wins.
func (r *Running) Units() []unit.SchoolUnit {
	var units []unit.SchoolUnit
	for _, k := range r.Keys() {
		for _, o := range r.slots[k] {
			seen := slices.ContainsFunc(units, func(u unit.SchoolUnit) bool {
				return unit.UnitsEqual(u, o.Unit)
			})
			if !seen {
				units = append(units, o.Unit)
			}
		}
	}
	return units
}

// Clear empties the schedule.
func (r *Running) Clear() {
	clear(r.slots)
}
