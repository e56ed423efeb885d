package schedule

import "github.com/javiermolinar/ttg/internal/unit"

// Classification is the verdict for a slot with more than one occupant.
type Classification struct {
	TrueConflict bool
}

// Classify decides whether a shared slot is a real clash.
//
// The slot is benign only when every pair of occupants is two alternating
// sections of the same course with different section kinds. Any other pair
// makes the whole slot a true conflict. Fewer than two occupants never
// conflict.
func Classify(occupants []Occupant) Classification {
	for i := 0; i < len(occupants); i++ {
		for j := i + 1; j < len(occupants); j++ {
			if !Alternates(occupants[i].Unit, occupants[j].Unit) {
				return Classification{TrueConflict: true}
			}
		}
	}
	return Classification{}
}

// Alternates reports whether a and b may share a slot without clashing.
func Alternates(a, b unit.SchoolUnit) bool {
	return a.Alternating && b.Alternating &&
		unit.SameCourse(a, b) &&
		a.Kind != b.Kind
}
